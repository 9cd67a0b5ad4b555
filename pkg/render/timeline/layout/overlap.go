package layout

import "slices"

// NumOverlaps counts the cards that a card placed at newX collides with.
//
// occupied holds the positions placed so far, in placement order, including
// newX itself. The count follows a chain: drop the pivot, take the first
// remaining position no further right than pivot+cardWidth, count it and
// continue from there. Only the first match is followed, so the result
// depends on the order of occupied. The slice is not modified.
func NumOverlaps(occupied []float64, newX, cardWidth float64) int {
	work := slices.Clone(occupied)
	pivot := newX
	count := 0
	for {
		if i := slices.Index(work, pivot); i >= 0 {
			work = slices.Delete(work, i, i+1)
		}
		next := slices.IndexFunc(work, func(x float64) bool { return x <= pivot+cardWidth })
		if next < 0 {
			return count
		}
		count++
		pivot = work[next]
	}
}
