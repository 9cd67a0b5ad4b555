package layout

import "github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas"

// Segment is a straight line between two points.
type Segment struct {
	From canvas.Point `json:"from"`
	To   canvas.Point `json:"to"`
}

// Card is the notched info box attached to one entry. Left and Top locate
// its top-left corner; the size is fixed by CardWidth and CardHeight and the
// top-right corner is cut off by a CornerNotch diagonal.
type Card struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Right returns the x of the card's right edge.
func (c Card) Right() float64 { return c.Left + CardWidth }

// Bottom returns the y of the card's bottom edge.
func (c Card) Bottom() float64 { return c.Top + CardHeight }

// Outline returns the card background polygon, clockwise from the top-left
// corner.
func (c Card) Outline() []canvas.Point {
	return []canvas.Point{
		{X: c.Left, Y: c.Top},
		{X: c.Right() - CornerNotch, Y: c.Top},
		{X: c.Right(), Y: c.Top + CornerNotch},
		{X: c.Right(), Y: c.Bottom()},
		{X: c.Left, Y: c.Bottom()},
	}
}

// Frame returns the border segments in draw order: top edge, notch
// diagonal, right edge, bottom edge. The left edge is part of the stem.
func (c Card) Frame() []Segment {
	notch := c.Right() - CornerNotch
	return []Segment{
		{canvas.Point{X: c.Left, Y: c.Top}, canvas.Point{X: notch, Y: c.Top}},
		{canvas.Point{X: notch, Y: c.Top}, canvas.Point{X: c.Right(), Y: c.Top + CornerNotch}},
		{canvas.Point{X: c.Right(), Y: c.Top + CornerNotch}, canvas.Point{X: c.Right(), Y: c.Bottom()}},
		{canvas.Point{X: c.Left, Y: c.Bottom()}, canvas.Point{X: c.Right(), Y: c.Bottom()}},
	}
}

// Fold is the short diagonal drawn inside the notch.
func (c Card) Fold() Segment {
	x := c.Right() - CornerNotch - foldInset
	return Segment{
		canvas.Point{X: x, Y: c.Top + foldInset},
		canvas.Point{X: x + CornerNotch, Y: c.Top + foldInset + CornerNotch},
	}
}

// Rule is the horizontal line separating title and message.
func (c Card) Rule() Segment {
	return Segment{
		canvas.Point{X: c.Left + ruleInset, Y: c.Top + RuleOffset},
		canvas.Point{X: c.Left + ruleEnd, Y: c.Top + RuleOffset},
	}
}

// TitleAnchor is the south anchor point of the title, centered over the
// rule's text band.
func (c Card) TitleAnchor() canvas.Point {
	return canvas.Point{X: c.Left + titleCenter, Y: c.Top + RuleOffset}
}

// MessageAnchor is the north-west anchor point of the message, just below
// the rule.
func (c Card) MessageAnchor() canvas.Point {
	return canvas.Point{X: c.Left + messageIndent, Y: c.Top + MessageOffset}
}
