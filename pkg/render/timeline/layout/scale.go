package layout

import "time"

// Scale maps dates onto the axis. Positions move in whole-day steps.
type Scale struct {
	Range  DateRange
	Left   float64
	Length float64
	days   int
}

// NewScale returns the scale of r on a surface of the given width. The range
// must already be validated; a zero-day range maps every date to Left.
func NewScale(r DateRange, width float64) Scale {
	return Scale{
		Range:  r,
		Left:   LeftPadding,
		Length: width - (LeftPadding + RightPadding),
		days:   r.Days(),
	}
}

// X returns the horizontal position of t.
func (s Scale) X(t time.Time) float64 {
	if s.days <= 0 {
		return s.Left
	}
	return s.Left + s.Length*float64(DaysBetween(s.Range.FarLeft, t))/float64(s.days)
}

// Right is the position of the range's far right date.
func (s Scale) Right() float64 { return s.Left + s.Length }
