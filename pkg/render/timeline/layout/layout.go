// Package layout computes the geometry of a timeline chart.
//
// # Overview
//
// A timeline is a horizontal axis spanning a [DateRange]. Every entry inside
// the range gets a marker on the axis at a position proportional to its
// date, and a [Card] above the axis connected to the marker by a stem. Cards
// that would collide horizontally are pushed further from the axis, one
// tier per overlap found by [NumOverlaps].
//
// [Build] performs the whole computation and returns a [Layout] that the
// timeline renderer paints command by command. Nothing in this package
// draws or measures text.
//
// # Geometry
//
// All sizes are fixed:
//
//	left padding   30   axis starts here
//	right padding 100   room for the last card
//	card          100 x 55, top-right corner notched by 10
//	tier padding    6   vertical gap between stacked cards
//	axis y          height * 0.8
package layout

import (
	"slices"
	"time"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

const (
	LeftPadding    = 30.0
	RightPadding   = 100.0
	AxisRightInset = 90.0
	CardWidth      = 100.0
	CardHeight     = 55.0
	CardPadding    = 6.0
	BorderWidth    = 2.0
	CornerNotch    = 10.0
	AxisRatio      = 0.8
	AxisLineWidth  = 2.0
	CapRadius      = 5.0

	// RuleOffset and MessageOffset are measured from the card top.
	RuleOffset    = 20.0
	MessageOffset = 24.0

	// LabelOffset is the gap between the axis and the date label.
	LabelOffset = 10.0
)

// Card decorations are spaced in multiples of the border width.
const (
	foldInset     = 2 * BorderWidth
	ruleInset     = 4 * BorderWidth
	ruleEnd       = CardWidth - CornerNotch - 3*BorderWidth
	titleCenter   = ruleInset + (ruleEnd-ruleInset)/2
	messageIndent = 3 * BorderWidth
)

// Placement is one visible entry with its computed position.
type Placement struct {
	Entry entry.Entry `json:"entry"`
	X     float64     `json:"x"`
	Tier  int         `json:"tier"`
	Card  Card        `json:"card"`
}

// Stem is the vertical line from the marker up to the card.
func (p Placement) Stem(axisY float64) Segment {
	return Segment{
		canvas.Point{X: p.X, Y: axisY},
		canvas.Point{X: p.X, Y: p.Card.Top},
	}
}

// Layout is the computed geometry of one timeline.
type Layout struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	AxisY  float64   `json:"axis_y"`
	Axis   Segment   `json:"axis"`
	Range  DateRange `json:"range"`

	// Placements are in draw order: latest entry first.
	Placements []Placement `json:"placements"`

	// Skipped counts entries outside Range.
	Skipped int `json:"skipped"`
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	farLeft, farRight *time.Time
}

// WithRange sets both bounds of the visible range.
func WithRange(r DateRange) Option {
	return func(o *buildOptions) {
		o.farLeft, o.farRight = &r.FarLeft, &r.FarRight
	}
}

// WithFarLeft sets the left bound; the right bound is still derived from the
// data unless given too.
func WithFarLeft(t time.Time) Option {
	return func(o *buildOptions) { o.farLeft = &t }
}

// WithFarRight sets the right bound.
func WithFarRight(t time.Time) Option {
	return func(o *buildOptions) { o.farRight = &t }
}

// Build lays out entries on a width by height surface.
//
// It fails with EMPTY_DATASET when entries is empty, INVALID_DIMENSIONS when
// the surface leaves no room for the axis, and DEGENERATE_RANGE when the
// range is less than one day wide. Entries outside the range are skipped.
func Build(entries []entry.Entry, width, height float64, opts ...Option) (Layout, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(entries) == 0 {
		return Layout{}, errors.New(errors.ErrCodeEmptyDataset, "no entries to draw")
	}
	if err := errors.ValidateDimensions(width, height, LeftPadding+RightPadding); err != nil {
		return Layout{}, err
	}

	r, err := resolveRange(entries, o)
	if err != nil {
		return Layout{}, err
	}
	if err := r.Validate(); err != nil {
		return Layout{}, err
	}

	axisY := height * AxisRatio
	l := Layout{
		Width:  width,
		Height: height,
		AxisY:  axisY,
		Range:  r,
		Axis: Segment{
			canvas.Point{X: LeftPadding, Y: axisY},
			canvas.Point{X: width - AxisRightInset, Y: axisY},
		},
	}

	scale := NewScale(r, width)
	var occupied []float64
	for _, e := range drawOrder(entries) {
		if !r.Contains(e.Time) {
			l.Skipped++
			continue
		}
		x := scale.X(e.Time)
		occupied = append(occupied, x)
		tier := NumOverlaps(occupied, x, CardWidth)
		l.Placements = append(l.Placements, Placement{
			Entry: e,
			X:     x,
			Tier:  tier,
			Card:  Card{Left: x, Top: CardTop(axisY, tier)},
		})
	}
	return l, nil
}

// CardTop returns the y of the top edge of a card on the given tier.
func CardTop(axisY float64, tier int) float64 {
	t := float64(tier)
	return axisY - CardHeight/2 - (CardHeight*(1+t) + CardPadding*t)
}

// Tiers returns the number of stacking levels in use.
func (l Layout) Tiers() int {
	n := 0
	for _, p := range l.Placements {
		n = max(n, p.Tier+1)
	}
	return n
}

func resolveRange(entries []entry.Entry, o buildOptions) (DateRange, error) {
	if o.farLeft != nil && o.farRight != nil {
		return DateRange{FarLeft: *o.farLeft, FarRight: *o.farRight}, nil
	}
	r, err := DefaultRange(entries)
	if err != nil {
		return DateRange{}, err
	}
	if o.farLeft != nil {
		r.FarLeft = *o.farLeft
	}
	if o.farRight != nil {
		r.FarRight = *o.farRight
	}
	return r, nil
}

// drawOrder sorts a copy of entries latest first. It is the reverse of a
// stable ascending sort, so entries with equal times are visited in reverse
// input order.
func drawOrder(entries []entry.Entry) []entry.Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, byTime)
	slices.Reverse(sorted)
	return sorted
}
