package sink

import (
	"encoding/json"
	"time"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme  string
	config *timeline.Config
	indent bool
}

// WithJSONTheme records the theme name in the output.
func WithJSONTheme(name string) JSONOption { return func(r *jsonRenderer) { r.theme = name } }

// WithJSONConfig includes the styling used to paint the layout.
func WithJSONConfig(cfg timeline.Config) JSONOption {
	return func(r *jsonRenderer) { c := cfg.Resolve(); r.config = &c }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	AxisY      float64          `json:"axis_y"`
	Axis       layout.Segment   `json:"axis"`
	FarLeft    time.Time        `json:"far_left"`
	FarRight   time.Time        `json:"far_right"`
	Days       int              `json:"days"`
	Tiers      int              `json:"tiers"`
	Skipped    int              `json:"skipped,omitempty"`
	Theme      string           `json:"theme,omitempty"`
	Config     *timeline.Config `json:"config,omitempty"`
	Placements []jsonPlacement  `json:"placements"`
}

type jsonPlacement struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Label   string    `json:"label"`
	X       float64   `json:"x"`
	Tier    int       `json:"tier"`
	Card    jsonCard  `json:"card"`
}

type jsonCard struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RenderJSON exports a layout: the axis, the range and one record per
// visible entry in draw order.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      l.Width,
		Height:     l.Height,
		AxisY:      l.AxisY,
		Axis:       l.Axis,
		FarLeft:    l.Range.FarLeft,
		FarRight:   l.Range.FarRight,
		Days:       l.Range.Days(),
		Tiers:      l.Tiers(),
		Skipped:    l.Skipped,
		Theme:      r.theme,
		Config:     r.config,
		Placements: make([]jsonPlacement, 0, len(l.Placements)),
	}
	for _, p := range l.Placements {
		out.Placements = append(out.Placements, jsonPlacement{
			ID:      p.Entry.ID(),
			Time:    p.Entry.Time,
			Title:   p.Entry.Title,
			Message: p.Entry.Message,
			Label:   p.Entry.Time.Format(timeline.DateFormat),
			X:       p.X,
			Tier:    p.Tier,
			Card: jsonCard{
				X:      p.Card.Left,
				Y:      p.Card.Top,
				Width:  layout.CardWidth,
				Height: layout.CardHeight,
			},
		})
	}

	var (
		data []byte
		err  error
	)
	if r.indent {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return data, nil
}
