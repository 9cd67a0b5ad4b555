package timeline

import (
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// DateFormat is the short axis label format, MM/DD/YY.
const DateFormat = "01/02/06"

// LabelRotation is the counterclockwise rotation of axis labels in degrees.
const LabelRotation = 45.0

// Draw lays out entries on s and paints them. The surface is returned for
// chaining. Every error is reported before the first drawing command.
func Draw(s canvas.Surface, entries []entry.Entry, cfg Config, opts ...layout.Option) (canvas.Surface, error) {
	l, err := layout.Build(entries, s.Width(), s.Height(), opts...)
	if err != nil {
		return s, err
	}
	Paint(s, l, cfg)
	return s, nil
}

// Paint issues the drawing commands for a computed layout.
func Paint(s canvas.Surface, l layout.Layout, cfg Config) {
	cfg = cfg.Resolve()
	y := l.AxisY

	s.DrawRect(0, 0, l.Width, l.Height, cfg.BackgroundColor)
	s.SetLineWidth(layout.AxisLineWidth)

	s.DrawLine(l.Axis.From.X, y, l.Axis.To.X, y, cfg.AxisColor)
	s.DrawEllipse(l.Axis.From.X-2*layout.CapRadius, y-layout.CapRadius, layout.CapRadius, layout.CapRadius, cfg.AxisColor)
	s.DrawEllipse(l.Axis.To.X, y-layout.CapRadius, layout.CapRadius, layout.CapRadius, cfg.AxisColor)

	s.SetLineWidth(layout.BorderWidth)
	for _, p := range l.Placements {
		paintPlacement(s, p, y, cfg)
	}
}

func paintPlacement(s canvas.Surface, p layout.Placement, axisY float64, cfg Config) {
	x := p.X

	// Marker: a background dot punched into the axis, then the frame dot.
	s.DrawEllipse(x-6, axisY-5, 5, 5, cfg.BackgroundColor)
	s.DrawEllipse(x-4, axisY-3, 3, 3, cfg.FrameColor)

	c := p.Card
	s.DrawPolygon(cfg.CardBackground, c.Outline()...)
	line(s, p.Stem(axisY), cfg.FrameColor)
	for _, seg := range c.Frame() {
		line(s, seg, cfg.FrameColor)
	}
	line(s, c.Fold(), cfg.FrameColor)
	line(s, c.Rule(), cfg.FrameColor)

	title := c.TitleAnchor()
	s.DrawText(title.X, title.Y, p.Entry.Title, cfg.TitleFont, cfg.TextColor, 0, canvas.AnchorSouth)
	msg := c.MessageAnchor()
	s.DrawText(msg.X, msg.Y, p.Entry.Message, cfg.MessageFont, cfg.TextColor, 0, canvas.AnchorNorthWest)

	s.DrawText(x, axisY+layout.LabelOffset, p.Entry.Time.Format(DateFormat),
		cfg.AxisFont, cfg.TextColor, LabelRotation, canvas.AnchorNorthEast)
}

func line(s canvas.Surface, seg layout.Segment, c canvas.Color) {
	s.DrawLine(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y, c)
}
