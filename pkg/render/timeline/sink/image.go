package sink

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
)

// ImageOption configures an Image surface.
type ImageOption func(*Image)

// WithImageTextScale overrides TextScale.
func WithImageTextScale(scale float64) ImageOption {
	return func(m *Image) { m.faces = newFaceCache(scale) }
}

// Image is a raster surface backed by a gg context. It starts out fully
// transparent.
//
// Drawing calls cannot return errors; the first one (an unknown color or
// an unusable font) is kept and reported by Err, and the failing call draws
// nothing.
type Image struct {
	dc        *gg.Context
	lineWidth float64
	faces     *faceCache
	err       error

	// gen counts drawing calls so derived views know when to refresh.
	gen uint64
}

// NewImage returns a transparent width by height surface.
func NewImage(width, height int, opts ...ImageOption) *Image {
	m := &Image{dc: gg.NewContext(width, height), lineWidth: 1, faces: newFaceCache(TextScale)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Image) Width() float64  { return float64(m.dc.Width()) }
func (m *Image) Height() float64 { return float64(m.dc.Height()) }

func (m *Image) SetLineWidth(w float64) { m.lineWidth = w }

func (m *Image) DrawLine(x0, y0, x1, y1 float64, c canvas.Color) {
	if !m.setColor(c) {
		return
	}
	m.dc.SetLineWidth(m.lineWidth)
	m.dc.SetLineCapRound()
	m.dc.DrawLine(x0, y0, x1, y1)
	m.dc.Stroke()
}

func (m *Image) DrawEllipse(x, y, rx, ry float64, c canvas.Color) {
	if !m.setColor(c) {
		return
	}
	m.dc.DrawEllipse(x+rx, y+ry, rx, ry)
	m.dc.Fill()
}

func (m *Image) DrawRect(x0, y0, x1, y1 float64, c canvas.Color) {
	if !m.setColor(c) {
		return
	}
	m.dc.DrawRectangle(min(x0, x1), min(y0, y1), max(x0, x1)-min(x0, x1), max(y0, y1)-min(y0, y1))
	m.dc.Fill()
}

func (m *Image) DrawPolygon(c canvas.Color, points ...canvas.Point) {
	if len(points) < 3 || !m.setColor(c) {
		return
	}
	m.dc.NewSubPath()
	m.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		m.dc.LineTo(p.X, p.Y)
	}
	m.dc.ClosePath()
	m.dc.Fill()
}

func (m *Image) DrawText(x, y float64, text string, f canvas.Font, c canvas.Color, rotation float64, anchor canvas.Anchor) {
	face, err := m.faces.face(f)
	if err != nil {
		m.fail(err)
		return
	}
	if !m.setColor(c) {
		return
	}
	m.dc.SetFontFace(face)
	for _, ln := range placeText(face, text, x, y, rotation, anchor) {
		m.dc.Push()
		if rotation != 0 {
			m.dc.RotateAbout(gg.Radians(-rotation), ln.cx, ln.cy)
		}
		m.dc.DrawStringAnchored(ln.text, ln.cx, ln.cy, 0.5, 0.5)
		m.dc.Pop()
	}
}

// Clear makes the whole surface transparent again.
func (m *Image) Clear() {
	m.gen++
	m.dc.SetColor(color.Transparent)
	m.dc.Clear()
	m.err = nil
}

// Err returns the first error hit while drawing.
func (m *Image) Err() error { return m.err }

// Image returns the current pixels.
func (m *Image) Image() image.Image { return m.dc.Image() }

// EncodePNG writes the current pixels as PNG.
func (m *Image) EncodePNG(w io.Writer) error {
	if err := m.dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

func (m *Image) setColor(c canvas.Color) bool {
	m.gen++
	rgba, err := canvas.ResolveColor(c)
	if err != nil {
		m.fail(err)
		return false
	}
	m.dc.SetColor(rgba)
	return true
}

func (m *Image) fail(err error) {
	if m.err == nil {
		m.err = errors.Wrap(errors.ErrCodeInvalidConfig, err, "draw")
	}
}

var _ canvas.Surface = (*Image)(nil)

// RenderPNG paints a layout onto a new raster surface and encodes it.
func RenderPNG(l layout.Layout, cfg timeline.Config, opts ...ImageOption) ([]byte, error) {
	m := NewImage(int(l.Width), int(l.Height), opts...)
	timeline.Paint(m, l, cfg)
	if err := m.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := m.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
