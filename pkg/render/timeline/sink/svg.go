package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/fonts"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
)

// SVGOption configures an SVG surface.
type SVGOption func(*SVG)

// WithSVGTitle sets the document <title>.
func WithSVGTitle(title string) SVGOption { return func(s *SVG) { s.title = title } }

// WithSVGTextScale overrides TextScale.
func WithSVGTextScale(scale float64) SVGOption {
	return func(s *SVG) { s.faces = newFaceCache(scale) }
}

// SVG is a surface that writes one SVG element per drawing command.
//
// Text is measured with the embedded Go fonts so it is placed exactly where
// the raster surface places it; viewers substitute the requested family.
type SVG struct {
	width, height float64
	lineWidth     float64
	title         string
	faces         *faceCache
	body          bytes.Buffer
	err           error
}

// NewSVG returns an empty SVG surface of the given size.
func NewSVG(width, height float64, opts ...SVGOption) *SVG {
	s := &SVG{width: width, height: height, lineWidth: 1, faces: newFaceCache(TextScale)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) Width() float64  { return s.width }
func (s *SVG) Height() float64 { return s.height }

func (s *SVG) SetLineWidth(w float64) { s.lineWidth = w }

func (s *SVG) DrawLine(x0, y0, x1, y1 float64, c canvas.Color) {
	fmt.Fprintf(&s.body, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`+"\n",
		num(x0), num(y0), num(x1), num(y1), attr(c), num(s.lineWidth))
}

func (s *SVG) DrawEllipse(x, y, rx, ry float64, c canvas.Color) {
	fmt.Fprintf(&s.body, `  <ellipse cx="%s" cy="%s" rx="%s" ry="%s" fill="%s"/>`+"\n",
		num(x+rx), num(y+ry), num(rx), num(ry), attr(c))
}

func (s *SVG) DrawRect(x0, y0, x1, y1 float64, c canvas.Color) {
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(min(x0, x1)), num(min(y0, y1)), num(math.Abs(x1-x0)), num(math.Abs(y1-y0)), attr(c))
}

func (s *SVG) DrawPolygon(c canvas.Color, points ...canvas.Point) {
	pts := make([]string, len(points))
	for i, p := range points {
		pts[i] = num(p.X) + "," + num(p.Y)
	}
	fmt.Fprintf(&s.body, `  <polygon points="%s" fill="%s"/>`+"\n", strings.Join(pts, " "), attr(c))
}

func (s *SVG) DrawText(x, y float64, text string, f canvas.Font, c canvas.Color, rotation float64, anchor canvas.Anchor) {
	face, err := s.faces.face(f)
	if err != nil {
		s.fail(err)
		return
	}
	style := fmt.Sprintf(`font-family="%s" font-size="%s"`, attr(canvas.Color(fontFamily(f))), num(f.Size*s.faces.scale))
	if f.Bold {
		style += ` font-weight="bold"`
	}
	if f.Italic {
		style += ` font-style="italic"`
	}
	for _, ln := range placeText(face, text, x, y, rotation, anchor) {
		if ln.text == "" {
			continue
		}
		transform := ""
		if rotation != 0 {
			transform = fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(-rotation), num(ln.cx), num(ln.cy))
		}
		fmt.Fprintf(&s.body, `  <text x="%s" y="%s" %s fill="%s" text-anchor="middle" dominant-baseline="central"%s>%s</text>`+"\n",
			num(ln.cx), num(ln.cy), style, attr(c), transform, escapeXML(ln.text))
	}
}

// Clear drops everything drawn so far.
func (s *SVG) Clear() {
	s.body.Reset()
	s.err = nil
}

// Err returns the first error hit while drawing.
func (s *SVG) Err() error { return s.err }

func (s *SVG) fail(err error) {
	if s.err == nil {
		s.err = errors.Wrap(errors.ErrCodeInvalidConfig, err, "svg")
	}
}

// Bytes returns the complete document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(s.width), num(s.height), s.width, s.height)
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.title))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

var _ canvas.Surface = (*SVG)(nil)

// RenderSVG paints a layout into a new SVG document.
func RenderSVG(l layout.Layout, cfg timeline.Config, opts ...SVGOption) ([]byte, error) {
	s := NewSVG(l.Width, l.Height, opts...)
	timeline.Paint(s, l, cfg)
	if err := s.Err(); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

func fontFamily(f canvas.Font) string {
	if f.Family == "" {
		return fonts.FallbackFontFamily
	}
	family := f.Family
	if strings.ContainsAny(family, " ,") {
		family = "'" + family + "'"
	}
	return family + ", " + fonts.FallbackFontFamily
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func attr(c canvas.Color) string { return escapeXML(string(c)) }

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
