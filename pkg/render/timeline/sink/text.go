package sink

import (
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/lukaschristensson/TimeLinePlot/pkg/fonts"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas"
)

// TextScale converts font sizes in points into pixels on every surface.
const TextScale = 1.5

// placedLine is one line of text positioned by its center.
type placedLine struct {
	text   string
	cx, cy float64
	w, h   float64
}

// faceCache keeps one face per font for the lifetime of a surface.
type faceCache struct {
	scale float64
	faces map[canvas.Font]font.Face
}

func newFaceCache(scale float64) *faceCache {
	return &faceCache{scale: scale, faces: map[canvas.Font]font.Face{}}
}

func (c *faceCache) face(f canvas.Font) (font.Face, error) {
	if face, ok := c.faces[f]; ok {
		return face, nil
	}
	face, err := fonts.Face(f, c.scale)
	if err != nil {
		return nil, err
	}
	c.faces[f] = face
	return face, nil
}

// placeText positions each line of text. A line's box is its measured size
// rotated counterclockwise by rotation degrees; the anchor decides which
// side of that box touches (x, y). Line i is placed i line-heights below
// the first.
func placeText(face font.Face, text string, x, y, rotation float64, anchor canvas.Anchor) []placedLine {
	lineH := toFloat(face.Metrics().Height)
	lines := strings.Split(text, "\n")
	out := make([]placedLine, 0, len(lines))
	for i, ln := range lines {
		w := toFloat(font.MeasureString(face, ln))
		bw, bh := rotatedBox(w, lineH, rotation)
		left, top := anchor.TopLeft(x, y+float64(i)*lineH, bw, bh)
		out = append(out, placedLine{text: ln, cx: left + bw/2, cy: top + bh/2, w: w, h: lineH})
	}
	return out
}

// rotatedBox returns the bounding box of a w by h box rotated by deg degrees.
func rotatedBox(w, h, deg float64) (float64, float64) {
	if deg == 0 {
		return w, h
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	return w*cos + h*sin, w*sin + h*cos
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
