package sink

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas"
)

// halfBlock shows the upper cell half in the foreground color and the lower
// half in the background color, giving two square pixels per cell.
const halfBlock = "▀"

// Terminal is a raster surface that can be shown as character cells.
//
// Drawing goes to the embedded Image. View downscales the image so its
// height fits the requested rows, then returns a horizontal window of it.
// The downscaled copy is kept until the next drawing call.
type Terminal struct {
	*Image

	cache      *image.RGBA
	cacheRows  int
	cacheGen   uint64
	background color.RGBA
}

// NewTerminal returns a transparent terminal surface of the given pixel
// size. Transparent pixels are shown as black.
func NewTerminal(width, height int, opts ...ImageOption) *Terminal {
	return &Terminal{Image: NewImage(width, height, opts...), background: color.RGBA{A: 255}}
}

// Columns is the width of the whole timeline in cells when shown rows
// cells high.
func (t *Terminal) Columns(rows int) int {
	if rows <= 0 || t.Height() <= 0 {
		return 0
	}
	return int(math.Ceil(t.Width() * float64(2*rows) / t.Height()))
}

// ClampOffset limits a scroll offset so the window stays on the content.
func (t *Terminal) ClampOffset(offset, cols, rows int) int {
	return max(0, min(offset, t.Columns(rows)-cols))
}

// View renders cols by rows cells starting offset cells from the left.
// Columns past the end of the timeline are left blank.
func (t *Terminal) View(offset, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	cells := t.cells(rows)
	total := cells.Bounds().Dx()
	offset = t.ClampOffset(offset, cols, rows)

	var b strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := offset; c < offset+cols; c++ {
			if c >= total {
				b.WriteString(strings.Repeat(" ", offset+cols-c))
				break
			}
			top := t.over(cells.RGBAAt(c, 2*r))
			bottom := t.over(cells.RGBAAt(c, 2*r+1))
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bottom))).
				Render(halfBlock))
		}
	}
	return b.String()
}

func (t *Terminal) cells(rows int) *image.RGBA {
	if t.cache != nil && t.cacheRows == rows && t.cacheGen == t.gen {
		return t.cache
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(1, t.Columns(rows)), 2*rows))
	src := t.Image.Image()
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	t.cache, t.cacheRows, t.cacheGen = dst, rows, t.gen
	return dst
}

// over composites a premultiplied pixel onto the background.
func (t *Terminal) over(c color.RGBA) color.RGBA {
	if c.A == 255 {
		return c
	}
	inv := uint32(255 - c.A)
	blend := func(fg, bg uint8) uint8 { return uint8(uint32(fg) + uint32(bg)*inv/255) }
	return color.RGBA{
		R: blend(c.R, t.background.R),
		G: blend(c.G, t.background.G),
		B: blend(c.B, t.background.B),
		A: 255,
	}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var _ canvas.Surface = (*Terminal)(nil)
