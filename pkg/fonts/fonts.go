// Package fonts provides the font faces used by the raster surfaces.
//
// The Go font family is embedded through golang.org/x/image/font/gofont, so
// raster output looks the same on every machine regardless of which fonts
// are installed. Requested families are mapped onto the closest Go font:
// monospace families onto Go Mono, everything else onto Go (sans-serif).
package fonts

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas"
)

// DPI is the resolution faces are created at. At 72 DPI one point is one
// pixel.
const DPI = 72

// FallbackFontFamily is the CSS font-family list used by vector output.
const FallbackFontFamily = `Arial, Helvetica, 'Go', sans-serif`

var monoFamilies = []string{"mono", "courier", "consolas", "menlo", "monaco"}

// IsMono reports whether family names a monospace font.
func IsMono(family string) bool {
	f := strings.ToLower(family)
	for _, m := range monoFamilies {
		if strings.Contains(f, m) {
			return true
		}
	}
	return false
}

type style struct {
	mono, bold, italic bool
}

var (
	parsedMu sync.Mutex
	parsed   = map[style]*opentype.Font{}
)

func ttfFor(s style) []byte {
	switch {
	case s.mono && s.bold:
		return gomonobold.TTF
	case s.mono:
		return gomono.TTF
	case s.bold && s.italic:
		return gobolditalic.TTF
	case s.bold:
		return gobold.TTF
	case s.italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

func parse(s style) (*opentype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[s]; ok {
		return f, nil
	}
	f, err := opentype.Parse(ttfFor(s))
	if err != nil {
		return nil, err
	}
	parsed[s] = f
	return f, nil
}

// Face returns a new face for f drawn at f.Size * scale points. The parsed
// fonts are shared; faces are not, since a font.Face must not be used
// concurrently.
func Face(f canvas.Font, scale float64) (font.Face, error) {
	size := f.Size * scale
	if size <= 0 {
		return nil, fmt.Errorf("font %q: size must be positive", f.String())
	}
	otf, err := parse(style{mono: IsMono(f.Family), bold: f.Bold, italic: f.Italic})
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", f.String(), err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", f.String(), err)
	}
	return face, nil
}
