package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a surface-renderable color: an SVG/X11 name ("green") or a hex
// string ("#bb86fc", "#fff").
type Color string

// RGBA resolves the color for raster adapters.
func (c Color) RGBA() (color.RGBA, error) {
	return ResolveColor(c)
}

// ResolveColor turns a named or hex color into RGBA.
func ResolveColor(c Color) (color.RGBA, error) {
	s := strings.TrimSpace(strings.ToLower(string(c)))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}
	if named, ok := colornames.Map[s]; ok {
		return named, nil
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("unknown color %q", string(c))
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("unknown color %q", string(c))
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Font is a Tk-style font description: "Family Size [bold] [italic]".
type Font struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// ParseFont parses descriptions such as "Arial 9" or "Helvetica 12 bold".
// A family made of several words may be written with braces, as Tk does:
// "{Times New Roman} 10".
func ParseFont(s string) (Font, error) {
	s = strings.TrimSpace(s)
	var f Font
	if strings.HasPrefix(s, "{") {
		end := strings.Index(s, "}")
		if end < 0 {
			return Font{}, fmt.Errorf("font %q: unterminated family", s)
		}
		f.Family = s[1:end]
		s = s[end+1:]
	}
	fields := strings.Fields(s)
	if f.Family == "" {
		if len(fields) == 0 {
			return Font{}, fmt.Errorf("font %q: missing family", s)
		}
		f.Family, fields = fields[0], fields[1:]
	}
	if len(fields) == 0 {
		return Font{}, fmt.Errorf("font %q: missing size", s)
	}
	size, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || size <= 0 {
		return Font{}, fmt.Errorf("font %q: invalid size %q", s, fields[0])
	}
	f.Size = size
	for _, mod := range fields[1:] {
		switch strings.ToLower(mod) {
		case "bold":
			f.Bold = true
		case "italic":
			f.Italic = true
		case "normal", "roman":
		default:
			return Font{}, fmt.Errorf("font %q: unknown style %q", s, mod)
		}
	}
	return f, nil
}

// MustFont is ParseFont for constant descriptions.
func MustFont(s string) Font {
	f, err := ParseFont(s)
	if err != nil {
		panic(err)
	}
	return f
}

// String formats the font back into its description.
func (f Font) String() string {
	family := f.Family
	if strings.ContainsAny(family, " \t") {
		family = "{" + family + "}"
	}
	s := family + " " + strconv.FormatFloat(f.Size, 'f', -1, 64)
	if f.Bold {
		s += " bold"
	}
	if f.Italic {
		s += " italic"
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (f Font) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Font) UnmarshalText(b []byte) error {
	parsed, err := ParseFont(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Anchor combines n/s and e/w flags to say which side of the text box sits
// on the reference point. The empty anchor centers the text on it.
type Anchor string

// Common anchors.
const (
	AnchorCenter    Anchor = ""
	AnchorNorth     Anchor = "n"
	AnchorSouth     Anchor = "s"
	AnchorEast      Anchor = "e"
	AnchorWest      Anchor = "w"
	AnchorNorthEast Anchor = "ne"
	AnchorNorthWest Anchor = "nw"
	AnchorSouthEast Anchor = "se"
	AnchorSouthWest Anchor = "sw"
)

func (a Anchor) North() bool { return strings.Contains(string(a), "n") }
func (a Anchor) South() bool { return !a.North() && strings.Contains(string(a), "s") }
func (a Anchor) West() bool  { return strings.Contains(string(a), "w") }
func (a Anchor) East() bool  { return !a.West() && strings.Contains(string(a), "e") }

// TopLeft returns the top-left corner of a w by h box anchored at (x, y).
// North puts the box's top edge on y, south its bottom edge; west puts its
// left edge on x, east its right edge.
func (a Anchor) TopLeft(x, y, w, h float64) (float64, float64) {
	x -= w / 2
	y -= h / 2
	switch {
	case a.North():
		y += h / 2
	case a.South():
		y -= h / 2
	}
	switch {
	case a.West():
		x += w / 2
	case a.East():
		x -= w / 2
	}
	return x, y
}
