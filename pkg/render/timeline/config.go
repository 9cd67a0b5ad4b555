package timeline

import (
	"encoding/json"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas"
)

// EnvPrefix prefixes every environment override, e.g.
// TIMELINE_BACKGROUND_COLOR.
const EnvPrefix = "TIMELINE"

// Config holds the styling of a timeline.
//
// CardBackground may be left empty, in which case cards share the
// background color. [Config.Resolve] fills it in; every constructor and
// loader in this package returns a resolved Config.
type Config struct {
	BackgroundColor canvas.Color `toml:"background_color" json:"background_color" envconfig:"BACKGROUND_COLOR"`
	AxisColor       canvas.Color `toml:"axis_color" json:"axis_color" envconfig:"AXIS_COLOR"`
	FrameColor      canvas.Color `toml:"frame_color" json:"frame_color" envconfig:"FRAME_COLOR"`
	TextColor       canvas.Color `toml:"text_color" json:"text_color" envconfig:"TEXT_COLOR"`
	CardBackground  canvas.Color `toml:"card_background" json:"card_background,omitempty" envconfig:"CARD_BACKGROUND"`

	TitleFont   canvas.Font `toml:"title_font" json:"title_font" envconfig:"TITLE_FONT"`
	MessageFont canvas.Font `toml:"message_font" json:"message_font" envconfig:"MESSAGE_FONT"`
	AxisFont    canvas.Font `toml:"axis_font" json:"axis_font" envconfig:"AXIS_FONT"`

	// Scrollable lets interactive viewers draw the timeline wider than
	// their window and scroll across it.
	Scrollable bool `toml:"scrollable" json:"scrollable" envconfig:"SCROLLABLE"`
}

// Preset names.
const (
	PresetClassic = "classic"
	PresetDark    = "dark"
)

var presets = map[string]Config{
	PresetClassic: {
		BackgroundColor: "black",
		AxisColor:       "green",
		FrameColor:      "green",
		TextColor:       "white",
		TitleFont:       canvas.MustFont("Arial 9"),
		MessageFont:     canvas.MustFont("Arial 7"),
		AxisFont:        canvas.MustFont("Arial 7"),
		Scrollable:      true,
	},
	PresetDark: {
		BackgroundColor: "#0c0c0c",
		AxisColor:       "#bb86fc",
		FrameColor:      "#bb86fc",
		TextColor:       "#e5e5e5",
		CardBackground:  "#1f1f1f",
		TitleFont:       canvas.MustFont("Arial 9 bold"),
		MessageFont:     canvas.MustFont("Arial 7"),
		AxisFont:        canvas.MustFont("Arial 7"),
		Scrollable:      true,
	},
}

// PresetNames lists the built-in presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset returns a built-in preset by name.
func Preset(name string) (Config, error) {
	cfg, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig,
			"unknown theme %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return cfg.Resolve(), nil
}

// DefaultConfig returns the classic preset.
func DefaultConfig() Config {
	return presets[PresetClassic].Resolve()
}

// ConfigOption modifies a Config under construction.
type ConfigOption func(*Config)

// WithColors sets background, axis, frame and text colors.
func WithColors(background, axis, frame, text canvas.Color) ConfigOption {
	return func(c *Config) {
		c.BackgroundColor, c.AxisColor, c.FrameColor, c.TextColor = background, axis, frame, text
	}
}

// WithCardBackground sets a card background distinct from the background.
func WithCardBackground(color canvas.Color) ConfigOption {
	return func(c *Config) { c.CardBackground = color }
}

// WithFonts sets the title, message and axis label fonts.
func WithFonts(title, message, axis canvas.Font) ConfigOption {
	return func(c *Config) { c.TitleFont, c.MessageFont, c.AxisFont = title, message, axis }
}

// WithScrollable sets whether viewers may scroll.
func WithScrollable(scrollable bool) ConfigOption {
	return func(c *Config) { c.Scrollable = scrollable }
}

// NewConfig starts from the classic preset and applies opts.
func NewConfig(opts ...ConfigOption) Config {
	cfg := presets[PresetClassic]
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.Resolve()
}

// Resolve returns a copy with CardBackground defaulted to BackgroundColor.
func (c Config) Resolve() Config {
	if c.CardBackground == "" {
		c.CardBackground = c.BackgroundColor
	}
	return c
}

// follow resolves c after it was overlaid onto base. A card background that
// matched base's background keeps tracking the background.
func (c Config) follow(base Config) Config {
	if base.CardBackground == base.BackgroundColor && c.CardBackground == base.CardBackground {
		c.CardBackground = c.BackgroundColor
	}
	return c.Resolve()
}

// Validate checks that every color resolves and every font has a size.
func (c Config) Validate() error {
	colors := []struct {
		name  string
		color canvas.Color
	}{
		{"background_color", c.BackgroundColor},
		{"axis_color", c.AxisColor},
		{"frame_color", c.FrameColor},
		{"text_color", c.TextColor},
		{"card_background", c.Resolve().CardBackground},
	}
	for _, col := range colors {
		if _, err := canvas.ResolveColor(col.color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s", col.name)
		}
	}
	fonts := []struct {
		name string
		font canvas.Font
	}{
		{"title_font", c.TitleFont},
		{"message_font", c.MessageFont},
		{"axis_font", c.AxisFont},
	}
	for _, f := range fonts {
		if f.font.Family == "" || f.font.Size <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid %s %q", f.name, f.font.String())
		}
	}
	return nil
}

// DecodeConfig reads a TOML theme over base. Keys absent from the document
// keep base's values.
func DecodeConfig(r io.Reader, base Config) (Config, error) {
	cfg := base
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode theme")
	}
	cfg = cfg.follow(base)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// OverlayJSON applies a partial JSON config over base, the way
// DecodeConfig applies a TOML theme.
func OverlayJSON(data []byte, base Config) (Config, error) {
	cfg := base
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	cfg = cfg.follow(base)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML theme file over the classic preset.
func LoadConfig(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open theme")
	}
	defer f.Close()
	return DecodeConfig(f, DefaultConfig())
}

// ApplyEnv overrides fields from TIMELINE_* environment variables.
func (c Config) ApplyEnv() (Config, error) {
	base := c
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment")
	}
	c = c.follow(base)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// EncodeTOML writes the config as a TOML theme.
func (c Config) EncodeTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
