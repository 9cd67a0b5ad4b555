// Package pipeline runs the complete normalize → layout → render sequence
// that the CLI and the HTTP server share.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Normalize: validate raw records and parse their times
//  2. Layout: place every visible entry on the axis and stack overlapping cards
//  3. Render: paint the layout into each requested format (SVG, PNG, PDF, JSON)
//
// Each stage can be run on its own through a [Runner], or all three through
// [Runner.Execute]. Rendered artifacts are cached when the runner has a cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, records, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Theme:   "dark",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default surface width in pixels.
	DefaultWidth = 3000.0

	// DefaultHeight is the default surface height in pixels.
	DefaultHeight = 500.0

	// DefaultTheme is the preset used when no theme or config is given.
	DefaultTheme = "classic"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It decodes from JSON request bodies.
type Options struct {
	// Layout options
	Width  float64    `json:"width,omitempty"`
	Height float64    `json:"height,omitempty"`
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Theme   string   `json:"theme,omitempty"`
	Title   string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Config *timeline.Config `json:"-"` // overrides Theme when set
	Logger *log.Logger      `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Entries are the normalized entries, in input order.
	Entries []entry.Entry

	// Layout is the computed placement of every visible entry.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timings.
	Stats Stats

	// CacheInfo tracks whether artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records       int
	Visible       int
	Skipped       int
	Tiers         int
	NormalizeTime time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // all artifacts came from the cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported. Formats are lower case.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list such as "svg, png" and
// validates each format. Duplicates are dropped.
func ParseFormats(s string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(formats, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults, resolves the styling and checks
// formats.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	cfg, err := o.ResolveConfig()
	if err != nil {
		return err
	}
	o.Config = &cfg
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ResolveConfig returns Config if set, else the Theme preset (or the
// default theme), validated.
func (o *Options) ResolveConfig() (timeline.Config, error) {
	var cfg timeline.Config
	if o.Config != nil {
		cfg = o.Config.Resolve()
	} else {
		if o.Theme == "" {
			o.Theme = DefaultTheme
		}
		preset, err := timeline.Preset(o.Theme)
		if err != nil {
			return timeline.Config{}, err
		}
		cfg = preset
	}
	if err := cfg.Validate(); err != nil {
		return timeline.Config{}, err
	}
	return cfg, nil
}

// LayoutOptions converts From and To into layout options.
func (o *Options) LayoutOptions() []layout.Option {
	var opts []layout.Option
	if o.From != nil {
		opts = append(opts, layout.WithFarLeft(*o.From))
	}
	if o.To != nil {
		opts = append(opts, layout.WithFarRight(*o.To))
	}
	return opts
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func (s Stats) String() string {
	return fmt.Sprintf("%d records, %d visible, %d skipped, %d tiers", s.Records, s.Visible, s.Skipped, s.Tiers)
}
