package timeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BackgroundColor != "black" || cfg.AxisColor != "green" || cfg.FrameColor != "green" || cfg.TextColor != "white" {
		t.Errorf("colors = %+v", cfg)
	}
	if cfg.CardBackground != cfg.BackgroundColor {
		t.Errorf("CardBackground = %q, want the background %q", cfg.CardBackground, cfg.BackgroundColor)
	}
	if cfg.TitleFont.String() != "Arial 9" || cfg.MessageFont.String() != "Arial 7" || cfg.AxisFont.String() != "Arial 7" {
		t.Errorf("fonts = %s / %s / %s", cfg.TitleFont, cfg.MessageFont, cfg.AxisFont)
	}
	if !cfg.Scrollable {
		t.Error("Scrollable = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			cfg, err := Preset(name)
			if err != nil {
				t.Fatalf("Preset(%q) error: %v", name, err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
			if cfg.CardBackground == "" {
				t.Error("preset is not resolved")
			}
		})
	}

	dark, _ := Preset(" Dark ")
	if dark.CardBackground != "#1f1f1f" {
		t.Errorf("dark CardBackground = %q", dark.CardBackground)
	}

	if _, err := Preset("neon"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Preset(neon) error = %v, want INVALID_CONFIG", err)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithColors("white", "black", "red", "blue"),
		WithFonts(canvas.MustFont("Mono 12"), canvas.MustFont("Mono 8"), canvas.MustFont("Mono 6")),
		WithScrollable(false),
	)
	if cfg.BackgroundColor != "white" || cfg.FrameColor != "red" {
		t.Errorf("colors = %+v", cfg)
	}
	if cfg.CardBackground != "white" {
		t.Errorf("CardBackground = %q, want white", cfg.CardBackground)
	}
	if cfg.MessageFont.Family != "Mono" || cfg.Scrollable {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestResolveDoesNotOverride(t *testing.T) {
	cfg := Config{BackgroundColor: "black", CardBackground: "gray"}.Resolve()
	if cfg.CardBackground != "gray" {
		t.Errorf("CardBackground = %q, want gray", cfg.CardBackground)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad background", func(c *Config) { c.BackgroundColor = "nope" }},
		{"bad card background", func(c *Config) { c.CardBackground = "#12" }},
		{"missing font", func(c *Config) { c.AxisFont = canvas.Font{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	doc := `
background_color = "#101010"
title_font = "{Times New Roman} 11 bold"
scrollable = false
`
	cfg, err := DecodeConfig(strings.NewReader(doc), DefaultConfig())
	if err != nil {
		t.Fatalf("DecodeConfig() error: %v", err)
	}
	if cfg.BackgroundColor != "#101010" || cfg.CardBackground != "#101010" {
		t.Errorf("BackgroundColor = %q, CardBackground = %q", cfg.BackgroundColor, cfg.CardBackground)
	}
	if cfg.AxisColor != "green" {
		t.Errorf("AxisColor = %q, want the base value", cfg.AxisColor)
	}
	if cfg.TitleFont.Family != "Times New Roman" || !cfg.TitleFont.Bold {
		t.Errorf("TitleFont = %+v", cfg.TitleFont)
	}
	if cfg.Scrollable {
		t.Error("Scrollable = true, want false")
	}

	if _, err := DecodeConfig(strings.NewReader(`title_font = "Arial"`), DefaultConfig()); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad font error = %v, want INVALID_CONFIG", err)
	}
	if _, err := DecodeConfig(strings.NewReader(`axis_color = "mauve-ish"`), DefaultConfig()); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad color error = %v, want INVALID_CONFIG", err)
	}
}

func TestOverlayJSON(t *testing.T) {
	dark, err := Preset(PresetDark)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := OverlayJSON([]byte(`{"background_color": "white", "axis_font": "Mono 8"}`), dark)
	if err != nil {
		t.Fatalf("OverlayJSON() error: %v", err)
	}
	if cfg.BackgroundColor != "white" || cfg.CardBackground != "#1f1f1f" {
		t.Errorf("BackgroundColor = %q, CardBackground = %q", cfg.BackgroundColor, cfg.CardBackground)
	}
	if cfg.AxisFont.Family != "Mono" || cfg.AxisFont.Size != 8 {
		t.Errorf("AxisFont = %+v", cfg.AxisFont)
	}

	cfg, err = OverlayJSON([]byte(`{"background_color": "navy"}`), DefaultConfig())
	if err != nil {
		t.Fatalf("OverlayJSON() error: %v", err)
	}
	if cfg.CardBackground != "navy" {
		t.Errorf("CardBackground = %q, want it to follow the background", cfg.CardBackground)
	}

	if _, err := OverlayJSON([]byte(`{"text_color": 3}`), DefaultConfig()); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad JSON error = %v, want INVALID_CONFIG", err)
	}
}

func TestEncodeTOMLRoundTrip(t *testing.T) {
	dark, err := Preset(PresetDark)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := dark.EncodeTOML(&buf); err != nil {
		t.Fatalf("EncodeTOML() error: %v", err)
	}
	back, err := DecodeConfig(&buf, DefaultConfig())
	if err != nil {
		t.Fatalf("DecodeConfig() error: %v\n%s", err, buf.String())
	}
	if back != dark {
		t.Errorf("round trip = %+v, want %+v", back, dark)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.toml")
	if err := os.WriteFile(path, []byte(`text_color = "yellow"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.TextColor != "yellow" {
		t.Errorf("TextColor = %q", cfg.TextColor)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TIMELINE_BACKGROUND_COLOR", "#222222")
	t.Setenv("TIMELINE_AXIS_FONT", "Courier 8 italic")
	t.Setenv("TIMELINE_SCROLLABLE", "false")

	cfg, err := DefaultConfig().ApplyEnv()
	if err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}
	if cfg.BackgroundColor != "#222222" {
		t.Errorf("BackgroundColor = %q", cfg.BackgroundColor)
	}
	if cfg.CardBackground != "#222222" {
		t.Errorf("CardBackground = %q, want it to follow the background", cfg.CardBackground)
	}
	if cfg.AxisFont.Family != "Courier" || !cfg.AxisFont.Italic {
		t.Errorf("AxisFont = %+v", cfg.AxisFont)
	}
	if cfg.Scrollable {
		t.Error("Scrollable = true, want false")
	}
	if cfg.FrameColor != "green" {
		t.Errorf("FrameColor = %q, want unchanged", cfg.FrameColor)
	}
}
