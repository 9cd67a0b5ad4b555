package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/observability"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/sink"
)

// Render paints a layout into each of opts.Formats.
func Render(ctx context.Context, l layout.Layout, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	cfg := *opts.Config

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(ctx, l, cfg, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, l layout.Layout, cfg timeline.Config, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, cfg, svgOptions(opts)...)
	case FormatPNG:
		return sink.RenderPNG(l, cfg)
	case FormatPDF:
		return sink.RenderPDF(ctx, l, cfg, svgOptions(opts)...)
	case FormatJSON:
		return sink.RenderJSON(l, sink.WithJSONTheme(opts.Theme), sink.WithJSONConfig(cfg), sink.WithJSONIndent())
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

func svgOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithSVGTitle(opts.Title))
	}
	return svgOpts
}
