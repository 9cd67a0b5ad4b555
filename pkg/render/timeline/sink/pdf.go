package sink

import (
	"context"

	"github.com/lukaschristensson/TimeLinePlot/pkg/render"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
)

// RenderPDF renders the layout as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, l layout.Layout, cfg timeline.Config, opts ...SVGOption) ([]byte, error) {
	svg, err := RenderSVG(l, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
