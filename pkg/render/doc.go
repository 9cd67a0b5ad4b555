// Package render holds the drawing packages of TimeLinePlot and the
// conversions shared by them.
//
// # Overview
//
//   - [canvas]: the drawing-surface interface every chart draws against
//   - [timeline]: timeline styling and drawing
//   - [timeline/layout]: timeline geometry (date mapping, card stacking)
//   - [timeline/sink]: surfaces that produce SVG, PNG, PDF, JSON and
//     terminal output
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert an SVG document using the external
// rsvg-convert tool from librsvg:
//
//	svg := sink.NewSVG(3000, 500)
//	timeline.Draw(svg, entries, cfg)
//	pdf, err := render.ToPDF(ctx, svg.Bytes())
//
// When rsvg-convert is not installed the conversions fail with an
// UNSUPPORTED error. [Available] reports whether it can be found.
//
// [canvas]: github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas
// [timeline]: github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline
// [timeline/layout]: github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout
// [timeline/sink]: github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/sink
package render
