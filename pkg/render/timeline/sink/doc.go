// Package sink provides the drawing surfaces and output formats for
// timelines.
//
// # Overview
//
// Every surface here implements [canvas.Surface], so [timeline.Draw] can
// paint onto any of them:
//
//   - [SVG]: one SVG element per drawing command
//   - [Image]: a raster surface drawn with fogleman/gg, encoded as PNG
//   - [Terminal]: a raster surface shown as half-block character cells,
//     used by the interactive viewer
//
// The Render functions paint a computed [layout.Layout] in one call:
//
//	l, err := layout.Build(entries, 3000, 500)
//	svg, err := sink.RenderSVG(l, cfg)
//	png, err := sink.RenderPNG(l, cfg)
//	pdf, err := sink.RenderPDF(ctx, l, cfg)  // requires rsvg-convert
//	js, err := sink.RenderJSON(l, sink.WithJSONIndent())
//
// # Text
//
// Both the vector and the raster surface measure text with the embedded Go
// fonts scaled by [TextScale]. A line of text is measured, its box rotated,
// and the anchor then decides which edges of the rotated box touch the
// reference point. Lines of a multi-line text are stacked one line-height
// apart, each anchored on its own.
//
// # Errors
//
// Surface methods cannot return errors. A surface keeps the first failure
// (an unknown color, an unusable font) and reports it from Err; the Render
// functions check it before returning output.
//
// [canvas.Surface]: github.com/lukaschristensson/TimeLinePlot/pkg/render/canvas.Surface
// [timeline.Draw]: github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline.Draw
// [layout.Layout]: github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout.Layout
package sink
