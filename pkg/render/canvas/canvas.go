// Package canvas defines the drawing-surface capability that the timeline
// renderer draws against.
//
// The renderer never rasterizes anything itself. It computes geometry and
// issues commands against a [Surface]; adapters in the sink package turn
// those commands into SVG, raster images or terminal cells. [Recorder] keeps
// the commands instead, which is what the tests assert against.
package canvas

// Point is a position in surface coordinates (pixels, y growing downward).
type Point struct {
	X, Y float64
}

// Surface is the set of drawing operations a timeline needs.
//
// A Surface is owned by a single caller for the duration of a draw; none of
// the adapters are safe for concurrent drawing.
type Surface interface {
	// Width and Height report the surface size in pixels.
	Width() float64
	Height() float64

	// SetLineWidth sets the stroke width used by subsequent DrawLine calls.
	SetLineWidth(w float64)

	// DrawLine strokes a straight segment.
	DrawLine(x0, y0, x1, y1 float64, c Color)

	// DrawEllipse fills the ellipse whose bounding box has its top-left
	// corner at (x, y) and extends 2*rx by 2*ry.
	DrawEllipse(x, y, rx, ry float64, c Color)

	// DrawRect fills the axis-aligned rectangle between two corners.
	DrawRect(x0, y0, x1, y1 float64, c Color)

	// DrawPolygon fills the closed polygon through points.
	DrawPolygon(c Color, points ...Point)

	// DrawText draws text relative to (x, y) as directed by anchor, rotated
	// counterclockwise by rotation degrees. Embedded newlines start new
	// lines, each one line-height lower than the previous.
	DrawText(x, y float64, text string, f Font, c Color, rotation float64, anchor Anchor)

	// Clear wipes the whole surface.
	Clear()
}
