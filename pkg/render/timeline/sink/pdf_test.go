package sink

import (
	"bytes"
	"context"
	"testing"

	"github.com/lukaschristensson/TimeLinePlot/pkg/render"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
)

func TestRenderPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	data, err := RenderPDF(context.Background(), sampleLayout(1200, 400), timeline.DefaultConfig())
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
