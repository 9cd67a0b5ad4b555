package pipeline

import (
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// GenerateLayout builds the layout for entries on an opts.Width by
// opts.Height surface, using opts.From and opts.To as explicit range
// bounds where given.
func GenerateLayout(entries []entry.Entry, opts Options) (layout.Layout, error) {
	opts.SetLayoutDefaults()
	return layout.Build(entries, opts.Width, opts.Height, opts.LayoutOptions()...)
}
