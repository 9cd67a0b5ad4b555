package sink

import (
	"time"

	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleEntries() []entry.Entry {
	return []entry.Entry{
		entry.New(at(1997, 8, 2), "Company A", "Switched versions:\nv0.0.1 to v1.0.1"),
		entry.New(at(1937, 8, 14), "Company B", "Switched versions:\nv0.0.1 to v2.0.1"),
		entry.New(at(2001, 2, 28), "Company C & D", "Switched versions:\nv3.0.1 to v4.0.1"),
		entry.New(at(2001, 2, 28), "Company E", "Switched versions:\nv3.0.1 to v4.0.1"),
	}
}

func sampleLayout(width, height float64) layout.Layout {
	l, err := layout.Build(sampleEntries(), width, height)
	if err != nil {
		panic(err)
	}
	return l
}
