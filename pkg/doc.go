// Package pkg provides the core libraries for TimeLinePlot.
//
// # Overview
//
// TimeLinePlot turns a list of timestamped records into a horizontal
// timeline chart: a dated axis with one card per entry, cards stacked in
// tiers wherever they would overlap. The pkg directory is organized into
// these areas:
//
//  1. [timeline/entry] - Record validation and normalization
//  2. [render/timeline/layout] - Date to pixel mapping and tier stacking
//  3. [render/timeline] - Draw commands, styles and presets
//  4. [render/canvas] and [render/timeline/sink] - Drawing surfaces
//  5. [pipeline] - Orchestration (normalize → layout → render)
//  6. [io], [httputil], [cache], [server] - Input, transport and serving
//
// # Architecture
//
// The typical data flow through TimeLinePlot:
//
//	JSON / YAML / CSV records (file or URL)
//	         ↓
//	    [timeline/entry] package (validate + parse timestamps)
//	         ↓
//	    [render/timeline/layout] package (range, scale, tiers)
//	         ↓
//	    [render/timeline] package (draw calls on a canvas.Surface)
//	         ↓
//	    SVG/PNG/PDF/terminal/JSON output
//
// # Quick Start
//
//	records, _ := io.Import("releases.json")
//	runner := pipeline.NewRunner(cache.NewMemoryCache(64), nil, logger)
//	result, err := runner.Execute(ctx, records, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	os.WriteFile("releases.svg", result.Artifacts[pipeline.FormatSVG], 0o644)
//
// # Supporting Packages
//
//   - [errors]: coded errors shared by every layer
//   - [observability]: hooks for pipeline stages and cache lookups
//   - [fonts]: embedded fonts for raster and PDF output
//   - [buildinfo]: version and cache scope
package pkg
