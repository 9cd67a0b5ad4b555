// Package timeline draws timeline charts onto a [canvas.Surface].
//
// # Overview
//
// A chart is drawn in two stages. The [layout] package turns normalized
// entries into positions: where each marker sits on the axis and which tier
// each card is stacked on. [Paint] then issues the drawing commands for that
// layout, styled by a [Config]. [Draw] runs both stages against a surface:
//
//	entries, err := entry.Normalize(records)
//	if err != nil {
//	    return err
//	}
//	svg := sink.NewSVG(3000, 500)
//	if _, err := timeline.Draw(svg, entries, timeline.DefaultConfig()); err != nil {
//	    return err
//	}
//
// Draw never clears the surface; callers redrawing onto the same surface
// call Clear first.
//
// # Themes
//
// Configs are plain values. Two presets ship built in ("classic" and
// "dark"); themes can also be read from TOML files with [LoadConfig] and
// overridden from TIMELINE_* environment variables with [Config.ApplyEnv].
//
// [layout]: github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout
package timeline
