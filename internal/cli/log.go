// Package cli implements the timelineplot command-line interface.
//
// This package provides commands for rendering timelines from JSON, YAML or
// CSV records, viewing them in the terminal, validating input files and
// serving renders over HTTP. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, PDF or JSON layout files
//   - view: Scroll through a timeline in the terminal
//   - check: Validate records and list them as a table
//   - serve: Render timelines over HTTP
//   - theme: Print a style preset as TOML
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports every pipeline stage and cache lookup. Loggers are passed through
// context.Context.
//
// # Example
//
//	import "github.com/lukaschristensson/TimeLinePlot/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Rendered releases.svg (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Debug Hooks
// =============================================================================

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hooks")}
}

func (h *logHooks) OnNormalizeStart(_ context.Context, records int) {
	h.logger.Debug("normalize", "records", records)
}

func (h *logHooks) OnNormalizeComplete(_ context.Context, entries int, d time.Duration, err error) {
	h.logger.Debug("normalized", "entries", entries, "duration", d, "err", err)
}

func (h *logHooks) OnLayoutStart(_ context.Context, entries int) {
	h.logger.Debug("layout", "entries", entries)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, placements, tiers int, d time.Duration, err error) {
	h.logger.Debug("laid out", "placements", placements, "tiers", tiers, "duration", d, "err", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("rendered", "formats", formats, "duration", d, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, format string) {
	h.logger.Debug("cache hit", "format", format)
}

func (h *logHooks) OnCacheMiss(_ context.Context, format string) {
	h.logger.Debug("cache miss", "format", format)
}

func (h *logHooks) OnCacheSet(_ context.Context, format string, size int) {
	h.logger.Debug("cache set", "format", format, "bytes", size)
}

func (h *logHooks) OnFetchStart(_ context.Context, url string) {
	h.logger.Debug("fetch", "url", url)
}

func (h *logHooks) OnFetchComplete(_ context.Context, url string, size, attempts int, d time.Duration, err error) {
	h.logger.Debug("fetched", "url", url, "bytes", size, "attempts", attempts, "duration", d, "err", err)
}
