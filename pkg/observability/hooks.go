// Package observability lets an application watch the timeline pipeline
// without the pipeline depending on any metrics or tracing backend.
//
// Four hook sets are defined: pipeline stages, the artifact cache, remote
// record fetches and the HTTP server. Each starts out as a no-op. An
// application registers its own implementation once at startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// and the libraries report to whatever is registered:
//
//	observability.Pipeline().OnLayoutStart(ctx, len(entries))
//	// ... compute layout ...
//	observability.Pipeline().OnLayoutComplete(ctx, len(l.Placements), l.Tiers(), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the timeline pipeline.
type PipelineHooks interface {
	// Normalize events
	OnNormalizeStart(ctx context.Context, records int)
	OnNormalizeComplete(ctx context.Context, entries int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, entries int)
	OnLayoutComplete(ctx context.Context, placements, tiers int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the artifact cache.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, format string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, format string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, format string, size int)
}

// =============================================================================
// Fetch Hooks
// =============================================================================

// FetchHooks receives events from remote record downloads.
type FetchHooks interface {
	OnFetchStart(ctx context.Context, url string)

	// OnFetchComplete reports the body size and how many requests were made.
	OnFetchComplete(ctx context.Context, url string, size, attempts int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the status written for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnNormalizeStart(context.Context, int)                            {}
func (NoopPipelineHooks) OnNormalizeComplete(context.Context, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopFetchHooks is a no-op implementation of FetchHooks.
type NoopFetchHooks struct{}

func (NoopFetchHooks) OnFetchStart(context.Context, string)                                    {}
func (NoopFetchHooks) OnFetchComplete(context.Context, string, int, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// registry holds the active hook sets. A zero registry is not usable; see
// defaults.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	fetch    FetchHooks
	http     HTTPHooks
}

var hooks = defaults()

func defaults() *registry {
	return &registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		fetch:    NoopFetchHooks{},
		http:     NoopHTTPHooks{},
	}
}

// set stores h in *slot unless h is nil.
func set[T comparable](slot *T, h T) {
	var zero T
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if h != zero {
		*slot = h
	}
}

func get[T any](slot *T) T {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return *slot
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { set(&hooks.pipeline, h) }

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { set(&hooks.cache, h) }

// SetFetchHooks registers fetch hooks. A nil h is ignored.
func SetFetchHooks(h FetchHooks) { set(&hooks.fetch, h) }

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { set(&hooks.http, h) }

// Pipeline, Cache, Fetch and HTTP return the registered hook sets.
func Pipeline() PipelineHooks { return get(&hooks.pipeline) }
func Cache() CacheHooks       { return get(&hooks.cache) }
func Fetch() FetchHooks       { return get(&hooks.fetch) }
func HTTP() HTTPHooks         { return get(&hooks.http) }

// Reset restores every hook set to its no-op default.
func Reset() {
	d := defaults()
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.pipeline, hooks.cache, hooks.fetch, hooks.http = d.pipeline, d.cache, d.fetch, d.http
}
