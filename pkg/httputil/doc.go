// Package httputil fetches record files over HTTP.
//
// # Overview
//
// Record files do not have to live on disk: the CLI accepts http and https
// URLs wherever it accepts a path. This package provides the transport:
//
//   - [Fetcher]: bounded GET requests with a timeout
//   - [Retry]: retries with exponential backoff for transient failures
//
// # Retries
//
// Connection errors and 5xx/429 responses are wrapped in [RetryableError]
// and retried; any other status fails at once:
//
//	f := httputil.NewFetcher(httputil.WithAttempts(3))
//	body, err := f.Get(ctx, "https://example.com/releases.json")
//
// # Limits
//
// Response bodies larger than [DefaultMaxBytes] are rejected rather than
// truncated, so a partial file is never parsed.
package httputil
