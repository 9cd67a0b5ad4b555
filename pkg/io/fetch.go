package io

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/httputil"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// IsURL reports whether src names an http or https resource.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// ImportURL downloads records, choosing the decoder by the extension of
// the URL path.
func ImportURL(ctx context.Context, f *httputil.Fetcher, src string) ([]entry.Record, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "bad url %s", src)
	}
	format, err := FormatFromPath(u.Path)
	if err != nil {
		return nil, err
	}
	body, err := f.Get(ctx, src)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(body), format)
}

// Load reads records from a URL or a local file.
func Load(ctx context.Context, src string) ([]entry.Record, error) {
	if IsURL(src) {
		return ImportURL(ctx, httputil.NewFetcher(), src)
	}
	return Import(src)
}
