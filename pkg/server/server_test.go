package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaschristensson/TimeLinePlot/pkg/cache"
	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/observability"
	"github.com/lukaschristensson/TimeLinePlot/pkg/pipeline"
)

const sampleEntries = `[
	{"time": "1997-08-02T01:12:00", "title": "Company A", "message": "Switched versions:\nv0.0.1 to v1.0.1"},
	{"time": "2001-02-28T10:01:00", "title": "Company F", "message": "Switched versions:\nv3.0.1 to v4.0.1"},
	{"time": "2001-02-28T10:01:00", "title": "Company G", "message": "Switched versions:\nv3.0.1 to v4.0.1"}
]`

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewMemoryCache(32), nil, logger)
	return New(runner, logger, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func renderBody(extra string) string {
	return `{"entries": ` + sampleEntries + extra + `}`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestThemes(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/themes", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["themes"], "classic")
	assert.Contains(t, body["themes"], "dark")
}

func TestRenderDefaultsToSVG(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/render", renderBody(`, "title": "Releases"`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "2", rec.Header().Get("X-Timeline-Tiers"))
	assert.Equal(t, "0", rec.Header().Get("X-Timeline-Skipped"))
	assert.Contains(t, rec.Body.String(), "<svg")
	assert.Contains(t, rec.Body.String(), "<title>Releases</title>")
}

func TestRenderPNGCached(t *testing.T) {
	s := newTestServer(t)
	body := renderBody(`, "format": "png", "width": 800, "height": 300`)

	first := do(t, s, http.MethodPost, "/render", body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Equal(t, "image/png", first.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(first.Body.Bytes(), []byte("\x89PNG")))
	assert.Equal(t, "miss", first.Header().Get("X-Cache"))

	second := do(t, s, http.MethodPost, "/render", body)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestRenderJSONWithRangeAndConfig(t *testing.T) {
	body := renderBody(`, "format": "json", "from": "1999-01-01", "theme": "dark",
		"config": {"background_color": "white"}`)
	rec := do(t, newTestServer(t), http.MethodPost, "/render", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1", rec.Header().Get("X-Timeline-Skipped"))

	var out struct {
		Theme  string `json:"theme"`
		Config struct {
			BackgroundColor string `json:"background_color"`
			AxisColor       string `json:"axis_color"`
			CardBackground  string `json:"card_background"`
		} `json:"config"`
		Placements []struct {
			Title string `json:"title"`
		} `json:"placements"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "dark", out.Theme)
	assert.Equal(t, "white", out.Config.BackgroundColor)
	assert.Equal(t, "#bb86fc", out.Config.AxisColor)
	assert.Equal(t, "#1f1f1f", out.Config.CardBackground)
	assert.Len(t, out.Placements, 2)
}

func TestRenderConfigFollowsBackground(t *testing.T) {
	body := renderBody(`, "format": "json", "config": {"background_color": "navy"}`)
	rec := do(t, newTestServer(t), http.MethodPost, "/render", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Config struct {
			CardBackground string `json:"card_background"`
		} `json:"config"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "navy", out.Config.CardBackground)
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"not json", `{`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", `{"entries": [], "colour": "red"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad format", renderBody(`, "format": "gif"`), http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"negative width", renderBody(`, "width": -5`), http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"narrow surface", renderBody(`, "width": 40`), http.StatusBadRequest, errors.ErrCodeInvalidDimensions},
		{"bad bound", renderBody(`, "from": "yesterday"`), http.StatusBadRequest, errors.ErrCodeTimeParse},
		{"unknown theme", renderBody(`, "theme": "neon"`), http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"bad config color", renderBody(`, "config": {"axis_color": "no-such-color"}`), http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"no entries", `{"entries": []}`, http.StatusBadRequest, errors.ErrCodeEmptyDataset},
		{"degenerate range", renderBody(`, "from": "2001-01-01", "to": "2001-01-01"`), http.StatusBadRequest, errors.ErrCodeDegenerateRange},
		{"bad time", `{"entries": [{"time": "02/28/2001", "title": "x", "message": "y"}]}`, http.StatusBadRequest, errors.ErrCodeTimeParse},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/render", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestRenderMissingTitleReportsEntry(t *testing.T) {
	body := `{"entries": [
		{"time": "1997-08-02T01:12:00", "title": "Company A", "message": "m"},
		{"time": "1998-08-02T01:12:00", "message": "no title"}
	]}`
	rec := do(t, newTestServer(t), http.MethodPost, "/render", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, errors.ErrCodeMalformedEntry, resp.Code)
	require.NotNil(t, resp.Entry)
	assert.Equal(t, 1, *resp.Entry)
}

func TestRenderBodyTooLarge(t *testing.T) {
	s := newTestServer(t, WithMaxBodyBytes(16))
	rec := do(t, s, http.MethodPost, "/render", renderBody(""))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, errors.ErrCodeInvalidInput, decodeError(t, rec).Code)
}

func TestRouting(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodGet, "/render", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nope", "").Code)
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t)
	do(t, s, http.MethodGet, "/healthz", "")
	do(t, s, http.MethodPost, "/render", `{"entries": []}`)

	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.statuses)
}
