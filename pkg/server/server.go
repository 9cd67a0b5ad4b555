// Package server exposes the timeline pipeline over HTTP.
//
// # Endpoints
//
//	POST /render   render a timeline from a JSON request body
//	GET  /themes   list the built-in style presets
//	GET  /healthz  liveness probe
//
// A render request carries the records under "entries" plus the same
// options the CLI accepts:
//
//	{
//	  "entries": [{"time": "2001-02-28", "title": "v1.0", "message": "First release"}],
//	  "format": "png",
//	  "theme": "dark",
//	  "from": "1999-01-01"
//	}
//
// The response body is the rendered artifact with a matching Content-Type.
// Errors caused by the request are answered with 400 and a JSON body
// holding the error code; everything else is a 500.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/lukaschristensson/TimeLinePlot/pkg/buildinfo"
	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/observability"
	"github.com/lukaschristensson/TimeLinePlot/pkg/pipeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// DefaultMaxBodyBytes caps the size of a render request body.
const DefaultMaxBodyBytes = 4 << 20

// ContentTypes maps output formats to their media types.
var ContentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

var validate = validator.New()

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	Entries []entry.Record  `json:"entries"`
	Width   float64         `json:"width,omitempty" validate:"gte=0"`
	Height  float64         `json:"height,omitempty" validate:"gte=0"`
	From    string          `json:"from,omitempty"`
	To      string          `json:"to,omitempty"`
	Format  string          `json:"format,omitempty" validate:"omitempty,oneof=svg png pdf json"`
	Theme   string          `json:"theme,omitempty"`
	Title   string          `json:"title,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
	Entry *int        `json:"entry,omitempty"`
}

// Server routes HTTP requests to a pipeline runner. It is an http.Handler.
type Server struct {
	runner       *pipeline.Runner
	logger       *log.Logger
	maxBodyBytes int64
	timeout      time.Duration
	router       chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes limits the size of render request bodies.
func WithMaxBodyBytes(n int64) Option { return func(s *Server) { s.maxBodyBytes = n } }

// WithTimeout bounds how long a single request may run. Zero disables it.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New creates a server. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:       runner,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
		timeout:      time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/themes", s.handleThemes)
	r.Post("/render", s.handleRender)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves h on addr until ctx is canceled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"themes": timeline.PresetNames()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	opts, err := req.Options()
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	result, err := s.runner.Execute(r.Context(), req.Entries, opts)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	format := opts.Formats[0]
	h := w.Header()
	h.Set("Content-Type", ContentTypes[format])
	h.Set("X-Timeline-Tiers", strconv.Itoa(result.Stats.Tiers))
	h.Set("X-Timeline-Skipped", strconv.Itoa(result.Stats.Skipped))
	h.Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Artifacts[format]); err != nil {
		s.logger.Debug("write response", "err", err)
	}
}

// Options converts the request into pipeline options.
func (req RenderRequest) Options() (pipeline.Options, error) {
	if err := validate.Struct(req); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request")
	}
	opts := pipeline.Options{
		Width:  req.Width,
		Height: req.Height,
		Theme:  req.Theme,
		Title:  req.Title,
	}
	if req.Format != "" {
		opts.Formats = []string{req.Format}
	} else {
		opts.Formats = []string{pipeline.FormatSVG}
	}

	var err error
	if opts.From, err = parseBound("from", req.From); err != nil {
		return pipeline.Options{}, err
	}
	if opts.To, err = parseBound("to", req.To); err != nil {
		return pipeline.Options{}, err
	}

	if len(req.Config) > 0 {
		cfg, err := decodeConfig(req.Theme, req.Config)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Config = &cfg
	}
	return opts, nil
}

// decodeConfig overlays a partial JSON config on the named preset.
func decodeConfig(theme string, raw json.RawMessage) (timeline.Config, error) {
	if theme == "" {
		theme = pipeline.DefaultTheme
	}
	base, err := timeline.Preset(theme)
	if err != nil {
		return timeline.Config{}, err
	}
	return timeline.OverlayJSON(raw, base)
}

func parseBound(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := entry.ParseTime(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeParse, err, "%s", name)
	}
	return &t, nil
}

// =============================================================================
// Responses
// =============================================================================

func statusFor(err error) int {
	if errors.IsInput(err) {
		return http.StatusBadRequest
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	resp := ErrorResponse{Code: errors.GetCode(err), Error: err.Error()}
	if resp.Code == "" {
		resp.Code = errors.ErrCodeInternal
	}
	var recErr *entry.RecordError
	if stderrors.As(err, &recErr) {
		resp.Entry = &recErr.Index
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		resp.Error = "internal error"
	} else {
		s.logger.Debug("rejected request", "path", r.URL.Path, "code", resp.Code, "err", err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// =============================================================================
// Middleware
// =============================================================================

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		s.logger.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", dur.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
