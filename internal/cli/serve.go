package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/lukaschristensson/TimeLinePlot/pkg/cache"
	"github.com/lukaschristensson/TimeLinePlot/pkg/pipeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	cacheSize int
	timeout   time.Duration
	maxBody   int64
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		cacheSize: 256,
		timeout:   time.Minute,
		maxBody:   server.DefaultMaxBodyBytes,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render timelines over HTTP",
		Long: `Serve POST /render, GET /themes and GET /healthz.

A render request is a JSON object with the records under "entries" and
optional width, height, from, to, format, theme, title and config fields.
Rendered artifacts are kept in memory and reused for identical requests.`,
		Example: `  timelineplot serve --addr :9000
  curl -d '{"entries":[{"time":"2001-02-28","title":"v1","message":"First"}]}' localhost:9000/render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().IntVar(&opts.cacheSize, "cache-size", opts.cacheSize, "rendered artifacts kept in memory (0 disables caching)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request time limit")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "largest accepted request body in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	var store cache.Cache = cache.NewNullCache()
	if opts.cacheSize > 0 {
		store = cache.NewMemoryCache(opts.cacheSize)
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	h := server.New(runner, c.Logger,
		server.WithTimeout(opts.timeout),
		server.WithMaxBodyBytes(opts.maxBody))
	return server.ListenAndServe(ctx, opts.addr, h, c.Logger)
}
