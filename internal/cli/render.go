package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/io"
	"github.com/lukaschristensson/TimeLinePlot/pkg/pipeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// watchDebounce coalesces the bursts of events editors produce on save.
const watchDebounce = 150 * time.Millisecond

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file (single format) or base path (several)
	formats string  // comma-separated output formats
	width   float64 // surface width in pixels
	height  float64 // surface height in pixels
	from    string  // left bound of the axis
	to      string  // right bound of the axis
	theme   string  // style preset name
	config  string  // TOML theme file, overrides theme
	title   string  // document title (SVG, PDF)
	watch   bool    // re-render when the input or theme file changes
	noCache bool    // bypass the artifact cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		formats: pipeline.FormatSVG,
		width:   pipeline.DefaultWidth,
		height:  pipeline.DefaultHeight,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a timeline to SVG, PNG, PDF or a JSON layout",
		Long: `Render a timeline from a JSON, YAML or CSV file of records. The file
may also be an http or https URL; outputs then land in the working directory.

Each record needs a time, a title and a message. Times are ISO 8601
timestamps; a timestamp without an offset is read as UTC.`,
		Example: `  timelineplot render releases.json
  timelineplot render releases.yaml -f svg,png -o out/releases
  timelineplot render releases.csv --from 1995-01-01 --theme dark --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "surface width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "surface height in pixels")
	cmd.Flags().StringVar(&opts.from, "from", "", "left end of the time axis (default: two years before the first entry)")
	cmd.Flags().StringVar(&opts.to, "to", "", "right end of the time axis (default: two years after the last entry)")
	cmd.Flags().StringVar(&opts.theme, "theme", pipeline.DefaultTheme, "style preset: classic, dark")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML theme file (overrides --theme)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the input or theme file changes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	if opts.output != "" {
		if err := errors.ValidatePath(opts.output); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	render := func(ctx context.Context) error {
		return c.renderOnce(ctx, runner, input, formats, opts)
	}
	if err := render(ctx); err != nil {
		if !opts.watch {
			return err
		}
		printError("%v", err)
	}
	if !opts.watch {
		return nil
	}
	local := lo.Reject(lo.Compact([]string{input, opts.config}), func(p string, _ int) bool { return io.IsURL(p) })
	if len(local) == 0 {
		return errors.New(errors.ErrCodeUnsupported, "--watch needs a local file")
	}
	return c.watch(ctx, local, render)
}

// renderOnce reads input and writes one file per format.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, input string, formats []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	records, err := io.Load(ctx, input)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.theme, opts.config)
	if err != nil {
		return err
	}
	pipeOpts := pipeline.Options{
		Width:   opts.width,
		Height:  opts.height,
		Formats: formats,
		Theme:   opts.theme,
		Title:   opts.title,
		Config:  &cfg,
		Logger:  logger,
	}
	if pipeOpts.From, err = parseBound("--from", opts.from); err != nil {
		return err
	}
	if pipeOpts.To, err = parseBound("--to", opts.to); err != nil {
		return err
	}

	result, err := runner.Execute(ctx, records, pipeOpts)
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, localName(input), formats)
	for _, format := range formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Rendered %s", input))
	printStats(result.Stats, result.CacheInfo.RenderHit)
	for _, format := range formats {
		printFile(paths[format])
	}
	return nil
}

// watch calls render whenever one of paths changes, until ctx is done.
// Render failures are reported and watching continues.
func (c *CLI) watch(ctx context.Context, paths []string, render func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "start watcher")
	}
	defer w.Close()

	// Editors often replace a file on save, so watch the directories and
	// filter by name.
	watched := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", p)
		}
		watched[abs] = true
	}
	for _, dir := range lo.Uniq(lo.Map(lo.Keys(watched), func(p string, _ int) string { return filepath.Dir(p) })) {
		if err := w.Add(dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", dir)
		}
	}

	printInfo("Watching %s (ctrl+c to stop)", strings.Join(paths, ", "))
	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce = time.After(watchDebounce)
		case <-debounce:
			debounce = nil
			if err := render(ctx); err != nil {
				printError("%v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			loggerFromContext(ctx).Warn("watcher", "err", err)
		}
	}
}

func parseBound(flag, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := entry.ParseTime(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeParse, err, "%s", flag)
	}
	return &t, nil
}

// localName is the file name a URL input is saved under; paths pass through.
func localName(src string) string {
	if !io.IsURL(src) {
		return src
	}
	u, err := url.Parse(src)
	if err != nil || path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return "timeline"
	}
	return path.Base(u.Path)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its output file. A single format written
// to an explicit output keeps that exact path. A derived path never
// overwrites the input.
func outputPaths(output, input string, formats []string) map[string]string {
	if len(formats) == 1 && output != "" {
		return map[string]string{formats[0]: output}
	}
	base := basePath(output, input)
	return lo.SliceToMap(formats, func(f string) (string, string) {
		p := base + "." + f
		if filepath.Clean(p) == filepath.Clean(input) {
			p = base + ".layout." + f
		}
		return f, p
	})
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
