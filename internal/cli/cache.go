package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukaschristensson/TimeLinePlot/pkg/cache"
	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
		Long: `Rendered artifacts are cached per input, theme and size so that
unchanged timelines are not drawn twice. The cache lives under
$XDG_CACHE_HOME/timelineplot.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached artifact",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return clearCache() },
		},
		&cobra.Command{
			Use:   "prune",
			Short: "Remove expired and unreadable artifacts",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return pruneCache() },
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show how many artifacts are cached",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return cacheStats() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, dir)
				return nil
			},
		},
	)
	return cmd
}

func openFileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open cache %s", dir)
	}
	return fc, nil
}

func clearCache() error {
	fc, err := openFileCache()
	if err != nil {
		return err
	}
	if err := fc.Clear(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "clear %s", fc.Dir())
	}
	printSuccess("Cleared cached artifacts")
	printDetail("Directory: %s", fc.Dir())
	return nil
}

func pruneCache() error {
	fc, err := openFileCache()
	if err != nil {
		return err
	}
	n, err := fc.Prune()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "prune %s", fc.Dir())
	}
	printSuccess("Removed %d stale artifact(s)", n)
	return nil
}

func cacheStats() error {
	fc, err := openFileCache()
	if err != nil {
		return err
	}
	u, err := fc.Usage()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read %s", fc.Dir())
	}
	printKeyValue("Directory", fc.Dir())
	printKeyValue("Artifacts", fmt.Sprint(u.Entries))
	printKeyValue("Size", formatBytes(u.Bytes))
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
