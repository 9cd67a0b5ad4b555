// Command timelineplot renders horizontal timeline charts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lukaschristensson/TimeLinePlot/internal/cli"
	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx)
	stop()

	code := errors.ExitCode(err)
	if code != errors.ExitOK && code != errors.ExitCanceled {
		fmt.Fprintf(os.Stderr, "timelineplot: %v\n", err)
	}
	os.Exit(code)
}

func execute(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	inner := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if inner == nil {
			return nil
		}
		return inner(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
