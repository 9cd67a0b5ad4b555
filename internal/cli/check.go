package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/io"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// messageColumnWidth caps the message preview in the entry table.
const messageColumnWidth = 40

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a records file and list its entries",
		Long: `Validate a records file the way render does, without drawing.

On success the entries are listed oldest first together with the date
range render would use. With -o the normalized entries are written out
again; the format follows the file extension (.json, .yaml, .csv).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the normalized entries to this file")

	return cmd
}

func runCheck(ctx context.Context, input, output string) error {
	logger := loggerFromContext(ctx)

	records, err := io.Load(ctx, input)
	if err != nil {
		return err
	}
	entries, err := entry.Normalize(records)
	if err != nil {
		var recErr *entry.RecordError
		if stderrors.As(err, &recErr) {
			printError("entry %d: %s", recErr.Index, errors.UserMessage(recErr))
			printDetail("%s", recErr.Record)
		}
		return err
	}
	logger.Debug("normalized", "entries", len(entries))

	if len(entries) == 0 {
		printWarning("%s has no entries", input)
		return errors.New(errors.ErrCodeEmptyDataset, "no entries in %s", input)
	}

	fmt.Fprintln(stdout, entryTable(entries))
	r, err := layout.DefaultRange(entries)
	if err != nil {
		return err
	}
	printKeyValue("Entries", fmt.Sprint(len(entries)))
	printKeyValue("Range", fmt.Sprintf("%s %s %s (%d days)",
		r.FarLeft.Format(time.DateOnly), iconArrow, r.FarRight.Format(time.DateOnly), r.Days()))

	if output != "" {
		if err := io.Export(entries, output); err != nil {
			return err
		}
		printFile(output)
	}
	printSuccess("%s is valid", input)
	return nil
}

// entryTable lists entries oldest first. Entries with equal times keep
// their input order.
func entryTable(entries []entry.Entry) string {
	sorted := sortedByTime(entries)
	rows := lo.Map(sorted, func(e entry.Entry, _ int) []string {
		return []string{
			e.Time.Format(timeline.DateFormat),
			e.Time.Format(time.DateTime),
			e.Title,
			runewidth.Truncate(strings.ReplaceAll(e.Message, "\n", " ⏎ "), messageColumnWidth, "…"),
		}
	})

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Label", "Time", "Title", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(styleHeader)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 2:
				return base.Foreground(colorWhite)
			default:
				return base.Foreground(colorGray)
			}
		}).
		Render()
}

func sortedByTime(entries []entry.Entry) []entry.Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b entry.Entry) int { return a.Time.Compare(b.Time) })
	return out
}
