package io

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// naiveLayout is used for UTC times, which read back as UTC.
const naiveLayout = "2006-01-02T15:04:05"

type record struct {
	Time    string `json:"time" yaml:"time"`
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
}

type output struct {
	Entries []record `json:"entries" yaml:"entries"`
}

func toRecords(entries []entry.Entry) []record {
	return lo.Map(entries, func(e entry.Entry, _ int) record {
		return record{Time: FormatTime(e.Time), Title: e.Title, Message: e.Message}
	})
}

// FormatTime renders a time the way the writers do: naive ISO 8601 for UTC
// times, RFC 3339 with the offset otherwise. Sub-second precision is kept.
func FormatTime(t time.Time) string {
	if t.Location() == time.UTC {
		if t.Nanosecond() != 0 {
			return t.Format(naiveLayout + ".999999999")
		}
		return t.Format(naiveLayout)
	}
	return t.Format(time.RFC3339Nano)
}

// Write encodes entries to w in the given format.
func Write(entries []entry.Entry, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(entries, w)
	case FormatYAML:
		return WriteYAML(entries, w)
	case FormatCSV:
		return WriteCSV(entries, w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", f)
	}
}

// WriteJSON writes entries as an indented {"entries": [...]} document.
func WriteJSON(entries []entry.Entry, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output{Entries: toRecords(entries)}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// WriteYAML writes entries as a mapping with an entries list.
func WriteYAML(entries []entry.Entry, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(output{Entries: toRecords(entries)}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
	}
	return nil
}

// WriteCSV writes a time,title,message header and one row per entry.
func WriteCSV(entries []entry.Entry, w io.Writer) error {
	cw := csv.NewWriter(w)
	rows := append([][]string{{"time", "title", "message"}}, lo.Map(toRecords(entries), func(r record, _ int) []string {
		return []string{r.Time, r.Title, r.Message}
	})...)
	if err := cw.WriteAll(rows); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode csv")
	}
	return nil
}

// Export writes entries to a file, choosing the encoder by extension.
func Export(entries []entry.Entry, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(entries, f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}
