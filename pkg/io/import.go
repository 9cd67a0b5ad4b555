package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// Format names a record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV}

// document is the object form of a record file.
type document struct {
	Entries []entry.Record `json:"entries" yaml:"entries"`
}

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell the format of %s (want .json, .yaml, .yml or .csv)", path)
	}
}

// Read decodes records from r in the given format.
func Read(r io.Reader, f Format) ([]entry.Record, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatCSV:
		return ReadCSV(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", f)
	}
}

// ReadJSON decodes a JSON array of records, or an object holding one under
// "entries". Empty input yields no records.
func ReadJSON(r io.Reader) ([]entry.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read json")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var records []entry.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
		return records, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return doc.Entries, nil
}

// ReadYAML decodes a YAML sequence of records, or a mapping holding one
// under "entries". Unquoted timestamps are accepted as well as strings.
func ReadYAML(r io.Reader) ([]entry.Record, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		var records []entry.Record
		if err := node.Decode(&records); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
		return records, nil
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
		return doc.Entries, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "yaml document must be a list of entries or a mapping with an entries key (line %d)", node.Line)
	}
}

// ReadCSV decodes a header row followed by one record per row. The header
// must name the columns time, title and message; other columns are ignored.
// A column missing from the header, or a row too short to reach it, leaves
// that field missing in every affected record.
func ReadCSV(r io.Reader) ([]entry.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv header")
	}
	names := lo.Map(header, func(h string, _ int) string {
		return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	})
	timeCol, titleCol, msgCol := lo.IndexOf(names, "time"), lo.IndexOf(names, "title"), lo.IndexOf(names, "message")

	var records []entry.Record
	for {
		row, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv")
		}
		var rec entry.Record
		if v := cell(row, timeCol); v != nil {
			rec.Time = *v
		}
		rec.Title = cell(row, titleCol)
		rec.Message = cell(row, msgCol)
		records = append(records, rec)
	}
	return records, nil
}

func cell(row []string, col int) *string {
	if col < 0 || col >= len(row) {
		return nil
	}
	return &row[col]
}

// Import reads records from a file, choosing the decoder by extension.
func Import(path string) ([]entry.Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}
