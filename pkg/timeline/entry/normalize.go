package entry

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
)

var validate = validator.New()

// timeLayouts are the accepted timestamp shapes, tried in order. Layouts
// without an offset are read as UTC wall-clock time.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// RecordError reports the record that failed normalization. It unwraps to a
// coded *errors.Error, so errors.Is(err, errors.ErrCodeMalformedEntry) and
// friends work on it.
type RecordError struct {
	Index  int
	Record Record
	Err    *errors.Error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("entry %d %s: %v", e.Index, e.Record, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Normalize validates records and returns them as entries, in input order.
//
// Every record is checked for a time, a title and a message before any time
// is parsed; the first record missing a field fails with MALFORMED_ENTRY.
// Times given as text are then parsed with [ParseTime]; the first failure is
// TIME_PARSE. The input slice is not modified.
func Normalize(records []Record) ([]Entry, error) {
	for i, r := range records {
		if err := checkPresent(r); err != nil {
			return nil, &RecordError{Index: i, Record: r, Err: err}
		}
	}

	entries := make([]Entry, 0, len(records))
	for i, r := range records {
		t, err := toTime(r.Time)
		if err != nil {
			return nil, &RecordError{Index: i, Record: r, Err: err}
		}
		entries = append(entries, Entry{Time: t, Title: *r.Title, Message: *r.Message})
	}
	return entries, nil
}

func checkPresent(r Record) *errors.Error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInternal, err, "validate record")
	}
	missing := make([]string, len(verrs))
	for i, fe := range verrs {
		missing[i] = strings.ToLower(fe.Field())
	}
	return errors.New(errors.ErrCodeMalformedEntry, "missing %s", strings.Join(missing, ", "))
}

func toTime(v any) (time.Time, *errors.Error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, errors.New(errors.ErrCodeMalformedEntry, "missing time")
		}
		return *t, nil
	case string:
		parsed, err := ParseTime(t)
		if err != nil {
			return time.Time{}, errors.Wrap(errors.ErrCodeTimeParse, err, "could not parse time %q", t)
		}
		return parsed, nil
	default:
		return time.Time{}, errors.New(errors.ErrCodeTimeParse, "unsupported time value of type %T", v)
	}
}

// ParseTime parses an ISO 8601 calendar timestamp. Strings without a zone
// offset are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO 8601 timestamp: %q", s)
}
