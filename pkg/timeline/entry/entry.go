// Package entry validates raw timeline records and normalizes them into
// immutable [Entry] values.
//
// A [Record] is what arrives from a file, an HTTP body or a caller: every
// field may be missing, and the time may still be text. [Normalize] checks
// that every record carries a time, a title and a message, then parses the
// times. It fails on the first bad record and returns nothing else, so a
// timeline is never drawn from partially valid data.
//
//	entries, err := entry.Normalize([]entry.Record{
//	    entry.NewRecord("1997-08-02T01:12:00", "Company A", "Switched versions:\nv0.0.1 to v1.0.1"),
//	})
package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// namespace scopes the name-based entry IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/lukaschristensson/TimeLinePlot/entry"))

// Record is one raw timeline record. A nil field is a missing field.
//
// Time holds either a timestamp string or a structured time.Time
// (or *time.Time); any other type fails normalization with TIME_PARSE.
type Record struct {
	Time    any     `json:"time" yaml:"time" validate:"required"`
	Title   *string `json:"title" yaml:"title" validate:"required"`
	Message *string `json:"message" yaml:"message" validate:"required"`
}

// NewRecord builds a record with every field present.
func NewRecord(t any, title, message string) Record {
	return Record{Time: t, Title: &title, Message: &message}
}

// String renders the record for error messages.
func (r Record) String() string {
	field := func(s *string) string {
		if s == nil {
			return "<missing>"
		}
		return fmt.Sprintf("%q", *s)
	}
	var t string
	switch v := r.Time.(type) {
	case nil:
		t = "<missing>"
	case string:
		t = fmt.Sprintf("%q", v)
	case time.Time:
		t = v.Format(time.RFC3339)
	default:
		t = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("{time: %s, title: %s, message: %s}", t, field(r.Title), field(r.Message))
}

// Entry is a normalized timeline event. Entries are values; nothing in this
// module mutates one after Normalize returns it.
type Entry struct {
	Time    time.Time `json:"time"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}

// New returns an entry without going through validation.
func New(t time.Time, title, message string) Entry {
	return Entry{Time: t, Title: title, Message: message}
}

// ID returns a stable identifier derived from the entry's time and title.
// Two entries with the same time and title share an ID.
func (e Entry) ID() string {
	return uuid.NewSHA1(namespace, []byte(e.Time.Format(time.RFC3339Nano)+"\x00"+e.Title)).String()
}

// Lines splits the message into the lines drawn on the card.
func (e Entry) Lines() []string {
	return strings.Split(e.Message, "\n")
}

// Record converts the entry back into a record that normalizes to the same
// entry.
func (e Entry) Record() Record {
	return NewRecord(e.Time, e.Title, e.Message)
}
