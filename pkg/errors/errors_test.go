package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeMalformedEntry, "entry %d: missing %s", 2, "title")
	if got, want := err.Error(), "MALFORMED_ENTRY: entry 2: missing title"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if errors.Unwrap(err) != nil {
		t.Error("New should have no cause")
	}

	cause := errors.New(`parsing time "yesterday"`)
	wrapped := Wrap(ErrCodeTimeParse, cause, "entry %d", 0)
	if got, want := wrapped.Error(), `TIME_PARSE: entry 0: parsing time "yesterday"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeDegenerateRange, "far left equals far right")

	tests := []struct {
		name     string
		err      error
		code     Code
		wantIs   bool
		wantCode Code
		wantMsg  string
	}{
		{"direct", inner, ErrCodeDegenerateRange, true, ErrCodeDegenerateRange, "far left equals far right"},
		{"other code", inner, ErrCodeEmptyDataset, false, ErrCodeDegenerateRange, "far left equals far right"},
		{"fmt wrapped", fmt.Errorf("layout: %w", inner), ErrCodeDegenerateRange, true, ErrCodeDegenerateRange, "far left equals far right"},
		{"outermost wins", Wrap(ErrCodeInvalidInput, inner, "request"), ErrCodeDegenerateRange, false, ErrCodeInvalidInput, "request"},
		{"plain", errors.New("disk full"), ErrCodeInternal, false, "", "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is(%s) = %v, want %v", tt.code, got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}

	if Is(nil, ErrCodeInternal) || GetCode(nil) != "" {
		t.Error("nil error should carry no code")
	}
}

func TestIsInputAndExitCode(t *testing.T) {
	tests := []struct {
		err       error
		wantInput bool
		wantExit  int
	}{
		{nil, false, ExitOK},
		{New(ErrCodeMalformedEntry, "x"), true, ExitInput},
		{New(ErrCodeTimeParse, "x"), true, ExitInput},
		{New(ErrCodeEmptyDataset, "x"), true, ExitInput},
		{New(ErrCodeDegenerateRange, "x"), true, ExitInput},
		{New(ErrCodeInvalidConfig, "x"), true, ExitInput},
		{New(ErrCodeFileNotFound, "x"), false, ExitFailure},
		{New(ErrCodeNetwork, "x"), false, ExitFailure},
		{New(ErrCodeInternal, "x"), false, ExitFailure},
		{errors.New("plain"), false, ExitFailure},
		{fmt.Errorf("run: %w", context.Canceled), false, ExitCanceled},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(GetCode(tt.err), tt.err), func(t *testing.T) {
			if got := IsInput(tt.err); got != tt.wantInput {
				t.Errorf("IsInput() = %v, want %v", got, tt.wantInput)
			}
			if got := ExitCode(tt.err); got != tt.wantExit {
				t.Errorf("ExitCode() = %d, want %d", got, tt.wantExit)
			}
		})
	}
}
