package errors

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(3, "test message: %s", "value")

	if err.Status != 3 {
		t.Errorf("Status = %v, want %v", err.Status, 3)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "status 3: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestNewRecordsLocation(t *testing.T) {
	err := New(7, "unbalanced")

	if err.File != "errors_test.go" {
		t.Errorf("File = %q, want %q", err.File, "errors_test.go")
	}
	if err.Line == 0 {
		t.Error("Line should be set")
	}
	if err.Function != "errors.TestNewRecordsLocation" {
		t.Errorf("Function = %q, want %q", err.Function, "errors.TestNewRecordsLocation")
	}
}

func raise(status int) *Error {
	return NewDepth(1, status, "raised for caller")
}

func TestNewDepth(t *testing.T) {
	err := raise(9)
	if err.Function != "errors.TestNewDepth" {
		t.Errorf("Function = %q, want caller of helper", err.Function)
	}
}

func TestWrap(t *testing.T) {
	inner := New(6, "Unbalanced bracket in '[km'")
	err := Wrap(9, inner, "Cannot translate '%s'", "[km")

	if err.Status != 9 || err.Function != "errors.TestWrap" {
		t.Errorf("Wrap recorded status %d at %s", err.Status, err.Function)
	}
	if err.Unwrap() != inner {
		t.Error("Unwrap should return the cause")
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the cause in the chain")
	}
	if Status(err) != 9 {
		t.Errorf("Status = %d, want the outer status 9", Status(err))
	}

	wantErr := "status 9: Cannot translate '[km': status 6: Unbalanced bracket in '[km'"
	if err.Error() != wantErr {
		t.Errorf("Error() = %q, want %q", err.Error(), wantErr)
	}
	wantMsg := "Cannot translate '[km': Unbalanced bracket in '[km'"
	if got := UserMessage(err); got != wantMsg {
		t.Errorf("UserMessage() = %q, want %q", got, wantMsg)
	}

	var buf bytes.Buffer
	if err := err.Print(&buf, ""); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ERROR 6 in errors.TestWrap()") {
		t.Errorf("Print should include the cause, indented:\n%s", buf.String())
	}
}

func TestWrapPlainCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(9, cause, "store failed")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should match a plain cause")
	}
	if got := UserMessage(err); got != "store failed: disk full" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestCopy(t *testing.T) {
	src := New(10, "mismatch")
	dst := src.Copy()

	if dst == src {
		t.Fatal("Copy() should return a distinct pointer")
	}
	if *dst != *src {
		t.Errorf("Copy() = %+v, want %+v", *dst, *src)
	}

	dst.Message = "changed"
	if src.Message != "mismatch" {
		t.Error("modifying the copy should not affect the source")
	}

	var nilErr *Error
	if nilErr.Copy() != nil {
		t.Error("Copy() of nil should be nil")
	}
}

func TestPrint(t *testing.T) {
	err := &Error{Status: 6, Message: "Unbalanced bracket", Function: "units.Parse", File: "parse.go", Line: 12}

	var buf bytes.Buffer
	if e := err.Print(&buf, "> "); e != nil {
		t.Fatalf("Print error: %v", e)
	}

	want := "> ERROR 6 in units.Parse() at line 12 of file parse.go:\n>   Unbalanced bracket.\n"
	if buf.String() != want {
		t.Errorf("Print() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	var nilErr *Error
	_ = nilErr.Print(&buf, "")
	if buf.Len() != 0 {
		t.Error("Print() of nil should write nothing")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		expected bool
	}{
		{
			name:     "matching status",
			err:      New(8, "test"),
			status:   8,
			expected: true,
		},
		{
			name:     "non-matching status",
			err:      New(8, "test"),
			status:   2,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("outer: %w", New(10, "inner")),
			status:   10,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			status:   1,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			status:   0,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.status); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Error type", New(11, "test"), 11},
		{"wrapped", fmt.Errorf("ctx: %w", New(5, "test")), 5},
		{"plain error", errors.New("plain"), -1},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.expected {
				t.Errorf("Status() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(1, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestShortFuncName(t *testing.T) {
	got := shortFuncName("github.com/matzehuels/fitsunits/pkg/units.Parse")
	if got != "units.Parse" {
		t.Errorf("shortFuncName() = %q", got)
	}
	if !strings.HasPrefix(shortFuncName("main.main"), "main.") {
		t.Error("names without a path should be unchanged")
	}
}
