package units

import (
	"fmt"

	"github.com/matzehuels/fitsunits/pkg/errors"
)

// Status is the outcome code of Translate, Parse and Convert.
type Status int

// Status codes. 1-9 are raised by Parse (9 also by Translate), 10-11 by
// Convert and 12 is the Translate warning.
const (
	StatusNoChange          Status = -1 // Translate made no change other than stripping blanks
	StatusSuccess           Status = 0
	StatusBadNumMultiplier  Status = 1
	StatusDanglingBinop     Status = 2
	StatusBadInitialSymbol  Status = 3
	StatusFunctionContext   Status = 4
	StatusBadExponSymbol    Status = 5
	StatusUnbalBracket      Status = 6
	StatusUnbalParen        Status = 7
	StatusConsecBinops      Status = 8
	StatusParserError       Status = 9
	StatusBadUnitSpec       Status = 10
	StatusBadFuncs          Status = 11
	StatusUnsafeTranslation Status = 12
)

var messages = map[Status]string{
	StatusNoChange:          "No change",
	StatusSuccess:           "Success",
	StatusBadNumMultiplier:  "Invalid numeric multiplier",
	StatusDanglingBinop:     "Dangling binary operator",
	StatusBadInitialSymbol:  "Invalid symbol in INITIAL context",
	StatusFunctionContext:   "Function in invalid context",
	StatusBadExponSymbol:    "Invalid symbol in EXPON context",
	StatusUnbalBracket:      "Unbalanced bracket",
	StatusUnbalParen:        "Unbalanced parenthesis",
	StatusConsecBinops:      "Consecutive binary operators",
	StatusParserError:       "Internal parser error",
	StatusBadUnitSpec:       "Non-conformant unit specifications",
	StatusBadFuncs:          "Non-conformant functions",
	StatusUnsafeTranslation: "Potentially unsafe translation",
}

// Message returns the human-readable message for s.
func Message(s Status) string {
	if m, ok := messages[s]; ok {
		return m
	}
	return fmt.Sprintf("Unknown status %d", int(s))
}

// String returns the message for s.
func (s Status) String() string { return Message(s) }

// IsError reports whether s is a failure code (1-11).
func (s Status) IsError() bool {
	return s >= StatusBadNumMultiplier && s <= StatusBadFuncs
}

// StatusOf returns the Status carried by err.
// A nil error is StatusSuccess; an error from another source is StatusParserError.
func StatusOf(err error) Status {
	switch s := errors.Status(err); {
	case err == nil:
		return StatusSuccess
	case s < 0:
		return StatusParserError
	default:
		return Status(s)
	}
}

// fail builds the error record for s, attributing it to the caller of fail.
func fail(s Status, format string, args ...any) *errors.Error {
	return errors.NewDepth(1, int(s), format, args...)
}

// Control selects which potentially unsafe translations Translate applies.
type Control int

// Control bits.
const (
	TranslateS   Control = 1 // "S" to "s" (seconds, not Siemens)
	TranslateH   Control = 2 // "H" to "h" (hours, not Henry)
	TranslateD   Control = 4 // "D" to "d" (days, not Debye)
	TranslateAll         = TranslateS | TranslateH | TranslateD
)
