package units

import (
	"fmt"
	"strconv"
	"strings"
)

// lexContext is the lexical context the scanner is in. Each context has its
// own set of legal symbols, which is what separates status 3 from status 5.
type lexContext int

const (
	ctxInitial lexContext = iota // operands, operators, brackets, multiplier
	ctxExpon                     // exponent following a unit or ')'
)

func (c lexContext) String() string {
	if c == ctxExpon {
		return "EXPON"
	}
	return "INITIAL"
}

// itemType identifies the type of lex items.
type itemType int

const (
	itemError        itemType = iota // illegal symbol; val holds it
	itemEOF                          // end of input
	itemNumber                       // numeric multiplier, possibly signed
	itemUnit                         // maximal run of letters
	itemMul                          // '*' or '.'
	itemDiv                          // '/'
	itemLeftParen                    // '('
	itemRightParen                   // ')'
	itemLeftBracket                  // '['
	itemRightBracket                 // ']'
)

// item represents a token returned from the scanner.
type item struct {
	typ itemType
	pos int    // byte offset of the item in the input
	val string // text of the item
}

func (i item) String() string {
	switch i.typ {
	case itemEOF:
		return "EOF"
	case itemError:
		return fmt.Sprintf("error %q", i.val)
	}
	return fmt.Sprintf("%q", i.val)
}

const eof = 0

// lexer holds the state of the scanner. The parser pulls items from it one
// at a time, naming the context it expects.
type lexer struct {
	input string // the string being scanned
	pos   int    // current position in the input
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// peek returns but does not consume the next byte, or eof.
func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return eof
	}
	return l.input[l.pos]
}

// peekAt returns the byte n positions ahead, or eof.
func (l *lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return eof
	}
	return l.input[l.pos+n]
}

func (l *lexer) skipBlanks() {
	for l.pos < len(l.input) && isBlank(l.input[l.pos]) {
		l.pos++
	}
}

// parenAhead reports whether the next non-blank byte is '('. If consume is
// set and it is, the lexer is advanced past it.
func (l *lexer) parenAhead(consume bool) bool {
	start := l.pos
	l.skipBlanks()
	if l.peek() != '(' {
		l.pos = start
		return false
	}
	if consume {
		l.pos++
	} else {
		l.pos = start
	}
	return true
}

// initial scans the next item in the INITIAL context. Blanks are skipped;
// they only matter as separators and the parser never needs to see them.
func (l *lexer) initial() item {
	l.skipBlanks()
	start := l.pos
	c := l.peek()
	switch {
	case c == eof:
		return item{itemEOF, start, ""}
	case c == '*' || c == '.':
		l.pos++
		return item{itemMul, start, l.input[start:l.pos]}
	case c == '/':
		l.pos++
		return item{itemDiv, start, "/"}
	case c == '(':
		l.pos++
		return item{itemLeftParen, start, "("}
	case c == ')':
		l.pos++
		return item{itemRightParen, start, ")"}
	case c == '[':
		l.pos++
		return item{itemLeftBracket, start, "["}
	case c == ']':
		l.pos++
		return item{itemRightBracket, start, "]"}
	case isLetter(c):
		for isLetter(l.peek()) {
			l.pos++
		}
		return item{itemUnit, start, l.input[start:l.pos]}
	case isDigit(c) || ((c == '+' || c == '-') && isDigit(l.peekAt(1))):
		l.number()
		return item{itemNumber, start, l.input[start:l.pos]}
	}
	l.pos++
	return item{itemError, start, l.input[start:l.pos]}
}

// number scans [+-]digits[.digits][(e|E)[+-]digits]. The exponent part is
// only taken when digits follow, so "1eV" scans as "1".
func (l *lexer) number() {
	if c := l.peek(); c == '+' || c == '-' {
		l.pos++
	}
	l.digits()
	if l.peek() == '.' {
		l.pos++
		l.digits()
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		n := 1
		if s := l.peekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(l.peekAt(n)) {
			l.pos += n
			l.digits()
		}
	}
}

func (l *lexer) digits() int {
	start := l.pos
	for isDigit(l.peek()) {
		l.pos++
	}
	return l.pos - start
}

// exponent scans an optional exponent in the EXPON context, directly after
// a unit, a closing parenthesis or the multiplier "10". Accepted forms:
//
//	**2  ^2  ** -1.5  ^(1/2)     operator, blanks allowed around it
//	2  -1  +3                    signed integer attached to the operand
//	(2)  (-1/2)  (0.5)           parenthesised, attached to the operand
//
// It reports false without consuming anything if no exponent is present.
func (l *lexer) exponent() (float64, bool, error) {
	start := l.pos
	l.skipBlanks()
	switch {
	case strings.HasPrefix(l.input[l.pos:], "**"):
		l.pos += 2
	case l.peek() == '^':
		l.pos++
	default:
		l.pos = start
		switch c := l.peek(); {
		case c == '(':
			return l.parenExponent()
		case c == '+' || c == '-' || isDigit(c):
			begin := l.pos
			if c == '+' || c == '-' {
				l.pos++
			}
			if l.digits() == 0 {
				return 0, false, l.badExpon()
			}
			v, err := strconv.ParseFloat(l.input[begin:l.pos], 64)
			if err != nil {
				return 0, false, l.badExpon()
			}
			return v, true, nil
		}
		return 1, false, nil
	}

	l.skipBlanks()
	if l.peek() == '(' {
		return l.parenExponent()
	}
	v, ok := l.decimal()
	if !ok {
		return 0, false, l.badExpon()
	}
	return v, true, nil
}

// parenExponent scans "(" [+-]decimal [ "/" integer ] ")" with optional blanks.
func (l *lexer) parenExponent() (float64, bool, error) {
	l.pos++ // '('
	l.skipBlanks()
	num, ok := l.decimal()
	if !ok {
		return 0, false, l.badExpon()
	}
	l.skipBlanks()
	if l.peek() == '/' {
		l.pos++
		l.skipBlanks()
		begin := l.pos
		if l.digits() == 0 {
			return 0, false, l.badExpon()
		}
		den, err := strconv.ParseFloat(l.input[begin:l.pos], 64)
		if err != nil || den == 0 {
			return 0, false, l.badExpon()
		}
		num /= den
		l.skipBlanks()
	}
	if l.peek() != ')' {
		return 0, false, l.badExpon()
	}
	l.pos++
	return num, true, nil
}

// decimal scans [+-]digits[.digits] or [+-].digits.
func (l *lexer) decimal() (float64, bool) {
	begin := l.pos
	if c := l.peek(); c == '+' || c == '-' {
		l.pos++
	}
	n := l.digits()
	if l.peek() == '.' {
		l.pos++
		n += l.digits()
	}
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(l.input[begin:l.pos], 64)
	return v, err == nil
}

func (l *lexer) badExpon() error {
	return fail(StatusBadExponSymbol, "Invalid symbol in %s context at position %d in '%s'",
		ctxExpon, l.pos, l.input)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isBlank(c byte) bool { return c == ' ' || c == '\t' }
