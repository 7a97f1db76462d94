package units

import (
	"math"
	"strconv"
	"strings"
)

var functions = map[string]Function{
	"log": FuncLog,
	"ln":  FuncLn,
	"exp": FuncExp,
}

// Parse reduces a FITS unit specification such as "10**-3 kg m2/s2",
// "log(MHz)" or "[km/s] velocity" to its canonical form.
//
// The string may be enclosed in brackets, as in FITS header comments; text
// after the closing ']' is ignored. A log(), ln() or exp() wrapper is only
// legal around the whole specification. A numeric multiplier may only
// appear at the start of an expression. An empty specification is
// dimensionless with unit scale.
//
// Parse accepts only standard units; run [Translate] first to normalise
// common aliases. On failure the returned Spec is the zero value and the
// error is an *errors.Error whose status is one of 1-9.
func Parse(unitstr string) (Spec, error) {
	p := &parser{lex: newLexer(unitstr), unitstr: unitstr}
	spec, err := p.parse()
	if err != nil {
		return Spec{}, err
	}
	if !usableScale(spec.Scale) {
		return Spec{}, fail(StatusBadNumMultiplier,
			"Scale of '%s' is out of floating-point range", unitstr)
	}
	return spec, nil
}

// usableScale reports whether s is a finite, non-zero scale factor. Large
// powers of extreme prefixes ("ym**20") overflow or underflow otherwise.
func usableScale(s float64) bool {
	return s != 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}

// parser is a recursive descent parser over the items of a lexer. Each
// parenthesised group is one level of recursion.
type parser struct {
	lex       *lexer
	unitstr   string
	bracketed bool // the specification opened with '['
}

func (p *parser) parse() (Spec, error) {
	p.lex.skipBlanks()
	if p.lex.peek() == '[' {
		p.lex.pos++
		p.bracketed = true
	}

	fn := p.function()
	if fn == FuncNone {
		scale, dims, err := p.expr(0)
		if err != nil {
			return Spec{}, err
		}
		return Spec{Scale: scale, Dims: dims}, nil
	}

	scale, dims, err := p.expr(1)
	if err != nil {
		return Spec{}, err
	}
	switch it := p.lex.initial(); it.typ {
	case itemEOF:
		if p.bracketed {
			return Spec{}, p.unbalancedBracket()
		}
	case itemRightBracket:
		if !p.bracketed {
			return Spec{}, p.unbalancedBracket()
		}
	case itemRightParen:
		return Spec{}, p.unbalancedParen()
	default:
		return Spec{}, fail(StatusFunctionContext,
			"Function '%s' does not wrap the whole of '%s'", fn, p.unitstr)
	}
	return Spec{Func: fn, Scale: scale, Dims: dims}, nil
}

// function consumes a leading "log(", "ln(" or "exp(" and reports which one
// it was. Nothing is consumed if the specification does not start with one.
func (p *parser) function() Function {
	l := p.lex
	start := l.pos
	l.skipBlanks()
	word := l.pos
	for isLetter(l.peek()) {
		l.pos++
	}
	if fn, ok := functions[l.input[word:l.pos]]; ok && l.parenAhead(true) {
		return fn
	}
	l.pos = start
	return FuncNone
}

type binop int

const (
	opNone binop = iota
	opMul
	opDiv
)

// expr parses a product of terms up to the end of input, a ')' closing
// the group at the given depth, or the ']' closing a bracketed
// specification at depth 0.
func (p *parser) expr(depth int) (float64, Dims, error) {
	var (
		scale = 1.0
		dims  Dims
		op    = opNone
		start = true
	)

	// apply folds a term with the given scale, dims and exponent into the
	// running product, honouring a pending division.
	apply := func(s float64, d Dims, e float64) {
		if op == opDiv {
			e = -e
		}
		scale *= math.Pow(s, e)
		dims = dims.addScaled(d, e)
		op = opNone
	}

	for {
		it := p.lex.initial()
		switch it.typ {
		case itemEOF:
			switch {
			case depth > 0 && p.bracketed:
				return 0, Dims{}, p.unbalancedBracket()
			case depth > 0:
				return 0, Dims{}, p.unbalancedParen()
			case p.bracketed:
				return 0, Dims{}, p.unbalancedBracket()
			case op != opNone:
				return 0, Dims{}, p.dangling(it)
			}
			return scale, dims, nil

		case itemRightParen:
			if depth == 0 {
				return 0, Dims{}, p.unbalancedParen()
			}
			if op != opNone {
				return 0, Dims{}, p.dangling(it)
			}
			return scale, dims, nil

		case itemRightBracket:
			switch {
			case depth > 0:
				return 0, Dims{}, p.unbalancedParen()
			case !p.bracketed:
				return 0, Dims{}, p.unbalancedBracket()
			case op != opNone:
				return 0, Dims{}, p.dangling(it)
			}
			// Whatever follows the closing bracket is commentary.
			return scale, dims, nil

		case itemLeftBracket:
			return 0, Dims{}, p.unbalancedBracket()

		case itemMul:
			if start {
				return 0, Dims{}, p.dangling(it)
			}
			if op != opNone {
				return 0, Dims{}, p.consecutive(it)
			}
			op = opMul

		case itemDiv:
			if op != opNone {
				return 0, Dims{}, p.consecutive(it)
			}
			op = opDiv

		case itemNumber:
			if !start {
				return 0, Dims{}, fail(StatusBadInitialSymbol,
					"Numeric multiplier '%s' at position %d not at the start of '%s'", it.val, it.pos, p.unitstr)
			}
			m, err := p.multiplier(it)
			if err != nil {
				return 0, Dims{}, err
			}
			scale *= m

		case itemLeftParen:
			s, d, err := p.expr(depth + 1)
			if err != nil {
				return 0, Dims{}, err
			}
			e, _, err := p.lex.exponent()
			if err != nil {
				return 0, Dims{}, err
			}
			apply(s, d, e)

		case itemUnit:
			if _, ok := functions[it.val]; ok && p.lex.parenAhead(false) {
				return 0, Dims{}, fail(StatusFunctionContext,
					"Function '%s' at position %d in invalid context in '%s'", it.val, it.pos, p.unitstr)
			}
			if it.val == "sqrt" && p.lex.parenAhead(true) {
				s, d, err := p.expr(depth + 1)
				if err != nil {
					return 0, Dims{}, err
				}
				e, _, err := p.lex.exponent()
				if err != nil {
					return 0, Dims{}, err
				}
				apply(s, d, 0.5*e)
				break
			}
			f, u, ok := resolve(it.val)
			if !ok {
				return 0, Dims{}, fail(StatusBadInitialSymbol,
					"Unrecognized unit '%s' in '%s'", it.val, p.unitstr)
			}
			e, _, err := p.lex.exponent()
			if err != nil {
				return 0, Dims{}, err
			}
			apply(f, u.Dims, e)

		default:
			return 0, Dims{}, fail(StatusBadInitialSymbol,
				"Invalid symbol '%s' in %s context at position %d in '%s'", it.val, ctxInitial, it.pos, p.unitstr)
		}
		start = false
	}
}

// multiplier validates a leading numeric factor. "10" may carry an
// exponent, as in "10**-3" or "10^(1/2)".
func (p *parser) multiplier(it item) (float64, error) {
	bad := func() error {
		return fail(StatusBadNumMultiplier, "Invalid numeric multiplier '%s' in '%s'", it.val, p.unitstr)
	}
	if strings.HasPrefix(it.val, "+") || strings.HasPrefix(it.val, "-") {
		return 0, bad()
	}
	if p.lex.peek() == '.' && isDigit(p.lex.peekAt(1)) {
		return 0, bad()
	}
	v := parseFloat(it.val)
	if it.val == "10" {
		e, ok, err := p.lex.exponent()
		if err != nil {
			return 0, bad()
		}
		if ok {
			v = math.Pow(10, e)
		}
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, bad()
	}
	return v, nil
}

func (p *parser) dangling(it item) error {
	return fail(StatusDanglingBinop, "Dangling binary operator before %s at position %d in '%s'",
		it, it.pos, p.unitstr)
}

func (p *parser) consecutive(it item) error {
	return fail(StatusConsecBinops, "Consecutive binary operators at position %d in '%s'", it.pos, p.unitstr)
}

func (p *parser) unbalancedBracket() error {
	return fail(StatusUnbalBracket, "Unbalanced bracket in '%s'", p.unitstr)
}

func (p *parser) unbalancedParen() error {
	return fail(StatusUnbalParen, "Unbalanced parenthesis in '%s'", p.unitstr)
}

// parseFloat returns NaN for anything strconv rejects, including overflow.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
