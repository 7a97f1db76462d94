package units

import (
	"slices"
	"strings"
)

// Alias maps a commonly used but non-standard unit token onto its standard
// form. Unsafe is zero for unconditional aliases; otherwise it is the Control
// bit that must be set for the replacement to be applied.
type Alias struct {
	Match   string
	Replace string
	Unsafe  Control
}

type aliasGroup struct {
	unit    string
	matches []string
}

var aliases = buildAliases([]aliasGroup{
	{"Angstrom", []string{"angstrom"}},
	{"arcmin", []string{"arcmins", "ARCMIN", "ARCMINS"}},
	{"arcsec", []string{"arcsecs", "ARCSEC", "ARCSECS"}},
	{"beam", []string{"BEAM"}},
	{"byte", []string{"Byte"}},
	{"d", []string{"day", "days", "DAY", "DAYS"}},
	{"deg", []string{"degree", "degrees", "DEG", "DEGREE", "DEGREES"}},
	{"GHz", []string{"GHZ"}},
	{"h", []string{"hr", "HR"}},
	{"Hz", []string{"hz", "HZ"}},
	{"kHz", []string{"KHZ"}},
	{"Jy", []string{"JY"}},
	{"K", []string{"kelvin", "kelvins", "Kelvin", "Kelvins", "KELVIN", "KELVINS"}},
	{"km", []string{"KM"}},
	{"m", []string{"metre", "meter", "metres", "meters", "M", "METRE", "METER", "METRES", "METERS"}},
	{"min", []string{"MIN"}},
	{"MHz", []string{"MHZ"}},
	{"Ohm", []string{"ohm"}},
	{"Pa", []string{"pascal", "pascals", "Pascal", "Pascals", "PASCAL", "PASCALS"}},
	{"pixel", []string{"pixels", "PIXEL", "PIXELS"}},
	{"rad", []string{"radian", "radians", "RAD", "RADIAN", "RADIANS"}},
	{"s", []string{"sec", "second", "seconds", "SEC", "SECOND", "SECONDS"}},
	{"V", []string{"volt", "volts", "Volt", "Volts", "VOLT", "VOLTS"}},
	{"yr", []string{"year", "years", "YR", "YEAR", "YEARS"}},
},
	Alias{Match: "S", Replace: "s", Unsafe: TranslateS},
	Alias{Match: "H", Replace: "h", Unsafe: TranslateH},
	Alias{Match: "D", Replace: "d", Unsafe: TranslateD},
)

var aliasIndex = func() map[string]Alias {
	m := make(map[string]Alias, len(aliases))
	for _, a := range aliases {
		m[a.Match] = a
	}
	return m
}()

func buildAliases(groups []aliasGroup, unsafe ...Alias) []Alias {
	var out []Alias
	for _, g := range groups {
		for _, m := range g.matches {
			out = append(out, Alias{Match: m, Replace: g.unit})
		}
	}
	return append(out, unsafe...)
}

// Aliases returns a copy of the alias table.
func Aliases() []Alias {
	return slices.Clone(aliases)
}

// Translate rewrites commonly used but non-standard unit tokens such as
// "DEG", "MHZ" or "KM/SEC" into their standard forms, for example before
// calling [Parse], which only accepts standard FITS units.
//
// Leading and trailing blanks are stripped and extraneous embedded blanks
// removed. If the first non-blank character is '[' the units are delimited
// by the matching ']'; the brackets are kept and any text after ']' is
// returned unmodified. Aliases match whole tokens (maximal runs of letters)
// case-sensitively.
//
// "S", "H" and "D" are formally Siemens, Henry and Debye, so translating
// them to seconds, hours and days is applied only when the matching ctrl bit
// is set. Whenever one of them is encountered, applied or not, the status
// is [StatusUnsafeTranslation] and a non-nil error carries the warning; the
// returned string is still the usable translation.
//
// Statuses: [StatusNoChange] (only blanks stripped), [StatusSuccess],
// [StatusParserError] (unbalanced brackets; the input is returned as is) and
// [StatusUnsafeTranslation].
func Translate(ctrl Control, unitstr string) (string, Status, error) {
	s := strings.TrimLeft(unitstr, " \t")

	var body, tail string
	bracketed := strings.HasPrefix(s, "[")
	if bracketed {
		end := strings.IndexByte(s, ']')
		if end < 0 || strings.IndexByte(s[1:end], '[') >= 0 {
			return unitstr, StatusParserError, fail(StatusParserError, "Unbalanced bracket in '%s'", unitstr)
		}
		body, tail = s[1:end], s[end+1:]
	} else {
		body = strings.TrimRight(s, " \t")
		if strings.ContainsAny(body, "[]") {
			return unitstr, StatusParserError, fail(StatusParserError, "Unbalanced bracket in '%s'", unitstr)
		}
	}

	t := translator{ctrl: ctrl}
	out := t.run(body)
	if bracketed {
		out = "[" + out + "]" + tail
	}

	switch {
	case t.unsafe != "":
		return out, StatusUnsafeTranslation, fail(StatusUnsafeTranslation,
			"Potentially unsafe translation of '%s' in '%s'", t.unsafe, unitstr)
	case t.changed:
		return out, StatusSuccess, nil
	default:
		return out, StatusNoChange, nil
	}
}

// translator carries the state of one Translate call.
type translator struct {
	ctrl    Control
	changed bool
	unsafe  string // first unsafe token seen
}

// Blanks next to these are dropped: glueLeft after them, glueRight before them.
const (
	glueLeft  = "*./^("
	glueRight = "*./^)"
)

func (t *translator) run(body string) string {
	var b strings.Builder
	blank := false
	emit := func(s string) {
		if blank && b.Len() > 0 {
			last := b.String()[b.Len()-1]
			if strings.IndexByte(glueLeft, last) < 0 && strings.IndexByte(glueRight, s[0]) < 0 {
				b.WriteByte(' ')
			}
		}
		blank = false
		b.WriteString(s)
	}

	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == ' ' || c == '\t':
			blank = true
			i++
		case isLetter(c):
			j := i
			for j < len(body) && isLetter(body[j]) {
				j++
			}
			emit(t.token(body[i:j]))
			i = j
		default:
			emit(body[i : i+1])
			i++
		}
	}
	return b.String()
}

// token returns the replacement for a whole token, recording what happened.
func (t *translator) token(tok string) string {
	a, ok := aliasIndex[tok]
	if !ok {
		return tok
	}
	if a.Unsafe != 0 {
		if t.unsafe == "" {
			t.unsafe = tok
		}
		if t.ctrl&a.Unsafe == 0 {
			return tok
		}
	}
	t.changed = true
	return a.Replace
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
