package units

import (
	"math"

	"github.com/matzehuels/fitsunits/pkg/errors"
)

// Conversion transforms a value from one unit specification to another:
//
//	want = pow(Scale*have + Offset, Power)
type Conversion struct {
	Scale  float64 `json:"scale"`
	Offset float64 `json:"offset"`
	Power  float64 `json:"power"`
}

// Apply converts v.
func (c Conversion) Apply(v float64) float64 {
	return math.Pow(c.Scale*v+c.Offset, c.Power)
}

// IsIdentity reports whether c leaves every value unchanged.
func (c Conversion) IsIdentity() bool {
	return c.Scale == 1 && c.Offset == 0 && c.Power == 1
}

// Convert computes the transform from values in units have to values in
// units want. It is ConvertWith with no unsafe translations enabled.
func Convert(have, want string) (Conversion, error) {
	return ConvertWith(0, have, want)
}

// ConvertWith runs both strings through [Translate] (with ctrl) and [Parse],
// then derives the conversion between them.
//
// The two specifications must have identical dimension vectors, otherwise
// the status is [StatusBadUnitSpec]. Functions are paired as follows: plain
// units convert by ratio; log() and ln() convert into each other through an
// offset; exp() converts only into exp(), through a power. Any other pairing
// is [StatusBadFuncs].
//
// Parser errors (1-9) propagate unchanged. A [StatusUnsafeTranslation]
// warning does not stop the conversion. On failure the returned Conversion
// has Power 1 and all else zero.
func ConvertWith(ctrl Control, have, want string) (Conversion, error) {
	bad := Conversion{Power: 1}

	hs, err := translateAndParse(ctrl, have)
	if err != nil {
		return bad, err
	}
	ws, err := translateAndParse(ctrl, want)
	if err != nil {
		return bad, err
	}

	if d, ok := hs.Dims.Mismatch(ws.Dims); ok {
		return bad, fail(StatusBadUnitSpec,
			"Mismatched units type '%s': have '%s', want '%s'", d, have, want)
	}

	ratio := hs.Scale / ws.Scale
	if !usableScale(ratio) {
		return bad, fail(StatusBadUnitSpec,
			"Scale ratio of '%s' to '%s' is out of floating-point range", have, want)
	}
	c, ok := pair(hs.Func, ws.Func, ratio)
	if !ok {
		return bad, fail(StatusBadFuncs,
			"Mismatched unit functions: have '%s' (%s), want '%s' (%s)", have, hs.Func, want, ws.Func)
	}
	return c, nil
}

// translateAndParse parses unitstr after alias translation. Only status 9
// stops translation; the unsafe-translation warning is dropped.
func translateAndParse(ctrl Control, unitstr string) (Spec, error) {
	s, status, err := Translate(ctrl, unitstr)
	if status == StatusParserError {
		return Spec{}, errors.Wrap(int(status), err, "Cannot translate '%s'", unitstr)
	}
	return Parse(s)
}

// pair returns the conversion between functions have and want for the
// scale ratio r of their arguments.
func pair(have, want Function, r float64) (Conversion, bool) {
	switch {
	case have == FuncNone && want == FuncNone:
		return Conversion{Scale: r, Power: 1}, true
	case have == FuncLog && want == FuncLog:
		return Conversion{Scale: 1, Offset: math.Log10(r), Power: 1}, true
	case have == FuncLog && want == FuncLn:
		return Conversion{Scale: math.Ln10, Offset: math.Log(r), Power: 1}, true
	case have == FuncLn && want == FuncLog:
		return Conversion{Scale: 1 / math.Ln10, Offset: math.Log10(r), Power: 1}, true
	case have == FuncLn && want == FuncLn:
		return Conversion{Scale: 1, Offset: math.Log(r), Power: 1}, true
	case have == FuncExp && want == FuncExp:
		return Conversion{Scale: 1, Power: r}, true
	}
	return Conversion{}, false
}
