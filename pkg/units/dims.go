package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimension indexes one of the fundamental physical quantities that a unit
// specification is decomposed into.
type Dimension int

// Fundamental quantities, in the order used by [Dims].
const (
	PlaneAngle Dimension = iota
	SolidAngle
	Charge
	Mole
	Temperature
	LuminousIntensity
	Mass
	Length
	Time
	Beam
	Bin
	Bit
	Count
	Magnitude
	Pixel
	SolarRatio
	Voxel
)

// NumDimensions is the length of a [Dims] vector.
const NumDimensions = 17

var types = [NumDimensions]string{
	"plane angle",
	"solid angle",
	"charge",
	"mole",
	"temperature",
	"luminous intensity",
	"mass",
	"length",
	"time",
	"beam",
	"bin",
	"bit",
	"count",
	"stellar magnitude",
	"pixel",
	"solar ratio",
	"voxel",
}

// Canonical units. The first nine are SI (with degrees for plane angle);
// the remainder are dimensionless counts named after their unit.
var unitSymbols = [NumDimensions]string{
	"deg", "sr", "C", "mol", "K", "cd", "kg", "m", "s",
	"beam", "bin", "bit", "count", "mag", "pixel", "Sun", "voxel",
}

// String returns the name of the physical quantity, e.g. "length".
func (d Dimension) String() string {
	if d < 0 || int(d) >= NumDimensions {
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
	return types[d]
}

// Unit returns the symbol of the canonical unit for d, e.g. "m".
func (d Dimension) Unit() string {
	if d < 0 || int(d) >= NumDimensions {
		return ""
	}
	return unitSymbols[d]
}

// Types returns the names of the physical quantities indexed by [Dimension].
func Types() []string {
	out := make([]string, NumDimensions)
	copy(out, types[:])
	return out
}

// UnitSymbols returns the canonical unit symbols indexed by [Dimension].
func UnitSymbols() []string {
	out := make([]string, NumDimensions)
	copy(out, unitSymbols[:])
	return out
}

// Dims holds the net exponent of each fundamental quantity.
type Dims [NumDimensions]float64

// addScaled returns d + k*o.
func (d Dims) addScaled(o Dims, k float64) Dims {
	for i := range d {
		d[i] += k * o[i]
	}
	return d
}

// Equal reports whether d and o are element-wise identical.
func (d Dims) Equal(o Dims) bool {
	return d == o
}

// Mismatch returns the first dimension at which d and o differ.
func (d Dims) Mismatch(o Dims) (Dimension, bool) {
	for i := range d {
		if d[i] != o[i] {
			return Dimension(i), true
		}
	}
	return 0, false
}

// IsZero reports whether d is dimensionless.
func (d Dims) IsZero() bool {
	return d == Dims{}
}

// String lists the non-zero exponents against their canonical units,
// e.g. "m s-1". A dimensionless vector prints as "1".
func (d Dims) String() string {
	var parts []string
	for i, e := range d {
		if e == 0 {
			continue
		}
		s := unitSymbols[i]
		if e != 1 {
			s += strconv.FormatFloat(e, 'g', -1, 64)
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " ")
}

// Function is a special function wrapping a whole unit specification.
type Function int

// Functions recognised at the start of a unit specification.
const (
	FuncNone Function = iota
	FuncLog           // log(), base 10
	FuncLn            // ln(), base e
	FuncExp           // exp()
)

var funcNames = [...]string{"none", "log", "ln", "exp"}

// String returns "none", "log", "ln" or "exp".
func (f Function) String() string {
	if f < 0 || int(f) >= len(funcNames) {
		return fmt.Sprintf("Function(%d)", int(f))
	}
	return funcNames[f]
}

// Spec is the canonical form of a unit specification: multiply a value
// expressed in the specified units by Scale to obtain canonical units with
// the dimensions in Dims. Func records a log(), ln() or exp() wrapper; Scale
// and Dims always describe the wrapped argument.
type Spec struct {
	Func  Function
	Scale float64
	Dims  Dims
}
