package units

import (
	"math"
	"slices"
)

// PrefixRange is the class of metric prefixes a base unit accepts.
type PrefixRange int

const (
	PrefixNone    PrefixRange = iota // no prefixes
	PrefixGreater                    // only prefixes greater than unity (k, M, ...)
	PrefixLess                       // only prefixes less than unity (m, u, ...)
	PrefixFull                       // every prefix
)

// PrefixPolicy decides which metric prefixes may be attached to a base unit.
// Forbid lists prefix symbols rejected even when Range admits them.
type PrefixPolicy struct {
	Range  PrefixRange
	Forbid []string
}

// Allows reports whether p admits the prefix.
func (p PrefixPolicy) Allows(pr Prefix) bool {
	switch p.Range {
	case PrefixFull:
	case PrefixGreater:
		if pr.Factor <= 1 {
			return false
		}
	case PrefixLess:
		if pr.Factor >= 1 {
			return false
		}
	default:
		return false
	}
	return !slices.Contains(p.Forbid, pr.Symbol)
}

// String describes the policy, e.g. "full" or ">1 except P".
func (p PrefixPolicy) String() string {
	var s string
	switch p.Range {
	case PrefixFull:
		s = "full"
	case PrefixGreater:
		s = ">1"
	case PrefixLess:
		s = "<1"
	default:
		return "none"
	}
	for i, f := range p.Forbid {
		if i == 0 {
			s += " except "
		} else {
			s += ","
		}
		s += f
	}
	return s
}

// Prefix is a metric prefix.
type Prefix struct {
	Symbol string
	Factor float64
}

var prefixes = []Prefix{
	{"y", 1e-24}, {"z", 1e-21}, {"a", 1e-18}, {"f", 1e-15},
	{"p", 1e-12}, {"n", 1e-9}, {"u", 1e-6}, {"m", 1e-3},
	{"c", 1e-2}, {"d", 1e-1},
	{"da", 1e1}, {"h", 1e2}, {"k", 1e3}, {"M", 1e6},
	{"G", 1e9}, {"T", 1e12}, {"P", 1e15}, {"E", 1e18},
	{"Z", 1e21}, {"Y", 1e24},
}

// BaseUnit is an entry of the base-unit table: multiplying a value in the
// unit by Scale gives canonical units with dimensions Dims.
type BaseUnit struct {
	Symbol string
	Name   string
	Scale  float64
	Dims   Dims
	Prefix PrefixPolicy
}

var (
	full    = PrefixPolicy{Range: PrefixFull}
	none    = PrefixPolicy{Range: PrefixNone}
	greater = PrefixPolicy{Range: PrefixGreater}
	less    = PrefixPolicy{Range: PrefixLess}
)

const (
	electronVolt = 1.6021765e-19
	julianYear   = 31557600.0
)

var baseUnits = []BaseUnit{
	// SI base and derived units.
	{"m", "metre", 1, Dims{Length: 1}, full},
	{"g", "gram", 1e-3, Dims{Mass: 1}, full},
	{"s", "second", 1, Dims{Time: 1}, full},
	{"rad", "radian", 180 / math.Pi, Dims{PlaneAngle: 1}, full},
	{"sr", "steradian", 1, Dims{SolidAngle: 1}, full},
	{"K", "Kelvin", 1, Dims{Temperature: 1}, full},
	{"A", "Ampere", 1, Dims{Charge: 1, Time: -1}, full},
	{"mol", "mole", 1, Dims{Mole: 1}, full},
	{"cd", "candela", 1, Dims{LuminousIntensity: 1}, full},
	{"Hz", "Hertz", 1, Dims{Time: -1}, full},
	{"J", "Joule", 1, Dims{Mass: 1, Length: 2, Time: -2}, full},
	{"W", "Watt", 1, Dims{Mass: 1, Length: 2, Time: -3}, full},
	{"V", "Volt", 1, Dims{Mass: 1, Length: 2, Time: -2, Charge: -1}, full},
	{"N", "Newton", 1, Dims{Mass: 1, Length: 1, Time: -2}, full},
	{"Pa", "Pascal", 1, Dims{Mass: 1, Length: -1, Time: -2}, full},
	{"C", "Coulomb", 1, Dims{Charge: 1}, full},
	{"Ohm", "Ohm", 1, Dims{Mass: 1, Length: 2, Time: -1, Charge: -2}, full},
	{"ohm", "Ohm", 1, Dims{Mass: 1, Length: 2, Time: -1, Charge: -2}, full},
	{"S", "Siemens", 1, Dims{Mass: -1, Length: -2, Time: 1, Charge: 2}, full},
	{"F", "Farad", 1, Dims{Mass: -1, Length: -2, Time: 2, Charge: 2}, full},
	{"Wb", "Weber", 1, Dims{Mass: 1, Length: 2, Time: -1, Charge: -1}, full},
	{"T", "Tesla", 1, Dims{Mass: 1, Time: -1, Charge: -1}, full},
	{"H", "Henry", 1, Dims{Mass: 1, Length: 2, Charge: -2}, full},
	{"lm", "lumen", 1, Dims{LuminousIntensity: 1, SolidAngle: 1}, full},
	{"lx", "lux", 1, Dims{LuminousIntensity: 1, SolidAngle: 1, Length: -2}, full},

	// Angles.
	{"deg", "degree", 1, Dims{PlaneAngle: 1}, none},
	{"arcmin", "arcminute", 1.0 / 60, Dims{PlaneAngle: 1}, none},
	{"arcsec", "arcsecond", 1.0 / 3600, Dims{PlaneAngle: 1}, none},
	{"mas", "milli-arcsecond", 1.0 / 3600000, Dims{PlaneAngle: 1}, none},

	// Time.
	{"min", "minute", 60, Dims{Time: 1}, none},
	{"h", "hour", 3600, Dims{Time: 1}, none},
	{"d", "day", 86400, Dims{Time: 1}, none},
	{"a", "annum", julianYear, Dims{Time: 1}, PrefixPolicy{Range: PrefixGreater, Forbid: []string{"P"}}},
	{"yr", "year", julianYear, Dims{Time: 1}, greater},

	// Energy, mass, length and power in astronomical and cgs units.
	{"eV", "electron volt", electronVolt, Dims{Mass: 1, Length: 2, Time: -2}, full},
	{"erg", "erg", 1e-7, Dims{Mass: 1, Length: 2, Time: -2}, none},
	{"Ry", "Rydberg", 13.605692 * electronVolt, Dims{Mass: 1, Length: 2, Time: -2}, none},
	{"dyn", "dyne", 1e-5, Dims{Mass: 1, Length: 1, Time: -2}, none},
	{"solMass", "solar mass", 1.9891e30, Dims{Mass: 1}, none},
	{"u", "atomic mass unit", 1.6605387e-27, Dims{Mass: 1}, none},
	{"solLum", "solar luminosity", 3.8268e26, Dims{Mass: 1, Length: 2, Time: -3}, none},
	{"Angstrom", "Angstrom", 1e-10, Dims{Length: 1}, none},
	{"angstrom", "Angstrom", 1e-10, Dims{Length: 1}, none},
	{"solRad", "solar radius", 6.9599e8, Dims{Length: 1}, none},
	{"AU", "astronomical unit", 1.49598e11, Dims{Length: 1}, none},
	{"lyr", "light year", 9.460730e15, Dims{Length: 1}, none},
	{"pc", "parsec", 3.0857e16, Dims{Length: 1}, greater},

	// Flux, field and area.
	{"Jy", "Jansky", 1e-26, Dims{Mass: 1, Time: -2}, full},
	{"R", "Rayleigh", 1e10 / (4 * math.Pi), Dims{Count: 1, Length: -2, Time: -1, SolidAngle: -1}, full},
	{"G", "Gauss", 1e-4, Dims{Mass: 1, Time: -1, Charge: -1}, full},
	{"barn", "barn", 1e-28, Dims{Length: 2}, full},
	{"D", "Debye", 1e-29 / 3, Dims{Charge: 1, Length: 1}, full},

	// Dimensionless counts.
	{"mag", "stellar magnitude", 1, Dims{Magnitude: 1}, less},
	{"count", "count", 1, Dims{Count: 1}, none},
	{"ct", "count", 1, Dims{Count: 1}, none},
	{"photon", "photon", 1, Dims{Count: 1}, none},
	{"ph", "photon", 1, Dims{Count: 1}, none},
	{"adu", "analogue-to-digital unit", 1, Dims{Count: 1}, none},
	{"Sun", "solar ratio", 1, Dims{SolarRatio: 1}, none},
	{"pixel", "pixel", 1, Dims{Pixel: 1}, none},
	{"pix", "pixel", 1, Dims{Pixel: 1}, none},
	{"voxel", "voxel", 1, Dims{Voxel: 1}, none},
	{"beam", "beam", 1, Dims{Beam: 1}, none},
	{"chan", "channel", 1, Dims{Bin: 1}, none},
	{"bin", "bin", 1, Dims{Bin: 1}, none},
	{"bit", "bit", 1, Dims{Bit: 1}, greater},
	{"byte", "byte", 8, Dims{Bit: 1}, greater},
	{"Byte", "byte", 8, Dims{Bit: 1}, greater},
}

var (
	unitIndex   = indexUnits(baseUnits)
	prefixIndex = indexPrefixes(prefixes)
)

func indexUnits(us []BaseUnit) map[string]*BaseUnit {
	m := make(map[string]*BaseUnit, len(us))
	for i := range us {
		m[us[i].Symbol] = &us[i]
	}
	return m
}

func indexPrefixes(ps []Prefix) map[string]Prefix {
	m := make(map[string]Prefix, len(ps))
	for _, p := range ps {
		m[p.Symbol] = p
	}
	return m
}

// BaseUnits returns a copy of the base-unit table in display order.
func BaseUnits() []BaseUnit {
	out := make([]BaseUnit, len(baseUnits))
	for i, u := range baseUnits {
		u.Prefix.Forbid = slices.Clone(u.Prefix.Forbid)
		out[i] = u
	}
	return out
}

// Lookup returns the base unit with the given symbol (no prefix).
func Lookup(symbol string) (BaseUnit, bool) {
	u, ok := unitIndex[symbol]
	if !ok {
		return BaseUnit{}, false
	}
	c := *u
	c.Prefix.Forbid = slices.Clone(u.Prefix.Forbid)
	return c, true
}

// Prefixes returns the metric prefixes in ascending order of factor.
func Prefixes() []Prefix {
	return slices.Clone(prefixes)
}

// resolve splits a unit token into an optional prefix and a base unit.
// An exact base-unit match always wins, so "Pa" is Pascal and "cd" candela.
// The returned factor includes the prefix.
func resolve(tok string) (float64, *BaseUnit, bool) {
	if u, ok := unitIndex[tok]; ok {
		return u.Scale, u, true
	}
	for _, n := range []int{2, 1} {
		if len(tok) <= n {
			continue
		}
		p, ok := prefixIndex[tok[:n]]
		if !ok {
			continue
		}
		u, ok := unitIndex[tok[n:]]
		if !ok || !u.Prefix.Allows(p) {
			continue
		}
		return p.Factor * u.Scale, u, true
	}
	return 0, nil, false
}
