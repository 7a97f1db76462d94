// Package units parses FITS unit specifications and converts between them.
//
// # Overview
//
// Physical units in FITS headers are free text: "km/s", "10**-3 kg",
// "log(MHz)", "[deg] right ascension". This package reduces such strings to a
// canonical numeric form and derives the transform between two of them.
// Three pieces cooperate:
//
//   - [Translate] rewrites common non-standard tokens ("DEG", "KM", "sec")
//     into their standard forms.
//   - [Parse] lexes and parses a standard specification into a [Spec]: a
//     scale factor and a vector of exponents over 17 fundamental quantities.
//   - [Convert] parses two specifications and returns the [Conversion]
//     taking values from one to the other.
//
// # Basic Usage
//
//	c, err := units.Convert("km/h", "m/s")
//	if err != nil {
//	    return err
//	}
//	v := c.Apply(36) // 10
//
// Inspect a single specification with [Parse]:
//
//	spec, err := units.Parse("10**-3 kg m2/s2")
//	// spec.Scale == 1e-3, spec.Dims[units.Mass] == 1, spec.Dims[units.Length] == 2
//
// # Canonical Form
//
// A [Spec] says: multiply a value in the specified units by Scale to obtain
// the value in canonical units with dimensions Dims. The canonical units
// are SI with degrees for plane angle, plus dimensionless counts for the
// astronomical quantities FITS cares about (beam, bin, bit, count,
// magnitude, pixel, solar ratio, voxel). See [Dimension].
//
// Metric prefixes are validated against each base unit's [PrefixPolicy].
// An exact base-unit match always wins, so "Pa" is Pascal and never a
// peta-annum, and "cd" is candela.
//
// # Functions
//
// A specification may be wrapped as a whole in log() (base 10), ln() or
// exp(). The wrapper is recorded in [Spec.Func]; Scale and Dims describe the
// argument. [Convert] pairs functions: log() and ln() convert into each
// other via an offset, exp() into exp() via a power.
//
// # Status Codes
//
// Every failure is an *errors.Error from
// [github.com/matzehuels/fitsunits/pkg/errors] carrying a [Status]. Use
// [StatusOf] to recover it:
//
//	if _, err := units.Parse("m//s"); units.StatusOf(err) == units.StatusConsecBinops {
//	    // ...
//	}
//
// Codes 1-9 are syntax errors from the parser, 10-11 semantic errors from
// the converter and 12 the warning raised by [Translate] for the ambiguous
// "S", "H" and "D".
//
// # Concurrency
//
// All functions are safe for concurrent use. The unit, prefix and alias
// tables are package data that is never modified; the accessors return
// copies.
package units
