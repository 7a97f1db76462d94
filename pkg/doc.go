// Package pkg provides the core libraries for fitsunits.
//
// # Overview
//
// fitsunits turns FITS-style unit strings ("km/s", "erg/(cm2.s.Hz)",
// "log(MHz)") into a scale factor and a vector of fundamental dimensions, and
// computes the scale, offset and power that convert one unit string into
// another. The pkg directory is organized into:
//
//  1. [units] - Translation, parsing and conversion of unit strings
//  2. [errors] - The status-carrying error record returned by [units]
//  3. [pipeline] - Batched, cached conversion runs with logging and hooks
//  4. [cache] - Cache backends (memory, file, null) and key derivation
//  5. [io] - Batch file import (TOML, YAML, JSON) and result export
//  6. [observability] - Hooks for pipeline and cache events
//
// # Architecture
//
// The typical data flow:
//
//	unit string ("KM/SEC")
//	         ↓
//	    [units.Translate] (non-standard aliases → "km/s")
//	         ↓
//	    [units.Parse] (scale + dimensions)
//	         ↓
//	    [units.Convert] (scale, offset, power between two specs)
//
// # Quick Start
//
//	import "github.com/matzehuels/fitsunits/pkg/units"
//
//	conv, err := units.Convert("km/s", "m/s")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(conv.Apply(2.5)) // 2500
//
// For many conversions, or when results should be cached between runs, use a
// [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	defer runner.Close()
//	results, err := runner.Execute(ctx, pipeline.Options{}, jobs)
//
// Failing conversions carry their status code in the result; they do not
// abort the batch.
//
// [units]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/units
// [errors]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/observability
// [units.Translate]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/units#Translate
// [units.Parse]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/units#Parse
// [units.Convert]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/units#Convert
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/pipeline#Runner
package pkg
