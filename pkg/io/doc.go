// Package io reads batch conversion files and writes conversion results.
//
// # Batch Files
//
// A batch lists conversions to run through
// [github.com/matzehuels/fitsunits/pkg/pipeline]. TOML, YAML and JSON are
// accepted, chosen by file extension, and all use the same keys:
//
//	[[conversion]]
//	name   = "velocity"
//	have   = "km/s"
//	want   = "m/s"
//	values = [1.0, 2.5]
//
//	[[conversion]]
//	have = "log(MHz)"
//	want = "ln(Hz)"
//
// The same batch in YAML:
//
//	conversion:
//	  - name: velocity
//	    have: km/s
//	    want: m/s
//	    values: [1.0, 2.5]
//	  - have: log(MHz)
//	    want: ln(Hz)
//
// Unknown keys are rejected so that typos ("hve") fail loudly instead of
// producing an empty conversion. Each job is checked with
// [pipeline.Job.Validate]; errors name the offending entry by position.
//
// Use [ImportJobs] to read a file by path, or [ReadJobs] with an explicit
// [Format] to read from any io.Reader:
//
//	jobs, err := io.ImportJobs("batch.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Results
//
// [WriteResults] encodes pipeline results as an indented JSON array, one
// object per job:
//
//	[
//	  {
//	    "name": "velocity",
//	    "have": "km/s",
//	    "want": "m/s",
//	    "status": 0,
//	    "message": "Success",
//	    "scale": 1000,
//	    "offset": 0,
//	    "power": 1,
//	    "values": [1, 2.5],
//	    "converted": [1000, 2500]
//	  }
//	]
//
// Converted values that have no finite image (the logarithm of a negative
// number, say) are written as null. [ExportResults] writes to a file path.
package io
