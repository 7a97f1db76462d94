// Package cli implements the fitsunits command-line interface.
//
// This package provides commands for translating, parsing and converting
// FITS unit strings, running conversion batches from TOML, YAML or JSON
// files, browsing the built-in unit tables and managing the on-disk result
// cache. The CLI is built using cobra, renders with lipgloss and logs via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - translate: Rewrite non-standard spellings ("KM/SEC", "JY/BEAM")
//   - parse: Print the scale factor and dimensions of unit strings
//   - convert: Compute scale, offset and power between two unit strings
//   - batch: Run a file of conversions and report or export the results
//   - table, browse: List or interactively search the unit tables
//   - cache: Inspect or clear the parse and conversion cache
//
// # Output
//
// Results go to the command's output writer, as lipgloss tables or, with
// --json, as JSON. Status lines (success, warnings, hints) go to stdout and
// the batch spinner to stderr.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports per-batch cache and parse counters. The logger is shared with the
// [pipeline.Runner] each command builds.
//
// # Configuration
//
// Defaults for --ctrl, --translate and --json, and the cache directory, are
// read from $XDG_CONFIG_HOME/fitsunits/config.toml or the file named by
// --config. Flags set on the command line win.
//
// # Example
//
//	import "github.com/matzehuels/fitsunits/internal/cli"
//
//	func main() {
//	    root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
//	    if err := root.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
//
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/pipeline#Runner
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger that writes to w and filters messages below
// level. Timestamps are formatted as "HH:MM:SS.cc", e.g. "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step, such as a batch run, and logs its
// completion with the elapsed duration. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress captures the current time as the start of the step. Call done
// once the step completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time, rounded to the
// millisecond, as the "took" field. Extra key/value pairs follow it:
//
//	p.done("Converted batch", "jobs", 42)
//	// 14:32:01.45 INFO Converted batch took=12ms jobs=42
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append([]any{"took", elapsed}, keyvals...)...)
}
