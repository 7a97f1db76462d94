// Package buildinfo holds the version stamped into fitsunits at link time:
//
//	go build -ldflags "\
//	    -X github.com/matzehuels/fitsunits/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/fitsunits/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/fitsunits/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/fitsunits
package buildinfo

import "fmt"

// Set via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// Scope identifies this build in persistent cache keys. Released builds share
// entries per version; development builds are further split by commit so a
// change to the unit tables is never answered from a stale cache.
func Scope() string {
	if Version != "dev" || Commit == "none" {
		return Version
	}
	short := Commit
	if len(short) > 12 {
		short = short[:12]
	}
	return Version + "-" + short
}
