// Package version carries build-time version information, injected via
// ldflags by the release pipeline.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the full version line for `loom version`.
func String() string {
	return fmt.Sprintf("loom %s (commit %s, built %s)", Version, Commit, Date)
}
