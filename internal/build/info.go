// Package build exposes build-time metadata injected via ldflags.
package build

import "fmt"

// Version, Commit, and Branch are set at build time by:
//
//	-ldflags "-X github.com/joestump/cuecard/internal/build.Version=... ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

// String formats the build metadata for `cuecard version`.
func String() string {
	return fmt.Sprintf("cuecard %s (commit %s, branch %s)", Version, Commit, Branch)
}
