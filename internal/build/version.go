// Package build provides version and build information for relnotes.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// ShortCommit returns the first 7 characters of Commit.
func ShortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// Summary returns a one-line description such as "relnotes v1.0.0 (abc1234, linux/amd64)".
func Summary() string {
	return fmt.Sprintf("relnotes %s (%s, %s/%s)", Version, ShortCommit(), runtime.GOOS, runtime.GOARCH)
}
