// Package version carries build metadata, overridden at link time with
// -ldflags "-X github.com/banshee-data/consequential-regions/internal/version.Version=...".
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String formats the build metadata for -version output.
func String() string {
	return fmt.Sprintf("shepard %s (commit %s, built %s)", Version, GitSHA, BuildTime)
}
