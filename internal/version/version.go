// Package version carries build metadata set with -ldflags at link time.
package version

import "fmt"

var (
	// Version is the release tag.
	Version = "dev"
	// GitSHA is the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String formats the build metadata for -version output.
func String() string {
	return fmt.Sprintf("%s (git %s, built %s)", Version, GitSHA, BuildTime)
}
