// Package version provides build version information.
package version

import (
	"fmt"
	"runtime"
)

var (
	// These are set via ldflags at build time
	Version = "dev"
	Commit  = "unknown"
	Date    = ""
)

// Info returns a single-line version string for --version output.
func Info() string {
	if Date == "" {
		return fmt.Sprintf("dockside %s (commit: %s, %s/%s)",
			Version, Commit, runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("dockside %s (commit: %s, built: %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
