// Package version reports build information.
package version

import (
	"fmt"
	"runtime"
)

// Build information, set via ldflags.
var (
	// Version is the release tag, or "dev".
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "unknown"

	// Date is when the binary was built.
	Date = "unknown"
)

// Info contains version and build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("mathclip %s (commit %s, built %s)", i.Version, i.Short(), i.Date)
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}
