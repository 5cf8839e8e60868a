// Package buildinfo carries version stamps injected with
// -ldflags "-X lsystree/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the window title.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// String is the one-line form printed by `lsystree version`.
func String() string {
	return fmt.Sprintf("lsystree %s (commit %s, built %s)", Version, Commit, Date)
}
