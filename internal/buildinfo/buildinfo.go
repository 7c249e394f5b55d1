// Package buildinfo carries the version stamped in by the release build.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags "-X scrollscape/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the window title and HUD.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" && c != "unknown" {
		if len(c) > 7 {
			c = c[:7]
		}
		return c
	}
	return "dev"
}

// String is the -version line.
func String() string {
	return fmt.Sprintf("scrollscape %s (commit %s, built %s)", Version, commit(), Date)
}

// commit falls back to the VCS stamp the go tool embeds when -ldflags left
// Commit unset.
func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value
			}
		}
	}
	return Commit
}
