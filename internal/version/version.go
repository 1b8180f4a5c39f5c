package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the short git SHA of the build. Empty falls back to the VCS stamp of the binary.
	Commit = ""
	// BuildTime is the UTC build timestamp. Empty falls back to the VCS commit time.
	BuildTime = ""
)

// shortCommitLength is how many characters of a VCS revision are shown.
const shortCommitLength = 7

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns the version together with commit, build time and Go version.
func Full() string {
	commit, built := stamp(debug.ReadBuildInfo())

	return fmt.Sprintf("traffic-light %s (commit %s, built %s, %s)", Version, commit, built, runtime.Version())
}

// stamp resolves commit and build time, preferring ldflags values over
// the VCS settings the go tool embeds in the binary.
func stamp(info *debug.BuildInfo, ok bool) (string, string) {
	commit, built := Commit, BuildTime

	if ok && info != nil {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if commit == "" {
					commit = setting.Value
				}
			case "vcs.time":
				if built == "" {
					built = setting.Value
				}
			}
		}
	}

	if len(commit) > shortCommitLength {
		commit = commit[:shortCommitLength]
	}

	if commit == "" {
		commit = "none"
	}

	if built == "" {
		built = "unknown"
	}

	return commit, built
}
