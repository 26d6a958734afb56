package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time:
//
//	go build -ldflags="-X introboard/internal/version.Version=v1.0.0 -X introboard/internal/version.Commit=abc123"
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Commit == "" {
		Commit = vcsRevision()
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified == "true" {
		revision += "-dirty"
	}
	return revision
}

// Full returns the version with its commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
