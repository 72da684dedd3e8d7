// Package version exposes the release version and the source revision the
// binary was built from.
package version

import (
	"fmt"
	"runtime/debug"
)

const (
	// Version is the current version of jqrt
	Version = "0.4.0"

	// Unknown is reported when the build carries no usable revision.
	Unknown = "unknown"

	shortLen = 7
)

// Commit is the abbreviated revision. Release builds set it at link time:
//
//	-ldflags "-X github.com/dshills/jqrt/pkg/version.Commit=$(git rev-parse --short HEAD)"
//
// When left empty, Resolve falls back to the build info the Go toolchain
// embeds for builds inside a repository.
var Commit string

var commit = Resolve(Commit, debug.ReadBuildInfo)

// Resolve picks the revision to report. It never fails: every missing
// piece degrades to Unknown.
func Resolve(linked string, read func() (*debug.BuildInfo, bool)) string {
	if linked != "" {
		return shorten(linked)
	}
	if read == nil {
		return Unknown
	}
	info, ok := read()
	if !ok || info == nil {
		return Unknown
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return shorten(s.Value)
		}
	}
	return Unknown
}

// ShortCommit returns the revision resolved when the program started.
func ShortCommit() string {
	return commit
}

// Banner is the one-line text shown by `jqrt version`.
func Banner() string {
	return fmt.Sprintf("jqrt %s (%s)", Version, ShortCommit())
}

func shorten(rev string) string {
	if len(rev) > shortLen {
		return rev[:shortLen]
	}
	return rev
}
