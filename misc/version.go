// Package misc provides build information shared by the program.
package misc

import (
	"path/filepath"
	"runtime/debug"
	"strings"
)

const appName = "selkit"

// set with -ldflags "-X selkit/misc.version=... -X selkit/misc.gitHash=..."
var (
	version = ""
	gitHash = ""
)

// GetAppName returns program name.
func GetAppName() string {
	return appName
}

// GetVersion returns program version, falls back to module version from
// build information.
func GetVersion() string {
	if len(version) > 0 {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns VCS revision program was built from, if known.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}

// TrimExt returns base file name without extension.
func TrimExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
