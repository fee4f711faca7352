// Package version reports the tablestate build version.
package version

import "runtime/debug"

// These are set at build time with -ldflags "-X".
//
//nolint:gochecknoglobals // Overwritten by the linker.
var (
	version   = ""
	gitCommit = ""
	buildDate = ""
)

const devVersion = "0.0.0-dev"

// GetVersion returns the linked version, the module version recorded in the
// binary's build info, or a development placeholder.
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}

// GetGitCommit returns the linked commit hash, or "unknown".
func GetGitCommit() string {
	if gitCommit == "" {
		return "unknown"
	}
	return gitCommit
}

// GetBuildDate returns the linked build date, or "unknown".
func GetBuildDate() string {
	if buildDate == "" {
		return "unknown"
	}
	return buildDate
}
