package version

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Package is the module the binary is built from.
const Package = "github.com/ttokutake/kic"

// Set with -ldflags "-X"; empty or placeholder values fall back to build info.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info contains version information
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Package string `json:"package" yaml:"package"`
}

// buildSetting looks up a VCS stamp recorded by the go command.
func buildSetting(key string) (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range info.Settings {
		if s.Key == key && s.Value != "" {
			return s.Value, true
		}
	}
	return "", false
}

func stamped(v, placeholder string) bool {
	return v != "" && v != placeholder
}

// GetVersion returns the version string, preferring compile-time version if available
func GetVersion() string {
	if stamped(Version, "dev") {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "development"
}

// GetCommit returns the git commit hash
func GetCommit() string {
	if stamped(Commit, "unknown") {
		return Commit
	}
	if v, ok := buildSetting("vcs.revision"); ok {
		return v
	}
	return "unknown"
}

// GetBuildDate returns the build date
func GetBuildDate() string {
	if stamped(Date, "unknown") {
		return Date
	}
	if v, ok := buildSetting("vcs.time"); ok {
		return v
	}
	return "unknown"
}

// GetInfo returns complete version information
func GetInfo() Info {
	return Info{
		Version: GetVersion(),
		Commit:  GetCommit(),
		Date:    GetBuildDate(),
		Package: Package,
	}
}

// GetFullVersion returns the version with the short commit and build date
// when they are known.
func GetFullVersion() string {
	info := GetInfo()
	if info.Commit == "unknown" || len(info.Commit) <= 7 {
		return info.Version
	}
	short := info.Commit[:7]
	if info.Date == "unknown" {
		return fmt.Sprintf("%s (%s)", info.Version, short)
	}
	return fmt.Sprintf("%s (%s, built %s)", info.Version, short, info.Date)
}

// PrintVersion writes version information to w
func PrintVersion(w io.Writer, appName string) {
	info := GetInfo()
	fmt.Fprintf(w, "%s version %s\n", appName, GetFullVersion())
	fmt.Fprintf(w, "Package: %s\n", info.Package)
	fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	fmt.Fprintf(w, "Build Date: %s\n", info.Date)
}
