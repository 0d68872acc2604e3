// Package version reports the build identity of the tripmaker binaries
package version

import "runtime/debug"

// BuildInfo is served by /meta/version and printed by the CLI -version flag
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Set at link time:
//
//	-ldflags "-X tripmaker/internal/core/version.version=v0.1.0
//	          -X tripmaker/internal/core/version.commit=abcd
//	          -X tripmaker/internal/core/version.date=2026-01-02"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the identity of service. When commit was not stamped the vcs
// revision recorded by the go toolchain is used instead.
func Info(service string) BuildInfo {
	bi := BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		bi.GoVersion = info.GoVersion
		if bi.Commit == "none" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					bi.Commit = s.Value
				}
			}
		}
	}
	return bi
}
