package types

import "runtime"

// Version information for the Gravity library.
const (
	Version = "0.1.0"
	Name    = "Gravity"
)

// BuildInfo contains version and build information for the Gravity library.
type BuildInfo struct {
	Version   string `json:"version"`
	Name      string `json:"name"`
	GoVersion string `json:"go_version"`
}

// GetBuildInfo returns the current version information.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Name:      Name,
		GoVersion: runtime.Version(),
	}
}
