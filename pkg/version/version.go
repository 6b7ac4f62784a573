// Package version exposes the homeroute build version.
package version

// Version is the homeroute version, overridable at build time via
// -ldflags "-X github.com/homeroute/homeroute/pkg/version.Version=v1.2.3".
var Version = "0.1.0" //nolint:gochecknoglobals // Set at build time via ldflags

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
