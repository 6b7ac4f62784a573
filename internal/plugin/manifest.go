package plugin

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Manifest describes the plugin to its host application.
type Manifest struct {
	Domain         string `json:"domain"`
	Name           string `json:"name"`
	Version        string `json:"version"`
	MinHostVersion string `json:"min_host_version"`
}

// CurrentManifest returns the manifest for this build.
func CurrentManifest(pluginVersion string) Manifest {
	return Manifest{
		Domain:         "homeroute",
		Name:           "HomeRoute",
		Version:        pluginVersion,
		MinHostVersion: "0.1.0",
	}
}

// CheckHost validates that the host application version satisfies the
// plugin's minimum. An unparseable host version fails the check; loading into
// an unknown host is how state files get silently corrupted.
func (m Manifest) CheckHost(hostVersion string) error {
	minVer, err := semver.NewVersion(m.MinHostVersion)
	if err != nil {
		return fmt.Errorf("invalid min_host_version %q: %w", m.MinHostVersion, err)
	}

	host, err := semver.NewVersion(strings.TrimPrefix(hostVersion, "v"))
	if err != nil {
		return fmt.Errorf("invalid host version %q: %w", hostVersion, err)
	}

	if host.LessThan(minVer) {
		return fmt.Errorf("host version %s is older than required minimum %s", hostVersion, m.MinHostVersion)
	}
	return nil
}
