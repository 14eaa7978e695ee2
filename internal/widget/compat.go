package widget

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const scopePrefix = "@backbase/"

// CheckPeers compares the descriptor's @backbase peer dependencies against the
// packages installed in distPath. It returns one warning per peer that is
// missing or whose installed version does not satisfy the declared range.
// Peers outside the @backbase scope are not checked.
func CheckPeers(d *Descriptor, distPath string) []string {
	names := make([]string, 0, len(d.PeerDependencies))
	for name := range d.PeerDependencies {
		if strings.HasPrefix(name, scopePrefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var warnings []string
	for _, name := range names {
		rng := d.PeerDependencies[name]
		constraint, err := semver.NewConstraint(rng)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: unparseable peer range %q", name, rng))
			continue
		}

		installed, err := InstalledVersion(distPath, strings.TrimPrefix(name, scopePrefix))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s %s is required but not installed", name, rng))
			continue
		}
		if !constraint.Check(installed) {
			warnings = append(warnings, fmt.Sprintf("%s %s is installed but %s is required", name, installed, rng))
		}
	}
	return warnings
}

// InstalledVersion reads the version of the package id installed in distPath.
func InstalledVersion(distPath, id string) (*semver.Version, error) {
	path := filepath.Join(distPath, id, descriptorFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var d struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ParseVersion(d.Version)
}

// ParseVersion parses a package version, tolerating a leading "v".
func ParseVersion(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
