// Package manifest loads declarative scope requirement manifests.
// A manifest is a YAML or JSON document in which deployments declare
// the requirements their components carry, as data instead of code;
// a manifest-backed provider serves those declarations through the
// discovery registry.
package manifest

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/scopekit-dev/scopekit/discovery"
)

// Sentinel errors for common error patterns.
var (
	// ErrUnsupportedVersion is returned for manifests outside the
	// supported apiVersion range.
	ErrUnsupportedVersion = errors.New("unsupported manifest apiVersion")

	// ErrUnknownFormat is returned when no parser handles a manifest
	// file's extension.
	ErrUnknownFormat = errors.New("unknown manifest format")
)

// supportedVersions is the apiVersion range this library reads.
var supportedVersions = mustConstraint(">= 1.0, < 2.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Manifest is one requirement declaration document.
type Manifest struct {
	APIVersion   string        `yaml:"apiVersion" json:"apiVersion"`
	Declarations []Declaration `yaml:"declarations" json:"declarations"`
}

// Declaration states that code owned by Owner requires the given scopes
// of the given requirement kind. Params carries optional kind-specific
// settings validated against the kind's registered schema.
type Declaration struct {
	Owner  string         `yaml:"owner" json:"owner"`
	Kind   string         `yaml:"kind" json:"kind"`
	Scopes []string       `yaml:"scopes" json:"scopes"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// Validate checks the manifest structurally: a supported apiVersion,
// and well-formed declarations with unique owners. A manifest with no
// declarations is legal.
func (m *Manifest) Validate() error {
	if m.APIVersion == "" {
		return fmt.Errorf("manifest apiVersion is required")
	}
	v, err := semver.NewVersion(m.APIVersion)
	if err != nil {
		return fmt.Errorf("invalid manifest apiVersion %q: %w", m.APIVersion, err)
	}
	if !supportedVersions.Check(v) {
		return fmt.Errorf("manifest apiVersion %q: %w", m.APIVersion, ErrUnsupportedVersion)
	}

	seen := make(map[string]struct{}, len(m.Declarations))
	for i, d := range m.Declarations {
		if d.Owner == "" {
			return fmt.Errorf("declaration %d: owner is required", i)
		}
		if _, ok := seen[d.Owner]; ok {
			return fmt.Errorf("declaration %d: owner %q declared twice", i, d.Owner)
		}
		seen[d.Owner] = struct{}{}

		if _, err := discovery.NewKind(d.Kind); err != nil {
			return fmt.Errorf("declaration %q: %w", d.Owner, err)
		}
		if len(d.Scopes) == 0 {
			return fmt.Errorf("declaration %q: at least one scope is required", d.Owner)
		}
		for _, s := range d.Scopes {
			if s == "" {
				return fmt.Errorf("declaration %q: empty scope string", d.Owner)
			}
		}
	}
	return nil
}
