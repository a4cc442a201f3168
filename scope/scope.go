// Package scope implements scope specifications: policies that judge
// whether a configured set of granted OAuth2 scopes satisfies, rejects,
// or has no opinion on a scope requirement. Matching is kind-isolated;
// scope strings carried by different requirement kinds are never
// compared to each other.
package scope

import "github.com/scopekit-dev/scopekit/discovery"

// Requirement is a discovery requirement whose payload is the set of
// scope strings an operation needs.
type Requirement interface {
	discovery.Requirement

	// Scopes returns the required scope strings.
	Scopes() []string
}

// StaticRequirement is a Requirement over a fixed scope list. It is the
// concrete type constructed by manifest declarations and table
// factories.
type StaticRequirement struct {
	kind   discovery.Kind
	scopes []string
}

// NewRequirement creates a requirement of the given kind needing the
// given scopes. The scope list is copied.
func NewRequirement(kind discovery.Kind, scopes ...string) StaticRequirement {
	copied := make([]string, len(scopes))
	copy(copied, scopes)
	return StaticRequirement{kind: kind, scopes: copied}
}

// RequirementKind returns the requirement family identifier.
func (r StaticRequirement) RequirementKind() discovery.Kind {
	return r.kind
}

// Scopes returns a copy of the required scope strings.
func (r StaticRequirement) Scopes() []string {
	out := make([]string, len(r.scopes))
	copy(out, r.scopes)
	return out
}

// Factory returns a discovery.Factory producing this requirement.
// Convenience for table bindings.
func (r StaticRequirement) Factory() discovery.Factory {
	return func() (discovery.Requirement, error) {
		return r, nil
	}
}

var _ Requirement = StaticRequirement{}
