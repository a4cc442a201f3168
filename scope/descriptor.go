package scope

import (
	"sort"

	"github.com/scopekit-dev/scopekit/discovery"
)

// Descriptor carries the per-type state shared by every specification
// of one family: the requirement kind it accepts and a display name.
// Many specifications may share one descriptor.
type Descriptor struct {
	kind        discovery.Kind
	displayName string
}

// NewDescriptor creates a descriptor accepting the given requirement
// kind.
func NewDescriptor(kind discovery.Kind, displayName string) *Descriptor {
	return &Descriptor{kind: kind, displayName: displayName}
}

// Kind returns the requirement kind this descriptor's specifications
// judge.
func (d *Descriptor) Kind() discovery.Kind {
	return d.kind
}

// DisplayName returns the human-readable name of the specification
// family.
func (d *Descriptor) DisplayName() string {
	return d.displayName
}

// ScopeItems returns every scope string required by any discoverable
// requirement of this descriptor's kind: the union over the registry's
// lookup, deduplicated and sorted. This answers "which scope values
// exist in this process" from whatever is actually registered rather
// than from a static list. A nil registry yields an empty result.
func (d *Descriptor) ScopeItems(r *discovery.Registry) []string {
	if d == nil {
		return nil
	}

	items := make(map[string]struct{})
	for _, req := range discovery.Lookup[Requirement](r, d.kind) {
		for _, s := range req.Scopes() {
			items[s] = struct{}{}
		}
	}

	out := make([]string, 0, len(items))
	for s := range items {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
