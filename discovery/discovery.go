// Package discovery maintains the process-wide registry of scope
// requirement providers. Requirement-bearing modules bind (owner, kind,
// factory) entries into a Table at initialization, providers enumerate
// requirements from tables or other sources, and a Registry aggregates
// the contributions of every provider for a queried requirement kind.
package discovery

import "errors"

// Sentinel errors for common error patterns.
// These allow errors.Is() checks at call sites.
var (
	// ErrDuplicateOwner is returned when an owner is bound twice in the
	// same table.
	ErrDuplicateOwner = errors.New("owner already bound")

	// ErrNilFactory is returned when a binding is registered without a
	// factory.
	ErrNilFactory = errors.New("nil requirement factory")
)

// Requirement is a typed declaration that a component needs something
// from its environment. Implementations are immutable value objects
// identified by their kind, not by field equality.
type Requirement interface {
	// RequirementKind returns the stable identifier of the requirement
	// family this value belongs to.
	RequirementKind() Kind
}

// Factory default-constructs one requirement instance. It is invoked
// once per lookup that matches its binding; a returned error marks the
// binding malformed and excludes it from that lookup only.
type Factory func() (Requirement, error)
