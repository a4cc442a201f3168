package discovery

import (
	"fmt"
	"sync"
)

// Binding is one entry of the requirement table: the declaration that
// code owned by Owner requires instances of the Kind family, producible
// through New.
type Binding struct {
	Owner string
	Kind  Kind
	New   Factory
}

// Table is an ordered collection of bindings. Modules bind their
// requirement declarations at initialization; lookups iterate the table
// in registration order.
type Table struct {
	bindings []Binding
	owners   map[string]struct{}
	mu       sync.RWMutex
}

// NewTable creates a new, empty requirement table.
func NewTable() *Table {
	return &Table{
		owners: make(map[string]struct{}),
	}
}

// Bind registers a requirement declaration for an owner. Each owner may
// declare at most one requirement per table.
func (t *Table) Bind(owner string, kind Kind, factory Factory) error {
	if owner == "" {
		return fmt.Errorf("binding owner cannot be empty")
	}
	if kind.IsEmpty() {
		return fmt.Errorf("binding for owner %q: requirement kind cannot be empty", owner)
	}
	if factory == nil {
		return fmt.Errorf("binding for owner %q: %w", owner, ErrNilFactory)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.owners[owner]; ok {
		return fmt.Errorf("owner %q: %w", owner, ErrDuplicateOwner)
	}

	t.owners[owner] = struct{}{}
	t.bindings = append(t.bindings, Binding{Owner: owner, Kind: kind, New: factory})
	return nil
}

// MustBind registers a declaration or panics. Intended for package
// initialization where a duplicate owner is a programming error.
func (t *Table) MustBind(owner string, kind Kind, factory Factory) {
	if err := t.Bind(owner, kind, factory); err != nil {
		panic(err)
	}
}

// Bindings returns a copy of all bindings in registration order.
func (t *Table) Bindings() []Binding {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Len returns the number of registered bindings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.bindings)
}
