package discovery

import "log/slog"

// Provider is a discovery strategy contributing requirement instances
// found by some means. Providers are registered once and queried
// read-only afterwards; Provide must be safe for concurrent use.
type Provider interface {
	// Provide returns every requirement of the given kind discoverable
	// by this provider's strategy, in a stable order. An empty result is
	// routine, never an error.
	Provide(kind Kind) []Requirement
}

// TableProviderOption configures a TableProvider.
type TableProviderOption func(*TableProvider)

// WithTableProviderLogger sets the logger used for construction
// failures.
func WithTableProviderLogger(logger *slog.Logger) TableProviderOption {
	return func(p *TableProvider) {
		if logger != nil {
			p.log = logger
		}
	}
}

// TableProvider is the canonical provider: it walks a requirement table
// and constructs one instance per binding of the queried kind. Bindings
// of other kinds are filtered silently; a binding whose factory fails is
// logged and skipped so one malformed declaration never aborts discovery
// for the rest of the table.
type TableProvider struct {
	table *Table
	log   *slog.Logger
}

// NewTableProvider creates a provider over the given table.
func NewTableProvider(table *Table, opts ...TableProviderOption) *TableProvider {
	p := &TableProvider{
		table: table,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Provide constructs one requirement per matching binding, in table
// registration order.
func (p *TableProvider) Provide(kind Kind) []Requirement {
	if p.table == nil {
		return nil
	}

	var out []Requirement
	for _, b := range p.table.Bindings() {
		req, ok := p.resolve(b, kind)
		if !ok {
			continue
		}
		out = append(out, req)
	}
	return out
}

// resolve checks one binding against the queried kind and attempts
// construction. A kind mismatch is the routine filter case; factory
// failures and kind-dishonest requirements are malformed declarations.
func (p *TableProvider) resolve(b Binding, kind Kind) (Requirement, bool) {
	if b.Kind != kind {
		return nil, false
	}

	req, err := b.New()
	if err != nil {
		p.log.Error("skipping requirement binding: factory failed",
			"owner", b.Owner,
			"kind", b.Kind.String(),
			"error", err)
		return nil, false
	}
	if req == nil {
		p.log.Error("skipping requirement binding: factory returned nil",
			"owner", b.Owner,
			"kind", b.Kind.String())
		return nil, false
	}
	if req.RequirementKind() != b.Kind {
		p.log.Error("skipping requirement binding: constructed kind disagrees with binding",
			"owner", b.Owner,
			"kind", b.Kind.String(),
			"got", req.RequirementKind().String())
		return nil, false
	}
	return req, true
}

var _ Provider = (*TableProvider)(nil)
