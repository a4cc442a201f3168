package discovery

import (
	"log/slog"
	"sync"

	"github.com/scopekit-dev/scopekit/metrics"
)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithRecorder sets the metrics recorder for lookup instrumentation.
func WithRecorder(rec metrics.Recorder) RegistryOption {
	return func(r *Registry) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// Registry aggregates requirement providers. It is owned by the
// composing application and passed by reference to whatever needs
// discovery; there is no ambient process-global instance. Providers are
// registered at startup and the list is read-only during lookups.
type Registry struct {
	providers []Provider
	log       *slog.Logger
	recorder  metrics.Recorder
	mu        sync.RWMutex
}

// NewRegistry creates a new, empty provider registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		log:      slog.Default(),
		recorder: metrics.NewNoopRecorder(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterProvider appends a provider. Lookup results preserve
// registration order. Nil providers are ignored.
func (r *Registry) RegisterProvider(p Provider) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
}

// Providers returns the number of registered providers.
func (r *Registry) Providers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// LookupRequirements queries every registered provider in registration
// order and concatenates their contributions, preserving per-provider
// order. Duplicates contributed by independent providers are kept.
//
// Lookup never fails: with no providers the result is empty, and a nil
// receiver (no registry was wired in) logs the condition and returns
// empty rather than propagating an error. Discovery is best-effort.
func (r *Registry) LookupRequirements(kind Kind) []Requirement {
	if r == nil {
		slog.Default().Error("requirement lookup without a registry, returning no requirements",
			"kind", kind.String())
		return nil
	}

	r.mu.RLock()
	providers := r.providers
	r.mu.RUnlock()

	var out []Requirement
	for _, p := range providers {
		out = append(out, p.Provide(kind)...)
	}

	r.recorder.LookupCompleted(kind.String(), len(out))
	return out
}

// Lookup returns the registry's requirements of the given kind that are
// of type T. The type assertion stands in for an assignability check:
// requirements of the right kind but the wrong Go type are excluded.
func Lookup[T Requirement](r *Registry, kind Kind) []T {
	var out []T
	for _, req := range r.LookupRequirements(kind) {
		if v, ok := req.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
