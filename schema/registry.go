// Package schema keeps the JSON schemas that requirement kinds expose
// for their declaration params.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/invopop/jsonschema"
)

// ErrDuplicateKind is returned when a schema is registered twice for
// the same requirement kind.
var ErrDuplicateKind = errors.New("requirement kind already registered")

// Registry implements KindRegistry with in-memory storage.
type Registry struct {
	schemas   map[string]string
	reflector *jsonschema.Reflector
	mu        sync.RWMutex
}

// NewRegistry creates a new, empty kind schema registry.
func NewRegistry() *Registry {
	r := &Registry{
		schemas:   make(map[string]string),
		reflector: new(jsonschema.Reflector),
	}
	r.reflector.ExpandedStruct = true
	return r
}

// Register adds a schema for a requirement kind. Struct models have
// their schema generated; strings, byte slices, and maps are taken as
// raw JSON schema documents.
func (r *Registry) Register(kind string, model any) error {
	if kind == "" {
		return fmt.Errorf("schema kind cannot be empty")
	}

	schemaStr, err := renderSchema(r.reflector, model)
	if err != nil {
		return fmt.Errorf("schema for kind %q: %w", kind, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[kind]; exists {
		return fmt.Errorf("kind %q: %w", kind, ErrDuplicateKind)
	}
	r.schemas[kind] = schemaStr
	return nil
}

func renderSchema(reflector *jsonschema.Reflector, model any) (string, error) {
	switch v := model.(type) {
	case nil:
		return "", fmt.Errorf("nil schema model")
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("marshaling schema map: %w", err)
		}
		return string(b), nil
	default:
		s := reflector.Reflect(model)
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling generated schema: %w", err)
		}
		return string(b), nil
	}
}

// Schema returns the JSON schema for a requirement kind.
func (r *Registry) Schema(kind string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[kind]
	return s, ok
}

// Kinds returns all registered requirement kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ KindRegistry = (*Registry)(nil)
