// Package validation checks manifest declarations against the JSON
// schemas registered for their requirement kinds.
package validation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/scopekit-dev/scopekit/manifest"
)

// ManifestValidatorOption configures a manifest validator.
type ManifestValidatorOption func(*manifestValidator)

// WithLogger sets the validator logger.
func WithLogger(logger *slog.Logger) ManifestValidatorOption {
	return func(v *manifestValidator) {
		if logger != nil {
			v.log = logger
		}
	}
}

// manifestValidator implements ManifestValidator on top of a schema
// source. Compiled schemas are cached per kind; the source is
// append-only so cached entries never go stale.
type manifestValidator struct {
	schemas  SchemaSource
	log      *slog.Logger
	compiled map[string]*jsonschema.Schema
	mu       sync.Mutex
}

// NewManifestValidator creates a validator over the given schema
// source.
func NewManifestValidator(schemas SchemaSource, opts ...ManifestValidatorOption) ManifestValidator {
	v := &manifestValidator{
		schemas:  schemas,
		log:      slog.Default(),
		compiled: make(map[string]*jsonschema.Schema),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks each declaration carrying params against its kind's
// registered schema. Declarations without params have nothing to
// validate; params for an unregistered kind are a finding, not an
// infrastructure error.
func (v *manifestValidator) Validate(m *manifest.Manifest) (*ValidationResult, error) {
	if m == nil {
		return nil, fmt.Errorf("nil manifest")
	}

	res := &ValidationResult{Valid: true}
	for _, d := range m.Declarations {
		if len(d.Params) == 0 {
			continue
		}

		schemaStr, ok := v.schemas.Schema(d.Kind)
		if !ok {
			res.Valid = false
			res.Errors = append(res.Errors,
				fmt.Sprintf("declaration %q: no schema registered for kind %q", d.Owner, d.Kind))
			continue
		}

		sch, err := v.compile(d.Kind, schemaStr)
		if err != nil {
			return nil, fmt.Errorf("schema for kind %q: %w", d.Kind, err)
		}

		doc, err := normalizeParams(d.Params)
		if err != nil {
			return nil, fmt.Errorf("declaration %q: %w", d.Owner, err)
		}

		if err := sch.Validate(doc); err != nil {
			res.Valid = false
			res.Errors = append(res.Errors,
				fmt.Sprintf("declaration %q: params: %v", d.Owner, err))
			v.log.Debug("manifest declaration failed schema validation",
				"owner", d.Owner,
				"kind", d.Kind)
		}
	}
	return res, nil
}

func (v *manifestValidator) compile(kind, schemaStr string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if sch, ok := v.compiled[kind]; ok {
		return sch, nil
	}

	url := kind + ".schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	sch, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	v.compiled[kind] = sch
	return sch, nil
}

// normalizeParams round-trips params through JSON so YAML-decoded
// values carry the types the schema validator expects.
func normalizeParams(params map[string]any) (any, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encoding params: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}
	return doc, nil
}

// Gate adapts a ManifestValidator to the provider's Validator contract:
// a manifest with findings is rejected with an error listing them.
type Gate struct {
	validator ManifestValidator
}

// NewGate wraps a validator for use as a manifest.Validator.
func NewGate(validator ManifestValidator) *Gate {
	return &Gate{validator: validator}
}

// Validate rejects manifests that fail schema validation.
func (g *Gate) Validate(m *manifest.Manifest) error {
	res, err := g.validator.Validate(m)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("manifest failed validation: %s", strings.Join(res.Errors, "; "))
	}
	return nil
}

var _ manifest.Validator = (*Gate)(nil)
