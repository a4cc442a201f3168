package validation

import "github.com/scopekit-dev/scopekit/manifest"

// SchemaSource supplies the JSON schema registered for a requirement
// kind. schema.Registry satisfies it.
type SchemaSource interface {
	Schema(kind string) (string, bool)
}

// ValidationResult collects the outcome of validating one manifest.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ManifestValidator validates manifest declarations against the schemas
// their kinds registered.
type ManifestValidator interface {
	// Validate checks every declaration's params against its kind's
	// schema. The error return reports infrastructure failures
	// (unreadable or malformed schemas), not validation findings.
	Validate(m *manifest.Manifest) (*ValidationResult, error)
}
