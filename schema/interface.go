package schema

// KindRegistry manages JSON schemas for requirement kinds. Kinds that
// accept declaration params register the schema those params must
// satisfy.
type KindRegistry interface {
	// Register adds a schema for a requirement kind. model can be a
	// struct (to generate a schema), or a raw JSON schema string,
	// []byte, or map.
	Register(kind string, model any) error

	// Schema returns the JSON schema for a requirement kind.
	Schema(kind string) (string, bool)

	// Kinds returns all registered requirement kinds, sorted.
	Kinds() []string
}
