// Package grantstore provides file-based storage for granted-scope
// configuration: the scopes an operator has granted to each named
// consumer. It stores policy configuration, not credentials.
package grantstore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/scopekit-dev/scopekit/scope"
)

// Grants maps consumer names to their granted scope lists.
type Grants map[string][]string

// Clone returns a deep copy.
func (g Grants) Clone() Grants {
	out := make(Grants, len(g))
	for name, scopes := range g {
		copied := make([]string, len(scopes))
		copy(copied, scopes)
		out[name] = copied
	}
	return out
}

// Deduplicate removes repeated scopes per consumer in place, keeping
// first-occurrence order.
func (g Grants) Deduplicate() {
	for name, scopes := range g {
		seen := make(map[string]struct{}, len(scopes))
		out := scopes[:0]
		for _, s := range scopes {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
		g[name] = out
	}
}

// Specification builds a scope specification from one consumer's
// grants. An unknown consumer yields a specification granting nothing.
func (g Grants) Specification(name string, desc *scope.Descriptor, opts ...scope.SpecificationOption) *scope.Specification {
	return scope.NewSpecification(desc, g[name], opts...)
}

// fileStoreConfig holds configuration for the FileStore.
type fileStoreConfig struct {
	path     string
	dirPerm  os.FileMode
	filePerm os.FileMode
}

func defaultFileStoreConfig() fileStoreConfig {
	return fileStoreConfig{
		path:     filepath.Join(os.Getenv("HOME"), ".scopekit", "grants.yaml"),
		dirPerm:  0o755,
		filePerm: 0o600,
	}
}

// FileStoreOption configures a FileStore instance.
type FileStoreOption func(*fileStoreConfig)

// WithPath sets the path to the grants file.
func WithPath(path string) FileStoreOption {
	return func(c *fileStoreConfig) {
		if path != "" {
			c.path = path
		}
	}
}

// WithFilePermissions sets the file permissions for the grants file.
func WithFilePermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.filePerm = perm
	}
}

// WithDirPermissions sets the directory permissions for the grants
// directory.
func WithDirPermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.dirPerm = perm
	}
}

// FileStore provides file-based persistence for granted-scope
// configuration.
type FileStore struct {
	config fileStoreConfig
}

// NewFileStore creates a new FileStore with the given options.
func NewFileStore(opts ...FileStoreOption) *FileStore {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileStore{config: cfg}
}

// Load retrieves all configured grants. A missing file is an empty
// configuration, not an error.
func (s *FileStore) Load() (Grants, error) {
	data, err := os.ReadFile(s.config.path)
	if os.IsNotExist(err) {
		return Grants{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading grant store: %w", err)
	}

	var grants Grants
	if err := yaml.Unmarshal(data, &grants); err != nil {
		return nil, fmt.Errorf("parsing grant store: %w", err)
	}
	if grants == nil {
		grants = Grants{}
	}
	return grants, nil
}

// Save persists the grants, deduplicated per consumer.
func (s *FileStore) Save(grants Grants) error {
	if grants == nil {
		grants = Grants{}
	}

	clean := grants.Clone()
	clean.Deduplicate()

	data, err := yaml.Marshal(clean)
	if err != nil {
		return fmt.Errorf("marshaling grants: %w", err)
	}

	dir := filepath.Dir(s.config.path)
	if err := os.MkdirAll(dir, s.config.dirPerm); err != nil {
		return fmt.Errorf("creating grant store directory: %w", err)
	}

	if err := os.WriteFile(s.config.path, data, s.config.filePerm); err != nil {
		return fmt.Errorf("writing grant store: %w", err)
	}
	return nil
}

// ConfigPath returns the path to the backing store.
func (s *FileStore) ConfigPath() string {
	return s.config.path
}
