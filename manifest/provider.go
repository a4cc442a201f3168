package manifest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/scopekit-dev/scopekit/discovery"
	"github.com/scopekit-dev/scopekit/scope"
)

// Validator performs semantic validation of a manifest beyond the
// structural checks in Manifest.Validate. The validation package
// supplies a schema-backed implementation.
type Validator interface {
	Validate(m *Manifest) error
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithLogger sets the provider logger.
func WithLogger(logger *slog.Logger) ProviderOption {
	return func(p *Provider) {
		if logger != nil {
			p.log = logger
		}
	}
}

// WithValidator adds semantic validation applied to every manifest
// before its declarations are accepted.
func WithValidator(v Validator) ProviderOption {
	return func(p *Provider) {
		p.validator = v
	}
}

// Provider serves requirements declared in manifests through the
// discovery registry. Manifests are added at startup; Provide is
// read-only and safe for concurrent use.
type Provider struct {
	requirements []scope.StaticRequirement
	log          *slog.Logger
	validator    Validator
	mu           sync.RWMutex
}

// NewProvider creates an empty manifest provider.
func NewProvider(opts ...ProviderOption) *Provider {
	p := &Provider{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddManifest accepts every declaration of a validated manifest. The
// manifest is rejected as a whole when structural or semantic
// validation fails; previously added manifests are unaffected.
// source names the manifest in errors and logs.
func (p *Provider) AddManifest(m *Manifest, source string) error {
	if m == nil {
		return fmt.Errorf("manifest %s: nil manifest", source)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("manifest %s: %w", source, err)
	}
	if p.validator != nil {
		if err := p.validator.Validate(m); err != nil {
			return fmt.Errorf("manifest %s: %w", source, err)
		}
	}

	added := make([]scope.StaticRequirement, 0, len(m.Declarations))
	for _, d := range m.Declarations {
		kind, err := discovery.NewKind(d.Kind)
		if err != nil {
			return fmt.Errorf("manifest %s: declaration %q: %w", source, d.Owner, err)
		}
		added = append(added, scope.NewRequirement(kind, d.Scopes...))
	}

	p.mu.Lock()
	p.requirements = append(p.requirements, added...)
	p.mu.Unlock()

	p.log.Debug("manifest accepted",
		"source", source,
		"declarations", len(added))
	return nil
}

// AddFile reads, parses, and adds one manifest file. The format is
// picked from the extension.
func (p *Provider) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest %q: %w", path, err)
	}

	parser, err := ParserForPath(path)
	if err != nil {
		return err
	}

	m, err := parser.Parse(data)
	if err != nil {
		return fmt.Errorf("manifest %q: %w", path, err)
	}
	return p.AddManifest(m, path)
}

// AddDir adds every manifest file in a directory, non-recursively.
// Files without a manifest extension are ignored; a file that fails to
// parse or validate is logged and skipped so one bad manifest never
// blocks the rest of the directory. Only an unreadable directory is an
// error.
func (p *Provider) AddDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading manifest directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := ParserForPath(path); err != nil {
			continue
		}
		if err := p.AddFile(path); err != nil {
			p.log.Warn("skipping manifest",
				"path", path,
				"error", err)
		}
	}
	return nil
}

// Provide returns the declared requirements of the given kind in
// declaration order.
func (p *Provider) Provide(kind discovery.Kind) []discovery.Requirement {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []discovery.Requirement
	for _, req := range p.requirements {
		if req.RequirementKind() == kind {
			out = append(out, req)
		}
	}
	return out
}

// Len returns the number of accepted declarations.
func (p *Provider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.requirements)
}

var _ discovery.Provider = (*Provider)(nil)
