package discovery

import (
	"io"
	"log/slog"
)

// MockProvider implements Provider for testing.
type MockProvider struct {
	Requirements []Requirement
	Calls        int
}

func (m *MockProvider) Provide(kind Kind) []Requirement {
	m.Calls++
	var out []Requirement
	for _, req := range m.Requirements {
		if req.RequirementKind() == kind {
			out = append(out, req)
		}
	}
	return out
}

// NewTestLogger returns a logger that discards all output.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
