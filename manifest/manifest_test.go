package manifest_test

import (
	"errors"
	"testing"

	"github.com/scopekit-dev/scopekit/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validManifest() *manifest.Manifest {
	return &manifest.Manifest{
		APIVersion: "1.0",
		Declarations: []manifest.Declaration{
			{Owner: "ci.deploy", Kind: "oauth.scope.storage", Scopes: []string{"storage.read", "storage.write"}},
			{Owner: "ci.notify", Kind: "oauth.scope.mail", Scopes: []string{"mail.send"}},
		},
	}
}

func TestManifest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*manifest.Manifest)
		wantErr string
	}{
		{
			name:   "valid manifest",
			mutate: func(m *manifest.Manifest) {},
		},
		{
			name:   "later supported version",
			mutate: func(m *manifest.Manifest) { m.APIVersion = "1.5" },
		},
		{
			name:   "empty declarations are legal",
			mutate: func(m *manifest.Manifest) { m.Declarations = nil },
		},
		{
			name:    "missing apiVersion",
			mutate:  func(m *manifest.Manifest) { m.APIVersion = "" },
			wantErr: "apiVersion is required",
		},
		{
			name:    "malformed apiVersion",
			mutate:  func(m *manifest.Manifest) { m.APIVersion = "not-a-version" },
			wantErr: "invalid manifest apiVersion",
		},
		{
			name:    "future major version",
			mutate:  func(m *manifest.Manifest) { m.APIVersion = "2.0" },
			wantErr: "unsupported manifest apiVersion",
		},
		{
			name:    "missing owner",
			mutate:  func(m *manifest.Manifest) { m.Declarations[0].Owner = "" },
			wantErr: "owner is required",
		},
		{
			name:    "duplicate owner",
			mutate:  func(m *manifest.Manifest) { m.Declarations[1].Owner = m.Declarations[0].Owner },
			wantErr: "declared twice",
		},
		{
			name:    "invalid kind",
			mutate:  func(m *manifest.Manifest) { m.Declarations[0].Kind = "Not A Kind" },
			wantErr: "invalid requirement kind",
		},
		{
			name:    "no scopes",
			mutate:  func(m *manifest.Manifest) { m.Declarations[0].Scopes = nil },
			wantErr: "at least one scope",
		},
		{
			name:    "empty scope string",
			mutate:  func(m *manifest.Manifest) { m.Declarations[0].Scopes = []string{"storage.read", ""} },
			wantErr: "empty scope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validManifest()
			tt.mutate(m)

			err := m.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestManifest_Validate_VersionSentinel(t *testing.T) {
	m := validManifest()
	m.APIVersion = "3.1"

	err := m.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, manifest.ErrUnsupportedVersion))
}
