package scope_test

import (
	"sync"
	"testing"

	"github.com/scopekit-dev/scopekit/discovery"
	"github.com/scopekit-dev/scopekit/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	storageKind = discovery.MustKind("oauth.scope.storage")
	mailKind    = discovery.MustKind("oauth.scope.mail")
)

// scopelessRequirement carries a kind but no scopes.
type scopelessRequirement struct {
	kind discovery.Kind
}

func (r scopelessRequirement) RequirementKind() discovery.Kind { return r.kind }

type verdictRecorder struct {
	mu       sync.Mutex
	verdicts []string
}

func (v *verdictRecorder) LookupCompleted(kind string, results int) {}

func (v *verdictRecorder) VerdictReturned(kind string, result string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.verdicts = append(v.verdicts, kind+"/"+result)
}

func TestSpecification_Test(t *testing.T) {
	desc := scope.NewDescriptor(storageKind, "Storage scopes")

	tests := []struct {
		name     string
		granted  []string
		req      discovery.Requirement
		expected scope.Result
	}{
		{
			name:     "exact grants are satisfied",
			granted:  []string{"foo", "baz"},
			req:      scope.NewRequirement(storageKind, "foo", "baz"),
			expected: scope.ResultSatisfied,
		},
		{
			name:     "partial overlap is rejected",
			granted:  []string{"foo", "baz"},
			req:      scope.NewRequirement(storageKind, "foo", "bar"),
			expected: scope.ResultRejected,
		},
		{
			name:     "empty required set is trivially satisfied",
			granted:  []string{"foo"},
			req:      scope.NewRequirement(storageKind),
			expected: scope.ResultSatisfied,
		},
		{
			name:     "empty grants satisfy empty requirement",
			granted:  nil,
			req:      scope.NewRequirement(storageKind),
			expected: scope.ResultSatisfied,
		},
		{
			name:     "empty grants reject any requirement",
			granted:  nil,
			req:      scope.NewRequirement(storageKind, "foo"),
			expected: scope.ResultRejected,
		},
		{
			name:     "broader grants than required are satisfied",
			granted:  []string{"foo", "baz", "qux"},
			req:      scope.NewRequirement(storageKind, "baz"),
			expected: scope.ResultSatisfied,
		},
		{
			name:     "other kind is not applicable even with identical scopes",
			granted:  []string{"foo", "baz"},
			req:      scope.NewRequirement(mailKind, "foo", "baz"),
			expected: scope.ResultNotApplicable,
		},
		{
			name:     "scopeless requirement type is not applicable",
			granted:  []string{"foo"},
			req:      scopelessRequirement{kind: storageKind},
			expected: scope.ResultNotApplicable,
		},
		{
			name:     "nil requirement is not applicable",
			granted:  []string{"foo"},
			req:      nil,
			expected: scope.ResultNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scope.NewSpecification(desc, tt.granted, scope.WithLogger(discovery.NewTestLogger()))
			assert.Equal(t, tt.expected, s.Test(tt.req))
		})
	}
}

func TestSpecification_CustomMatcher(t *testing.T) {
	desc := scope.NewDescriptor(storageKind, "Storage scopes")

	t.Run("matcher replaces the superset rule", func(t *testing.T) {
		permissive := scope.MatcherFunc(func(granted, required []string) bool { return true })
		s := scope.NewSpecification(desc, nil, scope.WithMatcher(permissive))

		// Rejected under the default rule, satisfied under the
		// injected one.
		assert.Equal(t, scope.ResultSatisfied, s.Test(scope.NewRequirement(storageKind, "foo")))
	})

	t.Run("matcher cannot bypass the kind check", func(t *testing.T) {
		permissive := scope.MatcherFunc(func(granted, required []string) bool { return true })
		s := scope.NewSpecification(desc, nil, scope.WithMatcher(permissive))

		assert.Equal(t, scope.ResultNotApplicable, s.Test(scope.NewRequirement(mailKind, "foo")))
	})

	t.Run("glob matcher widens coverage", func(t *testing.T) {
		s := scope.NewSpecification(desc, []string{"repo/*"}, scope.WithMatcher(scope.GlobMatcher()))

		assert.Equal(t, scope.ResultSatisfied, s.Test(scope.NewRequirement(storageKind, "repo/read", "repo/write")))
		assert.Equal(t, scope.ResultRejected, s.Test(scope.NewRequirement(storageKind, "admin/read")))
	})
}

func TestSpecification_SpecifiedScopes(t *testing.T) {
	desc := scope.NewDescriptor(storageKind, "Storage scopes")

	granted := []string{"foo", "baz"}
	s := scope.NewSpecification(desc, granted)

	got := s.SpecifiedScopes()
	assert.Equal(t, []string{"foo", "baz"}, got)

	// Mutating either the input or the returned slice must not affect
	// the specification.
	granted[0] = "mutated"
	got[1] = "mutated"
	assert.Equal(t, []string{"foo", "baz"}, s.SpecifiedScopes())
}

func TestSpecification_Missing(t *testing.T) {
	desc := scope.NewDescriptor(storageKind, "Storage scopes")
	s := scope.NewSpecification(desc, []string{"foo"})

	t.Run("reports uncovered scopes in requirement order", func(t *testing.T) {
		missing := s.Missing(scope.NewRequirement(storageKind, "foo", "bar", "qux"))
		assert.Equal(t, []string{"bar", "qux"}, missing)
	})

	t.Run("fully covered requirement has no missing scopes", func(t *testing.T) {
		assert.Empty(t, s.Missing(scope.NewRequirement(storageKind, "foo")))
	})

	t.Run("inapplicable requirement yields nil", func(t *testing.T) {
		assert.Nil(t, s.Missing(scope.NewRequirement(mailKind, "foo")))
	})
}

func TestSpecification_NilDescriptor(t *testing.T) {
	s := scope.NewSpecification(nil, []string{"foo"})
	assert.Equal(t, scope.ResultNotApplicable, s.Test(scope.NewRequirement(storageKind, "foo")))
}

func TestSpecification_RecordsVerdicts(t *testing.T) {
	desc := scope.NewDescriptor(storageKind, "Storage scopes")
	rec := &verdictRecorder{}
	s := scope.NewSpecification(desc, []string{"foo"}, scope.WithRecorder(rec))

	s.Test(scope.NewRequirement(storageKind, "foo"))
	s.Test(scope.NewRequirement(storageKind, "bar"))
	s.Test(scope.NewRequirement(mailKind, "foo"))

	require.Len(t, rec.verdicts, 3)
	assert.Equal(t, []string{
		"oauth.scope.storage/satisfied",
		"oauth.scope.storage/rejected",
		"oauth.scope.storage/not_applicable",
	}, rec.verdicts)
}
