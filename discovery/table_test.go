package discovery_test

import (
	"errors"
	"testing"

	"github.com/scopekit-dev/scopekit/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequirement struct {
	kind discovery.Kind
}

func (f fakeRequirement) RequirementKind() discovery.Kind { return f.kind }

func fakeFactory(kind discovery.Kind) discovery.Factory {
	return func() (discovery.Requirement, error) {
		return fakeRequirement{kind: kind}, nil
	}
}

func TestTable_Bind(t *testing.T) {
	kind := discovery.MustKind("oauth.scope")

	t.Run("registers bindings in order", func(t *testing.T) {
		table := discovery.NewTable()
		require.NoError(t, table.Bind("builder", kind, fakeFactory(kind)))
		require.NoError(t, table.Bind("deployer", kind, fakeFactory(kind)))
		require.NoError(t, table.Bind("reporter", kind, fakeFactory(kind)))

		assert.Equal(t, 3, table.Len())

		bindings := table.Bindings()
		require.Len(t, bindings, 3)
		assert.Equal(t, "builder", bindings[0].Owner)
		assert.Equal(t, "deployer", bindings[1].Owner)
		assert.Equal(t, "reporter", bindings[2].Owner)
	})

	t.Run("rejects duplicate owner", func(t *testing.T) {
		table := discovery.NewTable()
		require.NoError(t, table.Bind("builder", kind, fakeFactory(kind)))

		err := table.Bind("builder", kind, fakeFactory(kind))
		require.Error(t, err)
		assert.True(t, errors.Is(err, discovery.ErrDuplicateOwner))
		assert.Contains(t, err.Error(), "builder")
		assert.Equal(t, 1, table.Len())
	})

	t.Run("rejects empty owner", func(t *testing.T) {
		table := discovery.NewTable()
		assert.Error(t, table.Bind("", kind, fakeFactory(kind)))
	})

	t.Run("rejects empty kind", func(t *testing.T) {
		table := discovery.NewTable()
		assert.Error(t, table.Bind("builder", discovery.Kind{}, fakeFactory(kind)))
	})

	t.Run("rejects nil factory", func(t *testing.T) {
		table := discovery.NewTable()
		err := table.Bind("builder", kind, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, discovery.ErrNilFactory))
	})
}

func TestTable_MustBind(t *testing.T) {
	kind := discovery.MustKind("oauth.scope")
	table := discovery.NewTable()

	assert.NotPanics(t, func() {
		table.MustBind("builder", kind, fakeFactory(kind))
	})
	assert.Panics(t, func() {
		table.MustBind("builder", kind, fakeFactory(kind))
	})
}

func TestTable_BindingsReturnsCopy(t *testing.T) {
	kind := discovery.MustKind("oauth.scope")
	table := discovery.NewTable()
	require.NoError(t, table.Bind("builder", kind, fakeFactory(kind)))

	bindings := table.Bindings()
	bindings[0].Owner = "mutated"

	assert.Equal(t, "builder", table.Bindings()[0].Owner)
}
