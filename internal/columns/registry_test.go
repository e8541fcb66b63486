package columns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonfront/internal/columns"
	"carbonfront/internal/domain"
)

func TestNewRegistry_DefaultsAndOrder(t *testing.T) {
	reg := columns.NewRegistry([]string{"supplier", "tco2", "supplier", "scope"})

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"supplier", "tco2", "scope"}, reg.Keys())
	for _, c := range reg.Columns() {
		assert.True(t, c.Included)
		assert.Equal(t, c.Key, c.DisplayName)
	}
	assert.Equal(t, 3, reg.IncludedCount())
}

func TestRegistry_ToggleKeepsDisplayName(t *testing.T) {
	reg := columns.NewRegistry([]string{"A", "B"})
	require.NoError(t, reg.Rename("A", "Alpha"))

	require.NoError(t, reg.Toggle("A"))
	col, ok := reg.Get("A")
	require.True(t, ok)
	assert.False(t, col.Included)
	assert.Equal(t, "Alpha", col.DisplayName)

	require.NoError(t, reg.Toggle("A"))
	col, _ = reg.Get("A")
	assert.True(t, col.Included)
	assert.Equal(t, "Alpha", col.Header())
}

func TestRegistry_IncludedFollowsRegistryOrder(t *testing.T) {
	reg := columns.NewRegistry([]string{"A", "B", "C"})
	require.NoError(t, reg.SetIncluded("B", false))

	included := reg.Included()
	require.Len(t, included, 2)
	assert.Equal(t, "A", included[0].Key)
	assert.Equal(t, "C", included[1].Key)
	assert.Equal(t, 2, reg.IncludedCount())
}

func TestRegistry_SetAll(t *testing.T) {
	reg := columns.NewRegistry([]string{"A", "B"})
	require.NoError(t, reg.Rename("B", "Beta"))

	reg.SetAll(false)
	assert.Equal(t, 0, reg.IncludedCount())
	assert.Empty(t, reg.Included())

	reg.SetAll(true)
	assert.Equal(t, 2, reg.IncludedCount())
	col, _ := reg.Get("B")
	assert.Equal(t, "Beta", col.DisplayName)
}

func TestRegistry_DuplicateDisplayNamesAllowed(t *testing.T) {
	reg := columns.NewRegistry([]string{"A", "B"})
	require.NoError(t, reg.Rename("A", "Same"))
	require.NoError(t, reg.Rename("B", "Same"))

	included := reg.Included()
	assert.Equal(t, "Same", included[0].Header())
	assert.Equal(t, "Same", included[1].Header())
}

func TestRegistry_HeaderFallsBackToKey(t *testing.T) {
	reg := columns.NewRegistry([]string{"A"})
	require.NoError(t, reg.Rename("A", ""))

	col, _ := reg.Get("A")
	assert.Equal(t, "", col.DisplayName)
	assert.Equal(t, "A", col.Header())
}

func TestRegistry_UnknownColumn(t *testing.T) {
	reg := columns.NewRegistry([]string{"A"})

	assert.ErrorIs(t, reg.Toggle("Z"), domain.ErrUnknownColumn)
	assert.ErrorIs(t, reg.SetIncluded("Z", true), domain.ErrUnknownColumn)
	assert.ErrorIs(t, reg.Rename("Z", "x"), domain.ErrUnknownColumn)
	_, ok := reg.Get("Z")
	assert.False(t, ok)
}

func TestRegistry_ColumnsAreCopies(t *testing.T) {
	reg := columns.NewRegistry([]string{"A"})

	cols := reg.Columns()
	cols[0].Included = false
	cols[0].DisplayName = "changed"

	col, _ := reg.Get("A")
	assert.True(t, col.Included)
	assert.Equal(t, "A", col.DisplayName)
}

func TestRegistry_Nil(t *testing.T) {
	var reg *columns.Registry

	assert.Equal(t, 0, reg.Len())
	assert.Nil(t, reg.Columns())
	assert.Equal(t, 0, reg.IncludedCount())
	reg.SetAll(true)
	assert.ErrorIs(t, reg.Rename("A", "x"), domain.ErrUnknownColumn)
}
