// C:\Users\wasab\OneDrive\デスクトップ\REGI\database\store_test.go
package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetMissingKey(t *testing.T) {
	store := NewMemoryStore()

	value, ok, err := store.Get(KeyCart)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set(KeyProducts, `[]`))
	require.NoError(t, store.Set(KeyProducts, `[{"id":"p1"}]`))

	value, ok, err := store.Get(KeyProducts)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"p1"}]`, value)
}
