package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreIteratePrefix(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Put(ctx, "keymap/l/0/0", []byte{1}))
	require.NoError(t, s.Put(ctx, "keymap/l/0/1", []byte{2}))
	require.NoError(t, s.Put(ctx, "physical_layouts/selected", []byte{0}))

	seen := map[string][]byte{}
	err := s.IteratePrefix(ctx, "keymap/l/", func(key string, value []byte) error {
		seen[key] = value
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 2)
	assert.NotContains(t, seen, "physical_layouts/selected")
}
