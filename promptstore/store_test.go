package promptstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShkrSltn/dbot-sub000/presets"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tmpl := presets.Template{ID: 3, Name: "short", Content: "Rewrite briefly: {original_statement}"}
	require.NoError(t, store.Save(ctx, tmpl))

	got, err := store.GetByID(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tmpl, *got)
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveRejectsBuiltinIDs(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(context.Background(), presets.Template{ID: 0, Name: "default", Content: "x"})
	assert.Error(t, err)

	err = store.Save(context.Background(), presets.Template{ID: -2, Name: "few shot", Content: "x"})
	assert.Error(t, err)
}

func TestSaveUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, presets.Template{ID: 5, Name: "v1", Content: "first"}))
	require.NoError(t, store.Save(ctx, presets.Template{ID: 5, Name: "v2", Content: "second"}))

	got, err := store.GetByID(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v2", got.Name)
	assert.Equal(t, "second", got.Content)
}

func TestList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, presets.Template{ID: 2, Name: "b", Content: "bb"}))
	require.NoError(t, store.Save(ctx, presets.Template{ID: 1, Name: "a", Content: "aa"}))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 2, all[1].ID)
}
