package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

func TestProjectStoreSaveAndGet(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	require.NoError(t, store.SaveProject(ctx, domain.Project{ID: "p1", Name: "Alpha"}))

	got, err := store.GetProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)

	// Save with the same id overwrites.
	require.NoError(t, store.SaveProject(ctx, domain.Project{ID: "p1", Name: "Alpha II"}))
	got, err = store.GetProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Alpha II", got.Name)
}

func TestProjectStoreGetMissing(t *testing.T) {
	store := NewProjectStore()

	_, err := store.GetProject(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectStoreListSortedByName(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	require.NoError(t, store.SaveProject(ctx, domain.Project{ID: "p2", Name: "Beta"}))
	require.NoError(t, store.SaveProject(ctx, domain.Project{ID: "p1", Name: "Alpha"}))

	list, err := store.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Beta", list[1].Name)
}

func TestProjectStoreDelete(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	require.NoError(t, store.SaveProject(ctx, domain.Project{ID: "p1", Name: "Alpha"}))
	require.NoError(t, store.DeleteProject(ctx, "p1"))

	_, err := store.GetProject(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting a missing project is not an error.
	assert.NoError(t, store.DeleteProject(ctx, "ghost"))
}
