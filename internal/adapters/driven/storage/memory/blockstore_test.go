package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

func TestBlockStoreReplaceAndFetch(t *testing.T) {
	store := NewBlockStore()
	ctx := context.Background()

	blocks := []domain.Block{
		{ID: "b", ProjectID: "p1", SortOrder: 2, Type: domain.BlockTypeParagraph, Fragment: "body"},
		{ID: "a", ProjectID: "p1", SortOrder: 1, Type: domain.BlockTypeHeading, HeadingLevel: 1, Fragment: "# A"},
	}
	require.NoError(t, store.ReplaceBlocks(ctx, "p1", blocks))

	got, err := store.FetchBlocks(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestBlockStoreFetchBlock(t *testing.T) {
	store := NewBlockStore()
	ctx := context.Background()
	_ = store.ReplaceBlocks(ctx, "p1", []domain.Block{{ID: "x", ProjectID: "p1", Fragment: "# X"}})

	b, err := store.FetchBlock(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "# X", b.Fragment)

	_, err = store.FetchBlock(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlockStoreReorderAllBlocks(t *testing.T) {
	store := NewBlockStore()
	ctx := context.Background()
	_ = store.ReplaceBlocks(ctx, "p1", []domain.Block{
		{ID: "h1", SortOrder: 1, Type: domain.BlockTypeHeading, HeadingLevel: 1, Fragment: "# A"},
		{ID: "p1b", SortOrder: 2, Type: domain.BlockTypeParagraph, Fragment: "a body"},
		{ID: "h2", SortOrder: 3, Type: domain.BlockTypeHeading, HeadingLevel: 1, Fragment: "# B"},
	})

	err := store.ReorderAllBlocks(ctx, "p1", []domain.Section{{ID: "h2"}, {ID: "h1"}}, nil)
	require.NoError(t, err)

	got, _ := store.FetchBlocks(ctx, "p1")
	require.Len(t, got, 3)
	assert.Equal(t, "h2", got[0].ID)
	assert.Equal(t, "h1", got[1].ID)
	// Body moved with its owning heading.
	assert.Equal(t, "p1b", got[2].ID)
}

func TestBlockStoreMetadataUpdates(t *testing.T) {
	store := NewBlockStore()
	ctx := context.Background()
	_ = store.ReplaceBlocks(ctx, "p1", []domain.Block{{ID: "h", Type: domain.BlockTypeHeading, Fragment: "# H"}})

	require.NoError(t, store.UpdateBlockStatus(ctx, "h", "draft"))
	require.NoError(t, store.UpdateBlockWordGoal(ctx, "h", 500))
	require.NoError(t, store.UpdateBlockGoalType(ctx, "h", domain.GoalTypeWords))
	require.NoError(t, store.UpdateBlockTags(ctx, "h", []string{"act-1"}))

	b, err := store.FetchBlock(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, "draft", b.Status)
	assert.Equal(t, 500, b.WordGoal)
	assert.Equal(t, domain.GoalTypeWords, b.GoalType)
	assert.Equal(t, []string{"act-1"}, b.Tags)

	assert.ErrorIs(t, store.UpdateBlockStatus(ctx, "missing", "x"), domain.ErrNotFound)
}

func TestBlockStoreApplySectionChanges(t *testing.T) {
	store := NewBlockStore()
	ctx := context.Background()
	_ = store.ReplaceBlocks(ctx, "p1", []domain.Block{
		{ID: "h", Type: domain.BlockTypeHeading, HeadingLevel: 3, Fragment: "### H"},
	})

	frag := "## H"
	level := 2
	err := store.ApplySectionChanges(ctx, "p1", []domain.SectionChange{
		{ID: "h", Fragment: &frag, Level: &level},
	})
	require.NoError(t, err)

	b, _ := store.FetchBlock(ctx, "h")
	assert.Equal(t, "## H", b.Fragment)
	assert.Equal(t, 2, b.HeadingLevel)
}
