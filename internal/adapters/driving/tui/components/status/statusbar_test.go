package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)
	require.NotNil(t, bar)
	assert.Equal(t, domain.ModeStructured, bar.Mode())
	assert.Equal(t, domain.StateIdle, bar.SyncState())
	assert.Zero(t, bar.WordCount())
}

func TestBarView(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(100)
	bar.SetWordCount(1234)

	view := bar.View()
	assert.Contains(t, view, "structured")
	assert.Contains(t, view, "1234 words")
	assert.NotContains(t, view, "syncing")
}

func TestBarShowsSyncState(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(100)

	bar.SetSyncState(domain.StateDragReorder)
	assert.Contains(t, bar.View(), "syncing")

	bar.SetSyncState(domain.StateIdle)
	assert.NotContains(t, bar.View(), "syncing")
}

func TestBarShowsMode(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(100)

	bar.SetMode(domain.ModeSource)
	assert.Contains(t, bar.View(), "source")
}

func TestBarMessage(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetMessage("section vanished")
	assert.Equal(t, "section vanished", bar.Message())
	assert.Contains(t, bar.View(), "section vanished")

	bar.Clear()
	assert.Empty(t, bar.Message())
}

func TestBarHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)

	assert.Contains(t, bar.View(), "ctrl+c")

	bar.SetOutlineHints(true)
	assert.Contains(t, bar.View(), "zoom")
}
