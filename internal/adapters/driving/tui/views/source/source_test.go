package source

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driven"
)

// mockCoordinator records raw-edit notifications; everything else is inert.
type mockCoordinator struct {
	edits []string
}

func (m *mockCoordinator) Load(context.Context, string) error { return nil }

func (m *mockCoordinator) AttachSurfaces(driven.EditorSurface, driven.SourceSurface) {}

func (m *mockCoordinator) State() domain.SyncState { return domain.StateIdle }

func (m *mockCoordinator) Sections() []domain.Section { return nil }

func (m *mockCoordinator) AssembledText() string { return "" }

func (m *mockCoordinator) WordCount() int { return 0 }

func (m *mockCoordinator) SourceEdited(raw string) { m.edits = append(m.edits, raw) }

func (m *mockCoordinator) SectionEdited(context.Context, string, string) error { return nil }

func (m *mockCoordinator) MoveSection(context.Context, domain.MoveRequest) error { return nil }

func (m *mockCoordinator) SwitchMode(context.Context, domain.EditorMode) error { return nil }

func (m *mockCoordinator) ZoomIn(context.Context, string) error { return nil }

func (m *mockCoordinator) ZoomOut(context.Context) error { return nil }

func (m *mockCoordinator) SetStatus(context.Context, string, string) error { return nil }

func (m *mockCoordinator) SetWordGoal(context.Context, string, int) error { return nil }

func (m *mockCoordinator) SetGoalType(context.Context, string, domain.GoalType) error { return nil }

func (m *mockCoordinator) SetTags(context.Context, string, []string) error { return nil }

func (m *mockCoordinator) NotifyStoreChanged(string) {}

func (m *mockCoordinator) Close() error { return nil }

// recordingSurface captures mirror updates.
type recordingSurface struct {
	texts []string
}

func (r *recordingSurface) Edited(text string) {
	r.texts = append(r.texts, text)
}

func newTestView(t *testing.T) (*View, *mockCoordinator, *recordingSurface) {
	t.Helper()
	coordinator := &mockCoordinator{}
	surface := &recordingSurface{}
	v := NewView(nil, nil, coordinator, surface)
	v.SetDimensions(100, 30)
	return v, coordinator, surface
}

func TestLocalEditsReachSurfaceAndCoordinator(t *testing.T) {
	v, coordinator, surface := newTestView(t)
	v.Focus()
	v.SetContent("# Alpha")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'!'}})

	require.Len(t, surface.texts, 1)
	require.Len(t, coordinator.edits, 1)
	assert.Equal(t, surface.texts[0], coordinator.edits[0])
	assert.Contains(t, coordinator.edits[0], "!")
}

func TestNonEditingKeysDoNotNotify(t *testing.T) {
	v, coordinator, surface := newTestView(t)
	v.Focus()
	v.SetContent("# Alpha")

	// Cursor movement leaves the buffer unchanged.
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyLeft})

	assert.Empty(t, surface.texts)
	assert.Empty(t, coordinator.edits)
}

func TestSetContentDoesNotEcho(t *testing.T) {
	v, coordinator, surface := newTestView(t)

	// Coordinator pushes must not loop back as local edits.
	v.SetContent("# Alpha\n\nBody.")

	assert.Empty(t, surface.texts)
	assert.Empty(t, coordinator.edits)
}

func TestViewRendersEditorAndHelp(t *testing.T) {
	v, _, _ := newTestView(t)
	v.SetContent("# Alpha")

	out := v.View()
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "tab outline")
}
