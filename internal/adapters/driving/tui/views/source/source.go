// Package source provides the plain-markdown editing surface of the TUI.
package source

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/keymap"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/styles"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driving"
)

// Surface is the subset of the source surface the view feeds with local
// edits before the coordinator re-parses them.
type Surface interface {
	Edited(text string)
}

// View is the raw-markdown editor view.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	coordinator driving.Coordinator
	surface     Surface

	editor textarea.Model
	width  int
	height int
}

// NewView creates a new source view.
func NewView(s *styles.Styles, km *keymap.KeyMap, coordinator driving.Coordinator, surface Surface) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ta := textarea.New()
	ta.Placeholder = "Start writing..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	return &View{
		styles:      s,
		keymap:      km,
		coordinator: coordinator,
		surface:     surface,
		editor:      ta,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textarea.Blink
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.editor.SetWidth(width - 2)
	v.editor.SetHeight(height - 4)
}

// SetContent replaces the editor buffer with coordinator-pushed text.
func (v *View) SetContent(text string) {
	v.editor.SetValue(text)
}

// Focus gives the editor keyboard focus.
func (v *View) Focus() tea.Cmd {
	return v.editor.Focus()
}

// Blur removes keyboard focus from the editor.
func (v *View) Blur() {
	v.editor.Blur()
}

// Update handles messages for the source view. Every local edit is written
// to the surface mirror first, then reported to the coordinator, so a
// re-parse always sees the text that triggered it.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	before := v.editor.Value()

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)

	if after := v.editor.Value(); after != before {
		v.surface.Edited(after)
		v.coordinator.SourceEdited(after)
	}
	return v, cmd
}

// View renders the editor.
func (v *View) View() string {
	help := v.styles.Help.Render("tab outline · esc back")
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Border.Render(v.editor.View()),
		help,
	)
}
