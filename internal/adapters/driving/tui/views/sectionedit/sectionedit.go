// Package sectionedit provides the single-section fragment editor of the TUI.
package sectionedit

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/keymap"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/messages"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/styles"
)

// View edits one section's markdown fragment in isolation.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	sectionID string
	editor    textarea.Model
	width     int
	height    int
}

// NewView creates a new section editor view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	return &View{
		styles: s,
		keymap: km,
		editor: ta,
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

// Open loads a section fragment into the editor and focuses it.
func (v *View) Open(sectionID, fragment string) tea.Cmd {
	v.sectionID = sectionID
	v.editor.SetValue(fragment)
	return v.editor.Focus()
}

// Update handles messages for the section editor.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, v.keymap.Save):
			saved := messages.SectionSaved{
				SectionID: v.sectionID,
				Fragment:  v.editor.Value(),
			}
			v.editor.Blur()
			return v, func() tea.Msg { return saved }

		case key.Matches(keyMsg, v.keymap.Back):
			cancelled := messages.SectionSaved{
				SectionID: v.sectionID,
				Cancelled: true,
			}
			v.editor.Blur()
			return v, func() tea.Msg { return cancelled }
		}
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

// View renders the editor.
func (v *View) View() string {
	help := v.styles.Help.Render("ctrl+s save · esc cancel")
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Border.Render(v.editor.View()),
		help,
	)
}
