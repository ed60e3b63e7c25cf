// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/keymap"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/styles"
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// Bar displays the editing mode, sync state, word count and key hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	mode      domain.EditorMode
	syncState domain.SyncState
	wordCount int
	outline   bool
	message   string
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:    s,
		keymap:    km,
		mode:      domain.ModeStructured,
		syncState: domain.StateIdle,
		width:     80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the mode, sync state and word count.
func (s *Bar) renderLeft() string {
	parts := []string{s.styles.Normal.Render(string(s.mode))}

	if s.syncState != domain.StateIdle {
		parts = append(parts, s.styles.Warning.Render("syncing"))
	}
	parts = append(parts, s.styles.Muted.Render(fmt.Sprintf("%d words", s.wordCount)))

	if s.message != "" {
		parts = append(parts, s.styles.Error.Render(s.message))
	}
	return strings.Join(parts, "  ")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.outline {
		bindings = s.keymap.OutlineHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetMode sets the displayed editing mode.
func (s *Bar) SetMode(mode domain.EditorMode) {
	s.mode = mode
}

// Mode returns the displayed editing mode.
func (s *Bar) Mode() domain.EditorMode {
	return s.mode
}

// SetSyncState sets the displayed coordinator state.
func (s *Bar) SetSyncState(state domain.SyncState) {
	s.syncState = state
}

// SyncState returns the displayed coordinator state.
func (s *Bar) SyncState() domain.SyncState {
	return s.syncState
}

// SetWordCount sets the displayed word count.
func (s *Bar) SetWordCount(count int) {
	s.wordCount = count
}

// WordCount returns the displayed word count.
func (s *Bar) WordCount() int {
	return s.wordCount
}

// SetOutlineHints toggles between outline-specific and general key hints.
func (s *Bar) SetOutlineHints(outline bool) {
	s.outline = outline
}

// SetMessage sets a transient error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the transient message.
func (s *Bar) Clear() {
	s.message = ""
}
