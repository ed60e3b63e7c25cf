// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in the outline.
	Up key.Binding

	// Down navigates down in the outline.
	Down key.Binding

	// MoveUp drags the selected section one slot up.
	MoveUp key.Binding

	// MoveDown drags the selected section one slot down.
	MoveDown key.Binding

	// MoveSubtree toggles whether drags carry the whole subtree.
	MoveSubtree key.Binding

	// Promote raises the selected heading one level.
	Promote key.Binding

	// Demote lowers the selected heading one level.
	Demote key.Binding

	// Zoom narrows the view to the selected section's subtree.
	Zoom key.Binding

	// ZoomOut restores the full document.
	ZoomOut key.Binding

	// Edit opens the fragment editor for the selected section.
	Edit key.Binding

	// ToggleMode switches between the outline and source surfaces.
	ToggleMode key.Binding

	// CycleStatus advances the selected section's workflow status.
	CycleStatus key.Binding

	// Save confirms the fragment editor.
	Save key.Binding

	// Select confirms a selection.
	Select key.Binding

	// New creates a new project.
	New key.Binding

	// Delete removes the selected project.
	Delete key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("shift+↑", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("shift+↓", "move down"),
		),
		MoveSubtree: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "carry subtree"),
		),
		Promote: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("shift+←", "promote"),
		),
		Demote: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("shift+→", "demote"),
		),
		Zoom: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zoom"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("Z"),
			key.WithHelp("Z", "zoom out"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "source/outline"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "status"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new project"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar by default.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.ToggleMode, k.Quit}
}

// OutlineHelp returns the bindings shown while the outline view is active.
func (k *KeyMap) OutlineHelp() []key.Binding {
	return []key.Binding{k.MoveUp, k.MoveDown, k.Zoom, k.Edit, k.ToggleMode}
}
