// Package projects provides the project picker view for the TUI.
package projects

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/keymap"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/messages"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/styles"
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driving"
)

// View is the project picker.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	projects driving.ProjectService

	list     []domain.Project
	cursor   int
	creating bool
	input    textinput.Model
	err      error
	width    int
	height   int
}

// NewView creates a new project picker.
func NewView(s *styles.Styles, km *keymap.KeyMap, projects driving.ProjectService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	input := textinput.New()
	input.Placeholder = "Project name"
	input.CharLimit = 120

	return &View{
		styles:   s,
		keymap:   km,
		projects: projects,
		input:    input,
	}
}

// Init loads the project list.
func (v *View) Init() tea.Cmd {
	return v.loadProjects()
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the project under the cursor, or nil.
func (v *View) Selected() *domain.Project {
	if v.cursor < 0 || v.cursor >= len(v.list) {
		return nil
	}
	p := v.list[v.cursor]
	return &p
}

func (v *View) loadProjects() tea.Cmd {
	return func() tea.Msg {
		list, err := v.projects.List(context.Background())
		return messages.ProjectsLoaded{Projects: list, Err: err}
	}
}

// Update handles messages for the project picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.creating {
			return v.updateCreating(msg)
		}
		return v.updateList(msg)

	case messages.ProjectsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.list = msg.Projects
		if v.cursor >= len(v.list) {
			v.cursor = len(v.list) - 1
		}
		if v.cursor < 0 {
			v.cursor = 0
		}
		v.err = nil
		return v, nil

	case messages.ProjectCreated:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadProjects()
	}
	return v, nil
}

func (v *View) updateList(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.list)-1 {
			v.cursor++
		}
	case "n":
		v.creating = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case "d":
		if p := v.Selected(); p != nil {
			id := p.ID
			return v, func() tea.Msg {
				if err := v.projects.Delete(context.Background(), id); err != nil {
					return messages.ErrorOccurred{Err: err}
				}
				list, err := v.projects.List(context.Background())
				return messages.ProjectsLoaded{Projects: list, Err: err}
			}
		}
	case "enter":
		if p := v.Selected(); p != nil {
			project := *p
			return v, func() tea.Msg {
				return messages.ProjectOpened{Project: project}
			}
		}
	}
	return v, nil
}

func (v *View) updateCreating(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.creating = false
		v.input.Blur()
		return v, nil
	case "enter":
		name := strings.TrimSpace(v.input.Value())
		v.creating = false
		v.input.Blur()
		if name == "" {
			return v, nil
		}
		return v, func() tea.Msg {
			project, err := v.projects.Create(context.Background(), name)
			return messages.ProjectCreated{Project: project, Err: err}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the project picker.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("quill"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("writing projects"))
	b.WriteString("\n\n")

	if v.creating {
		b.WriteString(v.styles.Subtitle.Render("New project"))
		b.WriteString("\n")
		b.WriteString(v.input.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("enter create · esc cancel"))
		return b.String()
	}

	if len(v.list) == 0 {
		b.WriteString(v.styles.Muted.Render("No projects yet. Press n to create one."))
		b.WriteString("\n")
	}

	for i, p := range v.list {
		line := fmt.Sprintf("  %s", p.Name)
		if i == v.cursor {
			line = v.styles.Selected.Render("> " + p.Name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter open · n new · d delete · ctrl+c quit"))
	return b.String()
}
