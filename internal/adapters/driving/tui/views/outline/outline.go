// Package outline provides the structured editing surface of the TUI: the
// section list plus a preview of the assembled document.
package outline

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/keymap"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/messages"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/styles"
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driving"
)

// statusCycle is the order the s key walks workflow statuses in.
var statusCycle = []string{"", "draft", "revised", "final"}

// View is the outline view.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	coordinator driving.Coordinator

	sections []domain.Section
	cursor   int
	subtree  bool
	zoomed   bool
	preview  viewport.Model
	content  string
	err      error
	width    int
	height   int
}

// NewView creates a new outline view.
func NewView(s *styles.Styles, km *keymap.KeyMap, coordinator driving.Coordinator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:      s,
		keymap:      km,
		coordinator: coordinator,
		preview:     viewport.New(0, 0),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.preview.Width = width - v.listWidth() - 3
	v.preview.Height = height - 4
}

// SetContent replaces the preview text with a fresh assembly.
func (v *View) SetContent(text string) {
	v.content = text
	v.preview.SetContent(text)
}

// Refresh re-reads the section list from the coordinator.
func (v *View) Refresh() {
	v.sections = v.coordinator.Sections()
	if v.cursor >= len(v.sections) {
		v.cursor = len(v.sections) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// Selected returns the section under the cursor, or nil.
func (v *View) Selected() *domain.Section {
	if v.cursor < 0 || v.cursor >= len(v.sections) {
		return nil
	}
	s := v.sections[v.cursor]
	return &s
}

func (v *View) listWidth() int {
	w := v.width / 3
	if w < 24 {
		w = 24
	}
	return w
}

// Update handles messages for the outline view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.OperationFinished:
		v.err = msg.Err
		v.Refresh()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.preview, cmd = v.preview.Update(msg)
	return v, cmd
}

//nolint:gocyclo // key dispatch is one flat switch
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keymap.Down):
		if v.cursor < len(v.sections)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keymap.MoveUp):
		return v, v.moveSelected(-1)
	case key.Matches(msg, v.keymap.MoveDown):
		return v, v.moveSelected(+1)
	case key.Matches(msg, v.keymap.MoveSubtree):
		v.subtree = !v.subtree
	case key.Matches(msg, v.keymap.Promote):
		return v, v.relevelSelected(-1)
	case key.Matches(msg, v.keymap.Demote):
		return v, v.relevelSelected(+1)
	case key.Matches(msg, v.keymap.Zoom):
		if s := v.Selected(); s != nil {
			id := s.ID
			v.zoomed = true
			return v, v.op(func(ctx context.Context) error {
				return v.coordinator.ZoomIn(ctx, id)
			})
		}
	case key.Matches(msg, v.keymap.ZoomOut):
		if v.zoomed {
			v.zoomed = false
			return v, v.op(v.coordinator.ZoomOut)
		}
	case key.Matches(msg, v.keymap.CycleStatus):
		if s := v.Selected(); s != nil {
			id, next := s.ID, nextStatus(s.Status)
			return v, v.op(func(ctx context.Context) error {
				return v.coordinator.SetStatus(ctx, id, next)
			})
		}
	case key.Matches(msg, v.keymap.Edit):
		if s := v.Selected(); s != nil {
			req := messages.SectionEditRequested{SectionID: s.ID, Fragment: s.Fragment}
			return v, func() tea.Msg { return req }
		}
	default:
		var cmd tea.Cmd
		v.preview, cmd = v.preview.Update(msg)
		return v, cmd
	}
	return v, nil
}

// moveSelected drags the selected section one slot up or down. The target
// is expressed as "insert after", so one slot up means inserting after the
// section two above the current one.
func (v *View) moveSelected(direction int) tea.Cmd {
	s := v.Selected()
	if s == nil {
		return nil
	}

	var targetIdx int
	switch direction {
	case -1:
		targetIdx = v.cursor - 2
		if v.cursor == 0 {
			return nil
		}
	case +1:
		targetIdx = v.cursor + 1
		if targetIdx >= len(v.sections) {
			return nil
		}
	}

	req := domain.MoveRequest{
		SectionID: s.ID,
		NewLevel:  s.Level,
	}
	if targetIdx >= 0 {
		req.TargetID = v.sections[targetIdx].ID
	}
	if v.subtree {
		req.Descendants = v.descendantsOf(v.cursor)
	}

	v.cursor += direction
	return v.op(func(ctx context.Context) error {
		return v.coordinator.MoveSection(ctx, req)
	})
}

// relevelSelected rewrites the heading fragment one level up or down; the
// coordinator's enforcement pass handles any knock-on corrections.
func (v *View) relevelSelected(delta int) tea.Cmd {
	s := v.Selected()
	if s == nil {
		return nil
	}
	level := s.Level + delta
	if level < 1 {
		return nil
	}
	id := s.ID
	fragment := domain.RewriteHeadingLevel(s.Fragment, level)
	return v.op(func(ctx context.Context) error {
		return v.coordinator.SectionEdited(ctx, id, fragment)
	})
}

// descendantsOf lists, in document order, the sections strictly deeper
// than the one at idx until the next section at or above its level.
func (v *View) descendantsOf(idx int) []string {
	var ids []string
	level := v.sections[idx].Level
	for i := idx + 1; i < len(v.sections); i++ {
		if v.sections[i].Level <= level {
			break
		}
		ids = append(ids, v.sections[i].ID)
	}
	return ids
}

func (v *View) op(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return messages.OperationFinished{Err: fn(context.Background())}
	}
}

func nextStatus(current string) string {
	for i, s := range statusCycle {
		if s == current {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return statusCycle[0]
}

// View renders the outline and the document preview side by side.
func (v *View) View() string {
	list := v.renderList()
	preview := v.styles.Border.Render(v.preview.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", preview)

	footer := v.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (v *View) renderList() string {
	var b strings.Builder
	width := v.listWidth()

	for i, s := range v.sections {
		indent := strings.Repeat("  ", s.Level-1)
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		line := indent + title
		if s.Status != "" {
			line += " " + v.styles.Muted.Render("["+s.Status+"]")
		}
		if s.WordGoal > 0 {
			line += " " + v.styles.Muted.Render(fmt.Sprintf("(%d)", s.WordGoal))
		}

		if i == v.cursor {
			line = v.styles.Selected.Render(line)
		} else {
			line = v.styles.Heading(s.Level).Render(line)
		}
		b.WriteString(lipgloss.NewStyle().MaxWidth(width).Render(line))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (v *View) renderFooter() string {
	var parts []string
	if v.zoomed {
		parts = append(parts, v.styles.Warning.Render("zoomed"))
	}
	if v.subtree {
		parts = append(parts, v.styles.Warning.Render("subtree"))
	}
	parts = append(parts, v.styles.Help.Render(
		"↑↓ navigate · shift+↑↓ move · shift+←→ level · z/Z zoom · s status · enter edit · tab source"))
	if v.err != nil {
		parts = append(parts, v.styles.Error.Render(v.err.Error()))
	}
	return strings.Join(parts, "  ")
}
