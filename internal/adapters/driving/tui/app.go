package tui

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/components/status"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/keymap"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/messages"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/styles"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/views/outline"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/views/projects"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/views/sectionedit"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/views/source"
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// projectLoaded reports the coordinator finishing a project load.
type projectLoaded struct {
	project domain.Project
	err     error
}

// modeSwitched reports a structured/source transition finishing.
type modeSwitched struct {
	mode domain.EditorMode
	err  error
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles, shared by every view.
	styles *styles.Styles

	// keymap holds the keybindings, shared by every view.
	keymap *keymap.KeyMap

	// program is set once Run starts; surfaces forward through it.
	program atomic.Pointer[tea.Program]

	// structured and sourceSurface bridge coordinator pushes into the
	// program's message loop.
	structured    *StructuredSurface
	sourceSurface *SourceSurface

	projectsView    *projects.View
	outlineView     *outline.View
	sourceView      *source.View
	sectionEditView *sectionedit.View
	statusBar       *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// initial, when set, is loaded on startup instead of showing the
	// project picker.
	initial *domain.Project

	// mode mirrors the coordinator's editor mode for display.
	mode domain.EditorMode

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		currentView: messages.ViewProjects,
		mode:        domain.ModeStructured,
	}
	a.structured = NewStructuredSurface(a.sendToProgram)
	a.sourceSurface = NewSourceSurface(a.sendToProgram)

	a.projectsView = projects.NewView(s, km, ports.Projects)
	a.outlineView = outline.NewView(s, km, ports.Coordinator)
	a.sourceView = source.NewView(s, km, ports.Coordinator, a.sourceSurface)
	a.sectionEditView = sectionedit.NewView(s, km)
	a.statusBar = status.NewBar(s, km)

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Surfaces returns the surface bridges for attaching to the coordinator.
func (a *App) Surfaces() (*StructuredSurface, *SourceSurface) {
	return a.structured, a.sourceSurface
}

// sendToProgram forwards a coordinator push into the running program.
// Pushes before Run are dropped; the coordinator re-pushes on load.
func (a *App) sendToProgram(msg any) {
	if p := a.program.Load(); p != nil {
		p.Send(msg)
	}
}

// SetTheme switches every view to the named theme. Unknown names fall
// back to the default.
func (a *App) SetTheme(name string) {
	*a.styles = *styles.NewStyles(styles.ThemeByName(name))
}

// OpenProject skips the picker and loads the project on startup.
func (a *App) OpenProject(project domain.Project) {
	a.initial = &project
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	start := a.projectsView.Init()
	if a.initial != nil {
		start = a.loadProject(*a.initial)
	}
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("quill"),
		start,
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	a.statusBar.SetSyncState(a.ports.Coordinator.State())

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.structured.MarkReady()
		a.sourceSurface.MarkReady()

		body := msg.Height - 1
		a.projectsView.SetDimensions(msg.Width, body)
		a.outlineView.SetDimensions(msg.Width, body)
		a.sourceView.SetDimensions(msg.Width, body)
		a.sectionEditView.SetDimensions(msg.Width, body)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keymap.Quit) {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case messages.ContentPushed:
		a.outlineView.SetContent(msg.Text)
		a.outlineView.Refresh()
		a.statusBar.SetWordCount(a.ports.Coordinator.WordCount())
		return a, nil

	case messages.SourceContentPushed:
		a.sourceView.SetContent(msg.Text)
		return a, nil

	case messages.ThemePushed:
		*a.styles = *styles.NewStyles(styles.ThemeByName(msg.Theme))
		return a, nil

	case messages.ProjectOpened:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		return a, a.loadProject(msg.Project)

	case projectLoaded:
		if msg.err != nil {
			a.err = msg.err
			a.statusBar.SetMessage(msg.err.Error())
			return a, nil
		}
		a.err = nil
		a.statusBar.Clear()
		a.currentView = messages.ViewOutline
		a.statusBar.SetOutlineHints(true)
		a.outlineView.Refresh()
		a.outlineView.SetContent(a.ports.Coordinator.AssembledText())
		a.statusBar.SetWordCount(a.ports.Coordinator.WordCount())
		return a, nil

	case messages.SectionEditRequested:
		a.currentView = messages.ViewSectionEdit
		return a, a.sectionEditView.Open(msg.SectionID, msg.Fragment)

	case messages.SectionSaved:
		a.currentView = messages.ViewOutline
		if msg.Cancelled {
			return a, nil
		}
		id, fragment := msg.SectionID, msg.Fragment
		return a, func() tea.Msg {
			return messages.OperationFinished{
				Err: a.ports.Coordinator.SectionEdited(a.ctx, id, fragment),
			}
		}

	case modeSwitched:
		if msg.err != nil {
			a.err = msg.err
			a.statusBar.SetMessage(msg.err.Error())
			return a, nil
		}
		a.mode = msg.mode
		a.statusBar.SetMode(msg.mode)
		if msg.mode == domain.ModeSource {
			a.currentView = messages.ViewSource
			a.statusBar.SetOutlineHints(false)
			return a, a.sourceView.Focus()
		}
		a.currentView = messages.ViewOutline
		a.statusBar.SetOutlineHints(true)
		a.sourceView.Blur()
		a.outlineView.Refresh()
		return a, nil

	case messages.OperationFinished:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetMessage(msg.Err.Error())
		} else {
			a.err = nil
			a.statusBar.Clear()
		}
		a.statusBar.SetWordCount(a.ports.Coordinator.WordCount())
		a.outlineView, cmd = a.outlineView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil
	}

	// Forward other messages to the active view.
	switch a.currentView {
	case messages.ViewProjects:
		a.projectsView, cmd = a.projectsView.Update(msg)
	case messages.ViewOutline:
		a.outlineView, cmd = a.outlineView.Update(msg)
	case messages.ViewSource:
		a.sourceView, cmd = a.sourceView.Update(msg)
	case messages.ViewSectionEdit:
		a.sectionEditView, cmd = a.sectionEditView.Update(msg)
	case messages.ViewHelp:
		// Help view is static.
	}
	return a, cmd
}

// handleKey routes key messages to the active view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewProjects:
		a.projectsView, cmd = a.projectsView.Update(msg)
		return a, cmd

	case messages.ViewOutline:
		switch {
		case key.Matches(msg, a.keymap.ToggleMode):
			return a, a.switchMode(domain.ModeSource)
		case key.Matches(msg, a.keymap.Help):
			a.currentView = messages.ViewHelp
			return a, nil
		case key.Matches(msg, a.keymap.Back):
			a.currentView = messages.ViewProjects
			a.statusBar.SetOutlineHints(false)
			return a, a.projectsView.Init()
		}
		a.outlineView, cmd = a.outlineView.Update(msg)
		return a, cmd

	case messages.ViewSource:
		if key.Matches(msg, a.keymap.ToggleMode) {
			return a, a.switchMode(domain.ModeStructured)
		}
		a.sourceView, cmd = a.sourceView.Update(msg)
		return a, cmd

	case messages.ViewSectionEdit:
		a.sectionEditView, cmd = a.sectionEditView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if key.Matches(msg, a.keymap.Back) {
			a.currentView = messages.ViewOutline
			return a, nil
		}
	}
	return a, nil
}

// loadProject loads a project into the coordinator off the UI loop.
func (a *App) loadProject(project domain.Project) tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Coordinator.Load(a.ctx, project.ID)
		return projectLoaded{project: project, err: err}
	}
}

// switchMode asks the coordinator for a structured/source transition.
func (a *App) switchMode(mode domain.EditorMode) tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Coordinator.SwitchMode(a.ctx, mode)
		return modeSwitched{mode: mode, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewProjects:
		body = a.projectsView.View()
	case messages.ViewOutline:
		body = a.outlineView.View()
	case messages.ViewSource:
		body = a.sourceView.View()
	case messages.ViewSectionEdit:
		body = a.sectionEditView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.projectsView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Outline:
  j/k, ↑/↓       Navigate sections
  shift+↑/↓      Move section up/down
  t              Toggle subtree move
  shift+←/→      Promote/demote heading
  z / Z          Zoom in / out
  s              Cycle status
  enter          Edit section
  tab            Switch to source mode

Source:
  (type)         Edit markdown directly
  tab            Switch to outline mode

Global:
  esc            Back
  ctrl+c         Quit

[esc] back to outline`
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	a.program.Store(p)
	a.ports.Coordinator.AttachSurfaces(a.structured, a.sourceSurface)

	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Mode returns the displayed editor mode.
func (a *App) Mode() domain.EditorMode {
	return a.mode
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.outlineView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
