// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewProjects is the project picker.
	ViewProjects ViewType = iota
	// ViewOutline is the structured editing surface.
	ViewOutline
	// ViewSource is the plain-markdown editing surface.
	ViewSource
	// ViewSectionEdit is the single-section fragment editor.
	ViewSectionEdit
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewProjects:
		return "projects"
	case ViewOutline:
		return "outline"
	case ViewSource:
		return "source"
	case ViewSectionEdit:
		return "section_edit"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ContentPushed carries assembled text pushed to the structured surface.
type ContentPushed struct {
	Text string
}

// SourceContentPushed carries marker-inclusive text pushed to the source
// surface.
type SourceContentPushed struct {
	Text string
}

// CursorPushed moves the active surface's cursor to a byte offset.
type CursorPushed struct {
	Offset int
}

// ThemePushed applies a named theme to the surfaces.
type ThemePushed struct {
	Theme string
}

// ProjectsLoaded carries the list of projects from the service.
type ProjectsLoaded struct {
	Projects []domain.Project
	Err      error
}

// ProjectOpened signals a project was loaded into the coordinator.
type ProjectOpened struct {
	Project domain.Project
	Err     error
}

// ProjectCreated signals a new project was created.
type ProjectCreated struct {
	Project *domain.Project
	Err     error
}

// SectionEditRequested asks the app to open the fragment editor for one
// section.
type SectionEditRequested struct {
	SectionID string
	Fragment  string
}

// SectionSaved signals the fragment editor finished.
type SectionSaved struct {
	SectionID string
	Fragment  string
	Cancelled bool
}

// OperationFinished reports the outcome of a coordinator call made from a
// view command.
type OperationFinished struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
