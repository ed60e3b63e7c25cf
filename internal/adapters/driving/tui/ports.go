// Package tui provides the interactive terminal editor for quill.
// It implements a driving adapter following hexagonal architecture
// principles and hosts the two editing surfaces the coordinator pushes
// content to.
package tui

import (
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Coordinator sequences all document mutations.
	Coordinator driving.Coordinator

	// Projects manages writing projects.
	Projects driving.ProjectService

	// Reader provides read-only document access for export previews.
	Reader driving.DocumentReader
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Coordinator == nil {
		return ErrMissingCoordinator
	}
	if p.Projects == nil {
		return ErrMissingProjectService
	}
	// Reader is optional; previews degrade gracefully
	return nil
}
