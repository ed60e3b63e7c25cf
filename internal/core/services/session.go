package services

import (
	"fmt"

	"github.com/quillworks-labs/quill-cli/internal/core/ports/driven"
)

// Session is the explicitly constructed document/session context owned by
// the top-level application loop. It bundles the stores and services one
// running instance needs and is passed by reference into the coordinator,
// CLI and TUI; nothing reads it as ambient global state.
type Session struct {
	// Blocks is the durable block store.
	Blocks driven.BlockStore

	// Projects is the project store.
	Projects driven.ProjectStore

	// Config is the application configuration.
	Config driven.ConfigStore

	// Coordinator sequences all document mutations.
	Coordinator *Coordinator

	// ProjectSvc manages projects.
	ProjectSvc *ProjectService

	// Documents is the read-only document path.
	Documents *DocumentService
}

// NewSession wires a session from its stores.
func NewSession(blocks driven.BlockStore, projects driven.ProjectStore, config driven.ConfigStore, cfg CoordinatorConfig) (*Session, error) {
	if blocks == nil || projects == nil {
		return nil, fmt.Errorf("session requires block and project stores")
	}
	return &Session{
		Blocks:      blocks,
		Projects:    projects,
		Config:      config,
		Coordinator: NewCoordinator(blocks, cfg),
		ProjectSvc:  NewProjectService(projects, blocks),
		Documents:   NewDocumentService(blocks),
	}, nil
}

// Close releases the session's background resources.
func (s *Session) Close() error {
	if s.Coordinator != nil {
		return s.Coordinator.Close()
	}
	return nil
}
