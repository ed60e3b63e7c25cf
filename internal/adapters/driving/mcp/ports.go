package mcp

import (
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Reader provides read-only document access.
	Reader driving.DocumentReader

	// Projects manages writing projects.
	Projects driving.ProjectService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Reader == nil {
		return ErrMissingDocumentReader
	}
	// Projects is optional; the projects resource degrades to an empty list
	return nil
}
