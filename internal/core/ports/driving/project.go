package driving

import (
	"context"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// ProjectService manages writing projects.
type ProjectService interface {
	// Create creates an empty project with the given name.
	Create(ctx context.Context, name string) (*domain.Project, error)

	// Import creates a project from raw markdown text.
	Import(ctx context.Context, name, text string) (*domain.Project, error)

	// Get retrieves a project by id.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// List returns all projects.
	List(ctx context.Context) ([]domain.Project, error)

	// Delete removes a project and its blocks.
	Delete(ctx context.Context, id string) error
}

// DocumentReader provides read-only access to a project's document without
// loading a live coordinator. Used by export and the MCP server.
type DocumentReader interface {
	// Outline returns the project's section list.
	Outline(ctx context.Context, projectID string) ([]domain.Section, error)

	// DocumentText returns the assembled document with markers stripped.
	DocumentText(ctx context.Context, projectID string) (string, error)

	// SectionText returns the assembled text of one heading's subtree,
	// markers stripped.
	SectionText(ctx context.Context, projectID, sectionID string) (string, error)

	// WordCount returns the marker-stripped word count of the document.
	WordCount(ctx context.Context, projectID string) (int, error)
}
