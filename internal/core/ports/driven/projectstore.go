package driven

import (
	"context"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// ProjectStore persists project rows.
type ProjectStore interface {
	// SaveProject stores or updates a project.
	SaveProject(ctx context.Context, project domain.Project) error

	// GetProject retrieves a project by id.
	GetProject(ctx context.Context, id string) (*domain.Project, error)

	// ListProjects returns all projects.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// DeleteProject removes a project and all of its blocks.
	DeleteProject(ctx context.Context, id string) error
}
