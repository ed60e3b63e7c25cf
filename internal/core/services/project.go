package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driven"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driving"
	"github.com/quillworks-labs/quill-cli/internal/outline"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// ProjectService manages writing projects.
type ProjectService struct {
	projects driven.ProjectStore
	blocks   driven.BlockStore
}

// NewProjectService creates a project service.
func NewProjectService(projects driven.ProjectStore, blocks driven.BlockStore) *ProjectService {
	return &ProjectService{projects: projects, blocks: blocks}
}

// Create creates an empty project containing a single level-1 heading
// named after the project, so both surfaces have something to edit.
func (s *ProjectService) Create(ctx context.Context, name string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is empty", domain.ErrInvalidInput)
	}

	now := time.Now()
	project := domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.projects.SaveProject(ctx, project); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	seed := domain.Block{
		ID:           uuid.New().String(),
		ProjectID:    project.ID,
		Type:         domain.BlockTypeHeading,
		SortOrder:    outline.OrderGap,
		HeadingLevel: 1,
		Fragment:     domain.HeadingFragment(1, name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.blocks.ReplaceBlocks(ctx, project.ID, []domain.Block{seed}); err != nil {
		return nil, fmt.Errorf("seeding project: %w", err)
	}
	return &project, nil
}

// Import creates a project from raw markdown text.
func (s *ProjectService) Import(ctx context.Context, name, text string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is empty", domain.ErrInvalidInput)
	}

	now := time.Now()
	project := domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.projects.SaveProject(ctx, project); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	blocks, _ := outline.ParseDocument(project.ID, text)
	corrected, _ := outline.Enforce(outline.SectionsFromBlocks(blocks, nil))
	for _, u := range outline.HeadingUpdates(blocks, corrected) {
		for i := range blocks {
			if blocks[i].ID == u.ID {
				blocks[i].HeadingLevel = u.Level
				blocks[i].Fragment = u.Fragment
			}
		}
	}
	if err := s.blocks.ReplaceBlocks(ctx, project.ID, blocks); err != nil {
		return nil, fmt.Errorf("importing blocks: %w", err)
	}
	return &project, nil
}

// Get retrieves a project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetProject(ctx, id)
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.ListProjects(ctx)
}

// Delete removes a project and its blocks.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.projects.DeleteProject(ctx, id)
}
