package driven

import (
	"context"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// BlockStore persists the ordered block collection of each project.
// It is the durable source of truth for document order and heading levels;
// the in-memory section list is a disposable cache rebuilt from it.
// All writes funnel through the synchronization coordinator.
type BlockStore interface {
	// FetchBlocks returns every block of a project in ascending sortOrder.
	FetchBlocks(ctx context.Context, projectID string) ([]domain.Block, error)

	// FetchBlock retrieves a single block by id.
	FetchBlock(ctx context.Context, id string) (*domain.Block, error)

	// ReplaceBlocks atomically replaces a project's whole block list,
	// used after a cold re-parse of the source surface's text.
	ReplaceBlocks(ctx context.Context, projectID string, blocks []domain.Block) error

	// ReorderAllBlocks atomically applies a reorder: the sections carry the
	// new heading order, headingUpdates carry corrected levels/fragments,
	// and body blocks move with their owning heading, all in one
	// transaction.
	ReorderAllBlocks(ctx context.Context, projectID string, sections []domain.Section, headingUpdates []domain.HeadingUpdate) error

	// UpdateBlockStatus sets the section status of a heading block.
	UpdateBlockStatus(ctx context.Context, id, status string) error

	// UpdateBlockWordGoal sets the section writing goal of a heading block.
	UpdateBlockWordGoal(ctx context.Context, id string, goal int) error

	// UpdateBlockGoalType sets the goal measurement of a heading block.
	UpdateBlockGoalType(ctx context.Context, id string, goalType domain.GoalType) error

	// UpdateBlockTags sets the tags of a heading block.
	UpdateBlockTags(ctx context.Context, id string, tags []string) error

	// ApplySectionChanges applies per-id field updates. Legacy
	// compatibility path for callers that batch heterogeneous edits.
	ApplySectionChanges(ctx context.Context, projectID string, changes []domain.SectionChange) error
}
