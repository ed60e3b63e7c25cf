// Package memory provides in-memory store implementations used by service
// tests and headless tooling.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driven"
	"github.com/quillworks-labs/quill-cli/internal/outline"
)

// Ensure BlockStore implements the interface.
var _ driven.BlockStore = (*BlockStore)(nil)

// BlockStore is an in-memory implementation of driven.BlockStore.
type BlockStore struct {
	mu     sync.RWMutex
	blocks map[string][]domain.Block // projectID -> ordered blocks
}

// NewBlockStore creates a new in-memory block store.
func NewBlockStore() *BlockStore {
	return &BlockStore{
		blocks: make(map[string][]domain.Block),
	}
}

// FetchBlocks returns every block of a project in ascending sortOrder.
func (s *BlockStore) FetchBlocks(_ context.Context, projectID string) ([]domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return outline.SortBlocks(s.blocks[projectID]), nil
}

// FetchBlock retrieves a single block by id.
func (s *BlockStore) FetchBlock(_ context.Context, id string) (*domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, blocks := range s.blocks {
		for i := range blocks {
			if blocks[i].ID == id {
				b := blocks[i]
				return &b, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

// ReplaceBlocks replaces a project's whole block list.
func (s *BlockStore) ReplaceBlocks(_ context.Context, projectID string, blocks []domain.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]domain.Block, len(blocks))
	copy(copied, blocks)
	s.blocks[projectID] = copied
	return nil
}

// ReorderAllBlocks atomically applies a reorder, moving body blocks with
// their owning heading.
func (s *BlockStore) ReorderAllBlocks(_ context.Context, projectID string, sections []domain.Section, headingUpdates []domain.HeadingUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[projectID] = outline.ApplyReorder(s.blocks[projectID], sections, headingUpdates)
	return nil
}

// UpdateBlockStatus sets the section status of a heading block.
func (s *BlockStore) UpdateBlockStatus(_ context.Context, id, status string) error {
	return s.update(id, func(b *domain.Block) { b.Status = status })
}

// UpdateBlockWordGoal sets the section writing goal of a heading block.
func (s *BlockStore) UpdateBlockWordGoal(_ context.Context, id string, goal int) error {
	return s.update(id, func(b *domain.Block) { b.WordGoal = goal })
}

// UpdateBlockGoalType sets the goal measurement of a heading block.
func (s *BlockStore) UpdateBlockGoalType(_ context.Context, id string, goalType domain.GoalType) error {
	return s.update(id, func(b *domain.Block) { b.GoalType = goalType })
}

// UpdateBlockTags sets the tags of a heading block.
func (s *BlockStore) UpdateBlockTags(_ context.Context, id string, tags []string) error {
	return s.update(id, func(b *domain.Block) { b.Tags = tags })
}

// ApplySectionChanges applies per-id field updates.
func (s *BlockStore) ApplySectionChanges(_ context.Context, projectID string, changes []domain.SectionChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks := s.blocks[projectID]
	for _, ch := range changes {
		for i := range blocks {
			if blocks[i].ID != ch.ID {
				continue
			}
			if ch.Fragment != nil {
				blocks[i].Fragment = *ch.Fragment
			}
			if ch.Level != nil {
				blocks[i].HeadingLevel = *ch.Level
			}
			if ch.Status != nil {
				blocks[i].Status = *ch.Status
			}
			if ch.Tags != nil {
				blocks[i].Tags = *ch.Tags
			}
			if ch.WordGoal != nil {
				blocks[i].WordGoal = *ch.WordGoal
			}
			if ch.GoalType != nil {
				blocks[i].GoalType = *ch.GoalType
			}
			blocks[i].UpdatedAt = time.Now()
		}
	}
	return nil
}

func (s *BlockStore) update(id string, apply func(*domain.Block)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, blocks := range s.blocks {
		for i := range blocks {
			if blocks[i].ID == id {
				apply(&blocks[i])
				blocks[i].UpdatedAt = time.Now()
				return nil
			}
		}
	}
	return domain.ErrNotFound
}
