package services

import (
	"context"
	"fmt"

	"github.com/quillworks-labs/quill-cli/internal/anchors"
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driven"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driving"
	"github.com/quillworks-labs/quill-cli/internal/outline"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentReader = (*DocumentService)(nil)

// DocumentService is the read-only document path used by export and the
// MCP server. It reads straight from the block store; no live coordinator
// is involved.
type DocumentService struct {
	blocks driven.BlockStore
}

// NewDocumentService creates a document reader over the block store.
func NewDocumentService(blocks driven.BlockStore) *DocumentService {
	return &DocumentService{blocks: blocks}
}

// Outline returns the project's section list.
func (s *DocumentService) Outline(ctx context.Context, projectID string) ([]domain.Section, error) {
	blocks, err := s.blocks.FetchBlocks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching blocks: %w", err)
	}
	_, offsets := outline.Assemble(blocks)
	return outline.SectionsFromBlocks(blocks, offsets), nil
}

// DocumentText returns the assembled document, markers stripped.
func (s *DocumentService) DocumentText(ctx context.Context, projectID string) (string, error) {
	blocks, err := s.blocks.FetchBlocks(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("fetching blocks: %w", err)
	}
	text, _ := outline.Assemble(blocks)
	return anchors.StripAll(text), nil
}

// SectionText returns the assembled text of one heading's subtree,
// markers stripped.
func (s *DocumentService) SectionText(ctx context.Context, projectID, sectionID string) (string, error) {
	blocks, err := s.blocks.FetchBlocks(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("fetching blocks: %w", err)
	}
	r, err := outline.RangeFor(blocks, sectionID)
	if err != nil {
		return "", err
	}
	text, _ := outline.Assemble(outline.FilterByRange(blocks, r))
	return anchors.StripAll(text), nil
}

// WordCount returns the marker-stripped word count of the document.
func (s *DocumentService) WordCount(ctx context.Context, projectID string) (int, error) {
	text, err := s.DocumentText(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return anchors.CountWords(text), nil
}
