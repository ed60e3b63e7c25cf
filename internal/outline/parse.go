package outline

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// headingLine matches an ATX heading. The marker count is unbounded; the
// data model allows levels past 6 and legality is the enforcer's concern.
var headingLine = regexp.MustCompile(`^(#+)\s+(.*)$`)

// HeadingLevelOf returns the heading level of a fragment's first line, or
// 0 if the fragment does not start with an ATX heading.
func HeadingLevelOf(fragment string) int {
	first := fragment
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	m := headingLine.FindStringSubmatch(first)
	if m == nil {
		return 0
	}
	return len(m[1])
}

// ParseDocument splits clean (marker-free) markdown into typed blocks with
// fresh ids and evenly spaced sortOrders. The second return value maps each
// block id to the byte offset of that block's first line in the input,
// which lets callers re-associate extracted anchors with parsed blocks.
//
// Heading lines become heading blocks; runs of non-blank lines between
// them become paragraph blocks.
func ParseDocument(projectID, text string) ([]domain.Block, map[string]int) {
	now := time.Now()
	var blocks []domain.Block
	offsets := make(map[string]int)

	var para []string
	paraStart := 0
	flush := func() {
		if len(para) == 0 {
			return
		}
		b := domain.Block{
			ID:        uuid.New().String(),
			ProjectID: projectID,
			Type:      domain.BlockTypeParagraph,
			SortOrder: float64(len(blocks)+1) * OrderGap,
			Fragment:  strings.Join(para, "\n"),
			CreatedAt: now,
			UpdatedAt: now,
		}
		offsets[b.ID] = paraStart
		blocks = append(blocks, b)
		para = nil
	}

	off := 0
	for _, line := range strings.Split(text, "\n") {
		lineStart := off
		off += len(line) + 1

		if m := headingLine.FindStringSubmatch(line); m != nil {
			flush()
			b := domain.Block{
				ID:           uuid.New().String(),
				ProjectID:    projectID,
				Type:         domain.BlockTypeHeading,
				SortOrder:    float64(len(blocks)+1) * OrderGap,
				HeadingLevel: len(m[1]),
				Fragment:     strings.TrimRight(line, " \t"),
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			offsets[b.ID] = lineStart
			blocks = append(blocks, b)
			continue
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if len(para) == 0 {
			paraStart = lineStart
		}
		para = append(para, line)
	}
	flush()

	return blocks, offsets
}
