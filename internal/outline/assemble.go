package outline

import (
	"sort"
	"strings"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// Separator joins block fragments in the assembled document.
const Separator = "\n\n"

// Assemble turns an ordered block list into a single flat document and a
// map from block id to the byte offset of that block's fragment within it.
// Blocks are joined in ascending sortOrder; a heading and a non-heading at
// the same sortOrder place the heading first. The function holds no state
// and is re-derivable from the block store alone.
func Assemble(blocks []domain.Block) (string, map[string]int) {
	sorted := SortBlocks(blocks)

	var b strings.Builder
	offsets := make(map[string]int, len(sorted))
	for i := range sorted {
		if i > 0 {
			b.WriteString(Separator)
		}
		offsets[sorted[i].ID] = b.Len()
		b.WriteString(sorted[i].Fragment)
	}
	return b.String(), offsets
}

// SortBlocks returns a copy of blocks in ascending sortOrder. Ties between
// a heading and a non-heading break with the heading first.
func SortBlocks(blocks []domain.Block) []domain.Block {
	sorted := make([]domain.Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].IsHeading() && !sorted[j].IsHeading()
	})
	return sorted
}
