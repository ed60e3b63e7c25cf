package outline

import (
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

const (
	// OrderGap is the spacing between consecutive sortOrders assigned on a
	// fresh parse or a renumber. The gap leaves room for midpoint inserts.
	OrderGap = 1024.0

	// MinOrderGap is the smallest usable distance between two neighboring
	// sortOrders. Below this, float64 midpoints stop being distinct enough
	// and the project is renumbered instead.
	MinOrderGap = 1e-6
)

// Midpoint returns an order key between two neighbors. The second return
// value is false when the gap is too small to split; callers renumber the
// whole project and retry.
func Midpoint(before, after float64) (float64, bool) {
	if after-before < MinOrderGap {
		return 0, false
	}
	return before + (after-before)/2, true
}

// NextOrder returns an order key after the current last block.
func NextOrder(last float64) float64 {
	return last + OrderGap
}

// Renumber reassigns evenly spaced sortOrders to a block list, preserving
// its current order. Used when midpoint insertion exhausts the precision
// of a neighborhood.
func Renumber(blocks []domain.Block) []domain.Block {
	sorted := SortBlocks(blocks)
	for i := range sorted {
		sorted[i].SortOrder = float64(i+1) * OrderGap
	}
	return sorted
}
