package outline

import (
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// RangeFor derives the zoom range for one heading: start is the heading's
// own sortOrder, end is the sortOrder of the next heading at the same or a
// shallower level, or nil if the subtree runs to the end of the document.
func RangeFor(blocks []domain.Block, headingID string) (domain.ZoomRange, error) {
	sorted := SortBlocks(blocks)

	idx := -1
	for i := range sorted {
		if sorted[i].ID == headingID && sorted[i].IsHeading() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ZoomRange{}, domain.ErrNotFound
	}

	r := domain.ZoomRange{Start: sorted[idx].SortOrder}
	level := sorted[idx].HeadingLevel
	for i := idx + 1; i < len(sorted); i++ {
		if sorted[i].IsHeading() && sorted[i].HeadingLevel <= level {
			end := sorted[i].SortOrder
			r.End = &end
			break
		}
	}
	return r, nil
}

// FilterByRange narrows a block list to the given zoom range, preserving
// order. Preferred over FilterByIDs because blocks created during the zoom
// fall inside the range with no membership record. Bibliography blocks are
// always excluded.
func FilterByRange(blocks []domain.Block, r domain.ZoomRange) []domain.Block {
	var out []domain.Block
	for i := range blocks {
		if blocks[i].Bibliography {
			continue
		}
		if r.Contains(blocks[i].SortOrder) {
			out = append(out, blocks[i])
		}
	}
	return out
}

// FilterByIDs narrows a block list by structural walk, used only when no
// range is known yet (a cold zoom-in before the range is computed). A
// heading whose id is zoomed opens inclusion at its level; inclusion closes
// at the next heading at or above that level that is not itself zoomed.
// Non-heading blocks are included only inside an open range. Bibliography
// blocks are always excluded.
func FilterByIDs(blocks []domain.Block, zoomed map[string]struct{}) []domain.Block {
	sorted := SortBlocks(blocks)

	var out []domain.Block
	open := false
	openLevel := 0
	for i := range sorted {
		b := sorted[i]
		if b.Bibliography {
			continue
		}
		if !b.IsHeading() {
			if open {
				out = append(out, b)
			}
			continue
		}
		if _, ok := zoomed[b.ID]; ok {
			if !open || b.HeadingLevel <= openLevel {
				open = true
				openLevel = b.HeadingLevel
			}
			out = append(out, b)
			continue
		}
		if open && b.HeadingLevel > openLevel {
			out = append(out, b)
			continue
		}
		open = false
	}
	return out
}
