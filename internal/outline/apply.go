package outline

import (
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// ApplyReorder rewrites a project's full block list to match a corrected
// section order: every body block moves with its owning heading, heading
// levels and fragments take the given updates, and all blocks receive
// fresh evenly spaced sortOrders. Blocks before the first heading keep
// their place at the top; headings missing from sections keep their old
// relative order at the end.
//
// Store adapters use this inside their reorder transaction so "sections +
// updates in, consistent block list out" has exactly one implementation.
func ApplyReorder(blocks []domain.Block, sections []domain.Section, updates []domain.HeadingUpdate) []domain.Block {
	sorted := SortBlocks(blocks)

	byUpdate := make(map[string]domain.HeadingUpdate, len(updates))
	for _, u := range updates {
		byUpdate[u.ID] = u
	}

	// Group body blocks under the heading that owns them in the old order.
	heads := make(map[string]domain.Block)
	bodies := make(map[string][]domain.Block)
	owner := ""
	for i := range sorted {
		b := sorted[i]
		if b.IsHeading() {
			heads[b.ID] = b
			owner = b.ID
			continue
		}
		bodies[owner] = append(bodies[owner], b)
	}

	out := make([]domain.Block, 0, len(blocks))
	out = append(out, bodies[""]...)

	placed := make(map[string]bool, len(sections))
	for i := range sections {
		h, ok := heads[sections[i].ID]
		if !ok {
			continue
		}
		placed[h.ID] = true
		if u, ok := byUpdate[h.ID]; ok {
			h.HeadingLevel = u.Level
			h.Fragment = u.Fragment
		}
		out = append(out, h)
		out = append(out, bodies[h.ID]...)
	}

	// Safety net for headings the section list no longer names.
	for i := range sorted {
		if sorted[i].IsHeading() && !placed[sorted[i].ID] {
			out = append(out, sorted[i])
			out = append(out, bodies[sorted[i].ID]...)
		}
	}

	for i := range out {
		out[i].SortOrder = float64(i+1) * OrderGap
	}
	return out
}
