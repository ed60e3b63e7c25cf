package outline

import (
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// SectionsFromBlocks projects the heading blocks of an ordered block list
// into the section view-model. Offsets, when non-nil, is the id→offset map
// from a matching Assemble call and fills each section's StartOffset.
// Parent ids are recomputed from order + level.
func SectionsFromBlocks(blocks []domain.Block, offsets map[string]int) []domain.Section {
	sorted := SortBlocks(blocks)

	var sections []domain.Section
	for i := range sorted {
		b := &sorted[i]
		if !b.IsHeading() {
			continue
		}
		s := domain.Section{
			ID:           b.ID,
			Level:        b.HeadingLevel,
			Title:        domain.HeadingTitle(b.Fragment),
			Fragment:     b.Fragment,
			SortOrder:    b.SortOrder,
			Status:       b.Status,
			Tags:         b.Tags,
			WordGoal:     b.WordGoal,
			GoalType:     b.GoalType,
			Bibliography: b.Bibliography,
		}
		if offsets != nil {
			s.StartOffset = offsets[b.ID]
		}
		sections = append(sections, s)
	}
	RecomputeParents(sections)
	return sections
}

// RecomputeParents rewrites every section's cached ParentID as the id of
// the nearest preceding section with a strictly lower level. The parent id
// is derived state only and is never persisted as ordering truth.
func RecomputeParents(sections []domain.Section) {
	for i := range sections {
		sections[i].ParentID = ""
		for j := i - 1; j >= 0; j-- {
			if sections[j].Level < sections[i].Level {
				sections[i].ParentID = sections[j].ID
				break
			}
		}
	}
}

// RecomputeOffsets rewrites StartOffset by running fragment-length
// accumulation over the section list alone, as used after a reorder before
// the full document is reassembled.
func RecomputeOffsets(sections []domain.Section) {
	off := 0
	for i := range sections {
		sections[i].StartOffset = off
		off += len(sections[i].Fragment) + len(Separator)
	}
}
