package outline

import (
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// MoveOutcome is the result of a reorder computation. Sections is the full
// corrected list; Updates carries every heading whose level or fragment
// changed relative to the input (promotions, the moved subtree, and any
// enforcement corrections). Converged is false only when enforcement hit
// its pass bound with violations remaining.
type MoveOutcome struct {
	Sections  []domain.Section
	Updates   []domain.HeadingUpdate
	Converged bool
}

// Move computes the new section list for a drag-and-drop request, either a
// single node or a whole subtree. It returns domain.ErrSelfParent or
// domain.ErrNoOpDrop for requests that must be silently ignored, and
// domain.ErrSectionVanished when the list no longer contains an id the
// request names (the list mutated underneath the drag; the caller aborts
// and keeps prior state).
//
// Finalization is shared by both shapes: sortOrder becomes the new index,
// StartOffset is recomputed by running fragment-length accumulation,
// parent ids are recomputed from order + level, and the hierarchy enforcer
// runs over the result. The caller persists the outcome before
// reassembling the document.
func Move(sections []domain.Section, req domain.MoveRequest) (MoveOutcome, error) {
	if req.NewParentID != "" && req.NewParentID == req.SectionID {
		return MoveOutcome{}, domain.ErrSelfParent
	}
	if req.TargetID != "" && req.TargetID == req.SectionID {
		return MoveOutcome{}, domain.ErrNoOpDrop
	}

	working := make([]domain.Section, len(sections))
	copy(working, sections)

	var err error
	if req.IsSubtree() {
		working, err = moveSubtree(working, req)
	} else {
		working, err = moveSingle(working, req)
	}
	if err != nil {
		return MoveOutcome{}, err
	}

	for i := range working {
		working[i].SortOrder = float64(i)
	}
	RecomputeOffsets(working)
	RecomputeParents(working)

	corrected, converged := Enforce(working)

	return MoveOutcome{
		Sections:  corrected,
		Updates:   sectionUpdates(sections, corrected),
		Converged: converged,
	}, nil
}

// moveSingle relocates one section, promoting any direct child that the
// move would strand in front of it.
func moveSingle(working []domain.Section, req domain.MoveRequest) ([]domain.Section, error) {
	movedIdx := indexOf(working, req.SectionID)
	if movedIdx < 0 {
		return nil, domain.ErrSectionVanished
	}
	moved := working[movedIdx]

	insertAt, err := insertionIndex(working, req.TargetID, map[string]struct{}{req.SectionID: {}})
	if err != nil {
		return nil, err
	}

	// Promote children before the moved node is removed. A direct child
	// whose post-removal index lands before the insertion point would
	// appear ahead of its logical parent; it keeps its place as a peer by
	// taking the parent's original level.
	for i := range working {
		if working[i].ParentID != moved.ID {
			continue
		}
		finalIdx := i
		if i > movedIdx {
			finalIdx-- // removal shifts everything after the moved node left
		}
		if finalIdx < insertAt {
			working[i].Level = moved.Level
			working[i].Fragment = domain.RewriteHeadingLevel(working[i].Fragment, moved.Level)
		}
	}

	working = append(working[:movedIdx], working[movedIdx+1:]...)

	moved.Level = req.NewLevel
	moved.Fragment = domain.RewriteHeadingLevel(moved.Fragment, req.NewLevel)
	moved.ParentID = req.NewParentID

	return insert(working, insertAt, moved), nil
}

// moveSubtree relocates a heading together with its listed descendants as
// one contiguous unit, shifting every member's level by the same delta.
// Levels beyond 6 are permitted here; legality is the enforcer's job.
func moveSubtree(working []domain.Section, req domain.MoveRequest) ([]domain.Section, error) {
	member := map[string]struct{}{req.SectionID: {}}
	for _, id := range req.Descendants {
		member[id] = struct{}{}
	}

	var indices []int
	for i := range working {
		if _, ok := member[working[i].ID]; ok {
			indices = append(indices, i)
		}
	}
	if len(indices) != len(member) || working[indices[0]].ID != req.SectionID {
		return nil, domain.ErrSectionVanished
	}

	unit := make([]domain.Section, 0, len(indices))
	for _, i := range indices {
		unit = append(unit, working[i])
	}
	// Remove in descending index order so earlier removals don't shift
	// the later ones.
	for k := len(indices) - 1; k >= 0; k-- {
		i := indices[k]
		working = append(working[:i], working[i+1:]...)
	}

	delta := req.NewLevel - unit[0].Level
	for i := range unit {
		unit[i].Level += delta
		unit[i].Fragment = domain.RewriteHeadingLevel(unit[i].Fragment, unit[i].Level)
	}
	// Descendant parent ids are left stale on purpose; relationship
	// recalculation after insertion rebuilds them.
	unit[0].ParentID = req.NewParentID

	insertAt, err := insertionIndex(working, req.TargetID, nil)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Section, 0, len(working)+len(unit))
	out = append(out, working[:insertAt]...)
	out = append(out, unit...)
	out = append(out, working[insertAt:]...)
	return out, nil
}

// insertionIndex resolves the target id to an index in a list from which
// the moving sections have already been removed (or are named in removed).
func insertionIndex(working []domain.Section, targetID string, removed map[string]struct{}) (int, error) {
	if targetID == "" {
		return 0, nil
	}
	idx := 0
	for i := range working {
		if _, gone := removed[working[i].ID]; gone {
			continue
		}
		idx++
		if working[i].ID == targetID {
			return idx, nil
		}
	}
	return 0, domain.ErrSectionVanished
}

func indexOf(sections []domain.Section, id string) int {
	for i := range sections {
		if sections[i].ID == id {
			return i
		}
	}
	return -1
}

func insert(sections []domain.Section, at int, s domain.Section) []domain.Section {
	if at > len(sections) {
		at = len(sections)
	}
	out := make([]domain.Section, 0, len(sections)+1)
	out = append(out, sections[:at]...)
	out = append(out, s)
	out = append(out, sections[at:]...)
	return out
}

// sectionUpdates diffs two section lists by id and returns the headings
// whose level or fragment changed.
func sectionUpdates(before, after []domain.Section) []domain.HeadingUpdate {
	prev := make(map[string]*domain.Section, len(before))
	for i := range before {
		prev[before[i].ID] = &before[i]
	}

	var updates []domain.HeadingUpdate
	for i := range after {
		s := &after[i]
		b, ok := prev[s.ID]
		if !ok || b.Level != s.Level || b.Fragment != s.Fragment {
			updates = append(updates, domain.HeadingUpdate{
				ID:       s.ID,
				Level:    s.Level,
				Fragment: s.Fragment,
			})
		}
	}
	return updates
}
