package domain

// Section is the in-memory, heading-centric projection of blocks used by
// the outline surface. It mirrors the heading block's fields plus two
// derived values that are recomputed whenever the list changes and are
// never the source of truth for persistence.
type Section struct {
	// ID is the id of the underlying heading block.
	ID string

	// Level is the heading level.
	Level int

	// Title is the heading text without markers.
	Title string

	// Fragment is the serialized markdown fragment for the heading line.
	Fragment string

	// SortOrder mirrors the block's order key.
	SortOrder float64

	// ParentID is the derived, cached id of the nearest preceding section
	// whose level is strictly less than this section's. Recomputed from
	// order + level whenever sections change; never authoritative.
	ParentID string

	// StartOffset is the byte offset of this section's heading within the
	// currently assembled document. Meaningless outside that assembly.
	StartOffset int

	// Status, Tags, WordGoal and GoalType mirror the heading block's
	// section metadata.
	Status   string
	Tags     []string
	WordGoal int
	GoalType GoalType

	// Bibliography mirrors the block's bibliography flag.
	Bibliography bool
}

// MoveRequest describes a drag-and-drop reorder of one section or of a
// whole subtree.
type MoveRequest struct {
	// SectionID is the section being moved.
	SectionID string

	// TargetID is the section to insert after. Empty means insert at the
	// start of the document.
	TargetID string

	// NewLevel is the requested heading level at the destination.
	NewLevel int

	// NewParentID is the requested parent at the destination.
	NewParentID string

	// Descendants lists, in document order, every descendant carried along
	// for a subtree move. Nil or empty requests a single-node move.
	Descendants []string
}

// IsSubtree reports whether the request moves a whole subtree.
func (r *MoveRequest) IsSubtree() bool {
	return len(r.Descendants) > 0
}

// HeadingUpdate carries a corrected level and regenerated fragment for one
// heading block, produced by hierarchy enforcement or a reorder.
type HeadingUpdate struct {
	// ID is the heading block id.
	ID string

	// Level is the corrected heading level.
	Level int

	// Fragment is the regenerated markdown fragment.
	Fragment string
}

// SectionChange is a per-id field update for the legacy compatibility
// persistence path. Nil pointers leave the field untouched.
type SectionChange struct {
	// ID is the block id the change applies to.
	ID string

	// Fragment replaces the block's markdown content.
	Fragment *string

	// Level replaces the heading level.
	Level *int

	// Status replaces the section status.
	Status *string

	// Tags replaces the section tags.
	Tags *[]string

	// WordGoal replaces the section word goal.
	WordGoal *int

	// GoalType replaces the goal type.
	GoalType *GoalType
}
