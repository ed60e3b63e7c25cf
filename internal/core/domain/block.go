package domain

import (
	"strings"
	"time"
)

// BlockType identifies the kind of content a block carries.
type BlockType string

const (
	// BlockTypeHeading is an outline heading. Heading blocks carry a level
	// and the section metadata (status, tags, goals).
	BlockTypeHeading BlockType = "heading"

	// BlockTypeParagraph is ordinary flow text owned by the nearest
	// preceding heading.
	BlockTypeParagraph BlockType = "paragraph"

	// BlockTypeOther is any other flow content (block quotes, figures,
	// horizontal rules). Treated like a paragraph for ordering purposes.
	BlockTypeOther BlockType = "other"
)

// GoalType identifies how a section's writing goal is measured.
type GoalType string

const (
	// GoalTypeNone means no goal is set.
	GoalTypeNone GoalType = ""

	// GoalTypeWords measures the goal in words.
	GoalTypeWords GoalType = "words"

	// GoalTypeCharacters measures the goal in characters.
	GoalTypeCharacters GoalType = "characters"
)

// Block is the unit of persisted document content.
// Within a project, SortOrder values are unique and induce reading order.
type Block struct {
	// ID is the stable opaque identifier, assigned at creation, never reused.
	ID string

	// ProjectID is the owning document identifier.
	ProjectID string

	// Type is the content variant.
	Type BlockType

	// SortOrder is the real-valued total order key. Gaps are expected;
	// collisions are avoided by construction (midpoint insertion), not by
	// renumbering on every insert.
	SortOrder float64

	// HeadingLevel is set only for heading blocks. Levels beyond 6 are
	// permitted in the data model and are not clamped here.
	HeadingLevel int

	// Fragment is the block's own serialized markdown content,
	// self-contained with no surrounding separators.
	Fragment string

	// Status is section-level workflow state, heading blocks only.
	Status string

	// Tags are section-level labels, heading blocks only.
	Tags []string

	// WordGoal is the section writing goal, heading blocks only.
	WordGoal int

	// GoalType is how WordGoal is measured, heading blocks only.
	GoalType GoalType

	// Bibliography flags bibliography content. Bibliography blocks are
	// excluded from every zoomed view.
	Bibliography bool

	// CreatedAt is when the block was first persisted.
	CreatedAt time.Time

	// UpdatedAt is when the block was last modified.
	UpdatedAt time.Time
}

// IsHeading reports whether the block is an outline heading.
func (b *Block) IsHeading() bool {
	return b.Type == BlockTypeHeading
}

// HeadingFragment builds the serialized markdown fragment for a heading.
func HeadingFragment(level int, title string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + title
}

// HeadingTitle extracts the title text from a heading fragment.
func HeadingTitle(fragment string) string {
	s := strings.TrimLeft(fragment, "#")
	return strings.TrimSpace(s)
}

// RewriteHeadingLevel regenerates a heading fragment so the marker count
// matches the given level, preserving the title text.
func RewriteHeadingLevel(fragment string, level int) string {
	return HeadingFragment(level, HeadingTitle(fragment))
}
