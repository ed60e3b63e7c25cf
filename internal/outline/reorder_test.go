package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

func idsOf(sections []domain.Section) []string {
	out := make([]string, len(sections))
	for i := range sections {
		out[i] = sections[i].ID
	}
	return out
}

func TestMoveSelfDropIsNoOp(t *testing.T) {
	in := headings(1, 2, 1)
	_, err := Move(in, domain.MoveRequest{SectionID: "sec-1", TargetID: "sec-1", NewLevel: 1})
	assert.ErrorIs(t, err, domain.ErrNoOpDrop)
	// The input list is untouched.
	assert.Equal(t, headings(1, 2, 1), in)
}

func TestMoveSelfParentIsNoOp(t *testing.T) {
	in := headings(1, 2, 1)
	_, err := Move(in, domain.MoveRequest{SectionID: "sec-1", TargetID: "sec-2", NewParentID: "sec-1", NewLevel: 2})
	assert.ErrorIs(t, err, domain.ErrSelfParent)
}

func TestMoveMissingSectionAborts(t *testing.T) {
	in := headings(1, 2)
	_, err := Move(in, domain.MoveRequest{SectionID: "ghost", TargetID: "sec-0", NewLevel: 1})
	assert.ErrorIs(t, err, domain.ErrSectionVanished)
}

func TestMoveMissingTargetAborts(t *testing.T) {
	in := headings(1, 2)
	_, err := Move(in, domain.MoveRequest{SectionID: "sec-1", TargetID: "ghost", NewLevel: 1})
	assert.ErrorIs(t, err, domain.ErrSectionVanished)
}

// Scenario from the engine's contract: [H1 A, H2 B, H3 C, H1 D], D
// reinserted immediately after A. B and C still follow their parent A, so
// promotion must not trigger; D lands between A and B at level 1.
func TestMoveSingleNoFalsePromotion(t *testing.T) {
	in := headings(1, 2, 3, 1) // A, B, C, D
	RecomputeParents(in)

	out, err := Move(in, domain.MoveRequest{SectionID: "sec-3", TargetID: "sec-0", NewLevel: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"sec-0", "sec-3", "sec-1", "sec-2"}, idsOf(out.Sections))
	assert.Equal(t, []int{1, 1, 2, 3}, levelsOf(out.Sections))
	assert.True(t, out.Converged)
}

func TestMoveSinglePromotesOrphanedChild(t *testing.T) {
	// A(1), B(2, child of A), C(1). Moving A after C would strand B in
	// front of its parent; B is promoted to A's original level first.
	in := headings(1, 2, 1)
	RecomputeParents(in)
	require.Equal(t, "sec-0", in[1].ParentID)

	out, err := Move(in, domain.MoveRequest{SectionID: "sec-0", TargetID: "sec-2", NewLevel: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"sec-1", "sec-2", "sec-0"}, idsOf(out.Sections))
	assert.Equal(t, []int{1, 1, 1}, levelsOf(out.Sections))
	// The promoted child's fragment was regenerated for its new level.
	assert.Equal(t, "# S1", out.Sections[0].Fragment)
}

func TestMoveSingleToStart(t *testing.T) {
	in := headings(1, 2, 1)
	RecomputeParents(in)

	out, err := Move(in, domain.MoveRequest{SectionID: "sec-2", TargetID: "", NewLevel: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"sec-2", "sec-0", "sec-1"}, idsOf(out.Sections))
}

func TestMoveFinalizationRecomputesDerivedState(t *testing.T) {
	in := headings(1, 2, 1, 2)
	RecomputeParents(in)

	out, err := Move(in, domain.MoveRequest{SectionID: "sec-3", TargetID: "sec-0", NewLevel: 2, NewParentID: "sec-0"})
	require.NoError(t, err)

	// sortOrder is the new index.
	for i := range out.Sections {
		assert.Equal(t, float64(i), out.Sections[i].SortOrder)
	}
	// Offsets accumulate fragment lengths.
	off := 0
	for i := range out.Sections {
		assert.Equal(t, off, out.Sections[i].StartOffset)
		off += len(out.Sections[i].Fragment) + len(Separator)
	}
	// Parents derive from order + level.
	assert.Equal(t, "sec-0", out.Sections[1].ParentID)
}

func TestMoveSubtreeCarriesDescendants(t *testing.T) {
	// A(1), B(2), C(3), D(1): move B with descendant C after D.
	in := headings(1, 2, 3, 1)
	RecomputeParents(in)

	out, err := Move(in, domain.MoveRequest{
		SectionID:   "sec-1",
		TargetID:    "sec-3",
		NewLevel:    2,
		NewParentID: "sec-3",
		Descendants: []string{"sec-2"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"sec-0", "sec-3", "sec-1", "sec-2"}, idsOf(out.Sections))
	// Every member shifted by the same delta (2-2 = 0 here), then the
	// enforcer validated the result.
	assert.Equal(t, []int{1, 1, 2, 3}, levelsOf(out.Sections))
	assert.Equal(t, "sec-3", out.Sections[2].ParentID)
	assert.Equal(t, "sec-1", out.Sections[3].ParentID)
}

func TestMoveSubtreeLevelDelta(t *testing.T) {
	// Moving B(2) with C(3) to level 1 shifts both by -1.
	in := headings(1, 2, 3, 1)
	RecomputeParents(in)

	out, err := Move(in, domain.MoveRequest{
		SectionID:   "sec-1",
		TargetID:    "sec-3",
		NewLevel:    1,
		Descendants: []string{"sec-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 2}, levelsOf(out.Sections))
}

func TestMoveSubtreeDeepLevelsLeftToEnforcer(t *testing.T) {
	// Shifting a subtree deeper may push levels past 6; the enforcer, not
	// the move itself, restores legality.
	in := headings(1, 5, 6, 2)
	RecomputeParents(in)

	out, err := Move(in, domain.MoveRequest{
		SectionID:   "sec-1",
		TargetID:    "sec-3",
		NewLevel:    7,
		Descendants: []string{"sec-2"},
	})
	require.NoError(t, err)
	assert.True(t, out.Converged)
	assert.False(t, Violates(out.Sections))
}

func TestMoveSubtreeVanishedDescendantAborts(t *testing.T) {
	in := headings(1, 2, 1)
	_, err := Move(in, domain.MoveRequest{
		SectionID:   "sec-0",
		TargetID:    "sec-2",
		NewLevel:    1,
		Descendants: []string{"ghost"},
	})
	assert.ErrorIs(t, err, domain.ErrSectionVanished)
}

func TestMoveReportsUpdates(t *testing.T) {
	in := headings(1, 2, 1)
	RecomputeParents(in)

	out, err := Move(in, domain.MoveRequest{SectionID: "sec-0", TargetID: "sec-2", NewLevel: 1})
	require.NoError(t, err)

	// sec-1 was promoted, so it must appear in the persistence updates.
	var ids []string
	for _, u := range out.Updates {
		ids = append(ids, u.ID)
	}
	assert.Contains(t, ids, "sec-1")
}
