package outline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// headings builds a section list from levels, with generated titles.
func headings(levels ...int) []domain.Section {
	sections := make([]domain.Section, len(levels))
	for i, lvl := range levels {
		title := fmt.Sprintf("S%d", i)
		sections[i] = domain.Section{
			ID:       fmt.Sprintf("sec-%d", i),
			Level:    lvl,
			Title:    title,
			Fragment: domain.HeadingFragment(lvl, title),
		}
	}
	return sections
}

func levelsOf(sections []domain.Section) []int {
	out := make([]int, len(sections))
	for i := range sections {
		out[i] = sections[i].Level
	}
	return out
}

func TestEnforceFirstHeadingBecomesLevelOne(t *testing.T) {
	out, converged := Enforce(headings(3, 4))
	require.True(t, converged)
	assert.Equal(t, []int{1, 2}, levelsOf(out))
}

func TestEnforceSkipBecomesStep(t *testing.T) {
	// Levels [1, 3] contain a depth skip and must yield [1, 2].
	out, converged := Enforce(headings(1, 3))
	require.True(t, converged)
	assert.Equal(t, []int{1, 2}, levelsOf(out))
}

func TestEnforceChainOfViolations(t *testing.T) {
	// Each element must validate against the corrected predecessor of the
	// current pass; validating against stale input would leave 5 and 7
	// under-corrected.
	out, converged := Enforce(headings(2, 5, 7))
	require.True(t, converged)
	assert.Equal(t, []int{1, 2, 3}, levelsOf(out))
}

func TestEnforceCompliantListUnchanged(t *testing.T) {
	in := headings(1, 2, 3, 3, 1, 2)
	out, converged := Enforce(in)
	require.True(t, converged)
	assert.Equal(t, in, out)
}

func TestEnforceRegeneratesFragment(t *testing.T) {
	out, converged := Enforce(headings(1, 4))
	require.True(t, converged)
	assert.Equal(t, "## S1", out[1].Fragment)
}

func TestEnforceIdempotence(t *testing.T) {
	once, converged := Enforce(headings(3, 1, 4, 4, 9, 2))
	require.True(t, converged)
	twice, converged := Enforce(once)
	require.True(t, converged)
	assert.Equal(t, once, twice)
}

func TestEnforceInvariantsHold(t *testing.T) {
	cases := [][]int{
		{},
		{1},
		{5},
		{1, 2, 3, 4, 5, 6, 7, 8},
		{8, 7, 6, 5, 4, 3, 2, 1},
		{2, 2, 2, 2},
		{1, 6, 1, 6, 1, 6},
		{3, 3, 9, 1, 12, 2},
	}
	for _, levels := range cases {
		out, converged := Enforce(headings(levels...))
		require.True(t, converged, "input %v", levels)
		assert.False(t, Violates(out), "input %v got %v", levels, levelsOf(out))
		for i := range out {
			if i == 0 {
				assert.Equal(t, 1, out[0].Level, "input %v", levels)
				continue
			}
			assert.LessOrEqual(t, out[i].Level, out[i-1].Level+1, "input %v", levels)
		}
	}
}

func TestEnforceDoesNotReorder(t *testing.T) {
	in := headings(4, 1, 8, 2)
	out, _ := Enforce(in)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
	}
}

func TestViolates(t *testing.T) {
	assert.False(t, Violates(nil))
	assert.False(t, Violates(headings(1, 2, 2, 3, 1)))
	assert.True(t, Violates(headings(2)))
	assert.True(t, Violates(headings(1, 3)))
}

func TestHeadingUpdatesDiff(t *testing.T) {
	blocks := []domain.Block{
		{ID: "sec-0", Type: domain.BlockTypeHeading, HeadingLevel: 1, Fragment: "# S0"},
		{ID: "sec-1", Type: domain.BlockTypeHeading, HeadingLevel: 3, Fragment: "### S1"},
	}
	corrected, _ := Enforce(headings(1, 3))
	updates := HeadingUpdates(blocks, corrected)
	require.Len(t, updates, 1)
	assert.Equal(t, "sec-1", updates[0].ID)
	assert.Equal(t, 2, updates[0].Level)
	assert.Equal(t, "## S1", updates[0].Fragment)
}
