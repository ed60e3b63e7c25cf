package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadingFragment(t *testing.T) {
	assert.Equal(t, "# Chapter One", HeadingFragment(1, "Chapter One"))
	assert.Equal(t, "### Scene", HeadingFragment(3, "Scene"))
	// Levels beyond 6 are legal in the data model.
	assert.Equal(t, "######## Deep", HeadingFragment(8, "Deep"))
	// Invalid levels are floored at 1.
	assert.Equal(t, "# X", HeadingFragment(0, "X"))
}

func TestHeadingTitle(t *testing.T) {
	assert.Equal(t, "Chapter One", HeadingTitle("# Chapter One"))
	assert.Equal(t, "Scene", HeadingTitle("###   Scene"))
	assert.Equal(t, "", HeadingTitle("##"))
}

func TestRewriteHeadingLevel(t *testing.T) {
	assert.Equal(t, "## Chapter", RewriteHeadingLevel("#### Chapter", 2))
	assert.Equal(t, "# Chapter", RewriteHeadingLevel("# Chapter", 1))
}

func TestBlockIsHeading(t *testing.T) {
	h := Block{Type: BlockTypeHeading}
	p := Block{Type: BlockTypeParagraph}
	assert.True(t, h.IsHeading())
	assert.False(t, p.IsHeading())
}

func TestZoomRangeContains(t *testing.T) {
	end := 42.0
	bounded := ZoomRange{Start: 10, End: &end}
	assert.False(t, bounded.Contains(9.5))
	assert.True(t, bounded.Contains(10))
	assert.True(t, bounded.Contains(41.9))
	assert.False(t, bounded.Contains(42))

	open := ZoomRange{Start: 10}
	assert.True(t, open.Contains(10))
	assert.True(t, open.Contains(1e9))
	assert.False(t, open.Contains(3))
}
