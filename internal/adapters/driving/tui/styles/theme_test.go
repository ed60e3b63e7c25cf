package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeByName(t *testing.T) {
	assert.Equal(t, "ink", ThemeByName("ink").Name)
	assert.Equal(t, "parchment", ThemeByName("parchment").Name)

	// Unknown names fall back to the default.
	assert.Equal(t, DefaultTheme().Name, ThemeByName("nope").Name)
	assert.Equal(t, DefaultTheme().Name, ThemeByName("").Name)
}

func TestNewStyles(t *testing.T) {
	s := NewStyles(ParchmentTheme())
	require.NotNil(t, s)
	assert.Equal(t, "parchment", s.Theme().Name)
}

func TestHeadingStyles(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, s.Heading1, s.Heading(1))
	assert.Equal(t, s.Heading2, s.Heading(2))

	// Deeper levels render as normal text.
	assert.Equal(t, s.Normal, s.Heading(3))
	assert.Equal(t, s.Normal, s.Heading(7))
}
