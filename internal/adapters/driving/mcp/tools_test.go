package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

func TestServer_handleOutline(t *testing.T) {
	ctx := context.Background()

	t.Run("returns outline sections", func(t *testing.T) {
		reader := &mockDocumentReader{
			sections: []domain.Section{
				{ID: "s1", Level: 1, Title: "Part One", Status: "draft", WordGoal: 2000},
				{ID: "s2", Level: 2, Title: "Chapter One", ParentID: "s1", Tags: []string{"act-one"}},
			},
		}

		server, err := NewServer(&Ports{Reader: reader})
		require.NoError(t, err)

		_, output, err := server.handleOutline(ctx, nil, OutlineInput{ProjectID: "p1"})
		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "s1", output.Sections[0].ID)
		assert.Equal(t, "Part One", output.Sections[0].Title)
		assert.Equal(t, 2000, output.Sections[0].WordGoal)
		assert.Equal(t, "s1", output.Sections[1].ParentID)
		assert.Equal(t, []string{"act-one"}, output.Sections[1].Tags)
	})

	t.Run("returns error on reader failure", func(t *testing.T) {
		reader := &mockDocumentReader{err: errors.New("store closed")}
		server, err := NewServer(&Ports{Reader: reader})
		require.NoError(t, err)

		_, _, err = server.handleOutline(ctx, nil, OutlineInput{ProjectID: "p1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store closed")
	})
}

func TestServer_handleReadSection(t *testing.T) {
	ctx := context.Background()

	reader := &mockDocumentReader{text: "# Part One\n\nBody."}
	server, err := NewServer(&Ports{Reader: reader})
	require.NoError(t, err)

	_, output, err := server.handleReadSection(ctx, nil, ReadSectionInput{ProjectID: "p1", SectionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "# Part One\n\nBody.", output.Text)
}

func TestServer_handleReadDocument(t *testing.T) {
	ctx := context.Background()

	reader := &mockDocumentReader{text: "# Part One\n\nBody.", wordCount: 4}
	server, err := NewServer(&Ports{Reader: reader})
	require.NoError(t, err)

	_, output, err := server.handleReadDocument(ctx, nil, ReadDocumentInput{ProjectID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "# Part One\n\nBody.", output.Text)
	assert.Equal(t, 4, output.WordCount)
}
