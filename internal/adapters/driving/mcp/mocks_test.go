package mcp

import (
	"context"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// mockDocumentReader is a mock implementation of driving.DocumentReader.
type mockDocumentReader struct {
	sections  []domain.Section
	text      string
	wordCount int
	err       error
}

func (m *mockDocumentReader) Outline(_ context.Context, _ string) ([]domain.Section, error) {
	return m.sections, m.err
}

func (m *mockDocumentReader) DocumentText(_ context.Context, _ string) (string, error) {
	return m.text, m.err
}

func (m *mockDocumentReader) SectionText(_ context.Context, _, _ string) (string, error) {
	return m.text, m.err
}

func (m *mockDocumentReader) WordCount(_ context.Context, _ string) (int, error) {
	return m.wordCount, m.err
}

// mockProjectService is a mock implementation of driving.ProjectService.
type mockProjectService struct {
	projects []domain.Project
	project  *domain.Project
	err      error
}

func (m *mockProjectService) Create(_ context.Context, _ string) (*domain.Project, error) {
	return m.project, m.err
}

func (m *mockProjectService) Import(_ context.Context, _, _ string) (*domain.Project, error) {
	return m.project, m.err
}

func (m *mockProjectService) Get(_ context.Context, _ string) (*domain.Project, error) {
	return m.project, m.err
}

func (m *mockProjectService) List(_ context.Context) ([]domain.Project, error) {
	return m.projects, m.err
}

func (m *mockProjectService) Delete(_ context.Context, _ string) error {
	return m.err
}
