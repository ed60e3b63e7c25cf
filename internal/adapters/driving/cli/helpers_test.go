package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// mockProjectService implements driving.ProjectService with func fields.
type mockProjectService struct {
	createFunc func(ctx context.Context, name string) (*domain.Project, error)
	importFunc func(ctx context.Context, name, text string) (*domain.Project, error)
	getFunc    func(ctx context.Context, id string) (*domain.Project, error)
	listFunc   func(ctx context.Context) ([]domain.Project, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockProjectService) Create(ctx context.Context, name string) (*domain.Project, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, name)
	}
	return &domain.Project{ID: "p1", Name: name}, nil
}

func (m *mockProjectService) Import(ctx context.Context, name, text string) (*domain.Project, error) {
	if m.importFunc != nil {
		return m.importFunc(ctx, name, text)
	}
	return &domain.Project{ID: "p1", Name: name}, nil
}

func (m *mockProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &domain.Project{ID: id, Name: "Test"}, nil
}

func (m *mockProjectService) List(ctx context.Context) ([]domain.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.Project{
		{ID: "p1", Name: "Test", CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
	}, nil
}

func (m *mockProjectService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockDocumentReader implements driving.DocumentReader with func fields.
type mockDocumentReader struct {
	outlineFunc  func(ctx context.Context, projectID string) ([]domain.Section, error)
	documentFunc func(ctx context.Context, projectID string) (string, error)
	sectionFunc  func(ctx context.Context, projectID, sectionID string) (string, error)
	wordsFunc    func(ctx context.Context, projectID string) (int, error)
}

func (m *mockDocumentReader) Outline(ctx context.Context, projectID string) ([]domain.Section, error) {
	if m.outlineFunc != nil {
		return m.outlineFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockDocumentReader) DocumentText(ctx context.Context, projectID string) (string, error) {
	if m.documentFunc != nil {
		return m.documentFunc(ctx, projectID)
	}
	return "", nil
}

func (m *mockDocumentReader) SectionText(ctx context.Context, projectID, sectionID string) (string, error) {
	if m.sectionFunc != nil {
		return m.sectionFunc(ctx, projectID, sectionID)
	}
	return "", nil
}

func (m *mockDocumentReader) WordCount(ctx context.Context, projectID string) (int, error) {
	if m.wordsFunc != nil {
		return m.wordsFunc(ctx, projectID)
	}
	return 0, nil
}

// setupTestServices wires mocks into the package vars and returns a
// cleanup that restores the previous wiring.
func setupTestServices(projects *mockProjectService, reader *mockDocumentReader) func() {
	prevProjects, prevReader := projectService, documentReader
	if projects != nil {
		projectService = projects
	} else {
		projectService = &mockProjectService{}
	}
	if reader != nil {
		documentReader = reader
	} else {
		documentReader = &mockDocumentReader{}
	}
	return func() {
		projectService = prevProjects
		documentReader = prevReader
	}
}

// execute runs the root command with args and captures output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
