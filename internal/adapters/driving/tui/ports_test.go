package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driven"
)

// MockCoordinator implements driving.Coordinator for testing.
type MockCoordinator struct {
	LoadFunc          func(ctx context.Context, projectID string) error
	SectionsFunc      func() []domain.Section
	AssembledTextFunc func() string
	WordCountFunc     func() int
	SectionEditedFunc func(ctx context.Context, sectionID, fragment string) error
	MoveSectionFunc   func(ctx context.Context, req domain.MoveRequest) error
	SwitchModeFunc    func(ctx context.Context, mode domain.EditorMode) error
	ZoomInFunc        func(ctx context.Context, sectionID string) error
	ZoomOutFunc       func(ctx context.Context) error
	SetStatusFunc     func(ctx context.Context, sectionID, status string) error

	sourceEdits []string
}

func (m *MockCoordinator) Load(ctx context.Context, projectID string) error {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, projectID)
	}
	return nil
}

func (m *MockCoordinator) AttachSurfaces(structured driven.EditorSurface, source driven.SourceSurface) {
}

func (m *MockCoordinator) State() domain.SyncState {
	return domain.StateIdle
}

func (m *MockCoordinator) Sections() []domain.Section {
	if m.SectionsFunc != nil {
		return m.SectionsFunc()
	}
	return nil
}

func (m *MockCoordinator) AssembledText() string {
	if m.AssembledTextFunc != nil {
		return m.AssembledTextFunc()
	}
	return ""
}

func (m *MockCoordinator) WordCount() int {
	if m.WordCountFunc != nil {
		return m.WordCountFunc()
	}
	return 0
}

func (m *MockCoordinator) SourceEdited(raw string) {
	m.sourceEdits = append(m.sourceEdits, raw)
}

func (m *MockCoordinator) SectionEdited(ctx context.Context, sectionID, fragment string) error {
	if m.SectionEditedFunc != nil {
		return m.SectionEditedFunc(ctx, sectionID, fragment)
	}
	return nil
}

func (m *MockCoordinator) MoveSection(ctx context.Context, req domain.MoveRequest) error {
	if m.MoveSectionFunc != nil {
		return m.MoveSectionFunc(ctx, req)
	}
	return nil
}

func (m *MockCoordinator) SwitchMode(ctx context.Context, mode domain.EditorMode) error {
	if m.SwitchModeFunc != nil {
		return m.SwitchModeFunc(ctx, mode)
	}
	return nil
}

func (m *MockCoordinator) ZoomIn(ctx context.Context, sectionID string) error {
	if m.ZoomInFunc != nil {
		return m.ZoomInFunc(ctx, sectionID)
	}
	return nil
}

func (m *MockCoordinator) ZoomOut(ctx context.Context) error {
	if m.ZoomOutFunc != nil {
		return m.ZoomOutFunc(ctx)
	}
	return nil
}

func (m *MockCoordinator) SetStatus(ctx context.Context, sectionID, status string) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, sectionID, status)
	}
	return nil
}

func (m *MockCoordinator) SetWordGoal(ctx context.Context, sectionID string, goal int) error {
	return nil
}

func (m *MockCoordinator) SetGoalType(ctx context.Context, sectionID string, goalType domain.GoalType) error {
	return nil
}

func (m *MockCoordinator) SetTags(ctx context.Context, sectionID string, tags []string) error {
	return nil
}

func (m *MockCoordinator) NotifyStoreChanged(projectID string) {}

func (m *MockCoordinator) Close() error {
	return nil
}

// MockProjectService implements driving.ProjectService for testing.
type MockProjectService struct {
	CreateFunc func(ctx context.Context, name string) (*domain.Project, error)
	ListFunc   func(ctx context.Context) ([]domain.Project, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *MockProjectService) Create(ctx context.Context, name string) (*domain.Project, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name)
	}
	return &domain.Project{ID: "p1", Name: name}, nil
}

func (m *MockProjectService) Import(ctx context.Context, name, text string) (*domain.Project, error) {
	return &domain.Project{ID: "p1", Name: name}, nil
}

func (m *MockProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return &domain.Project{ID: id}, nil
}

func (m *MockProjectService) List(ctx context.Context) ([]domain.Project, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockProjectService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func validPorts() *Ports {
	return &Ports{
		Coordinator: &MockCoordinator{},
		Projects:    &MockProjectService{},
	}
}

func TestPortsValidate(t *testing.T) {
	t.Run("valid ports pass", func(t *testing.T) {
		require.NoError(t, validPorts().Validate())
	})

	t.Run("missing coordinator fails", func(t *testing.T) {
		p := validPorts()
		p.Coordinator = nil
		assert.ErrorIs(t, p.Validate(), ErrMissingCoordinator)
	})

	t.Run("missing project service fails", func(t *testing.T) {
		p := validPorts()
		p.Projects = nil
		assert.ErrorIs(t, p.Validate(), ErrMissingProjectService)
	})
}
