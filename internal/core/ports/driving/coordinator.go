package driving

import (
	"context"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driven"
)

// Coordinator sequences every mutation of the loaded document. It owns the
// live section list, gates change notifications by its state machine, and
// guarantees that block store writes happen before the document rebuilds
// that reflect them.
type Coordinator interface {
	// Load fetches a project's blocks, repairs any hierarchy violations,
	// assembles the document and pushes it to the attached surfaces.
	Load(ctx context.Context, projectID string) error

	// AttachSurfaces registers the editing surfaces content is pushed to.
	// Either may be nil for headless operation.
	AttachSurfaces(structured driven.EditorSurface, source driven.SourceSurface)

	// State returns the current coordinator state. Readers must treat any
	// non-idle state as "result not yet final".
	State() domain.SyncState

	// Sections returns the live section list.
	Sections() []domain.Section

	// AssembledText returns the currently assembled document, narrowed to
	// the zoomed subtree when a zoom is active.
	AssembledText() string

	// WordCount returns the marker-stripped word count of the assembled
	// document.
	WordCount() int

	// SourceEdited feeds a debounced raw-text edit from the source surface.
	// The text may include anchor markers; it is never persisted as-is.
	SourceEdited(raw string)

	// SectionEdited replaces one section's fragment from the structured
	// surface and schedules debounced persistence. A fragment that breaks
	// the hierarchy invariants triggers an enforcement pass.
	SectionEdited(ctx context.Context, sectionID, fragment string) error

	// MoveSection performs a drag-and-drop reorder of a single section or
	// a whole subtree.
	MoveSection(ctx context.Context, req domain.MoveRequest) error

	// SwitchMode transitions between the structured and source surfaces,
	// injecting or extracting anchor markers around the handoff.
	SwitchMode(ctx context.Context, mode domain.EditorMode) error

	// ZoomIn narrows both surfaces to one heading's subtree.
	ZoomIn(ctx context.Context, sectionID string) error

	// ZoomOut restores the full document view.
	ZoomOut(ctx context.Context) error

	// SetStatus, SetWordGoal, SetGoalType and SetTags update section
	// metadata on the heading block.
	SetStatus(ctx context.Context, sectionID, status string) error
	SetWordGoal(ctx context.Context, sectionID string, goal int) error
	SetGoalType(ctx context.Context, sectionID string, goalType domain.GoalType) error
	SetTags(ctx context.Context, sectionID string, tags []string) error

	// NotifyStoreChanged reports an out-of-band change to the persisted
	// store (another process, the watcher). Ignored unless idle.
	NotifyStoreChanged(projectID string)

	// Close cancels pending background tasks and stops the event loop.
	Close() error
}
