package domain

// EditorMode identifies which editing surface currently owns the document.
type EditorMode string

const (
	// ModeStructured is the rendered, outline-driven surface.
	ModeStructured EditorMode = "structured"

	// ModeSource is the plain-text markdown surface.
	ModeSource EditorMode = "source"
)

// SyncState is the synchronization coordinator's state. All inbound change
// notifications are ignored while the coordinator is not idle, except those
// belonging to the operation that owns the current state.
type SyncState string

const (
	// StateIdle means no operation is in flight.
	StateIdle SyncState = "idle"

	// StateEditorTransition means a structured/source mode switch is in
	// progress.
	StateEditorTransition SyncState = "editorTransition"

	// StateDragReorder means a drag-and-drop reorder is in flight.
	StateDragReorder SyncState = "dragReorder"

	// StateHierarchyEnforcement means a level-violation repair pass is in
	// flight.
	StateHierarchyEnforcement SyncState = "hierarchyEnforcement"
)
