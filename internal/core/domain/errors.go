package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSelfParent indicates a reorder request that would make a section
	// its own parent. Such requests are ignored without logging.
	ErrSelfParent = errors.New("section cannot be its own parent")

	// ErrNoOpDrop indicates a section was dropped onto itself.
	// Such requests are ignored without logging.
	ErrNoOpDrop = errors.New("drop target equals moved section")

	// ErrSectionVanished indicates the section list was mutated underneath
	// an in-flight reorder. The reorder is aborted and prior state kept.
	ErrSectionVanished = errors.New("section disappeared during reorder")

	// ErrNotIdle indicates an operation arrived while the coordinator was
	// already mid-operation. The caller should treat the current document
	// state as not yet final.
	ErrNotIdle = errors.New("coordinator is not idle")

	// ErrNoProject indicates no project is loaded.
	ErrNoProject = errors.New("no project loaded")

	// ErrNotZoomed indicates a zoom operation with no active zoom.
	ErrNotZoomed = errors.New("not zoomed")
)
