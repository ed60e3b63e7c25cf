package driven

// EditorSurface is one of the two editing surfaces the coordinator pushes
// assembled content to. The surface's own rendering and input handling are
// outside the engine; the contract is deliberately small and symmetric.
type EditorSurface interface {
	// SetContent replaces the surface's full text.
	SetContent(text string)

	// SetTheme applies a named theme.
	SetTheme(theme string)

	// SetCursor moves the cursor to a byte offset in the current content.
	SetCursor(offset int)

	// Ready reports whether the surface has finished initialising.
	// A surface's first read-back after a cold (re)initialisation is not
	// reliable; callers hold a grace delay before trusting it.
	Ready() bool
}

// SourceSurface is the plain-text surface. It additionally exposes raw
// (marker-inclusive) and clean (marker-stripped) content retrieval as two
// distinct operations so callers can never accidentally persist
// marker-inclusive text as a block fragment.
type SourceSurface interface {
	EditorSurface

	// RawContent returns the buffer including anchor markers.
	RawContent() string

	// CleanContent returns the buffer with every marker stripped.
	CleanContent() string
}
