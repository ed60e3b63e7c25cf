package tui

import (
	"sync"
	"sync/atomic"

	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui/messages"
	"github.com/quillworks-labs/quill-cli/internal/anchors"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driven"
)

// StructuredSurface bridges coordinator pushes into the Bubbletea program.
// The coordinator calls it from its own goroutines; everything is forwarded
// as messages so the model mutates only inside Update.
type StructuredSurface struct {
	send  func(msg any)
	ready atomic.Bool
}

var _ driven.EditorSurface = (*StructuredSurface)(nil)

// NewStructuredSurface creates a structured surface that forwards pushes
// through send (usually tea.Program.Send).
func NewStructuredSurface(send func(msg any)) *StructuredSurface {
	return &StructuredSurface{send: send}
}

// SetContent replaces the surface's full text.
func (s *StructuredSurface) SetContent(text string) {
	s.send(messages.ContentPushed{Text: text})
}

// SetTheme applies a named theme.
func (s *StructuredSurface) SetTheme(theme string) {
	s.send(messages.ThemePushed{Theme: theme})
}

// SetCursor moves the cursor to a byte offset in the current content.
func (s *StructuredSurface) SetCursor(offset int) {
	s.send(messages.CursorPushed{Offset: offset})
}

// Ready reports whether the surface has finished initialising.
func (s *StructuredSurface) Ready() bool {
	return s.ready.Load()
}

// MarkReady records that the view has received its first window size.
func (s *StructuredSurface) MarkReady() {
	s.ready.Store(true)
}

// SourceSurface is the plain-text surface bridge. Besides forwarding
// pushes, it mirrors the textarea's buffer so the coordinator can read the
// raw content synchronously from its own goroutine.
type SourceSurface struct {
	send  func(msg any)
	ready atomic.Bool

	mu      sync.Mutex
	content string
}

var _ driven.SourceSurface = (*SourceSurface)(nil)

// NewSourceSurface creates a source surface that forwards pushes through
// send (usually tea.Program.Send).
func NewSourceSurface(send func(msg any)) *SourceSurface {
	return &SourceSurface{send: send}
}

// SetContent replaces the surface's full text.
func (s *SourceSurface) SetContent(text string) {
	s.mu.Lock()
	s.content = text
	s.mu.Unlock()
	s.send(messages.SourceContentPushed{Text: text})
}

// SetTheme applies a named theme.
func (s *SourceSurface) SetTheme(theme string) {
	s.send(messages.ThemePushed{Theme: theme})
}

// SetCursor moves the cursor to a byte offset in the current content.
func (s *SourceSurface) SetCursor(offset int) {
	s.send(messages.CursorPushed{Offset: offset})
}

// Ready reports whether the surface has finished initialising.
func (s *SourceSurface) Ready() bool {
	return s.ready.Load()
}

// MarkReady records that the view has received its first window size.
func (s *SourceSurface) MarkReady() {
	s.ready.Store(true)
}

// RawContent returns the buffer including anchor markers.
func (s *SourceSurface) RawContent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// CleanContent returns the buffer with every marker stripped.
func (s *SourceSurface) CleanContent() string {
	return anchors.StripAll(s.RawContent())
}

// Edited records a local edit made in the textarea. The mirror is updated
// before the coordinator hears about the edit, so a re-parse always reads
// the text that triggered it.
func (s *SourceSurface) Edited(text string) {
	s.mu.Lock()
	s.content = text
	s.mu.Unlock()
}
