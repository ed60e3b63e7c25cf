package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/quillworks-labs/quill-cli/internal/anchors"
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driven"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driving"
	"github.com/quillworks-labs/quill-cli/internal/logger"
	"github.com/quillworks-labs/quill-cli/internal/outline"
)

// Ensure Coordinator implements the interface.
var _ driving.Coordinator = (*Coordinator)(nil)

// CoordinatorConfig holds the timing knobs of the coordinator's background
// tasks.
type CoordinatorConfig struct {
	// PersistDebounce delays persistence after a structured-surface edit.
	PersistDebounce time.Duration

	// ReparseDebounce delays the re-parse of the source surface's text.
	ReparseDebounce time.Duration

	// GraceDelay is held after switching out of the source surface before
	// returning to idle. The destination surface's first read-back after a
	// cold (re)initialisation is known to be unreliable; the delay is a
	// workaround, not a guarantee.
	GraceDelay time.Duration

	// RefreshPerSecond caps how often store-change notifications may
	// trigger a rebuild. Excess notifications are dropped; the next
	// allowed one rebuilds from current store state anyway.
	RefreshPerSecond float64
}

// DefaultCoordinatorConfig returns the default timings.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		PersistDebounce:  750 * time.Millisecond,
		ReparseDebounce:  500 * time.Millisecond,
		GraceDelay:       350 * time.Millisecond,
		RefreshPerSecond: 4,
	}
}

// event is a typed message into the coordinator's single inbox. All
// asynchronous notifications funnel through it; there is no broadcast bus.
type event interface{ isEvent() }

type storeChangedEvent struct{ projectID string }

type sourceEditedEvent struct{ raw string }

func (storeChangedEvent) isEvent() {}
func (sourceEditedEvent) isEvent() {}

// Coordinator is the synchronization core: the single logical owner of the
// live section list and of every block store write. It reconciles edits
// from the two surfaces, sequences reorders and hierarchy enforcement, and
// prevents feedback loops by ignoring inbound notifications while an
// operation is in flight.
type Coordinator struct {
	store driven.BlockStore
	cfg   CoordinatorConfig

	// mu guards all document state below. Every mutation runs under it,
	// which makes the coordinator the single owner the store contract
	// requires; no other locking exists around the store.
	mu        sync.Mutex
	state     domain.SyncState
	mode      domain.EditorMode
	projectID string
	blocks    []domain.Block
	sections  []domain.Section
	assembled string
	offsets   map[string]int
	zoomedID  string
	zoom      *domain.ZoomRange

	structured driven.EditorSurface
	source     driven.SourceSurface

	persist *debouncer
	reparse *debouncer
	grace   *debouncer

	refresh *rate.Limiter

	events    chan event
	done      chan struct{}
	closeOnce sync.Once
}

// NewCoordinator creates a coordinator over the given block store and
// starts its inbox loop.
func NewCoordinator(store driven.BlockStore, cfg CoordinatorConfig) *Coordinator {
	c := &Coordinator{
		store:   store,
		cfg:     cfg,
		state:   domain.StateIdle,
		mode:    domain.ModeStructured,
		persist: &debouncer{},
		reparse: &debouncer{},
		grace:   &debouncer{},
		refresh: rate.NewLimiter(rate.Limit(cfg.RefreshPerSecond), 1),
		events:  make(chan event, 64),
		done:    make(chan struct{}),
	}
	go c.run()
	return c
}

// run drains the inbox until Close.
func (c *Coordinator) run() {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.events:
			c.handle(ev)
		}
	}
}

func (c *Coordinator) post(ev event) {
	select {
	case c.events <- ev:
	case <-c.done:
	default:
		logger.Debug("coordinator: inbox full, dropping %T", ev)
	}
}

func (c *Coordinator) handle(ev event) {
	switch ev := ev.(type) {
	case storeChangedEvent:
		c.handleStoreChanged(ev.projectID)
	case sourceEditedEvent:
		raw := ev.raw
		c.reparse.schedule(c.cfg.ReparseDebounce, func(live func() bool) {
			c.reparseSource(raw, live)
		})
	}
}

// Close cancels pending background tasks and stops the inbox loop.
func (c *Coordinator) Close() error {
	c.closeOnce.Do(func() {
		c.persist.cancel()
		c.reparse.cancel()
		c.grace.cancel()
		close(c.done)
	})
	return nil
}

// AttachSurfaces registers the editing surfaces. Either may be nil.
func (c *Coordinator) AttachSurfaces(structured driven.EditorSurface, source driven.SourceSurface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.structured = structured
	c.source = source
}

// State returns the current coordinator state.
func (c *Coordinator) State() domain.SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load fetches the project, repairs hierarchy violations, assembles the
// document and pushes it to the surfaces.
func (c *Coordinator) Load(ctx context.Context, projectID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	blocks, err := c.store.FetchBlocks(ctx, projectID)
	if err != nil {
		return fmt.Errorf("fetching blocks: %w", err)
	}
	c.projectID = projectID
	c.blocks = blocks
	c.zoomedID = ""
	c.zoom = nil

	if outline.Violates(outline.SectionsFromBlocks(blocks, nil)) {
		c.state = domain.StateHierarchyEnforcement
		c.enforceAndPersistLocked(ctx)
		c.state = domain.StateIdle
	}

	c.rebuildLocked()
	c.pushLocked()
	return nil
}

// Sections returns the live section list, narrowed to the zoomed subtree
// when a zoom is active.
func (c *Coordinator) Sections() []domain.Section {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// AssembledText returns the currently assembled document.
func (c *Coordinator) AssembledText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.assembled
}

// WordCount returns the marker-stripped word count of the assembled
// document.
func (c *Coordinator) WordCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return anchors.CountWords(c.assembled)
}

// MoveSection performs a drag-and-drop reorder. A newer drag cancels the
// pending persistence of any earlier edit or drag. The store write happens
// before the document rebuild that reflects it.
func (c *Coordinator) MoveSection(ctx context.Context, req domain.MoveRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.projectID == "" {
		return domain.ErrNoProject
	}
	if c.state != domain.StateIdle {
		return domain.ErrNotIdle
	}
	c.persist.cancel()
	c.reparse.cancel()

	c.state = domain.StateDragReorder
	defer func() { c.state = domain.StateIdle }()

	full := outline.SectionsFromBlocks(c.blocks, nil)
	outcome, err := outline.Move(full, req)
	switch {
	case errors.Is(err, domain.ErrSelfParent), errors.Is(err, domain.ErrNoOpDrop):
		// Invalid request shapes are ignored without logging.
		return nil
	case errors.Is(err, domain.ErrSectionVanished):
		logger.Warn("coordinator: reorder aborted, section list changed underneath: %v", err)
		return err
	case err != nil:
		return err
	}
	if !outcome.Converged {
		logger.Warn("coordinator: hierarchy enforcement did not converge after reorder")
	}

	if err := c.store.ReorderAllBlocks(ctx, c.projectID, outcome.Sections, outcome.Updates); err != nil {
		logger.Warn("coordinator: persisting reorder failed: %v", err)
		return fmt.Errorf("persisting reorder: %w", err)
	}

	// Reassemble strictly from post-write store state.
	if err := c.refetchLocked(ctx); err != nil {
		return err
	}
	c.rebuildLocked()
	c.pushLocked()
	return nil
}

// SectionEdited replaces one section's fragment from the structured
// surface. A heading edit that breaks the hierarchy invariants triggers an
// immediate enforcement pass; compliant edits persist on a debounce.
func (c *Coordinator) SectionEdited(ctx context.Context, sectionID, fragment string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateIdle {
		return domain.ErrNotIdle
	}

	idx := -1
	for i := range c.blocks {
		if c.blocks[i].ID == sectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}

	c.blocks[idx].Fragment = fragment
	if level := outline.HeadingLevelOf(fragment); level > 0 {
		c.blocks[idx].HeadingLevel = level
	}

	if outline.Violates(outline.SectionsFromBlocks(c.blocks, nil)) {
		c.state = domain.StateHierarchyEnforcement
		c.enforceAndPersistLocked(ctx)
		c.state = domain.StateIdle
		c.rebuildLocked()
		c.pushLocked()
		return nil
	}

	c.rebuildLocked()
	projectID := c.projectID
	change := domain.SectionChange{ID: sectionID, Fragment: &fragment}
	c.persist.schedule(c.cfg.PersistDebounce, func(live func() bool) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !live() {
			return
		}
		if err := c.store.ApplySectionChanges(context.Background(), projectID, []domain.SectionChange{change}); err != nil {
			logger.Warn("coordinator: persisting edit failed: %v", err)
		}
	})
	return nil
}

// SourceEdited feeds a raw (marker-inclusive) edit from the source surface
// into the inbox; the re-parse runs on a debounce.
func (c *Coordinator) SourceEdited(raw string) {
	c.post(sourceEditedEvent{raw: raw})
}

// SwitchMode transitions between surfaces. Switching into the source
// surface injects anchors before handoff; switching out extracts them,
// re-parses, and holds the grace delay before returning to idle.
func (c *Coordinator) SwitchMode(ctx context.Context, mode domain.EditorMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateIdle {
		return domain.ErrNotIdle
	}
	if mode == c.mode {
		return nil
	}
	c.state = domain.StateEditorTransition

	switch mode {
	case domain.ModeSource:
		c.mode = mode
		if c.source != nil {
			c.source.SetContent(anchors.Inject(c.assembled, c.sections, c.bibliographyOffsetsLocked()))
		}
		c.state = domain.StateIdle

	case domain.ModeStructured:
		c.mode = mode
		if c.source != nil {
			c.applySourceTextLocked(ctx, c.source.RawContent())
		}
		c.rebuildLocked()
		if c.structured != nil {
			c.structured.SetContent(c.assembled)
		}
		// Remain in editorTransition through the grace window; the
		// destination surface's first read-back is not trustworthy yet.
		c.grace.schedule(c.cfg.GraceDelay, func(live func() bool) {
			c.mu.Lock()
			defer c.mu.Unlock()
			if !live() {
				return
			}
			c.state = domain.StateIdle
		})

	default:
		c.state = domain.StateIdle
		return fmt.Errorf("%w: unknown editor mode %q", domain.ErrInvalidInput, mode)
	}
	return nil
}

// ZoomIn narrows both surfaces to one heading's subtree.
func (c *Coordinator) ZoomIn(ctx context.Context, sectionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateIdle {
		return domain.ErrNotIdle
	}
	r, err := outline.RangeFor(c.blocks, sectionID)
	if err != nil {
		return err
	}
	c.zoomedID = sectionID
	c.zoom = &r
	c.rebuildLocked()
	c.pushLocked()
	return nil
}

// ZoomOut restores the full document view.
func (c *Coordinator) ZoomOut(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.zoom == nil {
		return domain.ErrNotZoomed
	}
	c.zoomedID = ""
	c.zoom = nil
	c.rebuildLocked()
	c.pushLocked()
	return nil
}

// SetStatus updates a section's workflow status.
func (c *Coordinator) SetStatus(ctx context.Context, sectionID, status string) error {
	return c.updateMetadata(sectionID, func(b *domain.Block) { b.Status = status }, func() error {
		return c.store.UpdateBlockStatus(ctx, sectionID, status)
	})
}

// SetWordGoal updates a section's writing goal.
func (c *Coordinator) SetWordGoal(ctx context.Context, sectionID string, goal int) error {
	return c.updateMetadata(sectionID, func(b *domain.Block) { b.WordGoal = goal }, func() error {
		return c.store.UpdateBlockWordGoal(ctx, sectionID, goal)
	})
}

// SetGoalType updates how a section's goal is measured.
func (c *Coordinator) SetGoalType(ctx context.Context, sectionID string, goalType domain.GoalType) error {
	return c.updateMetadata(sectionID, func(b *domain.Block) { b.GoalType = goalType }, func() error {
		return c.store.UpdateBlockGoalType(ctx, sectionID, goalType)
	})
}

// SetTags updates a section's tags.
func (c *Coordinator) SetTags(ctx context.Context, sectionID string, tags []string) error {
	return c.updateMetadata(sectionID, func(b *domain.Block) { b.Tags = tags }, func() error {
		return c.store.UpdateBlockTags(ctx, sectionID, tags)
	})
}

func (c *Coordinator) updateMetadata(sectionID string, apply func(*domain.Block), persist func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.blocks {
		if c.blocks[i].ID == sectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	if err := persist(); err != nil {
		return fmt.Errorf("updating block metadata: %w", err)
	}
	apply(&c.blocks[idx])
	c.rebuildLocked()
	return nil
}

// NotifyStoreChanged reports an out-of-band store change. Notifications
// are rate limited and dropped entirely while the coordinator is mid-
// operation; the owning operation rebuilds on its own.
func (c *Coordinator) NotifyStoreChanged(projectID string) {
	if !c.refresh.Allow() {
		logger.Debug("coordinator: store notification throttled")
		return
	}
	c.post(storeChangedEvent{projectID: projectID})
}

func (c *Coordinator) handleStoreChanged(projectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.projectID == "" || projectID != c.projectID {
		return
	}
	if c.state != domain.StateIdle {
		logger.Debug("coordinator: ignoring store notification in state %s", c.state)
		return
	}
	if err := c.refetchLocked(context.Background()); err != nil {
		logger.Warn("coordinator: reloading after store change failed: %v", err)
		return
	}
	c.rebuildLocked()
	c.pushLocked()
}

// reparseSource is the debounced body of a source-surface edit: extract
// markers, re-parse the clean text into blocks, re-associate anchored ids,
// replace the project's blocks, and rebuild.
func (c *Coordinator) reparseSource(raw string, live func() bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !live() {
		return
	}
	if c.state != domain.StateIdle || c.projectID == "" {
		return
	}
	c.applySourceTextLocked(context.Background(), raw)
	c.rebuildLocked()
	// Push only to the structured surface; echoing the text back into the
	// surface that produced it would loop.
	if c.structured != nil {
		c.structured.SetContent(c.assembled)
	}
}

// applySourceTextLocked re-parses marker-inclusive text and replaces the
// project's blocks, preserving identity and section metadata for every
// block an anchor still names. While a zoom is active the source surface
// holds only the zoomed subtree, so the parsed blocks are spliced back
// into the active range; everything outside it stays untouched.
func (c *Coordinator) applySourceTextLocked(ctx context.Context, raw string) {
	clean, anchorList, bibOffsets := anchors.Extract(raw)
	parsed, parseOffsets := outline.ParseDocument(c.projectID, clean)

	oldByID := make(map[string]*domain.Block, len(c.blocks))
	for i := range c.blocks {
		oldByID[c.blocks[i].ID] = &c.blocks[i]
	}
	byOffset := make(map[int]int, len(parsed))
	for i := range parsed {
		byOffset[parseOffsets[parsed[i].ID]] = i
	}

	for _, a := range anchorList {
		i, ok := byOffset[a.Offset]
		if !ok {
			continue
		}
		old, ok := oldByID[a.ID]
		if !ok {
			continue
		}
		parsed[i].ID = a.ID
		parsed[i].Status = old.Status
		parsed[i].Tags = old.Tags
		parsed[i].WordGoal = old.WordGoal
		parsed[i].GoalType = old.GoalType
		parsed[i].Bibliography = old.Bibliography
		parsed[i].CreatedAt = old.CreatedAt
	}
	for _, off := range bibOffsets {
		if i, ok := byOffset[off]; ok {
			parsed[i].Bibliography = true
		}
	}

	if c.zoom != nil {
		parsed = c.spliceZoomLocked(parsed)
	}

	corrected, converged := outline.Enforce(outline.SectionsFromBlocks(parsed, nil))
	if !converged {
		logger.Warn("coordinator: hierarchy enforcement did not converge after re-parse")
	}
	updates := outline.HeadingUpdates(parsed, corrected)
	for _, u := range updates {
		for i := range parsed {
			if parsed[i].ID == u.ID {
				parsed[i].HeadingLevel = u.Level
				parsed[i].Fragment = u.Fragment
			}
		}
	}

	if err := c.store.ReplaceBlocks(ctx, c.projectID, parsed); err != nil {
		logger.Warn("coordinator: replacing blocks failed: %v", err)
		return
	}
	c.blocks = parsed
}

// spliceZoomLocked merges blocks re-parsed from the zoomed source text
// back into the full document. Blocks before the active range keep their
// place, the parsed blocks replace the range's contents, and blocks past
// the range follow. Bibliography blocks never enter the zoom view, so ones
// whose order falls inside the range land directly behind the spliced
// region. The merged list is renumbered whole.
func (c *Coordinator) spliceZoomLocked(parsed []domain.Block) []domain.Block {
	r := *c.zoom

	var before, after []domain.Block
	for _, b := range outline.SortBlocks(c.blocks) {
		switch {
		case b.SortOrder < r.Start:
			before = append(before, b)
		case b.Bibliography || !r.Contains(b.SortOrder):
			after = append(after, b)
		}
	}

	merged := make([]domain.Block, 0, len(before)+len(parsed)+len(after))
	merged = append(merged, before...)
	merged = append(merged, parsed...)
	merged = append(merged, after...)
	for i := range merged {
		merged[i].SortOrder = float64(i+1) * outline.OrderGap
	}
	return merged
}

// enforceAndPersistLocked repairs hierarchy violations in the loaded
// blocks and persists the corrections. Failures log and leave the
// in-memory corrections in place; a stuck non-idle state would be worse
// than a failed write.
func (c *Coordinator) enforceAndPersistLocked(ctx context.Context) {
	corrected, converged := outline.Enforce(outline.SectionsFromBlocks(c.blocks, nil))
	if !converged {
		logger.Warn("coordinator: hierarchy enforcement did not converge")
	}
	updates := outline.HeadingUpdates(c.blocks, corrected)
	if len(updates) == 0 {
		return
	}

	changes := make([]domain.SectionChange, 0, len(updates))
	for i := range updates {
		changes = append(changes, domain.SectionChange{
			ID:       updates[i].ID,
			Level:    &updates[i].Level,
			Fragment: &updates[i].Fragment,
		})
	}
	if err := c.store.ApplySectionChanges(ctx, c.projectID, changes); err != nil {
		logger.Warn("coordinator: persisting enforcement failed: %v", err)
	}

	for _, u := range updates {
		for i := range c.blocks {
			if c.blocks[i].ID == u.ID {
				c.blocks[i].HeadingLevel = u.Level
				c.blocks[i].Fragment = u.Fragment
			}
		}
	}
}

func (c *Coordinator) refetchLocked(ctx context.Context) error {
	blocks, err := c.store.FetchBlocks(ctx, c.projectID)
	if err != nil {
		return fmt.Errorf("fetching blocks: %w", err)
	}
	c.blocks = blocks
	return nil
}

// rebuildLocked reassembles the document and section list from the loaded
// blocks, applying the active zoom. The zoom range is recomputed first so
// order changes made while zoomed keep the range accurate.
func (c *Coordinator) rebuildLocked() {
	visible := c.blocks
	if c.zoomedID != "" {
		if r, err := outline.RangeFor(c.blocks, c.zoomedID); err == nil {
			c.zoom = &r
			visible = outline.FilterByRange(c.blocks, r)
		} else {
			// The zoomed heading is gone; fall back to the whole document.
			c.zoomedID = ""
			c.zoom = nil
		}
	}
	c.assembled, c.offsets = outline.Assemble(visible)
	c.sections = outline.SectionsFromBlocks(visible, c.offsets)
}

// bibliographyOffsetsLocked returns the assembled-text offsets of the
// visible bibliography blocks, for structural marker injection on handoff
// to the source surface. Empty while zoomed; the zoom view excludes
// bibliography content.
func (c *Coordinator) bibliographyOffsetsLocked() []int {
	var offs []int
	for i := range c.blocks {
		if !c.blocks[i].Bibliography {
			continue
		}
		if off, ok := c.offsets[c.blocks[i].ID]; ok {
			offs = append(offs, off)
		}
	}
	return offs
}

// pushLocked propagates the assembled document to the attached surfaces.
func (c *Coordinator) pushLocked() {
	if c.structured != nil {
		c.structured.SetContent(c.assembled)
	}
	if c.source != nil && c.mode == domain.ModeSource {
		c.source.SetContent(anchors.Inject(c.assembled, c.sections, c.bibliographyOffsetsLocked()))
	}
}
