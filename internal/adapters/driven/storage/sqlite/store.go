package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quillworks-labs/quill-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
	"github.com/quillworks-labs/quill-cli/internal/core/ports/driven"
	"github.com/quillworks-labs/quill-cli/internal/outline"
)

// Store is a unified SQLite-based storage that provides access to the
// project and block store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.quill/data/quill.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".quill", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "quill.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// BlockStore returns a BlockStore interface backed by this store.
func (s *Store) BlockStore() driven.BlockStore {
	return &blockStore{store: s}
}

// ProjectStore returns a ProjectStore interface backed by this store.
func (s *Store) ProjectStore() driven.ProjectStore {
	return &projectStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Project Store ====================

// projectStore implements driven.ProjectStore.
type projectStore struct {
	store *Store
}

var _ driven.ProjectStore = (*projectStore)(nil)

// SaveProject stores or updates a project.
func (s *projectStore) SaveProject(ctx context.Context, project domain.Project) error {
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at
	`, project.ID, project.Name, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	return nil
}

// GetProject retrieves a project by ID.
func (s *projectStore) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM projects WHERE id = ?
	`, id)

	var project domain.Project
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&project.ID, &project.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	if createdAt.Valid {
		project.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		project.UpdatedAt = updatedAt.Time
	}
	return &project, nil
}

// ListProjects returns all projects sorted by name.
func (s *projectStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM projects ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project //nolint:prealloc // size unknown from query
	for rows.Next() {
		var project domain.Project
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&project.ID, &project.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		if createdAt.Valid {
			project.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			project.UpdatedAt = updatedAt.Time
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// DeleteProject removes a project; its blocks go with it via the foreign
// key cascade.
func (s *projectStore) DeleteProject(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// ==================== Block Store ====================

// blockStore implements driven.BlockStore.
type blockStore struct {
	store *Store
}

var _ driven.BlockStore = (*blockStore)(nil)

const blockColumns = `id, project_id, type, sort_order, heading_level, fragment,
		status, tags, word_goal, goal_type, bibliography, created_at, updated_at`

// FetchBlocks returns every block of a project in ascending sortOrder.
func (s *blockStore) FetchBlocks(ctx context.Context, projectID string) ([]domain.Block, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+blockColumns+`
		FROM blocks WHERE project_id = ? ORDER BY sort_order
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying blocks: %w", err)
	}
	defer rows.Close()

	var blocks []domain.Block //nolint:prealloc // size unknown from query
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks: %w", err)
	}
	return blocks, nil
}

// FetchBlock retrieves a single block by ID.
func (s *blockStore) FetchBlock(ctx context.Context, id string) (*domain.Block, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+blockColumns+`
		FROM blocks WHERE id = ?
	`, id)

	block, err := scanBlock(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return block, nil
}

// ReplaceBlocks replaces a project's whole block list in one transaction.
func (s *blockStore) ReplaceBlocks(ctx context.Context, projectID string, blocks []domain.Block) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM blocks WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("clearing blocks: %w", err)
	}

	now := time.Now().UTC()
	for i := range blocks {
		b := blocks[i]
		b.ProjectID = projectID
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		b.UpdatedAt = now
		if err := insertBlock(ctx, tx, &b); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing blocks: %w", err)
	}
	return nil
}

// ReorderAllBlocks atomically applies a reorder, moving body blocks with
// their owning heading and rewriting corrected heading fragments.
func (s *blockStore) ReorderAllBlocks(ctx context.Context, projectID string, sections []domain.Section, headingUpdates []domain.HeadingUpdate) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	rows, err := tx.QueryContext(ctx, `
		SELECT `+blockColumns+`
		FROM blocks WHERE project_id = ? ORDER BY sort_order
	`, projectID)
	if err != nil {
		return fmt.Errorf("querying blocks: %w", err)
	}
	var blocks []domain.Block
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			rows.Close()
			return err
		}
		blocks = append(blocks, *block)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating blocks: %w", err)
	}
	rows.Close()

	now := time.Now().UTC()
	for _, b := range outline.ApplyReorder(blocks, sections, headingUpdates) {
		_, err := tx.ExecContext(ctx, `
			UPDATE blocks SET sort_order = ?, heading_level = ?, fragment = ?, updated_at = ?
			WHERE id = ?
		`, b.SortOrder, b.HeadingLevel, b.Fragment, now, b.ID)
		if err != nil {
			return fmt.Errorf("reordering block %s: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reorder: %w", err)
	}
	return nil
}

// UpdateBlockStatus sets the section status of a heading block.
func (s *blockStore) UpdateBlockStatus(ctx context.Context, id, status string) error {
	return s.updateField(ctx, id, "status", status)
}

// UpdateBlockWordGoal sets the section writing goal of a heading block.
func (s *blockStore) UpdateBlockWordGoal(ctx context.Context, id string, goal int) error {
	return s.updateField(ctx, id, "word_goal", goal)
}

// UpdateBlockGoalType sets the goal measurement of a heading block.
func (s *blockStore) UpdateBlockGoalType(ctx context.Context, id string, goalType domain.GoalType) error {
	return s.updateField(ctx, id, "goal_type", string(goalType))
}

// UpdateBlockTags sets the tags of a heading block.
func (s *blockStore) UpdateBlockTags(ctx context.Context, id string, tags []string) error {
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}
	return s.updateField(ctx, id, "tags", string(tagsJSON))
}

func (s *blockStore) updateField(ctx context.Context, id, column string, value any) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE blocks SET "+column+" = ?, updated_at = ? WHERE id = ?",
		value, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating block %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplySectionChanges applies per-id field updates in one transaction.
func (s *blockStore) ApplySectionChanges(ctx context.Context, projectID string, changes []domain.SectionChange) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	now := time.Now().UTC()
	for _, ch := range changes {
		row := tx.QueryRowContext(ctx, `
			SELECT `+blockColumns+`
			FROM blocks WHERE id = ? AND project_id = ?
		`, ch.ID, projectID)
		block, err := scanBlock(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue // Block disappeared; nothing to update
			}
			return err
		}

		if ch.Fragment != nil {
			block.Fragment = *ch.Fragment
		}
		if ch.Level != nil {
			block.HeadingLevel = *ch.Level
		}
		if ch.Status != nil {
			block.Status = *ch.Status
		}
		if ch.Tags != nil {
			block.Tags = *ch.Tags
		}
		if ch.WordGoal != nil {
			block.WordGoal = *ch.WordGoal
		}
		if ch.GoalType != nil {
			block.GoalType = *ch.GoalType
		}

		tagsJSON, err := json.Marshal(block.Tags)
		if err != nil {
			return fmt.Errorf("marshalling tags: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE blocks SET fragment = ?, heading_level = ?, status = ?, tags = ?,
				word_goal = ?, goal_type = ?, updated_at = ?
			WHERE id = ?
		`, block.Fragment, block.HeadingLevel, block.Status, string(tagsJSON),
			block.WordGoal, string(block.GoalType), now, block.ID)
		if err != nil {
			return fmt.Errorf("updating block %s: %w", ch.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing changes: %w", err)
	}
	return nil
}

// execer covers *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertBlock(ctx context.Context, db execer, b *domain.Block) error {
	tagsJSON, err := json.Marshal(b.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO blocks (`+blockColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.ProjectID, string(b.Type), b.SortOrder, b.HeadingLevel, b.Fragment,
		b.Status, string(tagsJSON), b.WordGoal, string(b.GoalType), b.Bibliography,
		b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting block %s: %w", b.ID, err)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlock(row rowScanner) (*domain.Block, error) {
	var block domain.Block
	var blockType, goalType, tagsJSON string
	var createdAt, updatedAt sql.NullTime
	err := row.Scan(&block.ID, &block.ProjectID, &blockType, &block.SortOrder,
		&block.HeadingLevel, &block.Fragment, &block.Status, &tagsJSON,
		&block.WordGoal, &goalType, &block.Bibliography, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning block: %w", err)
	}

	block.Type = domain.BlockType(blockType)
	block.GoalType = domain.GoalType(goalType)
	if tagsJSON != "" && tagsJSON != "null" {
		if err := json.Unmarshal([]byte(tagsJSON), &block.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}
	if createdAt.Valid {
		block.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		block.UpdatedAt = updatedAt.Time
	}
	return &block, nil
}
