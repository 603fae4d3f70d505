package sqlite

import (
	"context"
	"database/sql"
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

	"github.com/custodia-labs/reader-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reader-cli/internal/logger"
)

// dbFile is the database file name inside the data directory.
const dbFile = "reader.db"

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.reader/data/reader.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".reader", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// WAL mode lets the TUI read while an import watcher writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Debug("sqlite store opened at %s", dbPath)
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

// CaseStore returns a CaseStore interface backed by this store.
func (s *Store) CaseStore() driven.CaseStore {
	return &caseStore{store: s}
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// AnnotationStore returns an AnnotationStore interface backed by this store.
func (s *Store) AnnotationStore() driven.AnnotationStore {
	return &annotationStore{store: s}
}

// ViewStateStore returns a ViewStateStore interface backed by this store.
func (s *Store) ViewStateStore() driven.ViewStateStore {
	return &viewStateStore{store: s}
}

// migrate runs all pending up migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		logger.Debug("applied migration %s", name)
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// ==================== Case Store ====================

// caseStore implements driven.CaseStore.
type caseStore struct {
	store *Store
}

var _ driven.CaseStore = (*caseStore)(nil)

// SaveCase stores or updates a case.
func (s *caseStore) SaveCase(ctx context.Context, c *domain.Case) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO cases (id, veteran_name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET veteran_name = excluded.veteran_name
	`, c.ID, c.VeteranName)
	if err != nil {
		return fmt.Errorf("saving case: %w", err)
	}
	return nil
}

// GetCase retrieves a case by ID.
func (s *caseStore) GetCase(ctx context.Context, id string) (*domain.Case, error) {
	var c domain.Case
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id, veteran_name FROM cases WHERE id = ?", id).Scan(&c.ID, &c.VeteranName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning case: %w", err)
	}
	return &c, nil
}

// ListCases returns all cases ordered by ID.
func (s *caseStore) ListCases(ctx context.Context) ([]domain.Case, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT id, veteran_name FROM cases ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying cases: %w", err)
	}
	defer rows.Close()

	var cases []domain.Case //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c domain.Case
		if err := rows.Scan(&c.ID, &c.VeteranName); err != nil {
			return nil, fmt.Errorf("scanning case: %w", err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cases: %w", err)
	}
	return cases, nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `id, case_id, type, received_at, opened_by_current_user, tags,
	category_procedural, category_medical, category_other`

// SaveDocument stores or updates a document. The read flag is only ever
// raised by an update, never cleared.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			case_id = excluded.case_id,
			type = excluded.type,
			received_at = excluded.received_at,
			opened_by_current_user = MAX(documents.opened_by_current_user, excluded.opened_by_current_user),
			tags = excluded.tags,
			category_procedural = excluded.category_procedural,
			category_medical = excluded.category_medical,
			category_other = excluded.category_other
	`, doc.ID, doc.CaseID, doc.Type, nullTime(doc.ReceivedAt), doc.OpenedByCurrentUser, string(tagsJSON),
		doc.Categories.Procedural, doc.Categories.Medical, doc.Categories.Other)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns the documents of a case ordered by ID.
func (s *documentStore) ListDocuments(ctx context.Context, caseID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE case_id = ? ORDER BY id", caseID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// MarkRead sets the read flag of a document.
func (s *documentStore) MarkRead(ctx context.Context, id int64) (bool, error) {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE documents SET opened_by_current_user = 1 WHERE id = ? AND opened_by_current_user = 0", id)
	if err != nil {
		return false, fmt.Errorf("marking document read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marking document read: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	// Nothing updated: either already read or missing.
	var exists int
	err = s.store.db.QueryRowContext(ctx, "SELECT 1 FROM documents WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("checking document: %w", err)
	}
	return false, nil
}

func scanDocument(row scanner) (*domain.Document, error) {
	var doc domain.Document
	var receivedAt sql.NullTime
	var tagsJSON string
	err := row.Scan(&doc.ID, &doc.CaseID, &doc.Type, &receivedAt, &doc.OpenedByCurrentUser, &tagsJSON,
		&doc.Categories.Procedural, &doc.Categories.Medical, &doc.Categories.Other)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if err := json.Unmarshal([]byte(tagsJSON), &doc.Tags); err != nil {
		return nil, fmt.Errorf("unmarshalling tags: %w", err)
	}
	if len(doc.Tags) == 0 {
		doc.Tags = nil
	}
	if receivedAt.Valid {
		doc.ReceivedAt = receivedAt.Time.UTC()
	}
	return &doc, nil
}

// ==================== Annotation Store ====================

// annotationStore implements driven.AnnotationStore.
type annotationStore struct {
	store *Store
}

var _ driven.AnnotationStore = (*annotationStore)(nil)

// SaveAnnotation stores or updates an annotation.
func (s *annotationStore) SaveAnnotation(ctx context.Context, a *domain.Annotation) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO annotations (uuid, document_id, page, comment, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(uuid) DO UPDATE SET
			document_id = excluded.document_id,
			page = excluded.page,
			comment = excluded.comment
	`, a.UUID, a.DocumentID, a.Page, a.Comment, nullTime(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving annotation: %w", err)
	}
	return nil
}

// GetAnnotation retrieves an annotation by UUID.
func (s *annotationStore) GetAnnotation(ctx context.Context, uuid string) (*domain.Annotation, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT uuid, document_id, page, comment, created_at FROM annotations WHERE uuid = ?", uuid)
	a, err := scanAnnotation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// DeleteAnnotation removes an annotation.
func (s *annotationStore) DeleteAnnotation(ctx context.Context, uuid string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM annotations WHERE uuid = ?", uuid)
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAnnotations returns the annotations of a document in creation order.
func (s *annotationStore) ListAnnotations(ctx context.Context, documentID int64) ([]domain.Annotation, error) {
	return s.query(ctx, `
		SELECT uuid, document_id, page, comment, created_at
		FROM annotations WHERE document_id = ?
		ORDER BY created_at, rowid
	`, documentID)
}

// ListCaseAnnotations returns the annotations of a case in creation order.
func (s *annotationStore) ListCaseAnnotations(ctx context.Context, caseID string) ([]domain.Annotation, error) {
	return s.query(ctx, `
		SELECT a.uuid, a.document_id, a.page, a.comment, a.created_at
		FROM annotations a JOIN documents d ON d.id = a.document_id
		WHERE d.case_id = ?
		ORDER BY a.created_at, a.rowid
	`, caseID)
}

func (s *annotationStore) query(ctx context.Context, query string, args ...any) ([]domain.Annotation, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	var annotations []domain.Annotation //nolint:prealloc // size unknown from query
	for rows.Next() {
		a, err := scanAnnotation(rows)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}
	return annotations, nil
}

func scanAnnotation(row scanner) (*domain.Annotation, error) {
	var a domain.Annotation
	var createdAt sql.NullTime
	if err := row.Scan(&a.UUID, &a.DocumentID, &a.Page, &a.Comment, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning annotation: %w", err)
	}
	if createdAt.Valid {
		a.CreatedAt = createdAt.Time.UTC()
	}
	return &a, nil
}

// ==================== View State Store ====================

// viewStateStore implements driven.ViewStateStore.
type viewStateStore struct {
	store *Store
}

var _ driven.ViewStateStore = (*viewStateStore)(nil)

// GetViewState returns the saved list state of a case.
func (s *viewStateStore) GetViewState(ctx context.Context, caseID string) (*domain.ViewState, error) {
	var v domain.ViewState
	var categoryJSON, tagJSON, sortBy string
	var updatedAt sql.NullTime

	err := s.store.db.QueryRowContext(ctx, `
		SELECT case_id, category_filter, tag_filter, search_query, sort_by, sort_ascending,
			expand_all, scroll_top, last_read_doc_id, updated_at
		FROM view_states WHERE case_id = ?
	`, caseID).Scan(&v.CaseID, &categoryJSON, &tagJSON, &v.Criteria.SearchQuery, &sortBy,
		&v.Criteria.Sort.SortAscending, &v.ExpandAll, &v.ScrollTop, &v.LastReadDocID, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning view state: %w", err)
	}

	if err := json.Unmarshal([]byte(categoryJSON), &v.Criteria.Category); err != nil {
		return nil, fmt.Errorf("unmarshalling category filter: %w", err)
	}
	if err := json.Unmarshal([]byte(tagJSON), &v.Criteria.Tag); err != nil {
		return nil, fmt.Errorf("unmarshalling tag filter: %w", err)
	}
	v.Criteria.Sort.SortBy = domain.SortField(sortBy)
	if updatedAt.Valid {
		v.UpdatedAt = updatedAt.Time.UTC()
	}
	return &v, nil
}

// SaveViewState stores the list state of a case.
func (s *viewStateStore) SaveViewState(ctx context.Context, v *domain.ViewState) error {
	categoryJSON, err := marshalFlags(v.Criteria.Category)
	if err != nil {
		return fmt.Errorf("marshalling category filter: %w", err)
	}
	tagJSON, err := marshalFlags(v.Criteria.Tag)
	if err != nil {
		return fmt.Errorf("marshalling tag filter: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO view_states (case_id, category_filter, tag_filter, search_query, sort_by,
			sort_ascending, expand_all, scroll_top, last_read_doc_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(case_id) DO UPDATE SET
			category_filter = excluded.category_filter,
			tag_filter = excluded.tag_filter,
			search_query = excluded.search_query,
			sort_by = excluded.sort_by,
			sort_ascending = excluded.sort_ascending,
			expand_all = excluded.expand_all,
			scroll_top = excluded.scroll_top,
			last_read_doc_id = excluded.last_read_doc_id,
			updated_at = excluded.updated_at
	`, v.CaseID, categoryJSON, tagJSON, v.Criteria.SearchQuery, v.Criteria.Sort.SortBy.String(),
		v.Criteria.Sort.SortAscending, v.ExpandAll, v.ScrollTop, v.LastReadDocID, nullTime(v.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving view state: %w", err)
	}
	return nil
}

func marshalFlags(m map[string]bool) (string, error) {
	if m == nil {
		m = map[string]bool{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// nullTime maps the zero time to NULL. Times are stored in UTC so that
// the text ordering of the column follows the instant.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
