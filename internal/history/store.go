package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"blossom/internal/config"
	"blossom/internal/emotion"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users clear the history database after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Entry is one recorded analysis.
type Entry struct {
	ID         int64
	Kind       string
	Source     string
	Diagnosis  string
	Confidence float64
	Backend    string
	Emotions   map[string]float64
	CreatedAt  time.Time
}

// Store persists analysis history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the location of the backing database file.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Record stores one completed analysis and returns it with its assigned ID.
func (s *Store) Record(ctx context.Context, entry Entry) (*Entry, error) {
	if entry.Kind == "" {
		return nil, errors.New("record analysis: empty kind")
	}
	now := time.Now().UTC()
	entry.CreatedAt = now

	var emotionsJSON any
	if entry.Emotions != nil {
		encoded, err := json.Marshal(entry.Emotions)
		if err != nil {
			return nil, fmt.Errorf("marshal emotions: %w", err)
		}
		emotionsJSON = string(encoded)
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO analyses (kind, source, diagnosis, confidence, backend, emotions_json, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Kind,
		entry.Source,
		entry.Diagnosis,
		entry.Confidence,
		entry.Backend,
		emotionsJSON,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert analysis: %w", err)
	}
	entry.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &entry, nil
}

// RecordVector is a convenience wrapper for callers holding an emotion vector.
func (s *Store) RecordVector(ctx context.Context, kind, source, diagnosis string, confidence float64, backend string, vector emotion.Vector) (*Entry, error) {
	return s.Record(ctx, Entry{
		Kind:       kind,
		Source:     source,
		Diagnosis:  diagnosis,
		Confidence: confidence,
		Backend:    backend,
		Emotions:   vector.Map(),
	})
}

// Recent returns the newest entries, most recent first. A non-positive limit
// defaults to 50.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, kind, source, diagnosis, confidence, backend, emotions_json, created_at
         FROM analyses ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return entries, nil
}

// Counts returns how many recorded analyses carry each diagnosis label.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT diagnosis, COUNT(1) FROM analyses GROUP BY diagnosis")
	if err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var diagnosis string
		var count int
		if err := rows.Scan(&diagnosis, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[diagnosis] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var entry Entry
	var emotionsJSON sql.NullString
	var createdAt string
	if err := rows.Scan(
		&entry.ID,
		&entry.Kind,
		&entry.Source,
		&entry.Diagnosis,
		&entry.Confidence,
		&entry.Backend,
		&emotionsJSON,
		&createdAt,
	); err != nil {
		return Entry{}, fmt.Errorf("scan analysis: %w", err)
	}
	if emotionsJSON.Valid && emotionsJSON.String != "" {
		if err := json.Unmarshal([]byte(emotionsJSON.String), &entry.Emotions); err != nil {
			return Entry{}, fmt.Errorf("decode emotions: %w", err)
		}
	}
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		entry.CreatedAt = parsed
	}
	return entry, nil
}
