// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists sessions and their dataset results in SQLite, so a
// later invocation can search datasets for use cases generated earlier.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/usecase-scout/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "scout.db"

	defaultListLimit = 20

	// Fixed-width so created_at orders lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Store manages the session SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the database at dataDir/index/scout.db and creates
// the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			industry TEXT NOT NULL,
			trends TEXT NOT NULL,
			generation TEXT NOT NULL,
			use_cases TEXT NOT NULL,
			keywords TEXT NOT NULL,
			model TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at)`,
		`CREATE TABLE IF NOT EXISTS dataset_runs (
			session_id TEXT PRIMARY KEY REFERENCES sessions(id) ON DELETE CASCADE,
			keywords TEXT NOT NULL,
			providers TEXT NOT NULL,
			warnings TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS dataset_results (
			session_id TEXT NOT NULL REFERENCES dataset_runs(session_id) ON DELETE CASCADE,
			keyword TEXT NOT NULL,
			provider TEXT NOT NULL,
			rank INTEGER NOT NULL,
			identifier TEXT,
			title TEXT,
			url TEXT,
			PRIMARY KEY (session_id, keyword, provider, rank)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveSession inserts or replaces sess.
func (s *Store) SaveSession(ctx context.Context, sess types.Session) error {
	if sess.ID == "" {
		return fmt.Errorf("session has no ID")
	}
	useCasesJSON, err := json.Marshal(nonNil(sess.UseCases))
	if err != nil {
		return fmt.Errorf("marshaling use cases: %w", err)
	}
	keywordsJSON, err := json.Marshal(nonNil(sess.Keywords))
	if err != nil {
		return fmt.Errorf("marshaling keywords: %w", err)
	}

	created := sess.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, industry, trends, generation, use_cases, keywords, model, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			industry=excluded.industry, trends=excluded.trends, generation=excluded.generation,
			use_cases=excluded.use_cases, keywords=excluded.keywords, model=excluded.model,
			created_at=excluded.created_at`,
		sess.ID, sess.Industry, sess.Trends, sess.Generation,
		string(useCasesJSON), string(keywordsJSON), sess.Model,
		created.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", sess.ID, err)
	}
	return nil
}

const sessionColumns = `id, industry, trends, generation, use_cases, keywords, model, created_at`

// GetSession returns the session with the given ID, or ErrNotFound.
func (s *Store) GetSession(ctx context.Context, id string) (types.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, err
}

// LatestSession returns the most recently created session, or ErrNotFound
// when the store is empty.
func (s *Store) LatestSession(ctx context.Context) (types.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Session{}, ErrNotFound
	}
	return sess, err
}

// ListSessions returns up to limit sessions, newest first. A limit <= 0 uses 20.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]types.Session, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	sessions := []types.Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and its dataset results.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (types.Session, error) {
	var (
		sess               types.Session
		useCases, keywords string
		model              sql.NullString
		createdAt          string
	)
	if err := row.Scan(&sess.ID, &sess.Industry, &sess.Trends, &sess.Generation,
		&useCases, &keywords, &model, &createdAt); err != nil {
		return types.Session{}, err
	}
	if err := json.Unmarshal([]byte(useCases), &sess.UseCases); err != nil {
		return types.Session{}, fmt.Errorf("decoding use cases for %s: %w", sess.ID, err)
	}
	if err := json.Unmarshal([]byte(keywords), &sess.Keywords); err != nil {
		return types.Session{}, fmt.Errorf("decoding keywords for %s: %w", sess.ID, err)
	}
	sess.Model = model.String
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		sess.CreatedAt = t
	}
	return sess, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
