// File: history.go
// Title: Invocation History Store
// Description: Implements persistence of executed chat commands. The
//              default store is SQLite-backed; hosts embedding the engine
//              can provide their own HistoryStore implementation.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package session

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // enable the "sqlite3" SQL driver

	mcerror "github.com/msto63/mChat/core/error"
)

// HistoryEntry records one executed chat input
type HistoryEntry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Input     string    `json:"input"`
	Command   string    `json:"command"`
	Success   bool      `json:"success"`
	Response  string    `json:"response,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryStore defines the interface for invocation history persistence
type HistoryStore interface {
	// Record stores one history entry
	Record(ctx context.Context, entry *HistoryEntry) error

	// Recent returns up to limit entries for the session, newest first
	Recent(ctx context.Context, sessionID string, limit int) ([]*HistoryEntry, error)

	// Close releases store resources
	Close() error
}

// SQLiteHistoryStore implements HistoryStore using SQLite
type SQLiteHistoryStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// HistoryConfig holds configuration for the SQLite store
type HistoryConfig struct {
	Path string
}

// NewSQLiteHistoryStore creates a SQLite-backed history store, creating
// the database file and schema if necessary
func NewSQLiteHistoryStore(cfg HistoryConfig) (*SQLiteHistoryStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, mcerror.Wrap(err, "failed to create history directory").
			WithCode(mcerror.CodeHistoryError).
			WithDetail("dir", dir)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, mcerror.Wrap(err, "failed to open history database").
			WithCode(mcerror.CodeHistoryError).
			WithDetail("path", cfg.Path)
	}

	store := &SQLiteHistoryStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteHistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		input TEXT NOT NULL,
		command TEXT NOT NULL DEFAULT '',
		success INTEGER NOT NULL DEFAULT 0,
		response TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_history_session ON history(session_id, created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return mcerror.Wrap(err, "failed to initialize history schema").
			WithCode(mcerror.CodeHistoryError)
	}
	return nil
}

// Record implements HistoryStore
func (s *SQLiteHistoryStore) Record(ctx context.Context, entry *HistoryEntry) error {
	if entry == nil {
		return mcerror.New("history entry cannot be nil").
			WithCode(mcerror.CodeInvalidInput)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, session_id, user_id, input, command, success, response, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.SessionID, entry.UserID, entry.Input, entry.Command,
		entry.Success, entry.Response, entry.CreatedAt)
	if err != nil {
		return mcerror.Wrap(err, "failed to record history entry").
			WithCode(mcerror.CodeHistoryError).
			WithDetail("sessionID", entry.SessionID)
	}
	return nil
}

// Recent implements HistoryStore
func (s *SQLiteHistoryStore) Recent(ctx context.Context, sessionID string, limit int) ([]*HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, user_id, input, command, success, response, created_at
		FROM history WHERE session_id = ?
		ORDER BY created_at DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, mcerror.Wrap(err, "failed to query history").
			WithCode(mcerror.CodeHistoryError).
			WithDetail("sessionID", sessionID)
	}
	defer rows.Close()

	var entries []*HistoryEntry
	for rows.Next() {
		entry := &HistoryEntry{}
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.UserID, &entry.Input,
			&entry.Command, &entry.Success, &entry.Response, &entry.CreatedAt); err != nil {
			return nil, mcerror.Wrap(err, "failed to scan history entry").
				WithCode(mcerror.CodeHistoryError)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mcerror.Wrap(err, "failed to iterate history entries").
			WithCode(mcerror.CodeHistoryError)
	}
	return entries, nil
}

// Close implements HistoryStore
func (s *SQLiteHistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// NopHistoryStore discards all history operations. It is used when
// history persistence is disabled.
type NopHistoryStore struct{}

// Record implements HistoryStore
func (NopHistoryStore) Record(context.Context, *HistoryEntry) error { return nil }

// Recent implements HistoryStore
func (NopHistoryStore) Recent(context.Context, string, int) ([]*HistoryEntry, error) {
	return nil, nil
}

// Close implements HistoryStore
func (NopHistoryStore) Close() error { return nil }
