// Package sqlite provides a SQLite-backed HistoryStore.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/supportagent/store"
)

// SqliteHistoryStore implements store.HistoryStore using SQLite
type SqliteHistoryStore struct {
	db        *sql.DB
	tableName string
}

var _ store.HistoryStore = (*SqliteHistoryStore)(nil)

// SqliteOptions configuration for SQLite connection
type SqliteOptions struct {
	Path      string
	TableName string // Default "histories"
}

// NewSqliteHistoryStore creates a new SQLite history store
func NewSqliteHistoryStore(opts SqliteOptions) (*SqliteHistoryStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "histories"
	}

	s := &SqliteHistoryStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SqliteHistoryStore) initSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			thread_id TEXT PRIMARY KEY,
			messages TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SqliteHistoryStore) Close() error {
	return s.db.Close()
}

// Save stores the full message history for a thread
func (s *SqliteHistoryStore) Save(ctx context.Context, threadID string, messages []llms.MessageContent) error {
	data, err := store.EncodeMessages(messages)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (thread_id, messages, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (thread_id) DO UPDATE SET messages = excluded.messages, updated_at = excluded.updated_at
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, threadID, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Load retrieves the message history for a thread
func (s *SqliteHistoryStore) Load(ctx context.Context, threadID string) ([]llms.MessageContent, error) {
	query := fmt.Sprintf(`SELECT messages FROM %s WHERE thread_id = ?`, s.tableName)

	var data string
	err := s.db.QueryRowContext(ctx, query, threadID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return store.DecodeMessages([]byte(data))
}

// Delete removes the history for a thread
func (s *SqliteHistoryStore) Delete(ctx context.Context, threadID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE thread_id = ?`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, threadID); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	return nil
}
