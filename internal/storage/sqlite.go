package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fintrack/internal/log"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteKV stores values in a SQLite table scoped to one session. Close ends
// the session and removes its rows.
type SQLiteKV struct {
	db      *sql.DB
	session string
	logger  *log.Logger
}

// NewSQLiteKV opens dbPath, runs migrations and starts a fresh session.
func NewSQLiteKV(dbPath string, logger *log.Logger) (*SQLiteKV, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if logger == nil {
		logger = log.Discard()
	}
	kv := &SQLiteKV{
		db:      db,
		session: uuid.NewString(),
		logger:  logger.WithComponent(log.ComponentStorage),
	}
	kv.logger.Debug("Session opened", log.FieldSession, kv.session)
	return kv, nil
}

// Session returns the id scoping this store's rows.
func (s *SQLiteKV) Session() string {
	return s.session
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_kv WHERE session_id = ? AND key = ?`,
		s.session, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_kv (session_id, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.session, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session_kv WHERE session_id = ? AND key = ?`, s.session, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close drops every row of the session and closes the database.
func (s *SQLiteKV) Close() error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec(`DELETE FROM session_kv WHERE session_id = ?`, s.session)
	if err != nil {
		s.logger.Warn("Failed to clear session", log.FieldSession, s.session, log.FieldError, err)
	}
	return errors.Join(err, s.db.Close())
}
