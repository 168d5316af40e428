package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"slotify/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the single durable "profile" record: the authenticated user
// plus bearer token, stored as the verbatim backend JSON. Everything else the
// client caches is a disposable projection; this blob is the only state that
// survives a restart.
type Store struct {
	db *sql.DB

	mu     sync.RWMutex
	cached *models.User
}

func Open(path string) (*Store, error) {
	// Создаем директорию для БД, если её нет
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile store: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to profile store: %v", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		// Единственная строка с профилем
		`CREATE TABLE IF NOT EXISTS profile (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            payload TEXT NOT NULL,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %v", query, err)
		}
	}
	return nil
}

// Load reads the persisted profile. Returns (nil, nil) when no session was
// saved; the process then starts unauthenticated.
func (s *Store) Load(ctx context.Context) (*models.User, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM profile WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	s.mu.Lock()
	s.cached = &user
	s.mu.Unlock()

	return &user, nil
}

// Save persists the profile blob, replacing any previous session.
func (s *Store) Save(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO profile (id, payload, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
    `, string(data))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s.mu.Lock()
	s.cached = user
	s.mu.Unlock()

	return nil
}

// Clear removes the persisted session. Subsequent restarts stay logged out.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profile WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}

	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()

	return nil
}

// Token returns the bearer credential of the cached profile, or "" when no
// profile exists. Requests without a token go out unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil {
		return ""
	}
	return s.cached.Token
}

// Payload returns the raw persisted JSON, mostly for diagnostics and tests.
func (s *Store) Payload(ctx context.Context) (string, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM profile WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return payload, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
