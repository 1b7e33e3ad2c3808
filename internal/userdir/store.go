// Package userdir caches the board's user directory in a local SQLite file.
// The mention resolver reads from the cache, so autocomplete works before
// the first directory fetch of a session completes and across restarts.
package userdir

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/openagora/agora/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    display_name TEXT NOT NULL,
    avatar_url TEXT NOT NULL DEFAULT '',
    refreshed_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
`

// Store is the on-disk user directory cache.
type Store struct {
	db *sql.DB
}

// Open creates or opens the cache at path, creating parent directories as
// needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Replace swaps the cached directory for a freshly fetched one.
func (s *Store) Replace(users []types.User) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM users"); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	stmt, err := tx.Prepare(
		"INSERT INTO users (id, username, display_name, avatar_url, refreshed_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, user := range users {
		if _, err := stmt.Exec(user.ID, user.Username, user.DisplayName, user.AvatarURL, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Upsert inserts or refreshes a single user, e.g. an author seen on a live
// message who predates the cached fetch.
func (s *Store) Upsert(user types.User) error {
	_, err := s.db.Exec(`
INSERT INTO users (id, username, display_name, avatar_url, refreshed_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    username = excluded.username,
    display_name = excluded.display_name,
    avatar_url = excluded.avatar_url,
    refreshed_at = excluded.refreshed_at`,
		user.ID, user.Username, user.DisplayName, user.AvatarURL, time.Now().UnixMilli())
	return err
}

// All returns the cached directory ordered by username.
func (s *Store) All() ([]types.User, error) {
	rows, err := s.db.Query(
		"SELECT id, username, display_name, avatar_url FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var user types.User
		if err := rows.Scan(&user.ID, &user.Username, &user.DisplayName, &user.AvatarURL); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Get returns one cached user by id.
func (s *Store) Get(id string) (*types.User, error) {
	var user types.User
	err := s.db.QueryRow(
		"SELECT id, username, display_name, avatar_url FROM users WHERE id = ?", id).
		Scan(&user.ID, &user.Username, &user.DisplayName, &user.AvatarURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
