package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// stateKey is the fixed namespace the serialized application state lives
// under. It matches the storage name the product has always used.
const stateKey = "studyflow-storage"

// Store owns the authoritative application state. Every mutation updates the
// in-memory snapshot and synchronously commits the whole serialized state to
// the database, so a reload always observes the most recent mutation.
type Store struct {
	db    *sql.DB
	state State
}

// New opens (or creates) the SQLite database at dbPath, runs migrations and
// rehydrates the persisted application state. A missing or corrupt state
// record falls back to defaults; it never prevents startup.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.loadState()
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS app_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS accounts (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('week_start',    'sunday'),
		('notifications', 'default');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// loadState rehydrates the persisted state record. An absent record means
// first run; a record that fails to decode is discarded in favor of defaults
// rather than aborting startup. Fields missing from an older record keep
// their zero-value defaults because decoding merges into a fresh State.
func (s *Store) loadState() {
	s.state = State{}

	var raw string
	if err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, stateKey).Scan(&raw); err != nil {
		return
	}

	var loaded State
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		return
	}
	s.state = loaded
	if s.state.User == nil {
		s.state.IsAuthenticated = false
	}
}

// commit serializes the complete state under the fixed namespace key. It is
// called after every mutation, before the mutation returns.
func (s *Store) commit() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO app_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		stateKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// DefaultDBPath returns ~/.config/studyflow/studyflow.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studyflow", "studyflow.db"), nil
}
