package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrAccountNotFound is returned when no account matches the given email.
var ErrAccountNotFound = errors.New("account not found")

// CreateAccount registers a local login. Email uniqueness is enforced by the
// table; passwordHash must already be a bcrypt hash.
func (s *Store) CreateAccount(id, email, name, passwordHash string) (*Account, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO accounts (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, email, name, passwordHash, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return s.GetAccountByEmail(email)
}

func (s *Store) GetAccountByEmail(email string) (*Account, error) {
	a := &Account{}
	err := s.db.QueryRow(
		`SELECT id, email, name, password_hash, created_at FROM accounts WHERE email = ?`, email,
	).Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account %q: %w", email, err)
	}
	return a, nil
}

func (s *Store) AccountEmailExists(email string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM accounts WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}
