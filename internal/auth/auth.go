// Package auth resolves credentials to an identity. The store is the account
// backend; failures surface as plain error messages and never touch
// application state.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sadopc/studyflow/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")

	// ErrConfirmationRequired is returned by providers that defer session
	// issuance until the address is confirmed. The local provider never
	// returns it.
	ErrConfirmationRequired = errors.New("check your email for the confirmation link")
)

// AccountRepository is the slice of the store the service needs.
type AccountRepository interface {
	CreateAccount(id, email, name, passwordHash string) (*store.Account, error)
	GetAccountByEmail(email string) (*store.Account, error)
	AccountEmailExists(email string) (bool, error)
}

// Provider turns credentials into an identity.
type Provider interface {
	SignIn(email, password string) (*store.User, error)
	SignUp(email, password, name string) (*store.User, error)
}

// Service is the local provider: accounts live in the application database
// with bcrypt password hashes.
type Service struct {
	accounts AccountRepository
}

func NewService(accounts AccountRepository) *Service {
	return &Service{accounts: accounts}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) SignIn(email, password string) (*store.User, error) {
	account, err := s.accounts.GetAccountByEmail(normalizeEmail(email))
	if errors.Is(err, store.ErrAccountNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &store.User{ID: account.ID, Email: account.Email, Name: account.Name}, nil
}

func (s *Service) SignUp(email, password, name string) (*store.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	exists, err := s.accounts.AccountEmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.CreateAccount(uuid.NewString(), email, name, string(hash))
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &store.User{ID: account.ID, Email: account.Email, Name: account.Name}, nil
}

// DemoUser synthesizes the identity used when real authentication is
// bypassed.
func DemoUser() *store.User {
	return &store.User{
		ID:    "demo-user",
		Email: "demo@studyflow.app",
		Name:  "Demo User",
	}
}
