package auth

import (
	"errors"
	"testing"

	"github.com/sadopc/studyflow/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewService(s)
}

func TestSignUpThenSignIn(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.SignUp("ada@example.com", "hunter22", "Ada")
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.Email != "ada@example.com" || created.Name != "Ada" {
		t.Fatalf("unexpected user: %+v", created)
	}

	user, err := svc.SignIn("ada@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != created.ID {
		t.Fatalf("sign-in identity mismatch: %q vs %q", user.ID, created.ID)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SignUp("ada@example.com", "hunter22", "Ada"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SignIn("ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SignIn("nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SignUp("ada@example.com", "hunter22", "Ada"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SignUp("ada@example.com", "other", "Imposter"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignUpEmptyCredentials(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SignUp("", "hunter22", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, err := svc.SignUp("ada@example.com", "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestEmailNormalization(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SignUp("  Ada@Example.COM ", "hunter22", "Ada"); err != nil {
		t.Fatal(err)
	}
	user, err := svc.SignIn("ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("normalized sign-in failed: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email stored, got %q", user.Email)
	}
}

func TestDemoUser(t *testing.T) {
	u := DemoUser()
	if u.ID != "demo-user" || u.Email != "demo@studyflow.app" || u.Name != "Demo User" {
		t.Fatalf("unexpected demo identity: %+v", u)
	}
}
