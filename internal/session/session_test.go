package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

type fakeAuth struct {
	res *client.AuthResult
	err error
}

func (f fakeAuth) Login(context.Context, string, string) (*client.AuthResult, error) {
	return f.res, f.err
}

func TestLoginPersistsAndRestores(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	auth := fakeAuth{res: &client.AuthResult{
		User:  domain.User{Username: "jdoe", Email: "jdoe@example.com"},
		Token: "tok-123",
	}}
	u, err := s.Login(context.Background(), auth, "jdoe", "hunter2")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if u.Username != "jdoe" {
		t.Errorf("Username = %q, want %q", u.Username, "jdoe")
	}
	if !s.Authenticated() {
		t.Error("Authenticated() = false after login")
	}

	// A fresh store restores the same state without a network call.
	restored := New(dir)
	restored.Restore()
	if !restored.Authenticated() {
		t.Fatal("restored store is not authenticated")
	}
	if restored.Token() != "tok-123" {
		t.Errorf("Token() = %q, want %q", restored.Token(), "tok-123")
	}
	if got := restored.User(); got == nil || got.Email != "jdoe@example.com" {
		t.Errorf("User() = %+v, want persisted identity", got)
	}
}

func TestLoginFailureLeavesStoreSignedOut(t *testing.T) {
	s := New(t.TempDir())

	auth := fakeAuth{err: &client.APIError{Status: 401, Message: "invalid credentials"}}
	_, err := s.Login(context.Background(), auth, "jdoe", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want wrapped *client.APIError", err)
	}
	if s.Authenticated() {
		t.Error("Authenticated() = true after failed login")
	}
}

func TestLogoutClearsState(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	auth := fakeAuth{res: &client.AuthResult{User: domain.User{Username: "jdoe"}, Token: "tok"}}
	if _, err := s.Login(context.Background(), auth, "jdoe", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if s.Authenticated() {
		t.Error("Authenticated() = true after logout")
	}

	restored := New(dir)
	restored.Restore()
	if restored.Authenticated() {
		t.Error("restored store is authenticated after logout")
	}
}

func TestRestoreOnEmptyDirIsSignedOut(t *testing.T) {
	s := New(t.TempDir())
	s.Restore()
	if s.Authenticated() {
		t.Error("Authenticated() = true with no persisted state")
	}
	if s.User() != nil {
		t.Error("User() != nil with no persisted state")
	}
}

func TestTokenExpiry(t *testing.T) {
	dir := t.TempDir()
	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "jdoe",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	s := New(dir)
	auth := fakeAuth{res: &client.AuthResult{User: domain.User{Username: "jdoe"}, Token: signed}}
	if _, err := s.Login(context.Background(), auth, "jdoe", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	got, okExp := s.TokenExpiry()
	if !okExp {
		t.Fatal("TokenExpiry() ok = false for a JWT with exp")
	}
	if !got.Equal(exp) {
		t.Errorf("TokenExpiry() = %v, want %v", got, exp)
	}
}

func TestTokenExpiryOpaqueToken(t *testing.T) {
	s := New(t.TempDir())
	auth := fakeAuth{res: &client.AuthResult{User: domain.User{Username: "jdoe"}, Token: "not-a-jwt"}}
	if _, err := s.Login(context.Background(), auth, "jdoe", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if _, okExp := s.TokenExpiry(); okExp {
		t.Error("TokenExpiry() ok = true for an opaque token")
	}
}
