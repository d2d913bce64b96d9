// Package session owns the authenticated identity and the persisted
// credential token. The app shell is the only writer; everything else
// reads value copies. All mutation happens on the UI goroutine.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Authenticator is the remote login surface the store delegates to.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (*client.AuthResult, error)
}

// Store holds the current session and persists it under dir so a restart
// keeps the user signed in until the token is proven invalid.
type Store struct {
	dir   string
	user  *domain.User
	token string
}

// New creates a store rooted at dir. Call Restore to load persisted state.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Restore re-reads persisted identity and token from disk. No network
// call; a missing or partial state simply leaves the store signed out.
func (s *Store) Restore() {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return
	}

	userData, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return
	}
	var u domain.User
	if err := json.Unmarshal(userData, &u); err != nil {
		return
	}

	s.token = token
	s.user = &u
}

// Login delegates to the remote auth endpoint and, on success, persists
// identity and token and updates in-memory state. Invalid credentials
// surface the server's message via client.Message.
func (s *Store) Login(ctx context.Context, auth Authenticator, identifier, password string) (*domain.User, error) {
	res, err := auth.Login(ctx, identifier, password)
	if err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}
	if err := s.persist(res.User, res.Token); err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}
	u := res.User
	s.user = &u
	s.token = res.Token
	return &u, nil
}

// Adopt stores an already-authenticated identity, used after registration
// signs the new account in.
func (s *Store) Adopt(u domain.User, token string) error {
	if err := s.persist(u, token); err != nil {
		return fmt.Errorf("session.Adopt: %w", err)
	}
	s.user = &u
	s.token = token
	return nil
}

// Logout clears persisted token and identity and resets state.
func (s *Store) Logout() error {
	s.user = nil
	s.token = ""
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("session.Logout: %w", err)
		}
	}
	return nil
}

// Authenticated reports whether a signed-in identity is present.
func (s *Store) Authenticated() bool {
	return s.user != nil && s.token != ""
}

// User returns a copy of the current identity, or nil when signed out.
func (s *Store) User() *domain.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the persisted credential token, empty when signed out.
func (s *Store) Token() string {
	return s.token
}

// TokenExpiry reads the exp claim from the stored token without verifying
// the signature (the server is the authority; this is display-only).
func (s *Store) TokenExpiry() (time.Time, bool) {
	if s.token == "" {
		return time.Time{}, false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) persist(u domain.User, token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	userData, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), userData, 0o600); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
