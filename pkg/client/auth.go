package client

import (
	"context"
	"fmt"

	"github.com/foliohq/folio/pkg/domain"
)

// Credentials is the login payload. Identifier is an email or username.
type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

// AuthResult is the data payload of a successful login or registration.
type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Login exchanges credentials for an identity and bearer token. Invalid
// credentials surface as an APIError carrying the server's message.
func (c *Client) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	var res AuthResult
	if err := c.post(ctx, "/auth/login", Credentials{Identifier: identifier, Password: password}, &res); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &res, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var res AuthResult
	if err := c.post(ctx, "/auth/register", req, &res); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &res, nil
}

// Me returns the identity behind the current token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/auth/me", &u); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &u, nil
}
