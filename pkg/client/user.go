package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/foliohq/folio/pkg/domain"
)

// UserDetailsPayload is the create/update payload for the profile record.
// SocialMedias entries use the "icon|url" wire format.
type UserDetailsPayload struct {
	Name         string
	Role         string
	Description  string
	SocialMedias []string
	ProfilePhoto *Upload
}

func (p UserDetailsPayload) form() *Form {
	f := &Form{}
	f.Set("name", p.Name)
	f.Set("role", p.Role)
	if p.Description != "" {
		f.Set("description", p.Description)
	}
	f.SetAll("socialMedias[]", p.SocialMedias)
	if p.ProfilePhoto != nil {
		f.File("profilePhoto", *p.ProfilePhoto)
	}
	return f
}

// GetUserDetails fetches the profile record. A 404 means the profile has
// not been created yet; callers check with IsStatus.
func (c *Client) GetUserDetails(ctx context.Context) (*domain.UserDetails, error) {
	var d domain.UserDetails
	if err := c.get(ctx, "/user", &d); err != nil {
		return nil, fmt.Errorf("client.GetUserDetails: %w", err)
	}
	return &d, nil
}

// CreateUserDetails creates the profile record.
func (c *Client) CreateUserDetails(ctx context.Context, p UserDetailsPayload) (*domain.UserDetails, error) {
	var created domain.UserDetails
	if err := c.doMultipart(ctx, http.MethodPost, "/user", p.form(), &created); err != nil {
		return nil, fmt.Errorf("client.CreateUserDetails: %w", err)
	}
	return &created, nil
}

// UpdateUserDetails updates the profile record.
func (c *Client) UpdateUserDetails(ctx context.Context, p UserDetailsPayload) (*domain.UserDetails, error) {
	var updated domain.UserDetails
	if err := c.doMultipart(ctx, http.MethodPut, "/user", p.form(), &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateUserDetails: %w", err)
	}
	return &updated, nil
}
