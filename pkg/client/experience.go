package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/foliohq/folio/pkg/domain"
)

// ExperiencePayload is the create/update payload for an experience entry.
// EndYear marshals to null while the position is current.
type ExperiencePayload struct {
	StartYear   int         `json:"startYear"`
	EndYear     *int        `json:"endYear"`
	CompanyName string      `json:"companyName"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location"`
	SkillIDs    []uuid.UUID `json:"skillIds,omitempty"`
}

// ListExperience fetches all experience entries.
func (c *Client) ListExperience(ctx context.Context) ([]domain.Experience, error) {
	var entries []domain.Experience
	if err := c.get(ctx, "/experience", &entries); err != nil {
		return nil, fmt.Errorf("client.ListExperience: %w", err)
	}
	return entries, nil
}

// GetExperience fetches a single experience entry by id.
func (c *Client) GetExperience(ctx context.Context, id string) (*domain.Experience, error) {
	var e domain.Experience
	if err := c.get(ctx, "/experience/"+url.PathEscape(id), &e); err != nil {
		return nil, fmt.Errorf("client.GetExperience: %w", err)
	}
	return &e, nil
}

// CreateExperience creates an experience entry.
func (c *Client) CreateExperience(ctx context.Context, p ExperiencePayload) (*domain.Experience, error) {
	var created domain.Experience
	if err := c.post(ctx, "/experience", p, &created); err != nil {
		return nil, fmt.Errorf("client.CreateExperience: %w", err)
	}
	return &created, nil
}

// UpdateExperience updates an experience entry by id.
func (c *Client) UpdateExperience(ctx context.Context, id string, p ExperiencePayload) (*domain.Experience, error) {
	var updated domain.Experience
	if err := c.put(ctx, "/experience/"+url.PathEscape(id), p, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateExperience: %w", err)
	}
	return &updated, nil
}

// DeleteExperience deletes an experience entry by id.
func (c *Client) DeleteExperience(ctx context.Context, id string) error {
	if err := c.del(ctx, "/experience/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("client.DeleteExperience: %w", err)
	}
	return nil
}
