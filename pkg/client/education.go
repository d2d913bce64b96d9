package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/foliohq/folio/pkg/domain"
)

// EducationPayload is the create/update payload for an education entry.
type EducationPayload struct {
	Year            string `json:"year"`
	InstitutionName string `json:"institutionName"`
	Description     string `json:"description,omitempty"`
}

// ListEducation fetches all education entries.
func (c *Client) ListEducation(ctx context.Context) ([]domain.Education, error) {
	var entries []domain.Education
	if err := c.get(ctx, "/education", &entries); err != nil {
		return nil, fmt.Errorf("client.ListEducation: %w", err)
	}
	return entries, nil
}

// GetEducation fetches a single education entry by id.
func (c *Client) GetEducation(ctx context.Context, id string) (*domain.Education, error) {
	var e domain.Education
	if err := c.get(ctx, "/education/"+url.PathEscape(id), &e); err != nil {
		return nil, fmt.Errorf("client.GetEducation: %w", err)
	}
	return &e, nil
}

// CreateEducation creates an education entry.
func (c *Client) CreateEducation(ctx context.Context, p EducationPayload) (*domain.Education, error) {
	var created domain.Education
	if err := c.post(ctx, "/education", p, &created); err != nil {
		return nil, fmt.Errorf("client.CreateEducation: %w", err)
	}
	return &created, nil
}

// UpdateEducation updates an education entry by id.
func (c *Client) UpdateEducation(ctx context.Context, id string, p EducationPayload) (*domain.Education, error) {
	var updated domain.Education
	if err := c.put(ctx, "/education/"+url.PathEscape(id), p, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateEducation: %w", err)
	}
	return &updated, nil
}

// DeleteEducation deletes an education entry by id.
func (c *Client) DeleteEducation(ctx context.Context, id string) error {
	if err := c.del(ctx, "/education/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("client.DeleteEducation: %w", err)
	}
	return nil
}
