package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/foliohq/folio/pkg/domain"
)

// CertificationPayload is the create/update payload for a certification.
type CertificationPayload struct {
	Name                string      `json:"name"`
	IssuingOrganization string      `json:"issuingOrganization"`
	Year                int         `json:"year"`
	Description         string      `json:"description,omitempty"`
	CertificateLink     string      `json:"certificateLink,omitempty"`
	SkillIDs            []uuid.UUID `json:"skillIds,omitempty"`
}

// ListCertifications fetches all certifications.
func (c *Client) ListCertifications(ctx context.Context) ([]domain.Certification, error) {
	var certs []domain.Certification
	if err := c.get(ctx, "/certifications", &certs); err != nil {
		return nil, fmt.Errorf("client.ListCertifications: %w", err)
	}
	return certs, nil
}

// GetCertification fetches a single certification by id.
func (c *Client) GetCertification(ctx context.Context, id string) (*domain.Certification, error) {
	var cert domain.Certification
	if err := c.get(ctx, "/certifications/"+url.PathEscape(id), &cert); err != nil {
		return nil, fmt.Errorf("client.GetCertification: %w", err)
	}
	return &cert, nil
}

// CreateCertification creates a certification.
func (c *Client) CreateCertification(ctx context.Context, p CertificationPayload) (*domain.Certification, error) {
	var created domain.Certification
	if err := c.post(ctx, "/certifications", p, &created); err != nil {
		return nil, fmt.Errorf("client.CreateCertification: %w", err)
	}
	return &created, nil
}

// UpdateCertification updates a certification by id.
func (c *Client) UpdateCertification(ctx context.Context, id string, p CertificationPayload) (*domain.Certification, error) {
	var updated domain.Certification
	if err := c.put(ctx, "/certifications/"+url.PathEscape(id), p, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateCertification: %w", err)
	}
	return &updated, nil
}

// DeleteCertification deletes a certification by id.
func (c *Client) DeleteCertification(ctx context.Context, id string) error {
	if err := c.del(ctx, "/certifications/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("client.DeleteCertification: %w", err)
	}
	return nil
}
