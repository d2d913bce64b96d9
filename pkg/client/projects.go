package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/foliohq/folio/pkg/domain"
)

// ProjectPayload is the create/update payload for a project. Projects are
// always multipart: cover and content images travel as file parts, and
// ExistingContentImages re-submits the persisted references an update keeps.
type ProjectPayload struct {
	Title                 string
	Slug                  string
	Description           string
	Content               string
	Published             bool
	PublishedAt           *time.Time
	Highlighted           bool
	SkillIDs              []uuid.UUID
	CoverImage            *Upload
	ContentImages         []Upload
	ExistingContentImages []string
}

func (p ProjectPayload) form() (*Form, error) {
	f := &Form{}
	f.Set("title", p.Title)
	f.Set("slug", p.Slug)
	f.Set("description", p.Description)
	f.Set("content", p.Content)
	f.Set("published", strconv.FormatBool(p.Published))
	if p.PublishedAt != nil {
		f.Set("publishedAt", p.PublishedAt.Format(time.RFC3339))
	}
	f.Set("highlighted", strconv.FormatBool(p.Highlighted))
	for _, id := range p.SkillIDs {
		f.Set("skillIds[]", id.String())
	}
	if p.CoverImage != nil {
		f.File("coverImage", *p.CoverImage)
	}
	for _, img := range p.ContentImages {
		f.File("contentImages[]", img)
	}
	existing, err := json.Marshal(p.ExistingContentImages)
	if err != nil {
		return nil, fmt.Errorf("marshal existing images: %w", err)
	}
	f.Set("existingContentImages", string(existing))
	return f, nil
}

// ListProjects fetches all projects.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.get(ctx, "/projects", &projects); err != nil {
		return nil, fmt.Errorf("client.ListProjects: %w", err)
	}
	return projects, nil
}

// GetProject fetches a single project; key is an id or a slug.
func (c *Client) GetProject(ctx context.Context, key string) (*domain.Project, error) {
	var p domain.Project
	if err := c.get(ctx, "/projects/"+url.PathEscape(key), &p); err != nil {
		return nil, fmt.Errorf("client.GetProject: %w", err)
	}
	return &p, nil
}

// CreateProject creates a project from a multipart payload.
func (c *Client) CreateProject(ctx context.Context, p ProjectPayload) (*domain.Project, error) {
	form, err := p.form()
	if err != nil {
		return nil, fmt.Errorf("client.CreateProject: %w", err)
	}
	var created domain.Project
	if err := c.doMultipart(ctx, http.MethodPost, "/projects", form, &created); err != nil {
		return nil, fmt.Errorf("client.CreateProject: %w", err)
	}
	return &created, nil
}

// UpdateProject updates a project; key is an id or a slug.
func (c *Client) UpdateProject(ctx context.Context, key string, p ProjectPayload) (*domain.Project, error) {
	form, err := p.form()
	if err != nil {
		return nil, fmt.Errorf("client.UpdateProject: %w", err)
	}
	var updated domain.Project
	if err := c.doMultipart(ctx, http.MethodPut, "/projects/"+url.PathEscape(key), form, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateProject: %w", err)
	}
	return &updated, nil
}

// DeleteProject deletes a project; key is an id or a slug.
func (c *Client) DeleteProject(ctx context.Context, key string) error {
	if err := c.del(ctx, "/projects/"+url.PathEscape(key)); err != nil {
		return fmt.Errorf("client.DeleteProject: %w", err)
	}
	return nil
}
