package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	cache "github.com/patrickmn/go-cache"

	"github.com/foliohq/folio/pkg/domain"
)

// skillsCacheKey caches the skill list, which every association picker
// re-reads. Any skill mutation invalidates it.
const skillsCacheKey = "skills"

// SkillPayload is the create/update payload for a skill. Icon is required
// on create; leaving it nil on update keeps the stored icon.
type SkillPayload struct {
	Name string
	Icon *Upload
}

func (p SkillPayload) form() *Form {
	f := &Form{}
	f.Set("name", p.Name)
	if p.Icon != nil {
		f.File("icon", *p.Icon)
	}
	return f
}

// ListSkills fetches all skills, serving repeat calls from a short-lived
// cache until a mutation invalidates it.
func (c *Client) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	if cached, found := c.lists.Get(skillsCacheKey); found {
		return cached.([]domain.Skill), nil
	}
	var skills []domain.Skill
	if err := c.get(ctx, "/skills", &skills); err != nil {
		return nil, fmt.Errorf("client.ListSkills: %w", err)
	}
	c.lists.Set(skillsCacheKey, skills, cache.DefaultExpiration)
	return skills, nil
}

// GetSkill fetches a single skill by id.
func (c *Client) GetSkill(ctx context.Context, id string) (*domain.Skill, error) {
	var skill domain.Skill
	if err := c.get(ctx, "/skills/"+url.PathEscape(id), &skill); err != nil {
		return nil, fmt.Errorf("client.GetSkill: %w", err)
	}
	return &skill, nil
}

// CreateSkill creates a skill from a multipart payload (name + icon file).
func (c *Client) CreateSkill(ctx context.Context, p SkillPayload) (*domain.Skill, error) {
	var created domain.Skill
	if err := c.doMultipart(ctx, http.MethodPost, "/skills", p.form(), &created); err != nil {
		return nil, fmt.Errorf("client.CreateSkill: %w", err)
	}
	c.lists.Delete(skillsCacheKey)
	return &created, nil
}

// UpdateSkill updates a skill by id.
func (c *Client) UpdateSkill(ctx context.Context, id string, p SkillPayload) (*domain.Skill, error) {
	var updated domain.Skill
	if err := c.doMultipart(ctx, http.MethodPut, "/skills/"+url.PathEscape(id), p.form(), &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateSkill: %w", err)
	}
	c.lists.Delete(skillsCacheKey)
	return &updated, nil
}

// DeleteSkill deletes a skill by id.
func (c *Client) DeleteSkill(ctx context.Context, id string) error {
	if err := c.del(ctx, "/skills/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("client.DeleteSkill: %w", err)
	}
	c.lists.Delete(skillsCacheKey)
	return nil
}
