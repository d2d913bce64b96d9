package domain

import (
	"time"

	"github.com/google/uuid"
)

// Skill is a named technology with an icon image, owned by one user.
type Skill struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"` // server-side image reference
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SkillRef is an association record linking an experience, certification or
// project to one of the owner's skills. The server embeds the related skill.
type SkillRef struct {
	SkillID uuid.UUID `json:"skillId"`
	Skill   *Skill    `json:"skill,omitempty"`
}

// SkillIDs flattens association records into a plain list of skill ids,
// the shape forms edit and payloads carry.
func SkillIDs(refs []SkillRef) []uuid.UUID {
	if len(refs) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.SkillID)
	}
	return ids
}
