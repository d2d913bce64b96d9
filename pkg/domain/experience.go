package domain

import (
	"time"

	"github.com/google/uuid"
)

// Experience is one professional position. EndYear is nil while the
// position is current.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	StartYear   int        `json:"startYear"`
	EndYear     *int       `json:"endYear"`
	CompanyName string     `json:"companyName"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location"`
	Skills      []SkillRef `json:"skills,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Current reports whether the position is ongoing.
func (e Experience) Current() bool {
	return e.EndYear == nil
}
