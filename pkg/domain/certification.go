package domain

import (
	"time"

	"github.com/google/uuid"
)

// Certification is an earned credential, optionally linking out to the
// issuer's certificate page.
type Certification struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              uuid.UUID  `json:"userId"`
	Name                string     `json:"name"`
	IssuingOrganization string     `json:"issuingOrganization"`
	Year                int        `json:"year"`
	Description         string     `json:"description,omitempty"`
	CertificateLink     string     `json:"certificateLink,omitempty"`
	Skills              []SkillRef `json:"skills,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
