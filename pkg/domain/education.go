package domain

import (
	"time"

	"github.com/google/uuid"
)

// Education is one schooling entry. Year is free text so ranges like
// "2015 - 2019" survive round trips untouched.
type Education struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	Year            string    `json:"year"`
	InstitutionName string    `json:"institutionName"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
