package domain

import "github.com/google/uuid"

// User is the authenticated account identity returned by the auth endpoints.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Name     string    `json:"name,omitempty"`
}
