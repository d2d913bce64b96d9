package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserDetails is the singleton profile record: display name, role line,
// bio, social links and profile photo.
type UserDetails struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Description  string    `json:"description,omitempty"`
	SocialMedias []string  `json:"socialMedias,omitempty"` // "icon|url" pairs
	ProfilePhoto string    `json:"profilePhoto,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SocialMedia is one decoded social link entry.
type SocialMedia struct {
	Icon string
	URL  string
}

// ParseSocialMedia decodes an "icon|url" pair. The wire format stores both
// halves in one delimited string; everything after the first separator is
// the URL.
func ParseSocialMedia(entry string) (SocialMedia, error) {
	icon, url, ok := strings.Cut(entry, "|")
	if !ok {
		return SocialMedia{}, fmt.Errorf("social media entry %q: missing separator", entry)
	}
	return SocialMedia{Icon: icon, URL: url}, nil
}

// Encode renders the entry back into the wire format.
func (s SocialMedia) Encode() string {
	return s.Icon + "|" + s.URL
}
