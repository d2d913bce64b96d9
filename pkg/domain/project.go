package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio piece with rich-text content and image galleries.
// It is addressable by id or by its per-user unique slug.
type Project struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	Content       string     `json:"content"`
	CoverImage    string     `json:"coverImage,omitempty"`
	ContentImages []string   `json:"contentImages,omitempty"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	Highlighted   bool       `json:"highlighted"`
	Skills        []SkillRef `json:"skills,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Published reports whether the project is publicly visible.
func (p Project) Published() bool {
	return p.PublishedAt != nil
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidSlug reports whether s is a well-formed URL slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Slugify derives a URL-safe slug from a title: lowercased, runs of
// non-alphanumeric characters collapsed to a single hyphen, no leading or
// trailing hyphen. "My Cool Project!" becomes "my-cool-project".
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
