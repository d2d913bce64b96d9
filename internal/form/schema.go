// Package form holds the declarative per-entity field schemas and the
// synchronous validation that runs before any network call.
package form

import (
	"net/url"
	"strconv"
	"time"

	"github.com/foliohq/folio/pkg/domain"
)

// Kind classifies a field for editing and validation.
type Kind int

const (
	Text Kind = iota
	Multiline
	Year // integer in [MinYear, MaxYear()]
	URL  // well-formed URL when non-empty; empty means absent
	Slug // ^[a-z0-9-]+$
	File // filesystem path to an image to upload
	Toggle
)

// MinYear is the lower bound for year fields.
const MinYear = 1900

// MaxYear is the upper bound for year fields: ten years out, so planned
// end dates validate.
func MaxYear() int {
	return time.Now().Year() + 10
}

// Field describes one input in an entity schema.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
}

// Schema is the declarative shape of one entity's form. Multipart marks
// entities whose submit path carries file parts.
type Schema struct {
	Fields    []Field
	Multipart bool
}

// Field looks a field up by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks values against the schema and returns per-field
// messages. An empty map means the input is acceptable.
func (s Schema) Validate(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, f := range s.Fields {
		v := values[f.Name]
		if v == "" {
			if f.Required {
				errs[f.Name] = f.Label + " is required"
			}
			continue
		}
		switch f.Kind {
		case Year:
			year, err := strconv.Atoi(v)
			if err != nil {
				errs[f.Name] = f.Label + " must be a year"
			} else if year < MinYear || year > MaxYear() {
				errs[f.Name] = f.Label + " must be between " + strconv.Itoa(MinYear) + " and " + strconv.Itoa(MaxYear())
			}
		case URL:
			u, err := url.Parse(v)
			if err != nil || u.Scheme == "" || u.Host == "" {
				errs[f.Name] = f.Label + " must be a valid URL"
			}
		case Slug:
			if !domain.ValidSlug(v) {
				errs[f.Name] = f.Label + " may only contain lowercase letters, digits and hyphens"
			}
		}
	}
	return errs
}
