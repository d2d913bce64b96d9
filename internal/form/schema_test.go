package form

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

var testSchema = Schema{
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: Text, Required: true},
		{Name: "slug", Label: "Slug", Kind: Slug, Required: true},
		{Name: "year", Label: "Year", Kind: Year},
		{Name: "link", Label: "Certificate link", Kind: URL},
		{Name: "notes", Label: "Notes", Kind: Multiline},
	},
}

func TestValidateRequiredFields(t *testing.T) {
	errs := testSchema.Validate(map[string]string{"slug": "ok"})
	if msg := errs["title"]; msg != "Title is required" {
		t.Errorf(`errs["title"] = %q, want "Title is required"`, msg)
	}
	if _, found := errs["notes"]; found {
		t.Error("optional empty field should not produce an error")
	}
}

func TestValidateSlugPattern(t *testing.T) {
	errs := testSchema.Validate(map[string]string{"title": "x", "slug": "Bad Slug!"})
	if errs["slug"] == "" {
		t.Error("expected error for malformed slug")
	}

	errs = testSchema.Validate(map[string]string{"title": "x", "slug": "my-cool-project"})
	if msg := errs["slug"]; msg != "" {
		t.Errorf("unexpected slug error: %q", msg)
	}
}

func TestValidateYearBounds(t *testing.T) {
	base := map[string]string{"title": "x", "slug": "x"}

	cases := []struct {
		year    string
		wantErr bool
	}{
		{"1899", true},
		{"1900", false},
		{strconv.Itoa(time.Now().Year()), false},
		{strconv.Itoa(time.Now().Year() + 10), false},
		{strconv.Itoa(time.Now().Year() + 11), true},
		{"soon", true},
	}
	for _, tc := range cases {
		vals := map[string]string{"year": tc.year}
		for k, v := range base {
			vals[k] = v
		}
		errs := testSchema.Validate(vals)
		if gotErr := errs["year"] != ""; gotErr != tc.wantErr {
			t.Errorf("year %q: error = %q, wantErr = %v", tc.year, errs["year"], tc.wantErr)
		}
	}
}

func TestValidateURLEmptyMeansAbsent(t *testing.T) {
	errs := testSchema.Validate(map[string]string{"title": "x", "slug": "x", "link": ""})
	if errs["link"] != "" {
		t.Errorf("empty URL should be accepted, got %q", errs["link"])
	}
}

func TestValidateURLMalformed(t *testing.T) {
	for _, bad := range []string{"not a url", "example.com/cert", "://nope"} {
		errs := testSchema.Validate(map[string]string{"title": "x", "slug": "x", "link": bad})
		if errs["link"] == "" {
			t.Errorf("expected error for URL %q", bad)
		}
	}
	errs := testSchema.Validate(map[string]string{"title": "x", "slug": "x", "link": "https://example.com/cert/123"})
	if errs["link"] != "" {
		t.Errorf("unexpected error for valid URL: %q", errs["link"])
	}
}

func TestFormValidateStoresAndClearsErrors(t *testing.T) {
	f := New(testSchema)
	if f.Validate() {
		t.Fatal("Validate() = true with required fields empty")
	}
	if f.Error("title") == "" {
		t.Fatal("expected stored error for title")
	}

	// Typing into the field clears its stale message.
	f.Set("title", "My Project")
	if f.Error("title") != "" {
		t.Errorf("error not cleared on Set, got %q", f.Error("title"))
	}

	f.Set("slug", "my-project")
	if !f.Validate() {
		t.Errorf("Validate() = false for valid form, errors present: title=%q slug=%q", f.Error("title"), f.Error("slug"))
	}
}

func TestFormFocusWraps(t *testing.T) {
	f := New(testSchema)
	n := len(testSchema.Fields)

	for i := 0; i < n; i++ {
		f.Next()
	}
	if f.FocusIndex() != 0 {
		t.Errorf("focus = %d after full cycle, want 0", f.FocusIndex())
	}
	f.Prev()
	if f.Focused().Name != "notes" {
		t.Errorf("Focused() = %q after Prev from 0, want notes", f.Focused().Name)
	}
}

func TestFormBoolAndInt(t *testing.T) {
	f := New(testSchema)
	f.SetBool("current", true)
	if !f.Bool("current") {
		t.Error("Bool() = false after SetBool(true)")
	}
	f.Set("year", "2021")
	if n, okInt := f.Int("year"); !okInt || n != 2021 {
		t.Errorf("Int() = %d, %v, want 2021, true", n, okInt)
	}
	if _, okInt := f.Int("title"); okInt {
		t.Error("Int() ok = true for non-numeric field")
	}
}

func TestValidationMessagesNameTheField(t *testing.T) {
	errs := testSchema.Validate(map[string]string{"title": "x", "slug": "x", "year": "1800"})
	if !strings.Contains(errs["year"], "Year") {
		t.Errorf("message %q does not name the field", errs["year"])
	}
}
