package domain

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My Cool Project!", "my-cool-project"},
		{"  spaced   out  ", "spaced-out"},
		{"already-a-slug", "already-a-slug"},
		{"C++ & Go --- tooling", "c-go-tooling"},
		{"2024 Retrospective", "2024-retrospective"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestValidSlug(t *testing.T) {
	valid := []string{"my-cool-project", "a", "2024", "x-1"}
	for _, s := range valid {
		if !ValidSlug(s) {
			t.Errorf("ValidSlug(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "My-Project", "spaces here", "under_score", "trailing!", "accént"}
	for _, s := range invalid {
		if ValidSlug(s) {
			t.Errorf("ValidSlug(%q) = true, want false", s)
		}
	}
}

func TestSlugifyProducesValidSlugs(t *testing.T) {
	titles := []string{"My Cool Project!", "Hello, World", "a__b__c", "Portfolio v2.0"}
	for _, title := range titles {
		slug := Slugify(title)
		if slug == "" {
			t.Fatalf("Slugify(%q) produced empty slug", title)
		}
		if !ValidSlug(slug) {
			t.Errorf("Slugify(%q) = %q which fails ValidSlug", title, slug)
		}
	}
}
