package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/foliohq/folio/pkg/domain"
)

func TestCreateProjectMultipartFields(t *testing.T) {
	skillID := uuid.New()
	published := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			fail(w, http.StatusBadRequest, "not multipart")
			return
		}
		form := r.MultipartForm
		if got := r.FormValue("slug"); got != "my-cool-project" {
			fail(w, http.StatusBadRequest, "wrong slug")
			return
		}
		if got := r.FormValue("published"); got != "true" {
			fail(w, http.StatusBadRequest, "wrong published flag")
			return
		}
		if got := r.FormValue("publishedAt"); got != published.Format(time.RFC3339) {
			fail(w, http.StatusBadRequest, "wrong publishedAt")
			return
		}
		if ids := form.Value["skillIds[]"]; len(ids) != 1 || ids[0] != skillID.String() {
			fail(w, http.StatusBadRequest, "wrong skillIds")
			return
		}
		if files := form.File["contentImages[]"]; len(files) != 2 {
			fail(w, http.StatusBadRequest, "wrong content image count")
			return
		}
		if _, okCover := form.File["coverImage"]; !okCover {
			fail(w, http.StatusBadRequest, "missing cover image")
			return
		}
		var existing []string
		if err := json.Unmarshal([]byte(r.FormValue("existingContentImages")), &existing); err != nil || len(existing) != 0 {
			fail(w, http.StatusBadRequest, "existingContentImages must be an empty JSON list on create")
			return
		}
		ok(w, domain.Project{Title: r.FormValue("title"), Slug: r.FormValue("slug")})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	created, err := c.CreateProject(context.Background(), ProjectPayload{
		Title:       "My Cool Project!",
		Slug:        "my-cool-project",
		Description: "a thing",
		Content:     "<p>hello</p>",
		Published:   true,
		PublishedAt: &published,
		SkillIDs:    []uuid.UUID{skillID},
		CoverImage:  &Upload{Filename: "cover.jpg", Data: []byte{1, 2}},
		ContentImages: []Upload{
			{Filename: "a.jpg", Data: []byte{3}},
			{Filename: "b.jpg", Data: []byte{4}},
		},
	})
	if err != nil {
		t.Fatalf("CreateProject() error: %v", err)
	}
	if created.Slug != "my-cool-project" {
		t.Errorf("Slug = %q, want %q", created.Slug, "my-cool-project")
	}
}

func TestUpdateProjectKeepsExistingImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/projects/my-cool-project" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			fail(w, http.StatusBadRequest, "not multipart")
			return
		}
		var existing []string
		if err := json.Unmarshal([]byte(r.FormValue("existingContentImages")), &existing); err != nil {
			fail(w, http.StatusBadRequest, "bad existingContentImages")
			return
		}
		if len(existing) != 2 || existing[0] != "/img/1.jpg" || existing[1] != "/img/3.jpg" {
			fail(w, http.StatusBadRequest, "wrong kept references")
			return
		}
		ok(w, domain.Project{Slug: "my-cool-project"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.UpdateProject(context.Background(), "my-cool-project", ProjectPayload{
		Title:                 "My Cool Project!",
		Slug:                  "my-cool-project",
		ExistingContentImages: []string{"/img/1.jpg", "/img/3.jpg"},
	})
	if err != nil {
		t.Fatalf("UpdateProject() error: %v", err)
	}
}

func TestGetProjectBySlug(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/my-cool-project" {
			http.NotFound(w, r)
			return
		}
		ok(w, domain.Project{Slug: "my-cool-project", Title: "My Cool Project!"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	p, err := c.GetProject(context.Background(), "my-cool-project")
	if err != nil {
		t.Fatalf("GetProject() error: %v", err)
	}
	if p.Title != "My Cool Project!" {
		t.Errorf("Title = %q, want %q", p.Title, "My Cool Project!")
	}
}
