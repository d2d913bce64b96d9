package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foliohq/folio/pkg/domain"
)

func TestCreateSkillSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			fail(w, http.StatusBadRequest, "not multipart")
			return
		}
		if got := r.FormValue("name"); got != "Go" {
			fail(w, http.StatusBadRequest, "wrong name")
			return
		}
		file, header, err := r.FormFile("icon")
		if err != nil {
			fail(w, http.StatusBadRequest, "missing icon")
			return
		}
		defer file.Close() //nolint:errcheck
		data, _ := io.ReadAll(file) //nolint:errcheck
		if header.Filename != "go.png" || len(data) == 0 {
			fail(w, http.StatusBadRequest, "bad icon part")
			return
		}
		ok(w, domain.Skill{Name: "Go", Icon: "/uploads/go.png"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	skill, err := c.CreateSkill(context.Background(), SkillPayload{
		Name: "Go",
		Icon: &Upload{Filename: "go.png", Data: []byte{0x89, 0x50, 0x4e, 0x47}},
	})
	if err != nil {
		t.Fatalf("CreateSkill() error: %v", err)
	}
	if skill.Icon != "/uploads/go.png" {
		t.Errorf("Icon = %q, want server-assigned reference", skill.Icon)
	}
}

func TestUpdateSkillWithoutIconOmitsFilePart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			fail(w, http.StatusBadRequest, "not multipart")
			return
		}
		if _, _, err := r.FormFile("icon"); err == nil {
			fail(w, http.StatusBadRequest, "unexpected icon part")
			return
		}
		ok(w, domain.Skill{Name: r.FormValue("name")})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	skill, err := c.UpdateSkill(context.Background(), "some-id", SkillPayload{Name: "Rust"})
	if err != nil {
		t.Fatalf("UpdateSkill() error: %v", err)
	}
	if skill.Name != "Rust" {
		t.Errorf("Name = %q, want %q", skill.Name, "Rust")
	}
}

func TestListSkillsCachesUntilMutation(t *testing.T) {
	listCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			listCalls++
			ok(w, []domain.Skill{{Name: "Go"}})
		case r.Method == http.MethodPost:
			ok(w, domain.Skill{Name: "Rust"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	ctx := context.Background()

	if _, err := c.ListSkills(ctx); err != nil {
		t.Fatalf("first ListSkills() error: %v", err)
	}
	if _, err := c.ListSkills(ctx); err != nil {
		t.Fatalf("second ListSkills() error: %v", err)
	}
	if listCalls != 1 {
		t.Fatalf("got %d list calls before mutation, want 1 (cached)", listCalls)
	}

	if _, err := c.CreateSkill(ctx, SkillPayload{Name: "Rust", Icon: &Upload{Filename: "r.png", Data: []byte{1}}}); err != nil {
		t.Fatalf("CreateSkill() error: %v", err)
	}
	if _, err := c.ListSkills(ctx); err != nil {
		t.Fatalf("ListSkills() after mutation error: %v", err)
	}
	if listCalls != 2 {
		t.Errorf("got %d list calls after mutation, want 2 (cache invalidated)", listCalls)
	}
}

func TestListErrorIsNotCached(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		fail(w, http.StatusInternalServerError, "boom")
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	for i := 0; i < 2; i++ {
		if _, err := c.ListSkills(context.Background()); err == nil {
			t.Fatal("expected error")
		}
	}
	if calls != 2 {
		t.Errorf("got %d calls, want 2 (errors must not be cached)", calls)
	}
}
