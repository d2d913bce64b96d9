package tui

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

func writeEnvelope(w http.ResponseWriter, data any) {
	payload, _ := json.Marshal(data) //nolint:errcheck // test fixture
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"success": true,
		"data":    json.RawMessage(payload),
	})
}

func writeEnvelopeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"success": false,
		"error":   msg,
	})
}

func makeTestSkill(name string) domain.Skill {
	return domain.Skill{
		ID:        uuid.New(),
		Name:      name,
		Icon:      "/icons/" + strings.ToLower(name) + ".jpg",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// writeTestPNG writes a small valid PNG and returns its path.
func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	path := filepath.Join(t.TempDir(), "icon.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write png: %v", err)
	}
	return path
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSkillsListRendersNames(t *testing.T) {
	m := newSkillsModel(nil)
	m, _ = m.Update(skillsLoadedMsg{skills: []domain.Skill{
		makeTestSkill("Go"),
		makeTestSkill("Postgres"),
	}})

	view := m.View()
	if !strings.Contains(view, "Go") {
		t.Errorf("expected 'Go' in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Postgres") {
		t.Errorf("expected 'Postgres' in view, got:\n%s", view)
	}
}

func TestSkillsEmptyListShowsHint(t *testing.T) {
	m := newSkillsModel(nil)
	m, _ = m.Update(skillsLoadedMsg{skills: []domain.Skill{}})

	view := m.View()
	if !strings.Contains(view, "no skills yet") {
		t.Errorf("expected empty-state hint in view, got:\n%s", view)
	}
}

func TestSkillsCreateRequiresIcon(t *testing.T) {
	m := newSkillsModel(nil)
	m, _ = m.Update(skillsLoadedMsg{skills: nil})

	m, _ = m.Update(keyRunes("n"))
	for _, r := range "Go" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if cmd != nil {
		t.Error("expected no command when icon is missing, got one")
	}
	view := m.View()
	if !strings.Contains(view, "Icon is required for new skills") {
		t.Errorf("expected icon error in view, got:\n%s", view)
	}
}

func TestSkillsEditPrePopulatesName(t *testing.T) {
	m := newSkillsModel(nil)
	m, _ = m.Update(skillsLoadedMsg{skills: []domain.Skill{makeTestSkill("Rust")}})

	m, _ = m.Update(keyRunes("e"))
	if got := m.form.Get("name"); got != "Rust" {
		t.Errorf("expected form pre-populated with 'Rust', got %q", got)
	}

	view := m.View()
	if !strings.Contains(view, "Edit skill") {
		t.Errorf("expected edit title in view, got:\n%s", view)
	}
}

func TestSkillsSearchFiltersList(t *testing.T) {
	m := newSkillsModel(nil)
	m, _ = m.Update(skillsLoadedMsg{skills: []domain.Skill{
		makeTestSkill("Go"),
		makeTestSkill("Rust"),
	}})

	m, _ = m.Update(keyRunes("/"))
	m, _ = m.Update(keyRunes("r"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	if !strings.Contains(view, "Rust") {
		t.Errorf("expected 'Rust' in filtered view, got:\n%s", view)
	}
	if strings.Contains(view, "Go ") {
		t.Errorf("expected 'Go' filtered out, got:\n%s", view)
	}
}

func TestSkillsDeleteConfirmAndDismiss(t *testing.T) {
	m := newSkillsModel(nil)
	m, _ = m.Update(skillsLoadedMsg{skills: []domain.Skill{makeTestSkill("Go")}})

	m, _ = m.Update(keyRunes("d"))
	view := m.View()
	if !strings.Contains(view, "delete Go?") {
		t.Errorf("expected delete prompt in view, got:\n%s", view)
	}

	m, _ = m.Update(keyRunes("n"))
	view = m.View()
	if strings.Contains(view, "delete Go?") {
		t.Errorf("expected prompt dismissed, got:\n%s", view)
	}
}

func TestSkillsCreateEndToEnd(t *testing.T) {
	var created bool
	var listCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/skills":
			listCalls++
			skills := []domain.Skill{}
			if created {
				skills = append(skills, makeTestSkill("Go"))
			}
			writeEnvelope(w, skills)
		case r.Method == http.MethodPost && r.URL.Path == "/skills":
			if err := r.ParseMultipartForm(4 << 20); err != nil {
				writeEnvelopeError(w, http.StatusBadRequest, "bad multipart")
				return
			}
			if got := r.FormValue("name"); got != "Go" {
				t.Errorf("expected name=Go in form, got %q", got)
			}
			file, header, err := r.FormFile("icon")
			if err != nil {
				t.Error("expected icon file part, got none")
			} else {
				file.Close() //nolint:errcheck
				if !strings.HasSuffix(header.Filename, ".jpg") {
					t.Errorf("expected compressed .jpg icon, got %q", header.Filename)
				}
			}
			created = true
			writeEnvelope(w, makeTestSkill("Go"))
		default:
			writeEnvelopeError(w, http.StatusNotFound, "not found")
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL, "test-token")
	m := newSkillsModel(c)

	msg := m.fetch()()
	m, _ = m.Update(msg)

	m, _ = m.Update(keyRunes("n"))
	for _, r := range "Go" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	m.form.Set("icon", writeTestPNG(t))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected submit command, got nil")
	}
	m, cmd = m.Update(cmd())
	if cmd == nil {
		t.Fatal("expected refetch command after save, got nil")
	}
	m, _ = m.Update(cmd())

	view := m.View()
	if !strings.Contains(view, "Go") {
		t.Errorf("expected created skill in view, got:\n%s", view)
	}
	if !strings.Contains(view, "skill saved") {
		t.Errorf("expected success notification, got:\n%s", view)
	}
	if listCalls < 2 {
		t.Errorf("expected refetch after create, got %d list calls", listCalls)
	}
}

func TestSkillsSubmitFailureKeepsModalOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeEnvelope(w, []domain.Skill{})
			return
		}
		writeEnvelopeError(w, http.StatusBadRequest, "skill name already taken")
	}))
	defer srv.Close()

	c := client.New(srv.URL, "test-token")
	m := newSkillsModel(c)
	msg := m.fetch()()
	m, _ = m.Update(msg)

	m, _ = m.Update(keyRunes("n"))
	for _, r := range "Go" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	m.form.Set("icon", writeTestPNG(t))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected submit command, got nil")
	}
	m, _ = m.Update(cmd())

	view := m.View()
	if !strings.Contains(view, "skill name already taken") {
		t.Errorf("expected server message in view, got:\n%s", view)
	}
	if !strings.Contains(view, "New skill") {
		t.Errorf("expected modal still open after failure, got:\n%s", view)
	}
}
