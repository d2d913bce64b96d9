package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/foliohq/folio/pkg/domain"
)

func makeTestEducation(institution, year string) domain.Education {
	return domain.Education{
		ID:              uuid.New(),
		InstitutionName: institution,
		Year:            year,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func TestEducationListRendersEntries(t *testing.T) {
	m := newEducationModel(nil)
	m, _ = m.Update(educationLoadedMsg{entries: []domain.Education{
		makeTestEducation("MIT", "2015 - 2019"),
		makeTestEducation("Stanford", "2020"),
	}})

	view := m.View()
	if !strings.Contains(view, "MIT") {
		t.Errorf("expected 'MIT' in view, got:\n%s", view)
	}
	if !strings.Contains(view, "2015 - 2019") {
		t.Errorf("expected free-text year range untouched, got:\n%s", view)
	}
}

func TestEducationYearIsFreeText(t *testing.T) {
	m := newEducationModel(nil)
	m, _ = m.Update(educationLoadedMsg{})

	m, _ = m.Update(keyRunes("n"))
	m.form.Set("institutionName", "MIT")
	m.form.Set("year", "2015 - 2019") // not a single year, still valid

	if !m.form.Validate() {
		t.Errorf("expected free-text year to validate, got errors %v", m.form.Error("year"))
	}
}

func TestEducationRequiredFieldsBlockSubmit(t *testing.T) {
	m := newEducationModel(nil)
	m, _ = m.Update(educationLoadedMsg{})

	m, _ = m.Update(keyRunes("n"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if cmd != nil {
		t.Error("expected no command for an empty form, got one")
	}
	view := m.View()
	if !strings.Contains(view, "Institution is required") {
		t.Errorf("expected required-field message, got:\n%s", view)
	}
}
