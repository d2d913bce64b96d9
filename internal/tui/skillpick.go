package tui

import (
	"strings"

	"github.com/google/uuid"

	"github.com/foliohq/folio/pkg/domain"
)

// skillPicker is a multi-select list of the user's skills, appended below
// a form so entities can be tagged. Focus enters the picker when the form's
// field focus wraps past its last field.
type skillPicker struct {
	skills   []domain.Skill
	selected map[uuid.UUID]bool
	cursor   int
}

func newSkillPicker() *skillPicker {
	return &skillPicker{selected: make(map[uuid.UUID]bool)}
}

// SetSkills replaces the available skills, keeping any selection that still
// refers to a live skill.
func (p *skillPicker) SetSkills(skills []domain.Skill) {
	p.skills = skills
	if p.cursor >= len(skills) {
		p.cursor = 0
	}
	live := make(map[uuid.UUID]bool, len(skills))
	for _, s := range skills {
		live[s.ID] = true
	}
	for id := range p.selected {
		if !live[id] {
			delete(p.selected, id)
		}
	}
}

// Select marks the given skills as chosen, used when editing an entity that
// already carries tags.
func (p *skillPicker) Select(ids []uuid.UUID) {
	p.selected = make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		p.selected[id] = true
	}
}

// Clear drops selection and cursor for a fresh create form.
func (p *skillPicker) Clear() {
	p.selected = make(map[uuid.UUID]bool)
	p.cursor = 0
}

// Toggle flips the skill under the cursor.
func (p *skillPicker) Toggle() {
	if len(p.skills) == 0 {
		return
	}
	id := p.skills[p.cursor].ID
	if p.selected[id] {
		delete(p.selected, id)
	} else {
		p.selected[id] = true
	}
}

func (p *skillPicker) CursorDown() {
	if p.cursor < len(p.skills)-1 {
		p.cursor++
	}
}

func (p *skillPicker) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// Selected returns the chosen skill IDs in the list's display order.
func (p *skillPicker) Selected() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(p.selected))
	for _, s := range p.skills {
		if p.selected[s.ID] {
			out = append(out, s.ID)
		}
	}
	return out
}

// View renders the picker, highlighting the cursor row when focused.
func (p *skillPicker) View(focused bool) string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("Skills") + "\n")
	if len(p.skills) == 0 {
		b.WriteString("   " + dimStyle.Render("no skills yet, add some on the Skills tab") + "\n")
		return b.String()
	}
	for i, s := range p.skills {
		box := "[ ]"
		if p.selected[s.ID] {
			box = "[x]"
		}
		line := box + " " + s.Name
		if focused && i == p.cursor {
			b.WriteString(" " + accentStyle.Render(">") + " " + selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(line) + "\n")
		}
	}
	if focused {
		b.WriteString("   " + dimStyle.Render("space to toggle") + "\n")
	}
	return b.String()
}
