package tui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliohq/folio/internal/form"
	"github.com/foliohq/folio/internal/workflow"
	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

var experienceSchema = form.Schema{
	Fields: []form.Field{
		{Name: "companyName", Label: "Company", Kind: form.Text, Required: true},
		{Name: "location", Label: "Location", Kind: form.Text, Required: true},
		{Name: "startYear", Label: "Start year", Kind: form.Year, Required: true},
		{Name: "endYear", Label: "End year", Kind: form.Year},
		{Name: "current", Label: "Current position", Kind: form.Toggle},
		{Name: "description", Label: "Description", Kind: form.Multiline},
	},
}

type experienceModel struct {
	client      *client.Client
	ctrl        *workflow.Controller[domain.Experience]
	form        *form.Form
	picker      *skillPicker
	pickerFocus bool
	height      int
}

type experienceLoadedMsg struct {
	entries []domain.Experience
	err     error
}

// pickerSkillsMsg carries the skills list shared by every screen with a
// skill picker. origin names the screen whose fetch produced it, so the
// app shell can deliver it to that screen even after a tab switch.
type pickerSkillsMsg struct {
	origin view
	skills []domain.Skill
	err    error
}

type experienceSavedMsg struct{ err error }

type experienceDeletedMsg struct{ err error }

func newExperienceModel(c *client.Client) experienceModel {
	return experienceModel{
		client: c,
		ctrl: workflow.New(
			func(e domain.Experience) string { return e.ID.String() },
			matchExperience,
			2,
		),
		form:   form.New(experienceSchema),
		picker: newSkillPicker(),
	}
}

func matchExperience(e domain.Experience, q string) bool {
	return strings.Contains(strings.ToLower(e.CompanyName), q) ||
		strings.Contains(strings.ToLower(e.Location), q) ||
		strings.Contains(strings.ToLower(e.Description), q)
}

func (m experienceModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.fetchSkills())
}

func (m experienceModel) fetch() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		entries, err := c.ListExperience(context.Background())
		return experienceLoadedMsg{entries: entries, err: err}
	}
}

func (m experienceModel) fetchSkills() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		skills, err := c.ListSkills(context.Background())
		return pickerSkillsMsg{origin: viewExperience, skills: skills, err: err}
	}
}

func (m experienceModel) Update(msg tea.Msg) (experienceModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case experienceLoadedMsg:
		if m.ctrl.LoadingInitial() {
			m.ctrl.ListLoaded(msg.entries, msg.err)
		} else {
			m.ctrl.Refreshed(msg.entries, msg.err)
		}
		return m, nil

	case pickerSkillsMsg:
		if msg.err == nil {
			m.picker.SetSkills(msg.skills)
		}
		m.ctrl.DepLoaded(msg.err)
		return m, nil

	case experienceSavedMsg:
		if m.ctrl.SubmitDone(msg.err) {
			m.form.Reset()
			m.picker.Clear()
			m.pickerFocus = false
			m.ctrl.Notify("experience saved")
			return m, m.fetch()
		}
		return m, nil

	case experienceDeletedMsg:
		if m.ctrl.DeleteDone(msg.err) {
			m.ctrl.Notify("experience deleted")
			return m, m.fetch()
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m experienceModel) updateKeys(msg tea.KeyMsg) (experienceModel, tea.Cmd) {
	if m.ctrl.State() == workflow.Submitting {
		return m, nil
	}
	if m.ctrl.State() == workflow.ModalOpen {
		return m.updateModalKeys(msg)
	}
	if m.ctrl.Searching() {
		switch msg.String() {
		case "enter":
			m.ctrl.StopSearch(true)
		case "esc":
			m.ctrl.StopSearch(false)
		default:
			m.ctrl.SetSearch(editRune(m.ctrl.Search(), msg.String()))
		}
		return m, nil
	}
	if m.ctrl.ConfirmingDelete() != "" {
		switch msg.String() {
		case "y":
			key, ok := m.ctrl.ConfirmDelete()
			if !ok {
				return m, nil
			}
			c := m.client
			return m, func() tea.Msg {
				return experienceDeletedMsg{err: c.DeleteExperience(context.Background(), key)}
			}
		case "n", "esc":
			m.ctrl.DismissDelete()
		}
		return m, nil
	}

	m.ctrl.ClearStatus()
	switch msg.String() {
	case "j", "down":
		m.ctrl.CursorDown()
	case "k", "up":
		m.ctrl.CursorUp()
	case "/":
		m.ctrl.StartSearch()
	case "esc":
		m.ctrl.SetSearch("")
	case "n":
		if m.ctrl.OpenCreate() {
			m.form.Reset()
			m.picker.Clear()
			m.pickerFocus = false
		}
	case "e", "enter":
		if e, ok := m.ctrl.OpenEdit(); ok {
			m.populate(e)
		}
	case "d":
		m.ctrl.RequestDelete()
	}
	return m, nil
}

func (m *experienceModel) populate(e domain.Experience) {
	m.form.Reset()
	m.pickerFocus = false
	m.form.Set("companyName", e.CompanyName)
	m.form.Set("location", e.Location)
	m.form.Set("startYear", strconv.Itoa(e.StartYear))
	if e.EndYear != nil {
		m.form.Set("endYear", strconv.Itoa(*e.EndYear))
	}
	m.form.SetBool("current", e.Current())
	m.form.Set("description", e.Description)
	m.picker.Select(domain.SkillIDs(e.Skills))
}

func (m experienceModel) updateModalKeys(msg tea.KeyMsg) (experienceModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.Cancel()
		m.form.Reset()
		m.picker.Clear()
		m.pickerFocus = false
		return m, nil
	case "ctrl+s":
		return m.submit()
	}

	if m.pickerFocus {
		switch msg.String() {
		case "tab":
			m.pickerFocus = false
		case "shift+tab", "up", "k":
			if m.picker.cursor == 0 {
				m.pickerFocus = false
			} else {
				m.picker.CursorUp()
			}
		case "down", "j":
			m.picker.CursorDown()
		case " ", "enter":
			m.picker.Toggle()
		}
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		if m.form.FocusIndex() == len(m.form.Schema.Fields)-1 {
			m.pickerFocus = true
		} else {
			m.form.Next()
		}
	case "shift+tab", "up":
		m.form.Prev()
	case " ":
		if m.form.Focused().Kind == form.Toggle {
			name := m.form.Focused().Name
			m.form.SetBool(name, !m.form.Bool(name))
			return m, nil
		}
		name := m.form.Focused().Name
		m.form.Set(name, editRune(m.form.Get(name), msg.String()))
	case "enter":
		if m.form.Focused().Kind == form.Multiline {
			name := m.form.Focused().Name
			m.form.Set(name, m.form.Get(name)+"\n")
		} else {
			m.form.Next()
		}
	default:
		name := m.form.Focused().Name
		m.form.Set(name, editRune(m.form.Get(name), msg.String()))
	}
	return m, nil
}

func (m experienceModel) submit() (experienceModel, tea.Cmd) {
	if !m.form.Validate() {
		return m, nil
	}

	startYear, _ := m.form.Int("startYear")
	payload := client.ExperiencePayload{
		StartYear:   startYear,
		CompanyName: strings.TrimSpace(m.form.Get("companyName")),
		Location:    strings.TrimSpace(m.form.Get("location")),
		Description: strings.TrimSpace(m.form.Get("description")),
		SkillIDs:    m.picker.Selected(),
	}
	// A current position always serializes endYear as null, whatever the
	// end year field holds.
	if !m.form.Bool("current") {
		if end, ok := m.form.Int("endYear"); ok {
			if end < startYear {
				m.form.SetError("endYear", "End year cannot be before the start year")
				return m, nil
			}
			payload.EndYear = &end
		}
	}

	if !m.ctrl.BeginSubmit() {
		return m, nil
	}
	c := m.client
	editKey := m.ctrl.EditKey()
	mode := m.ctrl.Mode()
	return m, func() tea.Msg {
		var err error
		if mode == workflow.ModeEdit {
			_, err = c.UpdateExperience(context.Background(), editKey, payload)
		} else {
			_, err = c.CreateExperience(context.Background(), payload)
		}
		return experienceSavedMsg{err: err}
	}
}

func (m experienceModel) View() string {
	var b strings.Builder

	if m.ctrl.LoadingInitial() {
		return " " + dimStyle.Render("loading experience...")
	}

	if m.ctrl.State() == workflow.ModalOpen || m.ctrl.State() == workflow.Submitting {
		title := "New experience"
		if m.ctrl.Mode() == workflow.ModeEdit {
			title = "Edit experience"
		}
		b.WriteString(" " + sectionHeaderStyle.Render(title) + "\n\n")
		b.WriteString(renderForm(m.form, m.pickerFocus))
		b.WriteString("\n")
		b.WriteString(m.picker.View(m.pickerFocus))
		b.WriteString("\n")
		if m.ctrl.State() == workflow.Submitting {
			b.WriteString(" " + dimStyle.Render("saving..."))
		} else if msg, isErr := m.ctrl.Status(); msg != "" && isErr {
			b.WriteString(" " + errorStyle.Render(msg))
		}
		return b.String()
	}

	b.WriteString(renderSearchBar(m.ctrl.Searching(), m.ctrl.Search()) + "\n\n")

	visible := m.ctrl.Visible()
	if len(visible) == 0 {
		if m.ctrl.Search() != "" {
			b.WriteString(" " + dimStyle.Render("no entries match") + "\n")
		} else {
			b.WriteString(" " + dimStyle.Render("no experience yet, press n to add an entry") + "\n")
		}
	}
	for i, e := range visible {
		years := metaStyle.Render(yearRange(e.StartYear, e.EndYear))
		line := e.CompanyName + "  " + dimStyle.Render(e.Location)
		if i == m.ctrl.Cursor() {
			b.WriteString(" " + accentStyle.Render(">") + " " + selectedStyle.Render(e.CompanyName) + "  " + dimStyle.Render(e.Location) + "  " + years + "\n")
			if desc := oneLine(e.Description); desc != "" {
				b.WriteString("   " + dimStyle.Render(truncStr(desc, 70)) + "\n")
			}
			if m.ctrl.ConfirmingDelete() == e.ID.String() {
				b.WriteString(renderConfirmDelete(e.CompanyName) + "\n")
			}
		} else {
			b.WriteString("   " + normalStyle.Render(line) + "  " + years + "\n")
		}
	}

	b.WriteString("\n")
	if msg, isErr := m.ctrl.Status(); msg != "" {
		b.WriteString(renderStatusLine(msg, isErr))
	}
	return b.String()
}

func (m experienceModel) helpKeys() string {
	if m.ctrl.State() == workflow.ModalOpen || m.ctrl.State() == workflow.Submitting {
		return helpEntry("tab", "next") + "  " + helpEntry("space", "toggle") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("/", "search") + "  " + helpEntry("n", "new") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "delete")
}
