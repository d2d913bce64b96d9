package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliohq/folio/internal/form"
	"github.com/foliohq/folio/internal/workflow"
	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

var educationSchema = form.Schema{
	Fields: []form.Field{
		{Name: "institutionName", Label: "Institution", Kind: form.Text, Required: true},
		{Name: "year", Label: "Year", Kind: form.Text, Required: true},
		{Name: "description", Label: "Description", Kind: form.Multiline},
	},
}

type educationModel struct {
	client *client.Client
	ctrl   *workflow.Controller[domain.Education]
	form   *form.Form
	height int
}

type educationLoadedMsg struct {
	entries []domain.Education
	err     error
}

type educationSavedMsg struct{ err error }

type educationDeletedMsg struct{ err error }

func newEducationModel(c *client.Client) educationModel {
	return educationModel{
		client: c,
		ctrl: workflow.New(
			func(e domain.Education) string { return e.ID.String() },
			func(e domain.Education, q string) bool {
				return strings.Contains(strings.ToLower(e.InstitutionName), q) ||
					strings.Contains(strings.ToLower(e.Description), q) ||
					strings.Contains(strings.ToLower(e.Year), q)
			},
			1,
		),
		form: form.New(educationSchema),
	}
}

func (m educationModel) Init() tea.Cmd {
	return m.fetch()
}

func (m educationModel) fetch() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		entries, err := c.ListEducation(context.Background())
		return educationLoadedMsg{entries: entries, err: err}
	}
}

func (m educationModel) Update(msg tea.Msg) (educationModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case educationLoadedMsg:
		if m.ctrl.LoadingInitial() {
			m.ctrl.ListLoaded(msg.entries, msg.err)
		} else {
			m.ctrl.Refreshed(msg.entries, msg.err)
		}
		return m, nil

	case educationSavedMsg:
		if m.ctrl.SubmitDone(msg.err) {
			m.form.Reset()
			m.ctrl.Notify("education saved")
			return m, m.fetch()
		}
		return m, nil

	case educationDeletedMsg:
		if m.ctrl.DeleteDone(msg.err) {
			m.ctrl.Notify("education deleted")
			return m, m.fetch()
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m educationModel) updateKeys(msg tea.KeyMsg) (educationModel, tea.Cmd) {
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
				return educationDeletedMsg{err: c.DeleteEducation(context.Background(), key)}
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
		}
	case "e", "enter":
		if e, ok := m.ctrl.OpenEdit(); ok {
			m.form.Reset()
			m.form.Set("institutionName", e.InstitutionName)
			m.form.Set("year", e.Year)
			m.form.Set("description", e.Description)
		}
	case "d":
		m.ctrl.RequestDelete()
	}
	return m, nil
}

func (m educationModel) updateModalKeys(msg tea.KeyMsg) (educationModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.Cancel()
		m.form.Reset()
	case "tab", "down":
		m.form.Next()
	case "shift+tab", "up":
		m.form.Prev()
	case "ctrl+s":
		return m.submit()
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

func (m educationModel) submit() (educationModel, tea.Cmd) {
	if !m.form.Validate() {
		return m, nil
	}

	payload := client.EducationPayload{
		Year:            strings.TrimSpace(m.form.Get("year")),
		InstitutionName: strings.TrimSpace(m.form.Get("institutionName")),
		Description:     strings.TrimSpace(m.form.Get("description")),
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
			_, err = c.UpdateEducation(context.Background(), editKey, payload)
		} else {
			_, err = c.CreateEducation(context.Background(), payload)
		}
		return educationSavedMsg{err: err}
	}
}

func (m educationModel) View() string {
	var b strings.Builder

	if m.ctrl.LoadingInitial() {
		return " " + dimStyle.Render("loading education...")
	}

	if m.ctrl.State() == workflow.ModalOpen || m.ctrl.State() == workflow.Submitting {
		title := "New education"
		if m.ctrl.Mode() == workflow.ModeEdit {
			title = "Edit education"
		}
		b.WriteString(" " + sectionHeaderStyle.Render(title) + "\n\n")
		b.WriteString(renderForm(m.form, false))
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
			b.WriteString(" " + dimStyle.Render("no education yet, press n to add an entry") + "\n")
		}
	}
	for i, e := range visible {
		years := metaStyle.Render(e.Year)
		if i == m.ctrl.Cursor() {
			b.WriteString(" " + accentStyle.Render(">") + " " + selectedStyle.Render(e.InstitutionName) + "  " + years + "\n")
			if desc := oneLine(e.Description); desc != "" {
				b.WriteString("   " + dimStyle.Render(truncStr(desc, 70)) + "\n")
			}
			if m.ctrl.ConfirmingDelete() == e.ID.String() {
				b.WriteString(renderConfirmDelete(e.InstitutionName) + "\n")
			}
		} else {
			b.WriteString("   " + normalStyle.Render(e.InstitutionName) + "  " + years + "\n")
		}
	}

	b.WriteString("\n")
	if msg, isErr := m.ctrl.Status(); msg != "" {
		b.WriteString(renderStatusLine(msg, isErr))
	}
	return b.String()
}

func (m educationModel) helpKeys() string {
	if m.ctrl.State() == workflow.ModalOpen || m.ctrl.State() == workflow.Submitting {
		return helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("/", "search") + "  " + helpEntry("n", "new") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "delete")
}
