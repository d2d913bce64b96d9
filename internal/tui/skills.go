package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliohq/folio/internal/form"
	"github.com/foliohq/folio/internal/imaging"
	"github.com/foliohq/folio/internal/workflow"
	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

var skillSchema = form.Schema{
	Fields: []form.Field{
		{Name: "name", Label: "Name", Kind: form.Text, Required: true},
		{Name: "icon", Label: "Icon", Kind: form.File},
	},
	Multipart: true,
}

type skillsModel struct {
	client *client.Client
	ctrl   *workflow.Controller[domain.Skill]
	form   *form.Form
	height int
}

type skillsLoadedMsg struct {
	skills []domain.Skill
	err    error
}

type skillSavedMsg struct{ err error }

type skillDeletedMsg struct{ err error }

func newSkillsModel(c *client.Client) skillsModel {
	return skillsModel{
		client: c,
		ctrl: workflow.New(
			func(s domain.Skill) string { return s.ID.String() },
			func(s domain.Skill, q string) bool {
				return strings.Contains(strings.ToLower(s.Name), q)
			},
			1,
		),
		form: form.New(skillSchema),
	}
}

func (m skillsModel) Init() tea.Cmd {
	return m.fetch()
}

func (m skillsModel) fetch() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		skills, err := c.ListSkills(context.Background())
		return skillsLoadedMsg{skills: skills, err: err}
	}
}

func (m skillsModel) Update(msg tea.Msg) (skillsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case skillsLoadedMsg:
		if m.ctrl.LoadingInitial() {
			m.ctrl.ListLoaded(msg.skills, msg.err)
		} else {
			m.ctrl.Refreshed(msg.skills, msg.err)
		}
		return m, nil

	case skillSavedMsg:
		if m.ctrl.SubmitDone(msg.err) {
			m.form.Reset()
			m.ctrl.Notify("skill saved")
			return m, m.fetch()
		}
		return m, nil

	case skillDeletedMsg:
		if m.ctrl.DeleteDone(msg.err) {
			m.ctrl.Notify("skill deleted")
			return m, m.fetch()
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m skillsModel) updateKeys(msg tea.KeyMsg) (skillsModel, tea.Cmd) {
	if m.ctrl.State() == workflow.Submitting {
		return m, nil
	}
	if m.ctrl.State() == workflow.ModalOpen {
		return m.updateModalKeys(msg)
	}
	if m.ctrl.Searching() {
		return m.updateSearchKeys(msg)
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
				return skillDeletedMsg{err: c.DeleteSkill(context.Background(), key)}
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
		if skill, ok := m.ctrl.OpenEdit(); ok {
			m.form.Reset()
			m.form.Set("name", skill.Name)
		}
	case "d":
		m.ctrl.RequestDelete()
	}
	return m, nil
}

func (m skillsModel) updateSearchKeys(msg tea.KeyMsg) (skillsModel, tea.Cmd) {
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

func (m skillsModel) updateModalKeys(msg tea.KeyMsg) (skillsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.Cancel()
		m.form.Reset()
	case "tab", "down":
		m.form.Next()
	case "shift+tab", "up":
		m.form.Prev()
	case "ctrl+s", "enter":
		return m.submit()
	default:
		name := m.form.Focused().Name
		m.form.Set(name, editRune(m.form.Get(name), msg.String()))
	}
	return m, nil
}

func (m skillsModel) submit() (skillsModel, tea.Cmd) {
	ok := m.form.Validate()
	if m.ctrl.Mode() == workflow.ModeCreate && m.form.Get("icon") == "" {
		m.form.SetError("icon", "Icon is required for new skills")
		ok = false
	}
	if !ok {
		return m, nil
	}

	payload := client.SkillPayload{Name: strings.TrimSpace(m.form.Get("name"))}
	if path := m.form.Get("icon"); path != "" {
		data, filename, err := imaging.LoadFile(path)
		if err != nil {
			m.form.SetError("icon", "could not read image: "+err.Error())
			return m, nil
		}
		payload.Icon = &client.Upload{Filename: filename, Data: data}
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
			_, err = c.UpdateSkill(context.Background(), editKey, payload)
		} else {
			_, err = c.CreateSkill(context.Background(), payload)
		}
		return skillSavedMsg{err: err}
	}
}

func (m skillsModel) View() string {
	var b strings.Builder

	if m.ctrl.LoadingInitial() {
		return " " + dimStyle.Render("loading skills...")
	}

	if m.ctrl.State() == workflow.ModalOpen || m.ctrl.State() == workflow.Submitting {
		title := "New skill"
		if m.ctrl.Mode() == workflow.ModeEdit {
			title = "Edit skill"
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
			b.WriteString(" " + dimStyle.Render("no skills match") + "\n")
		} else {
			b.WriteString(" " + dimStyle.Render("no skills yet, press n to add one") + "\n")
		}
	}
	for i, s := range visible {
		line := s.Name
		meta := metaStyle.Render(formatTime(s.UpdatedAt))
		if i == m.ctrl.Cursor() {
			b.WriteString(" " + accentStyle.Render(">") + " " + selectedStyle.Render(line) + "  " + meta + "\n")
			if m.ctrl.ConfirmingDelete() == s.ID.String() {
				b.WriteString(renderConfirmDelete(s.Name) + "\n")
			}
		} else {
			b.WriteString("   " + normalStyle.Render(line) + "  " + meta + "\n")
		}
	}

	b.WriteString("\n")
	if msg, isErr := m.ctrl.Status(); msg != "" {
		b.WriteString(renderStatusLine(msg, isErr))
	}
	return b.String()
}

func (m skillsModel) helpKeys() string {
	if m.ctrl.State() == workflow.ModalOpen || m.ctrl.State() == workflow.Submitting {
		return helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("/", "search") + "  " + helpEntry("n", "new") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "delete")
}
