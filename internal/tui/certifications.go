package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliohq/folio/internal/browser"
	"github.com/foliohq/folio/internal/form"
	"github.com/foliohq/folio/internal/workflow"
	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

var certificationSchema = form.Schema{
	Fields: []form.Field{
		{Name: "name", Label: "Name", Kind: form.Text, Required: true},
		{Name: "issuingOrganization", Label: "Issuer", Kind: form.Text, Required: true},
		{Name: "year", Label: "Year", Kind: form.Year, Required: true},
		{Name: "certificateLink", Label: "Certificate link", Kind: form.URL},
		{Name: "description", Label: "Description", Kind: form.Multiline},
	},
}

type certificationsModel struct {
	client      *client.Client
	ctrl        *workflow.Controller[domain.Certification]
	form        *form.Form
	picker      *skillPicker
	pickerFocus bool
	height      int
}

type certificationsLoadedMsg struct {
	certs []domain.Certification
	err   error
}

type certificationSavedMsg struct{ err error }

type certificationDeletedMsg struct{ err error }

func newCertificationsModel(c *client.Client) certificationsModel {
	return certificationsModel{
		client: c,
		ctrl: workflow.New(
			func(c domain.Certification) string { return c.ID.String() },
			func(c domain.Certification, q string) bool {
				return strings.Contains(strings.ToLower(c.Name), q) ||
					strings.Contains(strings.ToLower(c.IssuingOrganization), q) ||
					strings.Contains(strings.ToLower(c.Description), q)
			},
			2,
		),
		form:   form.New(certificationSchema),
		picker: newSkillPicker(),
	}
}

func (m certificationsModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.fetchSkills())
}

func (m certificationsModel) fetch() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		certs, err := c.ListCertifications(context.Background())
		return certificationsLoadedMsg{certs: certs, err: err}
	}
}

func (m certificationsModel) fetchSkills() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		skills, err := c.ListSkills(context.Background())
		return pickerSkillsMsg{origin: viewCertifications, skills: skills, err: err}
	}
}

func (m certificationsModel) Update(msg tea.Msg) (certificationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case certificationsLoadedMsg:
		if m.ctrl.LoadingInitial() {
			m.ctrl.ListLoaded(msg.certs, msg.err)
		} else {
			m.ctrl.Refreshed(msg.certs, msg.err)
		}
		return m, nil

	case pickerSkillsMsg:
		if msg.err == nil {
			m.picker.SetSkills(msg.skills)
		}
		m.ctrl.DepLoaded(msg.err)
		return m, nil

	case certificationSavedMsg:
		if m.ctrl.SubmitDone(msg.err) {
			m.form.Reset()
			m.picker.Clear()
			m.pickerFocus = false
			m.ctrl.Notify("certification saved")
			return m, m.fetch()
		}
		return m, nil

	case certificationDeletedMsg:
		if m.ctrl.DeleteDone(msg.err) {
			m.ctrl.Notify("certification deleted")
			return m, m.fetch()
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m certificationsModel) updateKeys(msg tea.KeyMsg) (certificationsModel, tea.Cmd) {
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
				return certificationDeletedMsg{err: c.DeleteCertification(context.Background(), key)}
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
		if cert, ok := m.ctrl.OpenEdit(); ok {
			m.populate(cert)
		}
	case "c":
		if cert, ok := m.ctrl.Selected(); ok && cert.CertificateLink != "" {
			if err := clipboard.WriteAll(cert.CertificateLink); err == nil {
				m.ctrl.Notify("link copied")
			}
		}
	case "o":
		if cert, ok := m.ctrl.Selected(); ok && cert.CertificateLink != "" {
			browser.Open(cert.CertificateLink) //nolint:errcheck // best-effort browser open
		}
	case "d":
		m.ctrl.RequestDelete()
	}
	return m, nil
}

func (m *certificationsModel) populate(c domain.Certification) {
	m.form.Reset()
	m.pickerFocus = false
	m.form.Set("name", c.Name)
	m.form.Set("issuingOrganization", c.IssuingOrganization)
	m.form.Set("year", strconv.Itoa(c.Year))
	m.form.Set("certificateLink", c.CertificateLink)
	m.form.Set("description", c.Description)
	m.picker.Select(domain.SkillIDs(c.Skills))
}

func (m certificationsModel) updateModalKeys(msg tea.KeyMsg) (certificationsModel, tea.Cmd) {
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

func (m certificationsModel) submit() (certificationsModel, tea.Cmd) {
	if !m.form.Validate() {
		return m, nil
	}

	year, _ := m.form.Int("year")
	payload := client.CertificationPayload{
		Name:                strings.TrimSpace(m.form.Get("name")),
		IssuingOrganization: strings.TrimSpace(m.form.Get("issuingOrganization")),
		Year:                year,
		CertificateLink:     strings.TrimSpace(m.form.Get("certificateLink")),
		Description:         strings.TrimSpace(m.form.Get("description")),
		SkillIDs:            m.picker.Selected(),
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
			_, err = c.UpdateCertification(context.Background(), editKey, payload)
		} else {
			_, err = c.CreateCertification(context.Background(), payload)
		}
		return certificationSavedMsg{err: err}
	}
}

func (m certificationsModel) View() string {
	var b strings.Builder

	if m.ctrl.LoadingInitial() {
		return " " + dimStyle.Render("loading certifications...")
	}

	if m.ctrl.State() == workflow.ModalOpen || m.ctrl.State() == workflow.Submitting {
		title := "New certification"
		if m.ctrl.Mode() == workflow.ModeEdit {
			title = "Edit certification"
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
			b.WriteString(" " + dimStyle.Render("no certifications match") + "\n")
		} else {
			b.WriteString(" " + dimStyle.Render("no certifications yet, press n to add one") + "\n")
		}
	}
	for i, cert := range visible {
		meta := metaStyle.Render(cert.IssuingOrganization + " " + strconv.Itoa(cert.Year))
		if i == m.ctrl.Cursor() {
			b.WriteString(" " + accentStyle.Render(">") + " " + selectedStyle.Render(cert.Name) + "  " + meta + "\n")
			if cert.CertificateLink != "" {
				b.WriteString("   " + dimStyle.Render(cert.CertificateLink) + "\n")
			}
			if m.ctrl.ConfirmingDelete() == cert.ID.String() {
				b.WriteString(renderConfirmDelete(cert.Name) + "\n")
			}
		} else {
			b.WriteString("   " + normalStyle.Render(cert.Name) + "  " + meta + "\n")
		}
	}

	b.WriteString("\n")
	if msg, isErr := m.ctrl.Status(); msg != "" {
		b.WriteString(renderStatusLine(msg, isErr))
	}
	return b.String()
}

func (m certificationsModel) helpKeys() string {
	if m.ctrl.State() == workflow.ModalOpen || m.ctrl.State() == workflow.Submitting {
		return helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("n", "new") + "  " + helpEntry("e", "edit") + "  " + helpEntry("c", "copy link") + "  " + helpEntry("o", "open") + "  " + helpEntry("d", "delete")
}
