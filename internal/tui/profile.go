package tui

import (
	"context"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliohq/folio/internal/form"
	"github.com/foliohq/folio/internal/imaging"
	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

var profileSchema = form.Schema{
	Fields: []form.Field{
		{Name: "name", Label: "Name", Kind: form.Text, Required: true},
		{Name: "role", Label: "Role", Kind: form.Text, Required: true},
		{Name: "description", Label: "Bio", Kind: form.Multiline},
		{Name: "profilePhoto", Label: "Profile photo", Kind: form.File},
	},
	Multipart: true,
}

// profileState is the singleton screen's lifecycle. There is no list to
// page through: the profile either exists or has not been created yet.
type profileState int

const (
	profileLoading profileState = iota
	profileView
	profileEditing
	profileSaving
)

type profileModel struct {
	client  *client.Client
	state   profileState
	details *domain.UserDetails // nil until the profile exists
	form    *form.Form

	socials     []string // "icon|url" entries being edited
	socialFocus bool
	socialCur   int    // len(socials) is the add row
	socialInput string
	socialErr   string

	statusMsg string
	statusErr bool
	height    int
}

type profileLoadedMsg struct {
	details *domain.UserDetails
	err     error
}

type profileSavedMsg struct {
	details *domain.UserDetails
	err     error
}

func newProfileModel(c *client.Client) profileModel {
	return profileModel{
		client: c,
		state:  profileLoading,
		form:   form.New(profileSchema),
	}
}

func (m profileModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		details, err := c.GetUserDetails(context.Background())
		if client.IsStatus(err, http.StatusNotFound) {
			// No profile yet, the edit form starts from scratch.
			return profileLoadedMsg{}
		}
		return profileLoadedMsg{details: details, err: err}
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case profileLoadedMsg:
		if msg.err != nil {
			m.state = profileView
			m.statusMsg = client.Message(msg.err)
			m.statusErr = true
			return m, nil
		}
		m.details = msg.details
		m.state = profileView
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.state = profileEditing
			m.statusMsg = client.Message(msg.err)
			m.statusErr = true
			return m, nil
		}
		m.details = msg.details
		m.state = profileView
		m.statusMsg = "profile saved"
		m.statusErr = false
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m profileModel) updateKeys(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch m.state {
	case profileLoading, profileSaving:
		return m, nil
	case profileEditing:
		return m.updateEditKeys(msg)
	}

	m.statusMsg = ""
	switch msg.String() {
	case "e", "enter":
		m.startEditing()
	}
	return m, nil
}

func (m *profileModel) startEditing() {
	m.form.Reset()
	m.socials = nil
	m.socialFocus = false
	m.socialCur = 0
	m.socialInput = ""
	m.socialErr = ""
	if m.details != nil {
		m.form.Set("name", m.details.Name)
		m.form.Set("role", m.details.Role)
		m.form.Set("description", m.details.Description)
		m.socials = append([]string(nil), m.details.SocialMedias...)
	}
	m.state = profileEditing
}

func (m profileModel) updateEditKeys(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = profileView
		return m, nil
	case "ctrl+s":
		return m.submit()
	}

	if m.socialFocus {
		return m.updateSocialKeys(msg)
	}

	switch msg.String() {
	case "tab", "down":
		if m.form.FocusIndex() == len(m.form.Schema.Fields)-1 {
			m.socialFocus = true
			m.socialCur = len(m.socials)
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

func (m profileModel) updateSocialKeys(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	onAddRow := m.socialCur >= len(m.socials)

	switch msg.String() {
	case "tab":
		m.socialFocus = false
		return m, nil
	case "up":
		if m.socialCur > 0 {
			m.socialCur--
		} else {
			m.socialFocus = false
		}
		return m, nil
	case "down":
		if m.socialCur < len(m.socials) {
			m.socialCur++
		}
		return m, nil
	}

	if onAddRow {
		switch msg.String() {
		case "enter":
			entry := strings.TrimSpace(m.socialInput)
			if entry == "" {
				return m, nil
			}
			if _, err := domain.ParseSocialMedia(entry); err != nil {
				m.socialErr = "use icon|url, e.g. github|https://github.com/me"
				return m, nil
			}
			m.socials = append(m.socials, entry)
			m.socialInput = ""
			m.socialErr = ""
			m.socialCur = len(m.socials)
		default:
			m.socialErr = ""
			m.socialInput = editRune(m.socialInput, msg.String())
		}
		return m, nil
	}

	switch msg.String() {
	case "x", "d", "backspace":
		m.socials = append(m.socials[:m.socialCur], m.socials[m.socialCur+1:]...)
		if m.socialCur > len(m.socials) {
			m.socialCur = len(m.socials)
		}
	}
	return m, nil
}

func (m profileModel) submit() (profileModel, tea.Cmd) {
	if !m.form.Validate() {
		return m, nil
	}

	payload := client.UserDetailsPayload{
		Name:         strings.TrimSpace(m.form.Get("name")),
		Role:         strings.TrimSpace(m.form.Get("role")),
		Description:  strings.TrimSpace(m.form.Get("description")),
		SocialMedias: m.socials,
	}
	if path := m.form.Get("profilePhoto"); path != "" {
		data, filename, err := imaging.LoadFile(path)
		if err != nil {
			m.form.SetError("profilePhoto", "could not read image: "+err.Error())
			return m, nil
		}
		payload.ProfilePhoto = &client.Upload{Filename: filename, Data: data}
	}

	m.state = profileSaving
	c := m.client
	creating := m.details == nil
	return m, func() tea.Msg {
		var details *domain.UserDetails
		var err error
		if creating {
			details, err = c.CreateUserDetails(context.Background(), payload)
		} else {
			details, err = c.UpdateUserDetails(context.Background(), payload)
		}
		return profileSavedMsg{details: details, err: err}
	}
}

func (m profileModel) View() string {
	var b strings.Builder

	switch m.state {
	case profileLoading:
		return " " + dimStyle.Render("loading profile...")

	case profileEditing, profileSaving:
		b.WriteString(" " + sectionHeaderStyle.Render("Edit profile") + "\n\n")
		b.WriteString(renderForm(m.form, m.socialFocus))
		b.WriteString("\n")
		b.WriteString(" " + sectionHeaderStyle.Render("Social links") + "\n")
		for i, entry := range m.socials {
			if m.socialFocus && i == m.socialCur {
				b.WriteString(" " + accentStyle.Render(">") + " " + selectedStyle.Render(entry) + "  " + dimStyle.Render("x to remove") + "\n")
			} else {
				b.WriteString("   " + normalStyle.Render(entry) + "\n")
			}
		}
		addRow := m.socialInput
		if addRow == "" {
			addRow = inputPlaceholderStyle.Render("icon|url")
		}
		if m.socialFocus && m.socialCur >= len(m.socials) {
			b.WriteString(" " + accentStyle.Render(">") + " " + inputPromptStyle.Render("add:") + " " + addRow + accentStyle.Render("█") + "\n")
		} else {
			b.WriteString("   " + inputPromptStyle.Render("add:") + " " + addRow + "\n")
		}
		if m.socialErr != "" {
			b.WriteString("     " + errorStyle.Render(m.socialErr) + "\n")
		}
		b.WriteString("\n")
		if m.state == profileSaving {
			b.WriteString(" " + dimStyle.Render("saving..."))
		} else if m.statusMsg != "" && m.statusErr {
			b.WriteString(" " + errorStyle.Render(m.statusMsg))
		}
		return b.String()
	}

	if m.details == nil {
		b.WriteString(" " + dimStyle.Render("no profile yet, press e to create one") + "\n")
	} else {
		d := m.details
		b.WriteString(" " + selectedStyle.Render(d.Name) + "  " + metaStyle.Render(d.Role) + "\n")
		if d.Description != "" {
			b.WriteString("\n " + normalStyle.Render(d.Description) + "\n")
		}
		if len(d.SocialMedias) > 0 {
			b.WriteString("\n")
			for _, entry := range d.SocialMedias {
				sm, err := domain.ParseSocialMedia(entry)
				if err != nil {
					continue
				}
				b.WriteString(" " + accentStyle.Render(sm.Icon) + " " + dimStyle.Render(sm.URL) + "\n")
			}
		}
		if d.ProfilePhoto != "" {
			b.WriteString("\n " + metaStyle.Render("photo: "+d.ProfilePhoto) + "\n")
		}
	}

	b.WriteString("\n")
	if m.statusMsg != "" {
		b.WriteString(renderStatusLine(m.statusMsg, m.statusErr))
	}
	return b.String()
}

func (m profileModel) helpKeys() string {
	if m.state == profileEditing || m.state == profileSaving {
		return helpEntry("tab", "section") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("e", "edit")
}
