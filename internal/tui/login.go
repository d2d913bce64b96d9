package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliohq/folio/internal/session"
	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

type loginField int

const (
	fieldIdentifier loginField = iota
	fieldPassword
	numLoginFields
)

type loginModel struct {
	client     *client.Client
	store      *session.Store
	fields     [numLoginFields]string
	focus      loginField
	submitting bool
	statusMsg  string
}

type loginDoneMsg struct {
	user *domain.User
	err  error
}

func newLoginModel(c *client.Client, store *session.Store) loginModel {
	return loginModel{client: c, store: store}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.statusMsg = client.Message(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	m.statusMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numLoginFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
	case "enter":
		if m.focus == fieldIdentifier {
			m.focus = fieldPassword
			return m, nil
		}
		return m.submit()
	default:
		m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	identifier := strings.TrimSpace(m.fields[fieldIdentifier])
	password := m.fields[fieldPassword]

	if identifier == "" {
		m.statusMsg = "email or username is required"
		m.focus = fieldIdentifier
		return m, nil
	}
	if password == "" {
		m.statusMsg = "password is required"
		m.focus = fieldPassword
		return m, nil
	}

	m.submitting = true
	return m, func() tea.Msg {
		user, err := m.store.Login(context.Background(), m.client, identifier, password)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("Sign in") + "\n\n")

	labels := [numLoginFields]string{"email or username", "password"}
	for i := loginField(0); i < numLoginFields; i++ {
		cursor := "  "
		style := inputPromptStyle
		if i == m.focus {
			cursor = accentStyle.Render(">") + " "
			style = selectedStyle
		}

		value := m.fields[i]
		if i == fieldPassword {
			value = strings.Repeat("*", len(value))
		}
		if i == m.focus {
			value += accentStyle.Render("█")
		}
		b.WriteString(" " + cursor + style.Render(labels[i]+":") + " " + value + "\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("signing in..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + errorStyle.Render(m.statusMsg))
	} else {
		b.WriteString(" " + dimStyle.Render("enter to sign in"))
	}

	return b.String()
}
