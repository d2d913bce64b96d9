package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foliohq/folio/internal/session"
	"github.com/foliohq/folio/internal/workflow"
	"github.com/foliohq/folio/pkg/client"
)

type view int

const (
	viewSkills view = iota
	viewExperience
	viewEducation
	viewCertifications
	viewProjects
	viewProfile
	viewLogin
)

// App is the root Bubbletea model: the login gate, the tab bar, and the
// per-entity screens.
type App struct {
	client *client.Client
	store  *session.Store

	view           view
	login          loginModel
	skills         skillsModel
	experience     experienceModel
	education      educationModel
	certifications certificationsModel
	projects       projectsModel
	profile        profileModel

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the TUI application. A signed-out store lands on the
// login screen; otherwise the skills tab loads first.
func NewApp(c *client.Client, store *session.Store) App {
	a := App{
		client:         c,
		store:          store,
		login:          newLoginModel(c, store),
		skills:         newSkillsModel(c),
		experience:     newExperienceModel(c),
		education:      newEducationModel(c),
		certifications: newCertificationsModel(c),
		projects:       newProjectsModel(c),
		profile:        newProfileModel(c),
	}
	if store.Authenticated() {
		a.view = viewSkills
	} else {
		a.view = viewLogin
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.view == viewLogin {
		return shimmerTickCmd()
	}
	return tea.Batch(a.skills.Init(), shimmerTickCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.skills, _ = a.skills.Update(bodyMsg)
		a.experience, _ = a.experience.Update(bodyMsg)
		a.education, _ = a.education.Update(bodyMsg)
		a.certifications, _ = a.certifications.Update(bodyMsg)
		a.projects, _ = a.projects.Update(bodyMsg)
		a.profile, _ = a.profile.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case loginDoneMsg:
		if msg.err == nil && msg.user != nil {
			a.client.SetToken(a.store.Token())
			a.view = viewSkills
			return a, a.skills.Init()
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.view == viewLogin {
			switch msg.String() {
			case "ctrl+c":
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}

		if !a.isEditing() {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "ctrl+l":
				return a.logout()
			case "1":
				return a.switchTo(viewSkills)
			case "2":
				return a.switchTo(viewExperience)
			case "3":
				return a.switchTo(viewEducation)
			case "4":
				return a.switchTo(viewCertifications)
			case "5":
				return a.switchTo(viewProjects)
			case "6":
				return a.switchTo(viewProfile)
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	return a.route(msg)
}

func (a App) switchTo(v view) (tea.Model, tea.Cmd) {
	if a.view == v {
		return a, nil
	}
	a.view = v
	switch v {
	case viewSkills:
		return a, a.skills.Init()
	case viewExperience:
		return a, a.experience.Init()
	case viewEducation:
		return a, a.education.Init()
	case viewCertifications:
		return a, a.certifications.Init()
	case viewProjects:
		return a, a.projects.Init()
	case viewProfile:
		return a, a.profile.Init()
	}
	return a, nil
}

func (a App) logout() (tea.Model, tea.Cmd) {
	a.store.Logout() //nolint:errcheck // a stale token file is harmless
	a.client.SetToken("")
	a.view = viewLogin
	a.login = newLoginModel(a.client, a.store)
	return a, nil
}

func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Fetch and mutation results land on the screen that issued them, not
	// the active one. A tab switch mid-fetch must not feed one screen's
	// result into another's loading budget, nor drop the result on the
	// floor.
	switch msg := msg.(type) {
	case skillsLoadedMsg, skillSavedMsg, skillDeletedMsg:
		a.skills, cmd = a.skills.Update(msg)
		return a, cmd
	case experienceLoadedMsg, experienceSavedMsg, experienceDeletedMsg:
		a.experience, cmd = a.experience.Update(msg)
		return a, cmd
	case educationLoadedMsg, educationSavedMsg, educationDeletedMsg:
		a.education, cmd = a.education.Update(msg)
		return a, cmd
	case certificationsLoadedMsg, certificationSavedMsg, certificationDeletedMsg:
		a.certifications, cmd = a.certifications.Update(msg)
		return a, cmd
	case projectsLoadedMsg, projectSavedMsg, projectDeletedMsg:
		a.projects, cmd = a.projects.Update(msg)
		return a, cmd
	case profileLoadedMsg, profileSavedMsg:
		a.profile, cmd = a.profile.Update(msg)
		return a, cmd
	case pickerSkillsMsg:
		switch msg.origin {
		case viewExperience:
			a.experience, cmd = a.experience.Update(msg)
		case viewCertifications:
			a.certifications, cmd = a.certifications.Update(msg)
		case viewProjects:
			a.projects, cmd = a.projects.Update(msg)
		}
		return a, cmd
	}

	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewSkills:
		a.skills, cmd = a.skills.Update(msg)
	case viewExperience:
		a.experience, cmd = a.experience.Update(msg)
	case viewEducation:
		a.education, cmd = a.education.Update(msg)
	case viewCertifications:
		a.certifications, cmd = a.certifications.Update(msg)
	case viewProjects:
		a.projects, cmd = a.projects.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether the active screen owns the keyboard, so tab
// switching and quit stay out of text input.
func (a App) isEditing() bool {
	busy := func(c interface {
		State() workflow.State
		Searching() bool
	}) bool {
		return c.State() == workflow.ModalOpen || c.State() == workflow.Submitting || c.Searching()
	}
	switch a.view {
	case viewLogin:
		return true
	case viewSkills:
		return busy(a.skills.ctrl)
	case viewExperience:
		return busy(a.experience.ctrl)
	case viewEducation:
		return busy(a.education.ctrl)
	case viewCertifications:
		return busy(a.certifications.ctrl)
	case viewProjects:
		return busy(a.projects.ctrl)
	case viewProfile:
		return a.profile.state == profileEditing || a.profile.state == profileSaving
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	identity := ""
	if u := a.store.User(); u != nil {
		identity = metaStyle.Render(u.Email)
	}
	if identity != "" {
		idPad := (a.width - lipgloss.Width(identity)) / 2
		if idPad < 0 {
			idPad = 0
		}
		header += "\n" + strings.Repeat(" ", idPad) + identity
	} else {
		header += "\n"
	}

	if a.view == viewLogin {
		body := a.login.View()
		help := " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+c", "quit")
		body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")
		return header + "\n\n" + body + "\n" + help
	}

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Skills", viewSkills},
		{"2", "Experience", viewExperience},
		{"3", "Education", viewEducation},
		{"4", "Certs", viewCertifications},
		{"5", "Projects", viewProjects},
		{"6", "Profile", viewProfile},
	}

	colWidth := 0
	if a.width > 0 {
		colWidth = a.width / len(tabs)
	}
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, screenHelp string
	switch a.view {
	case viewSkills:
		body = a.skills.View()
		screenHelp = a.skills.helpKeys()
	case viewExperience:
		body = a.experience.View()
		screenHelp = a.experience.helpKeys()
	case viewEducation:
		body = a.education.View()
		screenHelp = a.education.helpKeys()
	case viewCertifications:
		body = a.certifications.View()
		screenHelp = a.certifications.helpKeys()
	case viewProjects:
		body = a.projects.View()
		screenHelp = a.projects.helpKeys()
	case viewProfile:
		body = a.profile.View()
		screenHelp = a.profile.helpKeys()
	}

	help := " " + helpEntry("1-6", "tabs") + "  " + screenHelp + "  " + helpEntry("q", "quit")
	if a.isEditing() {
		help = " " + screenHelp
	}

	// Chrome budget: header(2) + tabs(1) + help(1) = 4 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return header + "\n" + tabBar.String() + "\n" + body + "\n" + help
}
