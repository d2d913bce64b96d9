package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliohq/folio/internal/form"
	"github.com/foliohq/folio/internal/imaging"
	"github.com/foliohq/folio/internal/workflow"
	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

var projectSchema = form.Schema{
	Fields: []form.Field{
		{Name: "title", Label: "Title", Kind: form.Text, Required: true},
		{Name: "slug", Label: "Slug", Kind: form.Slug, Required: true},
		{Name: "description", Label: "Description", Kind: form.Text, Required: true},
		{Name: "content", Label: "Content", Kind: form.Multiline},
		{Name: "coverImage", Label: "Cover image", Kind: form.File},
		{Name: "published", Label: "Published", Kind: form.Toggle},
		{Name: "highlighted", Label: "Highlighted", Kind: form.Toggle},
	},
	Multipart: true,
}

// projectFocus is the modal's focus zone: the form fields, the content
// image list, or the skill picker.
type projectFocus int

const (
	focusFields projectFocus = iota
	focusImages
	focusPicker
)

type projectsModel struct {
	client *client.Client
	ctrl   *workflow.Controller[domain.Project]
	form   *form.Form
	picker *skillPicker
	focus  projectFocus

	images     *workflow.ImageList
	imgCursor  int    // cursor over image slots; len(slots) is the add row
	imgInput   string // path being typed on the add row
	imgErr     string
	slugManual bool // user touched the slug, stop deriving it from the title
	editPubAt  *time.Time
	height     int
}

type projectsLoadedMsg struct {
	projects []domain.Project
	err      error
}

type projectSavedMsg struct{ err error }

type projectDeletedMsg struct{ err error }

func newProjectsModel(c *client.Client) projectsModel {
	return projectsModel{
		client: c,
		ctrl: workflow.New(
			func(p domain.Project) string { return p.ID.String() },
			func(p domain.Project, q string) bool {
				return strings.Contains(strings.ToLower(p.Title), q) ||
					strings.Contains(strings.ToLower(p.Slug), q) ||
					strings.Contains(strings.ToLower(p.Description), q)
			},
			2,
		),
		form:   form.New(projectSchema),
		picker: newSkillPicker(),
		images: workflow.NewImageList(nil),
	}
}

func (m projectsModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.fetchSkills())
}

func (m projectsModel) fetch() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		projects, err := c.ListProjects(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (m projectsModel) fetchSkills() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		skills, err := c.ListSkills(context.Background())
		return pickerSkillsMsg{origin: viewProjects, skills: skills, err: err}
	}
}

func (m projectsModel) Update(msg tea.Msg) (projectsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case projectsLoadedMsg:
		if m.ctrl.LoadingInitial() {
			m.ctrl.ListLoaded(msg.projects, msg.err)
		} else {
			m.ctrl.Refreshed(msg.projects, msg.err)
		}
		return m, nil

	case pickerSkillsMsg:
		if msg.err == nil {
			m.picker.SetSkills(msg.skills)
		}
		m.ctrl.DepLoaded(msg.err)
		return m, nil

	case projectSavedMsg:
		if m.ctrl.SubmitDone(msg.err) {
			m.resetModal()
			m.ctrl.Notify("project saved")
			return m, m.fetch()
		}
		return m, nil

	case projectDeletedMsg:
		if m.ctrl.DeleteDone(msg.err) {
			m.ctrl.Notify("project deleted")
			return m, m.fetch()
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *projectsModel) resetModal() {
	m.form.Reset()
	m.picker.Clear()
	m.images = workflow.NewImageList(nil)
	m.focus = focusFields
	m.imgCursor = 0
	m.imgInput = ""
	m.imgErr = ""
	m.slugManual = false
	m.editPubAt = nil
}

func (m projectsModel) updateKeys(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
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
				return projectDeletedMsg{err: c.DeleteProject(context.Background(), key)}
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
			m.resetModal()
		}
	case "e", "enter":
		if p, ok := m.ctrl.OpenEdit(); ok {
			m.populate(p)
		}
	case "c":
		if p, ok := m.ctrl.Selected(); ok {
			if err := clipboard.WriteAll(p.Slug); err == nil {
				m.ctrl.Notify("slug copied")
			}
		}
	case "d":
		m.ctrl.RequestDelete()
	}
	return m, nil
}

func (m *projectsModel) populate(p domain.Project) {
	m.resetModal()
	m.slugManual = true // editing never rewrites an existing slug
	m.form.Set("title", p.Title)
	m.form.Set("slug", p.Slug)
	m.form.Set("description", p.Description)
	m.form.Set("content", p.Content)
	m.form.SetBool("published", p.Published())
	m.form.SetBool("highlighted", p.Highlighted)
	m.images = workflow.NewImageList(p.ContentImages)
	m.picker.Select(domain.SkillIDs(p.Skills))
	m.editPubAt = p.PublishedAt
}

func (m projectsModel) updateModalKeys(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.Cancel()
		m.resetModal()
		return m, nil
	case "ctrl+s":
		return m.submit()
	}

	switch m.focus {
	case focusPicker:
		switch msg.String() {
		case "tab":
			m.focus = focusFields
		case "shift+tab", "up", "k":
			if m.picker.cursor == 0 {
				m.focus = focusImages
			} else {
				m.picker.CursorUp()
			}
		case "down", "j":
			m.picker.CursorDown()
		case " ", "enter":
			m.picker.Toggle()
		}
		return m, nil

	case focusImages:
		return m.updateImageKeys(msg)
	}

	switch msg.String() {
	case "tab", "down":
		if m.form.FocusIndex() == len(m.form.Schema.Fields)-1 {
			m.focus = focusImages
			m.imgCursor = m.images.Len() // start on the add row
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
		m.editField(" ")
	case "enter":
		if m.form.Focused().Kind == form.Multiline {
			name := m.form.Focused().Name
			m.form.Set(name, m.form.Get(name)+"\n")
		} else {
			m.form.Next()
		}
	default:
		m.editField(msg.String())
	}
	return m, nil
}

// editField applies a keystroke to the focused field, deriving the slug
// from the title until the user edits the slug themselves. Derivation only
// happens while creating; edits never rewrite a persisted slug.
func (m *projectsModel) editField(key string) {
	name := m.form.Focused().Name
	m.form.Set(name, editRune(m.form.Get(name), key))
	switch name {
	case "slug":
		m.slugManual = true
	case "title":
		if m.ctrl.Mode() == workflow.ModeCreate && !m.slugManual {
			m.form.Set("slug", domain.Slugify(m.form.Get("title")))
		}
	}
}

func (m projectsModel) updateImageKeys(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	onAddRow := m.imgCursor >= m.images.Len()

	switch msg.String() {
	case "tab":
		m.focus = focusPicker
		return m, nil
	case "shift+tab":
		m.focus = focusFields
		return m, nil
	case "up":
		if m.imgCursor > 0 {
			m.imgCursor--
		} else {
			m.focus = focusFields
		}
		return m, nil
	case "down":
		if m.imgCursor < m.images.Len() {
			m.imgCursor++
		}
		return m, nil
	}

	if onAddRow {
		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(m.imgInput)
			if path == "" {
				return m, nil
			}
			data, filename, err := imaging.LoadFile(path)
			if err != nil {
				m.imgErr = "could not read image: " + err.Error()
				return m, nil
			}
			m.images.AddPending(client.Upload{Filename: filename, Data: data})
			m.imgInput = ""
			m.imgErr = ""
			m.imgCursor = m.images.Len()
		default:
			m.imgErr = ""
			m.imgInput = editRune(m.imgInput, msg.String())
		}
		return m, nil
	}

	switch msg.String() {
	case "x", "d", "backspace":
		if m.images.RemoveAt(m.imgCursor) && m.imgCursor > m.images.Len() {
			m.imgCursor = m.images.Len()
		}
	}
	return m, nil
}

func (m projectsModel) submit() (projectsModel, tea.Cmd) {
	if !m.form.Validate() {
		return m, nil
	}

	published := m.form.Bool("published")
	payload := client.ProjectPayload{
		Title:                 strings.TrimSpace(m.form.Get("title")),
		Slug:                  m.form.Get("slug"),
		Description:           strings.TrimSpace(m.form.Get("description")),
		Content:               m.form.Get("content"),
		Published:             published,
		Highlighted:           m.form.Bool("highlighted"),
		SkillIDs:              m.picker.Selected(),
		ContentImages:         m.images.PendingUploads(),
		ExistingContentImages: m.images.ExistingRefs(),
	}
	// Keep the original publish time across edits; stamp a fresh one only
	// when the project first goes public.
	if published {
		if m.editPubAt != nil {
			payload.PublishedAt = m.editPubAt
		} else {
			now := time.Now().UTC()
			payload.PublishedAt = &now
		}
	}
	if path := m.form.Get("coverImage"); path != "" {
		data, filename, err := imaging.LoadFile(path)
		if err != nil {
			m.form.SetError("coverImage", "could not read image: "+err.Error())
			return m, nil
		}
		payload.CoverImage = &client.Upload{Filename: filename, Data: data}
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
			_, err = c.UpdateProject(context.Background(), editKey, payload)
		} else {
			_, err = c.CreateProject(context.Background(), payload)
		}
		return projectSavedMsg{err: err}
	}
}

func (m projectsModel) View() string {
	var b strings.Builder

	if m.ctrl.LoadingInitial() {
		return " " + dimStyle.Render("loading projects...")
	}

	if m.ctrl.State() == workflow.ModalOpen || m.ctrl.State() == workflow.Submitting {
		return m.modalView()
	}

	b.WriteString(renderSearchBar(m.ctrl.Searching(), m.ctrl.Search()) + "\n\n")

	visible := m.ctrl.Visible()
	if len(visible) == 0 {
		if m.ctrl.Search() != "" {
			b.WriteString(" " + dimStyle.Render("no projects match") + "\n")
		} else {
			b.WriteString(" " + dimStyle.Render("no projects yet, press n to add one") + "\n")
		}
	}
	for i, p := range visible {
		badge := draftStyle.Render("draft")
		if p.Published() {
			badge = publishedStyle.Render("published")
		}
		if p.Highlighted {
			badge += " " + highlightBadgeStyle.Render("★")
		}
		slug := metaStyle.Render("/" + p.Slug)
		if i == m.ctrl.Cursor() {
			b.WriteString(" " + accentStyle.Render(">") + " " + selectedStyle.Render(p.Title) + "  " + slug + "  " + badge + "\n")
			if desc := oneLine(p.Description); desc != "" {
				b.WriteString("   " + dimStyle.Render(truncStr(desc, 70)) + "\n")
			}
			if m.ctrl.ConfirmingDelete() == p.ID.String() {
				b.WriteString(renderConfirmDelete(p.Title) + "\n")
			}
		} else {
			b.WriteString("   " + normalStyle.Render(p.Title) + "  " + slug + "  " + badge + "\n")
		}
	}

	b.WriteString("\n")
	if msg, isErr := m.ctrl.Status(); msg != "" {
		b.WriteString(renderStatusLine(msg, isErr))
	}
	return b.String()
}

func (m projectsModel) modalView() string {
	var b strings.Builder

	title := "New project"
	if m.ctrl.Mode() == workflow.ModeEdit {
		title = "Edit project"
	}
	b.WriteString(" " + sectionHeaderStyle.Render(title) + "\n\n")
	b.WriteString(renderForm(m.form, m.focus != focusFields))
	b.WriteString("\n")

	b.WriteString(" " + sectionHeaderStyle.Render("Content images") + "\n")
	for i, slot := range m.images.Slots() {
		label := slot.Ref
		if !slot.Persisted() {
			label = slot.File.Filename + " " + dimStyle.Render("(pending upload)")
		}
		if m.focus == focusImages && i == m.imgCursor {
			b.WriteString(" " + accentStyle.Render(">") + " " + selectedStyle.Render(label) + "  " + dimStyle.Render("x to remove") + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(label) + "\n")
		}
	}
	addRow := m.imgInput
	if addRow == "" {
		addRow = inputPlaceholderStyle.Render("path to image file")
	}
	if m.focus == focusImages && m.imgCursor >= m.images.Len() {
		b.WriteString(" " + accentStyle.Render(">") + " " + inputPromptStyle.Render("add:") + " " + addRow + accentStyle.Render("█") + "\n")
	} else {
		b.WriteString("   " + inputPromptStyle.Render("add:") + " " + addRow + "\n")
	}
	if m.imgErr != "" {
		b.WriteString("     " + errorStyle.Render(m.imgErr) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.picker.View(m.focus == focusPicker))
	b.WriteString("\n")

	if m.ctrl.State() == workflow.Submitting {
		b.WriteString(" " + dimStyle.Render("saving..."))
	} else if msg, isErr := m.ctrl.Status(); msg != "" && isErr {
		b.WriteString(" " + errorStyle.Render(msg))
	}
	return b.String()
}

func (m projectsModel) helpKeys() string {
	if m.ctrl.State() == workflow.ModalOpen || m.ctrl.State() == workflow.Submitting {
		return helpEntry("tab", "section") + "  " + helpEntry("space", "toggle") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("n", "new") + "  " + helpEntry("e", "edit") + "  " + helpEntry("c", "copy slug") + "  " + helpEntry("d", "delete")
}
