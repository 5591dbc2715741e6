package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
	"taskmaster/interfaces/tui/keys"
	"taskmaster/interfaces/tui/styles"
	"taskmaster/pkg/client"
)

type projectItem struct {
	project models.Project
	userID  string
}

func (i projectItem) Title() string { return i.project.Name }

func (i projectItem) Description() string {
	role := "member"
	if i.project.IsOwner(i.userID) {
		role = "owner"
	}
	desc := i.project.Description
	if desc == "" {
		desc = "No description"
	}
	return role + " · " + plural(len(i.project.Members), "member") + " · " + desc
}

func (i projectItem) FilterValue() string { return i.project.Name }

type projectsLoadedMsg struct {
	projects []models.Project
}

type projectDeletedMsg struct {
	id string
}

type projectMode int

const (
	projectsBrowse projectMode = iota
	projectsCreating
	projectsConfirmDelete
)

type projectFields struct {
	name        string
	description string
	confirm     bool
}

type ProjectListView struct {
	api    *client.Client
	userID string
	list   list.Model
	styles *styles.Styles
	keys   keys.KeyMap
	mode   projectMode
	fields *projectFields
	form   *huh.Form
	target *models.Project
	loaded bool
	err    error
	width  int
	height int
}

func NewProjectListView(api *client.Client, userID string) *ProjectListView {
	s := styles.NewStyles()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(styles.Current.Primary).BorderForeground(styles.Current.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(styles.Current.Secondary).BorderForeground(styles.Current.Primary)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Projects"
	l.Styles.Title = s.Title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return &ProjectListView{
		api:    api,
		userID: userID,
		list:   l,
		styles: s,
		keys:   keys.DefaultKeyMap(),
		fields: &projectFields{},
	}
}

func (v *ProjectListView) Init() tea.Cmd {
	return v.load()
}

func (v *ProjectListView) load() tea.Cmd {
	api := v.api
	return request("list projects", func(ctx context.Context) (tea.Msg, error) {
		projects, err := api.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		return projectsLoadedMsg{projects: projects}, nil
	})
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.list.SetSize(styles.ContentWidth(msg.Width)-2, max(msg.Height-6, 5))
		return v, nil

	case projectsLoadedMsg:
		items := make([]list.Item, len(msg.projects))
		for i, p := range msg.projects {
			items[i] = projectItem{project: p, userID: v.userID}
		}
		v.loaded = true
		v.err = nil
		return v, v.list.SetItems(items)

	case projectDeletedMsg:
		v.mode = projectsBrowse
		return v, v.load()

	case ErrMsg:
		v.loaded = true
		v.err = msg.Err
		v.mode = projectsBrowse
		return v, nil
	}

	switch v.mode {
	case projectsCreating, projectsConfirmDelete:
		return v.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && v.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			if v.list.FilterState() == list.FilterApplied {
				break
			}
			return v, emit(ShowDashboard{})
		case key.Matches(msg, v.keys.Refresh):
			return v, v.load()
		case key.Matches(msg, v.keys.New):
			*v.fields = projectFields{}
			v.mode = projectsCreating
			v.err = nil
			v.form = v.buildCreateForm()
			return v, v.form.Init()
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				project := item.project
				v.target = &project
				v.fields.confirm = false
				v.mode = projectsConfirmDelete
				v.err = nil
				v.form = v.buildDeleteForm(project)
				return v, v.form.Init()
			}
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				return v, emit(OpenProject{Project: item.project})
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ProjectListView) buildCreateForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Project name").
				Value(&v.fields.name).
				Validate(required("name")),
			huh.NewInput().
				Title("Description").
				Placeholder("Optional").
				Value(&v.fields.description),
		),
	).WithWidth(56).WithShowHelp(false).WithKeyMap(formKeys())
}

func (v *ProjectListView) buildDeleteForm(project models.Project) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete " + project.Name + "?").
				Description("Its tasks and comments stay in the store but become unreachable.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&v.fields.confirm),
		),
	).WithWidth(56).WithShowHelp(false).WithKeyMap(formKeys())
}

func (v *ProjectListView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	mdl, cmd := v.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateAborted:
		v.mode = projectsBrowse
		return v, nil
	case huh.StateCompleted:
		if v.mode == projectsCreating {
			return v, v.create()
		}
		if v.fields.confirm && v.target != nil {
			return v, v.delete(v.target.ID)
		}
		v.mode = projectsBrowse
		return v, nil
	}
	return v, cmd
}

func (v *ProjectListView) create() tea.Cmd {
	api := v.api
	req := dto.CreateProjectRequest{
		Name:        strings.TrimSpace(v.fields.name),
		Description: strings.TrimSpace(v.fields.description),
	}
	return request("create project", func(ctx context.Context) (tea.Msg, error) {
		project, err := api.CreateProject(ctx, req)
		if err != nil {
			return nil, err
		}
		return OpenProject{Project: *project}, nil
	})
}

func (v *ProjectListView) delete(id string) tea.Cmd {
	api := v.api
	return request("delete project", func(ctx context.Context) (tea.Msg, error) {
		if err := api.DeleteProject(ctx, id); err != nil {
			return nil, err
		}
		return projectDeletedMsg{id: id}, nil
	})
}

func (v *ProjectListView) View() string {
	s := v.styles

	var content string
	switch {
	case v.mode != projectsBrowse && v.form != nil:
		title := "New project"
		if v.mode == projectsConfirmDelete {
			title = "Delete project"
		}
		content = lipgloss.JoinVertical(lipgloss.Left, s.Title.Render(title), "", v.form.View(),
			helpLine(s, "enter", "next / submit", "esc", "cancel"))
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, content)
	case !v.loaded:
		content = s.TitleMuted.Render("Loading projects...")
	case len(v.list.Items()) == 0:
		content = lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Projects"),
			"",
			s.TitleMuted.Render("No projects yet. Press n to create your first one."),
		)
	default:
		content = v.list.View()
	}

	if v.err != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, errorLine(s, v.err))
	}
	content = lipgloss.JoinVertical(lipgloss.Left, content,
		helpLine(s, "↵", "open", "n", "new", "d", "delete", "/", "filter", "r", "refresh", "esc", "dashboard", "q", "quit"))

	return styles.CenterView(content, v.width, v.height)
}
