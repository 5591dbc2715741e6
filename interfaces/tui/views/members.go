package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
	"taskmaster/interfaces/tui/keys"
	"taskmaster/interfaces/tui/styles"
	"taskmaster/pkg/client"
)

type membersChangedMsg struct {
	project models.Project
}

type membersMode int

const (
	membersBrowse membersMode = iota
	membersAdding
	membersConfirmRemove
)

type memberFields struct {
	userID  string
	confirm bool
}

// MembersView manages a project's members. Only the owner's changes are accepted by the server.
type MembersView struct {
	api     *client.Client
	styles  *styles.Styles
	keys    keys.KeyMap
	project models.Project
	user    dto.PublicUser
	names   map[string]string
	cursor  int
	mode    membersMode
	fields  *memberFields
	form    *huh.Form
	notice  string
	err     error
	width   int
	height  int
}

func NewMembersView(api *client.Client, project models.Project, user dto.PublicUser, names map[string]string) *MembersView {
	return &MembersView{
		api:     api,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		project: project,
		user:    user,
		names:   names,
		fields:  &memberFields{},
	}
}

func (v *MembersView) Init() tea.Cmd {
	return nil
}

func (v *MembersView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case membersChangedMsg:
		v.mode = membersBrowse
		v.err = nil
		v.project = msg.project
		v.cursor = min(v.cursor, max(len(v.project.Members)-1, 0))
		return v, nil

	case ErrMsg:
		v.mode = membersBrowse
		v.notice = ""
		v.err = msg.Err
		return v, nil
	}

	if v.mode != membersBrowse {
		return v.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch {
	case key.Matches(keyMsg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(keyMsg, v.keys.Back):
		return v, emit(OpenProject{Project: v.project})
	case key.Matches(keyMsg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(keyMsg, v.keys.Down):
		if v.cursor < len(v.project.Members)-1 {
			v.cursor++
		}
	case key.Matches(keyMsg, v.keys.New):
		*v.fields = memberFields{}
		v.mode = membersAdding
		v.err = nil
		v.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("User id").
					Description("Ask your teammate for the id shown on their dashboard.").
					Value(&v.fields.userID).
					Validate(required("userId")),
			),
		).WithWidth(60).WithShowHelp(false).WithKeyMap(formKeys())
		return v, v.form.Init()
	case key.Matches(keyMsg, v.keys.Delete):
		if v.cursor < len(v.project.Members) {
			target := v.project.Members[v.cursor]
			*v.fields = memberFields{userID: target}
			v.mode = membersConfirmRemove
			v.err = nil
			v.form = huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Remove " + memberLabel(v.names, target) + " from " + v.project.Name + "?").
						Affirmative("Remove").
						Negative("Cancel").
						Value(&v.fields.confirm),
				),
			).WithWidth(60).WithShowHelp(false).WithKeyMap(formKeys())
			return v, v.form.Init()
		}
	}
	return v, nil
}

func (v *MembersView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	mdl, cmd := v.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateAborted:
		v.mode = membersBrowse
		return v, nil
	case huh.StateCompleted:
		userID := strings.TrimSpace(v.fields.userID)
		api, projectID := v.api, v.project.ID
		if v.mode == membersAdding {
			v.notice = "Added " + userID
			return v, v.change("add member", func(ctx context.Context) (*models.Project, error) {
				return api.AddMember(ctx, projectID, userID)
			})
		}
		if v.fields.confirm {
			v.notice = "Removed " + memberLabel(v.names, userID)
			return v, v.change("remove member", func(ctx context.Context) (*models.Project, error) {
				return api.RemoveMember(ctx, projectID, userID)
			})
		}
		v.mode = membersBrowse
		return v, nil
	}
	return v, cmd
}

func (v *MembersView) change(name string, fn func(ctx context.Context) (*models.Project, error)) tea.Cmd {
	return request(name, func(ctx context.Context) (tea.Msg, error) {
		project, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return membersChangedMsg{project: *project}, nil
	})
}

func (v *MembersView) View() string {
	s := v.styles

	if v.mode != membersBrowse && v.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, s.Title.Render("Members of "+v.project.Name), "", v.form.View(),
			helpLine(s, "enter", "submit", "esc", "cancel"))
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, content)
	}

	lines := []string{
		s.Title.Render("Members of " + v.project.Name),
		s.TitleMuted.Render("Your user id: " + v.user.ID),
		"",
	}
	for i, id := range v.project.Members {
		label := memberLabel(v.names, id)
		if label != id {
			label += "  " + s.TitleMuted.Render(id)
		}
		if v.project.IsOwner(id) {
			label += s.Subtitle.Render("  owner")
		}
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		lines = append(lines, style.Render(label))
	}

	if !v.project.IsOwner(v.user.ID) {
		lines = append(lines, "", s.TitleMuted.Render("Only the project owner can add or remove members."))
	}
	if v.err != nil {
		lines = append(lines, "", errorLine(s, v.err))
	} else if v.notice != "" {
		lines = append(lines, "", s.Success.Render("✓ "+v.notice))
	}
	lines = append(lines, helpLine(s, "↑/↓", "select", "n", "add", "d", "remove", "esc", "board"))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, lines...), v.width, v.height)
}
