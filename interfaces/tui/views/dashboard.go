package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"taskmaster/domain/dto"
	"taskmaster/interfaces/tui/keys"
	"taskmaster/interfaces/tui/styles"
	"taskmaster/pkg/client"
)

type statsLoadedMsg struct {
	stats *dto.DashboardStats
}

type overviewLoadedMsg struct {
	overview []dto.ProjectOverview
}

type DashboardView struct {
	api      *client.Client
	styles   *styles.Styles
	keys     keys.KeyMap
	user     dto.PublicUser
	stats    *dto.DashboardStats
	overview []dto.ProjectOverview
	cursor   int
	err      error
	width    int
	height   int
}

func NewDashboardView(api *client.Client, user dto.PublicUser) *DashboardView {
	return &DashboardView{
		api:    api,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		user:   user,
	}
}

func (v *DashboardView) Init() tea.Cmd {
	return v.reload()
}

func (v *DashboardView) reload() tea.Cmd {
	api := v.api
	return tea.Batch(
		request("dashboard stats", func(ctx context.Context) (tea.Msg, error) {
			stats, err := api.DashboardStats(ctx)
			if err != nil {
				return nil, err
			}
			return statsLoadedMsg{stats: stats}, nil
		}),
		request("project overview", func(ctx context.Context) (tea.Msg, error) {
			overview, err := api.ProjectOverview(ctx)
			if err != nil {
				return nil, err
			}
			return overviewLoadedMsg{overview: overview}, nil
		}),
	)
}

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case statsLoadedMsg:
		v.stats = msg.stats
		v.err = nil

	case overviewLoadedMsg:
		v.overview = msg.overview
		v.cursor = min(v.cursor, max(len(v.overview)-1, 0))
		v.err = nil

	case ErrMsg:
		v.err = msg.Err

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Logout):
			return v, emit(LogoutRequested{})
		case key.Matches(msg, v.keys.Projects), msg.String() == "p":
			return v, emit(ShowProjects{})
		case key.Matches(msg, v.keys.Refresh):
			return v, v.reload()
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(v.overview)-1 {
				v.cursor++
			}
		case key.Matches(msg, v.keys.Enter):
			if v.cursor < len(v.overview) {
				return v, v.open(v.overview[v.cursor].ID)
			}
		}
	}
	return v, nil
}

func (v *DashboardView) open(projectID string) tea.Cmd {
	api := v.api
	return request("open project", func(ctx context.Context) (tea.Msg, error) {
		project, err := api.GetProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return OpenProject{Project: *project}, nil
	})
}

func (v *DashboardView) View() string {
	s := v.styles
	width := styles.ContentWidth(v.width)

	header := s.Title.Render("TaskMaster") + s.TitleMuted.Render(fmt.Sprintf("  ·  %s (%s)  ·  id %s", fullName(&v.user), v.user.Email, v.user.ID))

	if v.stats == nil {
		body := s.TitleMuted.Render("Loading dashboard...")
		if v.err != nil {
			body = errorLine(s, v.err)
		}
		return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, header, "", body), v.width, v.height)
	}

	st := v.stats
	panelWidth := max((width-6)/3, 18)

	stat := func(label string, n int) string {
		return s.StatLabel.Render(label+" ") + s.StatValue.Render(fmt.Sprint(n))
	}
	panel := func(title string, lines ...string) string {
		return s.Panel.Width(panelWidth).Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{s.Subtitle.Render(title)}, lines...)...))
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		panel("My tasks",
			stat("Total", st.TaskStats.Total),
			stat("To do", st.TaskStats.Todo),
			stat("In progress", st.TaskStats.InProgress),
			stat("Done", st.TaskStats.Done),
		),
		panel("Projects",
			stat("Total", st.ProjectStats.Total),
			stat("Owned", st.ProjectStats.Owned),
			stat("Member of", st.ProjectStats.Member),
		),
		panel("Comments",
			stat("In my projects", st.CommentStats.TotalComments),
			stat("Written by me", st.CommentStats.MyComments),
		),
	)

	sections := []string{header, "", panels, "", s.Subtitle.Render("Recent activity")}
	sections = append(sections, v.renderActivity(width)...)
	sections = append(sections, "", s.Subtitle.Render("Project overview"))
	sections = append(sections, v.renderOverview(width)...)

	if v.err != nil {
		sections = append(sections, "", errorLine(s, v.err))
	}
	sections = append(sections, helpLine(s, "↑/↓", "select", "↵", "open project", "p", "projects", "r", "refresh", "ctrl+l", "log out", "q", "quit"))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, sections...), v.width, v.height)
}

func (v *DashboardView) renderActivity(width int) []string {
	s := v.styles
	if len(v.stats.RecentActivity) == 0 {
		return []string{s.TitleMuted.Render("  Nothing yet")}
	}

	lines := make([]string, 0, len(v.stats.RecentActivity))
	for _, a := range v.stats.RecentActivity {
		project := "(deleted project)"
		if a.Project != nil {
			project = a.Project.Name
		}
		assignee := "Unassigned"
		if a.Assignee != nil {
			assignee = strings.TrimSpace(a.Assignee.FirstName + " " + a.Assignee.LastName)
		}
		line := fmt.Sprintf("%s  %s  %s",
			s.Status(a.Status),
			truncate(a.Title, max(width/3, 12)),
			s.TitleMuted.Render(fmt.Sprintf("%s · %s · %s", project, assignee, humanize.Time(a.UpdatedAt))),
		)
		lines = append(lines, s.ListItem.Render(line))
	}
	return lines
}

func (v *DashboardView) renderOverview(width int) []string {
	s := v.styles
	if len(v.overview) == 0 {
		return []string{s.TitleMuted.Render("  No projects yet, press p to create one")}
	}

	lines := make([]string, 0, len(v.overview))
	for i, p := range v.overview {
		role := "member"
		if p.IsOwner {
			role = "owner"
		}
		line := fmt.Sprintf("%s  %s  %d/%d done · %s · %s",
			truncate(p.Name, max(width/3, 12)),
			s.TitleMuted.Render(role),
			p.TaskStats.Done, p.TaskStats.Total,
			plural(p.MemberCount, "member"),
			humanize.Time(p.UpdatedAt),
		)
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		lines = append(lines, style.Render(line))
	}
	return lines
}
