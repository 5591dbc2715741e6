package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskmaster/domain/dto"
	"taskmaster/interfaces/tui/views"
	"taskmaster/pkg/client"
	"taskmaster/pkg/logger"
)

// Screen is the currently active view
type Screen int

const (
	ScreenStartup Screen = iota
	ScreenAuth
	ScreenDashboard
	ScreenProjects
	ScreenBoard
	ScreenTask
	ScreenMembers
)

const sessionExpiredNotice = "Your session has expired, please log in again."

type sessionRestoredMsg struct {
	user dto.PublicUser
}

// App is the root model. It owns navigation and the session; views own their screens.
type App struct {
	api     *client.Client
	tokens  *TokenStore
	cfg     *Config
	cfgPath string
	user    dto.PublicUser
	screen  Screen
	current tea.Model
	width   int
	height  int
}

// NewApp builds the client. tokens may be nil when no keyring is available; the session then lasts one run.
func NewApp(cfg *Config, cfgPath string, api *client.Client, tokens *TokenStore) *App {
	return &App{
		api:     api,
		tokens:  tokens,
		cfg:     cfg,
		cfgPath: cfgPath,
		screen:  ScreenStartup,
	}
}

func (a *App) Screen() Screen {
	return a.screen
}

func (a *App) Init() tea.Cmd {
	token := ""
	if a.tokens != nil {
		stored, err := a.tokens.Load()
		if err != nil {
			logger.Warn("Could not read stored token", "error", err)
		}
		token = stored
	}

	if token == "" {
		return a.showAuth("")
	}

	a.api.SetToken(token)
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := api.Me(ctx)
		if err != nil {
			return views.ErrMsg{Err: err}
		}
		return sessionRestoredMsg{user: *user}
	}
}

func (a *App) show(screen Screen, m tea.Model) tea.Cmd {
	a.screen = screen
	a.current = m
	size := tea.WindowSizeMsg{Width: a.width, Height: a.height}
	return tea.Batch(m.Init(), func() tea.Msg { return size })
}

func (a *App) showAuth(notice string) tea.Cmd {
	return a.show(ScreenAuth, views.NewAuthView(a.api, a.cfg.Email, notice))
}

// logout forgets the token locally. Tokens are stateless, so the server has nothing to revoke.
func (a *App) logout(notice string) tea.Cmd {
	a.api.SetToken("")
	a.user = dto.PublicUser{}
	if a.tokens != nil {
		if err := a.tokens.Clear(); err != nil {
			logger.Warn("Could not clear stored token", "error", err)
		}
	}
	return a.showAuth(notice)
}

func (a *App) loggedIn(auth *dto.AuthResponse) tea.Cmd {
	a.api.SetToken(auth.Token)
	a.user = auth.User

	if a.tokens != nil {
		if err := a.tokens.Save(auth.Token); err != nil {
			logger.Warn("Could not store token", "error", err)
		}
	}

	if a.cfg.Email != auth.User.Email {
		a.cfg.Email = auth.User.Email
		if err := SaveConfig(a.cfgPath, a.cfg); err != nil {
			logger.Warn("Could not save config", "path", a.cfgPath, "error", err)
		}
	}

	logger.Info("Logged in", "user_id", auth.User.ID)
	return a.show(ScreenDashboard, views.NewDashboardView(a.api, a.user))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if a.screen == ScreenStartup && msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case sessionRestoredMsg:
		a.user = msg.user
		return a, a.show(ScreenDashboard, views.NewDashboardView(a.api, a.user))

	case views.LoggedIn:
		return a, a.loggedIn(msg.Auth)

	case views.LogoutRequested:
		return a, a.logout("Logged out.")

	case views.ShowDashboard:
		return a, a.show(ScreenDashboard, views.NewDashboardView(a.api, a.user))

	case views.ShowProjects:
		return a, a.show(ScreenProjects, views.NewProjectListView(a.api, a.user.ID))

	case views.OpenProject:
		return a, a.show(ScreenBoard, views.NewBoardView(a.api, msg.Project, a.user))

	case views.OpenTask:
		return a, a.show(ScreenTask, views.NewTaskView(a.api, msg.Project, msg.Task, a.user, msg.Names))

	case views.OpenMembers:
		return a, a.show(ScreenMembers, views.NewMembersView(a.api, msg.Project, a.user, msg.Names))

	case views.ErrMsg:
		if a.screen == ScreenStartup {
			if client.IsUnauthorized(msg.Err) {
				return a, a.logout(sessionExpiredNotice)
			}
			return a, a.showAuth("Could not reach the server: " + msg.Err.Error())
		}
		// a 401 anywhere but the login form means the stored token is no longer valid
		if a.screen != ScreenAuth && client.IsUnauthorized(msg.Err) {
			return a, a.logout(sessionExpiredNotice)
		}
	}

	if a.current == nil {
		return a, nil
	}

	var cmd tea.Cmd
	a.current, cmd = a.current.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if a.current == nil {
		return "Connecting to TaskMaster..."
	}
	return a.current.View()
}
