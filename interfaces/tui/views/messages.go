package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
	"taskmaster/interfaces/tui/styles"
	"taskmaster/pkg/logger"
)

const requestTimeout = 10 * time.Second

// Navigation messages handled by the root model.
type (
	LoggedIn struct {
		Auth *dto.AuthResponse
	}
	ShowDashboard   struct{}
	ShowProjects    struct{}
	LogoutRequested struct{}
	OpenProject     struct {
		Project models.Project
	}
	OpenTask struct {
		Project models.Project
		Task    dto.TaskResponse
		Names   map[string]string
	}
	OpenMembers struct {
		Project models.Project
		Names   map[string]string
	}
)

// ErrMsg carries a failed API call back to the view that issued it.
type ErrMsg struct {
	Err error
}

func (e ErrMsg) Error() string {
	return e.Err.Error()
}

// request runs fn off the UI goroutine with a timeout and turns its error into an ErrMsg.
func request(name string, fn func(ctx context.Context) (tea.Msg, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		start := time.Now()
		msg, err := fn(ctx)
		if err != nil {
			logger.Warn("API request failed", "request", name, "error", err)
			return ErrMsg{Err: err}
		}
		logger.Debug("API request completed", "request", name, "duration_ms", time.Since(start).Milliseconds())
		return msg
	}
}

// formKeys lets esc abort a form as well as ctrl+c.
func formKeys() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"))
	return km
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// helpLine renders "key desc • key desc" pairs.
func helpLine(s *styles.Styles, pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.HelpKey.Render(pairs[i])+" "+pairs[i+1])
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

func errorLine(s *styles.Styles, err error) string {
	if err == nil {
		return ""
	}
	return s.Error.Render("✗ " + err.Error())
}

func fullName(u *dto.PublicUser) string {
	if u == nil {
		return "Unassigned"
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// memberLabel prefers a known display name over the raw user id.
func memberLabel(names map[string]string, userID string) string {
	if name, ok := names[userID]; ok && name != "" {
		return name
	}
	return userID
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
