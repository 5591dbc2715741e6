package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskmaster/domain/models"
)

// Theme represents a color scheme for the client
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

var TokyoNight = Theme{
	Name: "tokyonight",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
}

var Daylight = Theme{
	Name: "daylight",

	Background:    lipgloss.Color("#f5f5f5"),
	Foreground:    lipgloss.Color("#343b58"),
	ForegroundDim: lipgloss.Color("#9699a3"),

	Primary:   lipgloss.Color("#2959aa"),
	Secondary: lipgloss.Color("#5a3e8e"),

	Success: lipgloss.Color("#33635c"),
	Warning: lipgloss.Color("#8f5e15"),
	Error:   lipgloss.Color("#8c4351"),

	Border:      lipgloss.Color("#c4c8da"),
	BorderFocus: lipgloss.Color("#2959aa"),
	Selection:   lipgloss.Color("#d5d6db"),
}

var themes = map[string]Theme{
	TokyoNight.Name: TokyoNight,
	Daylight.Name:   Daylight,
}

// Current holds the active theme
var Current = TokyoNight

// Use switches the active theme. Unknown names keep the current one.
func Use(name string) bool {
	t, ok := themes[strings.ToLower(name)]
	if ok {
		Current = t
	}
	return ok
}

// MaxWidth is the widest the content column grows
const MaxWidth = 110

func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView centers content horizontally when the terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds the pre-computed styles for the UI
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style
	Subtitle   lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	Panel        lipgloss.Style
	PanelFocused lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style

	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style

	Help    lipgloss.Style
	HelpKey lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatValue: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(t.Success),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 1, 0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
	}
}

// Status renders a task status badge
func (s *Styles) Status(status models.TaskStatus) string {
	color := Current.ForegroundDim
	switch status {
	case models.TaskStatusInProgress:
		color = Current.Warning
	case models.TaskStatusDone:
		color = Current.Success
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(status))
}

// Priority renders a task priority badge
func (s *Styles) Priority(priority models.TaskPriority) string {
	color := Current.ForegroundDim
	switch priority {
	case models.PriorityHigh:
		color = Current.Error
	case models.PriorityMedium:
		color = Current.Warning
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(priority))
}
