package views

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"taskmaster/domain/dto"
	"taskmaster/interfaces/tui/styles"
	"taskmaster/pkg/client"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// authFields lives on the heap so the form can keep pointers into it across rebuilds.
type authFields struct {
	email     string
	password  string
	firstName string
	lastName  string
}

type AuthView struct {
	api    *client.Client
	styles *styles.Styles
	fields *authFields
	form   *huh.Form
	mode   authMode
	busy   bool
	notice string
	err    error
	width  int
	height int
}

func NewAuthView(api *client.Client, email, notice string) *AuthView {
	return &AuthView{
		api:    api,
		styles: styles.NewStyles(),
		fields: &authFields{email: email},
		notice: notice,
	}
}

func (v *AuthView) Init() tea.Cmd {
	v.form = v.buildForm()
	return v.form.Init()
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}

func (v *AuthView) buildForm() *huh.Form {
	f := v.fields
	f.password = ""

	inputs := []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&f.email).
			Validate(required("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&f.password).
			Validate(required("password")),
	}

	if v.mode == modeRegister {
		inputs = append(inputs,
			huh.NewInput().
				Title("First name").
				Value(&f.firstName).
				Validate(required("firstName")),
			huh.NewInput().
				Title("Last name").
				Value(&f.lastName).
				Validate(required("lastName")),
		)
	}

	return huh.NewForm(huh.NewGroup(inputs...)).
		WithWidth(48).
		WithShowHelp(false)
}

func (v *AuthView) submit() tea.Cmd {
	f := *v.fields
	api := v.api

	if v.mode == modeRegister {
		return request("register", func(ctx context.Context) (tea.Msg, error) {
			resp, err := api.Register(ctx, dto.RegisterRequest{
				Email:     strings.TrimSpace(f.email),
				Password:  f.password,
				FirstName: strings.TrimSpace(f.firstName),
				LastName:  strings.TrimSpace(f.lastName),
			})
			if err != nil {
				return nil, err
			}
			return LoggedIn{Auth: resp}, nil
		})
	}

	return request("login", func(ctx context.Context) (tea.Msg, error) {
		resp, err := api.Login(ctx, strings.TrimSpace(f.email), f.password)
		if err != nil {
			return nil, err
		}
		return LoggedIn{Auth: resp}, nil
	})
}

func (v *AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case ErrMsg:
		v.busy = false
		v.err = msg.Err
		v.form = v.buildForm()
		return v, v.form.Init()

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		if msg.String() == "ctrl+t" {
			if v.mode == modeLogin {
				v.mode = modeRegister
			} else {
				v.mode = modeLogin
			}
			v.err = nil
			v.form = v.buildForm()
			return v, v.form.Init()
		}
	}

	if v.form == nil || v.busy {
		return v, nil
	}

	mdl, cmd := v.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		v.busy = true
		v.err = nil
		return v, v.submit()
	case huh.StateAborted:
		return v, tea.Quit
	}
	return v, cmd
}

func (v *AuthView) View() string {
	s := v.styles

	title := "Log in to TaskMaster"
	if v.mode == modeRegister {
		title = "Create a TaskMaster account"
	}

	var body string
	switch {
	case v.busy:
		body = s.TitleMuted.Render("Contacting server...")
	case v.form != nil:
		body = v.form.View()
	}

	hint := helpLine(s, "ctrl+t", "create an account", "enter", "next / submit", "ctrl+c", "quit")
	if v.mode == modeRegister {
		hint = helpLine(s, "ctrl+t", "back to login", "enter", "next / submit", "ctrl+c", "quit")
	}

	parts := []string{s.Title.Render(title), ""}
	if v.notice != "" {
		parts = append(parts, s.TitleMuted.Render(v.notice), "")
	}
	parts = append(parts, body)
	if v.err != nil {
		parts = append(parts, "", errorLine(s, v.err))
	}
	parts = append(parts, hint)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, content)
}
