package views

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
	"taskmaster/interfaces/tui/keys"
	"taskmaster/interfaces/tui/styles"
	"taskmaster/pkg/client"
)

// cycle returns the element after current, wrapping around.
func cycle[T comparable](values []T, current T) T {
	i := slices.Index(values, current)
	return values[(i+1)%len(values)]
}

type commentsLoadedMsg struct {
	comments []dto.CommentResponse
}

type commentChangedMsg struct{}

type taskMode int

const (
	taskBrowse taskMode = iota
	taskCommenting
	taskEditingComment
	taskConfirmDelete
)

type commentFields struct {
	content string
	confirm bool
}

type TaskView struct {
	api      *client.Client
	styles   *styles.Styles
	keys     keys.KeyMap
	project  models.Project
	user     dto.PublicUser
	names    map[string]string
	task     dto.TaskResponse
	comments []dto.CommentResponse
	cursor   int
	mode     taskMode
	fields   *commentFields
	form     *huh.Form
	targetID string
	loaded   bool
	err      error
	width    int
	height   int
}

func NewTaskView(api *client.Client, project models.Project, task dto.TaskResponse, user dto.PublicUser, names map[string]string) *TaskView {
	return &TaskView{
		api:     api,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		project: project,
		user:    user,
		names:   names,
		task:    task,
		fields:  &commentFields{},
	}
}

func (v *TaskView) Init() tea.Cmd {
	return v.loadComments()
}

func (v *TaskView) loadComments() tea.Cmd {
	api := v.api
	taskID := v.task.ID
	return request("list comments", func(ctx context.Context) (tea.Msg, error) {
		comments, err := api.ListTaskComments(ctx, taskID)
		if err != nil {
			return nil, err
		}
		return commentsLoadedMsg{comments: comments}, nil
	})
}

func (v *TaskView) selectedComment() (dto.CommentResponse, bool) {
	if v.cursor >= len(v.comments) {
		return dto.CommentResponse{}, false
	}
	return v.comments[v.cursor], true
}

func (v *TaskView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case commentsLoadedMsg:
		v.loaded = true
		v.comments = msg.comments
		v.cursor = min(v.cursor, max(len(v.comments)-1, 0))
		return v, nil

	case commentChangedMsg:
		v.mode = taskBrowse
		v.err = nil
		return v, v.loadComments()

	case taskSavedMsg:
		v.task = msg.task
		v.err = nil
		return v, nil

	case ErrMsg:
		v.loaded = true
		v.mode = taskBrowse
		v.err = msg.Err
		return v, nil
	}

	if v.mode != taskBrowse {
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
	case key.Matches(keyMsg, v.keys.Refresh):
		return v, v.loadComments()
	case key.Matches(keyMsg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(keyMsg, v.keys.Down):
		if v.cursor < len(v.comments)-1 {
			v.cursor++
		}
	case key.Matches(keyMsg, v.keys.Status):
		return v, v.saveTask(dto.UpdateTaskRequest{Status: string(cycle(models.TaskStatuses, v.task.Status))})
	case key.Matches(keyMsg, v.keys.Priority):
		return v, v.saveTask(dto.UpdateTaskRequest{Priority: string(cycle(models.TaskPriorities, v.task.Priority))})
	case key.Matches(keyMsg, v.keys.New), keyMsg.String() == "c":
		v.fields.content = ""
		return v, v.openForm(taskCommenting, v.commentForm("New comment"))
	case key.Matches(keyMsg, v.keys.Edit):
		c, ok := v.selectedComment()
		if !ok {
			return v, nil
		}
		if c.AuthorID != v.user.ID {
			v.err = errors.New("Only the author can edit this comment")
			return v, nil
		}
		v.targetID = c.ID
		v.fields.content = c.Content
		return v, v.openForm(taskEditingComment, v.commentForm("Edit comment"))
	case key.Matches(keyMsg, v.keys.Delete):
		c, ok := v.selectedComment()
		if !ok {
			return v, nil
		}
		v.targetID = c.ID
		v.fields.confirm = false
		return v, v.openForm(taskConfirmDelete, huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Delete this comment?").
					Affirmative("Delete").
					Negative("Cancel").
					Value(&v.fields.confirm),
			),
		).WithWidth(60).WithShowHelp(false).WithKeyMap(formKeys()))
	}
	return v, nil
}

func (v *TaskView) openForm(mode taskMode, form *huh.Form) tea.Cmd {
	v.mode = mode
	v.err = nil
	v.form = form
	return v.form.Init()
}

func (v *TaskView) commentForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Lines(4).
				Value(&v.fields.content).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("Comment cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false).WithKeyMap(formKeys())
}

func (v *TaskView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	mdl, cmd := v.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateAborted:
		v.mode = taskBrowse
		return v, nil
	case huh.StateCompleted:
		return v, v.submitForm()
	}
	return v, cmd
}

func (v *TaskView) submitForm() tea.Cmd {
	api := v.api
	taskID, targetID := v.task.ID, v.targetID
	content := v.fields.content

	switch v.mode {
	case taskCommenting:
		return request("create comment", func(ctx context.Context) (tea.Msg, error) {
			if _, err := api.CreateComment(ctx, taskID, content); err != nil {
				return nil, err
			}
			return commentChangedMsg{}, nil
		})
	case taskEditingComment:
		return request("update comment", func(ctx context.Context) (tea.Msg, error) {
			if _, err := api.UpdateComment(ctx, targetID, content); err != nil {
				return nil, err
			}
			return commentChangedMsg{}, nil
		})
	case taskConfirmDelete:
		if !v.fields.confirm {
			v.mode = taskBrowse
			return nil
		}
		return request("delete comment", func(ctx context.Context) (tea.Msg, error) {
			if err := api.DeleteComment(ctx, targetID); err != nil {
				return nil, err
			}
			return commentChangedMsg{}, nil
		})
	}
	v.mode = taskBrowse
	return nil
}

func (v *TaskView) saveTask(req dto.UpdateTaskRequest) tea.Cmd {
	api := v.api
	id := v.task.ID
	return request("update task", func(ctx context.Context) (tea.Msg, error) {
		task, err := api.UpdateTask(ctx, id, req)
		if err != nil {
			return nil, err
		}
		return taskSavedMsg{task: *task}, nil
	})
}

func (v *TaskView) View() string {
	s := v.styles
	width := styles.ContentWidth(v.width)

	if v.mode != taskBrowse && v.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, s.Title.Render(v.task.Title), "", v.form.View(),
			helpLine(s, "tab", "next", "enter", "submit", "esc", "cancel"))
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, content)
	}

	t := v.task
	meta := fmt.Sprintf("%s  %s  %s",
		s.Status(t.Status),
		s.Priority(t.Priority),
		s.TitleMuted.Render(fmt.Sprintf("assignee: %s · created by %s · updated %s",
			fullName(t.Assignee), memberLabel(v.names, t.CreatedBy), humanize.Time(t.UpdatedAt))),
	)

	description := t.Description
	if description == "" {
		description = "No description"
	}

	sections := []string{
		s.TitleMuted.Render(v.project.Name + " /"),
		s.Title.Render(t.Title),
		meta,
		"",
		s.Panel.Width(width - 4).Render(description),
		"",
		s.Subtitle.Render(fmt.Sprintf("Comments (%d)", len(v.comments))),
	}

	switch {
	case !v.loaded:
		sections = append(sections, s.TitleMuted.Render("Loading comments..."))
	case len(v.comments) == 0:
		sections = append(sections, s.TitleMuted.Render("No comments yet, press c to add one"))
	}

	for i, c := range v.comments {
		author := fullName(c.Author)
		if c.Author == nil {
			author = c.AuthorID
		}
		edited := ""
		if c.UpdatedAt.After(c.CreatedAt) {
			edited = " (edited)"
		}
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		header := fmt.Sprintf("%s · %s%s", author, humanize.Time(c.CreatedAt), edited)
		sections = append(sections, style.Width(width-4).Render(header+"\n"+c.Content))
	}

	if v.err != nil {
		sections = append(sections, "", errorLine(s, v.err))
	}
	sections = append(sections, helpLine(s,
		"s", "status", "p", "priority", "c", "comment", "e", "edit", "d", "delete", "↑/↓", "select", "esc", "board"))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, sections...), v.width, v.height)
}
