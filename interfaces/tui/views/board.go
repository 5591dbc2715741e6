package views

import (
	"context"
	"fmt"
	"slices"
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

var columnTitles = map[models.TaskStatus]string{
	models.TaskStatusTodo:       "To do",
	models.TaskStatusInProgress: "In progress",
	models.TaskStatusDone:       "Done",
}

// columnOf maps a status onto its board column. Unknown statuses land in the first column.
func columnOf(status models.TaskStatus) int {
	if i := slices.Index(models.TaskStatuses, status); i >= 0 {
		return i
	}
	return 0
}

func groupByStatus(tasks []dto.TaskResponse) [][]dto.TaskResponse {
	columns := make([][]dto.TaskResponse, len(models.TaskStatuses))
	for _, t := range tasks {
		c := columnOf(t.Status)
		columns[c] = append(columns[c], t)
	}
	return columns
}

// shiftStatus moves a status delta columns along the board; ok is false past either edge.
func shiftStatus(status models.TaskStatus, delta int) (models.TaskStatus, bool) {
	i := columnOf(status) + delta
	if i < 0 || i >= len(models.TaskStatuses) {
		return status, false
	}
	return models.TaskStatuses[i], true
}

// knownNames collects display names the client has seen, keyed by user id.
func knownNames(self dto.PublicUser, tasks []dto.TaskResponse) map[string]string {
	names := map[string]string{self.ID: fullName(&self) + " (you)"}
	for _, t := range tasks {
		if t.Assignee != nil {
			if _, ok := names[t.Assignee.ID]; !ok {
				names[t.Assignee.ID] = fullName(t.Assignee)
			}
		}
	}
	return names
}

type tasksLoadedMsg struct {
	tasks []dto.TaskResponse
}

type taskSavedMsg struct {
	task dto.TaskResponse
}

type taskDeletedMsg struct {
	id string
}

type boardMode int

const (
	boardBrowse boardMode = iota
	boardCreating
	boardConfirmDelete
)

type taskFields struct {
	title       string
	description string
	priority    string
	assignee    string
	confirm     bool
}

type BoardView struct {
	api     *client.Client
	styles  *styles.Styles
	keys    keys.KeyMap
	project models.Project
	user    dto.PublicUser
	tasks   []dto.TaskResponse
	columns [][]dto.TaskResponse
	col     int
	row     int
	mode    boardMode
	fields  *taskFields
	form    *huh.Form
	target  *dto.TaskResponse
	loaded  bool
	err     error
	width   int
	height  int
}

func NewBoardView(api *client.Client, project models.Project, user dto.PublicUser) *BoardView {
	return &BoardView{
		api:     api,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		project: project,
		user:    user,
		columns: groupByStatus(nil),
		fields:  &taskFields{},
	}
}

func (v *BoardView) Init() tea.Cmd {
	return v.load()
}

func (v *BoardView) load() tea.Cmd {
	api := v.api
	projectID := v.project.ID
	return request("list project tasks", func(ctx context.Context) (tea.Msg, error) {
		tasks, err := api.ListProjectTasks(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return tasksLoadedMsg{tasks: tasks}, nil
	})
}

func (v *BoardView) selected() (dto.TaskResponse, bool) {
	if v.col >= len(v.columns) || v.row >= len(v.columns[v.col]) {
		return dto.TaskResponse{}, false
	}
	return v.columns[v.col][v.row], true
}

func (v *BoardView) setTasks(tasks []dto.TaskResponse) {
	v.tasks = tasks
	v.columns = groupByStatus(tasks)
	v.clampRow()
}

func (v *BoardView) clampRow() {
	v.row = min(v.row, max(len(v.columns[v.col])-1, 0))
}

// focus moves the cursor onto the task with the given id.
func (v *BoardView) focus(id string) {
	for c, column := range v.columns {
		for r, t := range column {
			if t.ID == id {
				v.col, v.row = c, r
				return
			}
		}
	}
}

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tasksLoadedMsg:
		v.loaded = true
		v.err = nil
		v.setTasks(msg.tasks)
		return v, nil

	case taskSavedMsg:
		v.mode = boardBrowse
		v.err = nil
		tasks := slices.Clone(v.tasks)
		if i := slices.IndexFunc(tasks, func(t dto.TaskResponse) bool { return t.ID == msg.task.ID }); i >= 0 {
			tasks[i] = msg.task
		} else {
			tasks = append(tasks, msg.task)
		}
		v.setTasks(tasks)
		v.focus(msg.task.ID)
		return v, nil

	case taskDeletedMsg:
		v.mode = boardBrowse
		v.setTasks(slices.DeleteFunc(slices.Clone(v.tasks), func(t dto.TaskResponse) bool { return t.ID == msg.id }))
		return v, nil

	case ErrMsg:
		v.loaded = true
		v.mode = boardBrowse
		v.err = msg.Err
		return v, nil
	}

	if v.mode != boardBrowse {
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
		return v, emit(ShowProjects{})
	case key.Matches(keyMsg, v.keys.Refresh):
		return v, v.load()
	case key.Matches(keyMsg, v.keys.Members):
		return v, emit(OpenMembers{Project: v.project, Names: knownNames(v.user, v.tasks)})
	case key.Matches(keyMsg, v.keys.MoveLeft):
		return v, v.move(-1)
	case key.Matches(keyMsg, v.keys.MoveRight):
		return v, v.move(1)
	case key.Matches(keyMsg, v.keys.Left):
		if v.col > 0 {
			v.col--
			v.clampRow()
		}
	case key.Matches(keyMsg, v.keys.Right):
		if v.col < len(v.columns)-1 {
			v.col++
			v.clampRow()
		}
	case key.Matches(keyMsg, v.keys.Up):
		if v.row > 0 {
			v.row--
		}
	case key.Matches(keyMsg, v.keys.Down):
		if v.row < len(v.columns[v.col])-1 {
			v.row++
		}
	case key.Matches(keyMsg, v.keys.Enter):
		if t, ok := v.selected(); ok {
			return v, emit(OpenTask{Project: v.project, Task: t, Names: knownNames(v.user, v.tasks)})
		}
	case key.Matches(keyMsg, v.keys.New):
		*v.fields = taskFields{priority: string(models.PriorityMedium)}
		v.mode = boardCreating
		v.err = nil
		v.form = v.buildCreateForm()
		return v, v.form.Init()
	case key.Matches(keyMsg, v.keys.Delete):
		if t, ok := v.selected(); ok {
			v.target = &t
			v.fields.confirm = false
			v.mode = boardConfirmDelete
			v.err = nil
			v.form = v.buildDeleteForm(t)
			return v, v.form.Init()
		}
	}
	return v, nil
}

func (v *BoardView) move(delta int) tea.Cmd {
	t, ok := v.selected()
	if !ok {
		return nil
	}
	status, ok := shiftStatus(t.Status, delta)
	if !ok {
		return nil
	}
	return v.save(t.ID, dto.UpdateTaskRequest{Status: string(status)})
}

func (v *BoardView) save(id string, req dto.UpdateTaskRequest) tea.Cmd {
	api := v.api
	return request("update task", func(ctx context.Context) (tea.Msg, error) {
		task, err := api.UpdateTask(ctx, id, req)
		if err != nil {
			return nil, err
		}
		return taskSavedMsg{task: *task}, nil
	})
}

func (v *BoardView) assigneeOptions() []huh.Option[string] {
	names := knownNames(v.user, v.tasks)
	options := []huh.Option[string]{huh.NewOption("Unassigned", "")}
	for _, id := range v.project.Members {
		options = append(options, huh.NewOption(memberLabel(names, id), id))
	}
	return options
}

func (v *BoardView) buildCreateForm() *huh.Form {
	priorities := make([]huh.Option[string], 0, len(models.TaskPriorities))
	for _, p := range models.TaskPriorities {
		priorities = append(priorities, huh.NewOption(string(p), string(p)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.fields.title).
				Validate(required("title")),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&v.fields.description),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorities...).
				Value(&v.fields.priority),
			huh.NewSelect[string]().
				Title("Assignee").
				Options(v.assigneeOptions()...).
				Value(&v.fields.assignee),
		),
	).WithWidth(60).WithShowHelp(false).WithKeyMap(formKeys())
}

func (v *BoardView) buildDeleteForm(t dto.TaskResponse) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete \"" + t.Title + "\"?").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&v.fields.confirm),
		),
	).WithWidth(60).WithShowHelp(false).WithKeyMap(formKeys())
}

func (v *BoardView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	mdl, cmd := v.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateAborted:
		v.mode = boardBrowse
		return v, nil
	case huh.StateCompleted:
		if v.mode == boardCreating {
			return v, v.create()
		}
		if v.fields.confirm && v.target != nil {
			return v, v.delete(v.target.ID)
		}
		v.mode = boardBrowse
		return v, nil
	}
	return v, cmd
}

func (v *BoardView) create() tea.Cmd {
	api := v.api
	req := dto.CreateTaskRequest{
		Title:       strings.TrimSpace(v.fields.title),
		ProjectID:   v.project.ID,
		Description: strings.TrimSpace(v.fields.description),
		AssignedTo:  v.fields.assignee,
		Priority:    v.fields.priority,
	}
	return request("create task", func(ctx context.Context) (tea.Msg, error) {
		task, err := api.CreateTask(ctx, req)
		if err != nil {
			return nil, err
		}
		return taskSavedMsg{task: *task}, nil
	})
}

func (v *BoardView) delete(id string) tea.Cmd {
	api := v.api
	return request("delete task", func(ctx context.Context) (tea.Msg, error) {
		if err := api.DeleteTask(ctx, id); err != nil {
			return nil, err
		}
		return taskDeletedMsg{id: id}, nil
	})
}

func (v *BoardView) View() string {
	s := v.styles
	width := styles.ContentWidth(v.width)

	if v.mode != boardBrowse && v.form != nil {
		title := "New task in " + v.project.Name
		if v.mode == boardConfirmDelete {
			title = "Delete task"
		}
		content := lipgloss.JoinVertical(lipgloss.Left, s.Title.Render(title), "", v.form.View(),
			helpLine(s, "enter", "next / submit", "esc", "cancel"))
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, content)
	}

	header := s.Title.Render(v.project.Name) + s.TitleMuted.Render("  ·  "+v.project.Slug+"  ·  "+plural(len(v.project.Members), "member"))
	sections := []string{header}
	if v.project.Description != "" {
		sections = append(sections, s.TitleMuted.Render(v.project.Description))
	}
	sections = append(sections, "")

	if !v.loaded {
		sections = append(sections, s.TitleMuted.Render("Loading tasks..."))
	} else {
		sections = append(sections, v.renderColumns(width))
	}

	if v.err != nil {
		sections = append(sections, errorLine(s, v.err))
	}
	sections = append(sections, helpLine(s,
		"←/→", "column", "↑/↓", "task", "<>", "move", "↵", "open", "n", "new", "d", "delete",
		"m", "members", "r", "refresh", "esc", "projects"))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, sections...), v.width, v.height)
}

func (v *BoardView) renderColumns(width int) string {
	s := v.styles
	colWidth := max((width-6)/len(v.columns), 16)
	cardWidth := colWidth - 4

	rendered := make([]string, len(v.columns))
	for c, column := range v.columns {
		status := models.TaskStatuses[c]
		lines := []string{s.Subtitle.Render(fmt.Sprintf("%s (%d)", columnTitles[status], len(column))), ""}

		if len(column) == 0 {
			lines = append(lines, s.TitleMuted.Render("empty"))
		}
		for r, t := range column {
			style := s.Card
			if c == v.col && r == v.row {
				style = s.CardSelected
			}
			assignee := "unassigned"
			if t.Assignee != nil {
				assignee = t.Assignee.FirstName
			}
			lines = append(lines,
				style.Width(cardWidth).Render(truncate(t.Title, cardWidth-2)),
				"  "+s.Priority(t.Priority)+s.TitleMuted.Render(" · "+assignee),
			)
		}

		panel := s.Panel
		if c == v.col {
			panel = s.PanelFocused
		}
		rendered[c] = panel.Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
