package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
)

func task(id string, status models.TaskStatus) dto.TaskResponse {
	return dto.TaskResponse{ID: id, Title: "task " + id, Status: status, Priority: models.PriorityMedium}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGroupByStatusKeepsOrderWithinColumns(t *testing.T) {
	columns := groupByStatus([]dto.TaskResponse{
		task("a", models.TaskStatusDone),
		task("b", models.TaskStatusTodo),
		task("c", models.TaskStatusDone),
		task("d", models.TaskStatusInProgress),
	})

	require.Len(t, columns, 3)
	assert.Equal(t, []string{"b"}, ids(columns[0]))
	assert.Equal(t, []string{"d"}, ids(columns[1]))
	assert.Equal(t, []string{"a", "c"}, ids(columns[2]))
}

func ids(tasks []dto.TaskResponse) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestShiftStatusStopsAtBoardEdges(t *testing.T) {
	tests := []struct {
		from  models.TaskStatus
		delta int
		want  models.TaskStatus
		ok    bool
	}{
		{models.TaskStatusTodo, 1, models.TaskStatusInProgress, true},
		{models.TaskStatusInProgress, 1, models.TaskStatusDone, true},
		{models.TaskStatusDone, 1, models.TaskStatusDone, false},
		{models.TaskStatusDone, -1, models.TaskStatusInProgress, true},
		{models.TaskStatusTodo, -1, models.TaskStatusTodo, false},
	}

	for _, tt := range tests {
		got, ok := shiftStatus(tt.from, tt.delta)
		assert.Equal(t, tt.want, got, "%s %+d", tt.from, tt.delta)
		assert.Equal(t, tt.ok, ok, "%s %+d", tt.from, tt.delta)
	}
}

func TestCycleWraps(t *testing.T) {
	assert.Equal(t, models.TaskStatusInProgress, cycle(models.TaskStatuses, models.TaskStatusTodo))
	assert.Equal(t, models.TaskStatusTodo, cycle(models.TaskStatuses, models.TaskStatusDone))
	assert.Equal(t, models.PriorityLow, cycle(models.TaskPriorities, models.PriorityHigh))
}

func TestKnownNamesPrefersSelf(t *testing.T) {
	self := dto.PublicUser{ID: "u1", FirstName: "Alice", LastName: "Smith"}
	tasks := []dto.TaskResponse{
		{ID: "t1", Assignee: &dto.PublicUser{ID: "u1", FirstName: "Alice", LastName: "Smith"}},
		{ID: "t2", Assignee: &dto.PublicUser{ID: "u2", FirstName: "Bob", LastName: "Jones"}},
		{ID: "t3"},
	}

	names := knownNames(self, tasks)
	assert.Equal(t, "Alice Smith (you)", names["u1"])
	assert.Equal(t, "Bob Jones", names["u2"])
	assert.Equal(t, "u3", memberLabel(names, "u3"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("abc", 0))
}

func TestBoardCursorAndMoves(t *testing.T) {
	v := NewBoardView(nil, models.Project{ID: "p1", Name: "P1"}, dto.PublicUser{ID: "u1"})
	v.Update(tasksLoadedMsg{tasks: []dto.TaskResponse{
		task("a", models.TaskStatusTodo),
		task("b", models.TaskStatusTodo),
		task("c", models.TaskStatusDone),
	}})

	selected, ok := v.selected()
	require.True(t, ok)
	assert.Equal(t, "a", selected.ID)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	selected, _ = v.selected()
	assert.Equal(t, "b", selected.ID)

	// the in-progress column is empty, nothing is selected there
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, ok = v.selected()
	assert.False(t, ok)
	_, cmd := v.Update(runes(">"))
	assert.Nil(t, cmd)

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	selected, _ = v.selected()
	assert.Equal(t, "c", selected.ID)

	// DONE is the last column
	_, cmd = v.Update(runes(">"))
	assert.Nil(t, cmd)
	_, cmd = v.Update(runes("<"))
	assert.NotNil(t, cmd)

	// the saved task moves column and keeps focus
	moved := task("c", models.TaskStatusInProgress)
	v.Update(taskSavedMsg{task: moved})
	selected, ok = v.selected()
	require.True(t, ok)
	assert.Equal(t, "c", selected.ID)
	assert.Equal(t, 1, v.col)

	v.Update(taskDeletedMsg{id: "c"})
	assert.Len(t, v.tasks, 2)
	_, ok = v.selected()
	assert.False(t, ok)
}

func TestTaskViewRefusesToEditOthersComments(t *testing.T) {
	v := NewTaskView(nil, models.Project{ID: "p1"}, task("t1", models.TaskStatusTodo), dto.PublicUser{ID: "u1"}, nil)
	v.Update(commentsLoadedMsg{comments: []dto.CommentResponse{
		{ID: "c1", AuthorID: "u2", Content: "from bob"},
	}})

	_, cmd := v.Update(runes("e"))
	assert.Nil(t, cmd)
	require.Error(t, v.err)
	assert.Equal(t, "Only the author can edit this comment", v.err.Error())
	assert.Equal(t, taskBrowse, v.mode)
}
