package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TaskStatuses in board order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ProjectID   string       `json:"projectId"`
	AssignedTo  *string      `json:"assignedTo"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedBy   string       `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

func (t *Task) Clone() *Task {
	cp := *t
	if t.AssignedTo != nil {
		assignee := *t.AssignedTo
		cp.AssignedTo = &assignee
	}
	return &cp
}
