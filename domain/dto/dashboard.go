package dto

import (
	"time"

	"taskmaster/domain/models"
)

type TaskStats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

// Add counts one task under its status.
func (s *TaskStats) Add(status models.TaskStatus) {
	s.Total++
	switch status {
	case models.TaskStatusTodo:
		s.Todo++
	case models.TaskStatusInProgress:
		s.InProgress++
	case models.TaskStatusDone:
		s.Done++
	}
}

type ProjectStats struct {
	Total  int `json:"total"`
	Owned  int `json:"owned"`
	Member int `json:"member"`
}

type CommentStats struct {
	TotalComments int `json:"totalComments"`
	MyComments    int `json:"myComments"`
}

type RecentActivity struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Status    models.TaskStatus   `json:"status"`
	Priority  models.TaskPriority `json:"priority"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Project   *ProjectRef         `json:"project"`
	Assignee  *UserSummary        `json:"assignee"`
}

type DashboardStats struct {
	TaskStats      TaskStats        `json:"taskStats"`
	ProjectStats   ProjectStats     `json:"projectStats"`
	CommentStats   CommentStats     `json:"commentStats"`
	RecentActivity []RecentActivity `json:"recentActivity"`
}

type ProjectOverview struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsOwner     bool      `json:"isOwner"`
	MemberCount int       `json:"memberCount"`
	TaskStats   TaskStats `json:"taskStats"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HousekeepingReport is the snapshot logged by the periodic store scan.
type HousekeepingReport struct {
	Users            int64 `json:"users"`
	Projects         int64 `json:"projects"`
	Tasks            int64 `json:"tasks"`
	Comments         int64 `json:"comments"`
	OrphanedTasks    int   `json:"orphanedTasks"`
	OrphanedComments int   `json:"orphanedComments"`
}
