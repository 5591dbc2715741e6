package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"taskmaster/domain/models"
)

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	ProjectID   string `json:"projectId" validate:"required"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// NullableString tells an absent JSON field apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Clears reports whether the field asks to unassign (null or "").
func (n NullableString) Clears() bool {
	return n.Set && (n.Value == nil || *n.Value == "")
}

func NewNullableString(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}

// UpdateTaskRequest carries a partial update; zero values mean "leave unchanged".
type UpdateTaskRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Status      string         `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	AssignedTo  NullableString `json:"assignedTo"`
	Priority    string         `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// MarshalJSON writes only the fields that are set, so a client patch never clears by accident.
func (r UpdateTaskRequest) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if r.Title != "" {
		body["title"] = r.Title
	}
	if r.Description != nil {
		body["description"] = *r.Description
	}
	if r.Status != "" {
		body["status"] = r.Status
	}
	if r.AssignedTo.Set {
		body["assignedTo"] = r.AssignedTo
	}
	if r.Priority != "" {
		body["priority"] = r.Priority
	}
	return json.Marshal(body)
}

type TaskResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ProjectID   string              `json:"projectId"`
	AssignedTo  *string             `json:"assignedTo"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	CreatedBy   string              `json:"createdBy"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Assignee    *PublicUser         `json:"assignee"`
}

// MyTaskResponse adds the owning project; Project is null when it was deleted.
type MyTaskResponse struct {
	TaskResponse
	Project *ProjectRef `json:"project"`
}
