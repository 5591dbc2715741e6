package services

import (
	"context"

	"taskmaster/domain/dto"
)

type TaskService interface {
	ListProjectTasks(ctx context.Context, projectID, userID string) ([]*dto.TaskResponse, error)
	GetTask(ctx context.Context, taskID, userID string) (*dto.TaskResponse, error)
	CreateTask(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, taskID, userID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
	ListMyTasks(ctx context.Context, userID string) ([]*dto.MyTaskResponse, error)
}
