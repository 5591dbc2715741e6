package serviceimpl

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
	"taskmaster/domain/ports"
	"taskmaster/domain/repositories"
	"taskmaster/domain/services"
	"taskmaster/pkg/apperror"
	"taskmaster/pkg/logger"
)

const msgAssigneeNotMember = "Assigned user must be a project member"

type TaskServiceImpl struct {
	taskRepo    repositories.TaskRepository
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	cache       ports.DashboardCache
	now         Clock
}

func NewTaskService(taskRepo repositories.TaskRepository, projectRepo repositories.ProjectRepository, userRepo repositories.UserRepository, cache ports.DashboardCache, now Clock) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		cache:       cache,
		now:         now,
	}
}

func (s *TaskServiceImpl) toResponse(ctx context.Context, task *models.Task) *dto.TaskResponse {
	var assignee *models.User
	if task.AssignedTo != nil {
		assignee = lookupUser(ctx, s.userRepo, *task.AssignedTo)
	}
	return dto.TaskToTaskResponse(task, assignee)
}

// accessibleTask loads a task and checks access through its project.
func (s *TaskServiceImpl) accessibleTask(ctx context.Context, taskID, userID string) (*models.Task, *models.Project, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, repoError(err, msgTaskNotFound)
	}
	project, err := accessibleProject(ctx, s.projectRepo, task.ProjectID, userID, msgTaskAccess)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

func (s *TaskServiceImpl) ListProjectTasks(ctx context.Context, projectID, userID string) ([]*dto.TaskResponse, error) {
	if _, err := accessibleProject(ctx, s.projectRepo, projectID, userID, msgProjectAccess); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list project tasks", "project_id", projectID, "error", err)
		return nil, apperror.Internal(err)
	}

	result := make([]*dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, s.toResponse(ctx, task))
	}
	return result, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID, userID string) (*dto.TaskResponse, error) {
	task, _, err := s.accessibleTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, task), nil
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	project, err := accessibleProject(ctx, s.projectRepo, req.ProjectID, userID, msgProjectAccess)
	if err != nil {
		return nil, err
	}

	if req.AssignedTo != "" && !project.IsMember(req.AssignedTo) {
		return nil, apperror.Validation(msgAssigneeNotMember)
	}

	priority := models.TaskPriority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := s.now()
	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   project.ID,
		Status:      models.TaskStatusTodo,
		Priority:    priority,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.AssignedTo != "" {
		assignee := req.AssignedTo
		task.AssignedTo = &assignee
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "project_id", project.ID, "error", err)
		return nil, apperror.Internal(err)
	}
	invalidateDashboards(ctx, s.cache)

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "project_id", project.ID, "user_id", userID)
	return s.toResponse(ctx, task), nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, taskID, userID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	_, project, err := s.accessibleTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	if req.AssignedTo.Set && !req.AssignedTo.Clears() && !project.IsMember(*req.AssignedTo.Value) {
		return nil, apperror.Validation(msgAssigneeNotMember)
	}

	task, err := s.taskRepo.Mutate(ctx, taskID, func(t *models.Task) error {
		if req.Title != "" {
			t.Title = req.Title
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Status != "" {
			t.Status = models.TaskStatus(req.Status)
		}
		if req.AssignedTo.Set {
			if req.AssignedTo.Clears() {
				t.AssignedTo = nil
			} else {
				assignee := *req.AssignedTo.Value
				t.AssignedTo = &assignee
			}
		}
		if req.Priority != "" {
			t.Priority = models.TaskPriority(req.Priority)
		}
		t.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, repoError(err, msgTaskNotFound)
	}
	invalidateDashboards(ctx, s.cache)

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "status", task.Status)
	return s.toResponse(ctx, task), nil
}

// DeleteTask is allowed for the project owner and the task creator.
// A task whose project is gone can only be removed by its creator.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID, userID string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return repoError(err, msgTaskNotFound)
	}

	allowed := task.CreatedBy == userID
	if !allowed {
		project, err := s.projectRepo.GetByID(ctx, task.ProjectID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return apperror.Internal(err)
		}
		allowed = project != nil && project.IsOwner(userID)
	}
	if !allowed {
		logger.WarnContext(ctx, "Task deletion denied", "task_id", taskID, "user_id", userID)
		return apperror.Forbidden("You do not have permission to delete this task")
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return repoError(err, msgTaskNotFound)
	}
	invalidateDashboards(ctx, s.cache)

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", userID)
	return nil
}

func (s *TaskServiceImpl) ListMyTasks(ctx context.Context, userID string) ([]*dto.MyTaskResponse, error) {
	tasks, err := s.taskRepo.ListByAssignee(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list assigned tasks", "user_id", userID, "error", err)
		return nil, apperror.Internal(err)
	}

	projects := map[string]*models.Project{}
	result := make([]*dto.MyTaskResponse, 0, len(tasks))
	for _, task := range tasks {
		project, seen := projects[task.ProjectID]
		if !seen {
			project, err = s.projectRepo.GetByID(ctx, task.ProjectID)
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return nil, apperror.Internal(err)
			}
			projects[task.ProjectID] = project
		}
		result = append(result, &dto.MyTaskResponse{
			TaskResponse: *s.toResponse(ctx, task),
			Project:      dto.ProjectToProjectRef(project),
		})
	}
	return result, nil
}
