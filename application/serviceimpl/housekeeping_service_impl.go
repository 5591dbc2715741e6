package serviceimpl

import (
	"context"

	"taskmaster/domain/dto"
	"taskmaster/domain/repositories"
	"taskmaster/domain/services"
	"taskmaster/pkg/logger"
)

type HousekeepingServiceImpl struct {
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	commentRepo repositories.CommentRepository
}

func NewHousekeepingService(userRepo repositories.UserRepository, projectRepo repositories.ProjectRepository, taskRepo repositories.TaskRepository, commentRepo repositories.CommentRepository) services.HousekeepingService {
	return &HousekeepingServiceImpl{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
	}
}

func (s *HousekeepingServiceImpl) Report(ctx context.Context) (*dto.HousekeepingReport, error) {
	var (
		report dto.HousekeepingReport
		err    error
	)

	if report.Users, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if report.Projects, err = s.projectRepo.Count(ctx); err != nil {
		return nil, err
	}
	if report.Comments, err = s.commentRepo.Count(ctx); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	report.Tasks = int64(len(tasks))

	taskIDs := make(map[string]struct{}, len(tasks))
	projectExists := map[string]bool{}
	for _, t := range tasks {
		taskIDs[t.ID] = struct{}{}
		exists, seen := projectExists[t.ProjectID]
		if !seen {
			if exists, err = s.projectRepo.Exists(ctx, t.ProjectID); err != nil {
				return nil, err
			}
			projectExists[t.ProjectID] = exists
		}
		if !exists {
			report.OrphanedTasks++
		}
	}

	comments, err := s.commentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		if _, ok := taskIDs[c.TaskID]; !ok {
			report.OrphanedComments++
		}
	}

	return &report, nil
}

func (s *HousekeepingServiceImpl) Run() {
	ctx := context.Background()

	report, err := s.Report(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Housekeeping scan failed", "error", err)
		return
	}

	logger.InfoContext(ctx, "Housekeeping scan",
		"users", report.Users,
		"projects", report.Projects,
		"tasks", report.Tasks,
		"comments", report.Comments,
		"orphaned_tasks", report.OrphanedTasks,
		"orphaned_comments", report.OrphanedComments,
	)
}
