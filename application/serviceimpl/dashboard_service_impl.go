package serviceimpl

import (
	"context"
	"slices"
	"time"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
	"taskmaster/domain/ports"
	"taskmaster/domain/repositories"
	"taskmaster/domain/services"
	"taskmaster/pkg/apperror"
	"taskmaster/pkg/logger"
)

const recentActivityLimit = 10

type DashboardServiceImpl struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
	cache       ports.DashboardCache
	cacheTTL    time.Duration
}

func NewDashboardService(projectRepo repositories.ProjectRepository, taskRepo repositories.TaskRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository, cache ports.DashboardCache, cacheTTL time.Duration) services.DashboardService {
	return &DashboardServiceImpl{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// cached reads key from the cache or computes and stores it. Cache failures only cost a recompute.
// The result is stored under the generation read before computing it.
func cached[T any](ctx context.Context, s *DashboardServiceImpl, key string, compute func() (T, error)) (T, error) {
	var value T
	gen, hit, readErr := s.cache.Get(ctx, key, &value)
	if readErr != nil {
		logger.WarnContext(ctx, "Dashboard cache read failed", "key", key, "error", readErr)
	}
	if hit && readErr == nil {
		return value, nil
	}

	value, err := compute()
	if err != nil || readErr != nil {
		return value, err
	}

	if err := s.cache.Set(ctx, gen, key, value, s.cacheTTL); err != nil {
		logger.WarnContext(ctx, "Dashboard cache write failed", "key", key, "error", err)
	}
	return value, nil
}

func (s *DashboardServiceImpl) GetStats(ctx context.Context, userID string) (*dto.DashboardStats, error) {
	return cached(ctx, s, "stats:"+userID, func() (*dto.DashboardStats, error) {
		return s.computeStats(ctx, userID)
	})
}

func (s *DashboardServiceImpl) GetProjectOverview(ctx context.Context, userID string) ([]dto.ProjectOverview, error) {
	return cached(ctx, s, "overview:"+userID, func() ([]dto.ProjectOverview, error) {
		return s.computeOverview(ctx, userID)
	})
}

func (s *DashboardServiceImpl) computeStats(ctx context.Context, userID string) (*dto.DashboardStats, error) {
	projects, err := s.projectRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	byID := make(map[string]*models.Project, len(projects))
	projectIDs := make([]string, 0, len(projects))
	stats := &dto.DashboardStats{RecentActivity: []dto.RecentActivity{}}
	for _, p := range projects {
		byID[p.ID] = p
		projectIDs = append(projectIDs, p.ID)
		stats.ProjectStats.Total++
		if p.IsOwner(userID) {
			stats.ProjectStats.Owned++
		} else {
			stats.ProjectStats.Member++
		}
	}

	tasks, err := s.taskRepo.ListByProjects(ctx, projectIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
		if t.IsAssignedTo(userID) {
			stats.TaskStats.Add(t.Status)
		}
	}

	recent := slices.Clone(tasks)
	slices.SortStableFunc(recent, func(a, b *models.Task) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	for _, t := range recent {
		var assignee *models.User
		if t.AssignedTo != nil {
			assignee = lookupUser(ctx, s.userRepo, *t.AssignedTo)
		}
		stats.RecentActivity = append(stats.RecentActivity, dto.TaskToRecentActivity(t, byID[t.ProjectID], assignee))
	}

	comments, err := s.commentRepo.ListByTasks(ctx, taskIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	stats.CommentStats.TotalComments = len(comments)
	for _, c := range comments {
		if c.AuthorID == userID {
			stats.CommentStats.MyComments++
		}
	}

	return stats, nil
}

func (s *DashboardServiceImpl) computeOverview(ctx context.Context, userID string) ([]dto.ProjectOverview, error) {
	projects, err := s.projectRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	overview := make([]dto.ProjectOverview, 0, len(projects))
	for _, p := range projects {
		tasks, err := s.taskRepo.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}

		item := dto.ProjectOverview{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			IsOwner:     p.IsOwner(userID),
			MemberCount: len(p.Members),
			UpdatedAt:   p.UpdatedAt,
		}
		for _, t := range tasks {
			item.TaskStats.Add(t.Status)
		}
		overview = append(overview, item)
	}
	return overview, nil
}
