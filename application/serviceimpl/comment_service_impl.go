package serviceimpl

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
	"taskmaster/domain/ports"
	"taskmaster/domain/repositories"
	"taskmaster/domain/services"
	"taskmaster/pkg/apperror"
	"taskmaster/pkg/logger"
)

type CommentServiceImpl struct {
	commentRepo repositories.CommentRepository
	taskRepo    repositories.TaskRepository
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	cache       ports.DashboardCache
	now         Clock
}

func NewCommentService(commentRepo repositories.CommentRepository, taskRepo repositories.TaskRepository, projectRepo repositories.ProjectRepository, userRepo repositories.UserRepository, cache ports.DashboardCache, now Clock) services.CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		cache:       cache,
		now:         now,
	}
}

func (s *CommentServiceImpl) toResponse(ctx context.Context, comment *models.Comment) *dto.CommentResponse {
	return dto.CommentToCommentResponse(comment, lookupUser(ctx, s.userRepo, comment.AuthorID))
}

func (s *CommentServiceImpl) accessibleTask(ctx context.Context, taskID, userID string) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, repoError(err, msgTaskNotFound)
	}
	if _, err := accessibleProject(ctx, s.projectRepo, task.ProjectID, userID, msgTaskAccess); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTaskComments returns newest first; equal timestamps keep the later insert first.
func (s *CommentServiceImpl) ListTaskComments(ctx context.Context, taskID, userID string) ([]*dto.CommentResponse, error) {
	if _, err := s.accessibleTask(ctx, taskID, userID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list comments", "task_id", taskID, "error", err)
		return nil, apperror.Internal(err)
	}

	slices.Reverse(comments)
	slices.SortStableFunc(comments, func(a, b *models.Comment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	result := make([]*dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		result = append(result, s.toResponse(ctx, comment))
	}
	return result, nil
}

func (s *CommentServiceImpl) CreateComment(ctx context.Context, userID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.Validation("Comment cannot be empty")
	}

	task, err := s.accessibleTask(ctx, req.TaskID, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	comment := &models.Comment{
		ID:        uuid.NewString(),
		TaskID:    task.ID,
		Content:   content,
		AuthorID:  userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		logger.ErrorContext(ctx, "Failed to create comment", "task_id", task.ID, "error", err)
		return nil, apperror.Internal(err)
	}
	invalidateDashboards(ctx, s.cache)

	logger.InfoContext(ctx, "Comment created", "comment_id", comment.ID, "task_id", task.ID, "user_id", userID)
	return s.toResponse(ctx, comment), nil
}

func (s *CommentServiceImpl) UpdateComment(ctx context.Context, commentID, userID string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)

	comment, err := s.commentRepo.Mutate(ctx, commentID, func(c *models.Comment) error {
		if c.AuthorID != userID {
			logger.WarnContext(ctx, "Comment edit denied", "comment_id", commentID, "user_id", userID)
			return apperror.Forbidden("Only the author can edit this comment")
		}
		if content == "" {
			return apperror.Validation("content is required")
		}
		c.Content = content
		c.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			logger.ErrorContext(ctx, "Failed to update comment", "comment_id", commentID, "error", err)
		}
		return nil, repoError(err, msgCommentNotFound)
	}
	invalidateDashboards(ctx, s.cache)

	logger.InfoContext(ctx, "Comment updated", "comment_id", commentID)
	return s.toResponse(ctx, comment), nil
}

// DeleteComment is allowed for the author and the owner of the task's project.
// Once the task or project is gone only the author qualifies.
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, commentID, userID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return repoError(err, msgCommentNotFound)
	}

	allowed := comment.AuthorID == userID
	if !allowed {
		allowed, err = s.ownsCommentProject(ctx, comment, userID)
		if err != nil {
			return err
		}
	}
	if !allowed {
		logger.WarnContext(ctx, "Comment deletion denied", "comment_id", commentID, "user_id", userID)
		return apperror.Forbidden("You do not have permission to delete this comment")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete comment", "comment_id", commentID, "error", err)
		return repoError(err, msgCommentNotFound)
	}
	invalidateDashboards(ctx, s.cache)

	logger.InfoContext(ctx, "Comment deleted", "comment_id", commentID, "user_id", userID)
	return nil
}

func (s *CommentServiceImpl) ownsCommentProject(ctx context.Context, comment *models.Comment, userID string) (bool, error) {
	task, err := s.taskRepo.GetByID(ctx, comment.TaskID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Internal(err)
	}

	project, err := s.projectRepo.GetByID(ctx, task.ProjectID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Internal(err)
	}
	return project.IsOwner(userID), nil
}
