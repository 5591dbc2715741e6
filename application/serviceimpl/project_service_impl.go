package serviceimpl

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
	"taskmaster/domain/ports"
	"taskmaster/domain/repositories"
	"taskmaster/domain/services"
	"taskmaster/pkg/apperror"
	"taskmaster/pkg/logger"
)

type ProjectServiceImpl struct {
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	cache       ports.DashboardCache
	now         Clock
}

func NewProjectService(projectRepo repositories.ProjectRepository, userRepo repositories.UserRepository, cache ports.DashboardCache, now Clock) services.ProjectService {
	return &ProjectServiceImpl{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		cache:       cache,
		now:         now,
	}
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	projects, err := s.projectRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list projects", "user_id", userID, "error", err)
		return nil, apperror.Internal(err)
	}
	return projects, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID, userID string) (*models.Project, error) {
	return accessibleProject(ctx, s.projectRepo, projectID, userID, msgProjectAccess)
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, userID string, req *dto.CreateProjectRequest) (*models.Project, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		OwnerID:     userID,
		Members:     []string{userID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		logger.ErrorContext(ctx, "Failed to create project", "user_id", userID, "error", err)
		return nil, apperror.Internal(err)
	}
	invalidateDashboards(ctx, s.cache)

	logger.InfoContext(ctx, "Project created", "project_id", project.ID, "owner_id", userID)
	return project, nil
}

// ownedProject loads a project that only its owner may change.
func (s *ProjectServiceImpl) ownedProject(ctx context.Context, projectID, userID, forbidden string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, repoError(err, msgProjectNotFound)
	}
	if !project.IsOwner(userID) {
		logger.WarnContext(ctx, "Owner-only project operation denied", "project_id", projectID, "user_id", userID)
		return nil, apperror.Forbidden(forbidden)
	}
	return project, nil
}

// changeProject applies an owner-only change while the store holds the project's write lock.
func (s *ProjectServiceImpl) changeProject(ctx context.Context, projectID, userID, forbidden string, change func(*models.Project) error) (*models.Project, error) {
	project, err := s.projectRepo.Mutate(ctx, projectID, func(p *models.Project) error {
		if !p.IsOwner(userID) {
			logger.WarnContext(ctx, "Owner-only project operation denied", "project_id", projectID, "user_id", userID)
			return apperror.Forbidden(forbidden)
		}
		if err := change(p); err != nil {
			return err
		}
		p.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			logger.ErrorContext(ctx, "Failed to update project", "project_id", projectID, "error", err)
		}
		return nil, repoError(err, msgProjectNotFound)
	}
	invalidateDashboards(ctx, s.cache)
	return project, nil
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, projectID, userID string, req *dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.changeProject(ctx, projectID, userID, "Only the project owner can update the project", func(p *models.Project) error {
		if req.Name != "" {
			p.Name = req.Name
			p.Slug = slug.Make(req.Name)
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Project updated", "project_id", projectID)
	return project, nil
}

func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, projectID, userID string) error {
	if _, err := s.ownedProject(ctx, projectID, userID, "Only the project owner can delete the project"); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete project", "project_id", projectID, "error", err)
		return repoError(err, msgProjectNotFound)
	}
	invalidateDashboards(ctx, s.cache)

	logger.InfoContext(ctx, "Project deleted", "project_id", projectID)
	return nil
}

func (s *ProjectServiceImpl) AddMember(ctx context.Context, projectID, userID, newMemberID string) (*models.Project, error) {
	const forbidden = "Only the project owner can add members"
	if _, err := s.ownedProject(ctx, projectID, userID, forbidden); err != nil {
		return nil, err
	}

	if err := validate(&dto.AddMemberRequest{UserID: newMemberID}); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, newMemberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, apperror.Internal(err)
	}

	project, err := s.changeProject(ctx, projectID, userID, forbidden, func(p *models.Project) error {
		if p.IsMember(newMemberID) {
			return apperror.Conflict("User is already a member of this project")
		}
		p.Members = append(p.Members, newMemberID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Project member added", "project_id", projectID, "member_id", newMemberID)
	return project, nil
}

func (s *ProjectServiceImpl) RemoveMember(ctx context.Context, projectID, userID, targetID string) (*models.Project, error) {
	project, err := s.changeProject(ctx, projectID, userID, "Only the project owner can remove members", func(p *models.Project) error {
		if p.IsOwner(targetID) {
			return apperror.Validation("The project owner cannot be removed")
		}
		idx := slices.Index(p.Members, targetID)
		if idx < 0 {
			return apperror.NotFound("User is not a member of this project")
		}
		p.Members = slices.Delete(p.Members, idx, idx+1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Project member removed", "project_id", projectID, "member_id", targetID)
	return project, nil
}
