package service

import (
	"context"
	"strings"

	"devfolio/internal/models"
	"devfolio/internal/repository"
	"devfolio/internal/validation"
)

// ProjectService implements project lifecycle, ownership checks and likes.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	likeRepo    repository.LikeRepository
}

type CreateProjectInput struct {
	OwnerID     uint
	Title       string
	Description string
	Tags        []string
	RepoURL     string
	LiveURL     string
}

// UpdateProjectInput carries partial updates; nil pointers mean "unchanged".
type UpdateProjectInput struct {
	UserID      uint
	ProjectID   uint
	Title       *string
	Description *string
	Tags        *[]string
	RepoURL     *string
	LiveURL     *string
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, likeRepo repository.LikeRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, likeRepo: likeRepo}
}

func (s *ProjectService) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if err := validation.ValidateTitle(title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	tags, err := models.NormalizeTags(in.Tags)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateTags(tags); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	project := &models.Project{
		Title:       title,
		Description: description,
		Tags:        tags,
		RepoURL:     strings.TrimSpace(in.RepoURL),
		LiveURL:     strings.TrimSpace(in.LiveURL),
		OwnerID:     in.OwnerID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(ctx, project.ID, in.OwnerID)
}

func (s *ProjectService) GetProject(ctx context.Context, id, currentUserID uint) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id, currentUserID)
}

// ListProjects returns the requested page, newest first, plus the total count.
func (s *ProjectService) ListProjects(ctx context.Context, page, limit int, currentUserID uint) ([]*models.Project, int64, error) {
	page, limit = normalizePage(page, limit)
	return s.projectRepo.List(ctx, limit, (page-1)*limit, currentUserID)
}

func (s *ProjectService) UpdateProject(ctx context.Context, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, in.ProjectID, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(project, in.UserID, "You can only update your own projects"); err != nil {
		return nil, err
	}

	// Enumerated allow-list; owner and likes are never settable here.
	updates := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := validation.ValidateTitle(title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		updates["title"] = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if err := validation.ValidateDescription(description); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		updates["description"] = description
	}
	if in.Tags != nil {
		tags, err := models.NormalizeTags(*in.Tags)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if err := validation.ValidateTags(tags); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		updates["tags"] = tags
	}
	if in.RepoURL != nil {
		updates["repo_url"] = strings.TrimSpace(*in.RepoURL)
	}
	if in.LiveURL != nil {
		updates["live_url"] = strings.TrimSpace(*in.LiveURL)
	}

	if len(updates) == 0 {
		return nil, models.NewBadRequestError("No valid fields provided for update")
	}

	if err := s.projectRepo.UpdateFields(ctx, in.ProjectID, updates); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, in.ProjectID, in.UserID)
}

func (s *ProjectService) DeleteProject(ctx context.Context, projectID, userID uint) error {
	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if err := requireOwner(project, userID, "You can only delete your own projects"); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, projectID)
}

// ToggleLike flips the user's like on the project.
func (s *ProjectService) ToggleLike(ctx context.Context, projectID, userID uint) (*LikeResult, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID, userID); err != nil {
		return nil, err
	}
	parent := models.ParentRef{Kind: models.ParentProject, ID: projectID}
	return toggleLike(ctx, s.likeRepo, parent, userID)
}
