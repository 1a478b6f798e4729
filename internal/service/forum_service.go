package service

import (
	"context"
	"strings"

	"devfolio/internal/models"
	"devfolio/internal/repository"
	"devfolio/internal/validation"
)

// ForumService mirrors ProjectService for the forum entity.
type ForumService struct {
	forumRepo repository.ForumRepository
	likeRepo  repository.LikeRepository
}

type CreateForumInput struct {
	OwnerID     uint
	Title       string
	Description string
}

// UpdateForumInput carries partial updates; nil pointers mean "unchanged".
type UpdateForumInput struct {
	UserID      uint
	ForumID     uint
	Title       *string
	Description *string
}

// NewForumService creates a new ForumService.
func NewForumService(forumRepo repository.ForumRepository, likeRepo repository.LikeRepository) *ForumService {
	return &ForumService{forumRepo: forumRepo, likeRepo: likeRepo}
}

func (s *ForumService) CreateForum(ctx context.Context, in CreateForumInput) (*models.Forum, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if err := validation.ValidateTitle(title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	forum := &models.Forum{
		Title:       title,
		Description: description,
		OwnerID:     in.OwnerID,
	}
	if err := s.forumRepo.Create(ctx, forum); err != nil {
		return nil, err
	}

	return s.forumRepo.GetByID(ctx, forum.ID, in.OwnerID)
}

func (s *ForumService) GetForum(ctx context.Context, id, currentUserID uint) (*models.Forum, error) {
	return s.forumRepo.GetByID(ctx, id, currentUserID)
}

// ListForums returns the requested page, newest first, plus the total count.
func (s *ForumService) ListForums(ctx context.Context, page, limit int, currentUserID uint) ([]*models.Forum, int64, error) {
	page, limit = normalizePage(page, limit)
	return s.forumRepo.List(ctx, limit, (page-1)*limit, currentUserID)
}

func (s *ForumService) UpdateForum(ctx context.Context, in UpdateForumInput) (*models.Forum, error) {
	forum, err := s.forumRepo.GetByID(ctx, in.ForumID, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(forum, in.UserID, "You can only update your own forums"); err != nil {
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

	if len(updates) == 0 {
		return nil, models.NewBadRequestError("No valid fields provided for update")
	}

	if err := s.forumRepo.UpdateFields(ctx, in.ForumID, updates); err != nil {
		return nil, err
	}
	return s.forumRepo.GetByID(ctx, in.ForumID, in.UserID)
}

func (s *ForumService) DeleteForum(ctx context.Context, forumID, userID uint) error {
	forum, err := s.forumRepo.GetByID(ctx, forumID, userID)
	if err != nil {
		return err
	}
	if err := requireOwner(forum, userID, "You can only delete your own forums"); err != nil {
		return err
	}
	return s.forumRepo.Delete(ctx, forumID)
}

// ToggleLike flips the user's like on the forum.
func (s *ForumService) ToggleLike(ctx context.Context, forumID, userID uint) (*LikeResult, error) {
	if _, err := s.forumRepo.GetByID(ctx, forumID, userID); err != nil {
		return nil, err
	}
	parent := models.ParentRef{Kind: models.ParentForum, ID: forumID}
	return toggleLike(ctx, s.likeRepo, parent, userID)
}
