package service

import (
	"context"
	"strings"

	"devfolio/internal/models"
	"devfolio/internal/repository"
	"devfolio/internal/validation"
)

// CommentService implements comment lifecycle under the author-only ownership rule.
type CommentService struct {
	commentRepo repository.CommentRepository
	projectRepo repository.ProjectRepository
	forumRepo   repository.ForumRepository
}

type CreateCommentInput struct {
	AuthorID uint
	Content  string
	Parent   models.ParentRef
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	projectRepo repository.ProjectRepository,
	forumRepo repository.ForumRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		projectRepo: projectRepo,
		forumRepo:   forumRepo,
	}
}

// CreateComment validates the content, verifies the referenced parent exists,
// then persists the comment with the author stamped from the subject.
// Parent existence and the insert are two sequential store operations; a
// parent deleted in between leaves an orphaned comment.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > validation.MaxCommentLen {
		return nil, models.NewValidationError("Comment too long")
	}

	if err := s.checkParentExists(ctx, in.Parent); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:    content,
		AuthorID:   in.AuthorID,
		ParentKind: in.Parent.Kind,
		ParentID:   in.Parent.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the parent's comments oldest-first. An absent parent
// yields an empty list, not an error.
func (s *CommentService) ListComments(ctx context.Context, parent models.ParentRef) ([]*models.Comment, error) {
	if !parent.Kind.Valid() || parent.ID == 0 {
		return nil, models.NewBadRequestError("A valid parent reference is required")
	}
	return s.commentRepo.ListByParent(ctx, parent)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(comment, in.UserID, "You can only update your own comments"); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > validation.MaxCommentLen {
		return nil, models.NewValidationError("Comment too long")
	}

	if err := s.commentRepo.UpdateContent(ctx, in.CommentID, content); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, in.CommentID)
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := requireOwner(comment, userID, "You can only delete your own comments"); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func (s *CommentService) checkParentExists(ctx context.Context, parent models.ParentRef) error {
	switch parent.Kind {
	case models.ParentProject:
		_, err := s.projectRepo.GetByID(ctx, parent.ID, 0)
		return err
	case models.ParentForum:
		_, err := s.forumRepo.GetByID(ctx, parent.ID, 0)
		return err
	default:
		return models.NewBadRequestError("A valid parent reference is required")
	}
}
