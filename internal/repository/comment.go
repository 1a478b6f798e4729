package repository

import (
	"context"
	"errors"

	"devfolio/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByParent(ctx context.Context, parent models.ParentRef) ([]*models.Comment, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	invalidateParent(ctx, models.ParentRef{Kind: comment.ParentKind, ID: comment.ParentID})
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByParent returns the parent's comments oldest-first; threads read chronologically.
func (r *commentRepository) ListByParent(ctx context.Context, parent models.ParentRef) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_kind = ? AND parent_id = ?", parent.Kind, parent.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// UpdateContent performs a single atomic UPDATE of the content column.
func (r *commentRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("content", content).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the comment and returns its parent reference in the same
// statement, so the parent's cached detail can be dropped afterwards.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	var row struct {
		ParentKind models.ParentKind
		ParentID   uint
	}
	err := r.db.WithContext(ctx).
		Raw(`DELETE FROM comments WHERE id = ? RETURNING parent_kind, parent_id`, id).
		Scan(&row).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	if row.ParentID != 0 {
		invalidateParent(ctx, models.ParentRef{Kind: row.ParentKind, ID: row.ParentID})
	}
	return nil
}
