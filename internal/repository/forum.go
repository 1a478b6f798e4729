package repository

import (
	"context"
	"errors"

	"devfolio/internal/cache"
	"devfolio/internal/models"

	"gorm.io/gorm"
)

// ForumRepository defines the interface for forum data operations.
type ForumRepository interface {
	Create(ctx context.Context, forum *models.Forum) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Forum, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Forum, int64, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Forum, int64, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type forumRepository struct {
	db *gorm.DB
}

// NewForumRepository creates a new forum repository.
func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) Create(ctx context.Context, forum *models.Forum) error {
	if err := r.db.WithContext(ctx).Create(forum).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *forumRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Forum, error) {
	var forum models.Forum

	fetch := func() error {
		err := r.applyForumDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Owner").
			First(&forum, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Forum", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.ForumKey(id), &forum, cache.ForumTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &forum, nil
}

func (r *forumRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Forum, int64, error) {
	var forums []*models.Forum
	err := r.applyForumDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&forums).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Forum{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return forums, total, nil
}

// forumSearchVector is the text-search document over title and description.
const forumSearchVector = "to_tsvector('english', forums.title || ' ' || forums.description)"

func (r *forumRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Forum, int64, error) {
	var forums []*models.Forum
	cols, args := forumDetailColumns(currentUserID)
	cols += ", ts_rank(" + forumSearchVector + ", plainto_tsquery('english', ?)) AS score"
	args = append(args, query)

	err := r.db.WithContext(ctx).
		Model(&models.Forum{}).
		Select(cols, args...).
		Where(forumSearchVector+" @@ plainto_tsquery('english', ?)", query).
		Preload("Owner").
		Order("score DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&forums).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var total int64
	err = r.db.WithContext(ctx).Model(&models.Forum{}).
		Where(forumSearchVector+" @@ plainto_tsquery('english', ?)", query).
		Count(&total).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return forums, total, nil
}

// forumDetailColumns builds the select list with count and liked subqueries.
func forumDetailColumns(currentUserID uint) (string, []interface{}) {
	cols := "forums.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.parent_kind = 'forum' AND comments.parent_id = forums.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.parent_kind = 'forum' AND likes.parent_id = forums.id) as likes_count"

	if currentUserID != 0 {
		cols += ", EXISTS(SELECT 1 FROM likes WHERE likes.parent_kind = 'forum' AND likes.parent_id = forums.id AND likes.user_id = ?) as liked"
		return cols, []interface{}{currentUserID}
	}
	return cols + ", false as liked", nil
}

func (r *forumRepository) applyForumDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	cols, args := forumDetailColumns(currentUserID)
	return db.Select(cols, args...)
}

// UpdateFields performs a single atomic UPDATE of the given columns.
func (r *forumRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Forum{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateForum(ctx, id)
	return nil
}

// Delete removes the forum together with its comments and likes.
func (r *forumRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_kind = ? AND parent_id = ?", models.ParentForum, id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_kind = ? AND parent_id = ?", models.ParentForum, id).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Forum{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateForum(ctx, id)
	return nil
}
