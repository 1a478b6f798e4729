package repository

import (
	"context"

	"devfolio/internal/cache"
	"devfolio/internal/models"

	"gorm.io/gorm"
)

// LikeRepository implements the atomic like toggle shared by projects and forums.
type LikeRepository interface {
	// Toggle flips the user's membership in the entity's like set and
	// reports the resulting state plus the like count after the flip.
	Toggle(ctx context.Context, parent models.ParentRef, userID uint) (liked bool, count int64, err error)
	Count(ctx context.Context, parent models.ParentRef) (int64, error)
	IsLiked(ctx context.Context, parent models.ParentRef, userID uint) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle uses INSERT ... ON CONFLICT DO NOTHING followed by a conditional
// DELETE, so concurrent togglers by different users never lose updates.
// The unique index on (parent_kind, parent_id, user_id) makes both steps
// atomic against the persisted set; there is no read-modify-write.
func (r *likeRepository) Toggle(ctx context.Context, parent models.ParentRef, userID uint) (bool, int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (parent_kind, parent_id, user_id, created_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (parent_kind, parent_id, user_id) DO NOTHING`,
		parent.Kind, parent.ID, userID,
	)
	if res.Error != nil {
		return false, 0, models.NewInternalError(res.Error)
	}

	liked := res.RowsAffected == 1
	if !liked {
		// Row already existed: this toggle is an unlike.
		err := r.db.WithContext(ctx).
			Where("parent_kind = ? AND parent_id = ? AND user_id = ?", parent.Kind, parent.ID, userID).
			Delete(&models.Like{}).Error
		if err != nil {
			return false, 0, models.NewInternalError(err)
		}
	}

	invalidateParent(ctx, parent)

	count, err := r.Count(ctx, parent)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *likeRepository) Count(ctx context.Context, parent models.ParentRef) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("parent_kind = ? AND parent_id = ?", parent.Kind, parent.ID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) IsLiked(ctx context.Context, parent models.ParentRef, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("parent_kind = ? AND parent_id = ? AND user_id = ?", parent.Kind, parent.ID, userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// invalidateParent drops the parent's cached detail after any mutation that
// changes its counts. Shared by the like and comment repositories.
func invalidateParent(ctx context.Context, parent models.ParentRef) {
	switch parent.Kind {
	case models.ParentProject:
		cache.InvalidateProject(ctx, parent.ID)
	case models.ParentForum:
		cache.InvalidateForum(ctx, parent.ID)
	}
}
