package service

import (
	"context"

	"devfolio/internal/middleware"
	"devfolio/internal/models"
	"devfolio/internal/repository"
)

// LikeResult is the outcome of a toggle: the subject's resulting membership
// in the like set and the set's size after the flip.
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// toggleLike flips the user's like on the given parent. Callers verify the
// parent exists first.
func toggleLike(ctx context.Context, likeRepo repository.LikeRepository, parent models.ParentRef, userID uint) (*LikeResult, error) {
	liked, count, err := likeRepo.Toggle(ctx, parent, userID)
	if err != nil {
		return nil, err
	}

	state := "unliked"
	if liked {
		state = "liked"
	}
	middleware.LikeToggles.WithLabelValues(string(parent.Kind), state).Inc()

	return &LikeResult{Liked: liked, LikesCount: count}, nil
}
