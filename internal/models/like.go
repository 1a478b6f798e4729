package models

import (
	"time"
)

// Like records a user's like on a Project or Forum.
// The (parent_kind, parent_id, user_id) combination must be unique; the
// unique index is what makes the toggle's INSERT ... ON CONFLICT atomic.
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ParentKind ParentKind `gorm:"not null;uniqueIndex:idx_like_parent_user" json:"parent_kind"`
	ParentID   uint       `gorm:"not null;uniqueIndex:idx_like_parent_user" json:"parent_id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_like_parent_user" json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
}
