// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Forum is a discussion topic owned by the user who created it.
// Same lifecycle and ownership rules as Project, minus tags and URLs.
type Forum struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	Owner       User   `gorm:"foreignKey:OwnerID" json:"owner"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this forum (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Score is the text-search relevance rank; only set on search results
	Score     float64   `gorm:"->" json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerUserID implements Owned.
func (f *Forum) OwnerUserID() uint { return f.OwnerID }
