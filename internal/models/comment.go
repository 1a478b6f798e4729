// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// ParentKind discriminates which entity a comment or like is attached to.
type ParentKind string

const (
	ParentProject ParentKind = "project"
	ParentForum   ParentKind = "forum"
)

// Valid reports whether the kind is one of the known parent kinds.
func (k ParentKind) Valid() bool {
	return k == ParentProject || k == ParentForum
}

// ParentRef identifies exactly one parent entity. A comment always carries
// a kind and an id; the two-nullable-columns shape is deliberately avoided
// so "both" and "neither" are unrepresentable.
type ParentRef struct {
	Kind ParentKind
	ID   uint
}

// Comment is a user-authored comment attached to exactly one Project or Forum.
// The author (not the parent's owner) is the only subject allowed to mutate it.
type Comment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	AuthorID   uint       `gorm:"not null;index" json:"author_id"`
	Author     User       `gorm:"foreignKey:AuthorID" json:"author"`
	ParentKind ParentKind `gorm:"not null;index:idx_comment_parent" json:"parent_kind"`
	ParentID   uint       `gorm:"not null;index:idx_comment_parent" json:"parent_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Parent returns the comment's parent reference.
func (c *Comment) Parent() ParentRef {
	return ParentRef{Kind: c.ParentKind, ID: c.ParentID}
}

// OwnerUserID implements Owned. Comments are owned by their author.
func (c *Comment) OwnerUserID() uint { return c.AuthorID }
