// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"devfolio/internal/models"
)

// Owned is implemented by every resource with a single owning user:
// projects and forums via their owner, comments via their author.
type Owned interface {
	OwnerUserID() uint
}

// IsOwner reports whether the subject owns the resource.
func IsOwner(resource Owned, subjectID uint) bool {
	return resource.OwnerUserID() == subjectID
}

// requireOwner is the uniform guard applied before any mutating operation.
// Callers must have resolved the resource first, so a missing resource
// surfaces as NOT_FOUND before ownership is ever considered; this guard
// only decides FORBIDDEN vs. proceed.
func requireOwner(resource Owned, subjectID uint, message string) error {
	if !IsOwner(resource, subjectID) {
		return models.NewForbiddenError(message)
	}
	return nil
}
