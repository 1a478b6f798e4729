// Package validation contains input validation rules shared by the service layer.
package validation

import (
	"fmt"
	"regexp"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 6
	MaxPasswordLen = 72 // bcrypt input limit

	MinTitleLen       = 3
	MaxTitleLen       = 200
	MinDescriptionLen = 10
	MaxDescriptionLen = 10000
	MaxCommentLen     = 10000
	MaxTagLen         = 40
	MaxTags           = 20
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername checks username length and allowed characters.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen {
		return fmt.Errorf("username must be %d-%d characters", MinUsernameLen, MaxUsernameLen)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits, '_', '.' and '-'")
	}
	return nil
}

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}

// ValidatePassword checks password length bounds.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLen)
	}
	return nil
}

// ValidateTitle checks title length bounds shared by projects and forums.
func ValidateTitle(title string) error {
	if len(title) < MinTitleLen {
		return fmt.Errorf("title must be at least %d characters", MinTitleLen)
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLen)
	}
	return nil
}

// ValidateDescription checks description length bounds shared by projects and forums.
func ValidateDescription(description string) error {
	if len(description) < MinDescriptionLen {
		return fmt.Errorf("description must be at least %d characters", MinDescriptionLen)
	}
	if len(description) > MaxDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLen)
	}
	return nil
}

// ValidateTags checks tag count and per-tag length; tags are already normalized.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTags {
		return fmt.Errorf("at most %d tags are allowed", MaxTags)
	}
	for _, t := range tags {
		if len(t) > MaxTagLen {
			return fmt.Errorf("tag %q is longer than %d characters", t, MaxTagLen)
		}
	}
	return nil
}
