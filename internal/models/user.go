package models

import "strings"

// User is the identity of the current session, either a guest or a signed-in person.
type User struct {
	ID          string  `json:"id"`
	Email       *string `json:"email"`
	FullName    *string `json:"fullName"`
	IsAnonymous bool    `json:"isAnonymous"`
}

// DisplayName returns the best human-readable label for the user.
func (u User) DisplayName() string {
	if u.IsAnonymous {
		return "Guest"
	}
	if u.FullName != nil && strings.TrimSpace(*u.FullName) != "" {
		return *u.FullName
	}
	if u.Email != nil && *u.Email != "" {
		return *u.Email
	}
	return u.ID
}
