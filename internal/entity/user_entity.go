package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id              uuid.UUID
	Username        string
	Email           string
	PasswordHash    *string
	PreferredName   *string
	WordsPerSession *int
	IsAdmin         bool
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// DisplayName returns the name the tutor addresses the learner by,
// falling back to the account username when no preference is set.
func (u *User) DisplayName() string {
	if u.PreferredName != nil && *u.PreferredName != "" {
		return *u.PreferredName
	}
	return u.Username
}
