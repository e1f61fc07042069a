package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PreferredName   string    `json:"preferred_name,omitempty"`
	WordsPerSession int       `json:"words_per_session"`
	CreatedAt       time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	PreferredName   *string `json:"preferred_name" validate:"omitempty,min=1,max=64"`
	WordsPerSession *int    `json:"words_per_session" validate:"omitempty,min=1,max=50"`
}
