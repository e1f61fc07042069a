package service

import "errors"

// Sentinel errors returned by services so the HTTP layer can map them to
// meaningful status codes.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrWordNotFound = errors.New("word not found")

	ErrSessionNotFound     = errors.New("practice session not found")
	ErrSessionComplete     = errors.New("practice session already completed")
	ErrNoEligibleWords     = errors.New("no words eligible for practice")
	ErrNoActiveWord        = errors.New("no active word in session")
	ErrWordAlreadyAdvanced = errors.New("word already advanced")
)
