package service

import "errors"

var (
	ErrNotFound           = errors.New("recipe not found")
	ErrInvalidRating      = errors.New("rating must be between 1-5")
	ErrMissingUserID      = errors.New("userId is required")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
