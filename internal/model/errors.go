package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrDuplicatePlayer = errors.New("player already exists")
	ErrInvalidName     = errors.New("player name must not be empty")

	// Game errors
	ErrSamePlayer    = errors.New("a player cannot play against themselves")
	ErrInvalidResult = errors.New("unrecognized game result")
	ErrInvalidDate   = errors.New("invalid date")
)
