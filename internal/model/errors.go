package model

import "errors"

// Common errors used across the application
var (
	// Identity errors
	ErrIdentityNotFound = errors.New("identity not found")
	ErrProfileNotFound  = errors.New("profile not found")

	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotParticipant   = errors.New("identity is not a session participant")
	ErrAlreadyInSession = errors.New("connection is already in a session")
	ErrSelfPairing      = errors.New("connection cannot be paired with itself")
)
