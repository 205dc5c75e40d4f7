package storage

import (
	"context"

	"github.com/ghostduel/server/internal/model"
)

// Storage defines the interface for the profile store backing token-based
// identity resolution. The matchmaking core never touches it directly; it is
// consulted once per join, by the identity service.
type Storage interface {
	// SaveProfile stores a profile keyed by its token.
	SaveProfile(ctx context.Context, profile *model.Profile) error

	// GetProfileByToken returns the profile for a token, or
	// model.ErrProfileNotFound.
	GetProfileByToken(ctx context.Context, token string) (*model.Profile, error)

	// DeleteProfile removes the profile for a token. Deleting an absent
	// profile is not an error.
	DeleteProfile(ctx context.Context, token string) error
}
