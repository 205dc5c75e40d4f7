package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ghostduel/server/internal/dependencies/clock"
	"github.com/ghostduel/server/internal/dependencies/random"
	"github.com/ghostduel/server/internal/model"
	"github.com/ghostduel/server/internal/storage"
)

const (
	// IdentityLength is the length of generated guest identities
	IdentityLength = 12
	// IdentityAlphabet is the characters used in generated identities
	IdentityAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// tokenBytes is the entropy of generated profile tokens
	tokenBytes = 24
)

// Resolution is the result of resolving an identity token.
type Resolution struct {
	Identity    model.Identity
	DisplayName string
}

// Resolver resolves an opaque identity token to a stable identity and
// display name. Implementations may call external services; callers must not
// hold matchmaking state locks across Resolve.
type Resolver interface {
	Resolve(ctx context.Context, token string) (Resolution, error)
}

// Service issues guest profiles and resolves their tokens against the
// profile store.
type Service struct {
	storage storage.Storage
	random  random.Random
	clock   clock.Clock
	logger  *slog.Logger
}

// Ensure Service implements Resolver
var _ Resolver = (*Service)(nil)

// New creates a new identity Service
func New(store storage.Storage, rnd random.Random, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		random:  rnd,
		clock:   clk,
		logger:  logger.With(slog.String("component", "identity")),
	}
}

// CreateGuestProfile creates an anonymous profile and returns it, including
// the token the client will join with.
func (s *Service) CreateGuestProfile(ctx context.Context, displayName string) (*model.Profile, error) {
	profile := &model.Profile{
		Token:       s.random.Token(tokenBytes),
		Identity:    model.Identity("u_" + s.random.String(IdentityLength, IdentityAlphabet)),
		DisplayName: displayName,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// Resolve looks the token up in the profile store. Any failure, transient or
// not, is reported as model.ErrIdentityNotFound; the join is simply rejected
// and the client may retry.
func (s *Service) Resolve(ctx context.Context, token string) (Resolution, error) {
	if token == "" {
		return Resolution{}, model.ErrIdentityNotFound
	}

	profile, err := s.storage.GetProfileByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, model.ErrProfileNotFound) {
			s.logger.Warn("profile lookup failed", slog.Any("error", err))
		}
		return Resolution{}, model.ErrIdentityNotFound
	}

	return Resolution{
		Identity:    profile.Identity,
		DisplayName: profile.DisplayName,
	}, nil
}
