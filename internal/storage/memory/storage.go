package memory

import (
	"context"
	"sync"

	"github.com/ghostduel/server/internal/model"
	"github.com/ghostduel/server/internal/storage"
)

// Storage is an in-memory implementation of the profile store
type Storage struct {
	mu       sync.RWMutex
	profiles map[string]*model.Profile
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		profiles: make(map[string]*model.Profile),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.Token] = profile
	return nil
}

func (s *Storage) GetProfileByToken(ctx context.Context, token string) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[token]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return profile, nil
}

func (s *Storage) DeleteProfile(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, token)
	return nil
}
