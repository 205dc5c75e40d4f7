package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/ghostduel/server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.ProfileTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSaveAndGetProfile() {
	profile := &model.Profile{
		Token:       "tok-1",
		Identity:    "u1",
		DisplayName: "Alice",
		CreatedAt:   time.Now().UTC(),
	}

	err := s.storage.SaveProfile(s.ctx, profile)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetProfileByToken(s.ctx, "tok-1")
	s.Require().NoError(err)
	s.Equal(profile.Identity, retrieved.Identity)
	s.Equal(profile.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetProfileNotFound() {
	_, err := s.storage.GetProfileByToken(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *StorageSuite) TestProfileExpires() {
	profile := &model.Profile{Token: "tok-1", Identity: "u1", DisplayName: "Alice"}
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profile))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetProfileByToken(s.ctx, "tok-1")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *StorageSuite) TestDeleteProfile() {
	profile := &model.Profile{Token: "tok-1", Identity: "u1"}
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profile))

	s.Require().NoError(s.storage.DeleteProfile(s.ctx, "tok-1"))

	_, err := s.storage.GetProfileByToken(s.ctx, "tok-1")
	s.ErrorIs(err, model.ErrProfileNotFound)
}
