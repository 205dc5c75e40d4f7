package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ghostduel/server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetProfile() {
	profile := &model.Profile{
		Token:       "tok-1",
		Identity:    "u1",
		DisplayName: "Alice",
		CreatedAt:   time.Now(),
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

func (s *StorageSuite) TestSaveOverwritesExistingToken() {
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{Token: "tok-1", Identity: "u1", DisplayName: "Alice"})
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{Token: "tok-1", Identity: "u1", DisplayName: "Alicia"})

	retrieved, err := s.storage.GetProfileByToken(s.ctx, "tok-1")
	s.Require().NoError(err)
	s.Equal("Alicia", retrieved.DisplayName)
}

func (s *StorageSuite) TestDeleteProfile() {
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{Token: "tok-1", Identity: "u1"})

	err := s.storage.DeleteProfile(s.ctx, "tok-1")
	s.Require().NoError(err)

	_, err = s.storage.GetProfileByToken(s.ctx, "tok-1")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *StorageSuite) TestDeleteAbsentProfileIsNoop() {
	s.NoError(s.storage.DeleteProfile(s.ctx, "never-existed"))
}
