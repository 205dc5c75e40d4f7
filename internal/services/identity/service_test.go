package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/ghostduel/server/internal/dependencies/mocks"
	"github.com/ghostduel/server/internal/model"
	"github.com/ghostduel/server/internal/storage/memory"
	"github.com/ghostduel/server/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.random, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCreateGuestProfile() {
	s.random.QueueToken("tok-abc")
	s.random.QueueString("alice0000001")

	profile, err := s.service.CreateGuestProfile(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal("tok-abc", profile.Token)
	s.Equal(model.Identity("u_alice0000001"), profile.Identity)
	s.Equal("Alice", profile.DisplayName)
	s.Equal(s.clock.Now(), profile.CreatedAt)
}

func (s *ServiceSuite) TestResolveKnownToken() {
	s.random.QueueToken("tok-abc")
	s.random.QueueString("alice0000001")
	profile, err := s.service.CreateGuestProfile(s.ctx, "Alice")
	s.Require().NoError(err)

	res, err := s.service.Resolve(s.ctx, profile.Token)
	s.Require().NoError(err)
	s.Equal(profile.Identity, res.Identity)
	s.Equal("Alice", res.DisplayName)
}

func (s *ServiceSuite) TestResolveUnknownToken() {
	_, err := s.service.Resolve(s.ctx, "no-such-token")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

func (s *ServiceSuite) TestResolveEmptyToken() {
	_, err := s.service.Resolve(s.ctx, "")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

type JWTResolverSuite struct {
	suite.Suite
	secret   []byte
	resolver *JWTResolver
	ctx      context.Context
}

func TestJWTResolverSuite(t *testing.T) {
	suite.Run(t, new(JWTResolverSuite))
}

func (s *JWTResolverSuite) SetupTest() {
	s.secret = []byte("test-secret")
	s.resolver = NewJWTResolver(s.secret)
	s.ctx = context.Background()
}

func (s *JWTResolverSuite) sign(claims jwt.Claims, secret []byte) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	s.Require().NoError(err)
	return token
}

func (s *JWTResolverSuite) TestResolveValidToken() {
	token := s.sign(identityClaims{
		Name:             "Alice",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	}, s.secret)

	res, err := s.resolver.Resolve(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(model.Identity("u1"), res.Identity)
	s.Equal("Alice", res.DisplayName)
}

func (s *JWTResolverSuite) TestResolveFallsBackToSubjectForName() {
	token := s.sign(identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	}, s.secret)

	res, err := s.resolver.Resolve(s.ctx, token)
	s.Require().NoError(err)
	s.Equal("u1", res.DisplayName)
}

func (s *JWTResolverSuite) TestResolveWrongSecret() {
	token := s.sign(identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	}, []byte("other-secret"))

	_, err := s.resolver.Resolve(s.ctx, token)
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

func (s *JWTResolverSuite) TestResolveMissingSubject() {
	token := s.sign(identityClaims{Name: "Alice"}, s.secret)

	_, err := s.resolver.Resolve(s.ctx, token)
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

func (s *JWTResolverSuite) TestResolveExpiredToken() {
	token := s.sign(identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, s.secret)

	_, err := s.resolver.Resolve(s.ctx, token)
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

func (s *JWTResolverSuite) TestResolveGarbage() {
	_, err := s.resolver.Resolve(s.ctx, "not.a.jwt")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}
