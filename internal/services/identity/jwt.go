package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ghostduel/server/internal/model"
)

// JWTResolver resolves HS256-signed tokens carrying identity claims. It
// needs no profile store: the token itself is the identity record, issued by
// whoever holds the shared secret.
type JWTResolver struct {
	secret []byte
}

// Ensure JWTResolver implements Resolver
var _ Resolver = (*JWTResolver)(nil)

// NewJWTResolver creates a resolver verifying tokens against the given secret
func NewJWTResolver(secret []byte) *JWTResolver {
	return &JWTResolver{secret: secret}
}

type identityClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Resolve verifies the token signature and extracts the identity (sub) and
// display name (name) claims. Every verification failure maps to
// model.ErrIdentityNotFound.
func (r *JWTResolver) Resolve(ctx context.Context, token string) (Resolution, error) {
	var claims identityClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return Resolution{}, model.ErrIdentityNotFound
	}

	name := claims.Name
	if name == "" {
		name = claims.Subject
	}

	return Resolution{
		Identity:    model.Identity(claims.Subject),
		DisplayName: name,
	}, nil
}
