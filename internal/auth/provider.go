package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrTokenRevoked is returned for access tokens revoked by logout.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrProviderUnavailable is returned when the token cannot be checked at all.
	ErrProviderUnavailable = errors.New("credential provider unavailable")
)

// CredentialProvider verifies a bearer token and returns its subject.
type CredentialProvider interface {
	VerifyToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Provider is the in-process credential provider: signed JWTs plus a revocation list.
type Provider struct {
	jwt    *JWTService
	tokens TokenStoreInterface
}

var _ CredentialProvider = (*Provider)(nil)

// NewProvider creates a credential provider.
func NewProvider(jwt *JWTService, tokens TokenStoreInterface) *Provider {
	return &Provider{jwt: jwt, tokens: tokens}
}

// VerifyToken checks signature, expiry, token type and revocation.
func (p *Provider) VerifyToken(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := p.jwt.ValidateToken(token, TokenTypeAccess)
	if err != nil {
		return uuid.Nil, err
	}

	revoked, err := p.tokens.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		// A revocation list we cannot read must not let a revoked token through.
		return uuid.Nil, fmt.Errorf("%w: check revocation: %v", ErrProviderUnavailable, err)
	}
	if revoked {
		return uuid.Nil, ErrTokenRevoked
	}

	return claims.SubjectID()
}
