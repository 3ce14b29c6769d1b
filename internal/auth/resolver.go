package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "storecatalog/internal/errors"
	"storecatalog/internal/model"
	"storecatalog/internal/repository"
)

const bearerPrefix = "Bearer "

var (
	errMissingToken = apperrors.Unauthenticated("missing or malformed bearer token")
	errInvalidCred  = apperrors.Unauthenticated("invalid or expired token")
	errUnknownUser  = apperrors.Unauthenticated("user not found")
)

// Resolver turns a bearer credential into the local User.
type Resolver struct {
	provider CredentialProvider
	users    repository.UserRepository
	log      zerolog.Logger
}

// NewResolver creates a credential resolver.
func NewResolver(provider CredentialProvider, users repository.UserRepository, log zerolog.Logger) *Resolver {
	return &Resolver{provider: provider, users: users, log: log}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// Resolve validates an Authorization header value and loads the user.
func (r *Resolver) Resolve(ctx context.Context, header string) (*model.User, error) {
	token, ok := BearerToken(header)
	if !ok {
		return nil, errMissingToken
	}
	return r.ResolveToken(ctx, token)
}

// ResolveToken validates a bare token and loads the user. It never mutates state.
func (r *Resolver) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	subject, err := r.provider.VerifyToken(ctx, token)
	if errors.Is(err, ErrProviderUnavailable) {
		r.log.Error().Err(err).Msg("verify token")
		return nil, apperrors.Internal(err)
	}
	if err != nil {
		r.log.Debug().Err(err).Msg("token rejected")
		return nil, errInvalidCred
	}

	user, err := r.users.FindByID(ctx, subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errUnknownUser
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}
