package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storecatalog/internal/auth"
	apperrors "storecatalog/internal/errors"
	"storecatalog/internal/model"
	"storecatalog/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = apperrors.Unauthenticated("invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing user.
	ErrUserAlreadyExists = apperrors.Conflict("user already exists")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = apperrors.Unauthenticated("invalid or expired refresh token")
	// ErrAdminSignupDisabled is returned when registering an admin is not allowed.
	ErrAdminSignupDisabled = apperrors.Forbidden("admin registration is disabled")
)

// Session is the result of a successful login.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password string, role model.Role) (*model.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

type authService struct {
	users            repository.UserRepository
	credentials      repository.CredentialRepository
	jwtService       *auth.JWTService
	tokenStore       auth.TokenStoreInterface
	allowAdminSignup bool
	log              zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	credentials repository.CredentialRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	allowAdminSignup bool,
	log zerolog.Logger,
) AuthService {
	return &authService{
		users:            users,
		credentials:      credentials,
		jwtService:       jwtService,
		tokenStore:       tokenStore,
		allowAdminSignup: allowAdminSignup,
		log:              log,
	}
}

// Register creates the credential and then the local user row. If the user row
// cannot be written the credential is removed again.
func (s *authService) Register(ctx context.Context, email, password string, role model.Role) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("email and password are required")
	}
	if !role.Valid() {
		return nil, apperrors.Validation("role must be 'user' or 'admin'")
	}
	if role == model.RoleAdmin && !s.allowAdminSignup {
		return nil, ErrAdminSignupDisabled
	}

	existing, err := s.credentials.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check credential existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cred := &model.Credential{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.credentials.Create(ctx, cred); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create credential: %w", err)
	}

	user := &model.User{ID: cred.ID, Email: email, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if delErr := s.credentials.Delete(ctx, cred.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", cred.ID.String()).Msg("remove orphaned credential")
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	cred, err := s.credentials.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, cred.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	access, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, refresh.ID, user.ID, s.jwtService.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &Session{AccessToken: access.Token, RefreshToken: refresh.Token, User: user}, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	subject, err := claims.SubjectID()
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	if storedUserID != subject {
		return "", ErrInvalidRefreshToken
	}

	access, err := s.jwtService.GenerateAccessToken(subject, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return access.Token, nil
}

// Logout revokes the access token for its remaining lifetime and drops the
// refresh token when one is given.
func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	claims, err := s.jwtService.ValidateToken(accessToken, auth.TokenTypeAccess)
	if err != nil {
		return apperrors.Unauthenticated("invalid or expired token")
	}
	if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}

	if refreshToken == "" {
		return nil
	}
	refreshClaims, err := s.jwtService.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	if refreshClaims.Subject != claims.Subject {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, refreshClaims.ID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
