package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "storecatalog/internal/errors"
	"storecatalog/internal/model"
)

// UserContextKey is the echo context key holding the resolved *model.User.
const UserContextKey = "user"

// Authenticate resolves the bearer credential and stores the user in the context.
func Authenticate(resolver *Resolver) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":" + bearerPrefix,
		ContextKey:  UserContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return resolver.ResolveToken(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var appErr *apperrors.Error
			if errors.As(err, &appErr) {
				return appErr
			}
			return errMissingToken
		},
	})
}

// RequireRole rejects requests whose resolved user does not hold role.
func RequireRole(role model.Role, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := UserFromContext(c)
			if user != nil && !user.Role.Valid() {
				log.Warn().Str("user_id", user.ID.String()).Str("role", string(user.Role)).
					Msg("user has unknown role")
			}
			if err := Require(user, role); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// UserFromContext returns the user set by Authenticate.
func UserFromContext(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(UserContextKey).(*model.User)
	return user, ok && user != nil
}
