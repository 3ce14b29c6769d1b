package router

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storecatalog/internal/auth"
	"storecatalog/internal/config"
	apperrors "storecatalog/internal/errors"
	"storecatalog/internal/handler"
	"storecatalog/internal/logger"
	"storecatalog/internal/model"
)

// Handlers groups the HTTP handlers wired by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Health   *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log zerolog.Logger, resolver *auth.Resolver, h Handlers) {
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/", h.Health.Root)
	e.GET("/healthz", h.Health.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Middleware is attached per route: a group with middleware would also
	// catch unknown paths and answer them with 401 instead of 404.
	authenticated := auth.Authenticate(resolver)
	admin := []echo.MiddlewareFunc{authenticated, auth.RequireRole(model.RoleAdmin, log)}

	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)
	e.POST("/auth/refresh", h.Auth.Refresh)
	e.POST("/auth/logout", h.Auth.Logout, authenticated)
	e.GET("/auth/me", h.Auth.Me, authenticated)

	e.GET("/categories", h.Category.List)
	e.GET("/categories/:id", h.Category.Get)
	e.POST("/categories", h.Category.Create, admin...)
	e.PUT("/categories/:id", h.Category.Update, admin...)
	e.DELETE("/categories/:id", h.Category.Delete, admin...)

	e.GET("/products", h.Product.List)
	e.GET("/products/:id", h.Product.Get)
	e.POST("/products", h.Product.Create, admin...)
	e.PUT("/products/:id", h.Product.Update, admin...)
	e.DELETE("/products/:id", h.Product.Delete, admin...)
}

// ErrorHandler is the single boundary turning every error into the response envelope.
// Unexpected failures are logged with their cause and answered with a generic 500.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status  int
			message string
		)
		var he *echo.HTTPError
		if !isDomainError(err) && errors.As(err, &he) {
			status, message = fromEchoError(he)
		} else {
			httpErr := apperrors.MapErrorToHTTP(err)
			status, message = httpErr.StatusCode, httpErr.Message
		}

		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, handler.Envelope{Success: false, Message: message})
		}
		if writeErr != nil {
			log.Error().Err(writeErr).Msg("write error response")
		}
	}
}

func isDomainError(err error) bool {
	var e *apperrors.Error
	return errors.As(err, &e)
}

// fromEchoError covers routing and framework errors. Their messages are fixed by
// echo and safe to show, except for 5xx.
func fromEchoError(he *echo.HTTPError) (int, string) {
	switch he.Code {
	case http.StatusNotFound:
		return http.StatusNotFound, "route not found"
	case http.StatusMethodNotAllowed:
		return http.StatusMethodNotAllowed, "method not allowed"
	}
	if he.Code >= http.StatusInternalServerError {
		return http.StatusInternalServerError, "internal server error"
	}
	if msg, ok := he.Message.(string); ok && msg != "" {
		return he.Code, msg
	}
	return he.Code, strings.ToLower(http.StatusText(he.Code))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the request validator.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface. Failures come back as validation
// errors naming the first offending field.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Validation("invalid request")
	}
	return apperrors.Validation(describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
