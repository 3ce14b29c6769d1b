package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "storecatalog/internal/errors"
)

var errInvalidBody = apperrors.Validation("invalid request body")

// bindAndValidate decodes the body into req and runs the registered validator.
// A body that does not decode, such as a price sent as a string, is a validation failure.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errInvalidBody
	}
	return c.Validate(req)
}
