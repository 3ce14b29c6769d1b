package auth

import (
	apperrors "storecatalog/internal/errors"
	"storecatalog/internal/model"
)

var (
	errNotAuthenticated = apperrors.Unauthenticated("not authenticated")
	errInsufficientRole = apperrors.Forbidden("access denied: insufficient role")
)

// Require allows the call only when user holds exactly role. A missing user is
// Unauthenticated; a role outside the known set never grants access.
func Require(user *model.User, role model.Role) error {
	if user == nil {
		return errNotAuthenticated
	}

	switch user.Role {
	case model.RoleAdmin, model.RoleUser:
		if !role.Valid() || user.Role != role {
			return errInsufficientRole
		}
		return nil
	default:
		return errInsufficientRole
	}
}
