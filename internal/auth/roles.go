package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/hustle-village/pkg/util"
)

// RequireAdmin ensures the authenticated caller holds the admin role. The
// original left admin routes on bare authentication; the gap is closed here
// because a seller approving their own deletion defeats the workflow.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.User.IsAdmin() {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
