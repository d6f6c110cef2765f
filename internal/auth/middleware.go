package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hustle-village/internal/domain"
	"github.com/spec-kit/hustle-village/internal/repository"
	apperrors "github.com/spec-kit/hustle-village/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. It is read-only from the
// handlers' point of view; nothing in this package mutates listing or
// delete-request state.
type Principal struct {
	User *domain.User
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	verifier Verifier
	users    repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(verifier Verifier, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, users: users}
}

// Handle enforces authentication for protected routes. Verifying the same
// valid credential twice yields the same principal.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.verifier.Verify(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewUnauthorized("token has expired")
		}
		return apperrors.NewUnauthorized("invalid token")
	}
	if claims.Kind != domain.TokenKindAccess {
		return apperrors.NewUnauthorized("access token required")
	}

	user, err := m.users.GetByEmail(c.UserContext(), claims.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("profile missing for verified identity")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
