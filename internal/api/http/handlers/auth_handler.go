package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hustle-village/internal/api/dto"
	"github.com/spec-kit/hustle-village/internal/domain"
	"github.com/spec-kit/hustle-village/internal/service"
	apperrors "github.com/spec-kit/hustle-village/pkg/util"
)

// AuthHandler exposes the passwordless signup endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// SignupRequest handles POST /auth/signup-request.
func (h *AuthHandler) SignupRequest(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.RequestSignup(c.UserContext(), req.Email, req.FullName, req.PhoneNumber); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "verification code sent to email",
		"email":   req.Email,
	})
}

// SignupVerify handles POST /auth/signup-verify.
func (h *AuthHandler) SignupVerify(c *fiber.Ctx) error {
	var req dto.SignupVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, pair, err := h.auth.VerifySignup(c.UserContext(), req.Email, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user": userResponse(user),
		"auth": dto.AuthResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresAt:    pair.AccessExpiresAt,
		},
	})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
	}
}
