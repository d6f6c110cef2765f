package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/hustle-village/internal/auth"
	"github.com/spec-kit/hustle-village/internal/config"
	"github.com/spec-kit/hustle-village/internal/domain"
	"github.com/spec-kit/hustle-village/internal/events"
	"github.com/spec-kit/hustle-village/internal/identity"
	"github.com/spec-kit/hustle-village/internal/repository"
	apperrors "github.com/spec-kit/hustle-village/pkg/util"
)

// AuthService coordinates the passwordless signup flow: request a code, then
// verify it to mint a profile and a token pair.
type AuthService struct {
	users         repository.UserRepository
	provider      identity.Provider
	tokenMgr      *auth.TokenManager
	dispatcher    events.Dispatcher
	allowedDomain string
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Provider   identity.Provider
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:         deps.UserRepo,
		provider:      deps.Provider,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLMinutes),
		dispatcher:    deps.Dispatcher,
		allowedDomain: cfg.Auth.AllowedEmailDomain,
	}
}

// RequestSignup validates the institutional address and asks the identity
// provider to send a verification code.
func (s *AuthService) RequestSignup(ctx context.Context, email, fullName, phoneNumber string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(fullName) == "" || strings.TrimSpace(phoneNumber) == "" {
		return apperrors.NewValidationError("email, full_name, and phone_number are required", nil)
	}
	if s.allowedDomain != "" && !strings.HasSuffix(email, s.allowedDomain) {
		return apperrors.NewValidationError(
			fmt.Sprintf("must use a %s email", s.allowedDomain), nil)
	}

	err := s.provider.SendSignupCode(ctx, domain.Identity{
		Email:       email,
		FullName:    strings.TrimSpace(fullName),
		PhoneNumber: strings.TrimSpace(phoneNumber),
	})
	if err != nil {
		return apperrors.NewUnavailable("failed to send verification code", err)
	}
	return nil
}

// VerifySignup checks the code, upserts the directory profile, and issues
// tokens. Verifying the same identity again refreshes rather than duplicates
// the profile.
func (s *AuthService) VerifySignup(ctx context.Context, email, code string) (*domain.User, *auth.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(code) == "" {
		return nil, nil, apperrors.NewValidationError("email and code are required", nil)
	}

	verified, err := s.provider.VerifySignupCode(ctx, email, strings.TrimSpace(code))
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrCodeInvalid):
			return nil, nil, apperrors.NewValidationError("invalid verification code", nil)
		case errors.Is(err, identity.ErrCodeExpired):
			return nil, nil, apperrors.NewValidationError("verification code expired; request a new one", nil)
		default:
			return nil, nil, apperrors.NewUnavailable("verification failed", err)
		}
	}

	user := &domain.User{
		Email:       verified.Email,
		FullName:    verified.FullName,
		PhoneNumber: verified.PhoneNumber,
		Role:        domain.UserRoleSeller,
	}
	if err := s.users.UpsertByEmail(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.tokenMgr.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	s.publishVerified(ctx, user)
	return user, pair, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publishVerified(ctx context.Context, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserVerified,
		ActorID:   user.ID,
		Timestamp: time.Now(),
		Payload: events.UserVerifiedPayload{
			UserID: user.ID,
			Email:  user.Email,
		},
	})
}
