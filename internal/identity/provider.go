package identity

import (
	"context"
	"errors"

	"github.com/spec-kit/hustle-village/internal/domain"
)

// Provider is the external identity boundary. Implementations assert identity
// facts only; user creation, token issuance, and session handling belong to
// the callers.
type Provider interface {
	// SendSignupCode issues a one-time passcode to the address and parks the
	// pending profile alongside it until verification.
	SendSignupCode(ctx context.Context, identity domain.Identity) error

	// VerifySignupCode checks the passcode and, on success, consumes it and
	// returns the verified identity.
	VerifySignupCode(ctx context.Context, email, code string) (*domain.Identity, error)
}

// ErrCodeInvalid is returned when the supplied passcode does not match.
var ErrCodeInvalid = errors.New("verification code invalid")

// ErrCodeExpired is returned when no passcode is outstanding for the address.
var ErrCodeExpired = errors.New("verification code expired or never issued")
