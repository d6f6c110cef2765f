package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/hustle-village/internal/domain"
	"github.com/spec-kit/hustle-village/internal/events"
)

// OTPProvider issues numeric one-time passcodes. Codes are stored hashed so a
// read of the store never reveals a usable credential; delivery itself is a
// stub event (real email delivery is out of scope).
type OTPProvider struct {
	store      SignupCodeStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	ttl        time.Duration
	codeLength int
	bcryptCost int
}

// OTPConfig tunes code issuance.
type OTPConfig struct {
	TTL        time.Duration
	CodeLength int
	BcryptCost int
}

// NewOTPProvider constructs the provider.
func NewOTPProvider(store SignupCodeStore, dispatcher events.Dispatcher, logger *zap.Logger, cfg OTPConfig) *OTPProvider {
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 6
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &OTPProvider{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
		ttl:        cfg.TTL,
		codeLength: cfg.CodeLength,
		bcryptCost: cfg.BcryptCost,
	}
}

// SendSignupCode generates a passcode, stores its hash with the pending
// profile, and hands delivery to the notification stub. Re-requesting
// replaces any outstanding code for the address.
func (p *OTPProvider) SendSignupCode(ctx context.Context, identity domain.Identity) error {
	code, err := generateNumericCode(p.codeLength)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), p.bcryptCost)
	if err != nil {
		return err
	}

	record := SignupCodeRecord{
		CodeHash:    string(hash),
		FullName:    identity.FullName,
		PhoneNumber: identity.PhoneNumber,
	}
	if err := p.store.Save(ctx, identity.Email, record, p.ttl); err != nil {
		return err
	}

	p.logger.Info("signup code issued", zap.String("email", identity.Email))
	p.publishCodeIssued(ctx, identity.Email, code)
	return nil
}

// VerifySignupCode compares the passcode against the stored hash and consumes
// it on success.
func (p *OTPProvider) VerifySignupCode(ctx context.Context, email, code string) (*domain.Identity, error) {
	record, err := p.store.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(code)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrCodeInvalid
		}
		return nil, err
	}
	// Single use: consume before anyone else can replay it.
	if err := p.store.Delete(ctx, email); err != nil {
		p.logger.Warn("failed to consume signup code", zap.String("email", email), zap.Error(err))
	}
	return &domain.Identity{
		Email:       email,
		FullName:    record.FullName,
		PhoneNumber: record.PhoneNumber,
	}, nil
}

func (p *OTPProvider) publishCodeIssued(ctx context.Context, email, code string) {
	if p.dispatcher == nil {
		return
	}
	_ = p.dispatcher.Publish(ctx, events.Event{
		Type: events.EventSignupCodeIssued,
		Payload: events.SignupCodeIssuedPayload{
			Email: email,
			Code:  code,
		},
	})
}

func generateNumericCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

var _ Provider = (*OTPProvider)(nil)
