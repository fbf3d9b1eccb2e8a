// Package verification tracks the per-phone OTP gate that stands between the
// order form and submission. States live in the shared cache with a TTL, so
// an abandoned verification expires back to Unverified on its own.
package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dukaan/internal/auth"
	"dukaan/internal/common"
)

// State is a phone's position in the verification flow.
type State string

const (
	StateUnverified State = "unverified"
	StateCodeSent   State = "code_sent"
	StateVerified   State = "verified"
)

var (
	// ErrNotVerified rejects order submission before the gate is passed.
	ErrNotVerified = errors.New("phone is not verified")
	// ErrNoCodeSent rejects a code check when no code was requested.
	ErrNoCodeSent = errors.New("no verification code was sent to this phone")
)

// Store is the subset of the cache the gate needs.
type Store interface {
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Gate drives the flow Unverified -> CodeSent -> Verified. Code generation
// and checking are delegated to the auth provider; the gate only records
// where each phone stands.
type Gate struct {
	store    Store
	provider auth.Provider
	ttl      time.Duration
	logger   *zap.Logger
}

func NewGate(store Store, provider auth.Provider, ttl time.Duration, logger *zap.Logger) *Gate {
	return &Gate{store: store, provider: provider, ttl: ttl, logger: logger}
}

func key(phone string) string {
	return "verify:" + phone
}

// State reports the phone's current gate state. An absent or expired entry
// is Unverified.
func (g *Gate) State(ctx context.Context, phone string) (State, error) {
	val, err := g.store.GetString(ctx, key(phone))
	if err != nil {
		return StateUnverified, fmt.Errorf("read verification state: %w", err)
	}
	switch State(val) {
	case StateCodeSent, StateVerified:
		return State(val), nil
	default:
		return StateUnverified, nil
	}
}

// SendCode validates the phone, asks the provider to deliver a code, and
// moves the phone to CodeSent. Re-sending from CodeSent is allowed and
// refreshes the TTL.
func (g *Gate) SendCode(ctx context.Context, phone string) error {
	if err := common.ValidatePhone(phone); err != nil {
		return err
	}
	if err := g.provider.SendOTP(ctx, phone); err != nil {
		return err
	}
	if err := g.store.SetString(ctx, key(phone), string(StateCodeSent), g.ttl); err != nil {
		return fmt.Errorf("record code sent: %w", err)
	}
	g.logger.Info("verification code sent", zap.String("phone", phone))
	return nil
}

// Confirm submits the code to the provider. On acceptance the phone moves to
// Verified and the provider session is returned. Confirming from Unverified
// is refused without contacting the provider.
func (g *Gate) Confirm(ctx context.Context, phone, code string) (*auth.Session, error) {
	state, err := g.State(ctx, phone)
	if err != nil {
		return nil, err
	}
	if state == StateUnverified {
		return nil, ErrNoCodeSent
	}
	session, err := g.provider.VerifyOTP(ctx, phone, code)
	if err != nil {
		return nil, err
	}
	if err := g.store.SetString(ctx, key(phone), string(StateVerified), g.ttl); err != nil {
		return nil, fmt.Errorf("record verification: %w", err)
	}
	g.logger.Info("phone verified", zap.String("phone", phone))
	return session, nil
}

// RequireVerified is the submission precondition: anything short of Verified
// is refused.
func (g *Gate) RequireVerified(ctx context.Context, phone string) error {
	state, err := g.State(ctx, phone)
	if err != nil {
		return err
	}
	if state != StateVerified {
		return ErrNotVerified
	}
	return nil
}

// Reset drops the phone back to Unverified.
func (g *Gate) Reset(ctx context.Context, phone string) error {
	return g.store.Delete(ctx, key(phone))
}
