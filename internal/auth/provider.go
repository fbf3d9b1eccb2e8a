package auth

import (
	"context"

	"github.com/google/uuid"
)

// Session is what the hosted auth provider returns on a successful
// verification or password sign-in. Tokens are the provider's; this service
// never mints its own.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	UserID       uuid.UUID `json:"user_id"`
}

// Provider is the hosted auth service. Password auth, OTP delivery, code
// checking and identity storage all live on its side; we only call it.
type Provider interface {
	// SendOTP asks the provider to generate and deliver a one-time code.
	SendOTP(ctx context.Context, phone string) error
	// VerifyOTP submits a code. A non-nil session means the provider accepted it.
	VerifyOTP(ctx context.Context, phone, code string) (*Session, error)
	// SignInWithPassword exchanges owner credentials for a session.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	// CreateUser provisions a confirmed identity (super-admin flow only).
	CreateUser(ctx context.Context, email, password string) (uuid.UUID, error)
}
