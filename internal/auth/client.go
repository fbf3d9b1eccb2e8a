package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// providerError is the provider's own error payload, surfaced verbatim to the
// initiating user where available.
type providerError struct {
	Msg         string `json:"msg"`
	Description string `json:"error_description"`
	ErrorCode   string `json:"error"`
}

func (e *providerError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Description != "" {
		return e.Description
	}
	if e.ErrorCode != "" {
		return e.ErrorCode
	}
	return "auth provider request failed"
}

type client struct {
	http       *resty.Client
	serviceKey string
	logger     *zap.Logger
}

// NewClient builds a Provider talking to a GoTrue-compatible auth endpoint.
// serviceKey is only attached to the admin user-creation call.
func NewClient(baseURL, serviceKey string, logger *zap.Logger) Provider {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &client{http: http, serviceKey: serviceKey, logger: logger}
}

func (c *client) SendOTP(ctx context.Context, phone string) error {
	var provErr providerError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"phone": phone}).
		SetError(&provErr).
		Post("/otp")
	if err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	if resp.IsError() {
		return &provErr
	}
	return nil
}

type verifyResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (c *client) VerifyOTP(ctx context.Context, phone, code string) (*Session, error) {
	var provErr providerError
	var out verifyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"type": "sms", "phone": phone, "token": code}).
		SetResult(&out).
		SetError(&provErr).
		Post("/verify")
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	if resp.IsError() {
		return nil, &provErr
	}
	return sessionFrom(&out)
}

func (c *client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var provErr providerError
	var out verifyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		SetError(&provErr).
		Post("/token")
	if err != nil {
		return nil, fmt.Errorf("password sign-in: %w", err)
	}
	if resp.IsError() {
		return nil, &provErr
	}
	return sessionFrom(&out)
}

func (c *client) CreateUser(ctx context.Context, email, password string) (uuid.UUID, error) {
	var provErr providerError
	var out struct {
		ID string `json:"id"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.serviceKey).
		SetBody(map[string]any{"email": email, "password": password, "email_confirm": true}).
		SetResult(&out).
		SetError(&provErr).
		Post("/admin/users")
	if err != nil {
		return uuid.Nil, fmt.Errorf("create user: %w", err)
	}
	if resp.IsError() {
		return uuid.Nil, &provErr
	}
	userID, err := uuid.Parse(out.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("provider returned invalid user id %q", out.ID)
	}
	c.logger.Info("provisioned auth identity", zap.String("user_id", userID.String()))
	return userID, nil
}

func sessionFrom(out *verifyResponse) (*Session, error) {
	userID, err := uuid.Parse(out.User.ID)
	if err != nil {
		return nil, fmt.Errorf("provider returned invalid user id %q", out.User.ID)
	}
	return &Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		TokenType:    out.TokenType,
		ExpiresIn:    out.ExpiresIn,
		UserID:       userID,
	}, nil
}
