package verification

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-mail-verify/internal/application/delivery"
	"github.com/go-mail-verify/internal/domain"
	"github.com/go-mail-verify/internal/pkg/mailtmpl"
)

// TokenIssuer issues and verifies signed confirmation tokens.
type TokenIssuer interface {
	Issue(identity string, ttl time.Duration) (string, error)
	Verify(token string) (string, error)
}

// OTPStore is the ledger of active one-time codes.
type OTPStore interface {
	Issue(identity string, ttl time.Duration) (string, error)
	Verify(identity, candidate string) bool
}

// ConfirmationStore tracks confirmed identities.
type ConfirmationStore interface {
	MarkConfirmed(identity string)
	IsConfirmed(identity string) bool
}

// Service drives the confirmation and password-reset flows. It owns no
// long-lived state; all mutable state lives in the ledger and the registry.
type Service interface {
	// BeginConfirmation issues a confirmation token and emails the
	// confirmation link. The token is returned so non-production callers can
	// expose a preview.
	BeginConfirmation(ctx context.Context, identity string) (string, error)
	// CompleteConfirmation verifies the token and marks the identity
	// confirmed. Completing for an already-confirmed identity is a no-op
	// success and does not resend the welcome email.
	CompleteConfirmation(ctx context.Context, token string) (string, error)
	// BeginReset issues a one-time code and emails it.
	BeginReset(ctx context.Context, identity string) error
	// CompleteReset consumes the code. False means invalid, expired or
	// exhausted; the caller must begin again.
	CompleteReset(ctx context.Context, identity, code string) bool
	// ConfirmationStatus reports whether the identity has confirmed.
	ConfirmationStatus(identity string) bool
}

// ServiceDeps bundles the collaborators for NewService.
type ServiceDeps struct {
	Tokens    TokenIssuer
	Ledger    OTPStore
	Registry  ConfirmationStore
	Gateway   delivery.Gateway
	Renderer  *mailtmpl.Renderer
	AppURL    string
	BrandName string
	TokenTTL  time.Duration
	OTPTTL    time.Duration
}

type service struct {
	tokens    TokenIssuer
	ledger    OTPStore
	registry  ConfirmationStore
	gateway   delivery.Gateway
	renderer  *mailtmpl.Renderer
	appURL    string
	brandName string
	tokenTTL  time.Duration
	otpTTL    time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		tokens:    deps.Tokens,
		ledger:    deps.Ledger,
		registry:  deps.Registry,
		gateway:   deps.Gateway,
		renderer:  deps.Renderer,
		appURL:    deps.AppURL,
		brandName: deps.BrandName,
		tokenTTL:  deps.TokenTTL,
		otpTTL:    deps.OTPTTL,
	}
}

func (s *service) BeginConfirmation(ctx context.Context, identity string) (string, error) {
	email := domain.NormalizeIdentity(identity)

	token, err := s.tokens.Issue(email, s.tokenTTL)
	if err != nil {
		return "", err
	}

	confirmURL := fmt.Sprintf("%s/auth/confirm?token=%s", s.appURL, url.QueryEscape(token))
	body := s.renderer.Confirmation(email, confirmURL)

	// A delivery failure must reach the caller: the user needs to know no
	// email arrived so they can begin again.
	if _, err := s.gateway.Send(ctx, email, "Confirm your email", body); err != nil {
		return "", err
	}
	return token, nil
}

func (s *service) CompleteConfirmation(ctx context.Context, token string) (string, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return "", fmt.Errorf("invalid or expired token: %w", domain.ErrBadRequest)
	}

	if s.registry.IsConfirmed(email) {
		return email, nil
	}
	s.registry.MarkConfirmed(email)
	slog.Info("identity confirmed", "email", email)

	// Confirmation is authoritative once marked; a failed welcome email
	// never rolls it back.
	body := s.renderer.Welcome(email)
	if _, err := s.gateway.Send(ctx, email, "Welcome to "+s.brandName, body); err != nil {
		slog.Warn("welcome email failed", "email", email, "err", err)
	}
	return email, nil
}

func (s *service) BeginReset(ctx context.Context, identity string) error {
	email := domain.NormalizeIdentity(identity)

	code, err := s.ledger.Issue(email, s.otpTTL)
	if err != nil {
		return err
	}

	body := s.renderer.Reset(email, code)
	if _, err := s.gateway.Send(ctx, email, "Your password reset code", body); err != nil {
		return err
	}
	return nil
}

func (s *service) CompleteReset(ctx context.Context, identity, code string) bool {
	return s.ledger.Verify(identity, code)
}

func (s *service) ConfirmationStatus(identity string) bool {
	return s.registry.IsConfirmed(identity)
}
