package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-mail-verify/internal/config"
	"github.com/go-mail-verify/internal/domain"
	"github.com/go-mail-verify/internal/pkg/clock"
	"github.com/golang-jwt/jwt/v5"
)

// Classified verification failures. Callers re-issue on any of these;
// none is retryable.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims holds the confirmation-token payload.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 confirmation tokens. Tokens are
// self-contained: validity is re-derived from the signature and expiry at
// verification time, so no server-side token table exists and tokens stay
// valid across process restarts. There is no revocation.
type Provider struct {
	secret []byte
	clk    clock.Clock
}

// NewProvider builds a Provider from the configured signing secret.
// config.Load already guarantees the secret is non-empty.
func NewProvider(cfg *config.Config, clk clock.Clock) *Provider {
	return &Provider{secret: []byte(cfg.JWTSecret), clk: clk}
}

// Issue signs a token binding the normalized identity to an absolute expiry
// of now + ttl.
func (p *Provider) Issue(identity string, ttl time.Duration) (string, error) {
	now := p.clk.Now()
	claims := Claims{
		Email: domain.NormalizeIdentity(identity),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign confirmation token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry and returns the embedded
// identity. Pure function of the input and the clock; no side effects.
func (p *Provider) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.clk.Now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenSignature
		default:
			return "", ErrTokenMalformed
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return "", ErrTokenMalformed
	}
	return claims.Email, nil
}
