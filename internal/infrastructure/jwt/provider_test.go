package jwtinfra

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-mail-verify/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestProvider(clk *fakeClock) *Provider {
	return NewProvider(&config.Config{JWTSecret: "test-secret"}, clk)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(newFakeClock())

	token, err := p.Issue("User@Example.com", 24*time.Hour)
	require.NoError(t, err)

	email, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email, "identity is normalized at issuance")
}

func TestVerify_Expired(t *testing.T) {
	clk := newFakeClock()
	p := newTestProvider(clk)

	token, err := p.Issue("a@b.com", time.Hour)
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	_, err = p.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_TamperedSignature(t *testing.T) {
	p := newTestProvider(newFakeClock())

	token, err := p.Issue("a@b.com", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[10] == 'A' {
		sig[10] = 'B'
	} else {
		sig[10] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = p.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestVerify_WrongSecret(t *testing.T) {
	clk := newFakeClock()
	issuer := newTestProvider(clk)
	verifier := NewProvider(&config.Config{JWTSecret: "other-secret"}, clk)

	token, err := issuer.Issue("a@b.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestVerify_Malformed(t *testing.T) {
	p := newTestProvider(newFakeClock())

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := p.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}
