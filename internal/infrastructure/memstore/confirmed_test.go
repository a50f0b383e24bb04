package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkConfirmed_Idempotent(t *testing.T) {
	r := NewConfirmedRegistry()
	r.MarkConfirmed("a@b.com")
	r.MarkConfirmed("a@b.com")

	assert.True(t, r.IsConfirmed("a@b.com"))
	assert.Len(t, r.List(), 1)
}

func TestIsConfirmed_NormalizesIdentity(t *testing.T) {
	r := NewConfirmedRegistry()
	r.MarkConfirmed("User@Example.COM")

	assert.True(t, r.IsConfirmed("user@example.com"))
	assert.Equal(t, []string{"user@example.com"}, r.List())
}

func TestIsConfirmed_UnknownIdentity(t *testing.T) {
	r := NewConfirmedRegistry()
	assert.False(t, r.IsConfirmed("nobody@b.com"))
}

func TestRemove(t *testing.T) {
	r := NewConfirmedRegistry()
	r.MarkConfirmed("a@b.com")

	assert.True(t, r.Remove("A@B.com"))
	assert.False(t, r.IsConfirmed("a@b.com"))
	assert.False(t, r.Remove("a@b.com"), "second remove reports absence")
}
