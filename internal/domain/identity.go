package domain

import "strings"

// NormalizeIdentity lower-cases an email address so it can be used as a
// store key. All credential stores key on the normalized form; equality is
// exact string match after normalization.
func NormalizeIdentity(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
