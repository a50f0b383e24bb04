package domain

import "time"

// OTPRecord is the active one-time code for an identity. At most one record
// exists per identity; issuing a new code overwrites any prior record.
// Attempts is mutated only by the ledger's own Verify operation.
type OTPRecord struct {
	Identity  string
	Code      string // 6-digit numeric string
	CreatedAt time.Time
	ExpiresAt time.Time
	Attempts  int
}

// Expired reports whether the record is past its expiry at the given time.
func (r *OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
