package memstore

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/go-mail-verify/internal/domain"
	"github.com/go-mail-verify/internal/pkg/clock"
)

// OTPLedger holds the active one-time codes, one per identity. All state is
// volatile and lives for the process lifetime only.
//
// Every identity-specific operation runs under the ledger mutex, so
// concurrent Verify calls for one identity serialize and attempt counting
// and single-use deletion cannot race.
type OTPLedger struct {
	mu          sync.Mutex
	records     map[string]*domain.OTPRecord
	clk         clock.Clock
	maxAttempts int
}

// NewOTPLedger creates an empty ledger. maxAttempts is the verification
// attempt ceiling; a record is deleted as soon as the ceiling is crossed.
func NewOTPLedger(clk clock.Clock, maxAttempts int) *OTPLedger {
	return &OTPLedger{
		records:     make(map[string]*domain.OTPRecord),
		clk:         clk,
		maxAttempts: maxAttempts,
	}
}

// Issue generates a uniformly random 6-digit code and stores it for the
// normalized identity with a fresh attempt counter. Any existing record for
// the identity is silently overwritten, invalidating its code.
func (l *OTPLedger) Issue(identity string, ttl time.Duration) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate OTP: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	key := domain.NormalizeIdentity(identity)
	now := l.clk.Now()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[key] = &domain.OTPRecord{
		Identity:  key,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Attempts:  0,
	}
	return code, nil
}

// Verify checks a candidate code against the identity's active record.
//
// The record is deleted when it is expired, when the attempt ceiling is
// crossed, or when the code matches (single use). A plain mismatch leaves
// the record in place with its attempt counter incremented.
func (l *OTPLedger) Verify(identity, candidate string) bool {
	key := domain.NormalizeIdentity(identity)

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		return false
	}
	if rec.Expired(l.clk.Now()) {
		delete(l.records, key)
		return false
	}
	if rec.Attempts >= l.maxAttempts {
		delete(l.records, key)
		return false
	}
	rec.Attempts++
	if rec.Attempts > l.maxAttempts {
		delete(l.records, key)
		return false
	}
	if rec.Code != candidate {
		return false
	}
	delete(l.records, key)
	return true
}

// Sweep deletes every record whose expiry has passed at the given time.
// It also runs inline during Verify; the background sweep keeps abandoned
// records from accumulating between lookups.
func (l *OTPLedger) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, rec := range l.records {
		if rec.Expired(now) {
			delete(l.records, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of active records.
func (l *OTPLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Run sweeps expired records on the given interval until ctx is cancelled.
// Started once at service init.
func (l *OTPLedger) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Sweep(l.clk.Now()); n > 0 {
				slog.Debug("swept expired OTP records", "removed", n)
			}
		}
	}
}
