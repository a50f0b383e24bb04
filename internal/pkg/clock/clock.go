package clock

import "time"

// Clock abstracts the current time so expiry logic is deterministic in tests.
// The ledger, the token provider, and the background sweep all share one Clock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// New returns a Clock backed by time.Now.
func New() Clock { return realClock{} }
