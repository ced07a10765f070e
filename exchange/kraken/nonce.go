package kraken

import (
	"sync/atomic"
	"time"
)

//
// NonceGenerator produces the ever-increasing nonces that Kraken requires on every private request.
// Nonces are the number of milliseconds since the Unix epoch, bumped by one whenever the clock has
// not moved past (or has moved behind) the last nonce handed out. A single generator is safe for
// concurrent use and never returns the same value twice.
//
type NonceGenerator struct {
	last atomic.Uint64
	now  func() time.Time
}

func NewNonceGenerator() *NonceGenerator {
	return newNonceGenerator(time.Now)
}

func newNonceGenerator(now func() time.Time) *NonceGenerator {
	return &NonceGenerator{
		now: now,
	}
}

//
// Next returns the next nonce, or a ClockError if the system clock reports an instant prior to the
// Unix epoch.
//
func (o *NonceGenerator) Next() (uint64, error) {
	now := o.now()

	ms := now.UnixMilli()
	if ms < 0 {
		return 0, &ClockError{Time: now}
	}

	for {
		last := o.last.Load()

		next := uint64(ms)
		if next <= last {
			next = last + 1
		}

		if o.last.CompareAndSwap(last, next) {
			return next, nil
		}
	}
}
