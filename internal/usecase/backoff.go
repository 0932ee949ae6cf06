package usecase

import "time"

// backoff doubles from initial up to max. The zero value never waits.
type backoff struct {
	initial time.Duration
	max     time.Duration
	cur     time.Duration
}

func (b *backoff) next() time.Duration {
	if b.cur == 0 {
		b.cur = b.initial
	} else {
		b.cur *= 2
	}
	if b.max > 0 && b.cur > b.max {
		b.cur = b.max
	}
	return b.cur
}

func (b *backoff) reset() {
	b.cur = 0
}
