package http

import (
	"sync"
	"time"
)

// PairRateLimiter bounds pairing attempts per client with a sliding window.
// Activation codes are short and guessable, so unpaired callers do not get
// unlimited tries.
type PairRateLimiter struct {
	mu       sync.Mutex
	history  map[string][]time.Time
	limit    int
	interval time.Duration
}

func NewPairRateLimiter(limit int, interval time.Duration) *PairRateLimiter {
	return &PairRateLimiter{
		history:  make(map[string][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (rl *PairRateLimiter) Allow(clientToken string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.interval)

	attempts := rl.history[clientToken]

	fresh := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= rl.limit {
		rl.history[clientToken] = fresh
		return false
	}

	fresh = append(fresh, now)
	rl.history[clientToken] = fresh

	return true
}
