package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles document intake. A single shared bucket paces overall
// throughput; per-key buckets (used by the HTTP server, keyed by client
// IP) isolate noisy callers from each other.
type Limiter struct {
	global       *rate.Limiter
	perKey       map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter with the given refill rate and burst
func NewLimiter(perSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	if perSecond <= 0 {
		perSecond = 1
	}

	return &Limiter{
		global:       rate.NewLimiter(rate.Limit(perSecond), burst),
		perKey:       make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(perSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the shared bucket permits another document
func (l *Limiter) Wait(ctx context.Context) error {
	return l.global.Wait(ctx)
}

// AllowKey reports whether the bucket for key permits a request now
func (l *Limiter) AllowKey(key string) bool {
	return l.keyLimiter(key).Allow()
}

func (l *Limiter) keyLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.perKey[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.perKey[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.perKey[key] = limiter

	return limiter
}
