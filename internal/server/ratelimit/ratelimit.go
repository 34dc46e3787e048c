// Package ratelimit provides per-client request limiting on top of golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// bucket is one client's token bucket for one tier.
type bucket struct {
	lim   *rate.Limiter
	burst int
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		lim:   rate.NewLimiter(rate.Limit(refillRate), capacity),
		burst: capacity,
	}
}

// allow consumes a token if one is available.
func (b *bucket) allow(now time.Time) bool {
	return b.lim.AllowN(now, 1)
}

// status reports the whole tokens left and when the bucket will be full again.
func (b *bucket) status(now time.Time) (remaining int, resetTime time.Time, retryAfter time.Duration) {
	tokens := b.lim.TokensAt(now)
	if tokens < 0 {
		tokens = 0
	}
	remaining = int(tokens)

	perSecond := float64(b.lim.Limit())
	if perSecond <= 0 {
		return remaining, now, 0
	}
	if missing := float64(b.burst) - tokens; missing > 0 {
		resetTime = now.Add(time.Duration(missing / perSecond * float64(time.Second)))
	} else {
		resetTime = now
	}
	if tokens < 1 {
		retryAfter = time.Duration((1 - tokens) / perSecond * float64(time.Second))
	}
	return remaining, resetTime, retryAfter
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	// CleanupInterval is how often idle buckets are swept. Zero disables sweeping.
	CleanupInterval time.Duration
	// IdleAfter is how long a bucket may go unused before a sweep drops it.
	IdleAfter       time.Duration
	EndpointConfigs []EndpointConfig
}

const defaultIdleAfter = time.Hour

// entry is a bucket plus the last time a request hit it.
type entry struct {
	b    *bucket
	seen time.Time
}

// Limiter hands out one bucket per client and tier. Requests against different
// sessions share the tier's bucket, so opening new sessions does not reset a limit.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	entries map[string]*entry

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter and starts its sweeper when cleanup is configured.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:  config,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.sweepLoop(config.CleanupInterval)
	}
	return l
}

// tierFor resolves the limits for a request and the key its bucket is stored under.
// A zero limit means the request is not limited.
func (l *Limiter) tierFor(endpoint, method string) (EndpointConfig, string) {
	if tier := MatchEndpoint(endpoint, method, l.config.EndpointConfigs); tier != nil {
		return *tier, method + " " + tier.Path
	}
	return EndpointConfig{
		Limit:  l.config.DefaultLimit,
		Window: l.config.DefaultWindow,
		Burst:  l.config.DefaultLimit,
	}, "default"
}

// Allow reports whether clientID may make a request to endpoint with method now.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	tier, tierKey := l.tierFor(endpoint, method)
	if tier.Limit <= 0 || tier.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	b := l.bucketFor(clientID+"|"+tierKey, tier, now)

	allowed := b.allow(now)
	remaining, resetTime, retryAfter := b.status(now)
	if allowed {
		retryAfter = 0
	}
	return allowed, Info{
		Allowed:    allowed,
		Limit:      tier.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucketFor(key string, tier EndpointConfig, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[key]; ok {
		e.seen = now
		return e.b
	}
	capacity := tier.Burst
	if capacity <= 0 {
		capacity = tier.Limit
	}
	e := &entry{
		b:    newBucket(capacity, float64(tier.Limit)/tier.Window.Seconds()),
		seen: now,
	}
	l.entries[key] = e
	return e.b
}

func (l *Limiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			l.sweep(now)
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets idle for longer than IdleAfter and returns how many went.
func (l *Limiter) sweep(now time.Time) int {
	idle := l.config.IdleAfter
	if idle <= 0 {
		idle = defaultIdleAfter
	}
	cutoff := now.Add(-idle)

	l.mu.Lock()
	defer l.mu.Unlock()
	dropped := 0
	for key, e := range l.entries {
		if e.seen.Before(cutoff) {
			delete(l.entries, key)
			dropped++
		}
	}
	return dropped
}

// size is the number of live buckets.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Stop ends the sweeper. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
