// Package ratelimit limits requests per client with token buckets from golang.org/x/time/rate.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info describes the rate limit state after a request
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client and endpoint
type Limiter struct {
	config *Config

	mu      sync.Mutex
	entries map[string]*entry

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter and starts its cleanup loop. A nil config disables limiting.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{}
	}
	l := &Limiter{
		config:  config,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Allow reports whether clientID may call method on path now, consuming a token if so
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	rps, burst := l.config.RPS, l.config.Burst
	key := clientID
	if ec := MatchEndpoint(path, method, l.config.EndpointConfigs); ec != nil {
		if ec.Factor <= 0 {
			return true, Info{Allowed: true}
		}
		rps *= ec.Factor
		burst = max(1, int(math.Round(float64(burst)*ec.Factor)))
		key = clientID + ":" + method + ":" + ec.Path
	}

	lim := l.get(key, rate.Limit(rps), burst)
	now := time.Now()
	allowed := lim.AllowN(now, 1)

	info := Info{
		Allowed:   allowed,
		Limit:     burst,
		Remaining: max(0, int(lim.TokensAt(now))),
	}
	if !allowed {
		info.RetryAfter = retryAfter(lim.TokensAt(now), rps)
	}
	return allowed, info
}

func retryAfter(tokens, rps float64) time.Duration {
	if rps <= 0 {
		return time.Hour
	}
	missing := 1 - tokens
	return time.Duration(math.Ceil(missing / rps * float64(time.Second)))
}

func (l *Limiter) get(key string, r rate.Limit, burst int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(r, burst)}
		l.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

// Len returns the number of tracked buckets
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now())
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets not used within the idle timeout
func (l *Limiter) evictIdle(now time.Time) {
	idle := l.config.IdleTimeout
	if idle <= 0 {
		idle = time.Hour
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if now.Sub(e.lastSeen) > idle {
			delete(l.entries, key)
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
