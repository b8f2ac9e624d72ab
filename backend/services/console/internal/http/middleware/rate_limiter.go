package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"evzone/backend/libs/httpx"
)

// RateLimiter implements token bucket rate limiting per remote address.
type RateLimiter struct {
	limiters sync.Map // key -> *bucket
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// NewRateLimiter allows perSecond requests per remote address with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{rate: rate.Limit(perSecond), burst: burst, now: time.Now}
}

func (rl *RateLimiter) getBucket(key string) *bucket {
	b, ok := rl.limiters.Load(key)
	if !ok {
		b, _ = rl.limiters.LoadOrStore(key, &bucket{limiter: rate.NewLimiter(rl.rate, rl.burst)})
	}
	found := b.(*bucket)
	found.lastSeen.Store(rl.now().UnixNano())
	return found
}

// Allow reports whether key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getBucket(key).limiter.Allow()
}

// Forget drops the limiter of key.
func (rl *RateLimiter) Forget(key string) {
	rl.limiters.Delete(key)
}

// Sweep drops limiters unused for longer than idle and returns how many were dropped.
func (rl *RateLimiter) Sweep(idle time.Duration) int {
	cutoff := rl.now().Add(-idle).UnixNano()
	dropped := 0
	rl.limiters.Range(func(key, value interface{}) bool {
		if value.(*bucket).lastSeen.Load() < cutoff {
			rl.limiters.Delete(key)
			dropped++
		}
		return true
	})
	return dropped
}

// Len returns the number of tracked keys.
func (rl *RateLimiter) Len() int {
	n := 0
	rl.limiters.Range(func(interface{}, interface{}) bool {
		n++
		return true
	})
	return n
}

// Run sweeps idle limiters every interval until ctx is cancelled.
func (rl *RateLimiter) Run(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Sweep(idle)
		}
	}
}

// Middleware limits by remote address. It must run before anything that
// allocates per-client state so rejected requests cost nothing.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := rl.getBucket("ip:" + remoteIP(r))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !b.limiter.Allow() {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "1")
			httpx.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(b.limiter.Tokens())))
		next.ServeHTTP(w, r)
	})
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
