package httpx

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerMinute is the bucket capacity used when none is configured.
const DefaultRequestsPerMinute = 120

// DefaultExemptPaths are never rate limited. Entries ending in "/*" match any
// path below the prefix.
var DefaultExemptPaths = []string{
	"/",
	"/api/public-key",
	"/api/health",
	"/favicon.ico",
	"/docs",
	"/docs/*",
	"/openapi.json",
	"/livez",
	"/readyz",
	"/static/*",
}

// idleSweepInterval is how often buckets that have refilled completely are
// dropped. A dropped bucket is recreated full on the next request, which is
// exactly the state it was in.
const idleSweepInterval = 5 * time.Minute

// RateLimitConfig defines the admission parameters.
type RateLimitConfig struct {
	// RequestsPerMinute is both the bucket capacity and the number of tokens
	// refilled per minute.
	RequestsPerMinute int
	// ExemptPaths bypass the limiter. Defaults to DefaultExemptPaths.
	ExemptPaths []string
	// KeyExtractor groups requests into buckets. Defaults to the peer address.
	KeyExtractor KeyExtractor
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// KeyExtractor is a function that extracts a unique key from the request
// for rate limiting purposes.
type KeyExtractor func(*http.Request) string

// Decision is the outcome of a single admission check.
type Decision struct {
	Allowed bool
	// Remaining is the token balance after the check.
	Remaining float64
	// RetryAfter is set when the request was rejected.
	RetryAfter time.Duration
}

// RateLimiter is a continuous-refill token bucket per client key.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	perMin   int
	exact    map[string]struct{}
	prefixes []string
	keyFn    KeyExtractor
	now      func() time.Time

	limiters sync.Map // map[string]*rate.Limiter

	// bucketsMu is held shared while a bucket is looked up and drawn from,
	// and exclusively while idle buckets are dropped.
	bucketsMu sync.RWMutex

	mu        sync.Mutex
	lastSweep time.Time
}

// NewRateLimiter creates a limiter. Each bucket holds at most
// RequestsPerMinute tokens and refills at RequestsPerMinute/60 per second.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if cfg.ExemptPaths == nil {
		cfg.ExemptPaths = DefaultExemptPaths
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = (*ClientIPResolver)(nil).KeyExtractor()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	rl := &RateLimiter{
		limit:  rate.Limit(float64(cfg.RequestsPerMinute) / 60),
		burst:  cfg.RequestsPerMinute,
		perMin: cfg.RequestsPerMinute,
		exact:  make(map[string]struct{}),
		keyFn:  cfg.KeyExtractor,
		now:    cfg.Now,
	}
	for _, p := range cfg.ExemptPaths {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			rl.prefixes = append(rl.prefixes, prefix)
			continue
		}
		rl.exact[p] = struct{}{}
	}
	rl.lastSweep = rl.now()
	return rl
}

// Exempt reports whether path bypasses the limiter.
func (rl *RateLimiter) Exempt(path string) bool {
	if _, ok := rl.exact[path]; ok {
		return true
	}
	for _, prefix := range rl.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Allow refills the bucket for key up to the current time and tries to take
// one token. A rejected request leaves the bucket untouched.
func (rl *RateLimiter) Allow(key string) Decision {
	now := rl.now()

	rl.bucketsMu.RLock()
	limiter, created := rl.getLimiter(key)
	decision := rl.take(limiter, now)
	rl.bucketsMu.RUnlock()

	if created {
		rl.maybeSweep(now)
	}
	return decision
}

func (rl *RateLimiter) take(limiter *rate.Limiter, now time.Time) Decision {
	if limiter.AllowN(now, 1) {
		return Decision{Allowed: true, Remaining: limiter.TokensAt(now)}
	}

	available := max(limiter.TokensAt(now), 0)
	return Decision{
		Allowed:    false,
		Remaining:  available,
		RetryAfter: RetryAfter(available, float64(rl.limit)),
	}
}

// RetryAfter is the wait until one whole token is available, rounded up to
// whole seconds and never less than one second.
func RetryAfter(available, ratePerSecond float64) time.Duration {
	if ratePerSecond <= 0 {
		return time.Second
	}
	secs := math.Ceil((1 - available) / ratePerSecond)
	return time.Duration(max(secs, 1)) * time.Second
}

func (rl *RateLimiter) getLimiter(key string) (*rate.Limiter, bool) {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter), false
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	actual, loaded := rl.limiters.LoadOrStore(key, limiter)
	return actual.(*rate.Limiter), !loaded
}

// maybeSweep drops buckets that have refilled to capacity. Only runs after a
// new bucket is created and at most once per idleSweepInterval. No draw is in
// flight while it runs, so a bucket seen full here has not been touched.
func (rl *RateLimiter) maybeSweep(now time.Time) {
	rl.mu.Lock()
	if now.Sub(rl.lastSweep) < idleSweepInterval {
		rl.mu.Unlock()
		return
	}
	rl.lastSweep = now
	rl.mu.Unlock()

	rl.bucketsMu.Lock()
	defer rl.bucketsMu.Unlock()

	rl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).TokensAt(now) >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header. Exempt paths are passed straight through.
func (rl *RateLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.Exempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			log := slogx.FromContext(r.Context())

			key := rl.keyFn(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			d := rl.Allow(key)
			if !d.Allowed {
				retryAfter := int(d.RetryAfter / time.Second)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.perMin))
				w.Header().Set("X-RateLimit-Window", time.Minute.String())

				log.Warn("rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				WriteDetail(w, http.StatusTooManyRequests, "Too many requests. Please slow down.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
