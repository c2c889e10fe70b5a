package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestRateLimiter_MonotonicRefill(t *testing.T) {
	clock := newFakeClock()
	rl := httpx.NewRateLimiter(httpx.RateLimitConfig{RequestsPerMinute: 120, Now: clock.Now})

	for i := range 120 {
		require.True(t, rl.Allow("10.0.0.1").Allowed, "request %d should be admitted", i+1)
	}

	d := rl.Allow("10.0.0.1")
	require.False(t, d.Allowed)
	require.GreaterOrEqual(t, d.Remaining, 0.0)

	// 60/C seconds buys exactly one more request.
	clock.Advance(500 * time.Millisecond)
	require.True(t, rl.Allow("10.0.0.1").Allowed)
	require.False(t, rl.Allow("10.0.0.1").Allowed)
}

func TestRateLimiter_CapacityIsCapped(t *testing.T) {
	clock := newFakeClock()
	rl := httpx.NewRateLimiter(httpx.RateLimitConfig{RequestsPerMinute: 10, Now: clock.Now})

	require.True(t, rl.Allow("k").Allowed)
	clock.Advance(time.Hour)

	for range 10 {
		d := rl.Allow("k")
		require.True(t, d.Allowed)
		require.LessOrEqual(t, d.Remaining, 10.0)
	}
	require.False(t, rl.Allow("k").Allowed)
}

func TestRateLimiter_RejectionDoesNotDrain(t *testing.T) {
	clock := newFakeClock()
	rl := httpx.NewRateLimiter(httpx.RateLimitConfig{RequestsPerMinute: 60, Now: clock.Now})

	for range 60 {
		require.True(t, rl.Allow("k").Allowed)
	}
	for range 50 {
		require.False(t, rl.Allow("k").Allowed)
	}

	clock.Advance(time.Second)
	require.True(t, rl.Allow("k").Allowed, "rejections must not push the balance negative")
}

func TestRateLimiter_IndependentBuckets(t *testing.T) {
	clock := newFakeClock()
	rl := httpx.NewRateLimiter(httpx.RateLimitConfig{RequestsPerMinute: 2, Now: clock.Now})

	require.True(t, rl.Allow("a").Allowed)
	require.True(t, rl.Allow("a").Allowed)
	require.False(t, rl.Allow("a").Allowed)

	require.True(t, rl.Allow("b").Allowed)
}

func TestRateLimiter_RetryAfterFromBucket(t *testing.T) {
	clock := newFakeClock()
	// 15/min refills 0.25 tokens per second.
	rl := httpx.NewRateLimiter(httpx.RateLimitConfig{RequestsPerMinute: 15, Now: clock.Now})

	for range 15 {
		require.True(t, rl.Allow("k").Allowed)
	}

	d := rl.Allow("k")
	require.False(t, d.Allowed)
	require.Equal(t, 4*time.Second, d.RetryAfter)

	clock.Advance(2 * time.Second)
	d = rl.Allow("k")
	require.False(t, d.Allowed)
	require.InDelta(t, 0.5, d.Remaining, 1e-9)
	require.Equal(t, 2*time.Second, d.RetryAfter)
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		name      string
		available float64
		rate      float64
		want      time.Duration
	}{
		{"half token at 2/s rounds up to minimum", 0.5, 2, time.Second},
		{"half token at 0.25/s", 0.5, 0.25, 2 * time.Second},
		{"partial second rounds up", 0.1, 0.25, 4 * time.Second},
		{"empty bucket", 0, 0.25, 4 * time.Second},
		{"nearly full token", 0.999, 2, time.Second},
		{"zero rate", 0, 0, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, httpx.RetryAfter(tt.available, tt.rate))
		})
	}
}

func TestRateLimiter_Exempt(t *testing.T) {
	rl := httpx.NewRateLimiter(httpx.RateLimitConfig{})

	for _, p := range []string{"/", "/api/public-key", "/api/health", "/favicon.ico", "/docs", "/docs/index.html", "/openapi.json", "/livez", "/readyz", "/static/app.js"} {
		require.True(t, rl.Exempt(p), p)
	}
	for _, p := range []string{"/api/verify", "/api/tunnels", "/api", "/docsx", "/api/public-key/extra"} {
		require.False(t, rl.Exempt(p), p)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("121st request is rejected", func(t *testing.T) {
		clock := newFakeClock()
		rl := httpx.NewRateLimiter(httpx.RateLimitConfig{RequestsPerMinute: 120, Now: clock.Now})
		handler := rl.Middleware()(ok)

		for i := range 120 {
			req := httptest.NewRequest(http.MethodPost, "/api/verify", nil)
			req.RemoteAddr = "203.0.113.7:4000"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/verify", nil)
		req.RemoteAddr = "203.0.113.7:4001"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.Equal(t, "1", rec.Header().Get("Retry-After"))
		require.Equal(t, "120", rec.Header().Get("X-RateLimit-Limit"))

		var body httpx.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "Too many requests. Please slow down.", body.Detail)

		// Another client is unaffected.
		req = httptest.NewRequest(http.MethodPost, "/api/verify", nil)
		req.RemoteAddr = "203.0.113.8:4000"
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("exempt paths are never limited", func(t *testing.T) {
		rl := httpx.NewRateLimiter(httpx.RateLimitConfig{RequestsPerMinute: 1})
		handler := rl.Middleware()(ok)

		for range 10 {
			req := httptest.NewRequest(http.MethodGet, "/api/public-key", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("forwarded header from untrusted peer is ignored", func(t *testing.T) {
		rl := httpx.NewRateLimiter(httpx.RateLimitConfig{RequestsPerMinute: 1})
		handler := rl.Middleware()(ok)

		for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
			req := httptest.NewRequest(http.MethodGet, "/api/tunnels", nil)
			req.RemoteAddr = "198.51.100.1:1234"
			req.Header.Set("X-Forwarded-For", "192.0.2."+string(rune('1'+i)))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, want, rec.Code)
		}
	})
}

func TestRateLimiter_ConcurrentClients(t *testing.T) {
	rl := httpx.NewRateLimiter(httpx.RateLimitConfig{RequestsPerMinute: 50})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// The real clock may refill a token or two while the goroutines run.
	require.GreaterOrEqual(t, allowed, 50)
	require.LessOrEqual(t, allowed, 52)
}

// A sweep racing with draws on a full bucket must never hand out more than
// the bucket's capacity.
func TestRateLimiter_SweepDoesNotLeakTokens(t *testing.T) {
	const capacity = 20

	for range 200 {
		clock := newFakeClock()
		rl := httpx.NewRateLimiter(httpx.RateLimitConfig{RequestsPerMinute: capacity, Now: clock.Now})

		// The first bucket created from here on triggers a sweep.
		clock.Advance(6 * time.Minute)

		var allowed atomic.Int32
		var wg sync.WaitGroup
		for i := range capacity + 10 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				if rl.Allow("hot").Allowed {
					allowed.Add(1)
				}
			}()
			go func() {
				defer wg.Done()
				rl.Allow("other-" + strconv.Itoa(i))
			}()
		}
		wg.Wait()

		require.EqualValues(t, capacity, allowed.Load())
	}
}
