package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
	"github.com/cenkalti/backoff/v5"
	"github.com/gregjones/httpcache"
)

const (
	// DefaultAPIURL is the public ngrok API.
	DefaultAPIURL = "https://api.ngrok.com"
	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 10 * time.Second

	defaultMaxTries = 3
	maxPages        = 50
	maxErrorBody    = 512
)

// Tunnel is a tunnel as reported by the relay API.
type Tunnel struct {
	ID              string `json:"id"`
	PublicURL       string `json:"public_url"`
	Proto           string `json:"proto"`
	Region          string `json:"region"`
	TunnelSessionID string `json:"tunnel_session_id"`
	ForwardsTo      string `json:"forwards_to,omitempty"`
	StartedAt       string `json:"started_at,omitempty"`
	Metadata        string `json:"metadata,omitempty"`
}

type tunnelList struct {
	Tunnels     []Tunnel `json:"tunnels"`
	NextPageURI *string  `json:"next_page_uri"`
}

// APIError is a non-2xx response from the relay API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("relay: api returned %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying may help.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client lists tunnels from the relay API.
type Client struct {
	base       http.RoundTripper
	timeout    time.Duration
	maxTries   uint
	newBackOff func() backoff.BackOff
	logger     *slog.Logger

	// one caching client per token fingerprint
	clients sync.Map
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the transport used beneath the cache.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.base = rt }
}

// WithTimeout bounds each HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxTries sets the total number of attempts per page.
func WithMaxTries(n uint) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxTries = n
		}
	}
}

// WithBackOff replaces the retry schedule. f is called once per page fetch.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = f }
}

// WithLogger sets the logger for retry notices.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		base:     http.DefaultTransport,
		timeout:  DefaultTimeout,
		maxTries: defaultMaxTries,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) httpClient(token string) *http.Client {
	key := cryptox.FingerprintToken(token)
	if hc, ok := c.clients.Load(key); ok {
		return hc.(*http.Client)
	}

	transport := httpcache.NewTransport(httpcache.NewMemoryCache())
	transport.Transport = c.base

	hc, _ := c.clients.LoadOrStore(key, &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	})
	return hc.(*http.Client)
}

// ListTunnels returns every tunnel visible to token, following pagination.
// apiURL defaults to DefaultAPIURL. Pagination links pointing at a different
// host are refused so the token is never sent elsewhere.
func (c *Client) ListTunnels(ctx context.Context, token, apiURL string) ([]Tunnel, error) {
	if token == "" {
		return nil, errors.New("relay: empty api token")
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	base, err := url.Parse(strings.TrimRight(apiURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("relay: invalid api url %q", apiURL)
	}

	next := base.String() + "/tunnels"
	hc := c.httpClient(token)

	var all []Tunnel
	for range maxPages {
		page, err := c.fetchPage(ctx, hc, token, next)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Tunnels...)

		if page.NextPageURI == nil || *page.NextPageURI == "" {
			return all, nil
		}

		u, err := base.Parse(*page.NextPageURI)
		if err != nil {
			return nil, fmt.Errorf("relay: invalid next_page_uri: %w", err)
		}
		if u.Host != base.Host || u.Scheme != base.Scheme {
			return nil, fmt.Errorf("relay: refusing to follow next_page_uri to %s", u.Host)
		}
		next = u.String()
	}

	c.logger.Warn("relay: pagination limit reached", "pages", maxPages, "tunnels", len(all))
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, hc *http.Client, token, pageURL string) (tunnelList, error) {
	op := func() (tunnelList, error) {
		var out tunnelList

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return out, backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Ngrok-Version", "2")
		req.Header.Set("Accept", "application/json")

		resp, err := hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return out, backoff.Permanent(ctx.Err())
			}
			return out, err
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
			if !apiErr.Temporary() {
				return out, backoff.Permanent(apiErr)
			}
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
				c.logger.Debug("relay: server asked to retry later", "seconds", secs)
				return out, backoff.RetryAfter(secs)
			}
			return out, apiErr
		}

		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return out, backoff.Permanent(fmt.Errorf("relay: decode tunnels: %w", err))
		}

		if resp.Header.Get(httpcache.XFromCache) != "" {
			c.logger.Debug("relay: served from cache", "url", pageURL)
		}
		return out, nil
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.logger.Warn("relay: retrying request", "error", err, "wait", wait)
		}),
	)
}
