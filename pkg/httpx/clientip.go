package httpx

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ClientIPResolver derives the client identity of a request. Forwarding
// headers are only believed when the direct peer is a trusted proxy, so a
// client cannot pick its own rate-limit bucket by sending X-Forwarded-For.
type ClientIPResolver struct {
	trusted []*net.IPNet
}

// NewClientIPResolver builds a resolver trusting the given CIDRs. Bare IPs
// are accepted and treated as single-host networks.
func NewClientIPResolver(cidrs []string) (*ClientIPResolver, error) {
	r := &ClientIPResolver{}
	for _, raw := range cidrs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			if ip := net.ParseIP(raw); ip != nil && ip.To4() != nil {
				raw += "/32"
			} else {
				raw += "/128"
			}
		}
		_, network, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("httpx: invalid trusted proxy %q: %w", raw, err)
		}
		r.trusted = append(r.trusted, network)
	}
	return r, nil
}

func (c *ClientIPResolver) isTrusted(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, n := range c.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP returns the client address for r.
func (c *ClientIPResolver) ClientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}

	if c == nil || !c.isTrusted(net.ParseIP(peer)) {
		return peer
	}

	// Walk X-Forwarded-For right to left and stop at the first hop that is
	// not one of our own proxies.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			ip := net.ParseIP(hop)
			if ip == nil {
				break
			}
			if !c.isTrusted(ip) || i == 0 {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" && net.ParseIP(xri) != nil {
		return xri
	}

	return peer
}

// KeyExtractor returns the resolver as a rate-limit key function.
func (c *ClientIPResolver) KeyExtractor() KeyExtractor {
	return func(r *http.Request) string {
		if ip := ClientIPFromContext(r.Context()); ip != "" {
			return ip
		}
		return c.ClientIP(r)
	}
}

// ClientIPMiddleware records the resolved client address in the request
// context for later middleware and handlers.
func ClientIPMiddleware(c *ClientIPResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxKeyClientIP, c.ClientIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
