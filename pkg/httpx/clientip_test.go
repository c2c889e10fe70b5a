package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestClientIPResolver(t *testing.T) {
	resolver, err := httpx.NewClientIPResolver([]string{"10.0.0.0/8", "192.168.1.1"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{"direct peer", "203.0.113.1:5000", "", "", "203.0.113.1"},
		{"untrusted peer with XFF", "203.0.113.1:5000", "198.51.100.9", "", "203.0.113.1"},
		{"trusted peer with XFF", "10.1.2.3:5000", "198.51.100.9", "", "198.51.100.9"},
		{"trusted chain skips proxies", "10.1.2.3:5000", "198.51.100.9, 10.0.0.5", "", "198.51.100.9"},
		{"spoofed left hop ignored", "10.1.2.3:5000", "1.1.1.1, 198.51.100.9", "", "198.51.100.9"},
		{"single-host trusted proxy", "192.168.1.1:5000", "198.51.100.10", "", "198.51.100.10"},
		{"trusted peer with X-Real-IP", "10.1.2.3:5000", "", "198.51.100.11", "198.51.100.11"},
		{"trusted peer no headers", "10.1.2.3:5000", "", "", "10.1.2.3"},
		{"malformed XFF", "10.1.2.3:5000", "not-an-ip", "", "10.1.2.3"},
		{"ipv6 peer", "[2001:db8::1]:443", "", "", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			require.Equal(t, tt.want, resolver.ClientIP(req))
		})
	}
}

func TestNewClientIPResolver_Invalid(t *testing.T) {
	_, err := httpx.NewClientIPResolver([]string{"10.0.0.0/99"})
	require.Error(t, err)
}

func TestClientIPMiddleware(t *testing.T) {
	resolver, err := httpx.NewClientIPResolver(nil)
	require.NoError(t, err)

	var got string
	handler := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = httpx.ClientIPFromContext(r.Context())
		}),
		httpx.ClientIPMiddleware(resolver),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.4:1111"
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "203.0.113.4", got)
}
