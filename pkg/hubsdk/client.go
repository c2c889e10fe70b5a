package hubsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
)

// Client is a client for the TunnelHub API. It provides access to
// unauthenticated operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new TunnelHub client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetPublicKey fetches the RSA public key passwords must be encrypted with.
func (c *Client) GetPublicKey(ctx context.Context) (*PublicKeyResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/public-key", "", nil)
	if err != nil {
		return nil, err
	}

	var out PublicKeyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify submits an already-encrypted password.
func (c *Client) Verify(ctx context.Context, encryptedPassword string) (*VerifyResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/verify", "", VerifyRequest{
		EncryptedPassword: encryptedPassword,
	})
	if err != nil {
		return nil, err
	}

	var out VerifyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login encrypts password with the server's current public key and exchanges
// it for a session.
func (c *Client) Login(ctx context.Context, password string) (*Session, error) {
	pk, err := c.GetPublicKey(ctx)
	if err != nil {
		return nil, err
	}

	pub, err := cryptox.ParsePublicKeyPEM([]byte(pk.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("hubsdk: server returned an unusable public key: %w", err)
	}

	ciphertext, err := cryptox.EncryptPKCS1v15Base64(pub, password)
	if err != nil {
		return nil, err
	}

	out, err := c.Verify(ctx, ciphertext)
	if err != nil {
		return nil, err
	}
	if !out.Success || out.SessionToken == "" {
		return nil, ErrInvalidCredentials
	}

	return c.NewSession(out.SessionToken), nil
}

// NewSession wraps an existing session token.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// Health returns process health from /api/health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/health", "", nil)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*ProbeResponse, error) {
	return c.probe(ctx, "/livez")
}

// GetReadiness checks if the service is ready to serve requests.
func (c *Client) GetReadiness(ctx context.Context) (*ProbeResponse, error) {
	return c.probe(ctx, "/readyz")
}

func (c *Client) probe(ctx context.Context, path string) (*ProbeResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var out ProbeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Restart asks the server to re-exec itself. The admin password is sent in
// the request body.
func (c *Client) Restart(ctx context.Context, password string) (*MessageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/restart", "", RestartRequest{Password: password})
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func tunnelsPath(userID string) string {
	if userID == "" {
		return "/api/tunnels"
	}
	return "/api/tunnels?" + url.Values{"user_id": {userID}}.Encode()
}

// GetAPIIndex returns the endpoint listing served at /api.
func (c *Client) GetAPIIndex(ctx context.Context) (*APIIndexResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api", "", nil)
	if err != nil {
		return nil, err
	}

	var out APIIndexResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
