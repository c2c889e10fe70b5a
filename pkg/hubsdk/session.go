package hubsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session performs requests on behalf of a logged-in client.
type Session struct {
	client *Client
	token  string
}

// Token returns the bearer token of this session.
func (s *Session) Token() string {
	return s.token
}

// Logout invalidates the session on the server.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/api/logout", s.token, nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// ListTunnels returns tunnels across all accounts, or only userID's when set.
func (s *Session) ListTunnels(ctx context.Context, userID string) (*TunnelListResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, tunnelsPath(userID), s.token, nil)
	if err != nil {
		return nil, err
	}

	var out TunnelListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetTunnelName stores a custom display name for a tunnel.
func (s *Session) SetTunnelName(ctx context.Context, tunnelID, name string) (*SetTunnelNameResponse, error) {
	path := "/api/tunnels/" + url.PathEscape(tunnelID) + "/name"

	resp, err := s.client.doRequest(ctx, http.MethodPut, path, s.token, SetTunnelNameRequest{CustomName: name})
	if err != nil {
		return nil, err
	}

	var out SetTunnelNameResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearTunnelName removes a tunnel's custom display name.
func (s *Session) ClearTunnelName(ctx context.Context, tunnelID string) error {
	path := "/api/tunnels/" + url.PathEscape(tunnelID) + "/name"

	resp, err := s.client.doRequest(ctx, http.MethodDelete, path, s.token, nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// ListUsers returns the configured accounts with redacted tokens.
func (s *Session) ListUsers(ctx context.Context) (*UsersResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/api/users", s.token, nil)
	if err != nil {
		return nil, err
	}

	var out UsersResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RotateKey replaces the server's RSA key pair. Callers must fetch the new
// public key before logging in again.
func (s *Session) RotateKey(ctx context.Context) (*RotateKeyResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/api/keys/rotate", s.token, nil)
	if err != nil {
		return nil, err
	}

	var out RotateKeyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
