package hubsdk

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is returned by endpoints that only report an outcome.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PublicKeyResponse carries the RSA public key clients encrypt passwords with.
type PublicKeyResponse struct {
	// PublicKey is a PEM-encoded SubjectPublicKeyInfo block.
	PublicKey string `json:"public_key"`
	KeySize   int    `json:"key_size"`
}

// VerifyRequest submits an encrypted password.
type VerifyRequest struct {
	// EncryptedPassword is the base64 PKCS#1 v1.5 ciphertext of the password.
	EncryptedPassword string `json:"encrypted_password"`
}

// VerifyResponse is the outcome of a login attempt. SessionToken is only set
// when Success is true.
type VerifyResponse struct {
	Success      bool   `json:"success"`
	SessionToken string `json:"session_token,omitempty"`
	Message      string `json:"message"`
}

// Tunnel is a relay tunnel decorated with its owner and custom name.
type Tunnel struct {
	ID              string  `json:"id"`
	PublicURL       string  `json:"public_url"`
	Proto           string  `json:"proto"`
	Region          string  `json:"region"`
	TunnelSessionID string  `json:"tunnel_session_id"`
	ForwardsTo      string  `json:"forwards_to,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	Metadata        string  `json:"metadata,omitempty"`
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name"`
	CustomName      *string `json:"custom_name"`
	Status          string  `json:"status"`
}

// TunnelListResponse is returned by GET /api/tunnels.
type TunnelListResponse struct {
	Success      bool     `json:"success"`
	Tunnels      []Tunnel `json:"tunnels"`
	TotalCount   int      `json:"total_count"`
	FilteredUser *string  `json:"filtered_user"`
	Timestamp    string   `json:"timestamp"`
}

// SetTunnelNameRequest sets a tunnel's custom name.
type SetTunnelNameRequest struct {
	CustomName string `json:"custom_name"`
}

// SetTunnelNameResponse echoes the stored name.
type SetTunnelNameResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	TunnelID   string `json:"tunnel_id"`
	CustomName string `json:"custom_name"`
}

// User is a configured account with its API tokens redacted.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Tokens  []string `json:"ngrok_tokens"`
	APIURLs []string `json:"ngrok_api_urls"`
}

// UsersResponse is returned by GET /api/users.
type UsersResponse struct {
	Success    bool   `json:"success"`
	Users      []User `json:"users"`
	TotalCount int    `json:"total_count"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status        string  `json:"status"`
	PID           int     `json:"pid"`
	Platform      string  `json:"platform"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ProbeResponse is returned by the /livez and /readyz probes.
type ProbeResponse struct {
	Status  string       `json:"status"`
	Uptime  string       `json:"uptime"`
	Version string       `json:"version"`
	Checks  *ProbeChecks `json:"checks,omitempty"`
}

// ProbeChecks reports the state of each dependency checked by /readyz.
type ProbeChecks struct {
	Keys  string `json:"keys"`
	Store string `json:"store"`
}

// RestartRequest authorises a restart with the admin password.
type RestartRequest struct {
	Password string `json:"password"`
}

// RotateKeyResponse is returned by POST /api/keys/rotate.
type RotateKeyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	KeySize int    `json:"key_size"`
}

// APIIndexResponse describes the API, with endpoints grouped by area.
type APIIndexResponse struct {
	Name          string                       `json:"name"`
	Version       string                       `json:"version"`
	Description   string                       `json:"description"`
	Endpoints     map[string]map[string]string `json:"endpoints"`
	Documentation string                       `json:"documentation"`
}
