package domain

// TunnelStatus is the reported state of a tunnel.
type TunnelStatus string

const (
	TunnelOnline  TunnelStatus = "online"
	TunnelOffline TunnelStatus = "offline"
	TunnelPending TunnelStatus = "pending"
)

// MaxCustomNameLength bounds a tunnel's custom name in characters.
const MaxCustomNameLength = 100

// Tunnel is a relay tunnel decorated with its owner and custom name.
type Tunnel struct {
	ID              string       `json:"id"`
	PublicURL       string       `json:"public_url"`
	Proto           string       `json:"proto"`
	Region          string       `json:"region"`
	TunnelSessionID string       `json:"tunnel_session_id"`
	ForwardsTo      string       `json:"forwards_to,omitempty"`
	CreatedAt       string       `json:"created_at,omitempty"`
	Metadata        string       `json:"metadata,omitempty"`
	UserID          string       `json:"user_id"`
	UserName        string       `json:"user_name"`
	CustomName      *string      `json:"custom_name"`
	Status          TunnelStatus `json:"status"`
}
