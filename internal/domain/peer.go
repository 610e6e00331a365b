package domain

// PeerState tracks a real-time connection through its single lifecycle.
// Disconnected is terminal; a reconnecting client is a new peer.
type PeerState int32

const (
	PeerStateConnecting PeerState = iota
	PeerStateConnected
	PeerStateDisconnected
)

func (s PeerState) String() string {
	switch s {
	case PeerStateConnecting:
		return "connecting"
	case PeerStateConnected:
		return "connected"
	case PeerStateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}
