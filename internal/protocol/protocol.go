package protocol

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// TypeState is sent by the server whenever the controller mode flips,
	// and on connect as the initial state.
	TypeState MessageType = "state"

	// TypeToggle is sent by a client to request a mode flip
	TypeToggle MessageType = "toggle"

	// TypePing can be used for application-level heartbeats if needed
	TypePing MessageType = "ping"
)

// Message is the generic container for all WebSocket messages
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// StatePayload is the payload for TypeState
type StatePayload struct {
	Enabled bool `json:"enabled"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
}
