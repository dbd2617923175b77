package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize bounds events waiting for delivery
	BroadcastBufferSize = 256

	// ClientEventBuffer is the buffer size for each client's event channel.
	// A full move reveal is at most 12 steps plus the landing event.
	ClientEventBuffer = 64
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Stream event types that do not come from the event bus
const (
	// EventTypeConnected is the first event of every stream
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Query parameters
const (
	QueryParamPlayer = "player"
	QueryParamTypes  = "types"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE event dropped, buffer full"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
)
