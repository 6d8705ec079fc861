package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often to send keepalive pings
const KeepaliveInterval = 30 * time.Second

// Stream event types that do not come from the bus
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Query parameters accepted by the stream handler
const (
	QueryParamTypes  = "types"
	QueryParamUserID = "user_id"
)

// Log messages
const (
	LogMsgClientConnected    = "Live stream client connected"
	LogMsgClientDisconnected = "Live stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting live event"
	LogMsgEventDropped       = "Live broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write live event"
	LogMsgSubscriberWired    = "Live stream subscribed to bus events"
	ErrMsgStreamUnsupported  = "streaming not supported"
)
