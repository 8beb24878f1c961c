package parameter

import "time"

// Stream server
const (
	StreamDefaultAddr = ":8080"

	// StreamWriteWait is the time allowed to write a frame or control message
	StreamWriteWait = 10 * time.Second

	// StreamPongWait is the time allowed to read the next pong from the client
	StreamPongWait = 60 * time.Second

	// StreamPingPeriod must be less than StreamPongWait
	StreamPingPeriod = (StreamPongWait * 9) / 10

	// StreamMaxMessageSize bounds a client input message
	StreamMaxMessageSize = 4096

	// StreamMaxSessions caps concurrent renderers
	StreamMaxSessions = 16
)
