package constants

import "time"

// Session Loop Limits
const (
	// IntentQueueSize is the buffered capacity of a session's intent channel
	IntentQueueSize = 64

	// StoreTimeout bounds each high score load/save issued from the session loop
	StoreTimeout = 2 * time.Second
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "vi-snake.log"

	// MaxLogSize triggers rotation of the debug log at startup (10MB)
	MaxLogSize = 10 * 1024 * 1024
)
