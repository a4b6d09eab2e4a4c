package network

import "time"

// Config holds spectator server configuration
type Config struct {
	// Address to bind, empty disables the server
	Address string

	// Path the websocket endpoint is mounted on
	Path string

	// Connection limits
	MaxPeers int

	// Timing
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration
	DisconnectTimeout time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int

	// FrameEvery broadcasts one of every N snapshots offered
	FrameEvery int
}

// DefaultConfig returns defaults for a local spectator stream
func DefaultConfig() *Config {
	return &Config{
		Address:           "",
		Path:              "/watch",
		MaxPeers:          16,
		WriteTimeout:      5 * time.Second,
		HeartbeatInterval: 10 * time.Second,
		DisconnectTimeout: 30 * time.Second,
		ReadBufferSize:    1024,
		WriteBufferSize:   64 * 1024,
		SendQueueSize:     8,
		FrameEvery:        4,
	}
}

// sanitize replaces unusable values with defaults
func (c *Config) sanitize() {
	d := DefaultConfig()
	if c.Path == "" {
		c.Path = d.Path
	}
	if c.MaxPeers <= 0 {
		c.MaxPeers = d.MaxPeers
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.DisconnectTimeout < c.HeartbeatInterval {
		c.DisconnectTimeout = 3 * c.HeartbeatInterval
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = d.SendQueueSize
	}
	if c.FrameEvery <= 0 {
		c.FrameEvery = 1
	}
}
