package parameter

import "time"

// Game Loop & Engine Timing
const (
	// TickInterval is the fixed simulation step used by the real-time runner (~60 Hz)
	TickInterval = 16 * time.Millisecond

	// MaxTickDelta caps a single step when the host stalls (suspend, debugger)
	MaxTickDelta = 100 * time.Millisecond

	// EventDispatchRounds bounds internal event settling per tick
	// Handlers that push events get this many rounds before the rest waits for the next tick
	EventDispatchRounds = 8
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023

	// SinkBufferSize is the per-subscriber channel depth for asynchronous sinks
	SinkBufferSize = 64
)

// System priorities, lower runs first
const (
	PriorityDifficulty = 10
	PrioritySpawn      = 20
	PriorityPlayer     = 30
	PriorityEnemy      = 40
	PriorityWeapon     = 50
	PriorityProjectile = 60
	PriorityCombat     = 70
	PriorityPickup     = 80
	PriorityProgress   = 90
)
