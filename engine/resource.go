package engine

import (
	"math/rand/v2"
	"time"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/status"
)

// Resource holds the singletons shared by systems, reached through World.Resource
type Resource struct {
	Time     *TimeResource
	Config   *parameter.Settings
	Events   *event.EventQueue
	Status   *status.Registry
	Rand     *rand.Rand
	Clock    *SimClock
	Schedule *Schedule

	Difficulty *DifficultyState
	Run        *RunState
	Player     *component.Player
}

// TimeResource is refreshed at the start of each unpaused tick
type TimeResource struct {
	// Now is simulation time, frozen while paused
	Now time.Duration
	// Delta is the step applied this tick
	Delta time.Duration
	// Frame counts ticks including paused ones
	Frame int64
}

// Update modifies TimeResource fields in-place
func (tr *TimeResource) Update(now, delta time.Duration, frame int64) {
	tr.Now = now
	tr.Delta = delta
	tr.Frame = frame
}

// DifficultyState is owned by the difficulty system and read by the spawner and weapons
type DifficultyState struct {
	Level            float64
	SpawnRate        time.Duration
	DamageMultiplier float64

	Resting     bool
	RestEndsAt  time.Duration
	StoredRate  time.Duration
	ElapsedSecs int
	SinceStep   time.Duration // Run time not yet spent on an escalation

	// Fired milestone levels and the last boss multiple reached
	Milestones map[int]bool
	LastBoss   int
}

// NewDifficultyState starts at level 1 with the base spawn interval
func NewDifficultyState(s *parameter.Settings) *DifficultyState {
	return &DifficultyState{
		Level:            1,
		SpawnRate:        s.Spawn.BaseSpawnRate,
		DamageMultiplier: 1,
		Milestones:       make(map[int]bool),
	}
}

// Floor is the integer difficulty used for bands, rests and milestones
func (d *DifficultyState) Floor() int {
	return int(d.Level)
}

// RunState is the per-run scoreboard and progression
type RunState struct {
	Score    int
	Kills    int
	Level    int
	XP       int
	XPToNext int
	Survival time.Duration

	// Offers holds upgrade ids awaiting selection
	Offers []string

	Over   bool
	Result Result
}

func NewRunState(s *parameter.Settings) *RunState {
	return &RunState{Level: 1, XPToNext: s.Progression.XPToLevelUp}
}

// Result summarises a finished run
type Result struct {
	Score      int           `msgpack:"score"`
	Survival   time.Duration `msgpack:"survival"`
	Level      int           `msgpack:"level"`
	Kills      int           `msgpack:"kills"`
	Difficulty float64       `msgpack:"difficulty"`
}
