package event

import (
	"time"

	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// EnemySpawnedPayload carries a freshly registered enemy
type EnemySpawnedPayload struct {
	Entity   core.Entity
	Kind     string
	Position vmath.Vec2
	Wave     bool
}

// EnemyDiedPayload carries a removed enemy
// Cleared marks a mass clear: no score was awarded
type EnemyDiedPayload struct {
	Entity   core.Entity
	Kind     string
	Position vmath.Vec2
	Points   int
	XP       int
	Cleared  bool
}

type TeleportPayload struct {
	Entity core.Entity
	From   vmath.Vec2
	To     vmath.Vec2
}

type BossPatternPayload struct {
	Entity  core.Entity
	Pattern string
}

// SummonPayload requests Count enemies of Kind on a ring around Center
type SummonPayload struct {
	Center vmath.Vec2
	Radius float64
	Count  int
	Kind   string
}

// ExplosionPayload describes an area blast
// Falloff is the damage fraction lost at the rim, Knockback the impulse at the centre
type ExplosionPayload struct {
	Center     vmath.Vec2
	Radius     float64
	Damage     int
	Falloff    float64
	Knockback  float64
	HitsPlayer bool
	Source     core.Entity
	Cause      string
}

type WeaponFiredPayload struct {
	Weapon int
	Kind   string
	Level  int
}

type PlayerHitPayload struct {
	Source core.Entity
	Amount int
	Health int
}

type PlayerHealedPayload struct {
	Amount int
	Health int
	Reason string
}

type PickupPayload struct {
	XP    int
	Total int
}

type LevelUpPayload struct {
	Level  int
	Offers []string
}

type UpgradePayload struct {
	ID   string
	Name string
}

type DifficultyPayload struct {
	Level            float64
	SpawnRate        time.Duration
	DamageMultiplier float64
}

type MilestonePayload struct {
	Level int
	Enemy string
}

type RestPayload struct {
	SpawnRate time.Duration
	Until     time.Duration
}

type SpawnRatePayload struct {
	Rate time.Duration
}

type PausePayload struct {
	Reason string
}

type GameOverPayload struct {
	Score      int
	Kills      int
	Level      int
	Survival   time.Duration
	Difficulty float64
}
