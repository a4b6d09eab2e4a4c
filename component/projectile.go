package component

import (
	"time"

	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// Projectile is a moving shot; Hostile shots damage the player, others damage enemies
type Projectile struct {
	Weapon  int         // owning weapon id, 0 for hostile shots
	Source  core.Entity // firing enemy for hostile shots
	Hostile bool

	Damage   int
	Position vmath.Vec2
	Velocity vmath.Vec2
	Radius   float64
	TTL      time.Duration

	// DestroyOnHit false means the projectile penetrates
	DestroyOnHit bool
	Hits         map[core.Entity]struct{}
}

// MarkHit records an enemy and reports whether it was new
func (p *Projectile) MarkHit(e core.Entity) bool {
	if p.Hits == nil {
		p.Hits = make(map[core.Entity]struct{})
	}
	if _, ok := p.Hits[e]; ok {
		return false
	}
	p.Hits[e] = struct{}{}
	return true
}

// Pickup is an XP orb
type Pickup struct {
	Position vmath.Vec2
	XP       int
}

// Bomb is a stationary charge that detonates at DetonateAt
type Bomb struct {
	Position   vmath.Vec2
	Damage     int
	Radius     float64
	Knockback  float64
	Falloff    float64
	DetonateAt time.Duration
	Weapon     int
}

// Beam is a presentational laser trace
type Beam struct {
	From  vmath.Vec2
	To    vmath.Vec2
	Width float64
	TTL   time.Duration
}
