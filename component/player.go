package component

import (
	"math"
	"time"

	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/vmath"
	"github.com/pitfigu/GuardianSurvivor/weapon"
)

// Player is the single controlled character
type Player struct {
	Position vmath.Vec2
	Intent   vmath.Vec2 // normalised movement request, zero when idle
	Facing   float64    // radians, last non-zero intent

	Health    int
	MaxHealth int
	Speed     float64
	Radius    float64

	Weapons []*weapon.Weapon

	// SourceCooldowns maps enemy id to the sim time it may hit again
	SourceCooldowns   map[core.Entity]time.Duration
	InvulnerableUntil time.Duration

	DamageMultiplier float64
	RegenPerSecond   float64
	regenCarry       float64

	Locked            bool // Held by the caller through Session.SetLocked
	LevelUpLock       bool // Held while upgrade offers are pending
	EmergencyHealUsed bool

	invulnerability time.Duration
	sourceCooldown  time.Duration
	sweepChance     float64
}

// NewPlayer creates a full-health player without weapons
func NewPlayer(s parameter.PlayerSettings, pos vmath.Vec2) *Player {
	return &Player{
		Position:         pos,
		Health:           s.Health,
		MaxHealth:        s.Health,
		Speed:            s.Speed,
		Radius:           s.Radius,
		SourceCooldowns:  make(map[core.Entity]time.Duration),
		DamageMultiplier: s.DamageMultiplier,
		RegenPerSecond:   s.RegenPerSecond,
		invulnerability:  s.Invulnerability,
		sourceCooldown:   s.SourceCooldown,
		sweepChance:      s.CooldownSweepChance,
	}
}

// IsLocked reports whether either lock holder blocks damage
func (p *Player) IsLocked() bool {
	return p.Locked || p.LevelUpLock
}

// TakeDamage applies the damage-intake rule and returns the amount subtracted
// Rejected while locked, inside the global window, or inside the source's window
// Source 0 (projectiles, blasts) is gated by the global window only
func (p *Player) TakeDamage(amount int, source core.Entity, now time.Duration, roll float64) (int, bool) {
	if amount <= 0 || p.IsLocked() || now < p.InvulnerableUntil {
		return 0, false
	}
	if source != 0 {
		if until, ok := p.SourceCooldowns[source]; ok && now < until {
			return 0, false
		}
	}

	m := p.DamageMultiplier
	if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		m = 1
	}
	applied := int(math.Ceil(float64(amount)*m - 1e-9))
	if applied < 1 {
		applied = 1
	}

	p.Health -= applied
	if p.Health < 0 {
		p.Health = 0
	}
	p.InvulnerableUntil = now + p.invulnerability
	if source != 0 {
		p.SourceCooldowns[source] = now + p.sourceCooldown
	}
	if roll < p.sweepChance {
		p.SweepCooldowns(now)
	}
	return applied, true
}

// SweepCooldowns drops expired per-source entries
func (p *Player) SweepCooldowns(now time.Duration) {
	for id, until := range p.SourceCooldowns {
		if until <= now {
			delete(p.SourceCooldowns, id)
		}
	}
}

// Heal restores up to amount, clamped to MaxHealth, and returns the gain
func (p *Player) Heal(amount int) int {
	if amount <= 0 || p.Health >= p.MaxHealth {
		return 0
	}
	gain := min(amount, p.MaxHealth-p.Health)
	p.Health += gain
	return gain
}

// Regen accumulates fractional regeneration and heals whole points
func (p *Player) Regen(dt time.Duration) int {
	if p.RegenPerSecond <= 0 || p.Health <= 0 {
		return 0
	}
	p.regenCarry += p.RegenPerSecond * dt.Seconds()
	whole := int(p.regenCarry)
	if whole == 0 {
		return 0
	}
	p.regenCarry -= float64(whole)
	return p.Heal(whole)
}

func (p *Player) IsDead() bool {
	return p.Health <= 0
}

// Weapon returns the held weapon of kind k, nil if absent
func (p *Player) Weapon(k weapon.Kind) *weapon.Weapon {
	for _, w := range p.Weapons {
		if w.Kind == k {
			return w
		}
	}
	return nil
}
