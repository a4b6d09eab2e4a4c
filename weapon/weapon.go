package weapon

import (
	"math"
	"time"

	"github.com/pitfigu/GuardianSurvivor/parameter"
)

// Kind is the weapon archetype
type Kind int

const (
	Basic Kind = iota
	Area
	Spread
	Laser
	Bomb
)

var kindNames = [...]string{
	Basic:  parameter.WeaponBasic,
	Area:   parameter.WeaponArea,
	Spread: parameter.WeaponSpread,
	Laser:  parameter.WeaponLaser,
	Bomb:   parameter.WeaponBomb,
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind resolves a config name to its archetype
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// MinCooldown floors repeated attack-speed upgrades
const MinCooldown = 50 * time.Millisecond

// Weapon is one held weapon instance
// BaseDamage only changes through upgrades; Damage is always ceil(BaseDamage × Multiplier)
type Weapon struct {
	ID    int
	Kind  Kind
	Level int

	BaseDamage int
	Damage     int
	Multiplier float64

	Cooldown time.Duration
	Elapsed  time.Duration

	Range  float64
	Radius float64

	ProjectileCount int
	Spread          float64 // degrees
	ProjectileSpeed float64
	ProjectileTTL   time.Duration

	BeamWidth    float64
	BeamDuration time.Duration
	Penetrating  bool

	Fuse      time.Duration
	Knockback float64
	Falloff   float64
	DeployMin float64
	DeployMax float64
}

// New builds a level-1 weapon from its profile
func New(id int, kind Kind, p parameter.WeaponProfile) *Weapon {
	w := &Weapon{
		ID:              id,
		Kind:            kind,
		Level:           1,
		BaseDamage:      p.Damage,
		Multiplier:      1,
		Cooldown:        p.Cooldown,
		Range:           p.Range,
		Radius:          p.Radius,
		ProjectileCount: p.ProjectileCount,
		Spread:          p.Spread,
		ProjectileSpeed: p.ProjectileSpeed,
		ProjectileTTL:   p.ProjectileTTL,
		BeamWidth:       p.BeamWidth,
		BeamDuration:    p.BeamDuration,
		Penetrating:     p.Penetrating,
		Fuse:            p.Fuse,
		Knockback:       p.Knockback,
		Falloff:         p.Falloff,
		DeployMin:       p.DeployMin,
		DeployMax:       p.DeployMax,
	}
	w.recompute()
	return w
}

// Tick accumulates dt and reports whether the weapon fires this step
// Elapsed resets on fire whether or not the archetype finds a target
func (w *Weapon) Tick(dt time.Duration) bool {
	w.Elapsed += dt
	if w.Elapsed < w.Cooldown {
		return false
	}
	w.Elapsed = 0
	return true
}

// ApplyMultiplier rescales current damage from base
// Non-finite or non-positive multipliers are ignored
func (w *Weapon) ApplyMultiplier(m float64) {
	if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return
	}
	w.Multiplier = m
	w.recompute()
}

// UpgradeDamage adds n to base damage
func (w *Weapon) UpgradeDamage(n int) {
	w.BaseDamage += n
	if w.BaseDamage < 0 {
		w.BaseDamage = 0
	}
	w.recompute()
}

// UpgradeCooldown scales the cooldown by f
// Returns false for f ≤ 0 or non-finite f
func (w *Weapon) UpgradeCooldown(f float64) bool {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	w.Cooldown = time.Duration(math.Round(float64(w.Cooldown) * f))
	if w.Cooldown < MinCooldown {
		w.Cooldown = MinCooldown
	}
	return true
}

// UpgradeLevel applies the next level delta
// No-op returning false at MaxWeaponLevel
func (w *Weapon) UpgradeLevel() bool {
	if w.Level >= parameter.MaxWeaponLevel {
		return false
	}
	w.Level++
	if deltas, ok := levelDeltas[w.Kind]; ok {
		if i := w.Level - 2; i >= 0 && i < len(deltas) {
			deltas[i](w)
		}
	}
	w.recompute()
	return true
}

// ceilEpsilon absorbs float noise before ceil (20 × 1.1 is 22)
const ceilEpsilon = 1e-9

func (w *Weapon) recompute() {
	w.Damage = int(math.Ceil(float64(w.BaseDamage)*w.Multiplier - ceilEpsilon))
}
