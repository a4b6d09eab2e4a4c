package component

import (
	"time"

	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// Kind is the closed set of enemy types
type Kind int

const (
	KindBasic Kind = iota
	KindFast
	KindTank
	KindShooter
	KindExplosive
	KindBomber
	KindTeleporter
	KindElite
	KindBoss
)

var kindNames = [...]string{
	KindBasic:      parameter.EnemyBasic,
	KindFast:       parameter.EnemyFast,
	KindTank:       parameter.EnemyTank,
	KindShooter:    parameter.EnemyShooter,
	KindExplosive:  parameter.EnemyExplosive,
	KindBomber:     parameter.EnemyBomber,
	KindTeleporter: parameter.EnemyTeleporter,
	KindElite:      parameter.EnemyElite,
	KindBoss:       parameter.EnemyBoss,
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind resolves a config name
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Behavior is resolved once at spawn from Kind
type Behavior int

const (
	BehaviorChase Behavior = iota
	BehaviorRanged
	BehaviorExplosive
	BehaviorTeleport
	BehaviorBoss
)

// BehaviorOf maps a kind to its state machine
func BehaviorOf(k Kind) Behavior {
	switch k {
	case KindShooter, KindElite:
		return BehaviorRanged
	case KindExplosive, KindBomber:
		return BehaviorExplosive
	case KindTeleporter:
		return BehaviorTeleport
	case KindBoss:
		return BehaviorBoss
	default:
		return BehaviorChase
	}
}

// BossPattern is the active boss attack pattern
type BossPattern int

const (
	PatternCharge BossPattern = iota
	PatternSummon
	PatternRanged
)

var BossPatterns = [...]BossPattern{PatternCharge, PatternSummon, PatternRanged}

func (p BossPattern) String() string {
	switch p {
	case PatternCharge:
		return "charge"
	case PatternSummon:
		return "summon"
	case PatternRanged:
		return "ranged"
	}
	return "unknown"
}

// SpeedFactor scales boss movement per pattern
func (p BossPattern) SpeedFactor() float64 {
	switch p {
	case PatternCharge:
		return 2
	case PatternSummon:
		return 0.5
	default:
		return 0.8
	}
}

// RangedState drives chase/attack for shooters and elites
type RangedState struct {
	Range            float64
	Cooldown         time.Duration
	Elapsed          time.Duration
	ProjectileSpeed  float64
	ProjectileDamage int
	Attacking        bool
}

// ExplosiveState detonates once on death
type ExplosiveState struct {
	Radius    float64
	Damage    int
	Detonated bool
}

type TeleportState struct {
	Cooldown time.Duration
	Elapsed  time.Duration
	Radius   float64
}

type BossState struct {
	Pattern         BossPattern
	PatternCooldown time.Duration
	PatternElapsed  time.Duration

	SummonInterval time.Duration
	SummonElapsed  time.Duration
	SummonRadius   float64

	FanInterval time.Duration
	FanElapsed  time.Duration
	FanCount    int
	FanSpread   float64 // degrees

	ProjectileSpeed  float64
	ProjectileDamage int
}

// Enemy is a registry-owned hostile
// Exactly one of the per-behaviour states is non-nil, none for chase
type Enemy struct {
	ID       core.Entity
	Kind     Kind
	Behavior Behavior

	Health    int
	MaxHealth int
	Speed     float64
	Damage    int
	Points    int
	XP        int
	Radius    float64

	Position  vmath.Vec2
	Knockback vmath.Vec2
	Facing    float64

	// Dead is terminal; set exactly once by ApplyDamage
	Dead bool

	Ranged    *RangedState
	Explosive *ExplosiveState
	Teleport  *TeleportState
	Boss      *BossState
}

// NewEnemy builds an enemy and its behaviour state from the kind profile
func NewEnemy(id core.Entity, kind Kind, p parameter.EnemyProfile, contactDamage int, pos vmath.Vec2) *Enemy {
	e := &Enemy{
		ID:        id,
		Kind:      kind,
		Behavior:  BehaviorOf(kind),
		Health:    p.Health,
		MaxHealth: p.Health,
		Speed:     p.Speed,
		Damage:    contactDamage,
		Points:    p.Points,
		XP:        p.XP,
		Radius:    p.Radius,
		Position:  pos,
	}

	switch e.Behavior {
	case BehaviorRanged:
		e.Ranged = &RangedState{
			Range:            p.AttackRange,
			Cooldown:         p.AttackCooldown,
			ProjectileSpeed:  p.ProjectileSpeed,
			ProjectileDamage: p.ProjectileDamage,
		}
	case BehaviorExplosive:
		e.Explosive = &ExplosiveState{Radius: p.ExplosionRadius, Damage: p.ExplosionDamage}
	case BehaviorTeleport:
		e.Teleport = &TeleportState{Cooldown: p.TeleportCooldown, Radius: p.TeleportRadius}
	case BehaviorBoss:
		e.Boss = &BossState{
			Pattern:          PatternCharge,
			PatternCooldown:  p.PatternCooldown,
			SummonInterval:   p.SummonInterval,
			SummonRadius:     p.SummonRadius,
			FanInterval:      p.FanInterval,
			FanCount:         p.FanCount,
			FanSpread:        p.FanSpread,
			ProjectileSpeed:  p.ProjectileSpeed,
			ProjectileDamage: p.ProjectileDamage,
		}
	}
	return e
}

// ApplyDamage subtracts n and reports the alive→dead transition
// Returns true exactly once per enemy
func (e *Enemy) ApplyDamage(n int) bool {
	if e.Dead || n <= 0 {
		return false
	}
	e.Health -= n
	if e.Health > 0 {
		return false
	}
	e.Health = 0
	e.Dead = true
	return true
}

// CurrentSpeed is movement speed after pattern scaling
func (e *Enemy) CurrentSpeed() float64 {
	if e.Boss != nil {
		return e.Speed * e.Boss.Pattern.SpeedFactor()
	}
	if e.Ranged != nil && e.Ranged.Attacking {
		return 0
	}
	return e.Speed
}
