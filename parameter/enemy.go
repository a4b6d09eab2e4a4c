package parameter

import "time"

// Enemy kind names, used as config table keys
const (
	EnemyBasic      = "basic"
	EnemyFast       = "fast"
	EnemyTank       = "tank"
	EnemyShooter    = "shooter"
	EnemyExplosive  = "explosive"
	EnemyBomber     = "bomber"
	EnemyTeleporter = "teleporter"
	EnemyElite      = "elite"
	EnemyBoss       = "boss"
)

// EnemyKinds lists every kind a session may spawn, in declaration order
var EnemyKinds = []string{
	EnemyBasic, EnemyFast, EnemyTank, EnemyShooter, EnemyExplosive,
	EnemyBomber, EnemyTeleporter, EnemyElite, EnemyBoss,
}

// EnemyProfile is per-kind stats; behaviour-specific fields are ignored by kinds that lack the behaviour
type EnemyProfile struct {
	Health int     `toml:"health"`
	Speed  float64 `toml:"speed"`
	Points int     `toml:"points"`
	XP     int     `toml:"xp"`
	Radius float64 `toml:"radius"`

	// Ranged
	AttackRange      float64       `toml:"attack_range"`
	AttackCooldown   time.Duration `toml:"attack_cooldown"`
	ProjectileSpeed  float64       `toml:"projectile_speed"`
	ProjectileDamage int           `toml:"projectile_damage"`

	// Explosive
	ExplosionRadius float64 `toml:"explosion_radius"`
	ExplosionDamage int     `toml:"explosion_damage"`

	// Teleport
	TeleportCooldown time.Duration `toml:"teleport_cooldown"`
	TeleportRadius   float64       `toml:"teleport_radius"`

	// Boss
	PatternCooldown time.Duration `toml:"pattern_cooldown"`
	SummonInterval  time.Duration `toml:"summon_interval"`
	SummonRadius    float64       `toml:"summon_radius"`
	FanInterval     time.Duration `toml:"fan_interval"`
	FanCount        int           `toml:"fan_count"`
	FanSpread       float64       `toml:"fan_spread"` // degrees
}

func defaultEnemies() map[string]EnemyProfile {
	return map[string]EnemyProfile{
		EnemyBasic: {Health: 30, Speed: 70, Points: 10, XP: 1, Radius: 12},
		EnemyFast:  {Health: 15, Speed: 120, Points: 15, XP: 2, Radius: 10},
		EnemyTank:  {Health: 50, Speed: 50, Points: 25, XP: 3, Radius: 16},
		EnemyShooter: {
			Health: 25, Speed: 60, Points: 20, XP: 2, Radius: 12,
			AttackRange: 250, AttackCooldown: 2 * time.Second,
			ProjectileSpeed: 200, ProjectileDamage: 8,
		},
		EnemyExplosive: {
			Health: 20, Speed: 90, Points: 20, XP: 2, Radius: 12,
			ExplosionRadius: 80, ExplosionDamage: 25,
		},
		EnemyBomber: {
			Health: 35, Speed: 75, Points: 30, XP: 3, Radius: 14,
			ExplosionRadius: 100, ExplosionDamage: 30,
		},
		EnemyTeleporter: {
			Health: 25, Speed: 80, Points: 35, XP: 3, Radius: 11,
			TeleportCooldown: 4 * time.Second, TeleportRadius: 120,
		},
		EnemyElite: {
			Health: 120, Speed: 65, Points: 60, XP: 6, Radius: 18,
			AttackRange: 280, AttackCooldown: 1500 * time.Millisecond,
			ProjectileSpeed: 240, ProjectileDamage: 12,
		},
		EnemyBoss: {
			Health: 800, Speed: 55, Points: 500, XP: 30, Radius: 32,
			ProjectileSpeed: 220, ProjectileDamage: 10,
			PatternCooldown: 5 * time.Second,
			SummonInterval:  2 * time.Second, SummonRadius: 80,
			FanInterval: 1200 * time.Millisecond, FanCount: 7, FanSpread: 60,
		},
	}
}

func defaultEnemyDamage() map[string]int {
	return map[string]int{
		EnemyBasic:      10,
		EnemyFast:       5,
		EnemyTank:       10,
		EnemyShooter:    8,
		EnemyExplosive:  12,
		EnemyBomber:     15,
		EnemyTeleporter: 12,
		EnemyElite:      20,
		EnemyBoss:       30,
	}
}
