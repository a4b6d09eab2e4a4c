package parameter

import "time"

// Weapon archetype names, used as config table keys
const (
	WeaponBasic  = "basic"
	WeaponArea   = "area"
	WeaponSpread = "spread"
	WeaponLaser  = "laser"
	WeaponBomb   = "bomb"
)

var WeaponKinds = []string{WeaponBasic, WeaponArea, WeaponSpread, WeaponLaser, WeaponBomb}

// WeaponProfile is the level-1 stat block of an archetype
type WeaponProfile struct {
	Damage   int           `toml:"damage"`
	Cooldown time.Duration `toml:"cooldown"`
	Range    float64       `toml:"range"`
	Radius   float64       `toml:"radius"`

	ProjectileCount int           `toml:"projectile_count"`
	Spread          float64       `toml:"spread"` // degrees
	ProjectileSpeed float64       `toml:"projectile_speed"`
	ProjectileTTL   time.Duration `toml:"projectile_ttl"`

	BeamWidth    float64       `toml:"beam_width"`
	BeamDuration time.Duration `toml:"beam_duration"`
	Penetrating  bool          `toml:"penetrating"`

	Fuse      time.Duration `toml:"fuse"`
	Knockback float64       `toml:"knockback"`
	// Falloff is the damage fraction lost at the edge of the radius
	Falloff   float64 `toml:"falloff"`
	DeployMin float64 `toml:"deploy_min"`
	DeployMax float64 `toml:"deploy_max"`
}

// MaxWeaponLevel is the level cap for every archetype
const MaxWeaponLevel = 5

func defaultWeapons() map[string]WeaponProfile {
	return map[string]WeaponProfile{
		WeaponBasic: {
			Damage: 15, Cooldown: 800 * time.Millisecond, Range: 100,
			ProjectileCount: 1, ProjectileSpeed: 300, ProjectileTTL: time.Second,
		},
		WeaponArea: {
			Damage: 8, Cooldown: 1500 * time.Millisecond, Radius: 100,
		},
		WeaponSpread: {
			Damage: 20, Cooldown: 2000 * time.Millisecond,
			ProjectileCount: 3, Spread: 30, ProjectileSpeed: 250, ProjectileTTL: 1500 * time.Millisecond,
		},
		WeaponLaser: {
			Damage: 12, Cooldown: 1200 * time.Millisecond, Range: 300,
			BeamWidth: 10, BeamDuration: 400 * time.Millisecond, Penetrating: true,
		},
		WeaponBomb: {
			Damage: 30, Cooldown: 3000 * time.Millisecond, Radius: 150,
			Fuse: time.Second, Knockback: 200, Falloff: 0.5, DeployMin: 50, DeployMax: 150,
		},
	}
}
