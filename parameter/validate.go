package parameter

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidSettings is the cause of every Validate failure
var ErrInvalidSettings = errors.New("invalid settings")

func invalid(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidSettings, format, args...)
}

// finite replaces NaN and ±Inf with def
func finite(v *float64, def float64) {
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		*v = def
	}
}

// Sanitize coerces non-finite floats back to their stock values
// Profiles with no stock counterpart fall back to zero
func (s *Settings) Sanitize() {
	d := Default()

	finite(&s.Arena.Width, d.Arena.Width)
	finite(&s.Arena.Height, d.Arena.Height)
	finite(&s.Arena.Margin, d.Arena.Margin)

	finite(&s.Player.Speed, d.Player.Speed)
	finite(&s.Player.Radius, d.Player.Radius)
	finite(&s.Player.CooldownSweepChance, d.Player.CooldownSweepChance)
	finite(&s.Player.DamageMultiplier, d.Player.DamageMultiplier)
	finite(&s.Player.RegenPerSecond, d.Player.RegenPerSecond)
	finite(&s.Player.PickupRadius, d.Player.PickupRadius)
	finite(&s.Player.EmergencyHealFraction, d.Player.EmergencyHealFraction)

	finite(&s.Spawn.SpawnDistance, d.Spawn.SpawnDistance)
	finite(&s.Spawn.MinPlayerDistance, d.Spawn.MinPlayerDistance)
	finite(&s.Spawn.WaveChance, d.Spawn.WaveChance)

	finite(&s.Difficulty.Step, d.Difficulty.Step)
	finite(&s.Difficulty.SpawnScaling, d.Difficulty.SpawnScaling)
	finite(&s.Difficulty.WeaponDamageScaling, d.Difficulty.WeaponDamageScaling)
	finite(&s.Difficulty.RestSpawnMultiplier, d.Difficulty.RestSpawnMultiplier)
	finite(&s.Difficulty.RestHealFraction, d.Difficulty.RestHealFraction)

	finite(&s.Progression.XPScaling, d.Progression.XPScaling)
	finite(&s.Progression.MassClearDropChance, d.Progression.MassClearDropChance)

	finite(&s.Combat.KnockbackDamping, d.Combat.KnockbackDamping)
	finite(&s.Combat.HostileProjectileRadius, d.Combat.HostileProjectileRadius)
	finite(&s.Combat.PlayerProjectileRadius, d.Combat.PlayerProjectileRadius)

	for name, p := range s.Enemies {
		def := d.Enemies[name]
		finite(&p.Speed, def.Speed)
		finite(&p.Radius, def.Radius)
		finite(&p.AttackRange, def.AttackRange)
		finite(&p.ProjectileSpeed, def.ProjectileSpeed)
		finite(&p.ExplosionRadius, def.ExplosionRadius)
		finite(&p.TeleportRadius, def.TeleportRadius)
		finite(&p.SummonRadius, def.SummonRadius)
		finite(&p.FanSpread, def.FanSpread)
		s.Enemies[name] = p
	}
	for name, p := range s.Weapons {
		def := d.Weapons[name]
		finite(&p.Range, def.Range)
		finite(&p.Radius, def.Radius)
		finite(&p.Spread, def.Spread)
		finite(&p.ProjectileSpeed, def.ProjectileSpeed)
		finite(&p.BeamWidth, def.BeamWidth)
		finite(&p.Knockback, def.Knockback)
		finite(&p.Falloff, def.Falloff)
		finite(&p.DeployMin, def.DeployMin)
		finite(&p.DeployMax, def.DeployMax)
		s.Weapons[name] = p
	}
}

// Validate reports the first missing or out-of-range tunable
func (s *Settings) Validate() error {
	switch {
	case s.Arena.Width <= 0 || s.Arena.Height <= 0:
		return invalid("arena %vx%v", s.Arena.Width, s.Arena.Height)
	case s.Player.Health <= 0:
		return invalid("player.health %d", s.Player.Health)
	case s.Player.Speed < 0:
		return invalid("player.speed %v", s.Player.Speed)
	case s.Player.Invulnerability < 0 || s.Player.SourceCooldown < 0:
		return invalid("player damage windows must not be negative")
	case s.Spawn.BaseSpawnRate <= 0:
		return invalid("spawn.base_spawn_rate %v", s.Spawn.BaseSpawnRate)
	case s.Spawn.MinSpawnRate <= 0 || s.Spawn.MinSpawnRate > s.Spawn.BaseSpawnRate:
		return invalid("spawn.min_spawn_rate %v", s.Spawn.MinSpawnRate)
	case s.Spawn.BaseEnemyCap < 0 || s.Spawn.EnemyCapPerLevel < 0:
		return invalid("spawn caps must not be negative")
	case s.Spawn.MaxPositionAttempts < 1:
		return invalid("spawn.max_position_attempts %d", s.Spawn.MaxPositionAttempts)
	case s.Spawn.WaveChance < 0 || s.Spawn.WaveChance > 1:
		return invalid("spawn.wave_chance %v", s.Spawn.WaveChance)
	case s.Spawn.BossEvery < 0:
		return invalid("spawn.boss_every %d", s.Spawn.BossEvery)
	case s.Difficulty.Interval <= 0:
		return invalid("difficulty.interval %v", s.Difficulty.Interval)
	case s.Difficulty.SpawnScaling <= 0 || s.Difficulty.SpawnScaling > 1:
		return invalid("difficulty.spawn_scaling %v", s.Difficulty.SpawnScaling)
	case s.Difficulty.WeaponDamageScaling <= 0:
		return invalid("difficulty.weapon_damage_scaling %v", s.Difficulty.WeaponDamageScaling)
	case s.Difficulty.RestPeriodFrequency < 0:
		return invalid("difficulty.rest_period_frequency %d", s.Difficulty.RestPeriodFrequency)
	case s.Difficulty.RestSpawnMultiplier <= 0:
		return invalid("difficulty.rest_spawn_multiplier %v", s.Difficulty.RestSpawnMultiplier)
	case s.Progression.XPToLevelUp < 1:
		return invalid("progression.xp_to_level_up %d", s.Progression.XPToLevelUp)
	case s.Progression.XPScaling < 1:
		return invalid("progression.xp_scaling %v", s.Progression.XPScaling)
	case s.Progression.UpgradeChoices < 1:
		return invalid("progression.upgrade_choices %d", s.Progression.UpgradeChoices)
	case s.Progression.MaxWeapons < 1:
		return invalid("progression.max_weapons %d", s.Progression.MaxWeapons)
	}

	for _, name := range EnemyKinds {
		p, ok := s.Enemies[name]
		if !ok {
			return invalid("enemies.%s missing", name)
		}
		if p.Health <= 0 || p.Speed < 0 || p.Radius <= 0 {
			return invalid("enemies.%s stats", name)
		}
	}
	for name := range s.Enemies {
		if !knownEnemy(name) {
			return invalid("enemies.%s is not a known kind", name)
		}
	}

	for _, name := range WeaponKinds {
		p, ok := s.Weapons[name]
		if !ok {
			return invalid("weapons.%s missing", name)
		}
		if p.Damage < 0 || p.Cooldown <= 0 {
			return invalid("weapons.%s damage/cooldown", name)
		}
	}
	if _, ok := s.Weapons[s.Player.StartingWeapon]; !ok {
		return invalid("player.starting_weapon %q", s.Player.StartingWeapon)
	}

	for _, m := range s.Difficulty.Milestones {
		if !knownEnemy(m.Enemy) {
			return invalid("milestone enemy %q", m.Enemy)
		}
	}
	return nil
}

func knownEnemy(name string) bool {
	for _, k := range EnemyKinds {
		if k == name {
			return true
		}
	}
	return false
}
