package parameter

import "time"

// Settings is the full tunable set injected into a session
// Zero values are not meaningful; start from Default and override
type Settings struct {
	Arena       ArenaSettings            `toml:"arena"`
	Player      PlayerSettings           `toml:"player"`
	Spawn       SpawnSettings            `toml:"spawn"`
	Difficulty  DifficultySettings       `toml:"difficulty"`
	Progression ProgressionSettings      `toml:"progression"`
	Combat      CombatSettings           `toml:"combat"`
	Enemies     map[string]EnemyProfile  `toml:"enemies"`
	Weapons     map[string]WeaponProfile `toml:"weapons"`
}

// ArenaSettings is the playfield in world units
type ArenaSettings struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// Margin is how far outside the arena projectiles survive before culling
	Margin float64 `toml:"margin"`
}

type PlayerSettings struct {
	Speed  float64 `toml:"speed"`
	Health int     `toml:"health"`
	Radius float64 `toml:"radius"`

	// Invulnerability is the global window after any applied hit
	Invulnerability time.Duration `toml:"invulnerability"`
	// SourceCooldown is the per-enemy window after that enemy landed a hit
	SourceCooldown time.Duration `toml:"source_cooldown"`
	// CooldownSweepChance is the probability per applied hit of pruning expired source entries
	CooldownSweepChance float64 `toml:"cooldown_sweep_chance"`

	DamageMultiplier float64 `toml:"damage_multiplier"`
	RegenPerSecond   float64 `toml:"regen_per_second"`
	PickupRadius     float64 `toml:"pickup_radius"`

	EmergencyHealFraction float64 `toml:"emergency_heal_fraction"`
	StartingWeapon        string  `toml:"starting_weapon"`
}

type SpawnSettings struct {
	BaseSpawnRate time.Duration `toml:"base_spawn_rate"`
	MinSpawnRate  time.Duration `toml:"min_spawn_rate"`

	BaseEnemyCap     int `toml:"base_enemy_cap"`
	EnemyCapPerLevel int `toml:"enemy_cap_per_level"`

	// SpawnDistance pushes candidates outward past the arena edge
	SpawnDistance       float64 `toml:"spawn_distance"`
	MinPlayerDistance   float64 `toml:"min_player_distance"`
	MaxPositionAttempts int     `toml:"max_position_attempts"`

	WaveChance        float64       `toml:"wave_chance"`
	WaveMinDifficulty int           `toml:"wave_min_difficulty"`
	WaveStagger       time.Duration `toml:"wave_stagger"`

	// BossEvery spawns a boss each time floor(difficulty) reaches a new multiple, 0 disables
	BossEvery int `toml:"boss_every"`
}

// Milestone announces a new enemy type entering the mix
type Milestone struct {
	Level int    `toml:"level"`
	Enemy string `toml:"enemy"`
}

type DifficultySettings struct {
	Interval            time.Duration `toml:"interval"`
	Step                float64       `toml:"step"`
	SpawnScaling        float64       `toml:"spawn_scaling"`
	WeaponDamageScaling float64       `toml:"weapon_damage_scaling"`

	RestPeriodFrequency int           `toml:"rest_period_frequency"`
	RestPeriodDuration  time.Duration `toml:"rest_period_duration"`
	RestSpawnMultiplier float64       `toml:"rest_spawn_multiplier"`
	RestHealFraction    float64       `toml:"rest_heal_fraction"`

	Milestones []Milestone `toml:"milestones"`
}

type ProgressionSettings struct {
	XPToLevelUp    int     `toml:"xp_to_level_up"`
	XPScaling      float64 `toml:"xp_scaling"`
	UpgradeChoices int     `toml:"upgrade_choices"`
	MaxWeapons     int     `toml:"max_weapons"`

	// MassClearDropChance is the per-enemy pickup probability on a mass clear
	MassClearDropChance float64 `toml:"mass_clear_drop_chance"`
}

type CombatSettings struct {
	// EnemyDamage is contact damage by enemy kind name
	EnemyDamage         map[string]int `toml:"enemy_damage"`
	FallbackEnemyDamage int            `toml:"fallback_enemy_damage"`

	// KnockbackDamping is the exponential decay rate of knockback velocity (1/sec)
	KnockbackDamping float64 `toml:"knockback_damping"`

	HostileProjectileRadius float64       `toml:"hostile_projectile_radius"`
	HostileProjectileTTL    time.Duration `toml:"hostile_projectile_ttl"`
	PlayerProjectileRadius  float64       `toml:"player_projectile_radius"`
}

// Default returns the stock tuning of the game
func Default() *Settings {
	return &Settings{
		Arena: ArenaSettings{
			Width:  1024,
			Height: 768,
			Margin: 200,
		},
		Player: PlayerSettings{
			Speed:                 160,
			Health:                100,
			Radius:                14,
			Invulnerability:       500 * time.Millisecond,
			SourceCooldown:        1000 * time.Millisecond,
			CooldownSweepChance:   0.1,
			DamageMultiplier:      1,
			RegenPerSecond:        0,
			PickupRadius:          30,
			EmergencyHealFraction: 0.5,
			StartingWeapon:        WeaponBasic,
		},
		Spawn: SpawnSettings{
			BaseSpawnRate:       2000 * time.Millisecond,
			MinSpawnRate:        300 * time.Millisecond,
			BaseEnemyCap:        30,
			EnemyCapPerLevel:    3,
			SpawnDistance:       100,
			MinPlayerDistance:   200,
			MaxPositionAttempts: 10,
			WaveChance:          0.2,
			WaveMinDifficulty:   3,
			WaveStagger:         200 * time.Millisecond,
			BossEvery:           10,
		},
		Difficulty: DifficultySettings{
			Interval:            30 * time.Second,
			Step:                0.5,
			SpawnScaling:        0.985,
			WeaponDamageScaling: 1.1,
			RestPeriodFrequency: 5,
			RestPeriodDuration:  15 * time.Second,
			RestSpawnMultiplier: 5,
			RestHealFraction:    0.2,
			Milestones: []Milestone{
				{Level: 5, Enemy: EnemyBomber},
				{Level: 7, Enemy: EnemyTeleporter},
				{Level: 10, Enemy: EnemyElite},
			},
		},
		Progression: ProgressionSettings{
			XPToLevelUp:         10,
			XPScaling:           1.5,
			UpgradeChoices:      3,
			MaxWeapons:          3,
			MassClearDropChance: 0.3,
		},
		Combat: CombatSettings{
			EnemyDamage:             defaultEnemyDamage(),
			FallbackEnemyDamage:     10,
			KnockbackDamping:        6,
			HostileProjectileRadius: 5,
			HostileProjectileTTL:    3 * time.Second,
			PlayerProjectileRadius:  4,
		},
		Enemies: defaultEnemies(),
		Weapons: defaultWeapons(),
	}
}

// Clone returns a deep copy safe to mutate independently
func (s *Settings) Clone() *Settings {
	c := *s
	c.Difficulty.Milestones = append([]Milestone(nil), s.Difficulty.Milestones...)
	c.Combat.EnemyDamage = make(map[string]int, len(s.Combat.EnemyDamage))
	for k, v := range s.Combat.EnemyDamage {
		c.Combat.EnemyDamage[k] = v
	}
	c.Enemies = make(map[string]EnemyProfile, len(s.Enemies))
	for k, v := range s.Enemies {
		c.Enemies[k] = v
	}
	c.Weapons = make(map[string]WeaponProfile, len(s.Weapons))
	for k, v := range s.Weapons {
		c.Weapons[k] = v
	}
	return &c
}
