package parameter

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultValidates ensures stock tuning passes its own validation
func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

// TestParseOverlaysDefaults verifies partial TOML keeps untouched defaults
func TestParseOverlaysDefaults(t *testing.T) {
	s, err := Parse(`
[spawn]
base_spawn_rate = "1500ms"
base_enemy_cap = 12

[difficulty]
rest_period_duration = "10s"

[enemies.tank]
health = 90

[weapons.laser]
penetrating = false
`)
	require.NoError(t, err)

	assert.Equal(t, 1500*time.Millisecond, s.Spawn.BaseSpawnRate)
	assert.Equal(t, 12, s.Spawn.BaseEnemyCap)
	assert.Equal(t, 300*time.Millisecond, s.Spawn.MinSpawnRate)
	assert.Equal(t, 10*time.Second, s.Difficulty.RestPeriodDuration)

	// Profile tables merge onto stock values
	assert.Equal(t, 90, s.Enemies[EnemyTank].Health)
	assert.Equal(t, 50.0, s.Enemies[EnemyTank].Speed)
	assert.False(t, s.Weapons[WeaponLaser].Penetrating)
	assert.Equal(t, 300.0, s.Weapons[WeaponLaser].Range)
}

// TestParseRejectsUnknownKeys catches typos in config files
func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(`
[spawn]
base_spawn_rat = "1s"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_spawn_rat")
}

// TestValidateMissingTunables covers fatal configuration errors
func TestValidateMissingTunables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero spawn rate", func(s *Settings) { s.Spawn.BaseSpawnRate = 0 }},
		{"min above base", func(s *Settings) { s.Spawn.MinSpawnRate = 3 * time.Second }},
		{"no xp threshold", func(s *Settings) { s.Progression.XPToLevelUp = 0 }},
		{"missing enemy", func(s *Settings) { delete(s.Enemies, EnemyBoss) }},
		{"missing weapon", func(s *Settings) { delete(s.Weapons, WeaponBomb) }},
		{"bad starting weapon", func(s *Settings) { s.Player.StartingWeapon = "railgun" }},
		{"bad milestone", func(s *Settings) { s.Difficulty.Milestones[0].Enemy = "dragon" }},
		{"spawn rate grows", func(s *Settings) { s.Difficulty.SpawnScaling = 1.2 }},
		{"spawn rate frozen at zero", func(s *Settings) { s.Difficulty.SpawnScaling = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSettings))
		})
	}
}

// TestValidateSpawnScalingBounds accepts a constant rate and rejects growth
func TestValidateSpawnScalingBounds(t *testing.T) {
	s := Default()
	s.Difficulty.SpawnScaling = 1
	assert.NoError(t, s.Validate())

	s.Difficulty.SpawnScaling = 1.0001
	assert.True(t, errors.Is(s.Validate(), ErrInvalidSettings))
}

// TestSanitizeNonFinite verifies NaN and Inf fall back to stock values
func TestSanitizeNonFinite(t *testing.T) {
	s := Default()
	s.Difficulty.SpawnScaling = math.NaN()
	s.Player.DamageMultiplier = math.Inf(1)
	p := s.Weapons[WeaponSpread]
	p.Spread = math.Inf(-1)
	s.Weapons[WeaponSpread] = p

	s.Sanitize()

	assert.Equal(t, 0.985, s.Difficulty.SpawnScaling)
	assert.Equal(t, 1.0, s.Player.DamageMultiplier)
	assert.Equal(t, 30.0, s.Weapons[WeaponSpread].Spread)
}

// TestCloneIsDeep ensures mutations of a clone do not leak
func TestCloneIsDeep(t *testing.T) {
	s := Default()
	c := s.Clone()
	c.Combat.EnemyDamage[EnemyBasic] = 99
	c.Enemies[EnemyBasic] = EnemyProfile{Health: 1}
	c.Difficulty.Milestones[0].Level = 1

	assert.Equal(t, 10, s.Combat.EnemyDamage[EnemyBasic])
	assert.Equal(t, 30, s.Enemies[EnemyBasic].Health)
	assert.Equal(t, 5, s.Difficulty.Milestones[0].Level)
}

// TestLoadDotEnvAndApply covers the .env to Launch path
func TestLoadDotEnvAndApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GUARDIAN_SEED=42\nGUARDIAN_DEBUG=true\n"), 0o644))

	t.Setenv(EnvSeed, "")
	t.Setenv(EnvDebug, "")
	os.Unsetenv(EnvSeed)
	os.Unsetenv(EnvDebug)

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))

	l := Launch{Config: "guardian.toml", Seed: 7}
	l.ApplyEnv()
	assert.Equal(t, uint64(42), l.Seed)
	assert.True(t, l.Debug)
	assert.Equal(t, "guardian.toml", l.Config)
}
