package component

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

func newTestPlayer() *Player {
	return NewPlayer(parameter.Default().Player, vmath.V2(0, 0))
}

// TestInvulnerabilityWindow rejects a second hit inside 500ms from any source
func TestInvulnerabilityWindow(t *testing.T) {
	p := newTestPlayer()

	n, ok := p.TakeDamage(10, 1, 0, 0.99)
	require.True(t, ok)
	assert.Equal(t, 10, n)
	assert.Equal(t, 90, p.Health)

	_, ok = p.TakeDamage(10, 2, 499*time.Millisecond, 0.99)
	assert.False(t, ok)
	assert.Equal(t, 90, p.Health)

	_, ok = p.TakeDamage(10, 2, 500*time.Millisecond, 0.99)
	assert.True(t, ok)
	assert.Equal(t, 80, p.Health)
}

// TestPerSourceCooldown gates the same enemy for 1000ms after the global window ends
func TestPerSourceCooldown(t *testing.T) {
	p := newTestPlayer()

	_, ok := p.TakeDamage(5, 7, 0, 0.99)
	require.True(t, ok)

	_, ok = p.TakeDamage(5, 7, 600*time.Millisecond, 0.99)
	assert.False(t, ok, "same source inside cooldown")

	_, ok = p.TakeDamage(5, 8, 600*time.Millisecond, 0.99)
	assert.True(t, ok, "other source after global window")

	_, ok = p.TakeDamage(5, 7, 1200*time.Millisecond, 0.99)
	assert.True(t, ok)
	assert.Equal(t, 85, p.Health)
}

// TestLockedRejectsDamage covers both lock holders
func TestLockedRejectsDamage(t *testing.T) {
	p := newTestPlayer()
	p.Locked = true
	_, ok := p.TakeDamage(50, 1, 0, 0)
	assert.False(t, ok)
	assert.Equal(t, 100, p.Health)

	p.Locked = false
	p.LevelUpLock = true
	_, ok = p.TakeDamage(50, 1, 0, 0)
	assert.False(t, ok)
	assert.Equal(t, 100, p.Health)
}

// TestDamageMultiplierAndClamp applies reduction before subtraction and clamps at zero
func TestDamageMultiplierAndClamp(t *testing.T) {
	p := newTestPlayer()
	p.DamageMultiplier = 0.9

	n, ok := p.TakeDamage(15, 1, 0, 0.99)
	require.True(t, ok)
	assert.Equal(t, 14, n) // ceil(13.5)

	_, ok = p.TakeDamage(1000, 2, time.Second, 0.99)
	require.True(t, ok)
	assert.Equal(t, 0, p.Health)
	assert.True(t, p.IsDead())
}

// TestSweepRemovesExpiredSources verifies the probabilistic sweep path
func TestSweepRemovesExpiredSources(t *testing.T) {
	p := newTestPlayer()
	p.TakeDamage(1, 1, 0, 0.99)
	p.TakeDamage(1, 2, 600*time.Millisecond, 0.99)
	require.Len(t, p.SourceCooldowns, 2)

	// Source 1 expired at 1000ms; roll below chance sweeps
	p.TakeDamage(1, 3, 1200*time.Millisecond, 0.05)
	assert.NotContains(t, p.SourceCooldowns, core.Entity(1))
	assert.Contains(t, p.SourceCooldowns, core.Entity(2))
	assert.Contains(t, p.SourceCooldowns, core.Entity(3))
}

// TestHealClampsAndRegen covers heal clamping and fractional regeneration
func TestHealClampsAndRegen(t *testing.T) {
	p := newTestPlayer()
	p.Health = 95
	assert.Equal(t, 5, p.Heal(20))
	assert.Equal(t, 100, p.Health)

	p.Health = 50
	p.RegenPerSecond = 1
	assert.Equal(t, 0, p.Regen(600*time.Millisecond))
	assert.Equal(t, 1, p.Regen(600*time.Millisecond))
	assert.Equal(t, 51, p.Health)
}

// TestEnemyDeathExactlyOnce verifies ApplyDamage reports death a single time
func TestEnemyDeathExactlyOnce(t *testing.T) {
	s := parameter.Default()
	e := NewEnemy(1, KindBasic, s.Enemies[parameter.EnemyBasic], 10, vmath.V2(0, 0))

	assert.False(t, e.ApplyDamage(15))
	assert.True(t, e.ApplyDamage(15))
	assert.False(t, e.ApplyDamage(15))
	assert.True(t, e.Dead)
	assert.Equal(t, 0, e.Health)
}

// TestEnemyBehaviorState checks exactly one variant state per behaviour
func TestEnemyBehaviorState(t *testing.T) {
	s := parameter.Default()
	for _, name := range parameter.EnemyKinds {
		k, ok := ParseKind(name)
		require.True(t, ok, name)
		e := NewEnemy(1, k, s.Enemies[name], 1, vmath.Vec2{})

		states := 0
		for _, set := range []bool{e.Ranged != nil, e.Explosive != nil, e.Teleport != nil, e.Boss != nil} {
			if set {
				states++
			}
		}
		if e.Behavior == BehaviorChase {
			assert.Equal(t, 0, states, name)
		} else {
			assert.Equal(t, 1, states, name)
		}
	}
}
