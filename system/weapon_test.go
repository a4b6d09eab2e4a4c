package system

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/vmath"
	"github.com/pitfigu/GuardianSurvivor/weapon"
)

func (r *rig) arm(k weapon.Kind) *weapon.Weapon {
	w := r.progress.NewWeapon(k)
	r.player().Weapons = append(r.player().Weapons, w)
	return w
}

// TestBasicTargetsNearestInRange fires at the closest enemy strictly inside range
func TestBasicTargetsNearestInRange(t *testing.T) {
	r := newRig(t, nil)
	w := r.arm(weapon.Basic)
	p := r.player().Position
	r.enemy(component.KindTank, p.Add(vmath.V2(0, 90)))
	near := r.enemy(component.KindTank, p.Add(vmath.V2(-80, 0)))

	require.True(t, r.weapons.Fire(w))
	require.Equal(t, 1, r.world.Projectiles.Count())
	r.world.Projectiles.Each(func(_ core.Entity, proj *component.Projectile) {
		dir := proj.Velocity.Normalize()
		assert.InDelta(t, -1, dir.X, 1e-9)
		assert.InDelta(t, 0, dir.Y, 1e-9)
		assert.Equal(t, w.ID, proj.Weapon)
		assert.True(t, proj.DestroyOnHit)
	})
	assert.NotNil(t, near)
}

// TestBasicWithoutTargetStillResetsCooldown consumes the cooldown on an empty arena
func TestBasicWithoutTargetStillResetsCooldown(t *testing.T) {
	r := newRig(t, nil)
	w := r.arm(weapon.Basic)
	r.enemy(component.KindTank, r.player().Position.Add(vmath.V2(100, 0)))

	r.world.Tick(w.Cooldown)
	assert.Equal(t, time.Duration(0), w.Elapsed)
	assert.Equal(t, 0, r.world.Projectiles.Count(), "range is exclusive")
	assert.Equal(t, 0, r.count(event.EventWeaponFired))
}

// TestAreaDamagesAroundPlayer applies the pulse without targeting
func TestAreaDamagesAroundPlayer(t *testing.T) {
	r := newRig(t, nil)
	w := r.arm(weapon.Area)
	p := r.player().Position
	in := r.enemy(component.KindTank, p.Add(vmath.V2(0, -99)))
	out := r.enemy(component.KindTank, p.Add(vmath.V2(0, -120)))

	require.True(t, r.weapons.Fire(w))
	assert.Equal(t, 42, in.Health)
	assert.Equal(t, 50, out.Health)
}

// TestSpreadFansAroundFacing emits count projectiles across the spread
func TestSpreadFansAroundFacing(t *testing.T) {
	r := newRig(t, nil)
	w := r.arm(weapon.Spread)
	r.player().Facing = math.Pi / 2

	require.True(t, r.weapons.Fire(w))
	require.Equal(t, 3, r.world.Projectiles.Count())

	var got []float64
	r.world.Projectiles.Each(func(_ core.Entity, proj *component.Projectile) {
		got = append(got, proj.Velocity.Angle())
	})
	spread := vmath.DegToRad(30)
	assert.InDelta(t, math.Pi/2-spread/2, got[0], 1e-9)
	assert.InDelta(t, math.Pi/2, got[1], 1e-9)
	assert.InDelta(t, math.Pi/2+spread/2, got[2], 1e-9)
}

func TestFanAngles(t *testing.T) {
	assert.Nil(t, FanAngles(0, 1, 0))
	assert.Equal(t, []float64{0.3}, FanAngles(0.3, 1, 1))
	got := FanAngles(0, math.Pi, 3)
	assert.InDeltaSlice(t, []float64{-math.Pi / 2, 0, math.Pi / 2}, got, 1e-12)
}

// TestLaserPenetratesAlongRay damages everything within half the beam width of the ray
func TestLaserPenetratesAlongRay(t *testing.T) {
	r := newRig(t, nil)
	w := r.arm(weapon.Laser)
	p := r.player().Position
	first := r.enemy(component.KindTank, p.Add(vmath.V2(60, 0)))
	second := r.enemy(component.KindTank, p.Add(vmath.V2(200, 10)))
	off := r.enemy(component.KindTank, p.Add(vmath.V2(150, 60)))
	behind := r.enemy(component.KindTank, p.Add(vmath.V2(-200, 0)))

	require.True(t, r.weapons.Fire(w))
	assert.Equal(t, 38, first.Health)
	assert.Equal(t, 38, second.Health)
	assert.Equal(t, 50, off.Health)
	assert.Equal(t, 50, behind.Health)
	assert.Equal(t, 1, r.world.Beams.Count())
}

// TestLaserSingleTargetWhenNotPenetrating stops at the nearest enemy
func TestLaserSingleTargetWhenNotPenetrating(t *testing.T) {
	cfg := parameter.Default()
	prof := cfg.Weapons[parameter.WeaponLaser]
	prof.Penetrating = false
	cfg.Weapons[parameter.WeaponLaser] = prof
	r := newRig(t, cfg)
	w := r.arm(weapon.Laser)
	p := r.player().Position
	first := r.enemy(component.KindTank, p.Add(vmath.V2(60, 0)))
	second := r.enemy(component.KindTank, p.Add(vmath.V2(120, 0)))

	require.True(t, r.weapons.Fire(w))
	assert.Equal(t, 38, first.Health)
	assert.Equal(t, 50, second.Health)
}

// TestBombDetonatesAfterFuseAndFreezesWhilePaused checks the scheduled fuse and the pause policy
func TestBombDetonatesAfterFuseAndFreezesWhilePaused(t *testing.T) {
	r := newRig(t, nil)
	w := r.arm(weapon.Bomb)
	w.DeployMin, w.DeployMax = 0, 0
	w.Cooldown = time.Hour
	p := r.player().Position
	e := r.enemy(component.KindTank, p.Add(vmath.V2(60, 0)))

	require.True(t, r.weapons.Fire(w))
	require.Equal(t, 1, r.world.Bombs.Count())

	r.world.Tick(500 * time.Millisecond)
	r.world.Resource.Clock.Pause(engine.PauseManual)
	for i := 0; i < 10; i++ {
		r.world.Tick(500 * time.Millisecond)
	}
	assert.Equal(t, 1, r.world.Bombs.Count(), "fuse frozen while paused")
	assert.Equal(t, 50, e.Health)

	r.world.Resource.Clock.Resume(engine.PauseManual)
	r.world.Tick(500 * time.Millisecond)
	assert.Equal(t, 0, r.world.Bombs.Count())
	assert.Equal(t, 50-24, e.Health) // ceil(30 × (1 - 0.5 × 60/150))
	assert.Greater(t, e.Knockback.X, 0.0)
}

// TestGameOverCancelsFuses leaves pending bombs inert
func TestGameOverCancelsFuses(t *testing.T) {
	r := newRig(t, nil)
	w := r.arm(weapon.Bomb)
	w.DeployMin, w.DeployMax = 0, 0
	e := r.enemy(component.KindTank, r.player().Position.Add(vmath.V2(60, 0)))

	require.True(t, r.weapons.Fire(w))
	r.combat.GameOver()
	r.world.Resource.Clock.Resume(engine.PauseOver)
	r.world.Tick(2 * time.Second)
	assert.Equal(t, 50, e.Health)
}
