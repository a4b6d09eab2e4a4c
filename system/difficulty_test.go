package system

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/weapon"
)

// TestSpawnRateNonIncreasingAndFloored steps difficulty far past the floor
func TestSpawnRateNonIncreasingAndFloored(t *testing.T) {
	cfg := parameter.Default()
	cfg.Difficulty.RestPeriodFrequency = 0
	w := engine.NewTestWorld(cfg, 1)
	d := NewDifficultySystem(w)

	prev := w.Resource.Difficulty.SpawnRate
	for i := 0; i < 300; i++ {
		d.IncreaseDifficulty()
		rate := w.Resource.Difficulty.SpawnRate
		assert.LessOrEqual(t, rate, prev)
		assert.GreaterOrEqual(t, rate, cfg.Spawn.MinSpawnRate)
		prev = rate
	}
	assert.Equal(t, cfg.Spawn.MinSpawnRate, prev)
	assert.Equal(t, 151.0, w.Resource.Difficulty.Level)
}

// TestIncreaseEveryIntervalOfSeconds drives the one-second counter through the world clock
func TestIncreaseEveryIntervalOfSeconds(t *testing.T) {
	cfg := parameter.Default()
	w := engine.NewTestWorld(cfg, 1)
	w.AddSystem(NewDifficultySystem(w))

	for i := 0; i < 299; i++ {
		w.Tick(100 * time.Millisecond)
	}
	assert.Equal(t, 1.0, w.Resource.Difficulty.Level, "29.9s elapsed")

	w.Tick(100 * time.Millisecond)
	assert.Equal(t, 1.5, w.Resource.Difficulty.Level)
	assert.Equal(t, 30, w.Resource.Difficulty.ElapsedSecs)
}

// TestFractionalIntervalCarriesRemainder keeps a 1.5s interval from escalating every second
func TestFractionalIntervalCarriesRemainder(t *testing.T) {
	cfg := parameter.Default()
	cfg.Difficulty.Interval = 1500 * time.Millisecond
	cfg.Difficulty.RestPeriodFrequency = 0
	cfg.Spawn.BossEvery = 0
	w := engine.NewTestWorld(cfg, 1)
	d := NewDifficultySystem(w)

	for i := 0; i < 3; i++ {
		d.Tick()
	}
	assert.Equal(t, 1+2*cfg.Difficulty.Step, w.Resource.Difficulty.Level, "3s is two intervals")
	assert.Equal(t, time.Duration(0), w.Resource.Difficulty.SinceStep)

	for i := 0; i < 3; i++ {
		d.Tick()
	}
	assert.Equal(t, 1+4*cfg.Difficulty.Step, w.Resource.Difficulty.Level)
	assert.Equal(t, 6, w.Resource.Difficulty.ElapsedSecs)
}

// TestWeaponDamageScaledFromBase checks the multiplier is reapplied from base, never compounded
func TestWeaponDamageScaledFromBase(t *testing.T) {
	cfg := parameter.Default()
	cfg.Difficulty.RestPeriodFrequency = 0
	w := engine.NewTestWorld(cfg, 1)
	basic := weapon.New(1, weapon.Basic, cfg.Weapons[parameter.WeaponBasic])
	w.Resource.Player.Weapons = append(w.Resource.Player.Weapons, basic)
	d := NewDifficultySystem(w)

	for i := 0; i < 40; i++ {
		d.IncreaseDifficulty()
		st := w.Resource.Difficulty
		want := math.Pow(cfg.Difficulty.WeaponDamageScaling, math.Floor(st.Level/2)/5)
		assert.InDelta(t, want, st.DamageMultiplier, 1e-12)
		assert.Equal(t, 15, basic.BaseDamage)
		assert.Equal(t, int(math.Ceil(15*want-1e-9)), basic.Damage)
	}
}

// TestRestPeriod covers the x5 rate, the clamped heal and the exact restore
func TestRestPeriod(t *testing.T) {
	cfg := parameter.Default()
	w := engine.NewTestWorld(cfg, 1)
	d := NewDifficultySystem(w)
	w.AddSystem(d)

	st := w.Resource.Difficulty
	st.Level = 4.5
	st.SpawnRate = time.Second
	p := w.Resource.Player
	p.Health = 50

	d.IncreaseDifficulty()
	require.True(t, st.Resting)
	stored := st.StoredRate
	assert.Equal(t, time.Duration(float64(time.Second)*cfg.Difficulty.SpawnScaling), stored)
	assert.Equal(t, time.Duration(float64(stored)*5), st.SpawnRate)
	assert.Equal(t, 70, p.Health)
	assert.Equal(t, cfg.Difficulty.RestPeriodDuration, st.RestEndsAt)

	for i := 0; i < 149; i++ {
		w.Tick(100 * time.Millisecond)
	}
	assert.True(t, st.Resting, "still resting at 14.9s")

	w.Tick(100 * time.Millisecond)
	assert.False(t, st.Resting)
	assert.Equal(t, stored, st.SpawnRate)
}

// TestRestHealClampsToMax heals no further than max health
func TestRestHealClampsToMax(t *testing.T) {
	w := engine.NewTestWorld(nil, 1)
	d := NewDifficultySystem(w)
	w.Resource.Difficulty.Level = 4.5
	w.Resource.Player.Health = 95

	d.IncreaseDifficulty()
	assert.Equal(t, 100, w.Resource.Player.Health)
}

// TestIncreaseDuringRestScalesStoredRate keeps the live rest rate and decays the rate to restore
func TestIncreaseDuringRestScalesStoredRate(t *testing.T) {
	w := engine.NewTestWorld(nil, 1)
	d := NewDifficultySystem(w)
	st := w.Resource.Difficulty
	st.Level = 4.5

	d.IncreaseDifficulty()
	live, stored := st.SpawnRate, st.StoredRate

	d.IncreaseDifficulty()
	assert.True(t, st.Resting)
	assert.Equal(t, live, st.SpawnRate)
	assert.Less(t, st.StoredRate, stored)
}

// TestMilestonesAndBossFireOnce checks the informational milestones and the boss request
func TestMilestonesAndBossFireOnce(t *testing.T) {
	cfg := parameter.Default()
	cfg.Difficulty.RestPeriodFrequency = 0
	w := engine.NewTestWorld(cfg, 1)
	var got []event.GameEvent
	w.Subscribe(event.SinkFunc(func(b []event.GameEvent) { got = append(got, b...) }))
	d := NewDifficultySystem(w)

	for i := 0; i < 24; i++ { // level 1 to 13
		d.IncreaseDifficulty()
	}
	w.Settle()

	var milestones []int
	bosses := 0
	for _, ev := range got {
		switch ev.Type {
		case event.EventDifficultyMilestone:
			milestones = append(milestones, ev.Payload.(*event.MilestonePayload).Level)
		case event.EventBossSpawnRequest:
			bosses++
		}
	}
	assert.Equal(t, []int{5, 7, 10}, milestones)
	assert.Equal(t, 1, bosses)
}
