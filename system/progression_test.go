package system

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/upgrade"
	"github.com/pitfigu/GuardianSurvivor/weapon"
)

// TestLevelUpConservesXPAndChains carries the remainder and chains while it meets the threshold
func TestLevelUpConservesXPAndChains(t *testing.T) {
	r := newRig(t, nil)
	run := r.world.Resource.Run
	run.XP = 40

	require.True(t, r.progress.LevelUp())
	assert.Equal(t, 2, run.Level)
	assert.Equal(t, 30, run.XP)
	assert.Equal(t, 15, run.XPToNext)
	assert.False(t, r.progress.LevelUp(), "offers pending")

	_, err := r.progress.Select(0)
	require.NoError(t, err)
	assert.Equal(t, 3, run.Level, "chained")
	assert.Equal(t, 15, run.XP)
	assert.Equal(t, 22, run.XPToNext)
	assert.True(t, r.progress.Pending())

	_, err = r.progress.Select(1)
	require.NoError(t, err)
	assert.Equal(t, 3, run.Level)
	assert.False(t, r.progress.Pending())
	assert.False(t, r.world.Resource.Clock.IsPaused())
	assert.False(t, r.player().IsLocked())
	assert.Equal(t, 2, r.count(event.EventUpgradeApplied))
}

// TestSelectOutOfRangeResumes logs, drops the offers and leaves the run unpaused
func TestSelectOutOfRangeResumes(t *testing.T) {
	r := newRig(t, nil)
	r.world.Resource.Run.XP = 10
	require.True(t, r.progress.LevelUp())

	_, err := r.progress.Select(7)
	assert.True(t, errors.Is(err, ErrInvalidSelection))
	assert.False(t, r.progress.Pending())
	assert.Empty(t, r.world.Resource.Run.Offers)
	assert.False(t, r.world.Resource.Clock.IsPaused())
	assert.False(t, r.player().IsLocked())
}

// TestSelectKeepsCallerLock releases only the level-up lock
func TestSelectKeepsCallerLock(t *testing.T) {
	r := newRig(t, nil)
	r.player().Locked = true
	r.world.Resource.Run.XP = 10
	require.True(t, r.progress.LevelUp())
	assert.True(t, r.player().LevelUpLock)

	_, err := r.progress.Select(0)
	require.NoError(t, err)
	assert.False(t, r.player().LevelUpLock)
	assert.True(t, r.player().Locked)
	assert.True(t, r.player().IsLocked())

	r.player().Locked = false
	assert.False(t, r.player().IsLocked())
}

// TestSelectMissingApplyResumes rejects an upgrade without an effect
func TestSelectMissingApplyResumes(t *testing.T) {
	catalog := upgrade.NewCatalog([]upgrade.Upgrade{{ID: "broken", Name: "Broken", Category: upgrade.CategoryPlayer}})
	r := newRigWithCatalog(t, nil, catalog)
	r.world.Resource.Run.XP = 10
	require.True(t, r.progress.LevelUp())
	require.Equal(t, []string{"broken"}, r.world.Resource.Run.Offers)

	_, err := r.progress.Select(0)
	assert.True(t, errors.Is(err, upgrade.ErrMissingApply))
	assert.False(t, r.world.Resource.Clock.IsPaused())
	assert.Equal(t, 0, r.count(event.EventUpgradeApplied))
}

func TestSelectWithoutOffers(t *testing.T) {
	r := newRig(t, nil)
	_, err := r.progress.Select(0)
	assert.True(t, errors.Is(err, ErrNoPendingOffers))
}

// TestUnlockUsesScaledFactory builds new weapons at the current difficulty multiplier
func TestUnlockUsesScaledFactory(t *testing.T) {
	catalog := upgrade.NewCatalog([]upgrade.Upgrade{upgrade.Defaults()[0]}) // unlock area
	r := newRigWithCatalog(t, nil, catalog)
	r.world.Resource.Difficulty.DamageMultiplier = 1.5
	r.world.Resource.Run.XP = 10
	require.True(t, r.progress.LevelUp())

	_, err := r.progress.Select(0)
	require.NoError(t, err)
	area := r.player().Weapon(weapon.Area)
	require.NotNil(t, area)
	assert.Equal(t, 12, area.Damage) // ceil(8 × 1.5)
}

// TestGameOverDropsOffers makes selection unavailable after the run ended
func TestGameOverDropsOffers(t *testing.T) {
	r := newRig(t, nil)
	r.world.Resource.Run.XP = 10
	require.True(t, r.progress.LevelUp())
	r.combat.GameOver()

	_, err := r.progress.Select(0)
	assert.True(t, errors.Is(err, ErrNoPendingOffers))
	assert.True(t, r.world.Resource.Clock.PausedFor(engine.PauseOver))
}
