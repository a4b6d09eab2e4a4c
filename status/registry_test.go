package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMetricPointerIsCached verifies Get returns a stable pointer
func TestMetricPointerIsCached(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(SpawnCount)
	b := r.Ints.Get(SpawnCount)
	assert.Same(t, a, b)
	assert.True(t, r.Ints.Has(SpawnCount))
	assert.False(t, r.Ints.Has(CombatKills))
}

// TestSnapshotMergesTypes checks counters and gauges land in one map
func TestSnapshotMergesTypes(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(CombatKills).Add(3)
	r.Floats.Get(DifficultyLevel).Set(2.5)

	snap := r.Snapshot()
	assert.Equal(t, 3.0, snap[CombatKills])
	assert.Equal(t, 2.5, snap[DifficultyLevel])
	assert.Equal(t, 2, r.TotalCount())
}

// TestAtomicFloatConcurrentAdd exercises the CAS loop
func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400.0, f.Get())
}
