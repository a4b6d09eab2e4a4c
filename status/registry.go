package status

import "sync/atomic"

// Metric keys written by the simulation
const (
	SpawnCount      = "spawn.count"
	SpawnCapped     = "spawn.capped"
	CombatKills     = "combat.kills"
	CombatDamage    = "combat.damage"
	PlayerHits      = "player.hits"
	WeaponShots     = "weapon.shots"
	EngineTicks     = "engine.ticks"
	DifficultyLevel = "difficulty.level"
	SpawnRateMs     = "spawn.rate_ms"
)

// Registry is the central metrics facade
// Systems cache pointers during init; Update loops write directly to atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Snapshot copies every metric into a plain map, counters widened to float64
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.TotalCount())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = float64(ptr.Load())
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out[key] = ptr.Get()
	})
	return out
}
