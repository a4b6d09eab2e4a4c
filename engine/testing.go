package engine

import (
	"math/rand/v2"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// NewRand builds the deterministic source used by sessions and tests
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTestWorld creates a world with a centred player and no systems
// nil settings uses parameter.Default
func NewTestWorld(cfg *parameter.Settings, seed uint64) *World {
	if cfg == nil {
		cfg = parameter.Default()
	}
	w := NewWorld(cfg, NewRand(seed))
	center := vmath.V2(cfg.Arena.Width/2, cfg.Arena.Height/2)
	w.Resource.Player = component.NewPlayer(cfg.Player, center)
	return w
}
