package system

import (
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// PickupSystem collects xp orbs within reach of the player
type PickupSystem struct {
	world  *engine.World
	cfg    *parameter.Settings
	combat *CombatSystem
}

func NewPickupSystem(world *engine.World, combat *CombatSystem) *PickupSystem {
	return &PickupSystem{
		world:  world,
		cfg:    world.Resource.Config,
		combat: combat,
	}
}

func (s *PickupSystem) Name() string {
	return "pickup"
}

func (s *PickupSystem) Priority() int {
	return parameter.PriorityPickup
}

func (s *PickupSystem) Update() {
	res := s.world.Resource
	p := res.Player
	if p == nil || res.Run.Over {
		return
	}
	reach := s.cfg.Player.PickupRadius + p.Radius
	reachSq := reach * reach

	for _, id := range s.world.Pickups.Entities() {
		pk, ok := s.world.Pickups.Get(id)
		if !ok || vmath.DistanceSq(p.Position, pk.Position) > reachSq {
			continue
		}
		s.combat.ResolveXpPickup(id)
		// A level-up froze the run; the rest wait for the next tick
		if res.Clock.IsPaused() {
			return
		}
	}
}
