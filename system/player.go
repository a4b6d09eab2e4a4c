package system

import (
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// PlayerSystem applies the movement intent, regeneration and the survival clock
type PlayerSystem struct {
	world *engine.World
	cfg   *parameter.Settings
}

func NewPlayerSystem(world *engine.World) *PlayerSystem {
	return &PlayerSystem{
		world: world,
		cfg:   world.Resource.Config,
	}
}

func (s *PlayerSystem) Name() string {
	return "player"
}

func (s *PlayerSystem) Priority() int {
	return parameter.PriorityPlayer
}

func (s *PlayerSystem) Update() {
	res := s.world.Resource
	p := res.Player
	dt := res.Time.Delta
	if p == nil || dt <= 0 || res.Run.Over {
		return
	}

	res.Run.Survival += dt

	if !p.Intent.IsZero() && p.Intent.IsFinite() {
		p.Position = p.Position.Add(p.Intent.Scale(p.Speed * dt.Seconds()))
		p.Position = vmath.Clamp(p.Position, s.cfg.Arena.Width, s.cfg.Arena.Height)
		p.Facing = p.Intent.Angle()
	}

	if gained := p.Regen(dt); gained > 0 {
		s.world.PushEvent(event.EventPlayerHealed, &event.PlayerHealedPayload{
			Amount: gained,
			Health: p.Health,
			Reason: "regen",
		})
	}
}
