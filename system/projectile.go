package system

import (
	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/parameter"
)

// ProjectileSystem moves shots, expires them on ttl or when far outside the arena, and ages beams
type ProjectileSystem struct {
	world *engine.World
	cfg   *parameter.Settings

	expired []core.Entity
}

func NewProjectileSystem(world *engine.World) *ProjectileSystem {
	return &ProjectileSystem{
		world:   world,
		cfg:     world.Resource.Config,
		expired: make([]core.Entity, 0, 64),
	}
}

func (s *ProjectileSystem) Name() string {
	return "projectile"
}

func (s *ProjectileSystem) Priority() int {
	return parameter.PriorityProjectile
}

func (s *ProjectileSystem) Update() {
	dt := s.world.Resource.Time.Delta
	if dt <= 0 {
		return
	}
	secs := dt.Seconds()
	a := s.cfg.Arena

	s.expired = s.expired[:0]
	s.world.Projectiles.Each(func(id core.Entity, p *component.Projectile) {
		p.Position = p.Position.Add(p.Velocity.Scale(secs))
		p.TTL -= dt
		out := p.Position.X < -a.Margin || p.Position.Y < -a.Margin ||
			p.Position.X > a.Width+a.Margin || p.Position.Y > a.Height+a.Margin
		if p.TTL <= 0 || out || !p.Position.IsFinite() {
			s.expired = append(s.expired, id)
		}
	})
	s.world.Projectiles.RemoveBatch(s.expired)

	s.expired = s.expired[:0]
	s.world.Beams.Each(func(id core.Entity, b *component.Beam) {
		b.TTL -= dt
		if b.TTL <= 0 {
			s.expired = append(s.expired, id)
		}
	})
	s.world.Beams.RemoveBatch(s.expired)
}
