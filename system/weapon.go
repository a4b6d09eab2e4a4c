package system

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/status"
	"github.com/pitfigu/GuardianSurvivor/vmath"
	"github.com/pitfigu/GuardianSurvivor/weapon"
)

// WeaponSystem runs each held weapon's cooldown loop and fires its archetype
type WeaponSystem struct {
	world  *engine.World
	cfg    *parameter.Settings
	combat *CombatSystem

	statShots *atomic.Int64
}

func NewWeaponSystem(world *engine.World, combat *CombatSystem) *WeaponSystem {
	return &WeaponSystem{
		world:     world,
		cfg:       world.Resource.Config,
		combat:    combat,
		statShots: world.Resource.Status.Ints.Get(status.WeaponShots),
	}
}

func (s *WeaponSystem) Name() string {
	return "weapon"
}

func (s *WeaponSystem) Priority() int {
	return parameter.PriorityWeapon
}

func (s *WeaponSystem) Update() {
	res := s.world.Resource
	player := res.Player
	dt := res.Time.Delta
	if player == nil || dt <= 0 || res.Run.Over {
		return
	}
	for _, w := range player.Weapons {
		if w.Tick(dt) {
			s.Fire(w)
		}
	}
}

// Fire discharges w once; returns false when the archetype found nothing to shoot
func (s *WeaponSystem) Fire(w *weapon.Weapon) bool {
	var fired bool
	switch w.Kind {
	case weapon.Basic:
		fired = s.fireBasic(w)
	case weapon.Area:
		fired = s.fireArea(w)
	case weapon.Spread:
		fired = s.fireSpread(w)
	case weapon.Laser:
		fired = s.fireLaser(w)
	case weapon.Bomb:
		fired = s.fireBomb(w)
	}
	if fired {
		s.statShots.Add(1)
		s.world.PushEvent(event.EventWeaponFired, &event.WeaponFiredPayload{
			Weapon: w.ID,
			Kind:   w.Kind.String(),
			Level:  w.Level,
		})
	}
	return fired
}

// NearestEnemy returns the closest live enemy strictly within maxRange of from
func (s *WeaponSystem) NearestEnemy(from vmath.Vec2, maxRange float64) (*component.Enemy, bool) {
	var best *component.Enemy
	bestSq := maxRange * maxRange
	s.world.Enemies.Each(func(_ core.Entity, e *component.Enemy) {
		if e.Dead {
			return
		}
		if d := vmath.DistanceSq(from, e.Position); d < bestSq {
			best, bestSq = e, d
		}
	})
	return best, best != nil
}

func (s *WeaponSystem) fireBasic(w *weapon.Weapon) bool {
	player := s.world.Resource.Player
	target, ok := s.NearestEnemy(player.Position, w.Range)
	if !ok {
		return false
	}
	s.launch(w, player.Position, vmath.Bearing(player.Position, target.Position))
	return true
}

func (s *WeaponSystem) fireArea(w *weapon.Weapon) bool {
	p := s.world.Resource.Player
	s.combat.ResolveAreaEffect(p.Position, w.Radius, w.Damage, AreaOpts{Falloff: w.Falloff})
	return true
}

func (s *WeaponSystem) fireSpread(w *weapon.Weapon) bool {
	p := s.world.Resource.Player
	for _, angle := range FanAngles(p.Facing, vmath.DegToRad(w.Spread), max(w.ProjectileCount, 1)) {
		s.launch(w, p.Position, angle)
	}
	return true
}

// fireLaser hits the nearest target instantly
// Penetrating beams run the full range and hit every enemy within half the beam width of the ray
func (s *WeaponSystem) fireLaser(w *weapon.Weapon) bool {
	p := s.world.Resource.Player
	target, ok := s.NearestEnemy(p.Position, w.Range)
	if !ok {
		return false
	}

	from := p.Position
	to := target.Position
	if w.Penetrating {
		to = from.Add(vmath.DirectionTo(from, target.Position).Scale(w.Range))
		for _, eid := range s.world.Enemies.Entities() {
			e, ok := s.world.Enemies.Get(eid)
			if !ok || e.Dead {
				continue
			}
			if vmath.SegmentDistance(e.Position, from, to) <= w.BeamWidth/2+e.Radius {
				s.combat.DamageEnemy(eid, w.Damage)
			}
		}
	} else {
		s.combat.DamageEnemy(target.ID, w.Damage)
	}

	s.world.Beams.Set(s.world.CreateEntity(), &component.Beam{
		From:  from,
		To:    to,
		Width: w.BeamWidth,
		TTL:   w.BeamDuration,
	})
	return true
}

// fireBomb drops a charge at a random offset; the fuse is a scheduled one-shot
func (s *WeaponSystem) fireBomb(w *weapon.Weapon) bool {
	res := s.world.Resource
	rng := res.Rand

	dist := w.DeployMin
	if w.DeployMax > w.DeployMin {
		dist += rng.Float64() * (w.DeployMax - w.DeployMin)
	}
	pos := res.Player.Position.Add(vmath.FromAngle(rng.Float64()*2*math.Pi, dist))
	pos = vmath.Clamp(pos, s.cfg.Arena.Width, s.cfg.Arena.Height)

	id := s.world.CreateEntity()
	bomb := &component.Bomb{
		Position:   pos,
		Damage:     w.Damage,
		Radius:     w.Radius,
		Knockback:  w.Knockback,
		Falloff:    w.Falloff,
		DetonateAt: res.Schedule.Now() + w.Fuse,
		Weapon:     w.ID,
	}
	s.world.Bombs.Set(id, bomb)

	res.Schedule.After(w.Fuse, func(time.Duration) {
		s.detonate(id)
	})
	return true
}

func (s *WeaponSystem) detonate(id core.Entity) {
	b, ok := s.world.Bombs.Get(id)
	if !ok {
		return
	}
	s.world.Bombs.Remove(id)
	s.world.PushEvent(event.EventExplosion, &event.ExplosionPayload{
		Center:    b.Position,
		Radius:    b.Radius,
		Damage:    b.Damage,
		Falloff:   b.Falloff,
		Knockback: b.Knockback,
		Cause:     "bomb",
	})
}

func (s *WeaponSystem) launch(w *weapon.Weapon, from vmath.Vec2, angle float64) {
	s.world.Projectiles.Set(s.world.CreateEntity(), &component.Projectile{
		Weapon:       w.ID,
		Damage:       w.Damage,
		Position:     from,
		Velocity:     vmath.FromAngle(angle, w.ProjectileSpeed),
		Radius:       s.cfg.Combat.PlayerProjectileRadius,
		TTL:          w.ProjectileTTL,
		DestroyOnHit: !w.Penetrating,
	})
}
