package system

import (
	"math"
	"time"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// knockbackEpsilon zeroes residual knockback below this speed
const knockbackEpsilon = 0.5

// EnemySystem runs per-kind behaviour: movement, ranged fire, teleports and boss patterns
type EnemySystem struct {
	world *engine.World
	cfg   *parameter.Settings
}

func NewEnemySystem(world *engine.World) *EnemySystem {
	return &EnemySystem{
		world: world,
		cfg:   world.Resource.Config,
	}
}

func (s *EnemySystem) Name() string {
	return "enemy"
}

func (s *EnemySystem) Priority() int {
	return parameter.PriorityEnemy
}

func (s *EnemySystem) Update() {
	player := s.world.Resource.Player
	dt := s.world.Resource.Time.Delta
	if player == nil || dt <= 0 {
		return
	}

	s.world.Enemies.Each(func(_ core.Entity, e *component.Enemy) {
		if e.Dead {
			return
		}
		e.Facing = vmath.Bearing(e.Position, player.Position)

		switch e.Behavior {
		case component.BehaviorRanged:
			s.updateRanged(e, player, dt)
		case component.BehaviorTeleport:
			s.updateTeleport(e, player, dt)
		case component.BehaviorBoss:
			s.updateBoss(e, player, dt)
		}

		s.move(e, player.Position, dt)
	})
}

// move steps toward target at the current speed, then applies decaying knockback
func (s *EnemySystem) move(e *component.Enemy, target vmath.Vec2, dt time.Duration) {
	secs := dt.Seconds()
	if speed := e.CurrentSpeed(); speed > 0 {
		step := speed * secs
		if d := vmath.Distance(e.Position, target); step > d {
			step = d
		}
		e.Position = e.Position.Add(vmath.DirectionTo(e.Position, target).Scale(step))
	}

	if !e.Knockback.IsZero() {
		e.Position = e.Position.Add(e.Knockback.Scale(secs))
		e.Knockback = e.Knockback.Scale(math.Exp(-s.cfg.Combat.KnockbackDamping * secs))
		if e.Knockback.LenSq() < knockbackEpsilon*knockbackEpsilon {
			e.Knockback = vmath.Vec2{}
		}
	}
	if !e.Position.IsFinite() {
		e.Position = target
		e.Knockback = vmath.Vec2{}
	}
}

// updateRanged halts inside attack range and fires on cooldown
// The cooldown keeps charging while chasing so the first shot in range is immediate
func (s *EnemySystem) updateRanged(e *component.Enemy, player *component.Player, dt time.Duration) {
	r := e.Ranged
	r.Attacking = vmath.Distance(e.Position, player.Position) <= r.Range
	r.Elapsed = min(r.Elapsed+dt, r.Cooldown)
	if !r.Attacking || r.Elapsed < r.Cooldown {
		return
	}
	r.Elapsed = 0
	s.fireHostile(e, e.Facing, r.ProjectileSpeed, r.ProjectileDamage)
}

func (s *EnemySystem) updateTeleport(e *component.Enemy, player *component.Player, dt time.Duration) {
	t := e.Teleport
	t.Elapsed += dt
	if t.Elapsed < t.Cooldown {
		return
	}
	t.Elapsed = 0

	from := e.Position
	angle := s.world.Roll() * 2 * math.Pi
	to := player.Position.Add(vmath.FromAngle(angle, t.Radius))
	e.Position = vmath.Clamp(to, s.cfg.Arena.Width, s.cfg.Arena.Height)
	e.Knockback = vmath.Vec2{}

	s.world.PushEvent(event.EventEnemyTeleported, &event.TeleportPayload{
		Entity: e.ID,
		From:   from,
		To:     e.Position,
	})
}

func (s *EnemySystem) updateBoss(e *component.Enemy, player *component.Player, dt time.Duration) {
	b := e.Boss

	b.PatternElapsed += dt
	if b.PatternElapsed >= b.PatternCooldown {
		b.PatternElapsed = 0
		b.Pattern = component.BossPatterns[s.world.Resource.Rand.IntN(len(component.BossPatterns))]
		b.SummonElapsed, b.FanElapsed = 0, 0
		s.world.PushEvent(event.EventBossPatternChanged, &event.BossPatternPayload{
			Entity:  e.ID,
			Pattern: b.Pattern.String(),
		})
	}

	switch b.Pattern {
	case component.PatternSummon:
		b.SummonElapsed += dt
		if b.SummonElapsed >= b.SummonInterval {
			b.SummonElapsed = 0
			s.world.PushEvent(event.EventSummonRequest, &event.SummonPayload{
				Center: e.Position,
				Radius: b.SummonRadius,
				Count:  2 + s.world.Resource.Rand.IntN(2),
				Kind:   parameter.EnemyBasic,
			})
		}
	case component.PatternRanged:
		b.FanElapsed += dt
		if b.FanElapsed >= b.FanInterval {
			b.FanElapsed = 0
			for _, angle := range FanAngles(e.Facing, vmath.DegToRad(b.FanSpread), b.FanCount) {
				s.fireHostile(e, angle, b.ProjectileSpeed, b.ProjectileDamage)
			}
		}
	}
}

// FanAngles spreads n headings evenly across spread radians centred on base
func FanAngles(base, spread float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{base}
	}
	angles := make([]float64, n)
	start := base - spread/2
	for i := range angles {
		angles[i] = start + spread*float64(i)/float64(n-1)
	}
	return angles
}

func (s *EnemySystem) fireHostile(e *component.Enemy, angle, speed float64, damage int) {
	id := s.world.CreateEntity()
	s.world.Projectiles.Set(id, &component.Projectile{
		Source:       e.ID,
		Hostile:      true,
		Damage:       damage,
		Position:     e.Position,
		Velocity:     vmath.FromAngle(angle, speed),
		Radius:       s.cfg.Combat.HostileProjectileRadius,
		TTL:          s.cfg.Combat.HostileProjectileTTL,
		DestroyOnHit: true,
	})
}
