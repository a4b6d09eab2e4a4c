package system

import (
	"math"
	"sync/atomic"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/status"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// AreaOpts tunes an area effect
type AreaOpts struct {
	// Falloff is the damage fraction lost at the rim, 0 for flat damage
	Falloff float64
	// Knockback is the outward impulse at the centre, scaled linearly to zero at the rim
	Knockback float64
	// HitsPlayer applies the blast to the player through the damage-intake rule
	HitsPlayer bool
	// Source is the entity credited for player damage, 0 for none
	Source core.Entity
}

// CombatSystem resolves overlaps, damage and death
// Death side effects run from kill only, which every damage path funnels into
type CombatSystem struct {
	world    *engine.World
	cfg      *parameter.Settings
	progress *Progression

	statKills  *atomic.Int64
	statDamage *atomic.Int64
	statHits   *atomic.Int64
}

func NewCombatSystem(world *engine.World, progress *Progression) *CombatSystem {
	return &CombatSystem{
		world:      world,
		cfg:        world.Resource.Config,
		progress:   progress,
		statKills:  world.Resource.Status.Ints.Get(status.CombatKills),
		statDamage: world.Resource.Status.Ints.Get(status.CombatDamage),
		statHits:   world.Resource.Status.Ints.Get(status.PlayerHits),
	}
}

func (s *CombatSystem) Name() string {
	return "combat"
}

func (s *CombatSystem) Priority() int {
	return parameter.PriorityCombat
}

func (s *CombatSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventExplosion}
}

func (s *CombatSystem) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.ExplosionPayload)
	if !ok {
		return
	}
	s.ResolveAreaEffect(p.Center, p.Radius, p.Damage, AreaOpts{
		Falloff:    p.Falloff,
		Knockback:  p.Knockback,
		HitsPlayer: p.HitsPlayer,
		Source:     p.Source,
	})
}

// Update resolves player shots against enemies, hostile shots against the player, then contact
func (s *CombatSystem) Update() {
	res := s.world.Resource
	player := res.Player
	if player == nil || res.Run.Over {
		return
	}

	for _, pid := range s.world.Projectiles.Entities() {
		proj, ok := s.world.Projectiles.Get(pid)
		if !ok {
			continue
		}
		if proj.Hostile {
			if overlaps(proj.Position, proj.Radius, player.Position, player.Radius) {
				s.world.Projectiles.Remove(pid)
				s.damagePlayer(proj.Damage, 0)
				if res.Run.Over {
					return
				}
			}
			continue
		}
		for _, eid := range s.world.Enemies.Entities() {
			e, ok := s.world.Enemies.Get(eid)
			if !ok || e.Dead || !overlaps(proj.Position, proj.Radius, e.Position, e.Radius) {
				continue
			}
			if !proj.DestroyOnHit && !proj.MarkHit(eid) {
				continue
			}
			s.ResolveProjectileHit(pid, eid)
			if !s.world.Projectiles.Has(pid) {
				break
			}
		}
	}

	for _, eid := range s.world.Enemies.Entities() {
		e, ok := s.world.Enemies.Get(eid)
		if !ok || e.Dead || !overlaps(e.Position, e.Radius, player.Position, player.Radius) {
			continue
		}
		s.ResolvePlayerEnemyContact(eid)
		if res.Run.Over {
			return
		}
	}
}

func overlaps(a vmath.Vec2, ra float64, b vmath.Vec2, rb float64) bool {
	r := ra + rb
	return vmath.DistanceSq(a, b) <= r*r
}

// ResolveProjectileHit applies a player projectile to an enemy
// The projectile is consumed unless it penetrates; stale ids are a no-op
func (s *CombatSystem) ResolveProjectileHit(projectile, enemy core.Entity) bool {
	proj, ok := s.world.Projectiles.Get(projectile)
	if !ok || proj.Hostile {
		return false
	}
	e, ok := s.world.Enemies.Get(enemy)
	if !ok || e.Dead {
		return false
	}

	if proj.DestroyOnHit {
		s.world.Projectiles.Remove(projectile)
	}
	s.DamageEnemy(enemy, proj.Damage)
	return true
}

// DamageEnemy subtracts damage and runs death side effects on the killing blow
// Returns true when this call killed the enemy
func (s *CombatSystem) DamageEnemy(enemy core.Entity, damage int) bool {
	e, ok := s.world.Enemies.Get(enemy)
	if !ok || e.Dead || damage <= 0 {
		return false
	}
	s.statDamage.Add(int64(min(damage, e.Health)))
	if !e.ApplyDamage(damage) {
		return false
	}
	s.kill(e)
	return true
}

// kill awards score and xp, drops a pickup, removes the enemy and detonates explosives
func (s *CombatSystem) kill(e *component.Enemy) {
	run := s.world.Resource.Run
	s.world.Enemies.Remove(e.ID)

	run.Score += e.Points
	run.Kills++
	s.statKills.Add(1)

	if e.XP > 0 {
		s.world.Pickups.Set(s.world.CreateEntity(), &component.Pickup{Position: e.Position, XP: e.XP})
	}

	s.world.PushEvent(event.EventEnemyDied, &event.EnemyDiedPayload{
		Entity:   e.ID,
		Kind:     e.Kind.String(),
		Position: e.Position,
		Points:   e.Points,
		XP:       e.XP,
	})

	if x := e.Explosive; x != nil && !x.Detonated {
		x.Detonated = true
		s.world.PushEvent(event.EventExplosion, &event.ExplosionPayload{
			Center:     e.Position,
			Radius:     x.Radius,
			Damage:     x.Damage,
			Falloff:    1,
			HitsPlayer: true,
			Cause:      "detonation",
		})
	}
}

// ResolvePlayerEnemyContact applies an enemy's contact damage through the intake rule
func (s *CombatSystem) ResolvePlayerEnemyContact(enemy core.Entity) bool {
	e, ok := s.world.Enemies.Get(enemy)
	if !ok || e.Dead {
		return false
	}
	return s.damagePlayer(e.Damage, enemy)
}

// damagePlayer is the single path to player health loss; game over fires on the first lethal hit
func (s *CombatSystem) damagePlayer(amount int, source core.Entity) bool {
	res := s.world.Resource
	player := res.Player
	if player == nil || res.Run.Over {
		return false
	}
	applied, ok := player.TakeDamage(amount, source, res.Clock.Now(), s.world.Roll())
	if !ok {
		return false
	}
	s.statHits.Add(1)
	s.world.PushEvent(event.EventPlayerHit, &event.PlayerHitPayload{
		Source: source,
		Amount: applied,
		Health: player.Health,
	})
	if player.IsDead() {
		s.GameOver()
	}
	return true
}

// ResolveAreaEffect damages every live enemy within radius of center and returns the hit count
// Iterates a snapshot of ids so deaths and chained blasts cannot disturb the pass
func (s *CombatSystem) ResolveAreaEffect(center vmath.Vec2, radius float64, damage int, opts AreaOpts) int {
	res := s.world.Resource
	if res.Run.Over || radius <= 0 || damage <= 0 {
		return 0
	}

	hits := 0
	for _, eid := range s.world.Enemies.Entities() {
		e, ok := s.world.Enemies.Get(eid)
		if !ok || e.Dead {
			continue
		}
		d := vmath.Distance(center, e.Position)
		if d > radius {
			continue
		}
		if opts.Knockback > 0 {
			dir := vmath.DirectionTo(center, e.Position)
			if dir.IsZero() {
				dir = vmath.FromAngle(s.world.Roll()*2*math.Pi, 1)
			}
			e.Knockback = e.Knockback.Add(dir.Scale(opts.Knockback * (1 - d/radius)))
		}
		if n := scaledDamage(damage, d, radius, opts.Falloff); n > 0 {
			hits++
			s.DamageEnemy(eid, n)
		}
	}

	if opts.HitsPlayer && res.Player != nil && !res.Run.Over {
		d := vmath.Distance(center, res.Player.Position)
		if d <= radius {
			if n := scaledDamage(damage, d, radius, opts.Falloff); n > 0 {
				s.damagePlayer(n, opts.Source)
			}
		}
	}
	return hits
}

// scaledDamage applies linear falloff: full at the centre, (1-falloff) at the rim
func scaledDamage(damage int, d, radius, falloff float64) int {
	if falloff <= 0 || math.IsNaN(falloff) {
		return damage
	}
	f := 1 - min(falloff, 1)*(d/radius)
	return int(math.Ceil(float64(damage)*f - ceilEpsilon))
}

const ceilEpsilon = 1e-9

// ResolveXpPickup credits a pickup and triggers a level-up once the threshold is met
func (s *CombatSystem) ResolveXpPickup(pickup core.Entity) bool {
	pk, ok := s.world.Pickups.Get(pickup)
	if !ok {
		return false
	}
	s.world.Pickups.Remove(pickup)

	run := s.world.Resource.Run
	run.XP += pk.XP
	s.world.PushEvent(event.EventPickupCollected, &event.PickupPayload{XP: pk.XP, Total: run.XP})

	if run.XP >= run.XPToNext && s.progress != nil {
		s.progress.LevelUp()
	}
	return true
}

// ClearEnemies removes every enemy without awarding score
// Each removed enemy drops a pickup with MassClearDropChance; explosives do not detonate
func (s *CombatSystem) ClearEnemies() int {
	ids := s.world.Enemies.Entities()
	for _, eid := range ids {
		e, ok := s.world.Enemies.Get(eid)
		if !ok {
			continue
		}
		s.world.Enemies.Remove(eid)
		e.Dead = true
		if e.XP > 0 && s.world.Roll() < s.cfg.Progression.MassClearDropChance {
			s.world.Pickups.Set(s.world.CreateEntity(), &component.Pickup{Position: e.Position, XP: e.XP})
		}
		s.world.PushEvent(event.EventEnemyDied, &event.EnemyDiedPayload{
			Entity:   eid,
			Kind:     e.Kind.String(),
			Position: e.Position,
			XP:       e.XP,
			Cleared:  true,
		})
	}
	return len(ids)
}

// GameOver ends the run once: records the result, drops every pending timer and freezes the clock
func (s *CombatSystem) GameOver() {
	res := s.world.Resource
	run := res.Run
	if run.Over {
		return
	}
	run.Over = true
	run.Offers = nil
	run.Result = engine.Result{
		Score:      run.Score,
		Survival:   run.Survival,
		Level:      run.Level,
		Kills:      run.Kills,
		Difficulty: res.Difficulty.Level,
	}

	res.Schedule.Clear()
	res.Clock.Pause(engine.PauseOver)

	s.world.PushEvent(event.EventGameOver, &event.GameOverPayload{
		Score:      run.Score,
		Kills:      run.Kills,
		Level:      run.Level,
		Survival:   run.Survival,
		Difficulty: res.Difficulty.Level,
	})
}
