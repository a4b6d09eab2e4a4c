package system

import (
	"io"
	"log/slog"
	"testing"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/upgrade"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// rig wires the timer-free systems around a test world
// Difficulty and spawn systems arm timers on construction, tests add them explicitly
type rig struct {
	world    *engine.World
	cfg      *parameter.Settings
	progress *Progression
	combat   *CombatSystem
	weapons  *WeaponSystem
	events   []event.GameEvent
}

func newRig(t *testing.T, cfg *parameter.Settings) *rig {
	t.Helper()
	return newRigWithCatalog(t, cfg, nil)
}

func newRigWithCatalog(t *testing.T, cfg *parameter.Settings, catalog *upgrade.Catalog) *rig {
	t.Helper()
	if cfg == nil {
		cfg = parameter.Default()
	}
	w := engine.NewTestWorld(cfg, 42)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := &rig{world: w, cfg: cfg}
	r.progress = NewProgression(w, catalog, logger)
	r.combat = NewCombatSystem(w, r.progress)
	r.weapons = NewWeaponSystem(w, r.combat)
	w.AddSystem(r.progress)
	w.AddSystem(r.combat)
	w.AddSystem(r.weapons)
	w.Subscribe(event.SinkFunc(func(batch []event.GameEvent) {
		r.events = append(r.events, batch...)
	}))
	return r
}

func (r *rig) player() *component.Player {
	return r.world.Resource.Player
}

// enemy registers an enemy of kind at pos with stock stats
func (r *rig) enemy(kind component.Kind, pos vmath.Vec2) *component.Enemy {
	id := r.world.CreateEntity()
	name := kind.String()
	e := component.NewEnemy(id, kind, r.cfg.Enemies[name], r.cfg.Combat.EnemyDamage[name], pos)
	r.world.Enemies.Set(id, e)
	return e
}

// shot registers a player projectile at pos
func (r *rig) shot(pos vmath.Vec2, damage int, destroyOnHit bool) core.Entity {
	id := r.world.CreateEntity()
	r.world.Projectiles.Set(id, &component.Projectile{
		Weapon:       1,
		Damage:       damage,
		Position:     pos,
		Radius:       4,
		TTL:          1e9,
		DestroyOnHit: destroyOnHit,
	})
	return id
}

// count settles pending events and returns how many of type t were delivered so far
func (r *rig) count(t event.EventType) int {
	r.world.Settle()
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (r *rig) center() vmath.Vec2 {
	return vmath.V2(r.cfg.Arena.Width/2, r.cfg.Arena.Height/2)
}
