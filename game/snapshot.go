package game

import (
	"time"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
)

// Snapshot is a read-only copy of the run for renderers and the spectator stream
// Nothing in it aliases simulation state
type Snapshot struct {
	Frame    int64         `msgpack:"frame"`
	Time     time.Duration `msgpack:"time"`
	Paused   []string      `msgpack:"paused,omitempty"`
	Over     bool          `msgpack:"over"`
	ArenaW   float64       `msgpack:"arena_w"`
	ArenaH   float64       `msgpack:"arena_h"`
	EnemyCap int           `msgpack:"enemy_cap"`

	Player     PlayerView     `msgpack:"player"`
	Run        RunView        `msgpack:"run"`
	Difficulty DifficultyView `msgpack:"difficulty"`

	Enemies     []EnemyView      `msgpack:"enemies"`
	Projectiles []ProjectileView `msgpack:"projectiles"`
	Pickups     []PickupView     `msgpack:"pickups"`
	Bombs       []BombView       `msgpack:"bombs"`
	Beams       []BeamView       `msgpack:"beams"`
	Offers      []OfferView      `msgpack:"offers,omitempty"`

	Result  *engine.Result     `msgpack:"result,omitempty"`
	Metrics map[string]float64 `msgpack:"metrics,omitempty"`
}

type PlayerView struct {
	X         float64      `msgpack:"x"`
	Y         float64      `msgpack:"y"`
	Facing    float64      `msgpack:"facing"`
	Radius    float64      `msgpack:"r"`
	Health    int          `msgpack:"hp"`
	MaxHealth int          `msgpack:"max_hp"`
	Locked    bool         `msgpack:"locked"`
	HealUsed  bool         `msgpack:"heal_used"`
	Weapons   []WeaponView `msgpack:"weapons"`
}

type WeaponView struct {
	Kind     string        `msgpack:"kind"`
	Level    int           `msgpack:"level"`
	Damage   int           `msgpack:"damage"`
	Cooldown time.Duration `msgpack:"cooldown"`
	Elapsed  time.Duration `msgpack:"elapsed"`
}

type RunView struct {
	Score    int           `msgpack:"score"`
	Kills    int           `msgpack:"kills"`
	Level    int           `msgpack:"level"`
	XP       int           `msgpack:"xp"`
	XPToNext int           `msgpack:"xp_next"`
	Survival time.Duration `msgpack:"survival"`
}

type DifficultyView struct {
	Level            float64       `msgpack:"level"`
	SpawnRate        time.Duration `msgpack:"spawn_rate"`
	DamageMultiplier float64       `msgpack:"damage_mult"`
	Resting          bool          `msgpack:"resting"`
	RestEndsAt       time.Duration `msgpack:"rest_ends_at,omitempty"`
}

type EnemyView struct {
	ID        core.Entity `msgpack:"id"`
	Kind      string      `msgpack:"kind"`
	X         float64     `msgpack:"x"`
	Y         float64     `msgpack:"y"`
	Facing    float64     `msgpack:"facing"`
	Radius    float64     `msgpack:"r"`
	Health    int         `msgpack:"hp"`
	MaxHealth int         `msgpack:"max_hp"`
	Pattern   string      `msgpack:"pattern,omitempty"`
}

type ProjectileView struct {
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	Radius  float64 `msgpack:"r"`
	Hostile bool    `msgpack:"hostile"`
}

type PickupView struct {
	X  float64 `msgpack:"x"`
	Y  float64 `msgpack:"y"`
	XP int     `msgpack:"xp"`
}

type BombView struct {
	X          float64       `msgpack:"x"`
	Y          float64       `msgpack:"y"`
	Radius     float64       `msgpack:"r"`
	DetonateIn time.Duration `msgpack:"in"`
}

type BeamView struct {
	X1    float64 `msgpack:"x1"`
	Y1    float64 `msgpack:"y1"`
	X2    float64 `msgpack:"x2"`
	Y2    float64 `msgpack:"y2"`
	Width float64 `msgpack:"w"`
}

type OfferView struct {
	ID          string `msgpack:"id"`
	Name        string `msgpack:"name"`
	Description string `msgpack:"desc"`
}

// Snapshot copies the current state
func (s *Session) Snapshot() Snapshot {
	w := s.world
	res := w.Resource
	p := res.Player
	now := res.Clock.Now()

	snap := Snapshot{
		Frame:    w.Frame(),
		Time:     now,
		Paused:   res.Clock.Reasons(),
		Over:     res.Run.Over,
		ArenaW:   s.cfg.Arena.Width,
		ArenaH:   s.cfg.Arena.Height,
		EnemyCap: s.spawn.Cap(),
		Player: PlayerView{
			X:         p.Position.X,
			Y:         p.Position.Y,
			Facing:    p.Facing,
			Radius:    p.Radius,
			Health:    p.Health,
			MaxHealth: p.MaxHealth,
			Locked:    p.IsLocked(),
			HealUsed:  p.EmergencyHealUsed,
			Weapons:   make([]WeaponView, 0, len(p.Weapons)),
		},
		Run: RunView{
			Score:    res.Run.Score,
			Kills:    res.Run.Kills,
			Level:    res.Run.Level,
			XP:       res.Run.XP,
			XPToNext: res.Run.XPToNext,
			Survival: res.Run.Survival,
		},
		Difficulty: DifficultyView{
			Level:            res.Difficulty.Level,
			SpawnRate:        res.Difficulty.SpawnRate,
			DamageMultiplier: res.Difficulty.DamageMultiplier,
			Resting:          res.Difficulty.Resting,
		},
		Enemies:     make([]EnemyView, 0, w.Enemies.Count()),
		Projectiles: make([]ProjectileView, 0, w.Projectiles.Count()),
		Pickups:     make([]PickupView, 0, w.Pickups.Count()),
		Bombs:       make([]BombView, 0, w.Bombs.Count()),
		Beams:       make([]BeamView, 0, w.Beams.Count()),
		Metrics:     res.Status.Snapshot(),
	}
	if res.Difficulty.Resting {
		snap.Difficulty.RestEndsAt = res.Difficulty.RestEndsAt
	}
	if res.Run.Over {
		result := res.Run.Result
		snap.Result = &result
	}

	for _, wp := range p.Weapons {
		snap.Player.Weapons = append(snap.Player.Weapons, WeaponView{
			Kind:     wp.Kind.String(),
			Level:    wp.Level,
			Damage:   wp.Damage,
			Cooldown: wp.Cooldown,
			Elapsed:  wp.Elapsed,
		})
	}

	w.Enemies.Each(func(id core.Entity, e *component.Enemy) {
		v := EnemyView{
			ID:        id,
			Kind:      e.Kind.String(),
			X:         e.Position.X,
			Y:         e.Position.Y,
			Facing:    e.Facing,
			Radius:    e.Radius,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
		}
		if e.Boss != nil {
			v.Pattern = e.Boss.Pattern.String()
		}
		snap.Enemies = append(snap.Enemies, v)
	})
	w.Projectiles.Each(func(_ core.Entity, pr *component.Projectile) {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			X: pr.Position.X, Y: pr.Position.Y, Radius: pr.Radius, Hostile: pr.Hostile,
		})
	})
	w.Pickups.Each(func(_ core.Entity, pk *component.Pickup) {
		snap.Pickups = append(snap.Pickups, PickupView{X: pk.Position.X, Y: pk.Position.Y, XP: pk.XP})
	})
	w.Bombs.Each(func(_ core.Entity, b *component.Bomb) {
		snap.Bombs = append(snap.Bombs, BombView{
			X: b.Position.X, Y: b.Position.Y, Radius: b.Radius, DetonateIn: max(0, b.DetonateAt-now),
		})
	})
	w.Beams.Each(func(_ core.Entity, b *component.Beam) {
		snap.Beams = append(snap.Beams, BeamView{X1: b.From.X, Y1: b.From.Y, X2: b.To.X, Y2: b.To.Y, Width: b.Width})
	})

	for _, u := range s.progress.Offers() {
		snap.Offers = append(snap.Offers, OfferView{ID: u.ID, Name: u.Name, Description: u.Description})
	}
	return snap
}
