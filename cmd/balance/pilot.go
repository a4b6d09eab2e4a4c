package main

import (
	"math"
	"time"

	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/game"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// wallMargin is the distance from an edge where the pilot starts steering back in
const wallMargin = 80.0

// pilot kites: it moves away from nearby enemies weighted by proximity and drifts back from the walls
func pilot(snap *game.Snapshot) vmath.Vec2 {
	pos := vmath.V2(snap.Player.X, snap.Player.Y)
	var away vmath.Vec2
	for _, e := range snap.Enemies {
		d := pos.Sub(vmath.V2(e.X, e.Y))
		dist := d.Len()
		if dist < 1e-6 {
			continue
		}
		away = away.Add(d.Scale(1 / (dist * dist)))
	}
	for _, p := range snap.Projectiles {
		if !p.Hostile {
			continue
		}
		d := pos.Sub(vmath.V2(p.X, p.Y))
		if dist := d.Len(); dist > 1e-6 && dist < 120 {
			away = away.Add(d.Scale(2 / (dist * dist)))
		}
	}
	if !away.IsZero() {
		away = away.Normalize()
	}

	var wall vmath.Vec2
	if pos.X < wallMargin {
		wall.X = 1
	} else if pos.X > snap.ArenaW-wallMargin {
		wall.X = -1
	}
	if pos.Y < wallMargin {
		wall.Y = 1
	} else if pos.Y > snap.ArenaH-wallMargin {
		wall.Y = -1
	}
	return away.Add(wall)
}

// simulate plays one seeded run with the pilot until game over or limit of simulated time
// Level-ups always take the first offer
func simulate(settings *parameter.Settings, seed uint64, limit time.Duration, opts ...game.Option) (engine.Result, error) {
	opts = append([]game.Option{game.WithSeed(seed)}, opts...)
	session, err := game.New(settings, opts...)
	if err != nil {
		return engine.Result{}, err
	}

	steps := int(math.Ceil(float64(limit) / float64(parameter.TickInterval)))
	for i := 0; i < steps && !session.Over(); i++ {
		if len(session.Offers()) > 0 {
			if _, err := session.SelectUpgrade(0); err != nil {
				return engine.Result{}, err
			}
		}
		snap := session.Snapshot()
		session.SetIntent(pilot(&snap))
		session.Step(parameter.TickInterval)
	}
	return session.Result(), nil
}
