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
)

// spawnBand is one cumulative-probability row: rolls below Below pick Kind
type spawnBand struct {
	Below float64
	Kind  component.Kind
}

// spawnTable is ordered by descending minimum difficulty; the first tier whose
// MinLevel is reached applies, rolls past every band fall through to basic
var spawnTable = []struct {
	MinLevel int
	Bands    []spawnBand
}{
	{10, []spawnBand{
		{0.05, component.KindElite},
		{0.10, component.KindTeleporter},
		{0.20, component.KindBomber},
		{0.30, component.KindTank},
		{0.60, component.KindFast},
	}},
	{7, []spawnBand{
		{0.05, component.KindTeleporter},
		{0.15, component.KindBomber},
		{0.30, component.KindTank},
		{0.60, component.KindFast},
	}},
	{5, []spawnBand{
		{0.10, component.KindBomber},
		{0.25, component.KindTank},
		{0.50, component.KindFast},
	}},
	{3, []spawnBand{
		{0.15, component.KindTank},
		{0.40, component.KindFast},
	}},
	{2, []spawnBand{
		{0.30, component.KindFast},
	}},
}

// SelectEnemyType maps the floored difficulty and a roll in [0,1) to an enemy kind
func SelectEnemyType(difficulty float64, roll float64) component.Kind {
	level := int(math.Floor(difficulty))
	for _, tier := range spawnTable {
		if level < tier.MinLevel {
			continue
		}
		for _, b := range tier.Bands {
			if roll < b.Below {
				return b.Kind
			}
		}
		return component.KindBasic
	}
	return component.KindBasic
}

// SpawnSystem populates the enemy registry on the director's interval
type SpawnSystem struct {
	world *engine.World
	cfg   *parameter.Settings

	timer engine.TimerID

	statSpawned *atomic.Int64
	statCapped  *atomic.Int64
}

func NewSpawnSystem(world *engine.World) *SpawnSystem {
	s := &SpawnSystem{
		world:       world,
		cfg:         world.Resource.Config,
		statSpawned: world.Resource.Status.Ints.Get(status.SpawnCount),
		statCapped:  world.Resource.Status.Ints.Get(status.SpawnCapped),
	}
	s.Init()
	return s
}

// Init arms the recurring spawn timer at the current spawn rate
func (s *SpawnSystem) Init() {
	s.timer = s.world.Resource.Schedule.Every(s.world.Resource.Difficulty.SpawnRate, func(time.Duration) {
		s.TrySpawn()
	})
}

func (s *SpawnSystem) Name() string {
	return "spawn"
}

func (s *SpawnSystem) Priority() int {
	return parameter.PrioritySpawn
}

func (s *SpawnSystem) Update() {}

func (s *SpawnSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSpawnRateChanged,
		event.EventBossSpawnRequest,
		event.EventSummonRequest,
	}
}

func (s *SpawnSystem) HandleEvent(ev event.GameEvent) {
	if s.world.Resource.Run.Over {
		return
	}
	switch ev.Type {
	case event.EventSpawnRateChanged:
		if p, ok := ev.Payload.(*event.SpawnRatePayload); ok {
			s.world.Resource.Schedule.Reset(s.timer, p.Rate)
		}
	case event.EventBossSpawnRequest:
		s.Spawn(component.KindBoss, s.SpawnPosition(), false)
	case event.EventSummonRequest:
		if p, ok := ev.Payload.(*event.SummonPayload); ok {
			s.summon(p)
		}
	}
}

// Cap is the live-enemy ceiling for the current player level
func (s *SpawnSystem) Cap() int {
	return s.cfg.Spawn.BaseEnemyCap + s.world.Resource.Run.Level*s.cfg.Spawn.EnemyCapPerLevel
}

// TrySpawn adds one enemy unless the cap is reached, possibly starting a wave burst
func (s *SpawnSystem) TrySpawn() (core.Entity, bool) {
	res := s.world.Resource
	if res.Run.Over {
		return 0, false
	}
	limit := s.Cap()
	if s.world.Enemies.Count() >= limit {
		s.statCapped.Add(1)
		return 0, false
	}

	kind := SelectEnemyType(res.Difficulty.Level, s.world.Roll())
	id := s.Spawn(kind, s.SpawnPosition(), false)

	level := res.Difficulty.Floor()
	if level >= s.cfg.Spawn.WaveMinDifficulty && s.world.Roll() < s.cfg.Spawn.WaveChance {
		s.startWave(level, limit)
	}
	return id, true
}

// WaveSize bounds a burst by difficulty and cap
func WaveSize(level, limit int) int {
	n := min(level/3, (limit+9)/10, level/2)
	return max(n, 0)
}

// startWave schedules staggered extra spawns; each re-checks the cap when due
func (s *SpawnSystem) startWave(level, limit int) {
	n := WaveSize(level, limit)
	for i := 0; i < n; i++ {
		s.world.Resource.Schedule.After(time.Duration(i)*s.cfg.Spawn.WaveStagger, func(time.Duration) {
			res := s.world.Resource
			if res.Run.Over {
				return
			}
			if s.world.Enemies.Count() >= s.Cap() {
				s.statCapped.Add(1)
				return
			}
			kind := SelectEnemyType(res.Difficulty.Level, s.world.Roll())
			s.Spawn(kind, s.SpawnPosition(), true)
		})
	}
}

// SpawnPosition picks a point past a random arena edge, retrying while too close to the player
// After MaxPositionAttempts the last candidate is accepted
func (s *SpawnSystem) SpawnPosition() vmath.Vec2 {
	sp := s.cfg.Spawn
	attempts := max(sp.MaxPositionAttempts, 1)
	minSq := sp.MinPlayerDistance * sp.MinPlayerDistance

	var pos vmath.Vec2
	for i := 0; i < attempts; i++ {
		pos = s.edgeCandidate()
		player := s.world.Resource.Player
		if player == nil || vmath.DistanceSq(pos, player.Position) >= minSq {
			return pos
		}
	}
	return pos
}

func (s *SpawnSystem) edgeCandidate() vmath.Vec2 {
	w, h := s.cfg.Arena.Width, s.cfg.Arena.Height
	off := s.cfg.Spawn.SpawnDistance
	rng := s.world.Resource.Rand

	switch rng.IntN(4) {
	case 0: // top
		return vmath.V2(rng.Float64()*w, -off)
	case 1: // right
		return vmath.V2(w+off, rng.Float64()*h)
	case 2: // bottom
		return vmath.V2(rng.Float64()*w, h+off)
	default: // left
		return vmath.V2(-off, rng.Float64()*h)
	}
}

// Spawn registers an enemy of kind at pos without consulting the cap
func (s *SpawnSystem) Spawn(kind component.Kind, pos vmath.Vec2, wave bool) core.Entity {
	name := kind.String()
	profile := s.cfg.Enemies[name]
	damage, ok := s.cfg.Combat.EnemyDamage[name]
	if !ok {
		damage = s.cfg.Combat.FallbackEnemyDamage
	}

	id := s.world.CreateEntity()
	s.world.Enemies.Set(id, component.NewEnemy(id, kind, profile, damage, pos))
	s.statSpawned.Add(1)

	s.world.PushEvent(event.EventEnemySpawned, &event.EnemySpawnedPayload{
		Entity:   id,
		Kind:     name,
		Position: pos,
		Wave:     wave,
	})
	return id
}

// summon places enemies evenly on a ring, stopping at the cap
func (s *SpawnSystem) summon(p *event.SummonPayload) {
	kind, ok := component.ParseKind(p.Kind)
	if !ok {
		kind = component.KindBasic
	}
	if p.Count <= 0 {
		return
	}
	phase := s.world.Roll() * 2 * math.Pi
	for i := 0; i < p.Count; i++ {
		if s.world.Enemies.Count() >= s.Cap() {
			s.statCapped.Add(1)
			return
		}
		angle := phase + 2*math.Pi*float64(i)/float64(p.Count)
		s.Spawn(kind, p.Center.Add(vmath.FromAngle(angle, p.Radius)), false)
	}
}
