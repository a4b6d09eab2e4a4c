package system

import (
	"math"
	"time"

	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/status"
)

// DifficultySystem escalates the run on a fixed interval
// It owns spawn-rate decay, weapon damage scaling, rest periods and milestones
type DifficultySystem struct {
	world *engine.World
	cfg   *parameter.Settings
	state *engine.DifficultyState

	stepTimer engine.TimerID
	restTimer engine.TimerID

	statLevel *status.AtomicFloat
	statRate  *status.AtomicFloat
}

func NewDifficultySystem(world *engine.World) *DifficultySystem {
	s := &DifficultySystem{
		world:     world,
		cfg:       world.Resource.Config,
		state:     world.Resource.Difficulty,
		statLevel: world.Resource.Status.Floats.Get(status.DifficultyLevel),
		statRate:  world.Resource.Status.Floats.Get(status.SpawnRateMs),
	}
	s.Init()
	return s
}

// Init arms the one-second run counter
func (s *DifficultySystem) Init() {
	s.stepTimer = s.world.Resource.Schedule.Every(time.Second, func(time.Duration) {
		s.Tick()
	})
	s.publish()
}

// Tick counts one elapsed run second and escalates once per full interval carried over
func (s *DifficultySystem) Tick() {
	s.state.ElapsedSecs++
	s.state.SinceStep += time.Second
	for interval := s.cfg.Difficulty.Interval; interval > 0 && s.state.SinceStep >= interval; {
		s.state.SinceStep -= interval
		s.IncreaseDifficulty()
	}
}

func (s *DifficultySystem) Name() string {
	return "difficulty"
}

func (s *DifficultySystem) Priority() int {
	return parameter.PriorityDifficulty
}

func (s *DifficultySystem) Update() {}

// IncreaseDifficulty performs one escalation step
func (s *DifficultySystem) IncreaseDifficulty() {
	st := s.state
	d := s.cfg.Difficulty

	st.Level += d.Step

	// A rest holds the live rate; decay applies to the rate it will restore
	if st.Resting {
		st.StoredRate = s.decay(st.StoredRate)
	} else {
		st.SpawnRate = s.decay(st.SpawnRate)
		s.world.PushEvent(event.EventSpawnRateChanged, &event.SpawnRatePayload{Rate: st.SpawnRate})
	}

	st.DamageMultiplier = math.Pow(d.WeaponDamageScaling, math.Floor(st.Level/2)/5)
	if p := s.world.Resource.Player; p != nil {
		for _, w := range p.Weapons {
			w.ApplyMultiplier(st.DamageMultiplier)
		}
	}

	s.world.PushEvent(event.EventDifficultyIncreased, &event.DifficultyPayload{
		Level:            st.Level,
		SpawnRate:        st.SpawnRate,
		DamageMultiplier: st.DamageMultiplier,
	})

	floor := st.Floor()
	if d.RestPeriodFrequency > 0 && floor%d.RestPeriodFrequency == 0 && !st.Resting {
		s.startRest()
	}

	for _, m := range d.Milestones {
		if floor >= m.Level && !st.Milestones[m.Level] {
			st.Milestones[m.Level] = true
			s.world.PushEvent(event.EventDifficultyMilestone, &event.MilestonePayload{Level: m.Level, Enemy: m.Enemy})
		}
	}

	if every := s.cfg.Spawn.BossEvery; every > 0 {
		if multiple := floor / every; multiple > st.LastBoss {
			st.LastBoss = multiple
			s.world.PushEvent(event.EventBossSpawnRequest, nil)
		}
	}

	s.publish()
}

func (s *DifficultySystem) decay(rate time.Duration) time.Duration {
	next := time.Duration(float64(rate) * s.cfg.Difficulty.SpawnScaling)
	return max(next, s.cfg.Spawn.MinSpawnRate)
}

func (s *DifficultySystem) startRest() {
	st := s.state
	d := s.cfg.Difficulty
	now := s.world.Resource.Schedule.Now()

	st.Resting = true
	st.StoredRate = st.SpawnRate
	st.SpawnRate = time.Duration(float64(st.SpawnRate) * d.RestSpawnMultiplier)
	st.RestEndsAt = now + d.RestPeriodDuration

	if p := s.world.Resource.Player; p != nil {
		heal := int(math.Ceil(float64(p.MaxHealth) * d.RestHealFraction))
		if gained := p.Heal(heal); gained > 0 {
			s.world.PushEvent(event.EventPlayerHealed, &event.PlayerHealedPayload{
				Amount: gained, Health: p.Health, Reason: "rest",
			})
		}
	}

	s.restTimer = s.world.Resource.Schedule.After(d.RestPeriodDuration, func(time.Duration) {
		s.endRest()
	})

	s.world.PushEvent(event.EventRestStarted, &event.RestPayload{SpawnRate: st.SpawnRate, Until: st.RestEndsAt})
	s.world.PushEvent(event.EventSpawnRateChanged, &event.SpawnRatePayload{Rate: st.SpawnRate})
}

func (s *DifficultySystem) endRest() {
	st := s.state
	if !st.Resting {
		return
	}
	st.Resting = false
	st.SpawnRate = st.StoredRate
	st.StoredRate = 0
	s.restTimer = 0

	s.world.PushEvent(event.EventRestEnded, &event.RestPayload{SpawnRate: st.SpawnRate})
	s.world.PushEvent(event.EventSpawnRateChanged, &event.SpawnRatePayload{Rate: st.SpawnRate})
	s.publish()
}

func (s *DifficultySystem) publish() {
	s.statLevel.Set(s.state.Level)
	s.statRate.Set(float64(s.state.SpawnRate.Milliseconds()))
}
