package engine

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"time"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/status"
)

// System is a per-tick simulation stage
type System interface {
	Name() string
	// Priority orders systems, lower values run first
	Priority() int
	Update()
}

// World owns the entity registry, resources and systems of one run
// Not safe for concurrent use; drive it from a single goroutine
type World struct {
	nextEntityID core.Entity

	Resource Resource

	Enemies     *Store[*component.Enemy]
	Projectiles *Store[*component.Projectile]
	Pickups     *Store[*component.Pickup]
	Bombs       *Store[*component.Bomb]
	Beams       *Store[*component.Beam]

	systems []System
	router  *EventRouter
	sinks   []event.Sink
	frame   int64

	statTicks *atomic.Int64
}

// NewWorld creates a world with fresh resources; the player is attached by the caller
func NewWorld(cfg *parameter.Settings, rng *rand.Rand) *World {
	reg := status.NewRegistry()
	clock := NewSimClock()
	w := &World{
		nextEntityID: 1,
		Resource: Resource{
			Time:       &TimeResource{},
			Config:     cfg,
			Events:     event.NewEventQueue(),
			Status:     reg,
			Rand:       rng,
			Clock:      clock,
			Schedule:   NewSchedule(),
			Difficulty: NewDifficultyState(cfg),
			Run:        NewRunState(cfg),
		},
		Enemies:     NewStore[*component.Enemy](),
		Projectiles: NewStore[*component.Projectile](),
		Pickups:     NewStore[*component.Pickup](),
		Bombs:       NewStore[*component.Bomb](),
		Beams:       NewStore[*component.Beam](),
		router:      NewEventRouter(),
		statTicks:   reg.Ints.Get(status.EngineTicks),
	}
	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// AddSystem inserts by priority and registers event handling when implemented
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	slices.SortStableFunc(w.systems, func(a, b System) int {
		return cmp.Compare(a.Priority(), b.Priority())
	})
	if h, ok := s.(EventHandler); ok {
		w.router.Register(h)
	}
}

// Router exposes handler registration for non-system consumers
func (w *World) Router() *EventRouter {
	return w.router
}

// Subscribe adds an external sink receiving each settled batch
func (w *World) Subscribe(s event.Sink) {
	w.sinks = append(w.sinks, s)
}

// Frame returns the tick counter
func (w *World) Frame() int64 {
	return w.frame
}

// PushEvent stamps and queues an event for the settle phase
func (w *World) PushEvent(t event.EventType, payload any) {
	w.Resource.Events.Push(event.GameEvent{
		Type:    t,
		Payload: payload,
		Frame:   w.frame,
		Time:    w.Resource.Clock.Now(),
	})
}

// Tick advances one step: clock, due timers, systems in priority order, then settle
// A system that pauses the clock stops the remaining systems for this tick
func (w *World) Tick(dt time.Duration) {
	w.frame++
	w.statTicks.Add(1)

	clock := w.Resource.Clock
	if clock.IsPaused() || dt <= 0 {
		w.Resource.Time.Update(clock.Now(), 0, w.frame)
		w.Settle()
		return
	}

	now := clock.Advance(dt)
	w.Resource.Time.Update(now, dt, w.frame)
	w.Resource.Schedule.Advance(now)

	for _, s := range w.systems {
		if clock.IsPaused() {
			break
		}
		s.Update()
	}
	w.Settle()
}

// Settle routes queued events to handlers, then hands the batch to sinks
// Handler-emitted events settle in further rounds up to EventDispatchRounds
func (w *World) Settle() {
	var batch []event.GameEvent
	for round := 0; round < parameter.EventDispatchRounds; round++ {
		events := w.Resource.Events.Consume()
		if len(events) == 0 {
			break
		}
		w.router.Dispatch(events)
		batch = append(batch, events...)
	}
	if len(batch) == 0 {
		return
	}
	for _, s := range w.sinks {
		s.Deliver(batch)
	}
}

// Roll draws a uniform float in [0,1) from the run's source
func (w *World) Roll() float64 {
	return w.Resource.Rand.Float64()
}
