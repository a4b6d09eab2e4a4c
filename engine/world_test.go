package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/event"
)

type probeSystem struct {
	name     string
	priority int
	log      *[]string
	onUpdate func()
	handled  []event.EventType
}

func (p *probeSystem) Name() string  { return p.name }
func (p *probeSystem) Priority() int { return p.priority }
func (p *probeSystem) Update() {
	*p.log = append(*p.log, p.name)
	if p.onUpdate != nil {
		p.onUpdate()
	}
}
func (p *probeSystem) EventTypes() []event.EventType { return []event.EventType{event.EventExplosion} }
func (p *probeSystem) HandleEvent(ev event.GameEvent) {
	p.handled = append(p.handled, ev.Type)
}

// TestWorldRunsSystemsByPriority checks ordering and pause short-circuit
func TestWorldRunsSystemsByPriority(t *testing.T) {
	w := NewTestWorld(nil, 1)
	var log []string
	w.AddSystem(&probeSystem{name: "c", priority: 30, log: &log})
	w.AddSystem(&probeSystem{name: "a", priority: 10, log: &log, onUpdate: func() {
		w.Resource.Clock.Pause(PauseLevelUp)
	}})
	w.AddSystem(&probeSystem{name: "b", priority: 20, log: &log})

	w.Tick(16 * time.Millisecond)
	assert.Equal(t, []string{"a"}, log)
	assert.Equal(t, 16*time.Millisecond, w.Resource.Time.Now)

	w.Tick(16 * time.Millisecond)
	assert.Equal(t, []string{"a"}, log, "paused world runs nothing")
	assert.Equal(t, 16*time.Millisecond, w.Resource.Clock.Now())

	w.Resource.Clock.Resume(PauseLevelUp)
	w.Tick(16 * time.Millisecond)
	assert.Equal(t, []string{"a", "a"}, log)
}

// TestWorldSettleRoutesThenDelivers checks handler dispatch and sink delivery
func TestWorldSettleRoutesThenDelivers(t *testing.T) {
	w := NewTestWorld(nil, 1)
	var log []string
	probe := &probeSystem{name: "p", priority: 1, log: &log}
	w.AddSystem(probe)

	var delivered []event.EventType
	w.Subscribe(event.SinkFunc(func(batch []event.GameEvent) {
		for _, ev := range batch {
			delivered = append(delivered, ev.Type)
		}
	}))

	w.PushEvent(event.EventExplosion, &event.ExplosionPayload{})
	w.PushEvent(event.EventPlayerHit, &event.PlayerHitPayload{})
	w.Tick(10 * time.Millisecond)

	assert.Equal(t, []event.EventType{event.EventExplosion}, probe.handled)
	assert.Equal(t, []event.EventType{event.EventExplosion, event.EventPlayerHit}, delivered)
	assert.Equal(t, 1, w.Router().HandlerCount(event.EventExplosion))
}

// TestWorldScheduleFrozenWhilePaused verifies timers do not advance during pause
func TestWorldScheduleFrozenWhilePaused(t *testing.T) {
	w := NewTestWorld(nil, 1)
	fired := false
	w.Resource.Schedule.After(100*time.Millisecond, func(time.Duration) { fired = true })

	w.Resource.Clock.Pause(PauseManual)
	for i := 0; i < 20; i++ {
		w.Tick(50 * time.Millisecond)
	}
	assert.False(t, fired)

	w.Resource.Clock.Resume(PauseManual)
	w.Tick(100 * time.Millisecond)
	assert.True(t, fired)
}

// TestStoreInsertionOrder covers Set, Remove and snapshot iteration
func TestStoreInsertionOrder(t *testing.T) {
	s := NewStore[int]()
	for i := 1; i <= 4; i++ {
		s.Set(core.Entity(i), i*10)
	}
	s.Remove(2)
	s.Set(3, 33)
	assert.Equal(t, []core.Entity{1, 3, 4}, s.Entities())

	var seen []int
	s.Each(func(e core.Entity, v int) {
		seen = append(seen, v)
		s.Remove(4)
	})
	assert.Equal(t, []int{10, 33}, seen)

	s.RemoveBatch([]core.Entity{1, 99})
	assert.Equal(t, []core.Entity{3}, s.Entities())
	assert.Equal(t, 1, s.Count())
	assert.False(t, s.Has(1))
}
