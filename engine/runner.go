package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/parameter"
)

// Stepper advances a simulation by a wall-clock delta
type Stepper interface {
	Step(dt time.Duration)
}

// Runner drives a Stepper on a fixed tick from its own goroutine
// Collaborators never touch the simulation directly; they Post closures that run between ticks
type Runner struct {
	target   Stepper
	interval time.Duration
	clock    TimeProvider

	commands chan func()
	onTick   func()

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	ticks    atomic.Uint64
}

// NewRunner creates a stopped runner; nil clock uses wall time
func NewRunner(target Stepper, interval time.Duration, clock TimeProvider) *Runner {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if interval <= 0 {
		interval = parameter.TickInterval
	}
	return &Runner{
		target:   target,
		interval: interval,
		clock:    clock,
		commands: make(chan func(), 64),
		stopChan: make(chan struct{}),
	}
}

// OnTick registers a callback run on the runner goroutine after each step
// Must be called before Start
func (r *Runner) OnTick(fn func()) {
	r.onTick = fn
}

// Post queues fn to run on the runner goroutine
// Returns false once the runner has stopped
func (r *Runner) Post(fn func()) bool {
	select {
	case <-r.stopChan:
		return false
	default:
	}
	select {
	case r.commands <- fn:
		return true
	case <-r.stopChan:
		return false
	}
}

// Start begins the tick loop
func (r *Runner) Start() {
	if r.running.CompareAndSwap(false, true) {
		r.wg.Add(1)
		core.Go(r.loop)
	}
}

// Stop halts the loop and waits for it to exit
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
		if r.running.CompareAndSwap(true, false) {
			r.wg.Wait()
		}
	})
}

// Ticks returns the number of completed steps
func (r *Runner) Ticks() uint64 {
	return r.ticks.Load()
}

func (r *Runner) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := r.clock.Now()
	for {
		select {
		case <-r.stopChan:
			return

		case fn := <-r.commands:
			fn()

		case <-ticker.C:
			now := r.clock.Now()
			dt := now.Sub(last)
			last = now
			if dt > parameter.MaxTickDelta {
				dt = parameter.MaxTickDelta
			}

			r.target.Step(dt)
			r.ticks.Add(1)
			if r.onTick != nil {
				r.onTick()
			}
		}
	}
}
