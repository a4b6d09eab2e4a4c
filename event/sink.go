package event

import "sync/atomic"

// Sink receives each tick's settled event batch
// Deliver runs on the simulation goroutine and must not block or retain the slice
type Sink interface {
	Deliver(batch []GameEvent)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(batch []GameEvent)

func (f SinkFunc) Deliver(batch []GameEvent) { f(batch) }

// Buffered hands batches to a consumer goroutine through a bounded channel
// When the consumer lags, whole batches are dropped instead of stalling the core
type Buffered struct {
	ch      chan []GameEvent
	filter  func(EventType) bool
	dropped atomic.Uint64
}

// NewBuffered creates a sink with the given channel depth
// filter selects event types to forward, nil forwards everything
func NewBuffered(depth int, filter func(EventType) bool) *Buffered {
	if depth < 1 {
		depth = 1
	}
	return &Buffered{
		ch:     make(chan []GameEvent, depth),
		filter: filter,
	}
}

func (b *Buffered) Deliver(batch []GameEvent) {
	var out []GameEvent
	for _, ev := range batch {
		if b.filter == nil || b.filter(ev.Type) {
			out = append(out, ev)
		}
	}
	if len(out) == 0 {
		return
	}
	select {
	case b.ch <- out:
	default:
		b.dropped.Add(1)
	}
}

// C is the receive side for the consumer goroutine
func (b *Buffered) C() <-chan []GameEvent {
	return b.ch
}

// Dropped returns the number of batches discarded on a full channel
func (b *Buffered) Dropped() uint64 {
	return b.dropped.Load()
}

// Close ends the stream; Deliver must not be called afterwards
func (b *Buffered) Close() {
	close(b.ch)
}
