package engine

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback, zero is never issued
type TimerID uint64

// TimerFunc receives the simulation time the timer was due
type TimerFunc func(due time.Duration)

type timer struct {
	id    TimerID
	at    time.Duration
	every time.Duration // 0 for one-shots
	seq   uint64        // FIFO among equal deadlines
	fn    TimerFunc
	index int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Schedule is a min-heap of callbacks keyed by simulation time
// Only Advance runs callbacks, so a frozen clock freezes every timer
type Schedule struct {
	heap   timerHeap
	byID   map[TimerID]*timer
	nextID TimerID
	seq    uint64
	now    time.Duration
}

func NewSchedule() *Schedule {
	return &Schedule{byID: make(map[TimerID]*timer)}
}

// Now is the time of the last Advance
func (s *Schedule) Now() time.Duration {
	return s.now
}

// After runs fn once, d after the current schedule time
func (s *Schedule) After(d time.Duration, fn TimerFunc) TimerID {
	return s.add(s.now+max(d, 0), 0, fn)
}

// Every runs fn each interval starting one interval from now
// Non-positive intervals are clamped to one millisecond
func (s *Schedule) Every(interval time.Duration, fn TimerFunc) TimerID {
	interval = max(interval, time.Millisecond)
	return s.add(s.now+interval, interval, fn)
}

func (s *Schedule) add(at, every time.Duration, fn TimerFunc) TimerID {
	s.nextID++
	s.seq++
	t := &timer{id: s.nextID, at: at, every: every, seq: s.seq, fn: fn}
	heap.Push(&s.heap, t)
	s.byID[t.id] = t
	return t.id
}

// Reset re-arms a recurring timer with a new interval measured from now
func (s *Schedule) Reset(id TimerID, interval time.Duration) bool {
	t, ok := s.byID[id]
	if !ok || t.every == 0 {
		return false
	}
	t.every = max(interval, time.Millisecond)
	t.at = s.now + t.every
	s.seq++
	t.seq = s.seq
	heap.Fix(&s.heap, t.index)
	return true
}

// Cancel removes a pending timer, safe from inside callbacks
func (s *Schedule) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	if t.index >= 0 {
		heap.Remove(&s.heap, t.index)
	}
	return true
}

// Pending reports whether id is still scheduled
func (s *Schedule) Pending(id TimerID) bool {
	_, ok := s.byID[id]
	return ok
}

// Advance runs every callback due at or before now, in deadline order
// Callbacks may add, reset or cancel timers, including their own
// Returns the number of callbacks run
func (s *Schedule) Advance(now time.Duration) int {
	if now < s.now {
		return 0
	}
	ran := 0
	for len(s.heap) > 0 && s.heap[0].at <= now {
		t := s.heap[0]
		due := t.at
		// Callbacks see the schedule at their own deadline
		s.now = due
		if t.every > 0 {
			t.at += t.every
			s.seq++
			t.seq = s.seq
			heap.Fix(&s.heap, 0)
		} else {
			heap.Pop(&s.heap)
			delete(s.byID, t.id)
		}
		t.fn(due)
		ran++
	}
	s.now = now
	return ran
}

// Clear drops every timer
func (s *Schedule) Clear() {
	for _, t := range s.heap {
		t.index = -1
	}
	s.heap = s.heap[:0]
	clear(s.byID)
}

func (s *Schedule) Len() int {
	return len(s.heap)
}
