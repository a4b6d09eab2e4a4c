package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScheduleOrder verifies deadline order with FIFO among ties
func TestScheduleOrder(t *testing.T) {
	s := NewSchedule()
	var got []string
	s.After(20*time.Millisecond, func(time.Duration) { got = append(got, "b") })
	s.After(10*time.Millisecond, func(time.Duration) { got = append(got, "a") })
	s.After(20*time.Millisecond, func(time.Duration) { got = append(got, "c") })

	assert.Equal(t, 0, s.Advance(5*time.Millisecond))
	assert.Equal(t, 3, s.Advance(20*time.Millisecond))
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, s.Len())
}

// TestScheduleEveryCatchesUp fires a recurring timer once per elapsed interval
func TestScheduleEveryCatchesUp(t *testing.T) {
	s := NewSchedule()
	var dues []time.Duration
	s.Every(time.Second, func(due time.Duration) { dues = append(dues, due) })

	s.Advance(3500 * time.Millisecond)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, dues)
	assert.Equal(t, 1, s.Len())
}

// TestScheduleResetAndCancel re-arms from now and cancels from inside a callback
func TestScheduleResetAndCancel(t *testing.T) {
	s := NewSchedule()
	fired := 0
	var id TimerID
	id = s.Every(time.Second, func(time.Duration) {
		fired++
		if fired == 2 {
			s.Cancel(id)
		}
	})

	s.Advance(500 * time.Millisecond)
	require.True(t, s.Reset(id, 2*time.Second))
	s.Advance(2 * time.Second)
	assert.Equal(t, 0, fired, "reset measures from 500ms")
	s.Advance(2500 * time.Millisecond)
	assert.Equal(t, 1, fired)
	s.Advance(10 * time.Second)
	assert.Equal(t, 2, fired)
	assert.False(t, s.Pending(id))
	assert.False(t, s.Reset(id, time.Second))
}

// TestScheduleNestedZeroDelay runs timers added during Advance when already due
func TestScheduleNestedZeroDelay(t *testing.T) {
	s := NewSchedule()
	var got []time.Duration
	s.After(time.Second, func(due time.Duration) {
		for i := 0; i < 3; i++ {
			d := time.Duration(i) * 200 * time.Millisecond
			s.After(d, func(due time.Duration) { got = append(got, due) })
		}
	})
	s.Advance(1300 * time.Millisecond)
	assert.Equal(t, []time.Duration{time.Second, 1200 * time.Millisecond}, got)
	s.Advance(1400 * time.Millisecond)
	assert.Len(t, got, 3)
}

// TestScheduleClearFromCallback stops the drain
func TestScheduleClearFromCallback(t *testing.T) {
	s := NewSchedule()
	ran := 0
	s.After(time.Second, func(time.Duration) { ran++; s.Clear() })
	s.After(time.Second, func(time.Duration) { ran++ })
	s.Advance(2 * time.Second)
	assert.Equal(t, 1, ran)
	assert.Equal(t, 0, s.Len())
}

// TestSimClockReasons holds time while any reason is held
func TestSimClockReasons(t *testing.T) {
	c := NewSimClock()
	c.Advance(time.Second)

	assert.True(t, c.Pause(PauseLevelUp))
	assert.False(t, c.Pause(PauseManual))
	assert.Equal(t, time.Second, c.Advance(time.Second))

	assert.False(t, c.Resume(PauseLevelUp))
	assert.True(t, c.IsPaused())
	assert.True(t, c.Resume(PauseManual))
	assert.Equal(t, 2*time.Second, c.Advance(time.Second))
	assert.False(t, c.Resume(PauseManual))
}
