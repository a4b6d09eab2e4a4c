// Package audio voices simulation events as short synthesized tones through beep
package audio

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
)

// output receives finished cue streamers
type output interface {
	play(s beep.Streamer)
}

// speakerOutput feeds the shared beep mixer under the speaker lock
type speakerOutput struct {
	mixer *beep.Mixer
}

func (o *speakerOutput) play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Player consumes event batches on its own goroutine and plays the matching cues
// The simulation side only ever touches the non-blocking Buffered sink
type Player struct {
	cfg    Config
	logger *slog.Logger
	sink   *event.Buffered
	out    output

	// last play time per cue in simulation time, -1 before the first play
	last [cueCount]time.Duration

	muted   atomic.Bool
	running atomic.Bool
	played  atomic.Uint64
	done    chan struct{}
	stop    sync.Once
}

func NewPlayer(cfg Config, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Player{
		cfg:    cfg,
		logger: logger,
		sink:   event.NewBuffered(parameter.SinkBufferSize, wantsEvent),
		done:   make(chan struct{}),
	}
	for i := range p.last {
		p.last[i] = -1
	}
	p.muted.Store(!cfg.Enabled)
	return p
}

// Sink is the subscriber to register on the session
func (p *Player) Sink() event.Sink {
	return p.sink
}

// Start opens the speaker and begins consuming
// A speaker failure is returned and leaves the player draining silently
func (p *Player) Start() error {
	rate := beep.SampleRate(p.cfg.SampleRate)
	mixer := &beep.Mixer{}
	err := speaker.Init(rate, rate.N(p.cfg.Buffer))
	if err == nil {
		speaker.Play(mixer)
		p.start(&speakerOutput{mixer: mixer})
		return nil
	}
	p.logger.Warn("audio unavailable, running silent", "error", err)
	p.muted.Store(true)
	p.start(nil)
	return errors.Wrap(err, "speaker init")
}

func (p *Player) start(out output) {
	if !p.running.CompareAndSwap(false, true) {
		return
	}
	p.out = out
	core.Go(p.loop)
}

// Stop closes the sink and waits for the consumer to drain
// The session must not deliver to the sink afterwards
func (p *Player) Stop() {
	p.stop.Do(func() {
		p.sink.Close()
		if p.running.Load() {
			<-p.done
		}
	})
}

// ToggleMute flips mute and returns true when sound is now on
func (p *Player) ToggleMute() bool {
	muted := !p.muted.Load()
	p.muted.Store(muted)
	return !muted
}

func (p *Player) Muted() bool {
	return p.muted.Load()
}

// Played counts cues handed to the output
func (p *Player) Played() uint64 {
	return p.played.Load()
}

// Dropped counts batches lost because the consumer lagged
func (p *Player) Dropped() uint64 {
	return p.sink.Dropped()
}

func (p *Player) loop() {
	defer close(p.done)
	for batch := range p.sink.C() {
		for _, ev := range batch {
			p.handle(ev)
		}
	}
}

func (p *Player) handle(ev event.GameEvent) {
	cue, ok := CueFor(ev)
	if !ok || p.out == nil || p.muted.Load() {
		return
	}
	if last := p.last[cue]; last >= 0 && ev.Time-last < p.cfg.MinGap {
		return
	}
	p.last[cue] = ev.Time

	s := Build(cue, p.cfg)
	if s == nil {
		return
	}
	p.out.play(s)
	p.played.Add(1)
}
