package main

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/pitfigu/GuardianSurvivor/audio"
	"github.com/pitfigu/GuardianSurvivor/game"
	"github.com/pitfigu/GuardianSurvivor/network"
	"github.com/pitfigu/GuardianSurvivor/terminal"
)

// app owns the interactive front end
// Every method except Done runs on the runner goroutine
type app struct {
	session *game.Session
	screen  tcell.Screen
	view    *terminal.View
	input   *terminal.Input
	sound   *audio.Player
	hub     *network.Hub
	logger  *slog.Logger

	hud      terminal.HUD
	debug    bool
	audioOn  bool
	quit     chan struct{}
	quitOnce sync.Once
}

func newApp(session *game.Session, screen tcell.Screen, sound *audio.Player, hub *network.Hub, debug, audioOn bool) *app {
	return &app{
		session: session,
		screen:  screen,
		view:    terminal.NewView(screen),
		input:   terminal.NewInput(terminal.DefaultHold),
		sound:   sound,
		hub:     hub,
		logger:  slog.Default().With("component", "app"),
		hud:     terminal.HUD{Muted: sound.Muted(), Debug: debug},
		debug:   debug,
		audioOn: audioOn,
		quit:    make(chan struct{}),
	}
}

// Done is closed once the player asks to leave
func (a *app) Done() <-chan struct{} {
	return a.quit
}

func (a *app) stop() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// handleEvent decodes a terminal event received at now
func (a *app) handleEvent(ev tcell.Event, now time.Time) {
	a.apply(a.input.HandleEvent(ev, now))
}

func (a *app) apply(cmd terminal.Command) {
	switch cmd.Action {
	case terminal.ActionQuit:
		a.stop()
	case terminal.ActionPause:
		a.session.TogglePause()
	case terminal.ActionHeal:
		if gained, ok := a.session.EmergencyHeal(); ok {
			a.logger.Debug("emergency heal", "gained", gained)
		}
	case terminal.ActionSelect:
		if u, err := a.session.SelectUpgrade(cmd.Index); err == nil {
			a.logger.Debug("upgrade chosen", "id", u.ID)
		} else if !errors.Is(err, game.ErrNoPendingOffers) {
			a.logger.Debug("upgrade rejected", "index", cmd.Index, "error", err)
		}
	case terminal.ActionMute:
		if a.audioOn {
			a.sound.ToggleMute()
		}
	case terminal.ActionDebug:
		a.hud.Debug = !a.hud.Debug
	case terminal.ActionClear:
		if a.debug {
			a.logger.Debug("enemies cleared", "count", a.session.ClearEnemies())
		}
	case terminal.ActionSpawnBoss:
		if a.debug {
			if _, err := a.session.SpawnEnemy("boss"); err != nil {
				a.logger.Debug("debug spawn", "error", err)
			}
		}
	case terminal.ActionResize:
		a.screen.Sync()
	}
}

// tick feeds held input to the session, then draws and streams the resulting frame
func (a *app) tick(now time.Time) {
	a.session.SetIntent(a.input.Intent(now))

	snap := a.session.Snapshot()
	a.hud.Muted = a.sound.Muted()
	a.hud.Spectators = a.hub.Count()
	a.view.Render(&snap, a.hud)
	a.hub.Broadcast(&snap)
}
