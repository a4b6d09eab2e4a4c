package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/pitfigu/GuardianSurvivor/audio"
	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/game"
	"github.com/pitfigu/GuardianSurvivor/network"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/terminal"
)

var (
	configFlag   = flag.String("config", "", "TOML settings file")
	seedFlag     = flag.Uint64("seed", 0, "Run seed, 0 picks one")
	debugFlag    = flag.Bool("debug", false, "Log to logs/guardian.log and enable debug keys")
	spectateFlag = flag.String("spectate", "", "Serve a websocket spectator stream on this address, e.g. :7777")
)

func main() {
	flag.Parse()

	if err := parameter.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "guardian: %v\n", err)
		os.Exit(1)
	}
	launch := parameter.Launch{Config: *configFlag, Seed: *seedFlag, Debug: *debugFlag, Spectate: *spectateFlag}
	launch.ApplyEnv()

	logFile := setupLogging(launch.Debug)

	settings := parameter.Default()
	if launch.Config != "" {
		var err error
		if settings, err = parameter.Load(launch.Config); err != nil {
			fmt.Fprintf(os.Stderr, "guardian: %v\n", err)
			os.Exit(1)
		}
	}

	result, err := run(launch, settings)
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "guardian: %v\n", err)
		os.Exit(1)
	}
	if result != nil {
		fmt.Printf("score %d  kills %d  level %d  survived %s  difficulty %.1f\n",
			result.Score, result.Kills, result.Level, result.Survival.Round(time.Second), result.Difficulty)
	}
}

// run plays one session until the player quits and returns the final tally if the run ended
func run(launch parameter.Launch, settings *parameter.Settings) (*engine.Result, error) {
	logger := slog.Default()

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	defer screen.Fini()
	core.SetCrashHook(screen.Fini)
	screen.SetStyle(tcell.StyleDefault.Background(terminal.RgbBackground))
	screen.HideCursor()

	audioCfg := audio.LoadConfig()
	sound := audio.NewPlayer(audioCfg, logger.With("component", "audio"))
	var hub *network.Hub
	var final *engine.Result

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithResultSink(func(r engine.Result) {
			final = &r
			hub.PublishResult(r)
		}),
	}
	if launch.Seed != 0 {
		opts = append(opts, game.WithSeed(launch.Seed))
	}
	if audioCfg.Enabled {
		if err := sound.Start(); err == nil {
			opts = append(opts, game.WithSink(sound.Sink()))
		}
	}
	// Stopped after the runner so nothing delivers to a closed sink
	defer sound.Stop()

	session, err := game.New(settings, opts...)
	if err != nil {
		return nil, err
	}

	netCfg := network.DefaultConfig()
	netCfg.Address = launch.Spectate
	hub = network.NewHub(netCfg, session.Seed(), logger)
	if err := hub.Start(); err != nil {
		return nil, err
	}
	defer hub.Close()

	a := newApp(session, screen, sound, hub, launch.Debug, audioCfg.Enabled)
	runner := engine.NewRunner(session, parameter.TickInterval, nil)
	runner.OnTick(func() { a.tick(time.Now()) })
	runner.Start()

	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			now := time.Now()
			if !runner.Post(func() { a.handleEvent(ev, now) }) {
				return
			}
		}
	})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case <-a.Done():
	case sig := <-signals:
		logger.Info("signal received", "signal", sig.String())
	}
	runner.Stop()

	logger.Info("session closed", "seed", session.Seed(), "ticks", runner.Ticks(), "audio_dropped", sound.Dropped())
	return final, nil
}
