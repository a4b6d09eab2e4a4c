// Package game assembles one run of the simulation behind a single-threaded Session API
package game

import (
	"log/slog"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/system"
	"github.com/pitfigu/GuardianSurvivor/upgrade"
	"github.com/pitfigu/GuardianSurvivor/vmath"
	"github.com/pitfigu/GuardianSurvivor/weapon"
)

var (
	ErrInvalidSelection = system.ErrInvalidSelection
	ErrNoPendingOffers  = system.ErrNoPendingOffers

	// ErrRunOver rejects commands after game over
	ErrRunOver = errors.New("run is over")
	// ErrUnknownEnemy rejects a debug spawn of an unconfigured kind
	ErrUnknownEnemy = errors.New("unknown enemy kind")
)

// Session owns one run: the world, its systems and the player
// Not safe for concurrent use; engine.Runner serialises access from other goroutines
type Session struct {
	world  *engine.World
	cfg    *parameter.Settings
	logger *slog.Logger
	seed   uint64

	difficulty *system.DifficultySystem
	spawn      *system.SpawnSystem
	combat     *system.CombatSystem
	weapons    *system.WeaponSystem
	progress   *system.Progression

	results  []func(engine.Result)
	reported bool
}

// New validates settings and builds a ready-to-step run
// nil settings uses parameter.Default; the caller's struct is never mutated
func New(settings *parameter.Settings, opts ...Option) (*Session, error) {
	if settings == nil {
		settings = parameter.Default()
	}
	cfg := settings.Clone()
	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "new session")
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed = uint64(time.Now().UnixNano())
	}
	rng := o.rng
	if rng == nil {
		rng = engine.NewRand(o.seed)
	}
	if o.catalog == nil {
		o.catalog = upgrade.NewCatalog(upgrade.Defaults())
	}

	world := engine.NewWorld(cfg, rng)
	center := vmath.V2(cfg.Arena.Width/2, cfg.Arena.Height/2)
	world.Resource.Player = component.NewPlayer(cfg.Player, center)

	s := &Session{
		world:   world,
		cfg:     cfg,
		logger:  o.logger,
		seed:    o.seed,
		results: o.results,
	}

	s.progress = system.NewProgression(world, o.catalog, o.logger)
	s.combat = system.NewCombatSystem(world, s.progress)
	s.weapons = system.NewWeaponSystem(world, s.combat)
	s.difficulty = system.NewDifficultySystem(world)
	s.spawn = system.NewSpawnSystem(world)

	world.AddSystem(s.difficulty)
	world.AddSystem(s.spawn)
	world.AddSystem(system.NewPlayerSystem(world))
	world.AddSystem(system.NewEnemySystem(world))
	world.AddSystem(s.weapons)
	world.AddSystem(system.NewProjectileSystem(world))
	world.AddSystem(s.combat)
	world.AddSystem(system.NewPickupSystem(world, s.combat))
	world.AddSystem(s.progress)

	// Result sinks fire before collaborator sinks see the GameOver batch
	world.Subscribe(event.SinkFunc(s.watchGameOver))
	for _, sink := range o.sinks {
		world.Subscribe(sink)
	}

	kind, ok := weapon.ParseKind(cfg.Player.StartingWeapon)
	if !ok {
		return nil, errors.Errorf("new session: starting weapon %q", cfg.Player.StartingWeapon)
	}
	p := world.Resource.Player
	p.Weapons = append(p.Weapons, s.progress.NewWeapon(kind))

	s.logger.Info("session started", "seed", o.seed, "weapon", kind.String())
	return s, nil
}

// Step advances the simulation by dt; a no-op while paused except for event delivery
func (s *Session) Step(dt time.Duration) {
	s.world.Tick(dt)
}

// SetIntent sets the player's movement request, normalised; non-finite input stops the player
func (s *Session) SetIntent(v vmath.Vec2) {
	p := s.world.Resource.Player
	if !v.IsFinite() {
		p.Intent = vmath.Vec2{}
		return
	}
	p.Intent = v.Normalize()
}

// SetLocked holds or releases the caller damage lock, independent of the level-up lock
func (s *Session) SetLocked(locked bool) {
	s.world.Resource.Player.Locked = locked
}

// TogglePause flips the manual pause and returns whether it is now held
// Level-up and game-over pauses are independent and unaffected
func (s *Session) TogglePause() bool {
	res := s.world.Resource
	if res.Run.Over {
		return false
	}
	if res.Clock.PausedFor(engine.PauseManual) {
		res.Clock.Resume(engine.PauseManual)
		s.world.PushEvent(event.EventGameResumed, &event.PausePayload{Reason: engine.PauseManual})
		return false
	}
	res.Clock.Pause(engine.PauseManual)
	s.world.PushEvent(event.EventGamePaused, &event.PausePayload{Reason: engine.PauseManual})
	return true
}

// Paused reports whether any pause reason is held
func (s *Session) Paused() bool {
	return s.world.Resource.Clock.IsPaused()
}

// EmergencyHeal restores EmergencyHealFraction of max health once per run
// Refused at full health without spending the charge
func (s *Session) EmergencyHeal() (int, bool) {
	res := s.world.Resource
	p := res.Player
	if res.Run.Over || p.EmergencyHealUsed || p.IsDead() {
		return 0, false
	}
	amount := int(math.Ceil(float64(p.MaxHealth)*s.cfg.Player.EmergencyHealFraction - 1e-9))
	gain := p.Heal(amount)
	if gain == 0 {
		return 0, false
	}
	p.EmergencyHealUsed = true
	s.world.PushEvent(event.EventPlayerHealed, &event.PlayerHealedPayload{
		Amount: gain,
		Health: p.Health,
		Reason: "emergency",
	})
	return gain, true
}

// Offers returns the upgrades awaiting selection, empty outside a level-up
func (s *Session) Offers() []upgrade.Upgrade {
	return s.progress.Offers()
}

// SelectUpgrade applies offer i and resumes; a chained level-up may pause again immediately
func (s *Session) SelectUpgrade(i int) (upgrade.Upgrade, error) {
	u, err := s.progress.Select(i)
	if err != nil {
		return u, err
	}
	s.logger.Debug("upgrade selected", "id", u.ID, "level", s.world.Resource.Run.Level)
	return u, nil
}

// ClearEnemies removes every enemy without score and returns how many were removed
func (s *Session) ClearEnemies() int {
	if s.world.Resource.Run.Over {
		return 0
	}
	return s.combat.ClearEnemies()
}

// SpawnEnemy places one enemy of the named kind on the spawn ring, ignoring the cap
func (s *Session) SpawnEnemy(name string) (core.Entity, error) {
	if s.world.Resource.Run.Over {
		return 0, ErrRunOver
	}
	kind, ok := component.ParseKind(name)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownEnemy, "%q", name)
	}
	return s.spawn.Spawn(kind, s.spawn.SpawnPosition(), false), nil
}

// Over reports whether the run has ended
func (s *Session) Over() bool {
	return s.world.Resource.Run.Over
}

// Result returns the final result once over, otherwise the live tally
func (s *Session) Result() engine.Result {
	res := s.world.Resource
	if res.Run.Over {
		return res.Run.Result
	}
	return engine.Result{
		Score:      res.Run.Score,
		Survival:   res.Run.Survival,
		Level:      res.Run.Level,
		Kills:      res.Run.Kills,
		Difficulty: res.Difficulty.Level,
	}
}

// Subscribe adds an event consumer; sinks run on the stepping goroutine and must not block
func (s *Session) Subscribe(sink event.Sink) {
	s.world.Subscribe(sink)
}

// Metrics copies the status registry
func (s *Session) Metrics() map[string]float64 {
	return s.world.Resource.Status.Snapshot()
}

// Seed returns the seed the run was built from
func (s *Session) Seed() uint64 {
	return s.seed
}

// Settings returns the validated settings of this run, treat as read-only
func (s *Session) Settings() *parameter.Settings {
	return s.cfg
}

func (s *Session) watchGameOver(batch []event.GameEvent) {
	if s.reported {
		return
	}
	for _, ev := range batch {
		if ev.Type != event.EventGameOver {
			continue
		}
		s.reported = true
		result := s.world.Resource.Run.Result
		s.logger.Info("game over",
			"score", result.Score,
			"kills", result.Kills,
			"level", result.Level,
			"survival", result.Survival,
			"difficulty", result.Difficulty,
		)
		for _, fn := range s.results {
			fn(result)
		}
		return
	}
}
