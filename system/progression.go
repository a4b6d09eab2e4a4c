package system

import (
	"log/slog"
	"math"

	"github.com/pkg/errors"

	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/upgrade"
	"github.com/pitfigu/GuardianSurvivor/weapon"
)

var (
	// ErrNoPendingOffers is returned by Select outside a level-up
	ErrNoPendingOffers = errors.New("no upgrade offers pending")
	// ErrInvalidSelection marks a selection the simulation rejected
	ErrInvalidSelection = errors.New("invalid upgrade selection")
)

// Progression owns xp thresholds, level-up pauses and upgrade application
type Progression struct {
	world   *engine.World
	cfg     *parameter.Settings
	catalog *upgrade.Catalog
	logger  *slog.Logger

	offers       []upgrade.Upgrade
	nextWeaponID int
}

func NewProgression(world *engine.World, catalog *upgrade.Catalog, logger *slog.Logger) *Progression {
	if catalog == nil {
		catalog = upgrade.NewCatalog(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Progression{
		world:   world,
		cfg:     world.Resource.Config,
		catalog: catalog,
		logger:  logger,
	}
}

func (p *Progression) Name() string {
	return "progression"
}

func (p *Progression) Priority() int {
	return parameter.PriorityProgress
}

// Update picks up thresholds crossed by xp sources outside ResolveXpPickup
func (p *Progression) Update() {
	p.LevelUp()
}

// NewWeapon builds a level-1 weapon scaled by the current difficulty multiplier
func (p *Progression) NewWeapon(k weapon.Kind) *weapon.Weapon {
	p.nextWeaponID++
	w := weapon.New(p.nextWeaponID, k, p.cfg.Weapons[k.String()])
	w.ApplyMultiplier(p.world.Resource.Difficulty.DamageMultiplier)
	return w
}

// Pending reports whether offers await a selection
func (p *Progression) Pending() bool {
	return len(p.offers) > 0
}

// Offers returns the pending upgrades in presentation order
func (p *Progression) Offers() []upgrade.Upgrade {
	return append([]upgrade.Upgrade(nil), p.offers...)
}

// LevelUp consumes one threshold of xp, pauses the simulation and publishes offers
// No-op below the threshold, while offers are pending or after game over
func (p *Progression) LevelUp() bool {
	res := p.world.Resource
	run := res.Run
	if run.Over || p.Pending() || run.XP < run.XPToNext {
		return false
	}

	run.Level++
	run.XP -= run.XPToNext
	run.XPToNext = max(1, int(math.Floor(float64(run.XPToNext)*p.cfg.Progression.XPScaling)))

	held := 0
	if res.Player != nil {
		held = len(res.Player.Weapons)
	}
	p.offers = p.catalog.GetRandomUpgrades(p.cfg.Progression.UpgradeChoices, held, p.cfg.Progression.MaxWeapons, res.Rand)
	run.Offers = make([]string, len(p.offers))
	for i, u := range p.offers {
		run.Offers[i] = u.ID
	}

	p.logger.Debug("level up", "level", run.Level, "xp", run.XP, "next", run.XPToNext, "offers", run.Offers)
	p.world.PushEvent(event.EventLevelUp, &event.LevelUpPayload{Level: run.Level, Offers: run.Offers})

	if len(p.offers) == 0 {
		return true
	}
	if res.Player != nil {
		res.Player.LevelUpLock = true
	}
	if res.Clock.Pause(engine.PauseLevelUp) {
		p.world.PushEvent(event.EventGamePaused, &event.PausePayload{Reason: engine.PauseLevelUp})
	}
	return true
}

// Select applies offer i, resumes the simulation and chains into the next level-up when xp allows
// A bad index or a failing upgrade is logged, drops the offers and still resumes
func (p *Progression) Select(i int) (upgrade.Upgrade, error) {
	if p.world.Resource.Run.Over || !p.Pending() {
		return upgrade.Upgrade{}, ErrNoPendingOffers
	}
	if i < 0 || i >= len(p.offers) {
		p.logger.Error("upgrade selection out of range", "index", i, "offers", len(p.offers))
		p.resume()
		return upgrade.Upgrade{}, errors.Wrapf(ErrInvalidSelection, "index %d of %d", i, len(p.offers))
	}

	u := p.offers[i]
	ctx := &upgrade.Context{
		Player:    p.world.Resource.Player,
		Rand:      p.world.Resource.Rand,
		NewWeapon: p.NewWeapon,
	}
	if err := u.ApplyTo(ctx); err != nil {
		p.logger.Error("upgrade rejected", "id", u.ID, "error", err)
		p.resume()
		return u, errors.Wrapf(err, "apply %s", u.ID)
	}

	p.world.PushEvent(event.EventUpgradeApplied, &event.UpgradePayload{ID: u.ID, Name: u.Name})
	p.resume()
	p.LevelUp()
	return u, nil
}

func (p *Progression) resume() {
	res := p.world.Resource
	p.offers = nil
	res.Run.Offers = nil
	if res.Player != nil {
		res.Player.LevelUpLock = false
	}
	if res.Clock.Resume(engine.PauseLevelUp) {
		p.world.PushEvent(event.EventGameResumed, &event.PausePayload{Reason: engine.PauseLevelUp})
	}
}
