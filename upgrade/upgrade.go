package upgrade

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/pitfigu/GuardianSurvivor/component"
	"github.com/pitfigu/GuardianSurvivor/parameter"
	"github.com/pitfigu/GuardianSurvivor/weapon"
)

// ErrMissingApply marks a catalog entry without an effect
var ErrMissingApply = errors.New("upgrade has no apply function")

// Category groups upgrades for offer filtering
type Category int

const (
	CategoryUnlock Category = iota
	CategoryWeapon
	CategoryPlayer
)

// Context is what an upgrade may mutate
type Context struct {
	Player *component.Player
	Rand   *rand.Rand
	// NewWeapon builds a fresh level-1 weapon already scaled by the current difficulty
	NewWeapon func(k weapon.Kind) *weapon.Weapon
}

// Upgrade is a single catalog entry
type Upgrade struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Apply       func(ctx *Context) error
}

// ApplyTo runs the effect, ErrMissingApply when the entry has none
func (u Upgrade) ApplyTo(ctx *Context) error {
	if u.Apply == nil {
		return errors.Wrapf(ErrMissingApply, "upgrade %q", u.ID)
	}
	return u.Apply(ctx)
}

// Upgrade ids
const (
	UnlockArea   = "unlock_area"
	UnlockSpread = "unlock_spread"
	UnlockLaser  = "unlock_laser"
	UnlockBomb   = "unlock_bomb"
	WeaponDamage = "weapon_damage"
	WeaponSpeed  = "weapon_speed"
	WeaponLevel  = "weapon_level"
	PlayerSpeed  = "player_speed"
	PlayerHealth = "player_health"
	PlayerHeal   = "player_heal"
	PlayerArmor  = "player_armor"
	PlayerRegen  = "player_regen"
)

func unlock(k weapon.Kind) func(ctx *Context) error {
	return func(ctx *Context) error {
		if w := ctx.Player.Weapon(k); w != nil {
			w.UpgradeLevel()
			return nil
		}
		if ctx.NewWeapon == nil {
			return errors.Errorf("no weapon factory for %s", k)
		}
		ctx.Player.Weapons = append(ctx.Player.Weapons, ctx.NewWeapon(k))
		return nil
	}
}

func upgradeDamage(ctx *Context) error {
	for _, w := range ctx.Player.Weapons {
		w.UpgradeDamage(int(math.Ceil(float64(w.BaseDamage) * 0.3)))
	}
	return nil
}

func upgradeSpeed(ctx *Context) error {
	for _, w := range ctx.Player.Weapons {
		w.UpgradeCooldown(0.8)
	}
	return nil
}

// upgradeLevel picks among held weapons that can still level
func upgradeLevel(ctx *Context) error {
	var open []*weapon.Weapon
	for _, w := range ctx.Player.Weapons {
		if w.Level < parameter.MaxWeaponLevel {
			open = append(open, w)
		}
	}
	if len(open) == 0 {
		return nil
	}
	open[ctx.Rand.IntN(len(open))].UpgradeLevel()
	return nil
}

func upgradePlayerSpeed(ctx *Context) error {
	ctx.Player.Speed += math.Ceil(ctx.Player.Speed * 0.2)
	return nil
}

func upgradePlayerHealth(ctx *Context) error {
	ctx.Player.MaxHealth += 30
	ctx.Player.Heal(30)
	return nil
}

func healPlayer(ctx *Context) error {
	ctx.Player.Health = ctx.Player.MaxHealth
	return nil
}

func upgradeArmor(ctx *Context) error {
	m := ctx.Player.DamageMultiplier
	if m <= 0 || math.IsNaN(m) {
		m = 1
	}
	ctx.Player.DamageMultiplier = m * 0.9
	return nil
}

func upgradeRegen(ctx *Context) error {
	ctx.Player.RegenPerSecond++
	return nil
}

// Defaults is the stock catalog
func Defaults() []Upgrade {
	return []Upgrade{
		{ID: UnlockArea, Name: "Area Attack", Description: "Damages enemies in an area around you", Category: CategoryUnlock, Apply: unlock(weapon.Area)},
		{ID: UnlockSpread, Name: "Multi Projectile", Description: "Fires multiple projectiles in a spread", Category: CategoryUnlock, Apply: unlock(weapon.Spread)},
		{ID: UnlockLaser, Name: "Laser", Description: "Instant beam through the nearest enemy", Category: CategoryUnlock, Apply: unlock(weapon.Laser)},
		{ID: UnlockBomb, Name: "Bomb", Description: "Drops timed charges that knock enemies back", Category: CategoryUnlock, Apply: unlock(weapon.Bomb)},
		{ID: WeaponDamage, Name: "Weapon Damage +30%", Description: "Increases all weapon damage", Category: CategoryWeapon, Apply: upgradeDamage},
		{ID: WeaponSpeed, Name: "Attack Speed +20%", Description: "Decreases weapon cooldown", Category: CategoryWeapon, Apply: upgradeSpeed},
		{ID: WeaponLevel, Name: "Weapon Level Up", Description: "Improves a random weapon", Category: CategoryWeapon, Apply: upgradeLevel},
		{ID: PlayerSpeed, Name: "Movement Speed +20%", Description: "Move faster", Category: CategoryPlayer, Apply: upgradePlayerSpeed},
		{ID: PlayerHealth, Name: "Max Health +30", Description: "Increase maximum health", Category: CategoryPlayer, Apply: upgradePlayerHealth},
		{ID: PlayerHeal, Name: "Full Heal", Description: "Restore all health", Category: CategoryPlayer, Apply: healPlayer},
		{ID: PlayerArmor, Name: "Armor", Description: "Take 10% less damage", Category: CategoryPlayer, Apply: upgradeArmor},
		{ID: PlayerRegen, Name: "Regeneration", Description: "Recover 1 health per second", Category: CategoryPlayer, Apply: upgradeRegen},
	}
}
