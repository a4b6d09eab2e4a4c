package terminal

import "github.com/gdamore/tcell/v2"

// Palette, Tokyo Night background
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)
	RgbArenaEdge  = tcell.NewRGBColor(60, 62, 80)
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbHudText    = tcell.NewRGBColor(200, 200, 210)

	RgbPlayer       = tcell.NewRGBColor(255, 165, 0)
	RgbPlayerLocked = tcell.NewRGBColor(140, 140, 140)

	RgbEnemyBasic  = tcell.NewRGBColor(255, 80, 80)
	RgbEnemyFast   = tcell.NewRGBColor(255, 120, 200)
	RgbEnemyTank   = tcell.NewRGBColor(180, 50, 50)
	RgbEnemyRanged = tcell.NewRGBColor(100, 150, 255)
	RgbEnemyBlast  = tcell.NewRGBColor(255, 255, 0)
	RgbEnemyBlink  = tcell.NewRGBColor(0, 200, 200)
	RgbEnemyBoss   = tcell.NewRGBColor(200, 0, 255)

	RgbShotFriendly = tcell.NewRGBColor(255, 255, 255)
	RgbShotHostile  = tcell.NewRGBColor(255, 60, 60)
	RgbPickup       = tcell.NewRGBColor(50, 255, 50)
	RgbBomb         = tcell.NewRGBColor(255, 200, 0)
	RgbBeam         = tcell.NewRGBColor(140, 190, 255)

	RgbHealthHigh = tcell.NewRGBColor(0, 200, 0)
	RgbHealthMid  = tcell.NewRGBColor(255, 200, 0)
	RgbHealthLow  = tcell.NewRGBColor(255, 0, 0)

	RgbRestBg   = tcell.NewRGBColor(144, 238, 144)
	RgbPauseBg  = tcell.NewRGBColor(135, 206, 250)
	RgbOfferBg  = tcell.NewRGBColor(255, 165, 0)
	RgbOverBg   = tcell.NewRGBColor(200, 50, 50)
	RgbMutedBg  = tcell.NewRGBColor(255, 0, 0)
	RgbSoundBg  = tcell.NewRGBColor(0, 255, 0)
	RgbMetricBg = tcell.NewRGBColor(128, 0, 128)
)

// enemyGlyph returns the cell rune and colour of an enemy kind
func enemyGlyph(kind string) (rune, tcell.Color) {
	switch kind {
	case "basic":
		return 'x', RgbEnemyBasic
	case "fast":
		return 'f', RgbEnemyFast
	case "tank":
		return 'T', RgbEnemyTank
	case "shooter":
		return 's', RgbEnemyRanged
	case "elite":
		return 'E', RgbEnemyRanged
	case "explosive":
		return 'b', RgbEnemyBlast
	case "bomber":
		return 'B', RgbEnemyBlast
	case "teleporter":
		return 't', RgbEnemyBlink
	case "boss":
		return 'W', RgbEnemyBoss
	}
	return '?', RgbEnemyBasic
}

// healthColor grades the player's health fraction
func healthColor(hp, max int) tcell.Color {
	if max <= 0 {
		return RgbHealthLow
	}
	f := float64(hp) / float64(max)
	switch {
	case f > 0.6:
		return RgbHealthHigh
	case f > 0.3:
		return RgbHealthMid
	default:
		return RgbHealthLow
	}
}
