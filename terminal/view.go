package terminal

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/game"
	"github.com/pitfigu/GuardianSurvivor/status"
)

// HUD carries presentation state that lives outside the simulation
type HUD struct {
	Muted      bool
	Debug      bool
	Spectators int
}

// View draws snapshots: row 0 is the HUD, the last row the status bar, the arena fills the rest
type View struct {
	screen tcell.Screen
	buf    *Buffer
}

func NewView(screen tcell.Screen) *View {
	w, h := screen.Size()
	return &View{screen: screen, buf: NewBuffer(w, h)}
}

// Buffer exposes the last composed frame
func (v *View) Buffer() *Buffer {
	return v.buf
}

// Render composes snap into the frame and flushes it to the screen
func (v *View) Render(snap *game.Snapshot, hud HUD) {
	v.Compose(snap, hud)
	v.buf.Flush(v.screen)
}

// Compose fills the frame buffer without touching the screen
func (v *View) Compose(snap *game.Snapshot, hud HUD) {
	w, h := v.screen.Size()
	if bw, bh := v.buf.Bounds(); bw != w || bh != h {
		v.buf.Resize(w, h)
	}
	base := tcell.StyleDefault.Background(RgbBackground)
	v.buf.Clear(base)
	if w < 10 || h < 4 {
		v.buf.Text(0, 0, "too small", base.Foreground(RgbHudText))
		return
	}

	v.drawArena(snap, base)
	v.drawHUD(snap, base)
	v.drawStatus(snap, hud, base)
}

// Project maps arena coordinates to a cell of the arena rows
func (v *View) Project(snap *game.Snapshot, x, y float64) (int, int, bool) {
	w, h := v.buf.Bounds()
	rows := h - 2
	if snap.ArenaW <= 0 || snap.ArenaH <= 0 || rows <= 0 {
		return 0, 0, false
	}
	if x < 0 || y < 0 || x > snap.ArenaW || y > snap.ArenaH || math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0, false
	}
	cx := min(w-1, int(x/snap.ArenaW*float64(w)))
	cy := 1 + min(rows-1, int(y/snap.ArenaH*float64(rows)))
	return cx, cy, true
}

func (v *View) drawArena(snap *game.Snapshot, base tcell.Style) {
	w, h := v.buf.Bounds()
	edge := base.Foreground(RgbArenaEdge)
	for x := 0; x < w; x++ {
		v.buf.Set(x, 1, '·', edge)
		v.buf.Set(x, h-2, '·', edge)
	}

	for _, p := range snap.Pickups {
		if cx, cy, ok := v.Project(snap, p.X, p.Y); ok {
			v.buf.Set(cx, cy, '+', base.Foreground(RgbPickup))
		}
	}
	for _, b := range snap.Bombs {
		if cx, cy, ok := v.Project(snap, b.X, b.Y); ok {
			v.buf.Set(cx, cy, 'o', base.Foreground(RgbBomb).Bold(b.DetonateIn < 300*time.Millisecond))
		}
	}
	for _, b := range snap.Beams {
		v.drawBeam(snap, b, base.Foreground(RgbBeam))
	}
	for _, e := range snap.Enemies {
		if cx, cy, ok := v.Project(snap, e.X, e.Y); ok {
			r, c := enemyGlyph(e.Kind)
			v.buf.Set(cx, cy, r, base.Foreground(c))
		}
	}
	for _, p := range snap.Projectiles {
		cx, cy, ok := v.Project(snap, p.X, p.Y)
		if !ok {
			continue
		}
		if p.Hostile {
			v.buf.Set(cx, cy, '*', base.Foreground(RgbShotHostile))
		} else {
			v.buf.Set(cx, cy, '.', base.Foreground(RgbShotFriendly))
		}
	}

	if cx, cy, ok := v.Project(snap, snap.Player.X, snap.Player.Y); ok {
		c := RgbPlayer
		if snap.Player.Locked {
			c = RgbPlayerLocked
		}
		v.buf.Set(cx, cy, '@', base.Foreground(c).Bold(true))
	}
}

// drawBeam samples the segment once per cell along its longer axis
func (v *View) drawBeam(snap *game.Snapshot, b game.BeamView, style tcell.Style) {
	x1, y1, ok1 := v.Project(snap, clampf(b.X1, snap.ArenaW), clampf(b.Y1, snap.ArenaH))
	x2, y2, ok2 := v.Project(snap, clampf(b.X2, snap.ArenaW), clampf(b.Y2, snap.ArenaH))
	if !ok1 || !ok2 {
		return
	}
	steps := max(abs(x2-x1), abs(y2-y1))
	glyph := '-'
	if abs(y2-y1) > abs(x2-x1) {
		glyph = '|'
	}
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := x1 + int(math.Round(t*float64(x2-x1)))
		y := y1 + int(math.Round(t*float64(y2-y1)))
		v.buf.Set(x, y, glyph, style)
	}
}

func (v *View) drawHUD(snap *game.Snapshot, base tcell.Style) {
	text := base.Foreground(RgbHudText)
	p := snap.Player

	x := v.buf.Text(0, 0, "HP ", text)
	x = v.buf.Text(x, 0, fmt.Sprintf("%d/%d", p.Health, p.MaxHealth), base.Foreground(healthColor(p.Health, p.MaxHealth)).Bold(true))
	line := fmt.Sprintf("  LV %d  XP %d/%d  SCORE %d  KILLS %d  %s  DIFF %.1f",
		snap.Run.Level, snap.Run.XP, snap.Run.XPToNext, snap.Run.Score, snap.Run.Kills,
		clock(snap.Run.Survival), snap.Difficulty.Level)
	x = v.buf.Text(x, 0, line, text)

	for _, wp := range p.Weapons {
		x = v.buf.Text(x, 0, fmt.Sprintf("  %s%d", wp.Kind, wp.Level), text.Dim(true))
	}
	if !p.HealUsed {
		v.buf.Text(x, 0, "  [e] heal", text.Dim(true))
	}
}

func (v *View) drawStatus(snap *game.Snapshot, hud HUD, base tcell.Style) {
	_, h := v.buf.Bounds()
	y := h - 1
	seg := base.Foreground(RgbStatusText)

	x := 0
	if hud.Muted {
		x = v.buf.Text(x, y, " MUTE ", seg.Background(RgbMutedBg))
	} else {
		x = v.buf.Text(x, y, " SND ", seg.Background(RgbSoundBg))
	}
	x++

	switch {
	case snap.Over:
		r := snap.Result
		msg := " GAME OVER "
		if r != nil {
			msg = fmt.Sprintf(" GAME OVER  score %d  kills %d  survived %s  level %d ", r.Score, r.Kills, clock(r.Survival), r.Level)
		}
		x = v.buf.Text(x, y, msg, seg.Background(RgbOverBg))
		x = v.buf.Text(x+1, y, "[q] quit", base.Foreground(RgbHudText))
	case len(snap.Offers) > 0:
		x = v.buf.Text(x, y, " LEVEL UP ", seg.Background(RgbOfferBg))
		for i, o := range snap.Offers {
			x = v.buf.Text(x+1, y, fmt.Sprintf("[%d] %s", i+1, o.Name), base.Foreground(RgbHudText))
		}
	case slices.Contains(snap.Paused, engine.PauseManual):
		x = v.buf.Text(x, y, " PAUSED ", seg.Background(RgbPauseBg))
		x = v.buf.Text(x+1, y, "[p] resume  [q] quit", base.Foreground(RgbHudText))
	default:
		if snap.Difficulty.Resting {
			left := max(0, snap.Difficulty.RestEndsAt-snap.Time)
			x = v.buf.Text(x, y, fmt.Sprintf(" REST %ds ", int(left.Seconds())), seg.Background(RgbRestBg))
			x++
		}
		x = v.buf.Text(x, y, "wasd/hjkl move  p pause  m mute  q quit", base.Foreground(RgbHudText).Dim(true))
	}

	if hud.Spectators > 0 {
		x = v.buf.Text(x+1, y, fmt.Sprintf(" %d watching ", hud.Spectators), seg.Background(RgbPauseBg))
	}
	if hud.Debug {
		v.drawMetrics(snap, x+1, y, seg.Background(RgbMetricBg).Foreground(RgbHudText))
	}
}

// drawMetrics appends the status registry, keys sorted
func (v *View) drawMetrics(snap *game.Snapshot, x, y int, style tcell.Style) {
	keys := make([]string, 0, len(snap.Metrics))
	for k := range snap.Metrics {
		if k == status.EngineTicks {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	x = v.buf.Text(x, y, fmt.Sprintf(" n=%d/%d", len(snap.Enemies), snap.EnemyCap), style)
	for _, k := range keys {
		x = v.buf.Text(x, y, fmt.Sprintf(" %s=%g", k, snap.Metrics[k]), style)
	}
	v.buf.Text(x, y, " ", style)
}

func clock(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func clampf(v, hi float64) float64 {
	return math.Max(0, math.Min(hi, v))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
