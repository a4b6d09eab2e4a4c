package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pitfigu/GuardianSurvivor/vmath"
)

// Action is a player command decoded from a key
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionQuit
	ActionPause
	ActionHeal
	ActionSelect
	ActionMute
	ActionDebug
	ActionClear
	ActionSpawnBoss
	ActionResize
)

// Command is a decoded key; Index is the zero-based offer for ActionSelect
type Command struct {
	Action Action
	Index  int
}

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

var dirVectors = [dirCount]vmath.Vec2{
	dirUp:    {X: 0, Y: -1},
	dirDown:  {X: 0, Y: 1},
	dirLeft:  {X: -1, Y: 0},
	dirRight: {X: 1, Y: 0},
}

// DefaultHold keeps a direction active between terminal key repeats
const DefaultHold = 180 * time.Millisecond

// Input turns key presses into a movement intent
// Terminals report no key release, so each press holds its direction for a short window
type Input struct {
	hold    time.Duration
	pressed [dirCount]time.Time
}

func NewInput(hold time.Duration) *Input {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Input{hold: hold}
}

// HandleEvent decodes a tcell event at wall time now
func (in *Input) HandleEvent(ev tcell.Event, now time.Time) Command {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.Key(ev.Key(), ev.Rune(), now)
	case *tcell.EventResize:
		return Command{Action: ActionResize}
	}
	return Command{}
}

// Key decodes one key press
func (in *Input) Key(key tcell.Key, r rune, now time.Time) Command {
	switch key {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ, tcell.KeyEscape:
		return Command{Action: ActionQuit}
	case tcell.KeyUp:
		return in.press(dirUp, now)
	case tcell.KeyDown:
		return in.press(dirDown, now)
	case tcell.KeyLeft:
		return in.press(dirLeft, now)
	case tcell.KeyRight:
		return in.press(dirRight, now)
	case tcell.KeyRune:
	default:
		return Command{}
	}

	switch r {
	case 'w', 'k':
		return in.press(dirUp, now)
	case 's', 'j':
		return in.press(dirDown, now)
	case 'a', 'h':
		return in.press(dirLeft, now)
	case 'd', 'l':
		return in.press(dirRight, now)
	case ' ':
		in.Release()
		return Command{Action: ActionMove}
	case 'q':
		return Command{Action: ActionQuit}
	case 'p':
		return Command{Action: ActionPause}
	case 'e':
		return Command{Action: ActionHeal}
	case 'm':
		return Command{Action: ActionMute}
	case 'D':
		return Command{Action: ActionDebug}
	case 'C':
		return Command{Action: ActionClear}
	case 'X':
		return Command{Action: ActionSpawnBoss}
	}
	if r >= '1' && r <= '9' {
		return Command{Action: ActionSelect, Index: int(r - '1')}
	}
	return Command{}
}

// press holds dir and drops the opposite direction so reversals are immediate
func (in *Input) press(dir direction, now time.Time) Command {
	in.pressed[dir] = now
	switch dir {
	case dirUp:
		in.pressed[dirDown] = time.Time{}
	case dirDown:
		in.pressed[dirUp] = time.Time{}
	case dirLeft:
		in.pressed[dirRight] = time.Time{}
	case dirRight:
		in.pressed[dirLeft] = time.Time{}
	}
	return Command{Action: ActionMove}
}

// Release drops every held direction
func (in *Input) Release() {
	in.pressed = [dirCount]time.Time{}
}

// Intent sums directions pressed within the hold window; the session normalises it
func (in *Input) Intent(now time.Time) vmath.Vec2 {
	var v vmath.Vec2
	for d, at := range in.pressed {
		if at.IsZero() || now.Sub(at) > in.hold {
			continue
		}
		v = v.Add(dirVectors[d])
	}
	return v
}
