package audio

import (
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/parameter"
)

// Cue is a sound effect bound to one or more simulation events
type Cue int

const (
	CueShot Cue = iota
	CueHit
	CueDeath
	CueExplosion
	CuePickup
	CueLevelUp
	CueHeal
	CueBoss
	CueRest
	CueGameOver
	cueCount
)

var cueNames = [...]string{
	CueShot:      "shot",
	CueHit:       "hit",
	CueDeath:     "death",
	CueExplosion: "explosion",
	CuePickup:    "pickup",
	CueLevelUp:   "levelup",
	CueHeal:      "heal",
	CueBoss:      "boss",
	CueRest:      "rest",
	CueGameOver:  "gameover",
}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// ParseCue resolves a cue name used in volume overrides
func ParseCue(name string) (Cue, bool) {
	for c, n := range cueNames {
		if n == name {
			return Cue(c), true
		}
	}
	return 0, false
}

// CueFor maps an event to its cue; events without a sound report false
func CueFor(ev event.GameEvent) (Cue, bool) {
	switch ev.Type {
	case event.EventWeaponFired:
		return CueShot, true
	case event.EventPlayerHit:
		return CueHit, true
	case event.EventEnemyDied:
		if p, ok := ev.Payload.(*event.EnemyDiedPayload); ok && p.Cleared {
			return 0, false
		}
		return CueDeath, true
	case event.EventExplosion:
		return CueExplosion, true
	case event.EventPickupCollected:
		return CuePickup, true
	case event.EventLevelUp:
		return CueLevelUp, true
	case event.EventPlayerHealed:
		// Regen ticks are too frequent to voice
		if p, ok := ev.Payload.(*event.PlayerHealedPayload); ok && p.Reason == "regen" {
			return 0, false
		}
		return CueHeal, true
	case event.EventEnemySpawned:
		if p, ok := ev.Payload.(*event.EnemySpawnedPayload); ok && p.Kind == parameter.EnemyBoss {
			return CueBoss, true
		}
	case event.EventRestStarted:
		return CueRest, true
	case event.EventGameOver:
		return CueGameOver, true
	}
	return 0, false
}

// wantsEvent is the Buffered filter: only types that can produce a cue cross the channel
func wantsEvent(t event.EventType) bool {
	switch t {
	case event.EventWeaponFired, event.EventPlayerHit, event.EventEnemyDied,
		event.EventExplosion, event.EventPickupCollected, event.EventLevelUp,
		event.EventPlayerHealed, event.EventEnemySpawned, event.EventRestStarted,
		event.EventGameOver:
		return true
	}
	return false
}
