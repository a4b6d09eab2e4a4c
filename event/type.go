package event

import (
	"strconv"
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value and is never emitted
	EventNone EventType = iota

	// === Enemy Events ===

	// EventEnemySpawned signals a new enemy in the registry
	// Trigger: SpawnSystem | Payload: *EnemySpawnedPayload
	EventEnemySpawned

	// EventEnemyDied signals an enemy left the registry
	// Trigger: Combat death or mass clear | Payload: *EnemyDiedPayload
	EventEnemyDied

	// EventEnemyTeleported signals a blink
	// Trigger: EnemySystem | Payload: *TeleportPayload
	EventEnemyTeleported

	// EventBossPatternChanged signals a boss pattern transition
	// Trigger: EnemySystem | Payload: *BossPatternPayload
	EventBossPatternChanged

	// EventSummonRequest asks the spawner for enemies around a point
	// Trigger: Boss summon pattern | Consumer: SpawnSystem | Payload: *SummonPayload
	EventSummonRequest

	// EventBossSpawnRequest asks the spawner for a boss
	// Trigger: DifficultySystem | Consumer: SpawnSystem | Payload: nil
	EventBossSpawnRequest

	// === Combat Events ===

	// EventExplosion requests and announces an area blast
	// Trigger: Bomb fuse, explosive death | Consumer: CombatSystem | Payload: *ExplosionPayload
	EventExplosion

	// EventWeaponFired signals a weapon discharge
	// Trigger: WeaponSystem | Payload: *WeaponFiredPayload
	EventWeaponFired

	// EventPlayerHit signals applied damage to the player
	// Trigger: Combat resolver | Payload: *PlayerHitPayload
	EventPlayerHit

	// EventPlayerHealed signals restored health
	// Trigger: Rest period, upgrades, emergency heal, regen | Payload: *PlayerHealedPayload
	EventPlayerHealed

	// EventPickupCollected signals XP gained
	// Trigger: PickupSystem | Payload: *PickupPayload
	EventPickupCollected

	// === Progression Events ===

	// EventLevelUp signals a level-up and the offers awaiting selection
	// Trigger: Progression | Payload: *LevelUpPayload
	EventLevelUp

	// EventUpgradeApplied signals a selected upgrade took effect
	// Trigger: Session.SelectUpgrade | Payload: *UpgradePayload
	EventUpgradeApplied

	// === Difficulty Events ===

	// EventDifficultyIncreased signals a difficulty step
	// Trigger: DifficultySystem | Payload: *DifficultyPayload
	EventDifficultyIncreased

	// EventDifficultyMilestone announces a new enemy kind entering the mix
	// Trigger: DifficultySystem | Payload: *MilestonePayload
	EventDifficultyMilestone

	// EventRestStarted signals reduced spawn pressure
	// Trigger: DifficultySystem | Payload: *RestPayload
	EventRestStarted

	// EventRestEnded signals the stored spawn rate was restored
	// Trigger: Schedule | Payload: *RestPayload
	EventRestEnded

	// EventSpawnRateChanged signals the spawn interval changed
	// Trigger: DifficultySystem | Consumer: SpawnSystem | Payload: *SpawnRatePayload
	EventSpawnRateChanged

	// === Session Events ===

	// EventGamePaused / EventGameResumed track pause reasons
	// Trigger: Session | Payload: *PausePayload
	EventGamePaused
	EventGameResumed

	// EventGameOver fires exactly once per run
	// Trigger: Combat resolver | Payload: *GameOverPayload
	EventGameOver

	eventTypeCount
)

var typeNames = [...]string{
	EventNone:                "None",
	EventEnemySpawned:        "EnemySpawned",
	EventEnemyDied:           "EnemyDied",
	EventEnemyTeleported:     "EnemyTeleported",
	EventBossPatternChanged:  "BossPatternChanged",
	EventSummonRequest:       "SummonRequest",
	EventBossSpawnRequest:    "BossSpawnRequest",
	EventExplosion:           "Explosion",
	EventWeaponFired:         "WeaponFired",
	EventPlayerHit:           "PlayerHit",
	EventPlayerHealed:        "PlayerHealed",
	EventPickupCollected:     "PickupCollected",
	EventLevelUp:             "LevelUp",
	EventUpgradeApplied:      "UpgradeApplied",
	EventDifficultyIncreased: "DifficultyIncreased",
	EventDifficultyMilestone: "DifficultyMilestone",
	EventRestStarted:         "RestStarted",
	EventRestEnded:           "RestEnded",
	EventSpawnRateChanged:    "SpawnRateChanged",
	EventGamePaused:          "GamePaused",
	EventGameResumed:         "GameResumed",
	EventGameOver:            "GameOver",
}

func (t EventType) String() string {
	if t >= 0 && t < eventTypeCount {
		return typeNames[t]
	}
	return "EventType(" + strconv.Itoa(int(t)) + ")"
}

// GameEvent is a single queued event
// Frame is the tick counter, Time the simulation time at push
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
	Time    time.Duration
}
