package gamestate

import (
	"slices"
	"time"

	"github.com/vovakirdan/deadline/internal/core"
)

// Snapshot is an immutable copy of a Store. Slices are owned by the snapshot.
type Snapshot struct {
	Variant    string
	Difficulty string
	RunID      string
	Phase      Phase
	Reason     LossReason

	Vitality         VitalityModel
	VitalityLevel    int
	VitalityCapacity int
	IsHit            bool

	TimeRemaining float64
	Duration      float64
	ShrinkFactor  float64

	PowerUps      []PowerUpStatus
	SpeedBoost    bool
	EnemiesFrozen bool
	SlowMotion    bool

	Objective          Objective
	MaterialsCollected int
	TotalMaterials     int
	CollectedMaterials []string
	CollectedPowerUps  []string
	Tasks              []Task
	ActiveMiniGame     string

	PlayerPosition core.Vec3
	StartedAt      time.Time
	EndedAt        time.Time
	TakenAt        time.Time
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Variant:            s.rules.Variant,
		Difficulty:         s.rules.Difficulty,
		RunID:              s.runID,
		Phase:              s.phase,
		Reason:             s.reason,
		Vitality:           s.vitality.Model(),
		VitalityLevel:      s.vitality.Level(),
		VitalityCapacity:   s.vitality.Capacity(),
		IsHit:              s.isHit,
		TimeRemaining:      s.timeRemaining,
		Duration:           s.rules.Duration,
		ShrinkFactor:       s.shrink,
		SpeedBoost:         s.effects[EffectSpeedBoost].active,
		EnemiesFrozen:      s.effects[EffectFreezeEnemies].active,
		SlowMotion:         s.effects[EffectSlowMotion].active,
		Objective:          s.rules.Objective,
		MaterialsCollected: s.materialsCollected,
		TotalMaterials:     s.rules.TotalMaterials(),
		CollectedMaterials: sortedKeys(s.materials),
		CollectedPowerUps:  sortedKeys(s.powerUpIDs),
		Tasks:              slices.Clone(s.tasks),
		ActiveMiniGame:     s.activeMiniGame,
		PlayerPosition:     s.position,
		StartedAt:          s.startedAt,
		EndedAt:            s.endedAt,
		TakenAt:            s.clock.Now(),
	}
	for e, t := range s.effects {
		snap.PowerUps = append(snap.PowerUps, PowerUpStatus{
			Effect:    Effect(e),
			Active:    t.active,
			ExpiresAt: t.until,
		})
	}
	return snap
}

// ActiveTask returns the task whose challenge is open.
func (s Snapshot) ActiveTask() (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == s.ActiveMiniGame {
			return t, s.ActiveMiniGame != ""
		}
	}
	return Task{}, false
}

// Elapsed returns how much countdown time has been used.
func (s Snapshot) Elapsed() float64 {
	return s.Duration - s.TimeRemaining
}

// Finished reports whether the run has ended.
func (s Snapshot) Finished() bool {
	return s.Phase.Terminal()
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
