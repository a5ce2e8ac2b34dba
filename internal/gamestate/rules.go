package gamestate

import (
	"time"

	"github.com/vovakirdan/deadline/internal/core"
)

// Objective is what the player collects to unlock the door.
type Objective string

const (
	// ObjectiveTasks counts completed tasks.
	ObjectiveTasks Objective = "tasks"
	// ObjectiveMaterials counts distinct picked-up materials.
	ObjectiveMaterials Objective = "materials"
)

// Rules are the constants of one product variant. They never change during a run.
type Rules struct {
	Variant    string
	Difficulty string  // preset name; leaderboards are kept per variant and preset
	Duration   float64 // seconds on the clock at start

	Vitality    VitalityModel
	MaxHearts   int
	StressLimit int
	HitPenalty  int
	HitFlash    time.Duration

	SpeedBoostDuration time.Duration
	FreezeDuration     time.Duration
	SlowMotionDuration time.Duration
	SpeedMultiplier    float64
	SlowTimeScale      float64

	// Shrink ramps linearly from 1 to 1-ShrinkRange over Duration, floored at MinShrink.
	// The run is lost once the unfloored factor reaches ShrinkLossAt.
	MinShrink    float64
	ShrinkRange  float64
	ShrinkLossAt float64

	Objective Objective
	Tasks     []TaskDef
	Materials []string

	// RestartTo is the phase RestartGame lands in: PhasePlaying or PhaseMenu.
	RestartTo Phase

	StartPosition core.Vec3
}

// HeartsRules are the defaults of the hearts/tasks product.
func HeartsRules() Rules {
	return Rules{
		Variant:            "deadline",
		Duration:           180,
		Vitality:           VitalityHearts,
		MaxHearts:          5,
		HitPenalty:         1,
		HitFlash:           200 * time.Millisecond,
		SpeedBoostDuration: 5 * time.Second,
		FreezeDuration:     3 * time.Second,
		SlowMotionDuration: 3 * time.Second,
		SpeedMultiplier:    2,
		SlowTimeScale:      0.3,
		MinShrink:          0.7,
		ShrinkRange:        0.3,
		ShrinkLossAt:       0.72,
		Objective:          ObjectiveTasks,
		Tasks:              DefaultTasks(),
		RestartTo:          PhasePlaying,
		StartPosition:      core.V3(0, 1.6, 0),
	}
}

// StressRules are the defaults of the stress-meter/materials product.
func StressRules() Rules {
	r := HeartsRules()
	r.Variant = "deadline_classic"
	r.Duration = 90
	r.Vitality = VitalityStress
	r.StressLimit = 100
	r.HitPenalty = 10
	r.Objective = ObjectiveMaterials
	r.Tasks = nil
	r.Materials = []string{"notes", "textbook", "calculator", "studyguide", "pen"}
	r.RestartTo = PhaseMenu
	return r
}

// TotalMaterials is the number of items that unlock the door.
func (r Rules) TotalMaterials() int {
	if r.Objective == ObjectiveTasks {
		return len(r.Tasks)
	}
	return len(r.Materials)
}

func (r Rules) effectDuration(e Effect) time.Duration {
	switch e {
	case EffectSpeedBoost:
		return r.SpeedBoostDuration
	case EffectFreezeEnemies:
		return r.FreezeDuration
	case EffectSlowMotion:
		return r.SlowMotionDuration
	default:
		return 0
	}
}
