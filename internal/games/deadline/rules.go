package deadline

import (
	"time"

	"github.com/vovakirdan/deadline/internal/config"
	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/gamestate"
)

// buildRules turns a validated configuration into store rules.
func buildRules(id string, cfg config.GameConfig) gamestate.Rules {
	r := gamestate.Rules{
		Variant:            id,
		Duration:           cfg.Timer.DurationSeconds,
		Vitality:           gamestate.VitalityModel(cfg.Vitality.Model),
		MaxHearts:          cfg.Vitality.MaxHearts,
		StressLimit:        cfg.Vitality.StressLimit,
		HitPenalty:         cfg.Vitality.HitPenalty,
		HitFlash:           ms(cfg.Vitality.HitFlashMS),
		SpeedBoostDuration: ms(cfg.PowerUps.SpeedBoostMS),
		FreezeDuration:     ms(cfg.PowerUps.FreezeMS),
		SlowMotionDuration: ms(cfg.PowerUps.SlowMotionMS),
		SpeedMultiplier:    cfg.PowerUps.SpeedMultiplier,
		SlowTimeScale:      cfg.PowerUps.SlowTimeScale,
		MinShrink:          cfg.Room.MinShrink,
		ShrinkRange:        cfg.Room.ShrinkRange,
		ShrinkLossAt:       cfg.Room.ShrinkLossAt,
		Objective:          gamestate.Objective(cfg.Objective.Type),
		RestartTo:          gamestate.PhasePlaying,
		StartPosition:      vec(cfg.Player.Start),
	}
	if cfg.Objective.RestartTo == "menu" {
		r.RestartTo = gamestate.PhaseMenu
	}
	for _, t := range cfg.Objective.Tasks {
		r.Tasks = append(r.Tasks, gamestate.TaskDef{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Kind:        gamestate.TaskKind(t.Kind),
		})
	}
	for _, m := range cfg.Objective.Materials {
		r.Materials = append(r.Materials, m.ID)
	}
	return r
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func vec(p config.Position) core.Vec3 {
	return core.V3(p[0], p[1], p[2])
}
