package config

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Validate reports every problem in the configuration at once.
func (c GameConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Timer.DurationSeconds <= 0 {
		el.Add(fmt.Errorf("timer.duration_seconds must be positive"))
	}
	el.Add(c.Vitality.validate())
	el.Add(c.PowerUps.validate())
	el.Add(c.Room.validate())

	if c.Player.MoveSpeed <= 0 {
		el.Add(fmt.Errorf("player.move_speed must be positive"))
	}
	if c.Player.Gravity <= 0 {
		el.Add(fmt.Errorf("player.gravity must be positive"))
	}
	if c.Enemies.HitRadius <= 0 {
		el.Add(fmt.Errorf("enemies.hit_radius must be positive"))
	}
	if c.Enemies.MinY > c.Enemies.MaxY {
		el.Add(fmt.Errorf("enemies.min_y %.2f is above enemies.max_y %.2f", c.Enemies.MinY, c.Enemies.MaxY))
	}
	el.Add(uniqueIDs("enemies.spawns", len(c.Enemies.Spawns), func(i int) string { return c.Enemies.Spawns[i].ID }))
	el.Add(c.Objective.validate())

	return el.Err()
}

func (v VitalityConfig) validate() error {
	el := errors.NewErrorList()

	switch v.Model {
	case "hearts":
		if v.MaxHearts <= 0 {
			el.Add(fmt.Errorf("vitality.max_hearts must be positive"))
		}
	case "stress":
		if v.StressLimit <= 0 {
			el.Add(fmt.Errorf("vitality.stress_limit must be positive"))
		}
	default:
		el.Add(fmt.Errorf("vitality.model %q must be hearts or stress", v.Model))
	}
	if v.HitPenalty <= 0 {
		el.Add(fmt.Errorf("vitality.hit_penalty must be positive"))
	}
	if v.HitFlashMS < 0 {
		el.Add(fmt.Errorf("vitality.hit_flash_ms must not be negative"))
	}

	return el.Err()
}

func (p PowerUpConfig) validate() error {
	el := errors.NewErrorList()

	if p.SpeedBoostMS <= 0 || p.FreezeMS <= 0 || p.SlowMotionMS <= 0 {
		el.Add(fmt.Errorf("power_ups durations must be positive"))
	}
	if p.SpeedMultiplier < 1 {
		el.Add(fmt.Errorf("power_ups.speed_multiplier must be at least 1"))
	}
	if p.SlowTimeScale <= 0 || p.SlowTimeScale > 1 {
		el.Add(fmt.Errorf("power_ups.slow_time_scale must be in (0, 1]"))
	}
	for _, item := range p.Items {
		switch item.Kind {
		case "coffee", "headphones", "pill":
		default:
			el.Add(fmt.Errorf("power_ups.items %s: unknown kind %q", item.ID, item.Kind))
		}
	}
	el.Add(uniqueIDs("power_ups.items", len(p.Items), func(i int) string { return p.Items[i].ID }))

	return el.Err()
}

func (r RoomConfig) validate() error {
	el := errors.NewErrorList()

	if r.Size <= 0 {
		el.Add(fmt.Errorf("room.size must be positive"))
	}
	if r.MinShrink <= 0 || r.MinShrink > 1 {
		el.Add(fmt.Errorf("room.min_shrink must be in (0, 1]"))
	}
	if r.ShrinkRange < 0 || r.ShrinkRange >= 1 {
		el.Add(fmt.Errorf("room.shrink_range must be in [0, 1)"))
	}
	if r.ShrinkLossAt >= 1 {
		el.Add(fmt.Errorf("room.shrink_loss_at must be below 1"))
	}

	return el.Err()
}

func (o ObjectiveConfig) validate() error {
	el := errors.NewErrorList()

	switch o.RestartTo {
	case "playing", "menu":
	default:
		el.Add(fmt.Errorf("objective.restart_to %q must be playing or menu", o.RestartTo))
	}

	switch o.Type {
	case "tasks":
		if len(o.Tasks) == 0 {
			el.Add(fmt.Errorf("objective.tasks must not be empty"))
		}
		for _, t := range o.Tasks {
			switch t.Kind {
			case "notebook", "calculator", "textbook", "memory", "notes":
			default:
				el.Add(fmt.Errorf("objective.tasks %s: unknown kind %q", t.ID, t.Kind))
			}
		}
		el.Add(uniqueIDs("objective.tasks", len(o.Tasks), func(i int) string { return o.Tasks[i].ID }))
	case "materials":
		if len(o.Materials) == 0 {
			el.Add(fmt.Errorf("objective.materials must not be empty"))
		}
		el.Add(uniqueIDs("objective.materials", len(o.Materials), func(i int) string { return o.Materials[i].ID }))
	default:
		el.Add(fmt.Errorf("objective.type %q must be tasks or materials", o.Type))
	}

	return el.Err()
}

func uniqueIDs(field string, n int, id func(int) string) error {
	el := errors.NewErrorList()
	seen := make(map[string]bool, n)
	for i := range n {
		v := id(i)
		if v == "" {
			el.Add(fmt.Errorf("%s[%d]: id must be set", field, i))
			continue
		}
		if seen[v] {
			el.Add(fmt.Errorf("%s: duplicate id %q", field, v))
		}
		seen[v] = true
	}
	return el.Err()
}
