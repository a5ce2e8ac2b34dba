package config

import (
	"fmt"
	"math"
	"strings"
)

// ParsePreset converts a flag value into a DifficultyPreset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the document untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timer.DurationSeconds = math.Round(cfg.Timer.DurationSeconds * 1.25)
		cfg.Enemies.Speed *= 0.75
		if cfg.Vitality.Model == "stress" {
			cfg.Vitality.HitPenalty = max(1, cfg.Vitality.HitPenalty/2)
		} else {
			cfg.Vitality.MaxHearts += 2
		}
	case DifficultyHard:
		cfg.Timer.DurationSeconds = math.Round(cfg.Timer.DurationSeconds * 0.75)
		cfg.Enemies.Speed *= 1.3
		if cfg.Vitality.Model == "stress" {
			cfg.Vitality.HitPenalty *= 2
		} else {
			cfg.Vitality.MaxHearts = max(1, cfg.Vitality.MaxHearts-2)
		}
	}
}
