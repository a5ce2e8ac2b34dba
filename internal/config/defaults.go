package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Variant ids with an embedded default document.
const (
	VariantDeadline = "deadline"
	VariantClassic  = "deadline_classic"
)

// DefaultDeadlineConfig returns the hearts/tasks configuration.
func DefaultDeadlineConfig() GameConfig {
	return GameConfig{
		Title: "Deadline",
		Timer: TimerConfig{DurationSeconds: 180},
		Vitality: VitalityConfig{
			Model:      "hearts",
			MaxHearts:  5,
			HitPenalty: 1,
			HitFlashMS: 200,
		},
		PowerUps: defaultPowerUps(),
		Room: RoomConfig{
			Size:         40,
			MinShrink:    0.7,
			ShrinkRange:  0.3,
			ShrinkLossAt: 0.72,
			DoorRadius:   1.5,
			DoorHeight:   1.2,
		},
		Player: defaultPlayer(),
		Enemies: EnemyConfig{
			Speed:         1.5,
			HitRadius:     1.0,
			HitCooldownMS: 1000,
			Pushback:      2,
			MinY:          0.5,
			MaxY:          2.5,
			Spawns: []EnemySpawn{
				{ID: "phone", Position: Position{-12, 1.5, 12}},
				{ID: "netflix", Position: Position{12, 1.2, -12}},
				{ID: "discord", Position: Position{-9, 2.0, -9}},
				{ID: "pizza", Position: Position{9, 1.0, 9}},
				{ID: "text", Position: Position{-6, 1.8, 6}},
				{ID: "music", Position: Position{6, 1.5, -3}},
			},
		},
		Objective: ObjectiveConfig{
			Type:           "tasks",
			RestartTo:      "playing",
			InteractRadius: 1.5,
			PickupRadius:   1.5,
			Tasks: []TaskSpawn{
				{ID: "notebook", Name: "Write in Notebook", Description: "Copy the focus phrase into your notebook", Kind: "notebook", Position: Position{-10, 1.2, -10}},
				{ID: "calculator", Name: "Solve Math Problem", Description: "Work out the multiplication", Kind: "calculator", Position: Position{10, 1.2, -10}},
				{ID: "textbook", Name: "Answer Quiz", Description: "Answer the textbook question", Kind: "textbook", Position: Position{-10, 1.2, 10}},
				{ID: "memory", Name: "Memory Cards", Description: "Match all the pairs", Kind: "memory", Position: Position{10, 1.2, 10}},
				{ID: "notes", Name: "Review Notes", Description: "Memorize every key term", Kind: "notes", Position: Position{0, 1.2, -12}},
			},
		},
	}
}

// DefaultClassicConfig returns the stress-meter/materials configuration.
func DefaultClassicConfig() GameConfig {
	return GameConfig{
		Title: "Deadline Classic",
		Timer: TimerConfig{DurationSeconds: 90},
		Vitality: VitalityConfig{
			Model:       "stress",
			StressLimit: 100,
			HitPenalty:  10,
			HitFlashMS:  200,
		},
		PowerUps: defaultPowerUps(),
		Room: RoomConfig{
			Size:         10,
			MinShrink:    0.7,
			ShrinkRange:  0.3,
			ShrinkLossAt: 0.72,
			DoorRadius:   1.5,
			DoorHeight:   1.2,
		},
		Player: defaultPlayer(),
		Enemies: EnemyConfig{
			Speed:         1.5,
			HitRadius:     1.0,
			HitCooldownMS: 1000,
			Pushback:      2,
			MinY:          0.5,
			MaxY:          2.5,
			Spawns: []EnemySpawn{
				{ID: "phone", Position: Position{-4, 1.5, 4}},
				{ID: "netflix", Position: Position{4, 1.2, -4}},
				{ID: "discord", Position: Position{-3, 2.0, -3}},
				{ID: "pizza", Position: Position{3, 1.0, 3}},
				{ID: "text", Position: Position{-2, 1.8, 2}},
				{ID: "music", Position: Position{2, 1.5, -1}},
			},
		},
		Objective: ObjectiveConfig{
			Type:           "materials",
			RestartTo:      "menu",
			InteractRadius: 1.5,
			PickupRadius:   1.5,
			Materials: []MaterialSpawn{
				{ID: "notes", Position: Position{-3, 1.2, -3}},
				{ID: "textbook", Position: Position{3, 1.0, 2}},
				{ID: "calculator", Position: Position{-2, 0.8, 3}},
				{ID: "studyguide", Position: Position{2, 1.5, -2}},
				{ID: "pen", Position: Position{0, 1.0, -4}},
			},
		},
	}
}

func defaultPowerUps() PowerUpConfig {
	return PowerUpConfig{
		SpeedBoostMS:    5000,
		FreezeMS:        3000,
		SlowMotionMS:    3000,
		SpeedMultiplier: 2,
		SlowTimeScale:   0.3,
		PickupRadius:    1.2,
		Items: []PowerUpSpawn{
			{ID: "coffee1", Kind: "coffee", Position: Position{3.5, 0.8, -3.5}},
			{ID: "headphones1", Kind: "headphones", Position: Position{-3.5, 1.2, 0}},
			{ID: "pill1", Kind: "pill", Position: Position{0, 0.6, 3.5}},
		},
	}
}

func defaultPlayer() PlayerConfig {
	return PlayerConfig{
		MoveSpeed: 5,
		JumpForce: 8,
		Gravity:   20,
		EyeHeight: 1.6,
		Start:     Position{0, 1.6, 0},
	}
}

// DefaultFor returns the hardcoded configuration of a variant.
func DefaultFor(variant string) (GameConfig, bool) {
	switch variant {
	case VariantDeadline:
		return DefaultDeadlineConfig(), true
	case VariantClassic:
		return DefaultClassicConfig(), true
	default:
		return GameConfig{}, false
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + variant + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
