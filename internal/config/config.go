// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the deadline game variants.
package config

// Position is a world coordinate written as [x, y, z] in YAML.
type Position [3]float64

// GameConfig contains all tunables of one variant.
type GameConfig struct {
	Title     string          `yaml:"title"`
	Timer     TimerConfig     `yaml:"timer"`
	Vitality  VitalityConfig  `yaml:"vitality"`
	PowerUps  PowerUpConfig   `yaml:"power_ups"`
	Room      RoomConfig      `yaml:"room"`
	Player    PlayerConfig    `yaml:"player"`
	Enemies   EnemyConfig     `yaml:"enemies"`
	Objective ObjectiveConfig `yaml:"objective"`
}

// TimerConfig defines the countdown.
type TimerConfig struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
}

// VitalityConfig selects the health model and its numbers.
type VitalityConfig struct {
	Model       string `yaml:"model"` // "hearts" or "stress"
	MaxHearts   int    `yaml:"max_hearts"`
	StressLimit int    `yaml:"stress_limit"`
	HitPenalty  int    `yaml:"hit_penalty"`
	HitFlashMS  int    `yaml:"hit_flash_ms"`
}

// PowerUpConfig defines effect durations and pickup placement.
type PowerUpConfig struct {
	SpeedBoostMS    int            `yaml:"speed_boost_ms"`
	FreezeMS        int            `yaml:"freeze_ms"`
	SlowMotionMS    int            `yaml:"slow_motion_ms"`
	SpeedMultiplier float64        `yaml:"speed_multiplier"`
	SlowTimeScale   float64        `yaml:"slow_time_scale"`
	PickupRadius    float64        `yaml:"pickup_radius"`
	Items           []PowerUpSpawn `yaml:"items"`
}

// PowerUpSpawn places one power-up.
type PowerUpSpawn struct {
	ID       string   `yaml:"id"`
	Kind     string   `yaml:"kind"` // coffee, headphones, pill
	Position Position `yaml:"position"`
}

// RoomConfig defines the room and its shrink ramp.
type RoomConfig struct {
	Size         float64 `yaml:"size"`
	MinShrink    float64 `yaml:"min_shrink"`
	ShrinkRange  float64 `yaml:"shrink_range"`
	ShrinkLossAt float64 `yaml:"shrink_loss_at"`
	DoorRadius   float64 `yaml:"door_radius"`
	DoorHeight   float64 `yaml:"door_height"`
}

// PlayerConfig defines player movement.
type PlayerConfig struct {
	MoveSpeed float64  `yaml:"move_speed"`
	JumpForce float64  `yaml:"jump_force"`
	Gravity   float64  `yaml:"gravity"`
	EyeHeight float64  `yaml:"eye_height"`
	Start     Position `yaml:"start"`
}

// EnemyConfig defines distraction behavior.
type EnemyConfig struct {
	Speed         float64      `yaml:"speed"`
	HitRadius     float64      `yaml:"hit_radius"`
	HitCooldownMS int          `yaml:"hit_cooldown_ms"`
	Pushback      float64      `yaml:"pushback"`
	MinY          float64      `yaml:"min_y"`
	MaxY          float64      `yaml:"max_y"`
	Spawns        []EnemySpawn `yaml:"spawns"`
}

// EnemySpawn places one distraction.
type EnemySpawn struct {
	ID       string   `yaml:"id"`
	Position Position `yaml:"position"`
}

// ObjectiveConfig defines what unlocks the door and how restart behaves.
type ObjectiveConfig struct {
	Type           string          `yaml:"type"`       // "tasks" or "materials"
	RestartTo      string          `yaml:"restart_to"` // "playing" or "menu"
	InteractRadius float64         `yaml:"interact_radius"`
	PickupRadius   float64         `yaml:"pickup_radius"`
	Tasks          []TaskSpawn     `yaml:"tasks"`
	Materials      []MaterialSpawn `yaml:"materials"`
}

// TaskSpawn places one task station.
type TaskSpawn struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Kind        string   `yaml:"kind"`
	Position    Position `yaml:"position"`
}

// MaterialSpawn places one floor material.
type MaterialSpawn struct {
	ID       string   `yaml:"id"`
	Position Position `yaml:"position"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
