package deadline

import (
	"time"

	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/gamestate"
)

// Player is the student walking around the room.
type Player struct {
	Pos      core.Vec3
	VelY     float64
	Grounded bool
}

// Enemy is a distraction that chases the player.
type Enemy struct {
	ID      string
	Pos     core.Vec3
	LastHit time.Time
}

// PowerUp is a collectible buff lying in the room.
type PowerUp struct {
	ID   string
	Kind gamestate.PowerUpKind
	Pos  core.Vec3
}

// Material is a study item on the floor (materials objective only).
type Material struct {
	ID  string
	Pos core.Vec3
}

// Station is the spot where a task is started (tasks objective only).
type Station struct {
	TaskID string
	Kind   gamestate.TaskKind
	Pos    core.Vec3
}

// Glyphs used by the top-down view.
const (
	PlayerChar    = '@'
	StationChar   = '#'
	DoneChar      = '✓'
	MaterialChar  = '*'
	DoorChar      = '▒'
	HeartChar     = '♥'
	EmptyHeart    = '♡'
	StressFull    = '█'
	StressEmpty   = '░'
	DefaultEnemy  = '!'
	DefaultPickup = '?'
)

var enemyGlyphs = map[string]rune{
	"phone":   'p',
	"netflix": 'n',
	"discord": 'd',
	"pizza":   'z',
	"text":    't',
	"music":   'm',
}

var powerUpGlyphs = map[gamestate.PowerUpKind]rune{
	gamestate.PowerUpCoffee:     'c',
	gamestate.PowerUpHeadphones: 'h',
	gamestate.PowerUpPill:       '+',
}

func enemyGlyph(id string) rune {
	if r, ok := enemyGlyphs[id]; ok {
		return r
	}
	return DefaultEnemy
}

func powerUpGlyph(k gamestate.PowerUpKind) rune {
	if r, ok := powerUpGlyphs[k]; ok {
		return r
	}
	return DefaultPickup
}
