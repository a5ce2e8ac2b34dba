// Package deadline implements the dorm-room study game: a player dodging
// distractions while finishing study tasks (or collecting materials)
// before the clock runs out and the room closes in.
package deadline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deadline/internal/config"
	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/gamestate"
	"github.com/vovakirdan/deadline/internal/minigame"
	"github.com/vovakirdan/deadline/internal/registry"
)

// MaxDelta caps a single Step so a stalled terminal cannot teleport entities.
const MaxDelta = 0.25

var _ registry.Game = (*Game)(nil)

// Game implements registry.Game for one deadline variant.
type Game struct {
	id     string
	title  string
	cfg    config.GameConfig
	rules  gamestate.Rules
	clock  gamestate.Clock
	logger *log.Logger

	store     *gamestate.Store
	listeners []func(gamestate.Transition)

	runtime core.RuntimeConfig
	rng     *core.RNG

	player    Player
	enemies   []Enemy
	powerUps  []PowerUp
	materials []Material
	stations  []Station

	challenge minigame.Challenge
	events    []core.Event
}

// New creates a game for a variant id with its configuration resolved from opts.
func New(id string, opts registry.Options) (*Game, error) {
	cfg, err := config.Load(id, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&cfg, opts.Difficulty)
	return NewWithConfig(id, cfg, opts)
}

// NewWithConfig creates a game from an explicit configuration.
func NewWithConfig(id string, cfg config.GameConfig, opts registry.Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", id, err)
	}

	g := &Game{
		id:     id,
		title:  cfg.Title,
		cfg:    cfg,
		rules:  buildRules(id, cfg),
		clock:  opts.Clock,
		logger: opts.Logger,
	}
	g.rules.Difficulty = string(opts.Difficulty)
	if g.rules.Difficulty == "" {
		g.rules.Difficulty = string(config.DifficultyNormal)
	}
	if g.clock == nil {
		g.clock = gamestate.RealClock{}
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.title == "" {
		g.title = id
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the variant id.
func (g *Game) ID() string { return g.id }

// Title returns the display name for this variant.
func (g *Game) Title() string { return g.title }

// Config returns the resolved configuration.
func (g *Game) Config() config.GameConfig { return g.cfg }

// Reset discards the current run, rebuilds the store and shows the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = core.NewRNG(runtime.Seed)
	g.challenge = nil
	g.events = nil

	g.store = gamestate.New(g.rules,
		gamestate.WithClock(g.clock),
		gamestate.WithLogger(g.logger.With("variant", g.id)),
	)
	g.store.OnTransition(g.onTransition)
	for _, fn := range g.listeners {
		g.store.OnTransition(fn)
	}
	g.resetWorld()
}

// OnTransition registers fn for phase changes. It survives Reset.
func (g *Game) OnTransition(fn func(gamestate.Transition)) {
	g.listeners = append(g.listeners, fn)
	g.store.OnTransition(fn)
}

func (g *Game) onTransition(tr gamestate.Transition) {
	switch tr.To {
	case gamestate.PhasePlaying:
		g.resetWorld()
	case gamestate.PhaseWon:
		g.emit(core.EventWon, "")
	case gamestate.PhaseLost:
		g.emit(core.EventLost, string(tr.Reason))
	case gamestate.PhaseMenu:
		g.resetWorld()
	}
}

// resetWorld puts every entity back at its spawn point.
func (g *Game) resetWorld() {
	g.challenge = nil
	g.player = Player{Pos: g.rules.StartPosition, Grounded: true}

	g.enemies = g.enemies[:0]
	for _, s := range g.cfg.Enemies.Spawns {
		g.enemies = append(g.enemies, Enemy{ID: s.ID, Pos: vec(s.Position)})
	}
	g.powerUps = g.powerUps[:0]
	for _, p := range g.cfg.PowerUps.Items {
		g.powerUps = append(g.powerUps, PowerUp{ID: p.ID, Kind: gamestate.PowerUpKind(p.Kind), Pos: vec(p.Position)})
	}
	g.materials = g.materials[:0]
	for _, m := range g.cfg.Objective.Materials {
		g.materials = append(g.materials, Material{ID: m.ID, Pos: vec(m.Position)})
	}
	g.stations = g.stations[:0]
	for _, t := range g.cfg.Objective.Tasks {
		g.stations = append(g.stations, Station{TaskID: t.ID, Kind: gamestate.TaskKind(t.Kind), Pos: vec(t.Position)})
	}
}

// Start begins a run. Ignored while a run is in progress.
func (g *Game) Start() {
	if g.store.Phase() == gamestate.PhasePlaying {
		return
	}
	g.store.StartGame()
}

// Restart applies the variant's restart contract once a run is over.
func (g *Game) Restart() {
	if !g.store.Phase().Terminal() {
		return
	}
	g.store.RestartGame()
}

// Abandon ends the run in progress as a loss.
func (g *Game) Abandon() {
	g.CancelChallenge()
	g.store.EndGame(false)
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	phase := g.store.Phase()
	return core.GameState{
		Score:    g.store.TimeRemaining(),
		GameOver: phase.Terminal(),
		Won:      phase == gamestate.PhaseWon,
		Started:  phase != gamestate.PhaseMenu,
		Paused:   g.store.ActiveMiniGame() != "",
		RunID:    g.store.RunID(),
	}
}

// Snapshot returns a copy of the run state.
func (g *Game) Snapshot() gamestate.Snapshot {
	return g.store.Snapshot()
}

// Player returns the player entity.
func (g *Game) Player() Player { return g.player }

// Enemies returns a copy of the distractions.
func (g *Game) Enemies() []Enemy {
	return append([]Enemy(nil), g.enemies...)
}

func (g *Game) emit(kind core.EventKind, detail string) {
	g.events = append(g.events, core.Event{Kind: kind, Detail: detail})
}

func init() {
	register := func(id, title string) {
		registry.Register(id, title, func(opts registry.Options) (registry.Game, error) {
			g, err := New(id, opts)
			if err != nil {
				return nil, err
			}
			return g, nil
		})
	}
	register(config.VariantDeadline, config.DefaultDeadlineConfig().Title)
	register(config.VariantClassic, config.DefaultClassicConfig().Title)
}
