// Package gamestate holds the authoritative state of one run of the deadline
// game: phase, clock, room shrink, power-ups, vitality and the task lifecycle.
//
// A Store has a single writer. The simulation tick calls the mutation
// methods; everything else reads immutable Snapshots. Invalid calls are
// no-ops and are logged at debug level, never returned as errors.
package gamestate

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/deadline/internal/core"
)

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used for power-up expiry.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger for transitions and rejected calls.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store is the game state of one player. It is not safe for concurrent use.
type Store struct {
	rules     Rules
	clock     Clock
	logger    *log.Logger
	listeners []func(Transition)

	phase  Phase
	reason LossReason
	runID  string

	vitality Vitality
	isHit    bool
	hitUntil time.Time

	timeRemaining float64
	shrink        float64
	effects       effectTimers

	materials          map[string]struct{}
	powerUpIDs         map[string]struct{}
	materialsCollected int

	tasks          []Task
	activeMiniGame string

	position  core.Vec3
	startedAt time.Time
	endedAt   time.Time
}

// New creates a store in the menu phase.
func New(rules Rules, opts ...Option) *Store {
	s := &Store{
		rules:  rules,
		clock:  RealClock{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.vitality = newVitality(rules)
	s.reset()
	return s
}

// Rules returns the variant constants.
func (s *Store) Rules() Rules {
	return s.rules
}

// OnTransition registers fn to be called after every phase change.
// Listeners run synchronously on the writer and must not call back into the store.
func (s *Store) OnTransition(fn func(Transition)) {
	s.listeners = append(s.listeners, fn)
}

// reset restores every run-scoped field to its default.
func (s *Store) reset() {
	s.reason = ReasonNone
	s.vitality.Reset()
	s.isHit = false
	s.hitUntil = time.Time{}
	s.timeRemaining = s.rules.Duration
	s.shrink = 1
	s.effects = effectTimers{}
	s.materials = make(map[string]struct{})
	s.powerUpIDs = make(map[string]struct{})
	s.materialsCollected = 0
	s.tasks = newTasks(s.rules.Tasks)
	s.activeMiniGame = ""
	s.position = s.rules.StartPosition
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
}

func (s *Store) setPhase(to Phase, reason LossReason, capture bool) {
	from := s.phase
	s.phase = to
	s.reason = reason
	now := s.clock.Now()
	if to.Terminal() {
		s.endedAt = now
	}

	s.logger.Info("phase changed",
		"from", from,
		"to", to,
		"reason", string(reason),
		"run", s.runID,
	)

	tr := Transition{
		From:           from,
		To:             to,
		Reason:         reason,
		RunID:          s.runID,
		At:             now,
		CapturePointer: capture,
	}
	for _, fn := range s.listeners {
		fn(tr)
	}
}

func (s *Store) reject(op, why string, kv ...any) {
	if s.logger.GetLevel() > log.DebugLevel {
		return
	}
	args := append([]any{"op", op, "why", why, "phase", s.phase}, kv...)
	s.logger.Debug("call ignored", args...)
}

func (s *Store) playing(op string) bool {
	if s.phase != PhasePlaying {
		s.reject(op, "not playing")
		return false
	}
	return true
}

// StartGame resets the run and enters Playing from any phase.
func (s *Store) StartGame() {
	s.reset()
	s.runID = uuid.NewString()
	s.startedAt = s.clock.Now()
	s.setPhase(PhasePlaying, ReasonNone, true)
}

// EndGame finishes a run in progress. Losing this way is recorded as abandoned.
func (s *Store) EndGame(won bool) {
	if !s.playing("EndGame") {
		return
	}
	if won {
		s.setPhase(PhaseWon, ReasonNone, false)
		return
	}
	s.setPhase(PhaseLost, ReasonAbandoned, false)
}

// RestartGame resets the run and lands in the phase given by Rules.RestartTo.
func (s *Store) RestartGame() {
	if s.rules.RestartTo == PhaseMenu {
		s.reset()
		s.runID = ""
		s.setPhase(PhaseMenu, ReasonNone, false)
		return
	}
	s.StartGame()
}

// TakeDamage applies one distraction hit and starts the hit flash.
// The flash is cosmetic; hits inside it still count.
func (s *Store) TakeDamage() {
	if !s.playing("TakeDamage") {
		return
	}
	s.vitality.ApplyPenalty(s.rules.HitPenalty)
	s.isHit = true
	s.hitUntil = s.clock.Now().Add(s.rules.HitFlash)
	if s.vitality.IsDepleted() {
		s.setPhase(PhaseLost, ReasonDepleted, false)
	}
}

// AddStress adds an arbitrary amount to the stress meter.
// Only meaningful for the stress vitality model.
func (s *Store) AddStress(amount int) {
	if !s.playing("AddStress") {
		return
	}
	if s.vitality.Model() != VitalityStress {
		s.reject("AddStress", "vitality model is not stress", "model", s.vitality.Model())
		return
	}
	s.vitality.ApplyPenalty(amount)
	if s.vitality.IsDepleted() {
		s.setPhase(PhaseLost, ReasonDepleted, false)
	}
}

// UpdateTime runs the clock down by delta seconds scaled by TimeScale.
// Reaching zero loses the run in the same call.
func (s *Store) UpdateTime(delta float64) {
	if !s.playing("UpdateTime") {
		return
	}
	if !(delta >= 0) {
		s.reject("UpdateTime", "negative or NaN delta", "delta", delta)
		return
	}
	s.timeRemaining -= delta * s.TimeScale()
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.setPhase(PhaseLost, ReasonTimeUp, false)
	}
}

// UpdateRoomShrink derives the shrink factor from elapsed time.
// Callers skip it while a challenge is open.
func (s *Store) UpdateRoomShrink() {
	if !s.playing("UpdateRoomShrink") {
		return
	}
	raw := s.rawShrink()
	s.shrink = max(s.rules.MinShrink, raw)
	if raw <= s.rules.ShrinkLossAt {
		s.setPhase(PhaseLost, ReasonRoomClosed, false)
	}
}

func (s *Store) rawShrink() float64 {
	d := s.rules.Duration
	if d <= 0 {
		return 1
	}
	elapsed := d - s.timeRemaining
	return 1 - (elapsed/d)*s.rules.ShrinkRange
}

// UpdatePowerUps clears effects and the hit flash whose deadlines have passed.
// It runs in every phase.
func (s *Store) UpdatePowerUps() {
	now := s.clock.Now()
	for _, e := range s.effects.expire(now) {
		s.logger.Debug("power-up expired", "effect", e.String(), "run", s.runID)
	}
	if s.isHit && !now.Before(s.hitUntil) {
		s.isHit = false
	}
}

// CollectPowerUp activates kind's effect once per id. Picking up a second item
// of the same kind restarts its countdown.
func (s *Store) CollectPowerUp(kind PowerUpKind, id string) bool {
	if !s.playing("CollectPowerUp") {
		return false
	}
	effect, ok := kind.Effect()
	if !ok {
		s.reject("CollectPowerUp", "unknown kind", "kind", kind, "id", id)
		return false
	}
	if _, seen := s.powerUpIDs[id]; seen {
		return false
	}
	s.powerUpIDs[id] = struct{}{}
	s.effects.activate(effect, s.clock.Now().Add(s.rules.effectDuration(effect)))
	return true
}

// CollectMaterial records a floor material once per id.
func (s *Store) CollectMaterial(id string) bool {
	if !s.playing("CollectMaterial") {
		return false
	}
	if s.rules.Objective != ObjectiveMaterials {
		s.reject("CollectMaterial", "variant collects tasks", "id", id)
		return false
	}
	if !slices.Contains(s.rules.Materials, id) {
		s.reject("CollectMaterial", "unknown material", "id", id)
		return false
	}
	if _, seen := s.materials[id]; seen {
		return false
	}
	s.materials[id] = struct{}{}
	s.materialsCollected = len(s.materials)
	return true
}

// SetPlayerPosition stores the resolved player position for this frame.
func (s *Store) SetPlayerPosition(p core.Vec3) {
	s.position = p
}

// SpeedMultiplier scales player movement.
func (s *Store) SpeedMultiplier() float64 {
	if s.effects[EffectSpeedBoost].active {
		return s.rules.SpeedMultiplier
	}
	return 1
}

// EnemiesFrozen reports whether distractions must hold still.
func (s *Store) EnemiesFrozen() bool {
	return s.effects[EffectFreezeEnemies].active
}

// TimeScale scales the countdown and enemy movement.
func (s *Store) TimeScale() float64 {
	if s.effects[EffectSlowMotion].active {
		return s.rules.SlowTimeScale
	}
	return 1
}

// StartTask opens the challenge of an idle task. Only one task may be open.
func (s *Store) StartTask(id string) bool {
	if !s.playing("StartTask") {
		return false
	}
	if s.activeMiniGame != "" {
		s.reject("StartTask", "another task is active", "task", id, "active", s.activeMiniGame)
		return false
	}
	i := s.taskIndex(id)
	if i < 0 {
		s.reject("StartTask", "unknown task", "task", id)
		return false
	}
	if s.tasks[i].Completed {
		s.reject("StartTask", "task already completed", "task", id)
		return false
	}
	s.tasks[i].Active = true
	s.activeMiniGame = id
	return true
}

// CompleteTask marks a task done and closes its challenge. Completing a task
// that is already done still closes the challenge but is not counted twice.
// It is ignored while a different task is open.
func (s *Store) CompleteTask(id string) {
	if !s.playing("CompleteTask") {
		return
	}
	if s.activeMiniGame != "" && s.activeMiniGame != id {
		s.reject("CompleteTask", "different task is active", "task", id, "active", s.activeMiniGame)
		return
	}
	i := s.taskIndex(id)
	if i < 0 {
		s.reject("CompleteTask", "unknown task", "task", id)
		return
	}
	s.tasks[i].Completed = true
	s.tasks[i].Active = false
	s.activeMiniGame = ""
	s.materialsCollected = s.countCompleted()
}

// CancelTask closes any open challenge without completing it. Safe in every phase.
func (s *Store) CancelTask() {
	for i := range s.tasks {
		s.tasks[i].Active = false
	}
	s.activeMiniGame = ""
}

func (s *Store) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Store) countCompleted() int {
	n := 0
	for _, t := range s.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Phase returns the current game phase.
func (s *Store) Phase() Phase { return s.phase }

// RunID returns the id of the current run, empty before the first start.
func (s *Store) RunID() string { return s.runID }

// TimeRemaining returns the seconds left on the clock.
func (s *Store) TimeRemaining() float64 { return s.timeRemaining }

// ShrinkFactor returns the room scale, 1 at the start of a run.
func (s *Store) ShrinkFactor() float64 { return s.shrink }

// ActiveMiniGame returns the id of the task whose challenge is open, or "".
func (s *Store) ActiveMiniGame() string { return s.activeMiniGame }

// PlayerPosition returns the last position reported by the game.
func (s *Store) PlayerPosition() core.Vec3 { return s.position }

// MaterialsCollected returns objective progress: tasks done or materials picked up.
func (s *Store) MaterialsCollected() int { return s.materialsCollected }

// TotalMaterials returns how many objectives unlock the door.
func (s *Store) TotalMaterials() int { return s.rules.TotalMaterials() }

// Vitality returns hearts left and max hearts, or stress and its limit.
func (s *Store) Vitality() (level, capacity int) {
	return s.vitality.Level(), s.vitality.Capacity()
}

// IsHit reports whether the hit flash is showing.
func (s *Store) IsHit() bool { return s.isHit }

// AllCollected reports whether the door may open.
func (s *Store) AllCollected() bool {
	return s.materialsCollected >= s.TotalMaterials()
}

// Task returns a copy of the task with the given id.
func (s *Store) Task(id string) (Task, bool) {
	i := s.taskIndex(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// MaterialCollected reports whether a floor material was picked up this run.
func (s *Store) MaterialCollected(id string) bool {
	_, ok := s.materials[id]
	return ok
}

// PowerUpCollected reports whether a power-up id was picked up this run.
func (s *Store) PowerUpCollected(id string) bool {
	_, ok := s.powerUpIDs[id]
	return ok
}
