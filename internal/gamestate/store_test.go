package gamestate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/deadline/internal/core"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, rules Rules) (*Store, *FakeClock) {
	t.Helper()
	clock := NewFakeClock(epoch)
	return New(rules, WithClock(clock)), clock
}

func TestNewStoreStartsInMenu(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())

	assert.Equal(t, PhaseMenu, s.Phase())
	assert.Equal(t, 180.0, s.TimeRemaining())
	assert.Equal(t, 1.0, s.ShrinkFactor())
	level, capacity := s.Vitality()
	assert.Equal(t, 5, level)
	assert.Equal(t, 5, capacity)
	assert.Empty(t, s.RunID())
}

func TestStartGameEntersPlayingAndRequestsCapture(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	var got []Transition
	s.OnTransition(func(tr Transition) { got = append(got, tr) })

	s.StartGame()

	require.Len(t, got, 1)
	assert.Equal(t, PhaseMenu, got[0].From)
	assert.Equal(t, PhasePlaying, got[0].To)
	assert.True(t, got[0].CapturePointer)
	assert.NotEmpty(t, got[0].RunID)
	assert.Equal(t, s.RunID(), got[0].RunID)
}

func TestStartGameIssuesFreshRunID(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	first := s.RunID()
	s.StartGame()

	assert.NotEqual(t, first, s.RunID())
}

func TestMutationsIgnoredOutsidePlaying(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())

	s.TakeDamage()
	s.UpdateTime(10)
	s.UpdateRoomShrink()
	assert.False(t, s.CollectPowerUp(PowerUpCoffee, "c1"))
	assert.False(t, s.StartTask("notebook"))
	s.EndGame(true)

	assert.Equal(t, PhaseMenu, s.Phase())
	assert.Equal(t, 180.0, s.TimeRemaining())
	level, _ := s.Vitality()
	assert.Equal(t, 5, level)
	assert.Empty(t, s.ActiveMiniGame())
}

func TestEndGame(t *testing.T) {
	tests := map[string]struct {
		won    bool
		phase  Phase
		reason LossReason
	}{
		"win":     {won: true, phase: PhaseWon, reason: ReasonNone},
		"abandon": {won: false, phase: PhaseLost, reason: ReasonAbandoned},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestStore(t, HeartsRules())
			s.StartGame()
			s.EndGame(tt.won)

			snap := s.Snapshot()
			assert.Equal(t, tt.phase, snap.Phase)
			assert.Equal(t, tt.reason, snap.Reason)
			assert.Equal(t, epoch, snap.EndedAt)

			// Terminal phases do not accept a second EndGame.
			s.EndGame(!tt.won)
			assert.Equal(t, tt.phase, s.Phase())
		})
	}
}

func TestUpdateTimeReachesZeroAndLoses(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()

	s.UpdateTime(179.5)
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.InDelta(t, 0.5, s.TimeRemaining(), 1e-9)

	s.UpdateTime(2)
	assert.Equal(t, 0.0, s.TimeRemaining())
	assert.Equal(t, PhaseLost, s.Phase())
	assert.Equal(t, ReasonTimeUp, s.Snapshot().Reason)

	s.UpdateTime(5)
	assert.Equal(t, 0.0, s.TimeRemaining())
	assert.Equal(t, PhaseLost, s.Phase())
}

func TestUpdateTimeIgnoresNegativeDelta(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	s.UpdateTime(-3)

	assert.Equal(t, 180.0, s.TimeRemaining())
}

func TestUpdateTimeIgnoresNaNDelta(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	s.UpdateTime(math.NaN())
	assert.Equal(t, 180.0, s.TimeRemaining())

	s.UpdateTime(180)
	assert.Equal(t, 0.0, s.TimeRemaining())
	assert.Equal(t, PhaseLost, s.Phase())
	assert.Equal(t, ReasonTimeUp, s.Snapshot().Reason)
}

func TestSlowMotionScalesTimer(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	require.True(t, s.CollectPowerUp(PowerUpPill, "pill1"))

	assert.Equal(t, 0.3, s.TimeScale())
	s.UpdateTime(10)
	assert.InDelta(t, 177.0, s.TimeRemaining(), 1e-9)
}

func TestTakeDamageUntilLost(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()

	for i := 0; i < 4; i++ {
		s.TakeDamage()
		assert.Equal(t, PhasePlaying, s.Phase(), "hit %d", i+1)
	}
	s.TakeDamage()

	level, _ := s.Vitality()
	assert.Equal(t, 0, level)
	assert.Equal(t, PhaseLost, s.Phase())
	assert.Equal(t, ReasonDepleted, s.Snapshot().Reason)

	s.TakeDamage()
	level, _ = s.Vitality()
	assert.Equal(t, 0, level)
}

func TestHitFlashIsCosmetic(t *testing.T) {
	s, clock := newTestStore(t, HeartsRules())
	s.StartGame()

	s.TakeDamage()
	s.TakeDamage()
	assert.True(t, s.IsHit())
	level, _ := s.Vitality()
	assert.Equal(t, 3, level, "hits inside the flash window still count")

	clock.Advance(199 * time.Millisecond)
	s.UpdatePowerUps()
	assert.True(t, s.IsHit())

	clock.Advance(time.Millisecond)
	s.UpdatePowerUps()
	assert.False(t, s.IsHit())
}

func TestAddStressOnlyForStressModel(t *testing.T) {
	hearts, _ := newTestStore(t, HeartsRules())
	hearts.StartGame()
	hearts.AddStress(50)
	level, _ := hearts.Vitality()
	assert.Equal(t, 5, level)

	stress, _ := newTestStore(t, StressRules())
	stress.StartGame()
	stress.AddStress(60)
	stress.AddStress(-20)
	level, _ = stress.Vitality()
	assert.Equal(t, 40, level)

	stress.AddStress(500)
	level, limit := stress.Vitality()
	assert.Equal(t, limit, level)
	assert.Equal(t, PhaseLost, stress.Phase())
}

func TestCoffeeSpeedBoostExpires(t *testing.T) {
	s, clock := newTestStore(t, HeartsRules())
	s.StartGame()

	assert.Equal(t, 1.0, s.SpeedMultiplier())
	require.True(t, s.CollectPowerUp(PowerUpCoffee, "c1"))
	assert.Equal(t, 2.0, s.SpeedMultiplier())

	clock.Advance(4999 * time.Millisecond)
	s.UpdatePowerUps()
	assert.Equal(t, 2.0, s.SpeedMultiplier())

	clock.Advance(6 * time.Second)
	assert.Equal(t, 2.0, s.SpeedMultiplier(), "expiry is lazy until polled")
	s.UpdatePowerUps()
	assert.Equal(t, 1.0, s.SpeedMultiplier())
}

func TestCollectPowerUpIdempotentPerID(t *testing.T) {
	s, clock := newTestStore(t, HeartsRules())
	s.StartGame()

	require.True(t, s.CollectPowerUp(PowerUpHeadphones, "h1"))
	assert.True(t, s.EnemiesFrozen())

	clock.Advance(3 * time.Second)
	s.UpdatePowerUps()
	assert.False(t, s.EnemiesFrozen())

	assert.False(t, s.CollectPowerUp(PowerUpHeadphones, "h1"), "same id must not re-arm")
	assert.False(t, s.EnemiesFrozen())

	assert.True(t, s.CollectPowerUp(PowerUpHeadphones, "h2"))
	assert.True(t, s.EnemiesFrozen())
}

func TestCollectPowerUpUnknownKind(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()

	assert.False(t, s.CollectPowerUp(PowerUpKind("energy-drink"), "x"))
	assert.False(t, s.PowerUpCollected("x"))
}

func TestPowerUpsDecayOutsidePlaying(t *testing.T) {
	s, clock := newTestStore(t, HeartsRules())
	s.StartGame()
	require.True(t, s.CollectPowerUp(PowerUpCoffee, "c1"))
	s.EndGame(true)

	clock.Advance(10 * time.Second)
	s.UpdatePowerUps()
	assert.Equal(t, 1.0, s.SpeedMultiplier())
}

func TestPowerUpEndToEnd(t *testing.T) {
	s, clock := newTestStore(t, HeartsRules())
	s.StartGame()
	s.CollectPowerUp(PowerUpCoffee, "c1")
	assert.Equal(t, 2.0, s.SpeedMultiplier())

	clock.Advance(6 * time.Second)
	s.UpdatePowerUps()
	assert.Equal(t, 1.0, s.SpeedMultiplier())
}

func TestRoomShrinkLosesBeforeFloor(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()

	elapsed := 0
	for s.Phase() == PhasePlaying && elapsed < 200 {
		s.UpdateTime(1)
		s.UpdateRoomShrink()
		elapsed++
		assert.GreaterOrEqual(t, s.ShrinkFactor(), 0.7)
		assert.LessOrEqual(t, s.ShrinkFactor(), 1.0)
	}

	assert.Equal(t, PhaseLost, s.Phase())
	assert.Equal(t, ReasonRoomClosed, s.Snapshot().Reason)
	assert.GreaterOrEqual(t, elapsed, 168)
	assert.LessOrEqual(t, elapsed, 169)
	assert.Greater(t, s.TimeRemaining(), 0.0, "room closes before the clock runs out")
}

func TestRoomShrinkHalfway(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	s.UpdateTime(90)
	s.UpdateRoomShrink()

	assert.InDelta(t, 0.85, s.ShrinkFactor(), 1e-9)
}

func TestTaskLifecycle(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()

	require.True(t, s.StartTask("notebook"))
	assert.Equal(t, "notebook", s.ActiveMiniGame())

	s.CompleteTask("notebook")

	assert.Equal(t, 1, s.MaterialsCollected())
	assert.Empty(t, s.ActiveMiniGame())
	task, ok := s.Task("notebook")
	require.True(t, ok)
	assert.True(t, task.Completed)
	assert.False(t, task.Active)
}

func TestStartTaskRejectedWhileAnotherActive(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	require.True(t, s.StartTask("calculator"))

	assert.False(t, s.StartTask("memory"))
	assert.Equal(t, "calculator", s.ActiveMiniGame())
	memory, _ := s.Task("memory")
	assert.False(t, memory.Active)
}

func TestStartTaskRejectsCompletedAndUnknown(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	s.StartTask("notes")
	s.CompleteTask("notes")

	assert.False(t, s.StartTask("notes"))
	assert.False(t, s.StartTask("homework"))
	assert.Empty(t, s.ActiveMiniGame())
}

func TestCompleteTaskTwiceDoesNotDoubleCount(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	s.StartTask("textbook")
	s.CompleteTask("textbook")
	s.CompleteTask("textbook")

	assert.Equal(t, 1, s.MaterialsCollected())
	assert.Empty(t, s.ActiveMiniGame())
}

func TestCompleteTaskIgnoredWhileDifferentTaskActive(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	s.StartTask("memory")
	s.CompleteTask("notes")

	assert.Equal(t, "memory", s.ActiveMiniGame())
	notes, _ := s.Task("notes")
	assert.False(t, notes.Completed)
	assert.Equal(t, 0, s.MaterialsCollected())
}

func TestCancelTaskClearsFlags(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	s.StartTask("memory")
	s.CancelTask()

	assert.Empty(t, s.ActiveMiniGame())
	memory, _ := s.Task("memory")
	assert.False(t, memory.Active)
	assert.False(t, memory.Completed)

	// Cancelling with nothing open is harmless.
	s.CancelTask()
	assert.True(t, s.StartTask("memory"))
}

func TestCancelTaskWorksAfterLoss(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	s.StartTask("calculator")
	s.UpdateTime(500)
	require.Equal(t, PhaseLost, s.Phase())

	s.CancelTask()
	assert.Empty(t, s.ActiveMiniGame())
}

func TestAllTasksUnlockDoor(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()

	for _, def := range DefaultTasks() {
		assert.False(t, s.AllCollected())
		require.True(t, s.StartTask(def.ID))
		s.CompleteTask(def.ID)
	}
	assert.True(t, s.AllCollected())
	assert.Equal(t, 5, s.MaterialsCollected())
}

func TestCollectMaterialClassic(t *testing.T) {
	s, _ := newTestStore(t, StressRules())
	s.StartGame()

	assert.True(t, s.CollectMaterial("pen"))
	assert.False(t, s.CollectMaterial("pen"))
	assert.False(t, s.CollectMaterial("laptop"))
	assert.True(t, s.CollectMaterial("notes"))

	assert.Equal(t, 2, s.MaterialsCollected())
	assert.Equal(t, []string{"notes", "pen"}, s.Snapshot().CollectedMaterials)
}

func TestCollectMaterialIgnoredInTaskVariant(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()

	assert.False(t, s.CollectMaterial("pen"))
	assert.Equal(t, 0, s.MaterialsCollected())
}

func TestRestartAfterLossHearts(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	s.StartTask("notebook")
	s.CompleteTask("notebook")
	s.StartTask("memory")
	s.CollectPowerUp(PowerUpCoffee, "c1")
	for i := 0; i < 5; i++ {
		s.TakeDamage()
	}
	require.Equal(t, PhaseLost, s.Phase())

	s.RestartGame()

	snap := s.Snapshot()
	assert.Equal(t, PhasePlaying, snap.Phase)
	assert.Equal(t, 5, snap.VitalityLevel)
	assert.Equal(t, 180.0, snap.TimeRemaining)
	assert.Equal(t, 1.0, snap.ShrinkFactor)
	assert.Empty(t, snap.ActiveMiniGame)
	assert.Empty(t, snap.CollectedPowerUps)
	assert.False(t, snap.SpeedBoost)
	assert.Equal(t, 0, snap.MaterialsCollected)
	for _, task := range snap.Tasks {
		assert.False(t, task.Completed, task.ID)
		assert.False(t, task.Active, task.ID)
	}
}

func TestRestartClassicReturnsToMenu(t *testing.T) {
	s, _ := newTestStore(t, StressRules())
	s.StartGame()
	s.CollectMaterial("pen")
	s.AddStress(100)
	require.Equal(t, PhaseLost, s.Phase())

	var last Transition
	s.OnTransition(func(tr Transition) { last = tr })
	s.RestartGame()

	assert.Equal(t, PhaseMenu, s.Phase())
	assert.Equal(t, PhaseMenu, last.To)
	assert.False(t, last.CapturePointer)
	assert.Equal(t, 0, s.MaterialsCollected())
	level, _ := s.Vitality()
	assert.Equal(t, 0, level)
}

func TestSnapshotIsolation(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	s.StartGame()
	snap := s.Snapshot()

	snap.Tasks[0].Completed = true
	task, _ := s.Task(snap.Tasks[0].ID)
	assert.False(t, task.Completed, "mutating a snapshot must not reach the store")
}

func TestSetPlayerPosition(t *testing.T) {
	s, _ := newTestStore(t, HeartsRules())
	assert.Equal(t, core.V3(0, 1.6, 0), s.PlayerPosition())

	s.SetPlayerPosition(core.V3(2, 1.6, -3))
	assert.Equal(t, core.V3(2, 1.6, -3), s.Snapshot().PlayerPosition)

	s.StartGame()
	assert.Equal(t, core.V3(0, 1.6, 0), s.PlayerPosition())
}
