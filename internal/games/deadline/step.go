package deadline

import (
	"math"

	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/gamestate"
	"github.com/vovakirdan/deadline/internal/minigame"
)

// Step advances the simulation by delta seconds.
//
// On the title screen Confirm starts a run and after a run Restart applies
// the restart contract. While playing, the clock always runs. Power-ups,
// room shrink and every entity are held still while a challenge is open.
func (g *Game) Step(in core.InputFrame, delta float64) core.StepResult {
	if math.IsNaN(delta) {
		delta = 0
	}
	delta = core.ClampF(delta, 0, MaxDelta)

	switch phase := g.store.Phase(); {
	case phase == gamestate.PhaseMenu:
		if in.Has(core.ActionConfirm) {
			g.Start()
		}
	case phase.Terminal():
		if in.Has(core.ActionRestart) {
			g.Restart()
		}
	default:
		g.tick(in, delta)
	}

	events := g.events
	g.events = nil
	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) tick(in core.InputFrame, delta float64) {
	s := g.store

	s.UpdateTime(delta)
	if s.ActiveMiniGame() == "" {
		s.UpdatePowerUps()
		s.UpdateRoomShrink()
	}
	if s.Phase() != gamestate.PhasePlaying {
		g.CancelChallenge()
		return
	}
	if s.ActiveMiniGame() != "" {
		return
	}

	g.movePlayer(in, delta)
	g.moveEnemies(delta)
	if s.Phase() != gamestate.PhasePlaying {
		return
	}
	g.collectPowerUps()
	g.collectMaterials()
	g.useStations(in)
	g.checkDoor()
}

// roomBound is the largest |x| or |z| an entity may reach in the current room.
func (g *Game) roomBound() float64 {
	return g.cfg.Room.Size*g.store.ShrinkFactor()/2 - 0.5
}

// doorPosition returns the exit, which sits on the +z wall and moves with it.
func (g *Game) doorPosition() core.Vec3 {
	return core.V3(0, g.cfg.Room.DoorHeight, g.cfg.Room.Size*g.store.ShrinkFactor()/2-0.3)
}

func (g *Game) movePlayer(in core.InputFrame, delta float64) {
	pc := g.cfg.Player
	p := &g.player

	x, z := in.Axis()
	if dir := core.V3(x, 0, z); dir.Len() > 0 {
		speed := pc.MoveSpeed * g.store.SpeedMultiplier() * delta
		p.Pos = p.Pos.Add(dir.Normalize().Scale(speed))
	}

	if in.Has(core.ActionJump) && p.Grounded {
		p.VelY = pc.JumpForce
		p.Grounded = false
	}
	if !p.Grounded {
		p.VelY -= pc.Gravity * delta
		p.Pos.Y += p.VelY * delta
		if p.Pos.Y <= pc.EyeHeight {
			p.Pos.Y = pc.EyeHeight
			p.VelY = 0
			p.Grounded = true
		}
	}

	bound := g.roomBound()
	p.Pos.X = core.ClampF(p.Pos.X, -bound, bound)
	p.Pos.Z = core.ClampF(p.Pos.Z, -bound, bound)
	g.store.SetPlayerPosition(p.Pos)
}

// moveEnemies chases the player and applies hits. Frozen enemies still hit.
func (g *Game) moveEnemies(delta float64) {
	ec := g.cfg.Enemies
	frozen := g.store.EnemiesFrozen()
	speed := ec.Speed * delta * g.store.TimeScale()
	bound := g.roomBound()
	cooldown := ms(ec.HitCooldownMS)
	now := g.clock.Now()

	for i := range g.enemies {
		e := &g.enemies[i]

		if !frozen {
			target := g.player.Pos
			target.Y -= 0.5
			if dir := target.Sub(e.Pos); dir.Len() > 0 {
				e.Pos = e.Pos.Add(dir.Normalize().Scale(speed))
			}
			e.Pos.X = core.ClampF(e.Pos.X, -bound, bound)
			e.Pos.Z = core.ClampF(e.Pos.Z, -bound, bound)
			e.Pos.Y = core.ClampF(e.Pos.Y, ec.MinY, ec.MaxY)
		}

		if core.Distance(e.Pos, g.player.Pos) >= ec.HitRadius || now.Sub(e.LastHit) <= cooldown {
			continue
		}
		e.LastHit = now
		g.store.TakeDamage()
		g.emit(core.EventHit, e.ID)
		if push := e.Pos.Sub(g.player.Pos); push.Len() > 0 {
			e.Pos = e.Pos.Add(push.Normalize().Scale(ec.Pushback))
		}
		if g.store.Phase() != gamestate.PhasePlaying {
			return
		}
	}
}

func (g *Game) collectPowerUps() {
	radius := g.cfg.PowerUps.PickupRadius
	for _, pu := range g.powerUps {
		if g.store.PowerUpCollected(pu.ID) || core.Distance(g.player.Pos, pu.Pos) >= radius {
			continue
		}
		if g.store.CollectPowerUp(pu.Kind, pu.ID) {
			g.emit(core.EventPowerUp, string(pu.Kind))
		}
	}
}

func (g *Game) collectMaterials() {
	radius := g.cfg.Objective.PickupRadius
	for _, m := range g.materials {
		if g.store.MaterialCollected(m.ID) || core.Distance(g.player.Pos, m.Pos) >= radius {
			continue
		}
		if g.store.CollectMaterial(m.ID) {
			g.emit(core.EventCollected, m.ID)
		}
	}
}

// useStations opens the nearest unfinished task in reach when Interact is pressed.
func (g *Game) useStations(in core.InputFrame) {
	if !in.Has(core.ActionInteract) {
		return
	}

	best := -1
	bestDist := g.cfg.Objective.InteractRadius
	for i, st := range g.stations {
		if t, ok := g.store.Task(st.TaskID); !ok || t.Completed {
			continue
		}
		if d := core.Distance(g.player.Pos, st.Pos); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return
	}

	st := g.stations[best]
	if !g.store.StartTask(st.TaskID) {
		return
	}
	ch, err := minigame.New(st.Kind, g.rng)
	if err != nil {
		g.logger.Error("cannot open challenge", "task", st.TaskID, "err", err)
		g.store.CancelTask()
		return
	}
	g.challenge = ch
	g.emit(core.EventTaskStarted, st.TaskID)
}

func (g *Game) checkDoor() {
	if !g.store.AllCollected() {
		return
	}
	if core.Distance(g.player.Pos, g.doorPosition()) < g.cfg.Room.DoorRadius {
		g.store.EndGame(true)
	}
}
