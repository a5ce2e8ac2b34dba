package deadline

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/gamestate"
)

// Minimum screen size for the top-down view.
const (
	MinScreenW = 40
	MinScreenH = 14
)

// view maps world x/z onto screen cells. Cells are about twice as tall as
// they are wide, so x gets twice the scale of z.
type view struct {
	cx, cy int
	sx, sz float64
}

func newView(dst *core.Screen, roomSize float64) view {
	areaTop := 2
	areaH := dst.Height() - areaTop - 1
	unit := math.Min(float64(dst.Width()-1)/(2*roomSize), float64(areaH-1)/roomSize)
	return view{
		cx: dst.Width() / 2,
		cy: areaTop + areaH/2,
		sx: 2 * unit,
		sz: unit,
	}
}

func (v view) project(p core.Vec3) (int, int) {
	return v.cx + int(math.Round(p.X*v.sx)), v.cy + int(math.Round(p.Z*v.sz))
}

// Render draws the room from above, the HUD and any end-of-run overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg, core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2+1, hint, core.ColorGray)
		return
	}

	snap := g.store.Snapshot()
	if snap.Phase == gamestate.PhaseMenu {
		g.renderTitle(dst)
		return
	}

	v := newView(dst, g.cfg.Room.Size)
	g.renderHUD(dst, snap)
	g.renderRoom(dst, v, snap)
	g.renderItems(dst, v, snap)
	g.renderActors(dst, v, snap)
	g.renderOverlay(dst, snap)
}

func (g *Game) renderTitle(dst *core.Screen) {
	lines := []string{
		strings.ToUpper(g.title),
		"",
		"Finish your studies before the deadline.",
		g.objectiveHint(),
		"Dodge the distractions. Grab power-ups.",
		"",
		"Press ENTER to start",
	}
	top := (dst.Height() - len(lines)) / 2
	for i, line := range lines {
		c := core.ColorDefault
		switch i {
		case 0:
			c = core.ColorBrightYellow
		case len(lines) - 1:
			c = core.ColorBrightGreen
		}
		dst.DrawTextCentered(top+i, line, c)
	}
}

func (g *Game) objectiveHint() string {
	if g.rules.Objective == gamestate.ObjectiveMaterials {
		return fmt.Sprintf("Collect all %d study materials, then reach the door.", len(g.rules.Materials))
	}
	return fmt.Sprintf("Complete all %d tasks (press E at a desk), then reach the door.", len(g.rules.Tasks))
}

// renderHUD draws vitality, timer, progress, room size and active effects.
func (g *Game) renderHUD(dst *core.Screen, snap gamestate.Snapshot) {
	vitality, vc := vitalityText(snap)
	if snap.IsHit {
		vc = core.ColorBrightRed
	}
	dst.DrawTextColored(1, 0, vitality, vc)

	timer := "Time " + formatClock(snap.TimeRemaining)
	tc := core.ColorBrightWhite
	if snap.TimeRemaining <= 30 {
		tc = core.ColorBrightRed
	}
	dst.DrawTextCentered(0, timer, tc)

	label := "Tasks"
	if snap.Objective == gamestate.ObjectiveMaterials {
		label = "Materials"
	}
	progress := fmt.Sprintf("%s %d/%d", label, snap.MaterialsCollected, snap.TotalMaterials)
	pc := core.ColorWhite
	if snap.MaterialsCollected >= snap.TotalMaterials {
		pc = core.ColorBrightGreen
	}
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(progress)-1, 0, progress, pc)

	room := fmt.Sprintf("Room %d%%", int(math.Round(snap.ShrinkFactor*100)))
	rc := core.ColorGray
	if snap.ShrinkFactor < 0.8 {
		rc = core.ColorOrange
	}
	dst.DrawTextColored(1, 1, room, rc)

	if effects := effectsText(snap); effects != "" {
		dst.DrawTextColored(utf8.RuneCountInString(room)+3, 1, effects, core.ColorBrightCyan)
	}
}

func vitalityText(snap gamestate.Snapshot) (string, core.Color) {
	if snap.Vitality == gamestate.VitalityStress {
		const cells = 10
		filled := 0
		if snap.VitalityCapacity > 0 {
			filled = min(cells, snap.VitalityLevel*cells/snap.VitalityCapacity)
		}
		bar := strings.Repeat(string(StressFull), filled) + strings.Repeat(string(StressEmpty), cells-filled)
		c := core.ColorGreen
		switch {
		case filled >= 7:
			c = core.ColorRed
		case filled >= 4:
			c = core.ColorYellow
		}
		return fmt.Sprintf("Stress %s %d%%", bar, snap.VitalityLevel*100/max(snap.VitalityCapacity, 1)), c
	}
	hearts := strings.Repeat(string(HeartChar), snap.VitalityLevel) +
		strings.Repeat(string(EmptyHeart), max(snap.VitalityCapacity-snap.VitalityLevel, 0))
	return hearts, core.ColorRed
}

func effectsText(snap gamestate.Snapshot) string {
	var parts []string
	for _, p := range snap.PowerUps {
		if !p.Active {
			continue
		}
		left := p.Remaining(snap.TakenAt).Seconds()
		parts = append(parts, fmt.Sprintf("%s %.1fs", p.Effect, left))
	}
	return strings.Join(parts, "  ")
}

// formatClock renders seconds as m:ss, truncating fractions.
func formatClock(seconds float64) string {
	s := max(int(seconds), 0)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func (g *Game) renderRoom(dst *core.Screen, v view, snap gamestate.Snapshot) {
	half := g.cfg.Room.Size * snap.ShrinkFactor / 2
	x0, y0 := v.project(core.V3(-half, 0, -half))
	x1, y1 := v.project(core.V3(half, 0, half))

	wall := core.ColorGray
	if snap.ShrinkFactor < 0.8 {
		wall = core.ColorOrange
	}
	dst.DrawBox(core.NewRect(x0, y0, x1-x0+1, y1-y0+1), wall)

	door := core.ColorRed
	if snap.MaterialsCollected >= snap.TotalMaterials {
		door = core.ColorBrightGreen
	}
	dx, _ := v.project(g.doorPosition())
	for i := -1; i <= 1; i++ {
		dst.SetColored(dx+i, y1, DoorChar, door)
	}
}

func (g *Game) renderItems(dst *core.Screen, v view, snap gamestate.Snapshot) {
	for _, st := range g.stations {
		t, _ := g.store.Task(st.TaskID)
		x, y := v.project(st.Pos)
		switch {
		case t.Completed:
			dst.SetColored(x, y, DoneChar, core.ColorBrightGreen)
		case t.Active:
			dst.SetColored(x, y, StationChar, core.ColorBrightYellow)
		default:
			dst.SetColored(x, y, StationChar, core.ColorBrightBlue)
		}
	}
	for _, m := range g.materials {
		if g.store.MaterialCollected(m.ID) {
			continue
		}
		x, y := v.project(m.Pos)
		dst.SetColored(x, y, MaterialChar, core.ColorBrightMagenta)
	}
	for _, pu := range g.powerUps {
		if g.store.PowerUpCollected(pu.ID) {
			continue
		}
		x, y := v.project(pu.Pos)
		dst.SetColored(x, y, powerUpGlyph(pu.Kind), core.ColorBrightCyan)
	}
}

func (g *Game) renderActors(dst *core.Screen, v view, snap gamestate.Snapshot) {
	ec := core.ColorBrightRed
	if snap.EnemiesFrozen {
		ec = core.ColorCyan
	}
	for _, e := range g.enemies {
		x, y := v.project(e.Pos)
		dst.SetColored(x, y, enemyGlyph(e.ID), ec)
	}

	pc := core.ColorBrightYellow
	if snap.IsHit {
		pc = core.ColorRed
	}
	x, y := v.project(g.player.Pos)
	dst.SetColored(x, y, PlayerChar, pc)
}

// renderOverlay draws the end-of-run message.
func (g *Game) renderOverlay(dst *core.Screen, snap gamestate.Snapshot) {
	switch snap.Phase {
	case gamestate.PhaseWon:
		subtitle := fmt.Sprintf("Time left %s  |  Press R to play again", formatClock(snap.TimeRemaining))
		drawCenteredBox(dst, "YOU MADE IT!", subtitle, core.ColorBrightGreen)
	case gamestate.PhaseLost:
		subtitle := fmt.Sprintf("%d/%d done  |  Press R to try again", snap.MaterialsCollected, snap.TotalMaterials)
		drawCenteredBox(dst, LossMessage(snap), subtitle, core.ColorBrightRed)
	}
}

// LossMessage explains why a run was lost.
func LossMessage(snap gamestate.Snapshot) string {
	switch snap.Reason {
	case gamestate.ReasonDepleted:
		if snap.Vitality == gamestate.VitalityStress {
			return "Too stressed!"
		}
		return "You ran out of hearts!"
	case gamestate.ReasonTimeUp:
		return "Time's up!"
	case gamestate.ReasonRoomClosed:
		return "The room closed in on you!"
	case gamestate.ReasonAbandoned:
		return "You gave up."
	default:
		return "Game over"
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), c)

	titleX := boxX + (boxW-utf8.RuneCountInString(title))/2
	dst.DrawTextColored(titleX, boxY+1, title, c)

	subtitleX := boxX + (boxW-utf8.RuneCountInString(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
