package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/Garsondee/Eva-Sense/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	inspW     = 420
	inspPad   = 6
	inspLineH = 15
	inspLines = 22 // raw view line cap
)

// Inspector holds the selected kerbal and view toggle state.
type Inspector struct {
	selected *sim.Actor
	rawView  bool // false = curated, true = debug report dump
}

// inspectorLines returns what the panel shows for a.
func (g *Game) inspectorLines(a *sim.Actor) []string {
	if g.inspector.rawView {
		lines := strings.Split(strings.TrimRight(actorDebugReport(g.sim, a, 120), "\n"), "\n")
		if len(lines) > inspLines {
			lines = append(lines[:inspLines-1], "...")
		}
		return lines
	}

	c := a.Container
	k := a.Kerbal
	pos := k.WorldPosition()
	lines := []string{
		fmt.Sprintf("[ %s ]", a.Label),
		fmt.Sprintf("mode:      %s", c.Mode()),
		fmt.Sprintf("animation: %s (%s)", c.Animation(), k.Playing()),
		fmt.Sprintf("fsm:       %s  %.1fs", k.StateMachine().State(), k.StateMachine().TimeAtCurrentState()),
		fmt.Sprintf("position:  %.1f, %.1f", pos.X(), pos.Z()),
		fmt.Sprintf("heading:   %.0f", headingDegrees(k.Rotation())),
	}
	var flags []string
	if !c.Loaded() {
		flags = append(flags, "UNLOADED")
	}
	if c.Selected() {
		flags = append(flags, "selected")
	}
	if k.Ragdoll() {
		flags = append(flags, "ragdoll")
	}
	if k.WaterContact() {
		flags = append(flags, "water")
	}
	if k.JetpackDeployed() {
		flags = append(flags, "jetpack")
	}
	if len(flags) > 0 {
		lines = append(lines, "flags:     "+strings.Join(flags, " "))
	}
	if slot, ok := a.Formation.Slot(); ok {
		lines = append(lines, fmt.Sprintf("slot:      %.1f, %.1f  d=%.1f", slot.X(), slot.Z(), slot.Sub(pos).Len()))
	}
	if cur, ok := a.Patrol.Current(); ok {
		lines = append(lines, fmt.Sprintf("waypoint:  %.1f, %.1f  of %d on %s", cur.X(), cur.Z(), a.Patrol.Len(), a.Patrol.ReferenceBody()))
	}
	t := a.Order.Target()
	lines = append(lines, fmt.Sprintf("order:     %.1f, %.1f  run=%v", t.X(), t.Z(), a.Order.AllowRunning()))
	lines = append(lines, "", "[I] raw view  [C] copy report")
	return lines
}

// drawInspector renders the selected kerbal's panel in the top-right corner
// of the playfield.
func (g *Game) drawInspector(screen *ebiten.Image) {
	a := g.inspector.selected
	if a == nil {
		return
	}
	lines := g.inspectorLines(a)

	w := float32(inspW)
	h := float32(len(lines)*inspLineH + inspPad*2)
	x := float32(g.offX+g.gameWidth) - w - 8
	y := float32(g.offY + 8)

	border := color.RGBA{R: 60, G: 80, B: 120, A: 255}
	vector.FillRect(screen, x, y, w, h, color.RGBA{R: 10, G: 12, B: 18, A: 230}, false)
	vector.StrokeRect(screen, x, y, w, h, 1.0, border, false)

	for i, l := range lines {
		col := color.RGBA{R: 210, G: 210, B: 210, A: 255}
		if i == 0 {
			col = modeColor(a.Container.Mode())
		}
		drawText(screen, l, int(x)+inspPad, int(y)+inspPad+i*inspLineH, col)
	}
}
