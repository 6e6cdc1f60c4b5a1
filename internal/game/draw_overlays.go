package game

import (
	"image"
	"image/color"

	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/Garsondee/Eva-Sense/internal/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func imageRect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

// drawOverlays draws each loaded actor's current navigation intent: the
// formation slot it is holding, its patrol loop, or its order target.
func (g *Game) drawOverlays(dst *ebiten.Image) {
	for _, a := range g.sim.Actors {
		if !a.Container.Loaded() {
			continue
		}
		switch a.Container.Mode() {
		case locomotion.ModeFollow:
			g.drawFormationSlot(dst, a)
		case locomotion.ModePatrol:
			g.drawPatrolRoute(dst, a)
		case locomotion.ModeOrder:
			g.drawOrderTarget(dst, a)
		}
	}
}

// screenPoint converts a world point to coordinates on dst.
func (g *Game) screenPoint(dst *ebiten.Image, p mgl64.Vec3) (float32, float32) {
	sx, sy := g.cam.worldToScreen(p)
	b := dst.Bounds().Min
	return float32(b.X) + float32(sx), float32(b.Y) + float32(sy)
}

// drawFormationSlot renders a ghost circle at the slot and a faint tether to it.
func (g *Game) drawFormationSlot(dst *ebiten.Image, a *sim.Actor) {
	slot, ok := a.Formation.Slot()
	if !ok {
		return
	}
	col := color.RGBA{R: 90, G: 200, B: 120, A: 110}
	x, y := g.screenPoint(dst, a.Kerbal.WorldPosition())
	sx, sy := g.screenPoint(dst, slot)
	vector.StrokeLine(dst, x, y, sx, sy, 1, col, true)
	vector.StrokeCircle(dst, sx, sy, float32(kerbalRadius*g.cam.zoom), 1, col, true)
}

func (g *Game) drawPatrolRoute(dst *ebiten.Image, a *sim.Actor) {
	pts := a.Patrol.Points()
	if len(pts) == 0 {
		return
	}
	col := color.RGBA{R: 200, G: 170, B: 70, A: 90}
	if a.Patrol.ReferenceBody() != g.sim.World.ReferenceBody() {
		col = color.RGBA{R: 120, G: 120, B: 120, A: 70}
	}
	for i, p := range pts {
		x0, y0 := g.screenPoint(dst, p)
		x1, y1 := g.screenPoint(dst, pts[(i+1)%len(pts)])
		vector.StrokeLine(dst, x0, y0, x1, y1, 1, col, true)
		vector.FillRect(dst, x0-2, y0-2, 4, 4, col, false)
	}
	if cur, ok := a.Patrol.Current(); ok {
		x, y := g.screenPoint(dst, cur)
		vector.StrokeCircle(dst, x, y, 5, 1.5, color.RGBA{R: 240, G: 210, B: 90, A: 200}, true)
	}
}

// drawOrderTarget draws a cross at the destination and a line to it.
func (g *Game) drawOrderTarget(dst *ebiten.Image, a *sim.Actor) {
	col := color.RGBA{R: 90, G: 150, B: 240, A: 150}
	if a.Order.AllowRunning() {
		col = color.RGBA{R: 160, G: 110, B: 240, A: 150}
	}
	x, y := g.screenPoint(dst, a.Kerbal.WorldPosition())
	tx, ty := g.screenPoint(dst, a.Order.Target())
	vector.StrokeLine(dst, x, y, tx, ty, 1, col, true)
	vector.StrokeLine(dst, tx-5, ty-5, tx+5, ty+5, 2, col, true)
	vector.StrokeLine(dst, tx-5, ty+5, tx+5, ty-5, 2, col, true)
}
