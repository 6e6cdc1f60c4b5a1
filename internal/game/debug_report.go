package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/Garsondee/Eva-Sense/internal/sim"
	"github.com/atotto/clipboard"
	"github.com/go-gl/mathgl/mgl64"
)

// actorDebugReport renders one actor's state and its last lastTicks of sim
// log history as plain text suitable for pasting into a bug report.
func actorDebugReport(s *sim.Sim, a *sim.Actor, lastTicks int) string {
	if a == nil {
		return ""
	}
	if lastTicks <= 0 {
		lastTicks = 300
	}

	toTick := s.Tick()
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	c := a.Container
	k := a.Kerbal
	pos := k.WorldPosition()

	var b strings.Builder
	fmt.Fprintf(&b, "--- EvaSense debug report ---\n")
	fmt.Fprintf(&b, "body=%s gee=%.2f tick_range=[%d..%d]\n", s.World.ReferenceBody(), s.GeeForce, fromTick, toTick)
	fmt.Fprintf(&b, "actor=%s id=%s loaded=%v selected=%v helmet=%v\n",
		a.Label, c.ID(), c.Loaded(), c.Selected(), c.HelmetOn())
	fmt.Fprintf(&b, "mode=%s animation=%s clip=%s fsm=%q t_state=%.2f\n",
		c.Mode(), c.Animation(), k.Playing(), k.StateMachine().State(), k.StateMachine().TimeAtCurrentState())
	fmt.Fprintf(&b, "pos=(%.2f,%.2f,%.2f) heading=%.0f ragdoll=%v ground=%v water=%v jetpack=%v\n",
		pos.X(), pos.Y(), pos.Z(), headingDegrees(k.Rotation()),
		k.Ragdoll(), k.GroundContact(), k.WaterContact(), k.JetpackDeployed())

	b.WriteString("strategies:\n")
	if id, ok := a.Formation.Assigned(); ok {
		leader := "<unknown>"
		for _, o := range s.Actors {
			if o.Kerbal.ID() == id {
				leader = o.Label
			}
		}
		fmt.Fprintf(&b, "  follow: leader=%s present=%v", leader, a.Formation.HasLeader())
		if slot, ok := a.Formation.Slot(); ok {
			fmt.Fprintf(&b, " slot=(%.1f,%.1f) dSlot=%.2f", slot.X(), slot.Z(), slot.Sub(pos).Len())
		}
		b.WriteByte('\n')
	}
	if a.Patrol.Len() > 0 {
		fmt.Fprintf(&b, "  patrol: body=%s points=%d running=%v", a.Patrol.ReferenceBody(), a.Patrol.Len(), a.Patrol.AllowRunning())
		if cur, ok := a.Patrol.Current(); ok {
			fmt.Fprintf(&b, " next=(%.1f,%.1f)", cur.X(), cur.Z())
		}
		b.WriteByte('\n')
	}
	if c.Mode() == locomotion.ModeOrder {
		t := a.Order.Target()
		fmt.Fprintf(&b, "  order: target=(%.1f,%.1f) running=%v dTarget=%.2f\n",
			t.X(), t.Z(), a.Order.AllowRunning(), t.Sub(pos).Len())
	}

	b.WriteString("events:\n")
	n := 0
	for _, e := range s.SimLog.FilterActor(a.Label) {
		if e.Tick < fromTick || e.Tick > toTick || e.Category == "move" {
			continue
		}
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteByte('\n')
		n++
	}
	if n == 0 {
		b.WriteString("  (none in range)\n")
	}
	return b.String()
}

// headingDegrees is the compass heading of q's forward axis on the X/Z plane.
func headingDegrees(q mgl64.Quat) float64 {
	fwd := q.Rotate(mgl64.Vec3{0, 0, 1})
	deg := math.Atan2(fwd.X(), fwd.Z()) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// copyDebugReport puts the selected actor's report on the system clipboard.
func (g *Game) copyDebugReport() {
	a := g.inspector.selected
	if a == nil {
		return
	}
	report := actorDebugReport(g.sim, a, 0)
	if err := clipboard.WriteAll(report); err != nil {
		g.log.Warn().Err(err).Str("kerbal", a.Label).Msg("clipboard unavailable")
		return
	}
	g.thoughtLog.Add(g.sim.Tick(), a.Label, "lifecycle", "debug report copied")
}
