package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Eva-Sense/internal/config"
	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/Garsondee/Eva-Sense/internal/nav"
	"github.com/Garsondee/Eva-Sense/internal/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) (*Game, fakeKeyboard) {
	t.Helper()
	g, err := New(config.Default(), zerolog.Nop())
	require.NoError(t, err)
	kb := fakeKeyboard{}
	g.input = keyboardInput{pressed: kb.pressed}
	g.sim.World.SetInput(g.input)
	return g, kb
}

func mustActor(t *testing.T, g *Game, label string) *sim.Actor {
	t.Helper()
	a, ok := g.sim.Find(label)
	require.True(t, ok)
	return a
}

func TestNew_DemoCrew(t *testing.T) {
	g, _ := newTestGame(t)

	require.Len(t, g.sim.Actors, 4)
	assert.Equal(t, locomotion.ModeFollow, mustActor(t, g, "Bill").Container.Mode())
	assert.Equal(t, locomotion.ModeFollow, mustActor(t, g, "Bob").Container.Mode())
	assert.Equal(t, "Jeb", g.activeActor().Label)
}

func TestSteerActive_WalksPlayerKerbal(t *testing.T) {
	g, kb := newTestGame(t)
	jeb := mustActor(t, g, "Jeb")

	kb[ebiten.KeyW] = true
	for i := 0; i < 10; i++ {
		g.simTick()
	}
	assert.Greater(t, jeb.Kerbal.WorldPosition().Z(), 0.0)
	assert.InDelta(t, 0.0, jeb.Kerbal.WorldPosition().X(), 1e-9)
}

func TestSteerActive_BreaksFreeFromOrder(t *testing.T) {
	g, kb := newTestGame(t)
	jeb := mustActor(t, g, "Jeb")
	g.sim.Order(jeb, mgl64.Vec3{0, 0, 50}, false)
	g.simTick()

	kb[ebiten.KeyD] = true
	g.simTick()
	assert.Equal(t, locomotion.ModeNone, jeb.Container.Mode())

	entries := g.thoughtLog.Recent()
	require.NotEmpty(t, entries)
	assert.True(t, strings.HasSuffix(entries[len(entries)-1].Message, "(break free)"))
}

func TestSelectAndOrder(t *testing.T) {
	g, _ := newTestGame(t)
	val := mustActor(t, g, "Val")

	sx, sy := g.cam.worldToScreen(val.Kerbal.WorldPosition())
	hit := g.handleSelectClick(int(sx)+g.offX, int(sy)+g.offY, false)
	require.True(t, hit)
	assert.True(t, val.Container.Selected())
	assert.Equal(t, val, g.inspector.selected)

	n := g.sim.OrderSelected(mgl64.Vec3{20, 0, 20}, false)
	assert.Equal(t, 1, n)
	assert.Equal(t, locomotion.ModeOrder, val.Container.Mode())

	// Clicking empty ground clears the selection.
	assert.False(t, g.handleSelectClick(g.offX+2, g.offY+2, false))
	assert.False(t, val.Container.Selected())
}

func TestFollowActive_SlotsSelection(t *testing.T) {
	g, _ := newTestGame(t)
	val := mustActor(t, g, "Val")
	jeb := mustActor(t, g, "Jeb")
	val.Container.SetSelected(true)
	jeb.Container.SetSelected(true)

	g.followActive()

	assert.Equal(t, locomotion.ModeFollow, val.Container.Mode())
	assert.Equal(t, locomotion.ModeNone, jeb.Container.Mode(), "the leader never follows itself")
	id, ok := val.Formation.Leader()
	require.True(t, ok)
	assert.Equal(t, jeb.Kerbal.ID(), id)
}

func TestCycleActive_SkipsUnloaded(t *testing.T) {
	g, _ := newTestGame(t)
	g.sim.Unload(mustActor(t, g, "Bill"))

	g.cycleActive()
	assert.Equal(t, "Bob", g.activeActor().Label)
	g.cycleActive()
	assert.Equal(t, "Val", g.activeActor().Label)
	g.cycleActive()
	assert.Equal(t, "Jeb", g.activeActor().Label)
}

func TestAddPatrol(t *testing.T) {
	g, _ := newTestGame(t)
	route := nav.Route{Name: "loop", ReferenceBody: "Kerbin", Waypoints: []nav.Waypoint{{X: 12, Z: 6}, {X: 20, Z: 6}}}

	require.NoError(t, g.AddPatrol("Val", route))
	assert.Equal(t, locomotion.ModePatrol, mustActor(t, g, "Val").Container.Mode())
	assert.Error(t, g.AddPatrol("Nobody", route))
}

func TestDebugReport_IncludesStateAndEvents(t *testing.T) {
	g, _ := newTestGame(t)
	bill := mustActor(t, g, "Bill")
	for i := 0; i < 5; i++ {
		g.simTick()
	}
	g.sim.Unload(mustActor(t, g, "Jeb"))
	g.simTick()

	report := actorDebugReport(g.sim, bill, 0)
	assert.Contains(t, report, "actor=Bill")
	assert.Contains(t, report, "mode=none")
	assert.Contains(t, report, "(leader lost)")
	assert.Contains(t, report, "follow: leader=Jeb present=false")
	assert.Empty(t, actorDebugReport(g.sim, nil, 0))
}

func TestDebugReport_OnlyActorEventsInRange(t *testing.T) {
	g, _ := newTestGame(t)
	bill := mustActor(t, g, "Bill")
	for i := 0; i < 10; i++ {
		g.simTick()
	}
	g.sim.SimLog.Add(1, "Bill", "fsm", "event", "stale", 0)
	g.sim.SimLog.Add(9, "Bill", "fsm", "event", "recent", 0)
	g.sim.SimLog.Add(9, "Jeb", "fsm", "event", "someone else", 0)

	report := actorDebugReport(g.sim, bill, 3)
	assert.Contains(t, report, "tick_range=[8..10]")
	assert.Contains(t, report, "recent")
	assert.NotContains(t, report, "stale")
	assert.NotContains(t, report, "someone else")
	assert.NotContains(t, report, "spawn")
}

func TestLastTransition(t *testing.T) {
	g, _ := newTestGame(t)
	g.sim.SimLog = sim.NewSimLog(false)
	assert.Equal(t, "last: -", g.lastTransition())

	g.sim.SimLog.Add(4, "Bob", "mode", "change", "follow → none (leader lost)", 0)
	g.sim.SimLog.Add(5, "Bob", "anim", "change", "walk → idle", 0)
	assert.Equal(t, "last: T=4 Bob follow → none (leader lost)", g.lastTransition())
}

func TestHeadingDegrees(t *testing.T) {
	assert.InDelta(t, 0.0, headingDegrees(mgl64.QuatIdent()), 1e-6)
	east := locomotion.LookRotation(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 90.0, headingDegrees(east), 1e-6)
}
