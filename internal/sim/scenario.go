package sim

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Garsondee/Eva-Sense/internal/config"
	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/Garsondee/Eva-Sense/internal/nav"
	"github.com/go-gl/mathgl/mgl64"
)

// ScenarioEscort is the only built-in scenario: a leader walks to a rally
// point with two followers, a third kerbal patrols, a fourth is ordered away
// and later grabbed by the player, and one follower is knocked over mid-walk.
// Late in the run the leader unloads, stranding the followers.
const ScenarioEscort = "escort"

// RunStats summarises one scenario run.
type RunStats struct {
	Seed  int64
	Ticks int

	ModeChanges     int
	OrdersCompleted int
	LeadersLost     int
	BreakFrees      int
	Recoveries      int
	AnimChanges     int

	FirstOrderDoneTick int
	FinalModes         map[string]string
	Log                *SimLog
}

// RunScenario plays name for ticks ticks with the given seed.
func RunScenario(name string, cfg config.Config, seed int64, ticks int, opts ...Option) (RunStats, error) {
	if name != ScenarioEscort {
		return RunStats{}, fmt.Errorf("unsupported scenario %q (supported: %s)", name, ScenarioEscort)
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic scenario

	rally := mgl64.Vec3{30 + rng.Float64()*10, 0, 30 + rng.Float64()*10}
	knockAt := 20 + rng.Intn(40)
	grabAt := ticks / 2
	unloadAt := ticks * 3 / 4

	ts := NewTestSim(
		WithConfig(cfg),
		WithSimOptions(opts...),
		WithKerbal("Jeb", 0, 0, 0),
		WithKerbal("Bill", -2, 0, -2),
		WithKerbal("Bob", 2, 0, -2),
		WithKerbal("Val", 10, 0, 0),
		WithKerbal("Lodan", -10, 0, 0),
		WithOrder("Jeb", rally.X(), rally.Y(), rally.Z(), true),
		WithFollower("Bill", "Jeb", nav.FormationWedge, 1),
		WithFollower("Bob", "Jeb", nav.FormationWedge, 2),
		WithPatrol("Val", nav.Route{
			Name:          "perimeter",
			ReferenceBody: cfg.World.ReferenceBody,
			Waypoints:     []nav.Waypoint{{X: 10}, {X: 20}, {X: 20, Z: 10}, {X: 10, Z: 10}},
		}),
		WithOrder("Lodan", -40, 0, -40, false),
	)

	lodan := ts.MustActor("Lodan")
	keys := HeldKeys{}
	ts.World.SetInput(keys)

	for i := 0; i < ticks; i++ {
		switch ts.Tick() + 1 {
		case knockAt:
			ts.MustActor("Bill").Kerbal.Knockout()
		case grabAt:
			ts.World.SetActiveActor(lodan.Kerbal.ID())
			keys[locomotion.KeyForward] = true
		case grabAt + 1:
			delete(keys, locomotion.KeyForward)
		case unloadAt:
			ts.Unload(ts.MustActor("Jeb"))
		}
		ts.Step()
	}

	log := ts.SimLog
	stats := RunStats{
		Seed:               seed,
		Ticks:              ticks,
		ModeChanges:        log.CountCategory("mode", "change"),
		AnimChanges:        log.CountCategory("anim", "change"),
		FirstOrderDoneTick: -1,
		FinalModes:         map[string]string{},
		Log:                log,
	}
	stats.Recoveries = log.CountCategory("fsm", "recover")
	for _, e := range log.Filter("mode", "change") {
		switch {
		case strings.HasSuffix(e.Value, "(order complete)"):
			stats.OrdersCompleted++
			if stats.FirstOrderDoneTick < 0 {
				stats.FirstOrderDoneTick = e.Tick
			}
		case strings.HasSuffix(e.Value, "(break free)"):
			stats.BreakFrees++
		case strings.HasSuffix(e.Value, "(leader lost)"):
			stats.LeadersLost++
		}
	}
	for _, a := range ts.Actors {
		stats.FinalModes[a.Label] = a.Container.Mode().String()
	}
	return stats, nil
}
