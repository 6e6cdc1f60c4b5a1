package sim

import (
	"fmt"

	"github.com/Garsondee/Eva-Sense/internal/config"
	"github.com/Garsondee/Eva-Sense/internal/nav"
	"github.com/go-gl/mathgl/mgl64"
)

// TestSim is a headless simulation harness with deterministic setup, used by
// tests and the report CLI.
type TestSim struct {
	*Sim
	cfg     config.Config
	verbose bool
	simOpts []Option
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // config, gravity, verbosity — applied first
	simOptActor                        // spawn kerbals — applied after the sim exists
	simOptCommand                      // follow, patrol, order — applied after kerbals exist
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg config.Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg = cfg }}
}

// WithGeeForce sets local gravity in g.
func WithGeeForce(g float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg.World.GeeForce = g }}
}

// WithReferenceBody sets the body the world starts in.
func WithReferenceBody(body string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg.World.ReferenceBody = body }}
}

// WithBlendTicks sets how many ticks a cross-fade takes to show.
func WithBlendTicks(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg.World.BlendTicks = n }}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.verbose = v }}
}

// WithSimOptions passes options through to the underlying Sim.
func WithSimOptions(opts ...Option) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.simOpts = append(ts.simOpts, opts...) }}
}

// WithKerbal spawns a kerbal labelled label at (x,y,z).
func WithKerbal(label string, x, y, z float64) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		if _, err := ts.Spawn(label, mgl64.Vec3{x, y, z}); err != nil {
			panic(err)
		}
	}}
}

// WithFollower puts follower in formation behind leader.
func WithFollower(follower, leader string, shape nav.FormationType, slot int) SimOption {
	return SimOption{simOptCommand, func(ts *TestSim) {
		ts.Follow(ts.MustActor(follower), ts.MustActor(leader), shape, slot)
	}}
}

// WithOrder sends label to (x,y,z).
func WithOrder(label string, x, y, z float64, allowRunning bool) SimOption {
	return SimOption{simOptCommand, func(ts *TestSim) {
		ts.Order(ts.MustActor(label), mgl64.Vec3{x, y, z}, allowRunning)
	}}
}

// WithPatrol starts label on route.
func WithPatrol(label string, route nav.Route) SimOption {
	return SimOption{simOptCommand, func(ts *TestSim) {
		ts.StartPatrol(ts.MustActor(label), route)
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (config, gravity, verbosity)
//  2. Kerbals
//  3. Commands
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{cfg: config.Default()}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	simOpts := append([]Option{WithSimLog(NewSimLog(ts.verbose))}, ts.simOpts...)
	ts.Sim = New(ts.cfg, simOpts...)
	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptCommand {
			o.fn(ts)
		}
	}
	return ts
}

// MustActor returns the actor labelled label or panics.
func (ts *TestSim) MustActor(label string) *Actor {
	a, ok := ts.Find(label)
	if !ok {
		panic(fmt.Sprintf("sim: no kerbal labelled %q", label))
	}
	return a
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) { ts.Run(n) }

// SimSnapshot is a lightweight state summary at a tick.
type SimSnapshot struct {
	Tick   int
	Actors []ActorSnapshot
}

// ActorSnapshot is a copy of one actor's state.
type ActorSnapshot struct {
	Label     string
	Position  mgl64.Vec3
	Mode      string
	Animation string
	Clip      string
	Loaded    bool
}

// Snapshot returns the current state of all actors.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{Tick: ts.Tick()}
	for _, a := range ts.Actors {
		snap.Actors = append(snap.Actors, ActorSnapshot{
			Label:     a.Label,
			Position:  a.Kerbal.WorldPosition(),
			Mode:      a.Container.Mode().String(),
			Animation: a.Container.Animation().String(),
			Clip:      a.Kerbal.Playing(),
			Loaded:    a.Container.Loaded(),
		})
	}
	return snap
}
