package sim

import (
	"fmt"

	"github.com/Garsondee/Eva-Sense/internal/config"
	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/Garsondee/Eva-Sense/internal/nav"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Actor pairs a simulated kerbal with the container governing it and the
// concrete strategies it owns.
type Actor struct {
	Label     string
	Kerbal    *Kerbal
	Container *locomotion.Container
	Formation *nav.Formation
	Patrol    *nav.Patrol
	Order     *nav.Order
}

// Sim is the headless host: it owns the world, every actor, and the tick loop.
type Sim struct {
	cfg       config.Config
	World     *World
	Registry  *nav.Registry
	Actors    []*Actor
	SimLog    *SimLog
	GeeForce  float64
	log       zerolog.Logger
	telemetry locomotion.Telemetry

	tick int
}

// Option configures a Sim.
type Option func(*Sim)

// WithLogger routes container logs to l.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Sim) { s.log = l }
}

// WithTelemetry attaches t to every container spawned afterwards.
func WithTelemetry(t locomotion.Telemetry) Option {
	return func(s *Sim) { s.telemetry = t }
}

// WithSimLog replaces the event log.
func WithSimLog(l *SimLog) Option {
	return func(s *Sim) { s.SimLog = l }
}

// New creates an empty simulation from cfg.
func New(cfg config.Config, opts ...Option) *Sim {
	s := &Sim{
		cfg:      cfg,
		World:    NewWorld(cfg.World.ReferenceBody, cfg.World.DeltaTime),
		Registry: nav.NewRegistry(),
		SimLog:   NewSimLog(false),
		GeeForce: cfg.World.GeeForce,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Spawn adds a loaded kerbal at pos and returns its actor.
func (s *Sim) Spawn(name string, pos mgl64.Vec3) (*Actor, error) {
	id := uuid.New()
	k := NewKerbal(id, name, pos, s.cfg.Actor.Stats(), s.cfg.World.BlendTicks)

	f := nav.NewFormation(s.Registry)
	f.SetSpacing(s.cfg.Nav.SlotSpacing)
	f.SetStopDistance(s.cfg.Nav.FormationStop)
	p := nav.NewPatrol()
	p.SetStopDistance(s.cfg.Nav.PatrolStop)
	o := nav.NewOrder()
	o.SetStopDistance(s.cfg.Nav.OrderStop)

	opts := []locomotion.Option{
		locomotion.WithLogger(s.log.With().Str("kerbal", name).Logger()),
		locomotion.WithTelemetry(&actorTelemetry{sim: s, label: name, next: s.telemetry}),
	}
	c, err := locomotion.NewContainer(k, s.World, locomotion.Strategies{
		Formation: f,
		Patrol:    p,
		Order:     o,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("spawning %s: %w", name, err)
	}

	a := &Actor{
		Label:     name,
		Kerbal:    k,
		Container: c,
		Formation: f,
		Patrol:    p,
		Order:     o,
	}
	s.Actors = append(s.Actors, a)
	s.Registry.Add(id, k)
	s.SimLog.Add(s.tick, name, "lifecycle", "spawn", fmt.Sprintf("at (%.1f,%.1f,%.1f)", pos.X(), pos.Y(), pos.Z()), 0)
	return a, nil
}

// Find returns the actor with the given label.
func (s *Sim) Find(label string) (*Actor, bool) {
	for _, a := range s.Actors {
		if a.Label == label {
			return a, true
		}
	}
	return nil, false
}

// Unload takes an actor out of the simulation without destroying it. Anyone
// following it loses their leader on the next tick.
func (s *Sim) Unload(a *Actor) {
	a.Kerbal.SetLoaded(false)
	a.Container.Reload(a.Kerbal)
	s.Registry.Remove(a.Kerbal.ID())
	s.SimLog.Add(s.tick, a.Label, "lifecycle", "unload", "", 0)
}

// Load brings an unloaded actor back.
func (s *Sim) Load(a *Actor) {
	a.Kerbal.SetLoaded(true)
	a.Container.Reload(a.Kerbal)
	s.Registry.Add(a.Kerbal.ID(), a.Kerbal)
	s.SimLog.Add(s.tick, a.Label, "lifecycle", "load", "", 0)
}

// Follow puts follower into formation behind leader.
func (s *Sim) Follow(follower, leader *Actor, shape nav.FormationType, slot int) {
	follower.Formation.SetLeader(leader.Kerbal.ID(), shape, slot)
	follower.Container.SetMode(locomotion.ModeFollow)
}

// Order sends a single actor to dest.
func (s *Sim) Order(a *Actor, dest mgl64.Vec3, allowRunning bool) {
	a.Order.Issue(dest, mgl64.Vec3{}, allowRunning)
	a.Container.SetMode(locomotion.ModeOrder)
}

// OrderSelected sends every selected actor to dest, spread in a line facing
// away from the group's centre.
func (s *Sim) OrderSelected(dest mgl64.Vec3, allowRunning bool) int {
	var sel []*Actor
	var centre mgl64.Vec3
	for _, a := range s.Actors {
		if a.Container.Selected() && a.Container.Loaded() {
			sel = append(sel, a)
			centre = centre.Add(a.Kerbal.WorldPosition())
		}
	}
	if len(sel) == 0 {
		return 0
	}
	centre = centre.Mul(1 / float64(len(sel)))
	heading := locomotion.LookRotation(dest.Sub(centre), mgl64.Vec3{0, 1, 0})

	offsets := nav.GroupOffsets(nav.FormationLine, len(sel), s.cfg.Nav.SlotSpacing, heading)
	for i, a := range sel {
		a.Order.Issue(dest, offsets[i], allowRunning)
		a.Container.SetMode(locomotion.ModeOrder)
	}
	return len(sel)
}

// StartPatrol loads route into a's patrol and switches it on.
func (s *Sim) StartPatrol(a *Actor, route nav.Route) {
	a.Patrol.SetRoute(route)
	a.Container.SetMode(locomotion.ModePatrol)
}

// actorTelemetry logs governor events for one actor and forwards them.
type actorTelemetry struct {
	sim   *Sim
	label string
	next  locomotion.Telemetry
}

func (t *actorTelemetry) ModeChanged(from, to locomotion.Mode, reason string) {
	t.sim.SimLog.Add(t.sim.tick, t.label, "mode", "change",
		fmt.Sprintf("%s → %s (%s)", from, to, reason), 0)
	if t.next != nil {
		t.next.ModeChanged(from, to, reason)
	}
}

func (t *actorTelemetry) Arrived(mode locomotion.Mode) {
	t.sim.SimLog.AddVerbose(t.sim.tick, t.label, "nav", "arrived", mode.String(), 0)
	if t.next != nil {
		t.next.Arrived(mode)
	}
}

func (t *actorTelemetry) RecoveryTriggered() {
	t.sim.SimLog.Add(t.sim.tick, t.label, "fsm", "recover", "", 0)
	if t.next != nil {
		t.next.RecoveryTriggered()
	}
}

// Tick returns the number of completed ticks.
func (s *Sim) Tick() int { return s.tick }

// Step advances the host, then runs every governor once, then logs changes.
func (s *Sim) Step() {
	s.tick++
	tick := s.tick

	prevAnims := make(map[uuid.UUID]locomotion.AnimationState, len(s.Actors))
	prevFired := make(map[uuid.UUID]int, len(s.Actors))
	for _, a := range s.Actors {
		id := a.Kerbal.ID()
		prevAnims[id] = a.Container.Animation()
		prevFired[id] = len(a.Kerbal.fsm.Fired())
	}

	// 1. HOST: timers and animation blending.
	for _, a := range s.Actors {
		if a.Kerbal.IsLoaded() {
			a.Kerbal.Step(s.World.DeltaTime())
		}
	}

	// 2. GOVERN.
	for _, a := range s.Actors {
		a.Container.Update(s.GeeForce)
	}

	// --- Post-tick logging ---
	for _, a := range s.Actors {
		id := a.Kerbal.ID()
		c := a.Container
		if c.Animation() != prevAnims[id] {
			s.SimLog.Add(tick, a.Label, "anim", "change",
				fmt.Sprintf("%s → %s", prevAnims[id], c.Animation()), 0)
		}
		for _, ev := range a.Kerbal.fsm.Fired()[prevFired[id]:] {
			s.SimLog.Add(tick, a.Label, "fsm", "event", ev, 0)
		}

		p := a.Kerbal.WorldPosition()
		s.SimLog.AddVerbose(tick, a.Label, "move", "position",
			fmt.Sprintf("(%.2f,%.2f,%.2f)", p.X(), p.Y(), p.Z()), 0)
	}
}

// Run advances n ticks.
func (s *Sim) Run(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the tick at which it held, or -1.
func (s *Sim) RunUntil(predicate func(*Sim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		s.Step()
		if predicate(s) {
			return s.tick
		}
	}
	return -1
}
