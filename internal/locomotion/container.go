package locomotion

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNilStrategy = errors.New("locomotion: all three strategies are required")
	ErrNilWorld    = errors.New("locomotion: world is required")
)

// Telemetry receives governor events. metrics.Recorder satisfies it.
type Telemetry interface {
	ModeChanged(from, to Mode, reason string)
	Arrived(mode Mode)
	RecoveryTriggered()
}

type nopTelemetry struct{}

func (nopTelemetry) ModeChanged(Mode, Mode, string) {}
func (nopTelemetry) Arrived(Mode)                   {}
func (nopTelemetry) RecoveryTriggered()             {}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for mode transitions and recoveries.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Container) { c.log = l }
}

// WithTelemetry sets the sink for governor events.
func WithTelemetry(t Telemetry) Option {
	return func(c *Container) {
		if t != nil {
			c.telemetry = t
		}
	}
}

// Container wraps one simulated humanoid and governs its autonomous locomotion.
// It is not safe for concurrent use; Update is expected to run once per tick
// on the host's update loop, with commands issued between ticks.
type Container struct {
	id    uuid.UUID
	body  Body
	world World

	mode      Mode
	animation AnimationState

	strategies Strategies

	selected bool
	helmetOn bool
	loaded   bool

	log       zerolog.Logger
	telemetry Telemetry
}

// NewContainer binds a Container to src. The container starts unloaded if src does.
func NewContainer(src Source, world World, strategies Strategies, opts ...Option) (*Container, error) {
	if world == nil {
		return nil, ErrNilWorld
	}
	if !strategies.valid() {
		return nil, ErrNilStrategy
	}
	c := &Container{
		id:         src.ID(),
		world:      world,
		strategies: strategies,
		helmetOn:   true,
		log:        zerolog.Nop(),
		telemetry:  nopTelemetry{},
	}
	for _, o := range opts {
		o(c)
	}
	c.Reload(src)
	return c, nil
}

// Reload rebinds the container to the body src currently exposes. An unloaded
// source marks the container unloaded and the previous body is dropped.
func (c *Container) Reload(src Source) {
	if !src.IsLoaded() {
		c.loaded = false
		c.body = nil
		return
	}
	c.body = src.Body()
	c.loaded = c.body != nil
}

func (c *Container) ID() uuid.UUID { return c.id }

// Name returns the bound body's name, or "" while unloaded.
func (c *Container) Name() string {
	if !c.loaded {
		return ""
	}
	return c.body.Name()
}

func (c *Container) Mode() Mode { return c.mode }

// SetMode switches the active strategy. Takes effect on the next Update.
func (c *Container) SetMode(m Mode) { c.setMode(m, "command") }

func (c *Container) Selected() bool     { return c.selected }
func (c *Container) SetSelected(v bool) { c.selected = v }
func (c *Container) HelmetOn() bool     { return c.helmetOn }
func (c *Container) SetHelmetOn(v bool) { c.helmetOn = v }
func (c *Container) Loaded() bool       { return c.loaded }
func (c *Container) SetLoaded(v bool)   { c.loaded = v && c.body != nil }

// Animation returns the animation state most recently requested.
func (c *Container) Animation() AnimationState { return c.animation }

func (c *Container) Strategies() Strategies { return c.strategies }

func (c *Container) setMode(m Mode, reason string) {
	if c.mode == m {
		return
	}
	from := c.mode
	c.mode = m
	c.log.Debug().
		Str("actor", c.id.String()).
		Stringer("from", from).
		Stringer("to", m).
		Str("reason", reason).
		Msg("mode changed")
	c.telemetry.ModeChanged(from, m, reason)
}
