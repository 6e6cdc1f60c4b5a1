package sim

import (
	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/google/uuid"
)

// Input reports which manual movement keys are held.
type Input interface {
	KeyPressed(k locomotion.Key) bool
}

// HeldKeys is an Input backed by a set, used headless.
type HeldKeys map[locomotion.Key]bool

func (h HeldKeys) KeyPressed(k locomotion.Key) bool { return h[k] }

// World is the shared environment every container reads each tick.
type World struct {
	referenceBody string
	dt            float64
	active        uuid.UUID
	hasActive     bool
	input         Input
}

// NewWorld creates a world in referenceBody stepping dt seconds per tick.
func NewWorld(referenceBody string, dt float64) *World {
	return &World{referenceBody: referenceBody, dt: dt, input: HeldKeys{}}
}

func (w *World) ReferenceBody() string            { return w.referenceBody }
func (w *World) SetReferenceBody(body string)     { w.referenceBody = body }
func (w *World) DeltaTime() float64               { return w.dt }
func (w *World) SetDeltaTime(dt float64)          { w.dt = dt }
func (w *World) ActiveActor() (uuid.UUID, bool)   { return w.active, w.hasActive }
func (w *World) SetActiveActor(id uuid.UUID)      { w.active, w.hasActive = id, true }
func (w *World) ClearActiveActor()                { w.active, w.hasActive = uuid.Nil, false }
func (w *World) KeyPressed(k locomotion.Key) bool { return w.input.KeyPressed(k) }

// SetInput replaces the key source. nil means no keys are held.
func (w *World) SetInput(in Input) {
	if in == nil {
		in = HeldKeys{}
	}
	w.input = in
}
