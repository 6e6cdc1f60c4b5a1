package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Stats are the locomotion constants a physical actor is configured with.
type Stats struct {
	TurnRate      float64 // degrees per tick
	WalkSpeed     float64
	RunSpeed      float64
	SwimSpeed     float64
	BoundSpeed    float64
	MinRunningGee float64
	MinWalkingGee float64
}

// StateMachine is the physical actor's behaviour FSM.
type StateMachine interface {
	// TimeAtCurrentState is how long, in simulated seconds, the FSM has been in its current state.
	TimeAtCurrentState() float64
	// Events lists the names of the events available from the current state.
	Events() []string
	// RunEvent fires the named event.
	RunEvent(name string)
}

// Body is the physical actor a Container drives. It is owned by the host and
// must only be touched while the owning Source reports it as loaded.
type Body interface {
	Name() string

	// Transform.
	WorldPosition() mgl64.Vec3
	Rotation() mgl64.Quat
	SetRotation(q mgl64.Quat)
	Up() mgl64.Vec3

	// Rigid body.
	BodyPosition() mgl64.Vec3
	MovePosition(p mgl64.Vec3)

	Stats() Stats

	JetpackDeployed() bool
	ToggleJetpack()
	OnLadder() bool
	ReleaseLadder()
	WaterContact() bool
	GroundContact() bool

	// Ragdoll reports the uncontrolled physical state.
	Ragdoll() bool
	CanRecover() bool
	FSM() StateMachine

	// Animation host.
	CrossFade(clip string)
	ClipEnabled(clip string) bool
}

// Source is the host-side handle a Container (re)binds to on Reload.
type Source interface {
	ID() uuid.UUID
	IsLoaded() bool
	Body() Body
}

// Key is a manual movement key tracked for break-free.
type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyRollLeft
	KeyRollRight
)

// BreakFreeKeys are the six keys that hand an ordered actor back to the player.
var BreakFreeKeys = [...]Key{KeyForward, KeyBack, KeyLeft, KeyRight, KeyRollLeft, KeyRollRight}

// World exposes the per-tick environment shared by every Container.
type World interface {
	// ReferenceBody names the body the simulation currently treats as its main frame.
	ReferenceBody() string
	// DeltaTime is the elapsed simulated time of the current tick.
	DeltaTime() float64
	// ActiveActor is the actor under direct player control, if any.
	ActiveActor() (uuid.UUID, bool)
	KeyPressed(k Key) bool
}
