package sim

import (
	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// FSM states of a simulated kerbal.
const (
	StateIdle       = "Idle (Grounded)"
	StateRagdoll    = "Ragdoll"
	StateRecovering = "Recover"
)

// recoverDuration is how long the get-up animation takes before control returns.
const recoverDuration = 0.5

type transition struct {
	event string
	to    string
}

// FSM is a minimal behaviour state machine with the events the governor uses.
type FSM struct {
	state   string
	elapsed float64
	table   map[string][]transition
	onEnter func(state string)
	fired   []string
}

func newFSM(onEnter func(string)) *FSM {
	return &FSM{
		state: StateIdle,
		table: map[string][]transition{
			StateIdle:       {{"Knockout", StateRagdoll}},
			StateRagdoll:    {{"Ragdoll Tick", StateRagdoll}, {locomotion.RecoverEvent, StateRecovering}},
			StateRecovering: {{"Recover Complete", StateIdle}},
		},
		onEnter: onEnter,
	}
}

func (f *FSM) State() string { return f.state }

func (f *FSM) TimeAtCurrentState() float64 { return f.elapsed }

func (f *FSM) Events() []string {
	ts := f.table[f.state]
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.event
	}
	return names
}

// RunEvent fires name if the current state offers it; otherwise it is ignored.
func (f *FSM) RunEvent(name string) {
	for _, t := range f.table[f.state] {
		if t.event != name {
			continue
		}
		f.fired = append(f.fired, name)
		if t.to != f.state {
			f.state = t.to
			f.elapsed = 0
			if f.onEnter != nil {
				f.onEnter(t.to)
			}
		}
		return
	}
}

// Fired returns every event run so far, oldest first.
func (f *FSM) Fired() []string { return f.fired }

func (f *FSM) step(dt float64) {
	f.elapsed += dt
	if f.state == StateRecovering && f.elapsed >= recoverDuration {
		f.RunEvent("Recover Complete")
	}
}

// Kerbal is a simulated physical actor. It plays both the host-side Source
// and the Body the governor drives.
type Kerbal struct {
	id     uuid.UUID
	name   string
	loaded bool

	pos   mgl64.Vec3
	rot   mgl64.Quat
	stats locomotion.Stats

	jetpack    bool
	ladder     bool
	water      bool
	ground     bool
	ragdoll    bool
	canRecover bool

	fsm *FSM

	// Animation host: the clip requested last in a tick reports enabled
	// blendTicks steps later.
	requested  string
	pending    string
	playing    string
	blendLeft  int
	blendTicks int
}

// NewKerbal creates a loaded, grounded kerbal at pos facing +Z.
func NewKerbal(id uuid.UUID, name string, pos mgl64.Vec3, stats locomotion.Stats, blendTicks int) *Kerbal {
	k := &Kerbal{
		id:         id,
		name:       name,
		loaded:     true,
		pos:        pos,
		rot:        mgl64.QuatIdent(),
		stats:      stats,
		ground:     true,
		canRecover: true,
		blendTicks: blendTicks,
		playing:    locomotion.ClipIdle,
		pending:    locomotion.ClipIdle,
		requested:  locomotion.ClipIdle,
	}
	k.fsm = newFSM(k.enterState)
	return k
}

func (k *Kerbal) enterState(state string) {
	k.ragdoll = state == StateRagdoll
	k.ground = state != StateRagdoll
}

// Source.

func (k *Kerbal) ID() uuid.UUID             { return k.id }
func (k *Kerbal) IsLoaded() bool            { return k.loaded }
func (k *Kerbal) Body() locomotion.Body     { return k }
func (k *Kerbal) SetLoaded(loaded bool)     { k.loaded = loaded }
func (k *Kerbal) Name() string              { return k.name }
func (k *Kerbal) WorldPosition() mgl64.Vec3 { return k.pos }
func (k *Kerbal) Rotation() mgl64.Quat      { return k.rot }
func (k *Kerbal) SetRotation(q mgl64.Quat)  { k.rot = q }
func (k *Kerbal) Up() mgl64.Vec3            { return mgl64.Vec3{0, 1, 0} }
func (k *Kerbal) BodyPosition() mgl64.Vec3  { return k.pos }
func (k *Kerbal) MovePosition(p mgl64.Vec3) { k.pos = p }
func (k *Kerbal) Stats() locomotion.Stats   { return k.stats }
func (k *Kerbal) JetpackDeployed() bool     { return k.jetpack }
func (k *Kerbal) ToggleJetpack()            { k.jetpack = !k.jetpack }
func (k *Kerbal) OnLadder() bool            { return k.ladder }
func (k *Kerbal) ReleaseLadder()            { k.ladder = false }
func (k *Kerbal) WaterContact() bool        { return k.water }
func (k *Kerbal) GroundContact() bool       { return k.ground }
func (k *Kerbal) Ragdoll() bool             { return k.ragdoll }
func (k *Kerbal) CanRecover() bool          { return k.canRecover }
func (k *Kerbal) FSM() locomotion.StateMachine {
	return k.fsm
}

// StateMachine exposes the concrete FSM for inspection.
func (k *Kerbal) StateMachine() *FSM { return k.fsm }

func (k *Kerbal) CrossFade(clip string) {
	k.requested = clip
	if k.blendTicks == 0 {
		k.pending, k.playing = clip, clip
	}
}

func (k *Kerbal) ClipEnabled(clip string) bool { return k.playing == clip }

// Playing returns the clip the host is currently showing.
func (k *Kerbal) Playing() string { return k.playing }

// Host-side environment controls.

func (k *Kerbal) SetWater(v bool)      { k.water = v }
func (k *Kerbal) SetJetpack(v bool)    { k.jetpack = v }
func (k *Kerbal) GrabLadder()          { k.ladder = true }
func (k *Kerbal) SetGround(v bool)     { k.ground = v }
func (k *Kerbal) SetCanRecover(v bool) { k.canRecover = v }

// Knockout throws the kerbal into ragdoll.
func (k *Kerbal) Knockout() { k.fsm.RunEvent("Knockout") }

// Step advances the host by dt: FSM timers and animation blending.
func (k *Kerbal) Step(dt float64) {
	k.fsm.step(dt)
	if k.requested != k.pending {
		k.pending = k.requested
		k.blendLeft = k.blendTicks
	}
	if k.blendLeft > 0 {
		k.blendLeft--
	}
	if k.blendLeft == 0 {
		k.playing = k.pending
	}
}
