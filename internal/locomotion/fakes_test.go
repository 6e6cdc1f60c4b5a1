package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

type fakeFSM struct {
	elapsed float64
	events  []string
	fired   []string
}

func (f *fakeFSM) TimeAtCurrentState() float64 { return f.elapsed }
func (f *fakeFSM) Events() []string            { return f.events }
func (f *fakeFSM) RunEvent(name string)        { f.fired = append(f.fired, name) }

type fakeBody struct {
	pos      mgl64.Vec3
	rot      mgl64.Quat
	stats    Stats
	jetpack  bool
	ladder   bool
	water    bool
	ground   bool
	ragdoll  bool
	recover  bool
	fsm      *fakeFSM
	lastClip string
	fades    int
	lagging  bool // host has not caught up with the last cross-fade
	toggles  int
	released int
}

func newFakeBody(pos mgl64.Vec3) *fakeBody {
	return &fakeBody{
		pos: pos,
		rot: mgl64.QuatIdent(),
		stats: Stats{
			TurnRate:      180,
			WalkSpeed:     2,
			RunSpeed:      4,
			SwimSpeed:     1,
			BoundSpeed:    3,
			MinRunningGee: 0.8,
			MinWalkingGee: 0.3,
		},
		ground: true,
		fsm:    &fakeFSM{},
	}
}

func (b *fakeBody) Name() string              { return "Jebediah" }
func (b *fakeBody) WorldPosition() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Rotation() mgl64.Quat      { return b.rot }
func (b *fakeBody) SetRotation(q mgl64.Quat)  { b.rot = q }
func (b *fakeBody) Up() mgl64.Vec3            { return mgl64.Vec3{0, 1, 0} }
func (b *fakeBody) BodyPosition() mgl64.Vec3  { return b.pos }
func (b *fakeBody) MovePosition(p mgl64.Vec3) { b.pos = p }
func (b *fakeBody) Stats() Stats              { return b.stats }
func (b *fakeBody) JetpackDeployed() bool     { return b.jetpack }
func (b *fakeBody) ToggleJetpack()            { b.jetpack = !b.jetpack; b.toggles++ }
func (b *fakeBody) OnLadder() bool            { return b.ladder }
func (b *fakeBody) ReleaseLadder()            { b.ladder = false; b.released++ }
func (b *fakeBody) WaterContact() bool        { return b.water }
func (b *fakeBody) GroundContact() bool       { return b.ground }
func (b *fakeBody) Ragdoll() bool             { return b.ragdoll }
func (b *fakeBody) CanRecover() bool          { return b.recover }
func (b *fakeBody) FSM() StateMachine         { return b.fsm }
func (b *fakeBody) CrossFade(clip string)     { b.lastClip = clip; b.fades++ }
func (b *fakeBody) ClipEnabled(clip string) bool {
	return !b.lagging && clip == b.lastClip
}

type fakeSource struct {
	id     uuid.UUID
	loaded bool
	body   *fakeBody
}

func (s *fakeSource) ID() uuid.UUID  { return s.id }
func (s *fakeSource) IsLoaded() bool { return s.loaded }
func (s *fakeSource) Body() Body     { return s.body }

type fakeWorld struct {
	ref    string
	dt     float64
	active uuid.UUID
	hasAct bool
	keys   map[Key]bool
}

func (w *fakeWorld) ReferenceBody() string { return w.ref }
func (w *fakeWorld) DeltaTime() float64    { return w.dt }
func (w *fakeWorld) ActiveActor() (uuid.UUID, bool) {
	return w.active, w.hasAct
}
func (w *fakeWorld) KeyPressed(k Key) bool { return w.keys[k] }

// fakeStrategy targets a fixed world point.
type fakeStrategy struct {
	target  mgl64.Vec3
	arrive  float64 // squared distance counted as arrived
	running bool
	leader  bool
	body    string
	calls   int
}

func (s *fakeStrategy) NextTarget(move mgl64.Vec3) mgl64.Vec3 {
	s.calls++
	return move.Add(s.target)
}
func (s *fakeStrategy) CheckDistance(sqrDist float64) bool { return sqrDist < s.arrive }
func (s *fakeStrategy) AllowRunning() bool                 { return s.running }
func (s *fakeStrategy) HasLeader() bool                    { return s.leader }
func (s *fakeStrategy) ReferenceBody() string              { return s.body }

type rig struct {
	c         *Container
	body      *fakeBody
	world     *fakeWorld
	formation *fakeStrategy
	patrol    *fakeStrategy
	order     *fakeStrategy
	events    *recordingTelemetry
}

type recordingTelemetry struct {
	changes    []string
	arrivals   []Mode
	recoveries int
}

func (r *recordingTelemetry) ModeChanged(from, to Mode, reason string) {
	r.changes = append(r.changes, from.String()+"->"+to.String()+":"+reason)
}
func (r *recordingTelemetry) Arrived(m Mode)     { r.arrivals = append(r.arrivals, m) }
func (r *recordingTelemetry) RecoveryTriggered() { r.recoveries++ }

func newRig() *rig {
	body := newFakeBody(mgl64.Vec3{0, 0, 0})
	src := &fakeSource{id: uuid.New(), loaded: true, body: body}
	r := &rig{
		body:      body,
		world:     &fakeWorld{ref: "Kerbin", dt: 0.02, keys: map[Key]bool{}},
		formation: &fakeStrategy{target: mgl64.Vec3{0, 0, 10}, arrive: 1, leader: true, running: true},
		patrol:    &fakeStrategy{target: mgl64.Vec3{0, 0, 10}, arrive: 1, body: "Kerbin"},
		order:     &fakeStrategy{target: mgl64.Vec3{0, 0, 10}, arrive: 1},
		events:    &recordingTelemetry{},
	}
	c, err := NewContainer(src, r.world, Strategies{
		Formation: r.formation,
		Patrol:    r.patrol,
		Order:     r.order,
	}, WithTelemetry(r.events))
	if err != nil {
		panic(err)
	}
	r.c = c
	return r
}
