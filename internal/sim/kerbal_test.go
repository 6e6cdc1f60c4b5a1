package sim

import (
	"testing"

	"github.com/Garsondee/Eva-Sense/internal/config"
	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKerbal(blend int) *Kerbal {
	return NewKerbal(uuid.New(), "Jeb", mgl64.Vec3{}, config.Default().Actor.Stats(), blend)
}

func TestFSM_KnockoutAndRecover(t *testing.T) {
	k := newTestKerbal(0)
	fsm := k.StateMachine()
	assert.Equal(t, StateIdle, fsm.State())
	assert.True(t, k.GroundContact())

	k.Knockout()
	assert.Equal(t, StateRagdoll, fsm.State())
	assert.True(t, k.Ragdoll())
	assert.False(t, k.GroundContact())
	assert.Contains(t, fsm.Events(), locomotion.RecoverEvent)

	k.Step(0.5)
	assert.InDelta(t, 0.5, fsm.TimeAtCurrentState(), 1e-9)

	fsm.RunEvent(locomotion.RecoverEvent)
	assert.Equal(t, StateRecovering, fsm.State())
	assert.False(t, k.Ragdoll())
	assert.True(t, k.GroundContact())
	assert.Zero(t, fsm.TimeAtCurrentState())

	k.Step(recoverDuration)
	assert.Equal(t, StateIdle, fsm.State())
	assert.Equal(t, []string{"Knockout", locomotion.RecoverEvent, "Recover Complete"}, fsm.Fired())
}

func TestFSM_UnknownEventIgnored(t *testing.T) {
	k := newTestKerbal(0)
	k.StateMachine().RunEvent(locomotion.RecoverEvent)
	assert.Equal(t, StateIdle, k.StateMachine().State())
	assert.Empty(t, k.StateMachine().Fired())
}

func TestKerbal_CrossFadeBlends(t *testing.T) {
	k := newTestKerbal(2)
	require.Equal(t, locomotion.ClipIdle, k.Playing())

	k.CrossFade(locomotion.ClipWalk)
	assert.False(t, k.ClipEnabled(locomotion.ClipWalk))
	k.Step(0.02)
	assert.False(t, k.ClipEnabled(locomotion.ClipWalk))
	k.Step(0.02)
	assert.True(t, k.ClipEnabled(locomotion.ClipWalk))

	// Re-requesting the playing clip does not restart the blend.
	k.CrossFade(locomotion.ClipWalk)
	assert.True(t, k.ClipEnabled(locomotion.ClipWalk))
}

func TestKerbal_ImmediateWithoutBlend(t *testing.T) {
	k := newTestKerbal(0)
	k.CrossFade(locomotion.ClipRun)
	assert.Equal(t, locomotion.ClipRun, k.Playing())
}

func TestSnapshot_ReportsActors(t *testing.T) {
	ts := NewTestSim(
		WithKerbal("Jeb", 1, 0, 2),
		WithKerbal("Bill", 0, 0, 0),
	)
	ts.Unload(ts.MustActor("Bill"))
	ts.Step()

	snap := ts.Snapshot()
	require.Len(t, snap.Actors, 2)
	assert.Equal(t, 1, snap.Tick)
	assert.Equal(t, "Jeb", snap.Actors[0].Label)
	assert.Equal(t, mgl64.Vec3{1, 0, 2}, snap.Actors[0].Position)
	assert.Equal(t, "idle", snap.Actors[0].Animation)
	assert.True(t, snap.Actors[0].Loaded)
	assert.False(t, snap.Actors[1].Loaded)
}
