package locomotion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

var up = mgl64.Vec3{0, 1, 0}

func TestLookRotation_MapsForward(t *testing.T) {
	for _, dir := range []mgl64.Vec3{{0, 0, 1}, {1, 0, 0}, {-1, 0, 0}, {0, 0, -1}, {1, 0, 1}} {
		q := LookRotation(dir, up)
		got := q.Rotate(mgl64.Vec3{0, 0, 1})
		assert.True(t, got.ApproxEqualThreshold(dir.Normalize(), 1e-6), "dir %v got %v", dir, got)
	}
}

func TestLookRotation_Degenerate(t *testing.T) {
	assert.Equal(t, mgl64.QuatIdent(), LookRotation(mgl64.Vec3{}, up))

	q := LookRotation(up, up)
	assert.True(t, q.Rotate(mgl64.Vec3{0, 0, 1}).ApproxEqualThreshold(up, 1e-6))
}

func TestRotateTowards_LimitsStep(t *testing.T) {
	from := mgl64.QuatIdent()
	to := LookRotation(mgl64.Vec3{1, 0, 0}, up) // 90 degrees of yaw

	step := RotateTowards(from, to, 30)
	assert.InDelta(t, 30, QuatAngle(from, step), 1e-6)

	assert.InDelta(t, 0, QuatAngle(to, RotateTowards(from, to, 120)), 1e-6)
	assert.InDelta(t, 0, QuatAngle(from, RotateTowards(from, to, 0)), 1e-6)
}

func TestMoveTowards(t *testing.T) {
	r := newRig()
	r.c.moveTowards(mgl64.Vec3{1, 0, 0}, 0.5)

	assert.True(t, r.body.pos.ApproxEqual(mgl64.Vec3{0.5, 0, 0}))
	heading := r.body.rot.Rotate(mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, 1, heading.X(), 1e-6)
}

func TestMoveTowards_ZeroDirectionIsNoop(t *testing.T) {
	r := newRig()
	r.body.jetpack = true
	r.c.moveTowards(mgl64.Vec3{}, 3)

	assert.Equal(t, mgl64.Vec3{}, r.body.pos)
	assert.Equal(t, 0, r.body.toggles)
}

func TestMoveTowards_TurnRateLimitsRotation(t *testing.T) {
	r := newRig()
	r.body.stats.TurnRate = 10
	r.c.moveTowards(mgl64.Vec3{-1, 0, 0}, 1)

	assert.InDelta(t, 10, QuatAngle(mgl64.QuatIdent(), r.body.rot), 1e-6)
	assert.False(t, math.IsNaN(r.body.pos.X()))
}
