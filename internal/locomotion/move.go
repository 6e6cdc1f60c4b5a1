package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

// moveTowards turns the body toward dir at its turn rate and translates it by
// dir*speed. A deployed jetpack is stowed instead of moving.
func (c *Container) moveTowards(dir mgl64.Vec3, speed float64) {
	if dir.LenSqr() < epsilon {
		return
	}
	if c.body.JetpackDeployed() {
		c.body.ToggleJetpack()
		return
	}

	from := c.body.Rotation()
	to := LookRotation(dir, c.body.Up())
	c.body.SetRotation(RotateTowards(from, to, c.body.Stats().TurnRate))

	c.body.MovePosition(c.body.BodyPosition().Add(dir.Mul(speed)))
}

// LookRotation returns the rotation that maps +Z onto forward with +Y as close
// to up as possible.
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	if forward.LenSqr() < epsilon {
		return mgl64.QuatIdent()
	}
	f := forward.Normalize()
	right := up.Cross(f)
	if right.LenSqr() < epsilon {
		// Looking straight along up.
		return mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, f)
	}
	right = right.Normalize()
	u := f.Cross(right)
	m := mgl64.Mat3FromCols(right, u, f)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// RotateTowards rotates from toward to by at most maxDegrees.
func RotateTowards(from, to mgl64.Quat, maxDegrees float64) mgl64.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	angle := QuatAngle(from, to)
	if angle < epsilon || maxDegrees >= angle {
		return to.Normalize()
	}
	if maxDegrees <= 0 {
		return from
	}
	return mgl64.QuatSlerp(from, to, maxDegrees/angle).Normalize()
}

// QuatAngle is the angle in degrees between two orientations.
func QuatAngle(a, b mgl64.Quat) float64 {
	d := math.Abs(a.Normalize().Dot(b.Normalize()))
	if d > 1 {
		d = 1
	}
	return mgl64.RadToDeg(2 * math.Acos(d))
}

func normalize(v mgl64.Vec3) mgl64.Vec3 {
	if v.LenSqr() < epsilon {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}
