package nav

import "github.com/go-gl/mathgl/mgl64"

// GroupOffsets spreads count actors around a shared destination using a
// formation shape, facing along heading. The first actor gets no offset.
func GroupOffsets(shape FormationType, count int, spacing float64, heading mgl64.Quat) []mgl64.Vec3 {
	offsets := formationOffsets(shape, count, spacing)
	out := make([]mgl64.Vec3, count)
	for i, o := range offsets {
		out[i] = SlotWorld(mgl64.Vec3{}, heading, o[0], o[1])
	}
	return out
}
