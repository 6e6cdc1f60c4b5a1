package nav

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// FormationType identifies the shape of a follow formation.
type FormationType int

const (
	FormationLine    FormationType = iota // side-by-side perpendicular to heading
	FormationWedge                        // V-shape, leader at point
	FormationColumn                       // single file behind leader
	FormationEchelon                      // diagonal line offset to one flank
)

func (ft FormationType) String() string {
	switch ft {
	case FormationLine:
		return "line"
	case FormationWedge:
		return "wedge"
	case FormationColumn:
		return "column"
	case FormationEchelon:
		return "echelon"
	default:
		return "unknown"
	}
}

// DefaultSlotSpacing is the gap in metres between adjacent formation slots.
const DefaultSlotSpacing = 2.0

// DefaultFormationStop is the squared distance at which a follower holds its slot.
const DefaultFormationStop = 3.0

// formationOffsets returns the local (forward, right) offsets for each slot
// in a formation of count members (slot 0 is the leader).
func formationOffsets(ft FormationType, count int, spacing float64) [][2]float64 {
	offsets := make([][2]float64, count)
	if count == 0 {
		return offsets
	}
	offsets[0] = [2]float64{0, 0}

	switch ft {
	case FormationLine:
		// Spread symmetrically: ...-2,-1,0,+1,+2,...
		for i := 1; i < count; i++ {
			side := float64((i+1)/2) * spacing
			if i%2 == 1 {
				side = -side
			}
			offsets[i] = [2]float64{0, side}
		}

	case FormationWedge:
		for i := 1; i < count; i++ {
			depth := float64((i+1)/2) * spacing
			side := float64((i+1)/2) * spacing
			if i%2 == 1 {
				side = -side
			}
			offsets[i] = [2]float64{-depth, side}
		}

	case FormationColumn:
		for i := 1; i < count; i++ {
			offsets[i] = [2]float64{-float64(i) * spacing, 0}
		}

	case FormationEchelon:
		for i := 1; i < count; i++ {
			offsets[i] = [2]float64{-float64(i) * spacing * 0.7, float64(i) * spacing * 0.7}
		}
	}
	return offsets
}

// SlotWorld converts a local (forward, right) offset into a world position
// given the leader's pose. Forward is the leader's +Z, right its +X.
func SlotWorld(leaderPos mgl64.Vec3, leaderRot mgl64.Quat, fwd, right float64) mgl64.Vec3 {
	local := mgl64.Vec3{right, 0, fwd}
	return leaderPos.Add(leaderRot.Rotate(local))
}

// Formation keeps an actor in a slot behind a leader found through a Registry.
type Formation struct {
	registry *Registry

	leader    uuid.UUID
	hasLeader bool

	shape   FormationType
	slot    int
	spacing float64
	stopSqr float64
}

// NewFormation creates a follow strategy with no leader.
func NewFormation(reg *Registry) *Formation {
	return &Formation{
		registry: reg,
		shape:    FormationColumn,
		slot:     1,
		spacing:  DefaultSlotSpacing,
		stopSqr:  DefaultFormationStop,
	}
}

// SetLeader makes the strategy follow id from slot in the given shape.
// Slot 0 is the leader's own position.
func (f *Formation) SetLeader(id uuid.UUID, shape FormationType, slot int) {
	f.leader = id
	f.hasLeader = true
	f.shape = shape
	if slot < 0 {
		slot = 0
	}
	f.slot = slot
}

func (f *Formation) ClearLeader() {
	f.leader = uuid.Nil
	f.hasLeader = false
}

// Leader returns the leader id while it is still registered.
func (f *Formation) Leader() (uuid.UUID, bool) {
	if !f.HasLeader() {
		return uuid.Nil, false
	}
	return f.leader, true
}

// Assigned returns the leader id last set, whether or not it is still present.
func (f *Formation) Assigned() (uuid.UUID, bool) {
	return f.leader, f.hasLeader
}

// HasLeader reports whether a leader is set and still present.
func (f *Formation) HasLeader() bool {
	if !f.hasLeader {
		return false
	}
	_, ok := f.registry.Lookup(f.leader)
	return ok
}

func (f *Formation) SetSpacing(spacing float64) {
	if spacing > 0 {
		f.spacing = spacing
	}
}

func (f *Formation) SetStopDistance(sqr float64) {
	if sqr > 0 {
		f.stopSqr = sqr
	}
}

// Slot returns the world position of this follower's slot.
func (f *Formation) Slot() (mgl64.Vec3, bool) {
	a, ok := f.registry.Lookup(f.leader)
	if !f.hasLeader || !ok {
		return mgl64.Vec3{}, false
	}
	offsets := formationOffsets(f.shape, f.slot+1, f.spacing)
	o := offsets[f.slot]
	return SlotWorld(a.WorldPosition(), a.Rotation(), o[0], o[1]), true
}

// NextTarget steers toward the slot, or leaves move untouched if the leader is gone.
func (f *Formation) NextTarget(move mgl64.Vec3) mgl64.Vec3 {
	slot, ok := f.Slot()
	if !ok {
		return move
	}
	return move.Add(slot)
}

func (f *Formation) CheckDistance(sqrDist float64) bool {
	return sqrDist < f.stopSqr
}

// AllowRunning is always true: followers keep pace with their leader.
func (f *Formation) AllowRunning() bool { return true }
