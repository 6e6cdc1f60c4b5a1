package locomotion

// Mode selects which navigation strategy drives an actor.
type Mode int

const (
	ModeNone   Mode = iota // no autonomous movement
	ModeFollow             // keep a formation slot on a leader
	ModePatrol             // walk a region-scoped route
	ModeOrder              // one-shot move to a destination
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeFollow:
		return "follow"
	case ModePatrol:
		return "patrol"
	case ModeOrder:
		return "order"
	default:
		return "unknown"
	}
}

// AnimationState is the locomotion category last requested from the animation host.
type AnimationState int

const (
	AnimationNone AnimationState = iota
	AnimationSwim
	AnimationRun
	AnimationWalk
	AnimationBoundSpeed
	AnimationIdle
)

func (a AnimationState) String() string {
	switch a {
	case AnimationNone:
		return "none"
	case AnimationSwim:
		return "swim"
	case AnimationRun:
		return "run"
	case AnimationWalk:
		return "walk"
	case AnimationBoundSpeed:
		return "bound"
	case AnimationIdle:
		return "idle"
	default:
		return "unknown"
	}
}
