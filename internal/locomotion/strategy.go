package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Strategy computes where an actor should go and when it has got there.
type Strategy interface {
	// NextTarget receives the negated world position of the actor and returns
	// the displacement toward the strategy's goal.
	NextTarget(move mgl64.Vec3) mgl64.Vec3
	// CheckDistance reports whether sqrDist counts as arrived.
	CheckDistance(sqrDist float64) bool
	AllowRunning() bool
}

// FollowStrategy is a Strategy bound to a leader that may disappear.
type FollowStrategy interface {
	Strategy
	HasLeader() bool
}

// PatrolStrategy is a Strategy that only applies inside one reference body.
type PatrolStrategy interface {
	Strategy
	ReferenceBody() string
}

// Strategies are the three navigation strategies a Container owns for its lifetime.
type Strategies struct {
	Formation FollowStrategy
	Patrol    PatrolStrategy
	Order     Strategy
}

func (s Strategies) valid() bool {
	return s.Formation != nil && s.Patrol != nil && s.Order != nil
}
