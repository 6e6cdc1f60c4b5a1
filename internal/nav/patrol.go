package nav

import "github.com/go-gl/mathgl/mgl64"

// DefaultPatrolStop is the squared distance at which a waypoint counts as reached.
const DefaultPatrolStop = 0.3

// Patrol walks a looping route of waypoints on one reference body.
type Patrol struct {
	referenceBody string
	points        []mgl64.Vec3
	index         int
	allowRunning  bool
	stopSqr       float64
}

func NewPatrol() *Patrol {
	return &Patrol{stopSqr: DefaultPatrolStop}
}

// SetRoute replaces the route and restarts it from the first waypoint.
func (p *Patrol) SetRoute(r Route) {
	p.referenceBody = r.ReferenceBody
	p.points = append(p.points[:0], r.Points()...)
	p.allowRunning = r.AllowRunning
	p.index = 0
}

// Add appends a waypoint. The first waypoint pins the route to body.
func (p *Patrol) Add(body string, point mgl64.Vec3) {
	if len(p.points) == 0 {
		p.referenceBody = body
	}
	p.points = append(p.points, point)
}

func (p *Patrol) Clear() {
	p.points = p.points[:0]
	p.index = 0
	p.referenceBody = ""
}

func (p *Patrol) ReferenceBody() string { return p.referenceBody }

func (p *Patrol) Len() int { return len(p.points) }

// Points returns a copy of the route.
func (p *Patrol) Points() []mgl64.Vec3 {
	return append([]mgl64.Vec3(nil), p.points...)
}

// Current returns the waypoint being walked to.
func (p *Patrol) Current() (mgl64.Vec3, bool) {
	if len(p.points) == 0 {
		return mgl64.Vec3{}, false
	}
	return p.points[p.index], true
}

func (p *Patrol) SetAllowRunning(v bool) { p.allowRunning = v }

func (p *Patrol) AllowRunning() bool { return p.allowRunning }

func (p *Patrol) SetStopDistance(sqr float64) {
	if sqr > 0 {
		p.stopSqr = sqr
	}
}

func (p *Patrol) NextTarget(move mgl64.Vec3) mgl64.Vec3 {
	wp, ok := p.Current()
	if !ok {
		return move
	}
	return move.Add(wp)
}

// CheckDistance advances to the next waypoint on arrival. An empty route is
// always arrived.
func (p *Patrol) CheckDistance(sqrDist float64) bool {
	if len(p.points) == 0 {
		return true
	}
	if sqrDist >= p.stopSqr {
		return false
	}
	p.index = (p.index + 1) % len(p.points)
	return true
}
