package nav

import "github.com/go-gl/mathgl/mgl64"

// DefaultOrderStop is the squared distance at which an order is complete.
const DefaultOrderStop = 0.8

// Order is a one-shot move to a destination, shifted by a per-actor offset so
// a group sent to one point does not pile up.
type Order struct {
	destination  mgl64.Vec3
	offset       mgl64.Vec3
	allowRunning bool
	stopSqr      float64
}

func NewOrder() *Order {
	return &Order{stopSqr: DefaultOrderStop}
}

// Issue sets a new destination. The caller switches the actor to order mode.
func (o *Order) Issue(destination, offset mgl64.Vec3, allowRunning bool) {
	o.destination = destination
	o.offset = offset
	o.allowRunning = allowRunning
}

// Target is the final world position the actor walks to.
func (o *Order) Target() mgl64.Vec3 { return o.destination.Add(o.offset) }

func (o *Order) SetAllowRunning(v bool) { o.allowRunning = v }

func (o *Order) AllowRunning() bool { return o.allowRunning }

func (o *Order) SetStopDistance(sqr float64) {
	if sqr > 0 {
		o.stopSqr = sqr
	}
}

func (o *Order) NextTarget(move mgl64.Vec3) mgl64.Vec3 {
	return move.Add(o.Target())
}

func (o *Order) CheckDistance(sqrDist float64) bool {
	return sqrDist < o.stopSqr
}
