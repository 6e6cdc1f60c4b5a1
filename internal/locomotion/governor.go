package locomotion

const (
	// runSqrDist is the squared distance beyond which an actor may run.
	runSqrDist = 5.0
	// boundBoost speeds up low-gravity bounding.
	boundBoost = 1.25
)

// gait is a speed multiplier paired with the animation that represents it.
type gait struct {
	speed     float64
	animation AnimationState
}

// Update runs one tick of the governor. geeForce is the local gravity
// magnitude. Unloaded containers are left untouched.
func (c *Container) Update(geeForce float64) {
	if !c.loaded {
		return
	}

	c.recover()

	move := c.body.WorldPosition().Mul(-1)
	held := false
	switch c.mode {
	case ModeFollow:
		if c.strategies.Formation.HasLeader() {
			move = c.strategies.Formation.NextTarget(move)
		} else {
			c.setMode(ModeNone, "leader lost")
		}
	case ModePatrol:
		if c.strategies.Patrol.ReferenceBody() == c.world.ReferenceBody() {
			move = c.strategies.Patrol.NextTarget(move)
		} else {
			held = true
		}
	case ModeOrder:
		move = c.strategies.Order.NextTarget(move)
	}

	sqrDist := move.LenSqr()
	speed := c.world.DeltaTime()

	if c.body.OnLadder() {
		c.body.ReleaseLadder()
	}

	if c.breakFree() {
		return
	}

	g := c.selectGait(sqrDist, geeForce)
	speed *= g.speed
	c.Animate(g.animation, false)

	dir := normalize(move)

	strategy, ok := c.active()
	switch {
	case held:
		// Patrol belongs to another body: keep the mode, stand still.
		c.Animate(AnimationIdle, false)
	case ok:
		if strategy.CheckDistance(sqrDist) {
			c.Animate(AnimationIdle, false)
			c.telemetry.Arrived(c.mode)
			if c.mode == ModeOrder {
				c.setMode(ModeNone, "order complete")
			}
		} else if c.statedAnimationPlaying(g.animation) {
			c.moveTowards(dir, speed)
		}
	}

	if c.mode == ModeNone {
		c.Animate(AnimationIdle, false)
	}
}

// active returns the strategy selected by the current mode.
func (c *Container) active() (Strategy, bool) {
	switch c.mode {
	case ModeFollow:
		return c.strategies.Formation, true
	case ModePatrol:
		return c.strategies.Patrol, true
	case ModeOrder:
		return c.strategies.Order, true
	default:
		return nil, false
	}
}

// breakFree cancels an order when the player grabs the controls of this
// actor. It reports whether the tick must stop here.
func (c *Container) breakFree() bool {
	if c.mode != ModeOrder {
		return false
	}
	id, ok := c.world.ActiveActor()
	if !ok || id != c.id {
		return false
	}
	for _, k := range BreakFreeKeys {
		if c.world.KeyPressed(k) {
			c.setMode(ModeNone, "break free")
			return true
		}
	}
	return false
}

// selectGait picks the speed multiplier and animation for this tick, in
// priority order: water, jetpack, running, walking, bounding.
func (c *Container) selectGait(sqrDist, geeForce float64) gait {
	stats := c.body.Stats()
	switch {
	case c.body.WaterContact():
		return gait{stats.SwimSpeed, AnimationSwim}
	case c.body.JetpackDeployed():
		return gait{1, AnimationIdle}
	case sqrDist > runSqrDist && geeForce >= stats.MinRunningGee:
		if c.runningAllowed() {
			return gait{stats.RunSpeed, AnimationRun}
		}
		return gait{stats.WalkSpeed, AnimationWalk}
	case geeForce >= stats.MinWalkingGee:
		return gait{stats.WalkSpeed, AnimationWalk}
	default:
		return gait{stats.BoundSpeed * boundBoost, AnimationBoundSpeed}
	}
}

// runningAllowed lets followers and idle actors run freely; patrols and
// orders run only when configured to.
func (c *Container) runningAllowed() bool {
	switch c.mode {
	case ModePatrol:
		return c.strategies.Patrol.AllowRunning()
	case ModeOrder:
		return c.strategies.Order.AllowRunning()
	default:
		return true
	}
}
