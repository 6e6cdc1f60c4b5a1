package locomotion

// Clip names understood by the animation host.
const (
	ClipIdle      = "idle"
	ClipSwimIdle  = "swim_idle"
	ClipSuspended = "jp_suspended"
	ClipSwim      = "swim_forward"
	ClipRun       = "wkC_run"
	ClipWalk      = "wkC_forward"
	ClipBound     = "wkC_loG_forward"
)

// Animate cross-fades to the clip for state and records state as current.
// force is accepted for callers recovering from ragdoll; cross-fading is
// already unconditional so it changes nothing.
func (c *Container) Animate(state AnimationState, force bool) {
	if !c.loaded {
		c.animation = state
		return
	}
	if clip := c.clipName(state); clip != "" {
		c.body.CrossFade(clip)
	}
	c.animation = state
}

// clipName resolves state to a clip. Idle depends on the environment.
func (c *Container) clipName(state AnimationState) string {
	switch state {
	case AnimationNone:
		return ""
	case AnimationSwim:
		return ClipSwim
	case AnimationRun:
		return ClipRun
	case AnimationWalk:
		return ClipWalk
	case AnimationBoundSpeed:
		return ClipBound
	}
	switch {
	case c.body.WaterContact():
		return ClipSwimIdle
	case c.body.JetpackDeployed():
		return ClipSuspended
	default:
		return ClipIdle
	}
}

// statedAnimationPlaying reports whether the host is actually playing the
// clip for state and the body is under animation control.
func (c *Container) statedAnimationPlaying(state AnimationState) bool {
	clip := c.clipName(state)
	if clip == "" {
		return false
	}
	return c.body.ClipEnabled(clip) && !c.body.Ragdoll()
}
