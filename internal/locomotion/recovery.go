package locomotion

const (
	// RecoverAfter is how long, in simulated seconds, a ragdoll must persist before recovery.
	RecoverAfter = 1.21
	// RecoverEvent is the FSM event that starts the get-up transition.
	RecoverEvent = "Recover Start"
)

// recover fires the host's recover event once a recoverable ragdoll has
// lasted long enough. It reports whether the event fired.
func (c *Container) recover() bool {
	if !c.body.Ragdoll() || !c.body.CanRecover() || c.body.GroundContact() {
		return false
	}
	fsm := c.body.FSM()
	if fsm == nil || fsm.TimeAtCurrentState() <= RecoverAfter {
		return false
	}
	for _, ev := range fsm.Events() {
		if ev == RecoverEvent {
			fsm.RunEvent(ev)
			c.log.Info().Str("actor", c.id.String()).Msg("ragdoll recovery started")
			c.telemetry.RecoveryTriggered()
			return true
		}
	}
	return false
}
