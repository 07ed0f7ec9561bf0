package ecs

// System is a unit of behavior run by the Scheduler each tick. User systems
// implement this interface and may declare Query and Resource struct fields,
// which the Scheduler wires up at registration, plus any state fields that
// persist between ticks.
type System interface {
	Execute(tick *Tick)
}
