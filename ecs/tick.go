package ecs

// Tick carries per-update context into systems: the elapsed time since the
// previous update, the world, and the tick's command buffer.
type Tick struct {
	DeltaTime float64
	Commands  *Commands
	World     *World
}

func newTick(dt float64, world *World, commands *Commands) *Tick {
	return &Tick{
		DeltaTime: dt,
		Commands:  commands,
		World:     world,
	}
}
