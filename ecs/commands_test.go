package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mawside/cellar/ecs"
)

// CommandTestSystem queues one of each structural operation.
type CommandTestSystem struct {
	Target   ecs.Entity
	Despawns bool
}

func (s *CommandTestSystem) Execute(tick *ecs.Tick) {
	tick.Commands.Spawn(Position{X: 100})
	if s.Despawns {
		tick.Commands.Despawn(s.Target)
	}
}

func TestCommandsDeferStructuralChanges(t *testing.T) {
	world := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	target := world.Spawn(Position{X: 1})
	scheduler.Register(&CommandTestSystem{Target: target, Despawns: true})

	assert.Equal(t, 1, world.Len())

	scheduler.Step(1.0)

	// One spawned, one despawned.
	assert.Equal(t, 1, world.Len())
	assert.False(t, world.Alive(target))
}

func TestCommandsFlushOrdering(t *testing.T) {
	world := newTestWorld()
	commands := &ecs.Commands{}

	victim := world.Spawn(Position{X: 1}, Health{Current: 5, Max: 5})

	// Adds and removes against an entity despawned in the same flush are
	// dropped rather than resurrecting storage.
	commands.Add(victim, Velocity{DX: 9})
	commands.Remove(victim, ecs.ComponentType[Health]())
	commands.Despawn(victim)
	commands.Spawn(Name{Value: "after"})

	commands.Flush(world)

	assert.False(t, world.Alive(victim))
	assert.Equal(t, 1, world.Len())
}

func TestCommandsAddRemove(t *testing.T) {
	world := newTestWorld()
	commands := &ecs.Commands{}

	e := world.Spawn(Position{X: 1}, Velocity{DX: 2})

	commands.Add(e, Name{Value: "tagged"})
	commands.Remove(e, ecs.ComponentType[Velocity]())
	commands.Flush(world)

	assert.True(t, world.Alive(e))
	assert.Equal(t, "tagged", ecs.Get[Name](world, e).Value)
	assert.False(t, ecs.Has[Velocity](world, e))
}

func TestCommandsDeferRunsAfterStructuralOps(t *testing.T) {
	world := newTestWorld()
	commands := &ecs.Commands{}

	var lenAtDefer int
	commands.Spawn(Position{X: 1})
	commands.Defer(func() {
		lenAtDefer = world.Len()
	})
	commands.Flush(world)

	assert.Equal(t, 1, lenAtDefer, "deferred fn sees the spawn applied")
}

func TestCommandsBufferResetsAfterFlush(t *testing.T) {
	world := newTestWorld()
	commands := &ecs.Commands{}

	commands.Spawn(Position{X: 1})
	commands.Flush(world)
	commands.Flush(world)

	assert.Equal(t, 1, world.Len(), "second flush must not replay the spawn")
}
