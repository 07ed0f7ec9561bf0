package ecs

import "reflect"

// Commands buffers structural ECS operations so systems never mutate the
// world mid-iteration. The Scheduler flushes the buffer after all systems of
// a tick have run.
type Commands struct {
	spawns   [][]any
	despawns []Entity
	adds     []addCommand
	removes  []removeCommand
	deferred []func()
}

type addCommand struct {
	entity    Entity
	component any
}

type removeCommand struct {
	entity   Entity
	compType reflect.Type
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Despawn queues an entity despawn.
func (c *Commands) Despawn(e Entity) {
	c.despawns = append(c.despawns, e)
}

// Add queues attaching a component to an entity.
func (c *Commands) Add(e Entity, component any) {
	c.adds = append(c.adds, addCommand{entity: e, component: component})
}

// Remove queues detaching a component type from an entity. Use
// ComponentType[T]() to name the type.
func (c *Commands) Remove(e Entity, compType reflect.Type) {
	c.removes = append(c.removes, removeCommand{entity: e, compType: compType})
}

// Defer queues an arbitrary function to run after all structural commands.
func (c *Commands) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

// ComponentType returns the reflect.Type of T for use with Commands.Remove.
func ComponentType[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Flush applies all queued commands to the world and resets the buffer.
// Despawns run first; adds and removes against an entity despawned in the
// same flush are dropped.
func (c *Commands) Flush(world *World) {
	despawned := make(map[Entity]bool)
	for _, e := range c.despawns {
		world.Despawn(e)
		despawned[e] = true
	}

	for _, cmd := range c.removes {
		if !despawned[cmd.entity] {
			world.removeByType(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !despawned[cmd.entity] {
			world.Add(cmd.entity, cmd.component)
		}
	}

	for _, components := range c.spawns {
		world.Spawn(components...)
	}

	for _, fn := range c.deferred {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.deferred = c.deferred[:0]
}
