package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mawside/cellar/ecs"
)

type GameTime struct {
	Elapsed float64
	Day     int
}

func TestResourceSeedAndGet(t *testing.T) {
	world := newTestWorld()

	clock := ecs.NewResource(world, GameTime{Day: 3})
	assert.Equal(t, 3, clock.Get().Day)

	clock.Get().Elapsed = 1.5
	assert.Equal(t, 1.5, clock.Get().Elapsed)
}

func TestResourcePointerIsStable(t *testing.T) {
	world := newTestWorld()

	first := ecs.NewResource(world, GameTime{Day: 1})
	second := ecs.NewResource(world, GameTime{Day: 99})

	// The second accessor binds the existing value; the seed is ignored.
	assert.Same(t, first.Get(), second.Get())
	assert.Equal(t, 1, second.Get().Day)
}

type TimeSystem struct {
	Clock ecs.Resource[GameTime]
}

func (s *TimeSystem) Execute(tick *ecs.Tick) {
	s.Clock.Get().Elapsed += tick.DeltaTime
}

func TestResourceWiredByScheduler(t *testing.T) {
	world := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	ecs.NewResource(world, GameTime{Day: 7})

	system := &TimeSystem{}
	scheduler.Register(system)
	scheduler.Step(0.5)
	scheduler.Step(0.5)

	assert.Equal(t, 7, system.Clock.Get().Day)
	assert.Equal(t, 1.0, system.Clock.Get().Elapsed)
}

func TestResourceZeroValueCreatedOnWiring(t *testing.T) {
	world := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	system := &TimeSystem{}
	scheduler.Register(system)

	// No NewResource call: wiring creates the zero value.
	assert.NotNil(t, system.Clock.Get())
	assert.Equal(t, 0, system.Clock.Get().Day)
}
