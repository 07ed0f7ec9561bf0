package ecs_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/mawside/cellar/ecs"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(tick *ecs.Tick) {
	s.ExecuteCount++
	for _, item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(tick.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(tick.DeltaTime)
	}
}

type HealthSystem struct {
	Entities ecs.Query[struct {
		*Health
	}]
	ExecuteCount int
	TotalHealth  int
}

func (s *HealthSystem) Execute(tick *ecs.Tick) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for item := range s.Entities.Values() {
		s.TotalHealth += item.Health.Current
	}
}

func TestScheduler(t *testing.T) {
	t.Run("system execution and query wiring", func(t *testing.T) {
		world := newTestWorld()
		scheduler := ecs.NewScheduler(world)

		movement := &MovementSystem{}
		health := &HealthSystem{}
		scheduler.Register(movement)
		scheduler.Register(health)

		world.Spawn(Position{}, Velocity{DX: 1, DY: 2})
		world.Spawn(Health{Current: 100, Max: 100})

		scheduler.Step(1.0)

		if movement.ExecuteCount != 1 {
			t.Errorf("expected MovementSystem to execute once, got %d", movement.ExecuteCount)
		}
		if health.ExecuteCount != 1 {
			t.Errorf("expected HealthSystem to execute once, got %d", health.ExecuteCount)
		}

		scheduler.Step(1.0)

		if movement.ExecuteCount != 2 {
			t.Errorf("expected MovementSystem to execute twice, got %d", movement.ExecuteCount)
		}
	})

	t.Run("queries collected before each execution", func(t *testing.T) {
		world := newTestWorld()
		scheduler := ecs.NewScheduler(world)

		health := &HealthSystem{}
		scheduler.Register(health)

		world.Spawn(Health{Current: 50, Max: 100})
		world.Spawn(Health{Current: 75, Max: 100})

		scheduler.Step(1.0)
		if health.TotalHealth != 125 {
			t.Errorf("expected TotalHealth=125, got %d", health.TotalHealth)
		}

		world.Spawn(Health{Current: 25, Max: 100})

		scheduler.Step(1.0)
		if health.TotalHealth != 150 {
			t.Errorf("expected TotalHealth=150, got %d", health.TotalHealth)
		}
	})

	t.Run("delta time application", func(t *testing.T) {
		world := newTestWorld()
		scheduler := ecs.NewScheduler(world)

		world.Spawn(Position{}, Velocity{DX: 10, DY: 20})

		movement := &MovementSystem{}
		scheduler.Register(movement)
		scheduler.Step(0.5)

		found := false
		for _, item := range movement.Entities.Iter() {
			if item.Position.X == 5.0 && item.Position.Y == 10.0 {
				found = true
			}
		}
		if !found {
			t.Error("expected position to be scaled by delta time")
		}
	})

	t.Run("context cancellation stops run", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		world := newTestWorld()
		scheduler := ecs.NewScheduler(world)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			close(done)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if movement.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})
}

type spawnOnceSystem struct {
	executed bool
}

func (s *spawnOnceSystem) Execute(tick *ecs.Tick) {
	if !s.executed {
		tick.Commands.Spawn(Position{X: 1}, Velocity{DX: 1})
		s.executed = true
	}
}

func TestSchedulerFlushesCommands(t *testing.T) {
	world := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	spawner := &spawnOnceSystem{}
	movement := &MovementSystem{}
	scheduler.Register(spawner)
	scheduler.Register(movement)

	scheduler.Step(1.0)
	if world.Len() != 1 {
		t.Fatalf("expected spawn command applied after tick, got %d entities", world.Len())
	}

	scheduler.Step(1.0)
	count := 0
	for range movement.Entities.Iter() {
		count++
	}
	if count != 1 {
		t.Error("expected spawned entity visible on the next tick")
	}
}

func TestSchedulerStats(t *testing.T) {
	world := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	scheduler.Register(&MovementSystem{})
	scheduler.Register(&HealthSystem{})

	scheduler.Step(1.0)
	scheduler.Step(1.0)
	scheduler.Step(1.0)

	stats := scheduler.Stats()
	if stats.SystemCount != 2 {
		t.Errorf("expected 2 systems, got %d", stats.SystemCount)
	}
	if stats.TotalExecutions != 6 {
		t.Errorf("expected 6 total executions, got %d", stats.TotalExecutions)
	}

	for _, system := range stats.Systems {
		if system.ExecutionCount != 3 {
			t.Errorf("system %s: expected 3 executions, got %d", system.Name, system.ExecutionCount)
		}
		if system.MaxDuration < system.MinDuration {
			t.Errorf("system %s: max duration below min", system.Name)
		}
		if system.TotalDuration < system.AvgDuration {
			t.Errorf("system %s: total duration below average", system.Name)
		}
	}

	if stats.Systems[0].Name != "MovementSystem" {
		t.Errorf("expected registration order preserved, got %s first", stats.Systems[0].Name)
	}
}
