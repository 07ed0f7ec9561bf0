// Command ecs-stress exercises the archetype storage and scheduler under
// sustained churn: entities spawn with random component subsets, systems
// mutate and migrate them every tick, and a markdown report summarizes
// update latency and memory behavior at the end.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/mawside/cellar/ecs"
)

type Position struct{ X, Y, Z float32 }
type Velocity struct{ DX, DY, DZ float32 }
type Rotation struct{ Angle float32 }
type Scale struct{ Factor float32 }
type Lifetime struct{ Remaining float64 }
type Health struct{ Current, Max int }
type Frozen struct{}

var componentFactories = []func(rng *rand.Rand) any{
	func(rng *rand.Rand) any { return Position{X: rng.Float32(), Y: rng.Float32(), Z: rng.Float32()} },
	func(rng *rand.Rand) any { return Velocity{DX: rng.Float32(), DY: rng.Float32(), DZ: rng.Float32()} },
	func(rng *rand.Rand) any { return Rotation{Angle: rng.Float32() * 360} },
	func(rng *rand.Rand) any { return Scale{Factor: 1 + rng.Float32()} },
	func(rng *rand.Rand) any { return Lifetime{Remaining: 1 + rng.Float64()*10} },
	func(rng *rand.Rand) any { return Health{Current: 100, Max: 100} },
}

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.Register[Position](registry)
	ecs.Register[Velocity](registry)
	ecs.Register[Rotation](registry)
	ecs.Register[Scale](registry)
	ecs.Register[Lifetime](registry)
	ecs.Register[Health](registry)
	ecs.Register[Frozen](registry)
}

// randomComponents draws a random non-empty subset of the stress components,
// landing the entity in one of 2^6-1 possible archetypes.
func randomComponents(rng *rand.Rand) []any {
	picks := rng.IntN(1<<len(componentFactories)-1) + 1

	components := make([]any, 0, len(componentFactories))
	for i, factory := range componentFactories {
		if picks&(1<<i) != 0 {
			components = append(components, factory(rng))
		}
	}
	return components
}

// MovementSystem integrates positions, touching the two hottest columns.
type MovementSystem struct {
	Moving ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *MovementSystem) Execute(tick *ecs.Tick) {
	dt := float32(tick.DeltaTime)
	for _, m := range s.Moving.Iter() {
		m.Position.X += m.Velocity.DX * dt
		m.Position.Y += m.Velocity.DY * dt
		m.Position.Z += m.Velocity.DZ * dt
	}
}

// SpinSystem keeps a second query shape live on partially overlapping
// archetypes.
type SpinSystem struct {
	Spinning ecs.Query[struct {
		*Rotation
		Scale *Scale `ecs:"optional"`
	}]
}

func (s *SpinSystem) Execute(tick *ecs.Tick) {
	dt := float32(tick.DeltaTime)
	for _, sp := range s.Spinning.Iter() {
		sp.Rotation.Angle += 90 * dt
		if sp.Scale != nil {
			sp.Scale.Factor *= 1 + 0.01*dt
		}
	}
}

// ChurnSystem expires entities and respawns replacements through the command
// buffer, recycling entity slots and bumping generations continuously.
type ChurnSystem struct {
	rng *rand.Rand

	Mortal ecs.Query[struct {
		ecs.Entity
		*Lifetime
	}]
}

func (s *ChurnSystem) Execute(tick *ecs.Tick) {
	for _, m := range s.Mortal.Iter() {
		m.Lifetime.Remaining -= tick.DeltaTime
		if m.Lifetime.Remaining > 0 {
			continue
		}

		tick.Commands.Despawn(m.Entity)
		tick.Commands.Spawn(randomComponents(s.rng)...)
	}
}

// MigrationSystem toggles a Frozen tag on healthy entities, forcing rows to
// move between archetypes every tick.
type MigrationSystem struct {
	Healthy ecs.Query[struct {
		ecs.Entity
		*Health
		Frozen *Frozen `ecs:"optional"`
	}]
}

func (s *MigrationSystem) Execute(tick *ecs.Tick) {
	for _, h := range s.Healthy.Iter() {
		if h.Frozen == nil && h.Health.Current%7 == 0 {
			tick.Commands.Add(h.Entity, Frozen{})
		} else if h.Frozen != nil {
			tick.Commands.Remove(h.Entity, ecs.ComponentType[Frozen]())
		}
		h.Health.Current--
		if h.Health.Current <= 0 {
			h.Health.Current = h.Health.Max
		}
	}
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "total duration the test should run for")
	entityCount := flag.Int("entities", 10000, "initial number of entities to create")
	seed := flag.Uint64("seed", 1, "seed for the spawn RNG")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "include GC pause metrics in the report")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	log.Info().Msg("starting stress test")

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	world := ecs.NewWorld(registry)

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&SpinSystem{})
	scheduler.Register(&ChurnSystem{rng: rng})
	scheduler.Register(&MigrationSystem{})

	log.Info().Int("entities", *entityCount).Msg("populating world")
	for i := 0; i < *entityCount; i++ {
		world.Spawn(randomComponents(rng)...)
	}
	log.Info().Int("archetypes", len(world.Archetypes())).Msg("population complete")

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     registry.Len(),
		Systems:        4,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info().Dur("duration", *duration).Msg("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Step(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(len(report.UpdateTime.Samples))
	report.UpdateTime.Finalize()
	report.FinalEntities = world.Len()
	report.FinalArchetypes = len(world.Archetypes())
	report.SystemStats = scheduler.Stats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info().
		Int64("updates", report.TotalUpdates).
		Int("final_entities", report.FinalEntities).
		Int("final_archetypes", report.FinalArchetypes).
		Msg("simulation finished")

	fmt.Println("\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}
