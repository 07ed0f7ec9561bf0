package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats is a snapshot of scheduler execution statistics.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// worldBinder is implemented by Query and Resource fields that need the
// world handed to them at registration.
type worldBinder interface {
	Init(world *World)
}

// collector is implemented by Query fields that snapshot data each tick.
type collector interface {
	Collect()
}

// Scheduler runs registered systems in order, once per tick. Query and
// Resource fields of a system struct are wired automatically at
// registration, and every Query is collected immediately before its system
// executes.
type Scheduler struct {
	world      *World
	systems    []System
	collectors [][]collector
	stats      []*systemStatsInternal
	commands   *Commands
}

// NewScheduler creates a scheduler over the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:    world,
		commands: newCommands(),
	}
}

// Register appends a system to the run order and initializes its Query and
// Resource fields. The system must be a pointer to a struct for field
// wiring to work; other implementations are registered as-is.
func (s *Scheduler) Register(system System) {
	s.collectors = append(s.collectors, s.wireFields(system))
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.stats = append(s.stats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) wireFields(system System) []collector {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Ptr {
		return nil
	}
	systemValue = systemValue.Elem()
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var collectors []collector
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		addr := field.Addr().Interface()
		if binder, ok := addr.(worldBinder); ok {
			binder.Init(s.world)
		}
		if c, ok := addr.(collector); ok {
			collectors = append(collectors, c)
		}
	}
	return collectors
}

// Step executes all registered systems once with the given delta time, then
// flushes the tick's command buffer.
func (s *Scheduler) Step(dt float64) {
	tick := newTick(dt, s.world, s.commands)

	for i, system := range s.systems {
		for _, c := range s.collectors[i] {
			c.Collect()
		}

		start := time.Now()
		system.Execute(tick)
		duration := time.Since(start)

		stats := s.stats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.commands.Flush(s.world)
}

// Run executes ticks at the given interval until the context is cancelled.
// Delta time is derived from the wall clock, not the interval.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Step(dt)
		}
	}
}

// Stats returns a snapshot of per-system execution statistics.
func (s *Scheduler) Stats() *SchedulerStats {
	snapshot := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.stats)),
	}

	var totalExecs int64
	for i, internal := range s.stats {
		avg := time.Duration(0)
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		}

		snapshot.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	snapshot.TotalExecutions = totalExecs
	return snapshot
}
