package frame

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	Ticks           uint64
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
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

// Scheduler runs systems in registration order, once per frame.
//
// A Scheduler stands in for one environment callback: the render loop's
// before-render hook or the capture loop's animation-frame hook. It is not
// safe for concurrent use; call Once from a single goroutine.
type Scheduler struct {
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands
	ticks       uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		systems:  make([]System, 0),
		commands: newCommands(),
	}
}

// Register adds a system to the scheduler. The system's type name is used in stats.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	s.RegisterNamed(systemType.Name(), system)
}

// RegisterNamed adds a system under an explicit stats name.
func (s *Scheduler) RegisterNamed(name string, system System) {
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Ticks returns the number of frames executed so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Once executes all registered systems once with the given delta time,
// then flushes deferred commands.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.ticks, s.commands)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
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

	s.commands.Flush()
	s.ticks++
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
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
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		Ticks:       s.ticks,
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
