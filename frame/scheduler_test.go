package frame_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/vconsole/frame"
)

type countingSystem struct {
	ExecuteCount int
	Ticks        []uint64
	LastDelta    float64
}

func (s *countingSystem) Execute(f *frame.UpdateFrame) {
	s.ExecuteCount++
	s.Ticks = append(s.Ticks, f.Tick)
	s.LastDelta = f.DeltaTime
}

type orderSystem struct {
	name string
	log  *[]string
}

func (s *orderSystem) Execute(f *frame.UpdateFrame) {
	*s.log = append(*s.log, s.name)
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		var log []string
		scheduler := frame.NewScheduler()
		scheduler.Register(&orderSystem{name: "a", log: &log})
		scheduler.Register(&orderSystem{name: "b", log: &log})

		scheduler.Once(1.0)
		scheduler.Once(1.0)

		expected := []string{"a", "b", "a", "b"}
		if len(log) != len(expected) {
			t.Fatalf("expected %d executions, got %d", len(expected), len(log))
		}
		for i := range expected {
			if log[i] != expected[i] {
				t.Errorf("execution %d: expected %s, got %s", i, expected[i], log[i])
			}
		}
	})

	t.Run("tick counter and delta time", func(t *testing.T) {
		scheduler := frame.NewScheduler()
		counter := &countingSystem{}
		scheduler.Register(counter)

		scheduler.Once(0.5)
		scheduler.Once(0.25)
		scheduler.Once(0.125)

		if counter.ExecuteCount != 3 {
			t.Errorf("expected 3 executions, got %d", counter.ExecuteCount)
		}
		for i, tick := range counter.Ticks {
			if tick != uint64(i) {
				t.Errorf("expected tick %d, got %d", i, tick)
			}
		}
		if counter.LastDelta != 0.125 {
			t.Errorf("expected last delta 0.125, got %f", counter.LastDelta)
		}
		if scheduler.Ticks() != 3 {
			t.Errorf("expected scheduler ticks 3, got %d", scheduler.Ticks())
		}
	})

	t.Run("deferred commands run after all systems", func(t *testing.T) {
		var log []string
		scheduler := frame.NewScheduler()
		scheduler.RegisterNamed("deferring", frame.SystemFunc(func(f *frame.UpdateFrame) {
			f.Commands.Defer(func() { log = append(log, "deferred") })
			log = append(log, "first")
		}))
		scheduler.Register(&orderSystem{name: "second", log: &log})

		scheduler.Once(0)

		expected := []string{"first", "second", "deferred"}
		for i := range expected {
			if log[i] != expected[i] {
				t.Errorf("step %d: expected %s, got %s", i, expected[i], log[i])
			}
		}

		scheduler.Once(0)
		if len(log) != 6 {
			t.Errorf("expected commands to be reset between frames, got log %v", log)
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		scheduler := frame.NewScheduler()
		counter := &countingSystem{}
		scheduler.Register(counter)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if counter.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})
}

func TestSchedulerStats(t *testing.T) {
	scheduler := frame.NewScheduler()
	scheduler.Register(&countingSystem{})
	scheduler.RegisterNamed("sleepy", frame.SystemFunc(func(*frame.UpdateFrame) {
		time.Sleep(time.Millisecond)
	}))

	for i := 0; i < 4; i++ {
		scheduler.Once(1.0 / 60.0)
	}

	stats := scheduler.GetStats()
	if stats.SystemCount != 2 {
		t.Errorf("expected 2 systems, got %d", stats.SystemCount)
	}
	if stats.TotalExecutions != 8 {
		t.Errorf("expected 8 executions, got %d", stats.TotalExecutions)
	}
	if stats.Ticks != 4 {
		t.Errorf("expected 4 ticks, got %d", stats.Ticks)
	}
	if stats.Systems[0].Name != "countingSystem" {
		t.Errorf("expected countingSystem, got %s", stats.Systems[0].Name)
	}
	sleepy := stats.Systems[1]
	if sleepy.Name != "sleepy" {
		t.Errorf("expected sleepy, got %s", sleepy.Name)
	}
	if sleepy.MinDuration < time.Millisecond {
		t.Errorf("expected min duration >= 1ms, got %s", sleepy.MinDuration)
	}
	if sleepy.AvgDuration < sleepy.MinDuration || sleepy.AvgDuration > sleepy.MaxDuration {
		t.Errorf("avg %s outside [%s, %s]", sleepy.AvgDuration, sleepy.MinDuration, sleepy.MaxDuration)
	}
}
