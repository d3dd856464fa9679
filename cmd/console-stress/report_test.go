package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vconsole/frame"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:     time.Second,
		Entities:     3,
		ConsoleLines: 2,
		Badges:       1,
		Kinds:        map[string]int{"Float": 2, "Mesh": 1},
		Rates:        map[int]int{1: 2, 30: 1},
		TotalUpdates: 10,
		Systems:      []frame.SystemStats{{Name: "Console", ExecutionCount: 10}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "# Console Stress Test Report")
	assert.Contains(t, out, "- Float: 2")
	assert.Contains(t, out, "- every 30 ticks: 1")
	assert.Contains(t, out, "| Console | 10 |")
	assert.NotContains(t, out, "GC Pause")
}
