// Command console-stress registers a large number of console entities of
// every kind and ticks the console as fast as it can for a fixed duration,
// then prints a markdown report.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/chewxy/math32"
	"github.com/rs/zerolog"

	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/frame"
	"github.com/plus3/vconsole/scene"
)

// Sample is the source every stress entity reads from.
type Sample struct {
	Name    string
	Value   float64
	Enabled bool
	Offset  scene.Vec2
	Heading scene.Vec3
	Tint    scene.Color3
	Glow    scene.Color4
	Node    *scene.Object
}

// mutator perturbs every sample once per frame so refreshes do real work.
type mutator struct {
	samples []*Sample
	rng     *rand.Rand
}

func (m *mutator) Execute(f *frame.UpdateFrame) {
	for _, s := range m.samples {
		s.Value += m.rng.NormFloat64()
		s.Enabled = s.Value > 0
		s.Offset.X += float32(f.DeltaTime)
		s.Heading = s.Heading.Add(scene.Vec3{Y: float32(f.DeltaTime)})
		s.Tint.R = math32.Mod(s.Tint.R+0.01, 1)
		s.Node.Rot.Y += 0.01
	}
}

var rates = []int{1, 5, 30, 60, 120}

var kinds = []struct {
	kind     console.Kind
	property string
}{
	{console.Text, "Name"},
	{console.Float, "Value"},
	{console.Boolean, "Enabled"},
	{console.Mesh, "Node"},
	{console.Vector2, "Offset"},
	{console.Vector3, "Heading"},
	{console.Color3, "Tint"},
	{console.Color4, "Glow"},
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The number of console entities to register.")
	consoleLines := flag.Int("console-lines", 50, "The number of console lines to print before the run.")
	meshLinked := flag.Float64("mesh-linked", 0.1, "Fraction of mesh entities drawn as badges instead of docked.")
	seed := flag.Uint64("seed", 1, "Random seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.Info().Msg("starting console stress test")

	rng := rand.New(rand.NewPCG(*seed, *seed))
	world := scene.NewWorld(1920, 1080, scene.Camera{
		Position: scene.Vec3{Z: -10},
		FovY:     math32.Pi / 3,
		Near:     0.1,
		Far:      100,
	})
	c := console.New(
		console.WithLogger(log.Level(zerolog.WarnLevel)),
		console.WithProjector(world),
		console.WithViewport(1920, 1080),
		console.WithBreakpoint(func(*console.Entity, any) {}),
	)
	defer c.Close()

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		ConsoleLines:   *consoleLines,
		GCPauseMetrics: *gcPauseMetrics,
		Kinds:          make(map[string]int),
		Rates:          make(map[int]int),
	}

	log.Info().Int("entities", *entityCount).Msg("registering entities")
	samples := make([]*Sample, 0, *entityCount)
	for i := 0; i < *entityCount; i++ {
		s := &Sample{
			Name:    fmt.Sprintf("sample-%d", i),
			Value:   rng.Float64() * 100,
			Heading: scene.Vec3{X: rng.Float32(), Y: rng.Float32(), Z: rng.Float32()},
			Tint:    scene.Color3{R: rng.Float32(), G: rng.Float32(), B: rng.Float32()},
			Glow:    scene.Color4{R: 1, G: 1, B: 1, A: rng.Float32()},
			Node:    world.AddObject(scene.NewObject(fmt.Sprintf("node-%d", i), scene.Vec3{X: rng.Float32()*8 - 4, Y: rng.Float32()*4 - 2})),
		}
		samples = append(samples, s)

		k := kinds[rng.IntN(len(kinds))]
		rate := rates[rng.IntN(len(rates))]
		mode := console.Docked
		if k.kind == console.Mesh && rng.Float64() < *meshLinked {
			mode = console.MeshLinked
		}

		e, err := c.Register(s.Name, k.kind, s, k.property, mode, rate)
		if err != nil {
			log.Fatal().Err(err).Str("entity", s.Name).Msg("cannot register entity")
		}
		if k.kind == console.Float {
			e.Debug(func(v any) bool { return v.(float64) < 0 })
			e.Highlight(func(v any) bool { return v.(float64) > 150 })
		}
		report.Kinds[k.kind.String()]++
		report.Rates[rate]++
		if mode == console.MeshLinked {
			report.Badges++
		}
	}

	for i := 0; i < *consoleLines && len(samples) > 0; i++ {
		if _, err := c.Print(console.Float, samples[i%len(samples)], "Value"); err != nil {
			log.Fatal().Err(err).Msg("cannot print console line")
		}
	}

	scheduler := frame.NewScheduler()
	scheduler.Register(&mutator{samples: samples, rng: rng})
	scheduler.Register(c)

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info().Dur("duration", *duration).Msg("running")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	timer := frame.NewTimer()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := timer.Delta()

			updateStart := time.Now()
			scheduler.Once(deltaTime)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Systems = scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info().Int64("updates", totalUpdates).Msg("run finished")

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
}
