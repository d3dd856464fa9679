package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/vconsole/frame"
)

// PerformanceStats keeps a rolling frame-time history and shows it next to
// the per-system timings of a scheduler.
type PerformanceStats struct {
	scheduler     *frame.Scheduler
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(s *frame.Scheduler, historyFrames int) *PerformanceStats {
	if historyFrames <= 0 {
		historyFrames = 120
	}
	return &PerformanceStats{
		scheduler:     s,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds one frame's delta time, in seconds, to the history.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean of the history in milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(400, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 260), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := ps.AverageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	} else {
		imgui.Text("Avg Frame Time: -")
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if ps.scheduler == nil {
		imgui.End()
		return
	}

	stats := ps.scheduler.GetStats()
	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Min")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.MinDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.MaxDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}
