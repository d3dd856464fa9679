// Package debugui draws the visual console with Dear ImGui: the dock and its
// button bar, mesh badges, the console log, the structural inspector and a
// scheduler performance window.
package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/rs/zerolog"

	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/frame"
	"github.com/plus3/vconsole/scene"
)

var (
	inspectorButtonColor = imgui.NewVec4(1, 0.5, 0, 1)
	inspectorButtonHover = imgui.NewVec4(1, 0.6, 0.2, 1)
	consoleBackground    = imgui.NewVec4(0, 0, 0, 0.6)
)

const overlayFlags = imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
	imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing

// InputState tracks whether ImGui is consuming mouse or keyboard input. The
// picking loop checks it so clicks on the overlay do not reach the scene.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Renderer is the frame system that draws a console. Drawing is deferred to
// the end of the frame, after the console has ticked.
type Renderer struct {
	console   *console.Console
	inspector *Inspector
	stats     *PerformanceStats
	input     InputState
	log       zerolog.Logger
}

type Option func(r *Renderer)

// WithInspector draws the given inspector when it is visible.
func WithInspector(i *Inspector) Option {
	return func(r *Renderer) { r.inspector = i }
}

func WithLogger(log zerolog.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// WithStats adds a performance window for the scheduler.
func WithStats(s *frame.Scheduler, historyFrames int) Option {
	return func(r *Renderer) { r.stats = NewPerformanceStats(s, historyFrames) }
}

func NewRenderer(c *console.Console, opts ...Option) *Renderer {
	r := &Renderer{console: c, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InputState returns the capture state recorded on the last Execute.
func (r *Renderer) InputState() InputState { return r.input }

// Execute records input capture and queues the draw for after the systems of
// this frame have run.
func (r *Renderer) Execute(f *frame.UpdateFrame) {
	io := imgui.CurrentIO()
	r.input.WantCaptureMouse = io.WantCaptureMouse()
	r.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if r.stats != nil {
		r.stats.Record(float32(f.DeltaTime))
	}
	f.Commands.Defer(r.Render)
}

// Render draws every console window. It must run between the backend's
// BeginFrame and EndFrame.
func (r *Renderer) Render() {
	c := r.console
	if c.Closed() {
		return
	}

	r.renderDock()
	r.renderBadges()
	r.renderConsole()

	if r.inspector != nil && r.inspector.Visible() {
		r.inspector.Render(c)
	}
	if r.stats != nil {
		r.stats.Render()
	}
}

func (r *Renderer) renderDock() {
	c := r.console
	dock := DockLayout(c)

	imgui.SetNextWindowPosV(imgui.NewVec2(dock.X, dock.Y), imgui.CondAlways, imgui.NewVec2(dock.PivotX, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(dock.Width, dock.Height), imgui.CondAlways)
	if !imgui.BeginV("##dock", nil, overlayFlags|imgui.WindowFlagsNoBackground) {
		imgui.End()
		return
	}

	// The arrow points where the dock will move.
	arrow := "<"
	if c.Side() == console.Left {
		arrow = ">"
	}
	if imgui.Button(arrow) {
		c.ToggleDockSide()
	}
	imgui.SameLine()

	imgui.PushStyleColorVec4(imgui.ColButton, inspectorButtonColor)
	imgui.PushStyleColorVec4(imgui.ColButtonHovered, inspectorButtonHover)
	if imgui.Button("D") {
		if err := c.ToggleInspector(); err != nil {
			r.log.Warn().Err(err).Msg("cannot toggle inspector")
		}
	}
	imgui.PopStyleColor()
	imgui.PopStyleColor()

	for _, p := range c.Panels() {
		if !p.Anchor.Docked() || !p.Visible {
			continue
		}
		renderPanel(p, dock.Width)
	}

	imgui.End()
}

func (r *Renderer) renderBadges() {
	c := r.console
	for _, p := range c.Panels() {
		rect, ok := BadgeLayout(c, p)
		if !ok {
			continue
		}
		imgui.SetNextWindowPosV(imgui.NewVec2(rect.X, rect.Y), imgui.CondAlways, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(rect.Width, rect.Height), imgui.CondAlways)
		if imgui.BeginV("##badge-"+p.Label, nil, overlayFlags|imgui.WindowFlagsNoBackground|imgui.WindowFlagsNoScrollbar) {
			renderPanel(p, rect.Width)
		}
		imgui.End()
	}
}

func (r *Renderer) renderConsole() {
	c := r.console
	if !c.ConsoleVisible() {
		return
	}
	rect := ConsoleLayout(c)

	imgui.SetNextWindowPosV(imgui.NewVec2(rect.X, rect.Y), imgui.CondAlways, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(rect.Width, rect.Height), imgui.CondAlways)
	imgui.PushStyleColorVec4(imgui.ColWindowBg, consoleBackground)
	if imgui.BeginV("##console", nil, overlayFlags|imgui.WindowFlagsNoScrollbar) {
		for _, line := range c.ConsoleLines() {
			imgui.Text(line)
		}
	}
	imgui.End()
	imgui.PopStyleColor()
}

// renderPanel fills the panel background through the window draw list and
// writes the label and fields on top of it.
func renderPanel(p *console.Panel, width float32) {
	pos := imgui.CursorScreenPos()
	height := PanelHeight(p)

	drawList := imgui.WindowDrawList()
	drawList.AddRectFilled(
		pos,
		imgui.NewVec2(pos.X+width, pos.Y+height),
		imgui.ColorU32Vec4(colorVec4(p.Background, p.Alpha)),
	)

	imgui.TextColored(imgui.NewVec4(1, 1, 1, 1), p.Label)
	for _, f := range p.Fields {
		if f.Label != "" {
			imgui.Text(fmt.Sprintf("%s: %s", f.Label, f.Text))
		} else {
			imgui.Text(f.Text)
		}
	}
	imgui.Dummy(imgui.NewVec2(width, PanelPadding))
}

func colorVec4(c scene.Color3, alpha float32) imgui.Vec4 {
	return imgui.NewVec4(c.R, c.G, c.B, alpha)
}
