package main

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/vconsole/capture"
	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/console/debugui"
	debugui_ebiten "github.com/plus3/vconsole/console/debugui/ebiten"
	"github.com/plus3/vconsole/frame"
	"github.com/plus3/vconsole/interact"
	"github.com/plus3/vconsole/scene"
)

var (
	backgroundColor = color.RGBA{18, 18, 24, 255}
	cubeColor       = color.RGBA{120, 200, 255, 255}
)

// Metrics are the frame figures logged to the console.
type Metrics struct {
	FPS float64
	TPS float64
}

// Game implements ebiten.Game. The page lock is shared with the capture
// goroutine, which renders the page between render frames.
type Game struct {
	pageMu *sync.Mutex

	world     *scene.World
	cube      *scene.Object
	slots     map[string]*capture.Slot
	proxy     *interact.Proxy
	console   *console.Console
	renderer  *debugui.Renderer
	scheduler *frame.Scheduler
	timer     *frame.Timer
	backend   *debugui_ebiten.ImguiBackend
	metrics   *Metrics
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.metrics.FPS = ebiten.ActualFPS()
	g.metrics.TPS = ebiten.ActualTPS()

	g.backend.BeginFrame()

	g.pageMu.Lock()
	g.scheduler.Once(g.timer.Delta())
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !g.renderer.InputState().WantCaptureMouse {
		x, y := ebiten.CursorPosition()
		g.proxy.Pick(float32(x), float32(y))
	}
	g.pageMu.Unlock()

	g.backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, plane := range g.world.Planes {
		g.drawPlane(screen, plane)
	}

	if x, y, ok := g.world.Project(g.cube); ok {
		vector.DrawFilledRect(screen, x-10, y-10, 20, 20, cubeColor, true)
	}

	debugui_ebiten.DrawLinks(screen, g.console)
	g.backend.Draw(screen)
}

// drawPlane maps the plane's captured texture onto its projected corners.
// Corners come bottom-left first, so v=0 samples the bottom row of the image.
func (g *Game) drawPlane(screen *ebiten.Image, plane *scene.Plane) {
	slot, ok := g.slots[plane.Name()]
	if !ok {
		return
	}
	img, ok := debugui_ebiten.Image(slot)
	if !ok {
		return
	}
	corners, ok := g.world.PlaneCorners(plane)
	if !ok {
		return
	}

	w, h := slot.Size()
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	vertices := make([]ebiten.Vertex, 4)
	for i, c := range corners {
		vertices[i] = ebiten.Vertex{
			DstX:   c.X,
			DstY:   c.Y,
			SrcX:   uvs[i][0] * float32(w),
			SrcY:   (1 - uvs[i][1]) * float32(h),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2, 0, 2, 3}, img, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	g.world.Width = float32(outsideWidth)
	g.world.Height = float32(outsideHeight)
	g.console.SetViewport(float32(outsideWidth), float32(outsideHeight))
	return outsideWidth, outsideHeight
}
