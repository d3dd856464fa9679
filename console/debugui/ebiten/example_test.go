package ebiten_test

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/console/debugui"
	debugui_ebiten "github.com/plus3/vconsole/console/debugui/ebiten"
	"github.com/plus3/vconsole/frame"
)

// Game implements ebiten.Game and draws a console overlay with ImGui.
type Game struct {
	console      *console.Console
	scheduler    *frame.Scheduler
	imguiBackend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Begin ImGui frame before executing systems
	g.imguiBackend.BeginFrame()

	// The console ticks and the renderer queues its windows
	g.scheduler.Once(1.0 / 60.0)

	// End ImGui frame after systems complete
	g.imguiBackend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	debugui_ebiten.DrawLinks(screen, g.console)

	// Draw ImGui overlay on top
	g.imguiBackend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	g.console.SetViewport(float32(outsideWidth), float32(outsideHeight))
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("Console Example", 1280, 720)

	inspector := debugui.NewInspector()
	c := console.New(console.WithInspector(inspector), console.WithViewport(1280, 720))

	status := struct{ Message string }{Message: "hello"}
	if _, err := c.Log("status", console.Text, &status, "Message"); err != nil {
		panic(err)
	}

	scheduler := frame.NewScheduler()
	scheduler.Register(c)
	scheduler.Register(debugui.NewRenderer(c, debugui.WithInspector(inspector), debugui.WithStats(scheduler, 120)))

	game := &Game{
		console:      c,
		scheduler:    scheduler,
		imguiBackend: backend,
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
