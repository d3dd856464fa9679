// Command htmlscene shows an HTML surface on two textured planes in a 3D
// scene. Moving the mouse over a plane drives a fake cursor on the page and
// clicking a plane clicks the element under it. A visual console overlays
// the proxy state, frame metrics and a badge following the cube.
package main

import (
	"context"
	"flag"
	"image"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/vconsole/capture"
	"github.com/plus3/vconsole/config"
	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/console/debugui"
	debugui_ebiten "github.com/plus3/vconsole/console/debugui/ebiten"
	"github.com/plus3/vconsole/frame"
	"github.com/plus3/vconsole/interact"
	"github.com/plus3/vconsole/scene"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Environment variables override it.")
	logLevel := flag.String("log-level", "", "Overrides the configured log level.")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Str("error", eris.ToString(err, true)).Msg("cannot load config")
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid log level")
		}
	}
	log = log.Level(cfg.Level())

	if err := run(cfg, log); err != nil {
		log.Fatal().Str("error", eris.ToString(err, true)).Msg("htmlscene exited")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := debugui_ebiten.NewImguiBackend("HTML Scene", cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	world, cube := newWorld(cfg)
	clicks := &Clicks{}
	page, err := newPage(cfg, clicks)
	if err != nil {
		return err
	}
	var pageMu sync.Mutex

	inspector := debugui.NewInspector()
	consoleOpts := append(cfg.ConsoleOptions(log.With().Str("component", "console").Logger()),
		console.WithProjector(world),
		console.WithInspector(inspector),
	)
	c := console.New(consoleOpts...)
	defer c.Close()

	proxyOpts := append(cfg.ProxyOptions(log.With().Str("component", "proxy").Logger()),
		interact.WithConsole(c),
		interact.WithPointer(interact.PointerFunc(func() (float32, float32) {
			x, y := ebiten.CursorPosition()
			return float32(x), float32(y)
		})),
	)
	proxy := interact.New(cfg.Layout(), page, world, proxyOpts...)

	slotWidth, slotHeight := int(cfg.PanelWidth), int(cfg.PanelHeight)
	slots := map[string]*capture.Slot{
		cfg.LeftPlane:  capture.NewSlot(cfg.LeftPlane, slotWidth, slotHeight, debugui_ebiten.TextureFactory{}),
		cfg.RightPlane: capture.NewSlot(cfg.RightPlane, slotWidth, slotHeight, debugui_ebiten.TextureFactory{}),
	}

	track := capture.NewImageTrack(func() image.Image {
		pageMu.Lock()
		defer pageMu.Unlock()
		return page.Render()
	})
	capturer := startCapture(ctx, cfg, track, slots, log)
	if capturer != nil {
		defer capturer.Stop()

		captureScheduler := frame.NewScheduler()
		captureScheduler.Register(capturer)
		go captureScheduler.Run(ctx, cfg.CaptureInterval())
	}

	metrics := &Metrics{}
	if err := registerEntities(c, proxy, capturer, metrics, clicks, cube); err != nil {
		return err
	}

	renderScheduler := frame.NewScheduler()
	renderer := debugui.NewRenderer(c,
		debugui.WithInspector(inspector),
		debugui.WithStats(renderScheduler, 120),
		debugui.WithLogger(log.With().Str("component", "debugui").Logger()),
	)
	renderScheduler.Register(&spinner{cube: cube})
	renderScheduler.Register(proxy)
	renderScheduler.Register(c)
	renderScheduler.Register(renderer)

	game := &Game{
		pageMu:    &pageMu,
		world:     world,
		cube:      cube,
		slots:     slots,
		proxy:     proxy,
		console:   c,
		renderer:  renderer,
		scheduler: renderScheduler,
		timer:     frame.NewTimer(),
		backend:   backend,
		metrics:   metrics,
	}

	event := log.Info().Bool("capture", capturer != nil)
	if capturer != nil {
		event = event.Stringer("session", capturer.Session()).Dur("capture_interval", cfg.CaptureInterval())
	}
	event.Msg("starting scene")

	if err := ebiten.RunGame(game); err != nil && !eris.Is(err, ebiten.Termination) {
		return eris.Wrap(err, "run game")
	}
	return nil
}

// startCapture begins mirroring the page onto the panel slots. A failure is
// logged and nil returned; the scene then runs with blank panels.
func startCapture(ctx context.Context, cfg config.Config, acquirer capture.Acquirer, slots map[string]*capture.Slot, log zerolog.Logger) *capture.Capturer {
	capturer, err := capture.Start(ctx, acquirer, slots[cfg.LeftPlane], slots[cfg.RightPlane],
		cfg.CaptureOptions(log.With().Str("component", "capture").Logger()))
	if err != nil {
		log.Error().Str("error", eris.ToString(err, true)).Msg("capture disabled")
		return nil
	}
	return capturer
}

func registerEntities(c *console.Console, proxy *interact.Proxy, capturer *capture.Capturer, metrics *Metrics, clicks *Clicks, cube *scene.Object) error {
	fps, err := c.Log30("fps", console.Float, metrics, "FPS")
	if err != nil {
		return err
	}
	fps.Debug(func(v any) bool { return v.(float64) > 0 && v.(float64) < 30 })

	if _, err := c.Log30("tps", console.Float, metrics, "TPS"); err != nil {
		return err
	}

	state, err := c.Log5("proxy state", console.Text, proxy, "State")
	if err != nil {
		return err
	}
	state.Highlight(func(v any) bool { return v == interact.Selected })

	if _, err := c.Log("clicks", console.Float, clicks, "Total"); err != nil {
		return err
	}
	if _, err := c.Log("last click", console.Text, clicks, "Last"); err != nil {
		return err
	}
	if capturer != nil {
		if _, err := c.Log60("frames", console.Float, capturer, "Frames"); err != nil {
			return err
		}
	}
	if _, err := c.LogF5("cube", console.Mesh, cube, ""); err != nil {
		return err
	}
	return nil
}
