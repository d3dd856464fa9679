package main

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/rotisserie/eris"

	"github.com/plus3/vconsole/config"
	"github.com/plus3/vconsole/dom"
	"github.com/plus3/vconsole/frame"
	"github.com/plus3/vconsole/scene"
)

const (
	buttonsPerPanel = 6
	buttonHeight    = 80
	buttonMargin    = 30
	cursorSize      = 14
)

var (
	panelFill  = color.RGBA{40, 44, 52, 255}
	buttonFill = []color.RGBA{
		{255, 179, 186, 255},
		{179, 229, 252, 255},
		{255, 223, 186, 255},
		{186, 255, 201, 255},
		{217, 186, 255, 255},
		{255, 255, 186, 255},
	}
	cursorFill = color.RGBA{255, 64, 64, 255}
)

// Clicks counts the buttons pressed through the proxy.
type Clicks struct {
	Total int
	Last  string
}

// newWorld builds a camera looking down +Z at the two HTML planes, one on
// each side, and a free cube in the middle for the mesh badge.
func newWorld(cfg config.Config) (*scene.World, *scene.Object) {
	world := scene.NewWorld(float32(cfg.WindowWidth), float32(cfg.WindowHeight), scene.Camera{
		Position: scene.Vec3{Z: -10},
		FovY:     math32.Pi / 3,
		Near:     0.1,
		Far:      100,
	})

	height := float32(5.4)
	width := height * float32(cfg.PanelWidth/cfg.PanelHeight)
	world.AddPlane(scene.NewPlane(cfg.LeftPlane, width, height, scene.Vec3{X: -6}))
	world.AddPlane(scene.NewPlane(cfg.RightPlane, width, height, scene.Vec3{X: 6}))

	cube := world.AddObject(scene.NewObject("cube", scene.Vec3{Y: 1}))
	return world, cube
}

// newPage lays out a column of buttons over each plane's region of the
// surface, plus the fake cursor.
func newPage(cfg config.Config, clicks *Clicks) (*dom.Page, error) {
	layout := cfg.Layout()
	page := dom.NewPage(cfg.SourceWidth, cfg.SourceHeight)

	for i, plane := range layout.Planes {
		region, ok := layout.Region(plane.Mesh)
		if !ok {
			return nil, eris.Errorf("no region for plane %q", plane.Mesh)
		}
		panel := page.Add(dom.BoxSpec{
			ID:   fmt.Sprintf("panel-%d", i+1),
			Tag:  "section",
			Rect: region,
			Z:    1,
			Fill: panelFill,
		})

		for j := 0; j < buttonsPerPanel; j++ {
			id := fmt.Sprintf("button-%d-%d", i+1, j+1)
			button := page.Add(dom.BoxSpec{
				ID:    id,
				Tag:   "button",
				Class: "btn",
				Rect: dom.Rect{
					X: region.X + buttonMargin,
					Y: region.Y + buttonMargin + float64(j)*(buttonHeight+buttonMargin),
					W: region.W - 2*buttonMargin,
					H: buttonHeight,
				},
				Z:      2,
				Fill:   buttonFill[j%len(buttonFill)],
				Parent: panel,
			})
			button.On("click", func(dom.MouseEvent) {
				clicks.Total++
				clicks.Last = id
			})
		}
	}

	if cfg.CursorID != "" {
		page.Add(dom.BoxSpec{
			ID:   cfg.CursorID,
			Rect: dom.Rect{W: cursorSize, H: cursorSize},
			Z:    1000,
			Fill: cursorFill,
		})
	}
	return page, nil
}

// spinner turns the cube so its badge has something to show.
type spinner struct {
	cube *scene.Object
}

func (s *spinner) Execute(f *frame.UpdateFrame) {
	s.cube.Rot.Y += float32(f.DeltaTime)
	if s.cube.Rot.Y > 2*math32.Pi {
		s.cube.Rot.Y -= 2 * math32.Pi
	}
}
