// Package ebiten connects the console overlay to the Ebiten game engine: the
// Dear ImGui backend, capture textures backed by ebiten images, and the dashed
// lines linking mesh badges to their nodes.
package ebiten

import (
	"image/color"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/vconsole/capture"
	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/console/debugui"
	"github.com/plus3/vconsole/scene"
)

const (
	DashLength = 8
	DashGap    = 6
	LinkStroke = 1.5
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the window and an ImGui context that does not
// persist its layout to disk.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// TextureFactory allocates capture textures as ebiten images.
type TextureFactory struct{}

func (TextureFactory) NewTexture(width, height int) capture.Texture {
	return ebiten.NewImage(width, height)
}

// Image returns the ebiten image behind a slot, once the slot has received a
// frame.
func Image(slot *capture.Slot) (*ebiten.Image, bool) {
	tex, ok := slot.Texture()
	if !ok {
		return nil, false
	}
	img, ok := tex.(*ebiten.Image)
	return img, ok
}

// Segment is one dash of a link line.
type Segment struct {
	From, To scene.Vec2
}

// Dashes splits the line from a to b into dashes of length dash separated by
// gap. The last dash is shortened to end at b.
func Dashes(a, b scene.Vec2, dash, gap float32) []Segment {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math32.Sqrt(dx*dx + dy*dy)
	if length == 0 || dash <= 0 || dash+gap <= 0 {
		return nil
	}
	ux, uy := dx/length, dy/length

	var out []Segment
	for start := float32(0); start < length; start += dash + gap {
		end := min(start+dash, length)
		out = append(out, Segment{
			From: scene.Vec2{X: a.X + ux*start, Y: a.Y + uy*start},
			To:   scene.Vec2{X: a.X + ux*end, Y: a.Y + uy*end},
		})
	}
	return out
}

// DrawLinks strokes a dashed line from every on-screen badge to its node.
func DrawLinks(screen *ebiten.Image, c *console.Console) {
	for _, link := range debugui.Links(c) {
		clr := color.NRGBA{
			R: uint8(link.Color.R * 255),
			G: uint8(link.Color.G * 255),
			B: uint8(link.Color.B * 255),
			A: uint8(console.LinkAlpha * 255),
		}
		for _, s := range Dashes(link.From, link.To, DashLength, DashGap) {
			vector.StrokeLine(screen, s.From.X, s.From.Y, s.To.X, s.To.Y, LinkStroke, clr, true)
		}
	}
}
