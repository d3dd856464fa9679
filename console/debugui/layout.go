package debugui

import (
	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/scene"
)

const (
	// LineHeight approximates one line of text with the default imgui font.
	LineHeight     = 17
	ConsoleLineGap = 14
	PanelPadding   = 6
	MinDockWidth   = 120
	ConsoleMargin  = 20
)

// Rect is a screen-space rectangle with its anchor pivot, in the form
// SetNextWindowPosV expects.
type Rect struct {
	X, Y          float32
	Width, Height float32
	PivotX        float32
}

// DockLayout places the dock window against the current side, clear of the
// inspector padding. Its width is that of the widest docked panel.
func DockLayout(c *console.Console) Rect {
	w, h := c.Viewport()
	padLeft, padRight := c.Padding()

	width := float32(MinDockWidth)
	for _, p := range c.Panels() {
		if p.Anchor.Docked() && p.Width*w > width {
			width = p.Width * w
		}
	}

	if c.Side() == console.Left {
		return Rect{X: padLeft, Width: width, Height: h}
	}
	return Rect{X: w - padRight, Width: width, Height: h, PivotX: 1}
}

// PanelHeight is the height of a panel's background: the label line plus one
// line per field.
func PanelHeight(p *console.Panel) float32 {
	return float32(1+len(p.Fields))*LineHeight + PanelPadding
}

// BadgeLayout returns where the badge of a mesh-linked panel goes, and false
// when the panel is docked or its node is off screen.
func BadgeLayout(c *console.Console, p *console.Panel) (Rect, bool) {
	anchor, ok := p.Anchor.(*console.MeshAnchor)
	if !ok || !anchor.OnScreen || !p.Visible {
		return Rect{}, false
	}
	w, _ := c.Viewport()
	return Rect{
		X:      anchor.Position.X,
		Y:      anchor.Position.Y,
		Width:  p.Width * w,
		Height: PanelHeight(p),
	}, true
}

// ConsoleLayout places the console log at the bottom of the viewport, on the
// side opposite the dock.
func ConsoleLayout(c *console.Console) Rect {
	w, h := c.Viewport()
	lines := len(c.ConsoleLines())
	height := float32(lines)*ConsoleLineGap + 2*PanelPadding
	width := w / 2

	x := float32(ConsoleMargin)
	if c.Side() == console.Left {
		x = w - width - ConsoleMargin
	}
	return Rect{X: x, Y: h - height - ConsoleMargin, Width: width, Height: height}
}

// Link is a line from a badge to the node it describes.
type Link struct {
	From, To scene.Vec2
	Color    scene.Color3
}

// Links returns one link per on-screen mesh badge.
func Links(c *console.Console) []Link {
	var links []Link
	for _, p := range c.Panels() {
		anchor, ok := p.Anchor.(*console.MeshAnchor)
		if !ok || !anchor.OnScreen || !p.Visible {
			continue
		}
		links = append(links, Link{From: anchor.Position, To: anchor.Target, Color: p.Background})
	}
	return links
}
