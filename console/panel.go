package console

import (
	"strings"

	"github.com/plus3/vconsole/scene"
)

// Side is the screen edge the dock is aligned to.
type Side int

const (
	Right Side = iota
	Left
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Flip returns the opposite side.
func (s Side) Flip() Side {
	if s == Left {
		return Right
	}
	return Left
}

const (
	PanelAlpha = 0.4
	LinkAlpha  = 0.4

	// BadgeOffsetX and BadgeOffsetY place a mesh badge relative to the
	// projected node position, in pixels.
	BadgeOffsetX = -200
	BadgeOffsetY = -200
)

// Field is one line of text in a panel.
type Field struct {
	Label string
	Text  string
}

// Panel is the widget an entity is drawn into. Docked panels and mesh badges
// share it and only differ in their Anchor.
type Panel struct {
	Label      string
	Fields     []Field
	Background scene.Color3
	Alpha      float32
	// Width is a fraction of the viewport width.
	Width   float32
	Align   Side
	Visible bool
	Anchor  Anchor

	base scene.Color3
}

func newPanel(label string, mapping Mapping, anchor Anchor, align Side) *Panel {
	fields := make([]Field, mapping.Fields())
	for i, l := range mapping.Labels {
		fields[i].Label = l
	}
	return &Panel{
		Label:      label,
		Fields:     fields,
		Background: mapping.Color,
		Alpha:      PanelAlpha,
		Width:      mapping.Width,
		Align:      align,
		Visible:    true,
		Anchor:     anchor,
		base:       mapping.Color,
	}
}

// Text returns the panel's field texts joined by a single space.
func (p *Panel) Text() string {
	texts := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		texts[i] = f.Text
	}
	return strings.Join(texts, " ")
}

// Anchor decides where a panel is placed on screen.
type Anchor interface {
	// Docked reports whether the panel is laid out in the dock.
	Docked() bool
	// Update recomputes the anchor position for the current frame.
	Update(projector scene.Projector)
}

// DockAnchor stacks the panel in the dock.
type DockAnchor struct{}

func (DockAnchor) Docked() bool           { return true }
func (DockAnchor) Update(scene.Projector) {}

// MeshAnchor keeps a badge at a fixed pixel offset from the projected
// position of a scene node. Target is the link line's end point.
type MeshAnchor struct {
	Node     scene.Node
	Offset   scene.Vec2
	Target   scene.Vec2
	Position scene.Vec2
	OnScreen bool
}

func NewMeshAnchor(node scene.Node) *MeshAnchor {
	return &MeshAnchor{Node: node, Offset: scene.Vec2{X: BadgeOffsetX, Y: BadgeOffsetY}}
}

func (a *MeshAnchor) Docked() bool { return false }

func (a *MeshAnchor) Update(projector scene.Projector) {
	if projector == nil || a.Node == nil {
		a.OnScreen = false
		return
	}
	x, y, ok := projector.Project(a.Node)
	a.OnScreen = ok
	if !ok {
		return
	}
	a.Target = scene.Vec2{X: x, Y: y}
	a.Position = scene.Vec2{X: x + a.Offset.X, Y: y + a.Offset.Y}
}
