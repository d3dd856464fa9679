package dom

import (
	"image"
	"image/color"
	"image/draw"
	"slices"
	"strconv"
	"strings"

	"github.com/kamstrup/intmap"
)

// NodeID identifies a Box within its Page.
type NodeID uint64

// BoxSpec describes a box added to a Page.
type BoxSpec struct {
	ID     string
	Tag    string
	Class  string
	Rect   Rect
	Z      int
	Fill   color.RGBA
	Parent *Box
}

// Box is an absolutely positioned element of a Page.
type Box struct {
	node     NodeID
	page     *Page
	id       string
	tag      string
	classes  []string
	style    map[string]string
	rect     Rect
	z        int
	fill     color.RGBA
	parent   *Box
	handlers map[string][]func(MouseEvent)
	detached bool
}

// Page is an in-memory document of stacked boxes. Later boxes with the same Z
// paint over earlier ones. Not safe for concurrent use.
type Page struct {
	Width      float64
	Height     float64
	Background color.RGBA

	body   *Box
	nodes  *intmap.Map[NodeID, *Box]
	byID   map[string]NodeID
	order  []*Box
	nextID NodeID
}

const bodyZ = -1 << 31

var highlightColor = color.RGBA{0, 255, 255, 255}

func NewPage(width, height float64) *Page {
	p := &Page{
		Width:      width,
		Height:     height,
		Background: color.RGBA{255, 255, 255, 255},
		nodes:      intmap.New[NodeID, *Box](64),
		byID:       make(map[string]NodeID),
	}
	p.body = p.Add(BoxSpec{Tag: "body", Rect: Rect{W: width, H: height}, Z: bodyZ})
	return p
}

// Add creates a box from spec. Boxes without a parent are children of the body.
func (p *Page) Add(spec BoxSpec) *Box {
	p.nextID++
	parent := spec.Parent
	if parent == nil {
		parent = p.body
	}
	tag := spec.Tag
	if tag == "" {
		tag = "div"
	}
	b := &Box{
		node:     p.nextID,
		page:     p,
		id:       spec.ID,
		tag:      strings.ToUpper(tag),
		classes:  strings.Fields(spec.Class),
		style:    make(map[string]string),
		rect:     spec.Rect,
		z:        spec.Z,
		fill:     spec.Fill,
		parent:   parent,
		handlers: make(map[string][]func(MouseEvent)),
	}
	p.nodes.Put(b.node, b)
	if spec.ID != "" {
		p.byID[spec.ID] = b.node
	}
	p.order = append(p.order, b)
	return b
}

// Detach removes a box and its descendants from the document.
// Detached boxes keep their state but no longer receive events.
func (p *Page) Detach(b *Box) {
	if b == nil || b.detached || b == p.body {
		return
	}
	for _, other := range slices.Clone(p.order) {
		if other == b || other.isDescendantOf(b) {
			other.detached = true
			p.nodes.Del(other.node)
			if other.id != "" && p.byID[other.id] == other.node {
				delete(p.byID, other.id)
			}
		}
	}
	p.order = slices.DeleteFunc(p.order, func(o *Box) bool { return o.detached })
}

func (p *Page) Body() Element {
	return p.body
}

func (p *Page) ElementByID(id string) Element {
	node, ok := p.byID[id]
	if !ok {
		return nil
	}
	if b, ok := p.nodes.Get(node); ok {
		return b
	}
	return nil
}

// Box returns the box with the given id, or nil.
func (p *Page) Box(id string) *Box {
	el := p.ElementByID(id)
	if el == nil {
		return nil
	}
	return el.(*Box)
}

// Len returns the number of connected boxes, the body included.
func (p *Page) Len() int {
	return p.nodes.Len()
}

// paintOrder returns connected boxes bottom-most first.
func (p *Page) paintOrder() []*Box {
	boxes := slices.Clone(p.order)
	slices.SortStableFunc(boxes, func(a, b *Box) int {
		switch {
		case a.z < b.z:
			return -1
		case a.z > b.z:
			return 1
		}
		return 0
	})
	return boxes
}

func (p *Page) ElementsFromPoint(x, y float64) []Element {
	point := Point{x, y}
	boxes := p.paintOrder()

	var hits []Element
	for i := len(boxes) - 1; i >= 0; i-- {
		b := boxes[i]
		if !b.hitTestable() || !b.rect.Contains(point) {
			continue
		}
		hits = append(hits, b)
	}
	return hits
}

// Render paints the page into an RGBA image of the page size. Boxes carrying a
// box-shadow are outlined in cyan.
func (p *Page) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(p.Width), int(p.Height)))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.Background), image.Point{}, draw.Src)

	for _, b := range p.paintOrder() {
		if b == p.body || !b.visible() {
			continue
		}
		r := b.bounds()
		draw.Draw(img, r, image.NewUniform(b.fill), image.Point{}, draw.Over)

		if shadow := b.style["box-shadow"]; shadow != "" && shadow != "none" {
			outline(img, r.Inset(-3), 3, highlightColor)
		}
	}
	return img
}

func outline(img draw.Image, r image.Rectangle, width int, c color.RGBA) {
	u := image.NewUniform(c)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

func (b *Box) ID() string        { return b.id }
func (b *Box) TagName() string   { return b.tag }
func (b *Box) ClassName() string { return strings.Join(b.classes, " ") }
func (b *Box) Connected() bool   { return !b.detached }
func (b *Box) Rect() Rect        { return b.rect }
func (b *Box) Parent() *Box      { return b.parent }

func (b *Box) Style(prop string) string {
	return b.style[prop]
}

// SetStyle sets an inline style property. Pixel values of left, top, width
// and height move or resize the box. An empty value removes the property.
func (b *Box) SetStyle(prop, value string) {
	if value == "" {
		delete(b.style, prop)
		return
	}
	b.style[prop] = value

	px, ok := parsePixels(value)
	if !ok {
		return
	}
	switch prop {
	case "left":
		b.rect.X = px
	case "top":
		b.rect.Y = px
	case "width":
		b.rect.W = px
	case "height":
		b.rect.H = px
	}
}

func (b *Box) AddClass(name string) {
	if !b.HasClass(name) {
		b.classes = append(b.classes, name)
	}
}

func (b *Box) RemoveClass(name string) {
	b.classes = slices.DeleteFunc(b.classes, func(c string) bool { return c == name })
}

func (b *Box) HasClass(name string) bool {
	return slices.Contains(b.classes, name)
}

// On registers a handler for events of the given type.
func (b *Box) On(eventType string, fn func(MouseEvent)) {
	b.handlers[eventType] = append(b.handlers[eventType], fn)
}

func (b *Box) Dispatch(ev MouseEvent) bool {
	if b.detached {
		return false
	}
	ev.Target = b
	for node := b; node != nil; node = node.parent {
		for _, fn := range node.handlers[ev.Type] {
			fn(ev)
		}
		if !ev.Bubbles {
			break
		}
	}
	return true
}

func (b *Box) isDescendantOf(ancestor *Box) bool {
	for node := b.parent; node != nil; node = node.parent {
		if node == ancestor {
			return true
		}
	}
	return false
}

func (b *Box) visible() bool {
	return !b.detached && b.style["visibility"] != "hidden" && b.style["display"] != "none"
}

func (b *Box) hitTestable() bool {
	return b.visible() && b.style["pointer-events"] != "none"
}

func (b *Box) bounds() image.Rectangle {
	return image.Rect(int(b.rect.X), int(b.rect.Y), int(b.rect.X+b.rect.W), int(b.rect.Y+b.rect.H))
}

func parsePixels(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if !strings.HasSuffix(s, "px") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
