// Package dom describes the host document surface: hit testing by pixel,
// inline style access and synthetic mouse events. Page is an in-memory
// implementation made of absolutely positioned boxes.
package dom

import "strings"

// Point is a position in document pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in document pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// MouseEvent is a synthetic mouse event.
type MouseEvent struct {
	Type       string
	X, Y       float64
	Button     int
	Bubbles    bool
	Cancelable bool
	// Target is set by the document when the event is dispatched.
	Target Element
}

// Element is a node of the host document.
type Element interface {
	ID() string
	TagName() string
	ClassName() string
	Style(prop string) string
	SetStyle(prop, value string)
	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool
	// Dispatch delivers ev to the element. Delivery to a detached element is a no-op
	// and reports false.
	Dispatch(ev MouseEvent) bool
	Connected() bool
}

// Document is the host document.
type Document interface {
	// ElementsFromPoint returns the elements under (x, y), top-most first.
	ElementsFromPoint(x, y float64) []Element
	// ElementByID returns nil when no element has the id.
	ElementByID(id string) Element
	Body() Element
}

// Selector renders an element as "#id.class", omitting empty parts.
func Selector(el Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	if id := el.ID(); id != "" {
		b.WriteString("#")
		b.WriteString(id)
	}
	if class := el.ClassName(); class != "" {
		b.WriteString(".")
		b.WriteString(strings.ReplaceAll(class, " ", "."))
	}
	return b.String()
}
