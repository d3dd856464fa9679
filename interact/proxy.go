// Package interact maps picks on the textured planes back into document
// coordinates and drives hover highlighting and synthetic clicks on the
// elements found there.
package interact

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/dom"
	"github.com/plus3/vconsole/frame"
	"github.com/plus3/vconsole/scene"
)

// State is the proxy's per-frame interaction state.
type State int

const (
	Idle State = iota
	Hovering
	Selected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	case Selected:
		return "selected"
	}
	return "unknown"
}

const (
	DefaultCursorID = "fake-cursor"
	NoCursorClass   = "no-cursor"

	highlightProperty = "box-shadow"
	highlightValue    = "0px 0px 10px 5px #0ff"
)

// Pointer reports the current pointer position in screen pixels.
type Pointer interface {
	Position() (x, y float32)
}

// PointerFunc adapts a function to Pointer.
type PointerFunc func() (x, y float32)

func (f PointerFunc) Position() (x, y float32) { return f() }

// Readout holds the values the proxy publishes to an attached console.
type Readout struct {
	MouseX  float32
	MouseY  float32
	HTMLX   float64
	HTMLY   float64
	Element string
}

type hoverFlag struct {
	On bool
}

// Proxy is the interaction proxy between the 3D planes and the host document.
// It implements frame.System and must run on the render loop's scheduler.
type Proxy struct {
	layout   Layout
	doc      dom.Document
	picker   scene.Picker
	pointer  Pointer
	console  *console.Console
	log      zerolog.Logger
	cursorID string

	state       State
	plane       string
	selected    dom.Element
	highlighted dom.Element
	savedStyle  string

	readout Readout
	hovered map[string]*hoverFlag
}

type Option func(*Proxy)

// WithConsole publishes pointer, hover and element readouts to c.
func WithConsole(c *console.Console) Option {
	return func(p *Proxy) { p.console = c }
}

func WithLogger(log zerolog.Logger) Option {
	return func(p *Proxy) { p.log = log }
}

func WithPointer(pointer Pointer) Option {
	return func(p *Proxy) { p.pointer = pointer }
}

// WithCursorID sets the id of the synthetic cursor marker. An empty id means
// no marker is managed and the top-most of several stacked elements is skipped.
func WithCursorID(id string) Option {
	return func(p *Proxy) { p.cursorID = id }
}

func New(layout Layout, doc dom.Document, picker scene.Picker, opts ...Option) *Proxy {
	p := &Proxy{
		layout:   layout,
		doc:      doc,
		picker:   picker,
		log:      zerolog.Nop(),
		cursorID: DefaultCursorID,
		hovered:  make(map[string]*hoverFlag, len(layout.Planes)),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, plane := range layout.Planes {
		p.hovered[plane.Mesh] = &hoverFlag{}
	}
	p.publish()
	return p
}

func (p *Proxy) publish() {
	if p.console == nil {
		return
	}
	register := func(name string, kind console.Kind, source any, property string) {
		if _, err := p.console.Log(name, kind, source, property); err != nil {
			p.log.Warn().Err(err).Str("entity", name).Msg("cannot publish readout")
		}
	}
	register("Mouse X", console.Float, &p.readout, "MouseX")
	register("Mouse Y", console.Float, &p.readout, "MouseY")
	for i, plane := range p.layout.Planes {
		register("Hovered "+strconv.Itoa(i+1), console.Boolean, p.hovered[plane.Mesh], "On")
	}
	register("HTML X", console.Float, &p.readout, "HTMLX")
	register("HTML Y", console.Float, &p.readout, "HTMLY")
	register("HTML Element", console.Text, &p.readout, "Element")
}

func (p *Proxy) State() State { return p.state }
func (p *Proxy) Plane() string { return p.plane }
func (p *Proxy) Selected() dom.Element { return p.selected }
func (p *Proxy) Highlighted() dom.Element { return p.highlighted }
func (p *Proxy) Readout() Readout { return p.readout }
func (p *Proxy) Layout() Layout { return p.layout }

// Execute runs one frame: pick at the pointer, update the hover state and
// the highlighted element.
func (p *Proxy) Execute(*frame.UpdateFrame) {
	if p.pointer == nil || p.picker == nil {
		return
	}
	x, y := p.pointer.Position()
	p.readout.MouseX, p.readout.MouseY = x, y

	pick := p.picker.PickAt(x, y)
	p.hover(pick)

	if p.state == Idle {
		p.UpdateHoverHighlight(nil)
		return
	}

	el, _, ok := p.Resolve(pick)
	if !ok || p.isCursor(el) {
		return
	}
	p.readout.Element = dom.Selector(el)
	p.UpdateHoverHighlight(el)
}

// hover applies the Idle/Hovering transitions for a pick.
func (p *Proxy) hover(pick scene.PickInfo) {
	name := pick.MeshName()
	_, recognized := p.layout.Plane(name)
	if !recognized {
		name = ""
	}

	for mesh, flag := range p.hovered {
		flag.On = mesh == name
	}

	if name == "" {
		if p.state != Idle {
			p.log.Debug().Str("plane", p.plane).Msg("pointer left plane")
		}
		p.state = Idle
		p.plane = ""
		p.selected = nil
	} else {
		if p.state == Idle || p.plane != name {
			p.log.Debug().Str("plane", name).Msg("pointer entered plane")
		}
		p.state = Hovering
		p.plane = name
	}

	p.syncCursor()
}

// syncCursor hides the native cursor and shows the marker while a plane is hovered.
func (p *Proxy) syncCursor() {
	if p.doc == nil {
		return
	}
	hovering := p.state != Idle
	if body := p.doc.Body(); body != nil {
		if hovering {
			body.AddClass(NoCursorClass)
		} else {
			body.RemoveClass(NoCursorClass)
		}
	}
	if marker := p.cursor(); marker != nil {
		if hovering {
			marker.SetStyle("visibility", "visible")
		} else {
			marker.SetStyle("visibility", "hidden")
		}
	}
}

// PickToHTML maps a pick into document coordinates using the proxy's layout.
func (p *Proxy) PickToHTML(pick scene.PickInfo) (dom.Point, bool) {
	return p.layout.PickToHTML(pick)
}

// Resolve maps a pick into the document and returns the logical target element
// at that point. The cursor marker is moved to the point first.
func (p *Proxy) Resolve(pick scene.PickInfo) (dom.Element, dom.Point, bool) {
	pt, ok := p.layout.PickToHTML(pick)
	if !ok || p.doc == nil {
		return nil, pt, false
	}

	p.positionCursor(pt)
	p.readout.HTMLX, p.readout.HTMLY = pt.X, pt.Y

	el := p.target(p.doc.ElementsFromPoint(pt.X, pt.Y))
	if el == nil {
		return nil, pt, false
	}
	return el, pt, true
}

func (p *Proxy) target(elements []dom.Element) dom.Element {
	if p.cursorID != "" {
		for _, el := range elements {
			if !p.isCursor(el) {
				return el
			}
		}
		return nil
	}
	switch len(elements) {
	case 0:
		return nil
	case 1:
		return elements[0]
	}
	return elements[1]
}

// Pick is the explicit pick action at screen position (x, y). While a plane is
// hovered it resolves the element under the pick, clicks it and moves to Selected.
func (p *Proxy) Pick(x, y float32) (dom.Element, bool) {
	if p.picker == nil {
		return nil, false
	}
	pick := p.picker.PickAt(x, y)
	p.hover(pick)
	if p.state == Idle {
		return nil, false
	}

	el, pt, ok := p.Resolve(pick)
	if !ok {
		return nil, false
	}
	p.SimulateClick(el, pt)
	p.state = Selected
	p.selected = el
	return el, true
}

// SimulateClick dispatches a synthetic click on el. Detached elements ignore it.
func (p *Proxy) SimulateClick(el dom.Element, at dom.Point) {
	if el == nil {
		return
	}
	delivered := el.Dispatch(dom.MouseEvent{
		Type:       "click",
		X:          at.X,
		Y:          at.Y,
		Bubbles:    true,
		Cancelable: true,
	})
	if !delivered {
		p.log.Debug().Str("element", dom.Selector(el)).Msg("click target detached")
		return
	}

	line := "Simulated click on " + el.TagName() + dom.Selector(el)
	p.log.Debug().Float64("x", at.X).Float64("y", at.Y).Msg(line)
	if p.console != nil {
		if _, err := p.console.Print(console.Text, line, ""); err != nil {
			p.log.Warn().Err(err).Msg("cannot print click")
		}
	}
}

// UpdateHoverHighlight moves the highlight to el. The previous element gets
// back the exact style value it had before it was highlighted. Passing nil
// clears the highlight.
func (p *Proxy) UpdateHoverHighlight(el dom.Element) {
	if p.highlighted != nil && p.highlighted != el {
		p.highlighted.SetStyle(highlightProperty, p.savedStyle)
		p.highlighted = nil
		p.savedStyle = ""
	}

	if el == nil || p.state == Idle || p.isCursor(el) || p.highlighted == el {
		return
	}

	p.savedStyle = el.Style(highlightProperty)
	el.SetStyle(highlightProperty, highlightValue)
	p.highlighted = el
}

func (p *Proxy) cursor() dom.Element {
	if p.cursorID == "" || p.doc == nil {
		return nil
	}
	return p.doc.ElementByID(p.cursorID)
}

func (p *Proxy) isCursor(el dom.Element) bool {
	return el != nil && p.cursorID != "" && el.ID() == p.cursorID
}

func (p *Proxy) positionCursor(pt dom.Point) {
	marker := p.cursor()
	if marker == nil {
		return
	}
	marker.SetStyle("left", strconv.FormatFloat(pt.X, 'f', -1, 64)+"px")
	marker.SetStyle("top", strconv.FormatFloat(pt.Y, 'f', -1, 64)+"px")
}
