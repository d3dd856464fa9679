// Package console is a frame-driven observability overlay. Calling code
// registers named bindings to object properties and the console refreshes
// their panels at a per-entity cadence, evaluates highlight and breakpoint
// predicates every tick and keeps a short scrolling log.
//
// A Console is not safe for concurrent use. Register entities and call Tick
// from the render loop, usually by adding the Console to a frame.Scheduler.
package console

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/vconsole/frame"
	"github.com/plus3/vconsole/scene"
)

var (
	DebugHitColor     = scene.Red
	HighlightHitColor = scene.Purple
)

// Inspector is an external structural inspector toggled from the dock.
type Inspector interface {
	Visible() bool
	SetVisible(visible bool) error
	// Widths reports the pixel widths the inspector occupies on the left and
	// right edges of the viewport while visible.
	Widths() (left, right float32)
}

// BreakpointFunc is called on every tick where an entity's debug predicate holds.
type BreakpointFunc func(e *Entity, value any)

type Console struct {
	log        zerolog.Logger
	projector  scene.Projector
	inspector  Inspector
	breakpoint BreakpointFunc
	mappings   map[Kind]Mapping

	entities map[string]*Entity
	order    []*Entity

	ring           *Ring[*Entity]
	lines          []string
	consoleVisible bool

	side      Side
	padLeft   float32
	padRight  float32
	viewportW float32
	viewportH float32
	ticks     uint64
	closed    bool
}

type Option func(*Console)

func WithLogger(log zerolog.Logger) Option {
	return func(c *Console) { c.log = log }
}

// WithProjector sets how mesh-linked badges find their screen position.
func WithProjector(p scene.Projector) Option {
	return func(c *Console) { c.projector = p }
}

func WithInspector(i Inspector) Option {
	return func(c *Console) { c.inspector = i }
}

// WithBreakpoint replaces the debug-hit hook. The default logs a warning.
func WithBreakpoint(fn BreakpointFunc) Option {
	return func(c *Console) { c.breakpoint = fn }
}

// WithConsoleCapacity sets how many console lines are kept and drawn.
func WithConsoleCapacity(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.ring = NewRing[*Entity](n)
		}
	}
}

func WithViewport(width, height float32) Option {
	return func(c *Console) { c.viewportW, c.viewportH = width, height }
}

func New(opts ...Option) *Console {
	c := &Console{
		log:       zerolog.Nop(),
		mappings:  defaultMappings(),
		entities:  make(map[string]*Entity),
		ring:      NewRing[*Entity](DefaultCapacity),
		viewportW: 1280,
		viewportH: 720,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breakpoint == nil {
		c.breakpoint = func(e *Entity, value any) {
			c.log.Warn().Str("entity", e.name).Interface("value", value).Msg("debug predicate hit")
		}
	}
	c.lines = make([]string, c.ring.Cap())
	return c
}

// Close drops every entity and console line. Later calls on the console are no-ops.
func (c *Console) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.entities = make(map[string]*Entity)
	c.order = nil
	c.ring.Clear()
	clear(c.lines)
	c.consoleVisible = false
	c.log.Debug().Msg("console closed")
}

func (c *Console) Closed() bool { return c.closed }

// Mapping returns how kind is drawn.
func (c *Console) Mapping(kind Kind) (Mapping, bool) {
	m, ok := c.mappings[kind]
	return m, ok
}

// Register creates the entity name or rebinds it in place. Rebinding keeps the
// entity's panel and fields; repeated calls with the same arguments are
// idempotent. ConsoleLine entities are appended to the console log instead of
// the registry.
func (c *Console) Register(name string, kind Kind, source any, property string, mode Mode, rate int) (*Entity, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if rate <= 0 {
		return nil, eris.Wrapf(ErrInvalidRefreshRate, "entity %q: %d", name, rate)
	}
	if isNil(source) {
		return nil, eris.Wrapf(ErrNilSource, "entity %q", name)
	}
	mapping, ok := c.mappings[kind]
	if !ok {
		return nil, eris.Wrapf(ErrIncompatibleValue, "entity %q: unknown kind %s", name, kind)
	}

	existing, ok := c.entities[name]
	if ok && mode != ConsoleLine && existing.kind != kind {
		return nil, eris.Wrapf(ErrKindMismatch, "entity %q is %s, not %s", name, existing.kind, kind)
	}

	value, err := Properties.Resolve(source, property)
	if err != nil {
		return nil, eris.Wrapf(err, "entity %q", name)
	}
	if _, err := mapping.Draw(value); err != nil {
		return nil, eris.Wrapf(err, "entity %q", name)
	}

	candidate := &Entity{
		name:     name,
		kind:     kind,
		source:   source,
		property: property,
		mode:     mode,
		rate:     rate,
		mapping:  mapping,
	}
	anchor, err := candidate.anchor(value)
	if err != nil {
		return nil, err
	}

	if mode == ConsoleLine {
		c.ring.Push(candidate)
		return candidate, nil
	}

	if existing != nil {
		existing.source = source
		existing.property = property
		existing.rate = rate
		if existing.mode != mode || !sameAnchor(existing.panel.Anchor, anchor) {
			existing.panel.Anchor = anchor
		}
		existing.mode = mode
		existing.panel.Align = c.side
		return existing, nil
	}

	candidate.panel = newPanel(name, mapping, anchor, c.side)
	c.entities[name] = candidate
	c.order = append(c.order, candidate)
	c.log.Debug().Str("entity", name).Stringer("kind", kind).Stringer("mode", mode).Int("rate", rate).Msg("entity registered")
	return candidate, nil
}

func sameAnchor(a, b Anchor) bool {
	ma, okA := a.(*MeshAnchor)
	mb, okB := b.(*MeshAnchor)
	if okA != okB {
		return false
	}
	if !okA {
		return true
	}
	return ma.Node == mb.Node
}

func (c *Console) Log(name string, kind Kind, source any, property string) (*Entity, error) {
	return c.Register(name, kind, source, property, Docked, 1)
}

func (c *Console) Log5(name string, kind Kind, source any, property string) (*Entity, error) {
	return c.Register(name, kind, source, property, Docked, 5)
}

func (c *Console) Log30(name string, kind Kind, source any, property string) (*Entity, error) {
	return c.Register(name, kind, source, property, Docked, 30)
}

func (c *Console) Log60(name string, kind Kind, source any, property string) (*Entity, error) {
	return c.Register(name, kind, source, property, Docked, 60)
}

func (c *Console) Log120(name string, kind Kind, source any, property string) (*Entity, error) {
	return c.Register(name, kind, source, property, Docked, 120)
}

// LogF registers a mesh-linked badge refreshed every frame.
func (c *Console) LogF(name string, kind Kind, source any, property string) (*Entity, error) {
	return c.Register(name, kind, source, property, MeshLinked, 1)
}

func (c *Console) LogF5(name string, kind Kind, source any, property string) (*Entity, error) {
	return c.Register(name, kind, source, property, MeshLinked, 5)
}

func (c *Console) LogF30(name string, kind Kind, source any, property string) (*Entity, error) {
	return c.Register(name, kind, source, property, MeshLinked, 30)
}

func (c *Console) LogF60(name string, kind Kind, source any, property string) (*Entity, error) {
	return c.Register(name, kind, source, property, MeshLinked, 60)
}

func (c *Console) LogF120(name string, kind Kind, source any, property string) (*Entity, error) {
	return c.Register(name, kind, source, property, MeshLinked, 120)
}

// Print appends a line to the console log. The line shows the current value of
// source and property each time the console is drawn.
func (c *Console) Print(kind Kind, source any, property string) (*Entity, error) {
	return c.Register("default", kind, source, property, ConsoleLine, 1)
}

// Execute implements frame.System.
func (c *Console) Execute(*frame.UpdateFrame) {
	c.Tick()
}

// Tick redraws entities whose cadence is due, evaluates predicates against
// current values, draws the console lines and advances the tick counter.
func (c *Console) Tick() {
	if c.closed {
		return
	}

	for _, e := range c.order {
		c.tickEntity(e)
	}
	c.drawConsole()
	c.updatePadding()
	c.ticks++
}

func (c *Console) tickEntity(e *Entity) {
	e.panel.Anchor.Update(c.projector)

	value, err := e.Value()
	if err != nil {
		c.log.Debug().Err(err).Str("entity", e.name).Msg("cannot resolve entity")
		return
	}

	if c.ticks%uint64(e.rate) == 0 {
		if err := e.draw(value); err != nil {
			c.log.Debug().Err(err).Str("entity", e.name).Msg("cannot draw entity")
		}
	}

	e.panel.Background = e.panel.base
	if e.debugWhen != nil && e.debugWhen(value) {
		e.panel.Background = DebugHitColor
		c.breakpoint(e, value)
	}
	if e.highlightWhen != nil && e.highlightWhen(value) {
		e.panel.Background = HighlightHitColor
	}
}

func (c *Console) drawConsole() {
	entries := c.ring.Latest(len(c.lines))
	clear(c.lines)
	offset := len(c.lines) - len(entries)
	for i, e := range entries {
		value, err := e.Value()
		if err != nil {
			c.log.Debug().Err(err).Str("entity", e.name).Msg("cannot resolve console line")
			continue
		}
		c.lines[offset+i] = e.text(value)
	}
	c.consoleVisible = len(entries) > 0
}

func (c *Console) updatePadding() {
	c.padLeft, c.padRight = 0, 0
	if c.inspector == nil || !c.inspector.Visible() {
		return
	}
	left, right := c.inspector.Widths()
	if c.side == Left {
		c.padLeft = left
	} else {
		c.padRight = right
	}
}

// ToggleDockSide moves the dock, its button bar and every docked panel to the
// opposite edge.
func (c *Console) ToggleDockSide() {
	if c.closed {
		return
	}
	c.side = c.side.Flip()
	for _, e := range c.order {
		if e.Docked() {
			e.panel.Align = c.side
		}
	}
	c.updatePadding()
	c.log.Debug().Stringer("side", c.side).Msg("dock side toggled")
}

func (c *Console) Side() Side { return c.side }

// ToggleInspector shows or hides the structural inspector. Without an
// inspector it does nothing.
func (c *Console) ToggleInspector() error {
	if c.closed || c.inspector == nil {
		return nil
	}
	if err := c.inspector.SetVisible(!c.inspector.Visible()); err != nil {
		return eris.Wrap(err, "toggle inspector")
	}
	c.updatePadding()
	return nil
}

func (c *Console) InspectorVisible() bool {
	return c.inspector != nil && c.inspector.Visible()
}

// Padding returns the dock padding, in pixels, applied on each edge to keep
// clear of a visible inspector.
func (c *Console) Padding() (left, right float32) { return c.padLeft, c.padRight }

// Entities returns the registered entities in registration order.
func (c *Console) Entities() []*Entity {
	out := make([]*Entity, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Console) Entity(name string) (*Entity, bool) {
	e, ok := c.entities[name]
	return e, ok
}

// Len returns the number of named entities. Console lines are not counted.
func (c *Console) Len() int { return len(c.order) }

// ConsoleLines returns the drawn console lines, most recent last. Lines not
// yet filled are empty.
func (c *Console) ConsoleLines() []string {
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// ConsoleEntries returns the entities currently held by the console log, oldest first.
func (c *Console) ConsoleEntries() []*Entity { return c.ring.All() }

func (c *Console) ConsoleVisible() bool { return c.consoleVisible }

// Panels returns the panels of every named entity in registration order.
func (c *Console) Panels() []*Panel {
	out := make([]*Panel, len(c.order))
	for i, e := range c.order {
		out[i] = e.panel
	}
	return out
}

func (c *Console) Ticks() uint64 { return c.ticks }

func (c *Console) Viewport() (width, height float32) { return c.viewportW, c.viewportH }

// SetViewport updates the viewport size used to size panels.
func (c *Console) SetViewport(width, height float32) {
	c.viewportW, c.viewportH = width, height
}
