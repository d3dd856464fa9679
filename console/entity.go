package console

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/plus3/vconsole/scene"
)

// Predicate is evaluated against an entity's current value every tick.
type Predicate func(value any) bool

// Entity is a named binding to a value observed by the console.
type Entity struct {
	name     string
	kind     Kind
	source   any
	property string
	mode     Mode
	rate     int

	debugWhen     Predicate
	highlightWhen Predicate

	panel   *Panel
	mapping Mapping
}

func (e *Entity) Name() string { return e.name }
func (e *Entity) Kind() Kind { return e.kind }
func (e *Entity) Source() any { return e.source }
func (e *Entity) Property() string { return e.property }
func (e *Entity) Mode() Mode { return e.mode }
func (e *Entity) RefreshRate() int { return e.rate }
func (e *Entity) Panel() *Panel { return e.panel }
func (e *Entity) Docked() bool { return e.mode == Docked }

// Value resolves the observed value from the source and property.
func (e *Entity) Value() (any, error) {
	return Properties.Resolve(e.source, e.property)
}

// SetRefreshRate sets the number of frames between redraws. n must be positive.
func (e *Entity) SetRefreshRate(n int) error {
	if n <= 0 {
		return eris.Wrapf(ErrInvalidRefreshRate, "entity %q: %d", e.name, n)
	}
	e.rate = n
	return nil
}

// Debug sets the predicate that, when true, paints the panel red and hits the
// console's breakpoint hook. A nil predicate clears it.
func (e *Entity) Debug(when Predicate) *Entity {
	e.debugWhen = when
	return e
}

// Highlight sets the predicate that, when true, paints the panel purple.
func (e *Entity) Highlight(when Predicate) *Entity {
	e.highlightWhen = when
	return e
}

// draw formats value into the panel fields.
func (e *Entity) draw(value any) error {
	texts, err := e.mapping.Draw(value)
	if err != nil {
		return err
	}
	for i := range e.panel.Fields {
		if i < len(texts) {
			e.panel.Fields[i].Text = texts[i]
		}
	}
	if e.kind == Color3 || e.kind == Color4 {
		if c, ok := colorOf(value); ok {
			e.panel.base = c
			e.panel.Background = c
		}
	}
	return nil
}

// text formats value as a single console line.
func (e *Entity) text(value any) string {
	texts, err := e.mapping.Draw(value)
	if err != nil {
		return ""
	}
	return strings.Join(texts, " ")
}

func (e *Entity) anchor(value any) (Anchor, error) {
	if e.mode != MeshLinked {
		return DockAnchor{}, nil
	}
	if n, ok := e.source.(scene.Node); ok && !isNil(n) {
		return NewMeshAnchor(n), nil
	}
	if n, ok := value.(scene.Node); ok && !isNil(n) {
		return NewMeshAnchor(n), nil
	}
	return nil, eris.Wrapf(ErrIncompatibleValue, "entity %q: mesh-linked entities need a scene.Node source or value", e.name)
}
