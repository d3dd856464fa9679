package console

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/plus3/vconsole/scene"
)

// Kind is the display type of an entity, stated by the caller at registration.
type Kind int

const (
	Text Kind = iota
	Float
	Boolean
	Mesh
	Vector2
	Vector3
	Color3
	Color4
)

var kindNames = [...]string{"Text", "Float", "Boolean", "Mesh", "Vector2", "Vector3", "Color3", "Color4"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Mode selects where an entity is presented.
type Mode int

const (
	// Docked panels stack in the dock on the active side.
	Docked Mode = iota
	// MeshLinked badges follow the projected position of a scene node.
	MeshLinked
	// ConsoleLine entries go to the scrolling console.
	ConsoleLine
)

func (m Mode) String() string {
	switch m {
	case Docked:
		return "docked"
	case MeshLinked:
		return "mesh-linked"
	case ConsoleLine:
		return "console"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Precision is the number of decimals used for every numeric component.
const Precision = 4

// DefaultPanelWidth is the panel width, as a fraction of the viewport, for
// kinds that do not set one.
const DefaultPanelWidth = 0.1

// Mapping is how a Kind is drawn.
type Mapping struct {
	Color scene.Color3
	// Width is the panel width as a fraction of the viewport width.
	Width float32
	// Labels names each field of the panel. A kind has one field per label.
	Labels []string
	// Draw formats a resolved value into one string per field.
	Draw func(value any) ([]string, error)
}

// Fields returns the number of fields a panel of this kind holds.
func (m Mapping) Fields() int { return len(m.Labels) }

func defaultMappings() map[Kind]Mapping {
	single := []string{""}
	return map[Kind]Mapping{
		Text:    {Color: scene.Color3{R: 0.4, G: 0.4, B: 0.4}, Width: DefaultPanelWidth, Labels: single, Draw: drawText},
		Float:   {Color: scene.Color3{R: 0.6, G: 0.6, B: 0.9}, Width: DefaultPanelWidth, Labels: single, Draw: drawFloat},
		Boolean: {Color: scene.Color3{R: 0.9, G: 0.6, B: 0.6}, Width: DefaultPanelWidth, Labels: single, Draw: drawBoolean},
		Mesh: {
			Color:  scene.Color3{R: 0, G: 0.1, B: 0.7},
			Width:  DefaultPanelWidth,
			Labels: []string{"position", "rotation", "scaling"},
			Draw:   drawMesh,
		},
		Vector2: {Color: scene.Color3{R: 0, G: 0.7, B: 0.1}, Width: DefaultPanelWidth, Labels: single, Draw: drawVector2},
		Vector3: {Color: scene.Color3{R: 0, G: 0.7, B: 0.1}, Width: 0.4, Labels: single, Draw: drawVector3},
		Color3:  {Width: DefaultPanelWidth, Labels: single, Draw: drawColor3},
		Color4:  {Width: DefaultPanelWidth, Labels: single, Draw: drawColor4},
	}
}

// FormatFloat renders v with the fixed console precision. The exact binary
// value of v is rounded to the nearest decimal; exact ties go to the even
// digit, so 0.03125 renders as 0.0312 where JavaScript's toFixed gives 0.0313.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', Precision, 64)
}

func joinFloats(vs ...float32) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatFloat(float64(v))
	}
	return strings.Join(parts, ", ")
}

func drawText(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case fmt.Stringer:
		return []string{v.String()}, nil
	}
	return []string{fmt.Sprint(value)}, nil
}

func drawFloat(value any) ([]string, error) {
	f, ok := toFloat(value)
	if !ok {
		return nil, incompatible(Float, value)
	}
	return []string{FormatFloat(f)}, nil
}

func drawBoolean(value any) ([]string, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, incompatible(Boolean, value)
	}
	return []string{strconv.FormatBool(b)}, nil
}

func drawMesh(value any) ([]string, error) {
	n, ok := value.(scene.Node)
	if !ok || isNil(n) {
		return nil, incompatible(Mesh, value)
	}
	p, r, s := n.Position(), n.Rotation(), n.Scaling()
	return []string{
		joinFloats(p.X, p.Y, p.Z),
		joinFloats(r.X, r.Y, r.Z),
		joinFloats(s.X, s.Y, s.Z),
	}, nil
}

func drawVector2(value any) ([]string, error) {
	v, ok := deref[scene.Vec2](value)
	if !ok {
		return nil, incompatible(Vector2, value)
	}
	return []string{joinFloats(v.X, v.Y)}, nil
}

func drawVector3(value any) ([]string, error) {
	v, ok := deref[scene.Vec3](value)
	if !ok {
		return nil, incompatible(Vector3, value)
	}
	return []string{joinFloats(v.X, v.Y, v.Z)}, nil
}

func drawColor3(value any) ([]string, error) {
	c, ok := deref[scene.Color3](value)
	if !ok {
		return nil, incompatible(Color3, value)
	}
	return []string{joinFloats(c.R, c.G, c.B)}, nil
}

func drawColor4(value any) ([]string, error) {
	c, ok := deref[scene.Color4](value)
	if !ok {
		return nil, incompatible(Color4, value)
	}
	return []string{joinFloats(c.R, c.G, c.B, c.A)}, nil
}

// colorOf returns the colour a Color3 or Color4 value paints its panel with.
func colorOf(value any) (scene.Color3, bool) {
	if c, ok := deref[scene.Color3](value); ok {
		return c, true
	}
	if c, ok := deref[scene.Color4](value); ok {
		return scene.Color3{R: c.R, G: c.G, B: c.B}, true
	}
	return scene.Color3{}, false
}

func deref[T any](value any) (T, bool) {
	switch v := value.(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return toFloat(rv.Elem().Interface())
	}
	return 0, false
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func incompatible(kind Kind, value any) error {
	return eris.Wrapf(ErrIncompatibleValue, "%T cannot be drawn as %s", value, kind)
}
