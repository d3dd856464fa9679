package interact

import (
	"github.com/rotisserie/eris"

	"github.com/plus3/vconsole/dom"
	"github.com/plus3/vconsole/scene"
)

// Plane binds a scene mesh to a horizontal offset into the captured surface.
type Plane struct {
	Mesh    string  `yaml:"mesh"`
	OffsetX float64 `yaml:"offset_x"`
}

// Layout describes how the captured surface is split across the textured planes.
//
// A pick at texture coordinates (u, v) on a plane maps to
//
//	x = SourceWidth + OffsetX + u*PanelWidth
//	y = PanelHeight - v*PanelHeight - VerticalOffset
type Layout struct {
	SourceWidth    float64 `yaml:"source_width"`
	SourceHeight   float64 `yaml:"source_height"`
	PanelWidth     float64 `yaml:"panel_width"`
	PanelHeight    float64 `yaml:"panel_height"`
	VerticalOffset float64 `yaml:"vertical_offset"`
	Planes         []Plane `yaml:"planes"`
}

const (
	LeftPlane  = "htmlPlane1"
	RightPlane = "htmlPlane2"
)

// DefaultLayout maps htmlPlane1 to the left edge strip and htmlPlane2 to the
// right edge strip of a 1920×1080 surface, matching the capture crop.
func DefaultLayout() Layout {
	return Layout{
		SourceWidth:  1920,
		SourceHeight: 1080,
		PanelWidth:   300,
		PanelHeight:  1080,
		Planes: []Plane{
			{Mesh: LeftPlane, OffsetX: -1920},
			{Mesh: RightPlane, OffsetX: -300},
		},
	}
}

// Validate reports the first invalid dimension or plane entry.
func (l Layout) Validate() error {
	if l.SourceWidth <= 0 || l.SourceHeight <= 0 {
		return eris.Errorf("source size must be positive, got %gx%g", l.SourceWidth, l.SourceHeight)
	}
	if l.PanelWidth <= 0 || l.PanelHeight <= 0 {
		return eris.Errorf("panel size must be positive, got %gx%g", l.PanelWidth, l.PanelHeight)
	}
	seen := make(map[string]bool, len(l.Planes))
	for _, p := range l.Planes {
		if p.Mesh == "" {
			return eris.New("plane mesh name is empty")
		}
		if seen[p.Mesh] {
			return eris.Errorf("plane %q listed twice", p.Mesh)
		}
		seen[p.Mesh] = true
	}
	return nil
}

// Plane returns the configuration for a mesh name.
func (l Layout) Plane(mesh string) (Plane, bool) {
	for _, p := range l.Planes {
		if p.Mesh == mesh {
			return p, true
		}
	}
	return Plane{}, false
}

// PickToHTML converts a pick on a configured plane into document coordinates.
// Misses and unrecognized meshes report false.
func (l Layout) PickToHTML(pick scene.PickInfo) (dom.Point, bool) {
	if !pick.Hit {
		return dom.Point{}, false
	}
	plane, ok := l.Plane(pick.MeshName())
	if !ok {
		return dom.Point{}, false
	}
	u := float64(pick.UV.X)
	v := float64(pick.UV.Y)
	return dom.Point{
		X: l.SourceWidth + plane.OffsetX + u*l.PanelWidth,
		Y: l.PanelHeight - v*l.PanelHeight - l.VerticalOffset,
	}, true
}

// Region returns the document rectangle a plane's texture represents.
func (l Layout) Region(mesh string) (dom.Rect, bool) {
	plane, ok := l.Plane(mesh)
	if !ok {
		return dom.Rect{}, false
	}
	return dom.Rect{
		X: l.SourceWidth + plane.OffsetX,
		Y: -l.VerticalOffset,
		W: l.PanelWidth,
		H: l.PanelHeight,
	}, true
}
