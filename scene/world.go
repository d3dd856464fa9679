package scene

import (
	"github.com/chewxy/math32"
)

const pickEpsilon = 1e-6

var worldUp = Vec3{0, 1, 0}

// Object is a plain transform node, used for meshes that are observed but never picked.
type Object struct {
	name  string
	Pos   Vec3
	Rot   Vec3
	Scale Vec3
}

func NewObject(name string, pos Vec3) *Object {
	return &Object{name: name, Pos: pos, Scale: Vec3{1, 1, 1}}
}

func (o *Object) Name() string { return o.name }
func (o *Object) Position() Vec3 { return o.Pos }
func (o *Object) Rotation() Vec3 { return o.Rot }
func (o *Object) Scaling() Vec3 { return o.Scale }

// Plane is a flat rectangular mesh. Without billboarding it lies in the XY plane
// at Pos; with billboarding it always faces the camera.
type Plane struct {
	Object
	Width     float32
	Height    float32
	Billboard bool
	Pickable  bool
}

func NewPlane(name string, width, height float32, pos Vec3) *Plane {
	return &Plane{
		Object:   Object{name: name, Pos: pos, Scale: Vec3{1, 1, 1}},
		Width:    width,
		Height:   height,
		Pickable: true,
	}
}

// Camera is a left-handed pinhole camera looking from Position at Target.
type Camera struct {
	Position Vec3
	Target   Vec3
	// FovY is the vertical field of view in radians.
	FovY float32
	Near float32
	Far  float32
}

// basis returns the camera's forward, right and up unit vectors.
func (c Camera) basis() (forward, right, up Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = worldUp.Cross(forward).Normalize()
	up = forward.Cross(right)
	return forward, right, up
}

// World is a minimal scene: one camera, a set of planes and free objects,
// rendered into a viewport of Width×Height pixels.
type World struct {
	Camera  Camera
	Width   float32
	Height  float32
	Planes  []*Plane
	Objects []*Object
}

func NewWorld(width, height float32, camera Camera) *World {
	return &World{Camera: camera, Width: width, Height: height}
}

func (w *World) AddPlane(p *Plane) *Plane {
	w.Planes = append(w.Planes, p)
	return p
}

func (w *World) AddObject(o *Object) *Object {
	w.Objects = append(w.Objects, o)
	return o
}

// Plane returns the plane with the given name, or nil.
func (w *World) Plane(name string) *Plane {
	for _, p := range w.Planes {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// PlaneBasis returns the plane's in-plane right and up unit vectors.
func (w *World) PlaneBasis(p *Plane) (right, up Vec3) {
	if !p.Billboard {
		return Vec3{1, 0, 0}, Vec3{0, 1, 0}
	}
	facing := p.Pos.Sub(w.Camera.Position).Normalize()
	right = worldUp.Cross(facing).Normalize()
	up = facing.Cross(right)
	return right, up
}

// Ray returns the origin and direction of the picking ray through screen pixel (x, y).
func (w *World) Ray(x, y float32) (origin, dir Vec3) {
	forward, right, up := w.Camera.basis()
	tanHalf := math32.Tan(w.Camera.FovY / 2)
	aspect := w.Width / w.Height

	ndcX := 2*x/w.Width - 1
	ndcY := 1 - 2*y/w.Height

	dir = forward.
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(up.Scale(ndcY * tanHalf)).
		Normalize()
	return w.Camera.Position, dir
}

// PickAt casts a ray through (x, y) and returns the nearest pickable plane hit.
func (w *World) PickAt(x, y float32) PickInfo {
	origin, dir := w.Ray(x, y)

	best := PickInfo{}
	for _, p := range w.Planes {
		if !p.Pickable {
			continue
		}
		info, ok := w.intersect(p, origin, dir)
		if !ok {
			continue
		}
		if !best.Hit || info.Distance < best.Distance {
			best = info
		}
	}
	return best
}

func (w *World) intersect(p *Plane, origin, dir Vec3) (PickInfo, bool) {
	right, up := w.PlaneBasis(p)
	normal := right.Cross(up)

	denom := dir.Dot(normal)
	if math32.Abs(denom) < pickEpsilon {
		return PickInfo{}, false
	}

	t := p.Pos.Sub(origin).Dot(normal) / denom
	if t < w.Camera.Near || (w.Camera.Far > 0 && t > w.Camera.Far) {
		return PickInfo{}, false
	}

	local := origin.Add(dir.Scale(t)).Sub(p.Pos)
	halfW := p.Width * p.Scale.X / 2
	halfH := p.Height * p.Scale.Y / 2
	a := local.Dot(right)
	b := local.Dot(up)
	if math32.Abs(a) > halfW || math32.Abs(b) > halfH {
		return PickInfo{}, false
	}

	return PickInfo{
		Hit:      true,
		Mesh:     p,
		UV:       Vec2{X: a/(2*halfW) + 0.5, Y: b/(2*halfH) + 0.5},
		Distance: t,
	}, true
}

// ProjectPoint maps a world point to screen pixels.
func (w *World) ProjectPoint(point Vec3) (x, y float32, ok bool) {
	forward, right, up := w.Camera.basis()
	d := point.Sub(w.Camera.Position)

	z := d.Dot(forward)
	if z <= w.Camera.Near {
		return 0, 0, false
	}

	tanHalf := math32.Tan(w.Camera.FovY / 2)
	aspect := w.Width / w.Height
	ndcX := d.Dot(right) / (z * tanHalf * aspect)
	ndcY := d.Dot(up) / (z * tanHalf)

	return (ndcX + 1) / 2 * w.Width, (1 - ndcY) / 2 * w.Height, true
}

// Project implements Projector.
func (w *World) Project(n Node) (x, y float32, ok bool) {
	if n == nil {
		return 0, 0, false
	}
	return w.ProjectPoint(n.Position())
}

// PlaneCorners returns the screen positions of a plane's corners in the order
// bottom-left, bottom-right, top-right, top-left (uv (0,0), (1,0), (1,1), (0,1)).
func (w *World) PlaneCorners(p *Plane) (corners [4]Vec2, ok bool) {
	right, up := w.PlaneBasis(p)
	halfW := p.Width * p.Scale.X / 2
	halfH := p.Height * p.Scale.Y / 2

	offsets := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for i, o := range offsets {
		point := p.Pos.Add(right.Scale(o[0] * halfW)).Add(up.Scale(o[1] * halfH))
		x, y, visible := w.ProjectPoint(point)
		if !visible {
			return corners, false
		}
		corners[i] = Vec2{x, y}
	}
	return corners, true
}
