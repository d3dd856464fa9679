// Package scene is the 3D capability surface the rest of the module consumes:
// value types, scene nodes, picking and screen projection. World is a small
// reference implementation with a pinhole camera and flat textured planes.
package scene

import (
	"fmt"

	"github.com/chewxy/math32"
)

type Vec2 struct {
	X, Y float32
}

type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector in v's direction, or v itself when v is zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Color3 is an RGB colour with components in [0,1].
type Color3 struct {
	R, G, B float32
}

// Color4 is an RGBA colour with components in [0,1].
type Color4 struct {
	R, G, B, A float32
}

var (
	Red    = Color3{1, 0, 0}
	Purple = Color3{0.5, 0, 0.5}
	Gray   = Color3{0.5, 0.5, 0.5}
)

// Scale multiplies every component by s.
func (c Color3) Scale(s float32) Color3 {
	return Color3{c.R * s, c.G * s, c.B * s}
}

// Node is anything with a name and a transform.
type Node interface {
	Name() string
	Position() Vec3
	Rotation() Vec3
	Scaling() Vec3
}

// PickInfo is the result of a ray cast against the scene.
type PickInfo struct {
	Hit  bool
	Mesh Node
	// UV holds the texture coordinates of the hit point in [0,1]×[0,1].
	UV Vec2
	// Distance along the ray to the hit point.
	Distance float32
}

// MeshName returns the picked mesh name, or "" on a miss.
func (p PickInfo) MeshName() string {
	if !p.Hit || p.Mesh == nil {
		return ""
	}
	return p.Mesh.Name()
}

// Picker casts a picking ray from screen coordinates through the active camera.
type Picker interface {
	PickAt(x, y float32) PickInfo
}

// Projector maps a node's world position to screen pixels.
// ok is false when the node is behind the camera.
type Projector interface {
	Project(n Node) (x, y float32, ok bool)
}
