package scene_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vconsole/scene"
)

func newTestWorld() *scene.World {
	return scene.NewWorld(1280, 720, scene.Camera{
		Position: scene.Vec3{Z: -30},
		FovY:     float32(math.Pi / 4),
		Near:     0.05,
		Far:      1000,
	})
}

func TestWorldPickCenter(t *testing.T) {
	world := newTestWorld()
	world.AddPlane(scene.NewPlane("htmlPlane1", 3, 10.8, scene.Vec3{}))

	pick := world.PickAt(640, 360)
	require.True(t, pick.Hit)
	assert.Equal(t, "htmlPlane1", pick.MeshName())
	assert.InDelta(t, 0.5, pick.UV.X, 1e-4)
	assert.InDelta(t, 0.5, pick.UV.Y, 1e-4)
	assert.InDelta(t, 30, pick.Distance, 1e-3)
}

func TestWorldPickRoundTrip(t *testing.T) {
	world := newTestWorld()
	plane := world.AddPlane(scene.NewPlane("htmlPlane1", 3, 10.8, scene.Vec3{X: -4}))

	// u = 0.5 + 0.75/3, v = 0.5 + 2.7/10.8
	x, y, ok := world.ProjectPoint(plane.Pos.Add(scene.Vec3{X: 0.75, Y: 2.7}))
	require.True(t, ok)

	pick := world.PickAt(x, y)
	require.True(t, pick.Hit)
	assert.Same(t, plane, pick.Mesh)
	assert.InDelta(t, 0.75, pick.UV.X, 1e-3)
	assert.InDelta(t, 0.75, pick.UV.Y, 1e-3)
}

func TestWorldPickMiss(t *testing.T) {
	world := newTestWorld()
	world.AddPlane(scene.NewPlane("htmlPlane1", 3, 10.8, scene.Vec3{}))

	pick := world.PickAt(5, 5)
	assert.False(t, pick.Hit)
	assert.Equal(t, "", pick.MeshName())
}

func TestWorldPickNearest(t *testing.T) {
	world := newTestWorld()
	far := world.AddPlane(scene.NewPlane("far", 10, 10, scene.Vec3{Z: 5}))
	near := world.AddPlane(scene.NewPlane("near", 10, 10, scene.Vec3{Z: -5}))

	pick := world.PickAt(640, 360)
	require.True(t, pick.Hit)
	assert.Same(t, near, pick.Mesh)

	near.Pickable = false
	pick = world.PickAt(640, 360)
	require.True(t, pick.Hit)
	assert.Same(t, far, pick.Mesh)
}

func TestWorldBillboardPlaneFacesCamera(t *testing.T) {
	world := newTestWorld()
	world.Camera.Position = scene.Vec3{X: -20, Z: -20}
	plane := world.AddPlane(scene.NewPlane("htmlPlane2", 3, 10.8, scene.Vec3{}))
	plane.Billboard = true

	pick := world.PickAt(640, 360)
	require.True(t, pick.Hit)
	assert.InDelta(t, 0.5, pick.UV.X, 1e-3)
	assert.InDelta(t, 0.5, pick.UV.Y, 1e-3)
}

func TestWorldProject(t *testing.T) {
	world := newTestWorld()
	box := world.AddObject(scene.NewObject("box", scene.Vec3{}))

	x, y, ok := world.Project(box)
	require.True(t, ok)
	assert.InDelta(t, 640, x, 1e-3)
	assert.InDelta(t, 360, y, 1e-3)

	behind := scene.NewObject("behind", scene.Vec3{Z: -40})
	_, _, ok = world.Project(behind)
	assert.False(t, ok)

	_, _, ok = world.Project(nil)
	assert.False(t, ok)
}

func TestWorldPlaneCorners(t *testing.T) {
	world := newTestWorld()
	plane := world.AddPlane(scene.NewPlane("p", 4, 2, scene.Vec3{}))

	corners, ok := world.PlaneCorners(plane)
	require.True(t, ok)

	// bottom-left is left of and below the centre on screen
	assert.Less(t, corners[0].X, float32(640))
	assert.Greater(t, corners[0].Y, float32(360))
	// top-right is right of and above the centre
	assert.Greater(t, corners[2].X, float32(640))
	assert.Less(t, corners[2].Y, float32(360))
}
