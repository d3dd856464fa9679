package console

import (
	"reflect"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vconsole/scene"
)

type sample struct {
	Name    string
	Tags    map[string]string
	Camera  *scene.Camera
	hidden  int
	Counter int
}

func (p *sample) Double() int { return p.Counter * 2 }

func (p *sample) Broken() int { panic("broken getter") }

type holder struct {
	Target scene.Node
	Obj    *scene.Object
}

func TestReflectionCacheGetFields(t *testing.T) {
	rc := NewReflectionCache()
	fields := rc.GetFields(reflect.TypeOf(sample{}))

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Name", "Tags", "Camera", "Counter"}, names)

	camera, ok := rc.Field(reflect.TypeOf(sample{}), "Camera")
	require.True(t, ok)
	assert.True(t, camera.IsPointer)
	assert.True(t, camera.IsStruct)
	assert.Equal(t, reflect.TypeOf(scene.Camera{}), camera.Type)

	_, ok = rc.Field(reflect.TypeOf(sample{}), "hidden")
	assert.False(t, ok)

	again := rc.GetFields(reflect.TypeOf(sample{}))
	assert.Same(t, &fields[0], &again[0])
}

func TestReflectionCacheResolve(t *testing.T) {
	rc := NewReflectionCache()
	p := &sample{
		Name:    "sample",
		Tags:    map[string]string{"env": "dev"},
		Camera:  &scene.Camera{Position: scene.Vec3{Z: -5}},
		Counter: 21,
	}

	tests := []struct {
		property string
		want     any
	}{
		{"", p},
		{"Name", "sample"},
		{"Tags.env", "dev"},
		{"Camera.Position.Z", float32(-5)},
		{"Double", 42},
	}
	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			got, err := rc.Resolve(p, tt.property)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, property := range []string{"hidden", "Missing", "Tags.missing", "Name.Length"} {
		_, err := rc.Resolve(p, property)
		assert.True(t, eris.Is(err, ErrUnknownProperty), property)
	}

	p.Camera = nil
	_, err := rc.Resolve(p, "Camera.Position")
	assert.True(t, eris.Is(err, ErrUnknownProperty))
}

func TestReflectionCacheResolveNil(t *testing.T) {
	rc := NewReflectionCache()
	h := &holder{}

	for _, property := range []string{"Target.Name", "Obj.Name", "Obj.Pos.X"} {
		var err error
		require.NotPanics(t, func() { _, err = rc.Resolve(h, property) }, property)
		assert.True(t, eris.Is(err, ErrUnknownProperty), property)
	}

	h.Target = scene.NewObject("cube", scene.Vec3{})
	got, err := rc.Resolve(h, "Target.Name")
	require.NoError(t, err)
	assert.Equal(t, "cube", got)

	var nilSample *sample
	_, err = rc.Resolve(nilSample, "Double")
	assert.True(t, eris.Is(err, ErrUnknownProperty))
}

func TestReflectionCacheResolvePanickingGetter(t *testing.T) {
	rc := NewReflectionCache()
	var err error
	require.NotPanics(t, func() { _, err = rc.Resolve(&sample{}, "Broken") })
	assert.True(t, eris.Is(err, ErrUnknownProperty))
}
