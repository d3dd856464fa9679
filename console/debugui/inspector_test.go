package debugui

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vconsole/console"
)

func TestInspectorVisibility(t *testing.T) {
	i := NewInspector()
	assert.False(t, i.Visible())

	c := console.New(console.WithInspector(i))
	require.NoError(t, c.ToggleInspector())
	assert.True(t, i.Visible())

	left, right := i.Widths()
	assert.Equal(t, float32(DefaultExplorerWidth), left)
	assert.Equal(t, float32(DefaultInspectorWidth), right)

	require.NoError(t, c.ToggleInspector())
	assert.False(t, c.InspectorVisible())
}

func TestInspectorFilter(t *testing.T) {
	c := console.New()
	for _, name := range []string{"camera.fov", "camera.pos", "fps"} {
		_, err := c.Log(name, console.Text, name, "")
		require.NoError(t, err)
	}

	i := NewInspector()
	assert.Len(t, i.Filtered(c), 3)

	i.filter = "camera"
	names := []string{}
	for _, e := range i.Filtered(c) {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"camera.fov", "camera.pos"}, names)

	i.Select("fps")
	assert.Equal(t, "fps", i.Selected())
}

func TestSummary(t *testing.T) {
	n := 5
	var nilPtr *int
	var iface any = []int{1, 2}

	tests := []struct {
		name  string
		value reflect.Value
		want  string
	}{
		{"int", reflect.ValueOf(5), "5"},
		{"pointer", reflect.ValueOf(&n), "5"},
		{"nil pointer", reflect.ValueOf(nilPtr), "nil"},
		{"slice", reflect.ValueOf([]string{"a", "b"}), "[2 items]"},
		{"interface", reflect.ValueOf(&iface).Elem(), "[2 items]"},
		{"map", reflect.ValueOf(map[string]int{"a": 1}), "map[1 items]"},
		{"func", reflect.ValueOf(func() {}), "func()"},
		{"invalid", reflect.Value{}, "<invalid>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.value))
		})
	}
}
