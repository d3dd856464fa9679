package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/vconsole/console"
)

const (
	DefaultExplorerWidth  = 250
	DefaultInspectorWidth = 300
)

// Inspector is the structural inspector toggled by the dock's "D" button: an
// entity explorer on the left edge and a field editor for the selected
// entity's source on the right edge.
type Inspector struct {
	ExplorerWidth  float32
	InspectorWidth float32

	visible  bool
	selected string
	filter   string
}

func NewInspector() *Inspector {
	return &Inspector{
		ExplorerWidth:  DefaultExplorerWidth,
		InspectorWidth: DefaultInspectorWidth,
	}
}

func (i *Inspector) Visible() bool { return i.visible }

func (i *Inspector) SetVisible(v bool) error {
	i.visible = v
	return nil
}

// Widths returns the screen space taken by the explorer and the inspector.
func (i *Inspector) Widths() (left, right float32) {
	return i.ExplorerWidth, i.InspectorWidth
}

func (i *Inspector) Selected() string { return i.selected }

func (i *Inspector) Select(name string) { i.selected = name }

// Filtered returns the entities whose name contains the explorer filter.
func (i *Inspector) Filtered(c *console.Console) []*console.Entity {
	var out []*console.Entity
	for _, e := range c.Entities() {
		if i.filter == "" || strings.Contains(e.Name(), i.filter) {
			out = append(out, e)
		}
	}
	return out
}

func (i *Inspector) Render(c *console.Console) {
	w, h := c.Viewport()
	i.renderExplorer(c, h)
	i.renderInspector(c, w, h)
}

func (i *Inspector) renderExplorer(c *console.Console, height float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(0, 0), imgui.CondAlways, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(i.ExplorerWidth, height), imgui.CondAlways)
	if !imgui.BeginV("Scene Explorer", nil, imgui.WindowFlagsNoResize|imgui.WindowFlagsNoMove) {
		imgui.End()
		return
	}

	imgui.SetNextItemWidth(-1)
	imgui.InputTextWithHint("##filter", "filter", &i.filter, imgui.InputTextFlagsNone, nil)
	imgui.Separator()

	for _, e := range i.Filtered(c) {
		label := fmt.Sprintf("%s [%s]", e.Name(), e.Kind())
		if imgui.SelectableBoolV(label, e.Name() == i.selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			i.selected = e.Name()
		}
	}

	imgui.End()
}

func (i *Inspector) renderInspector(c *console.Console, width, height float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(width, 0), imgui.CondAlways, imgui.NewVec2(1, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(i.InspectorWidth, height), imgui.CondAlways)
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNoResize|imgui.WindowFlagsNoMove) {
		imgui.End()
		return
	}

	e, ok := c.Entity(i.selected)
	if !ok {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Name: %s", e.Name()))
	imgui.Text(fmt.Sprintf("Kind: %s", e.Kind()))
	imgui.Text(fmt.Sprintf("Mode: %s", e.Mode()))
	if e.Property() != "" {
		imgui.Text(fmt.Sprintf("Property: %s", e.Property()))
	}

	rate := int32(e.RefreshRate())
	imgui.SetNextItemWidth(100)
	if imgui.InputInt("Refresh rate", &rate) && rate > 0 {
		_ = e.SetRefreshRate(int(rate))
	}

	imgui.Text(fmt.Sprintf("Value: %s", e.Panel().Text()))
	imgui.Separator()

	if imgui.TreeNodeStr("Source") {
		val := reflect.ValueOf(e.Source())
		for val.Kind() == reflect.Pointer && !val.IsNil() {
			val = val.Elem()
		}
		renderValue(val)
		imgui.TreePop()
	}

	imgui.End()
}

// renderValue lists the exported fields of a struct, or the value itself.
func renderValue(val reflect.Value) {
	if val.Kind() != reflect.Struct {
		imgui.Text(Summary(val))
		return
	}
	for _, field := range console.Properties.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}
		renderField(field.Name, fieldVal, field)
	}
}

// renderField draws an editor for settable scalar fields and a read-only
// summary for everything else. Fields are only settable when the source was
// registered by pointer.
func renderField(name string, val reflect.Value, field console.FieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}
	if field.IsPointer && val.Kind() == reflect.Pointer && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	id := fmt.Sprintf("##%s", name)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !val.CanSet() {
			break
		}
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			val.SetInt(int64(v))
		}
		return

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !val.CanSet() {
			break
		}
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			val.SetUint(uint64(v))
		}
		return

	case reflect.Float32, reflect.Float64:
		if !val.CanSet() {
			break
		}
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			val.SetFloat(float64(v))
		}
		return

	case reflect.Bool:
		if !val.CanSet() {
			break
		}
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			val.SetBool(v)
		}
		return

	case reflect.String:
		if !val.CanSet() {
			break
		}
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			val.SetString(v)
		}
		return

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderValue(val)
			imgui.TreePop()
		}
		return
	}

	imgui.Text(fmt.Sprintf("%s: %s", name, Summary(val)))
}

// Summary is the one-line rendering of a value the inspector cannot edit.
func Summary(val reflect.Value) string {
	if !val.IsValid() {
		return "<invalid>"
	}
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return "nil"
		}
		return Summary(val.Elem())
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("[%d items]", val.Len())
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", val.Len())
	case reflect.Func, reflect.Chan:
		return val.Type().String()
	}
	if !val.CanInterface() {
		return val.Type().String()
	}
	return fmt.Sprintf("%v", val.Interface())
}
