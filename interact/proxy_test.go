package interact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/dom"
	"github.com/plus3/vconsole/frame"
	"github.com/plus3/vconsole/interact"
	"github.com/plus3/vconsole/scene"
)

type fakePicker struct {
	pick scene.PickInfo
}

func (f *fakePicker) PickAt(x, y float32) scene.PickInfo { return f.pick }

// at aims the picker at document point (x, y) on mesh.
func (f *fakePicker) at(layout interact.Layout, mesh string, x, y float64) {
	region, _ := layout.Region(mesh)
	u := (x - region.X) / region.W
	v := (region.Y + region.H - y) / region.H
	f.pick = pickOn(mesh, float32(u), float32(v))
}

func (f *fakePicker) miss() { f.pick = scene.PickInfo{} }

type fixture struct {
	layout  interact.Layout
	page    *dom.Page
	panel   *dom.Box
	button  *dom.Box
	cursor  *dom.Box
	picker  *fakePicker
	console *console.Console
	proxy   *interact.Proxy
	clicks  []dom.MouseEvent
}

func newFixture(t *testing.T, opts ...interact.Option) *fixture {
	t.Helper()
	f := &fixture{
		layout:  interact.DefaultLayout(),
		page:    dom.NewPage(1920, 1080),
		picker:  &fakePicker{},
		console: console.New(),
	}
	f.panel = f.page.Add(dom.BoxSpec{ID: "left-panel", Class: "panel", Rect: dom.Rect{W: 300, H: 1080}, Z: 1})
	f.button = f.page.Add(dom.BoxSpec{ID: "button", Tag: "button", Class: "primary", Parent: f.panel, Rect: dom.Rect{X: 20, Y: 20, W: 100, H: 40}, Z: 2})
	f.cursor = f.page.Add(dom.BoxSpec{ID: interact.DefaultCursorID, Rect: dom.Rect{W: 8, H: 8}, Z: 1000})
	f.button.On("click", func(ev dom.MouseEvent) { f.clicks = append(f.clicks, ev) })

	opts = append([]interact.Option{
		interact.WithConsole(f.console),
		interact.WithPointer(interact.PointerFunc(func() (float32, float32) { return 400, 300 })),
	}, opts...)
	f.proxy = interact.New(f.layout, f.page, f.picker, opts...)
	return f
}

func (f *fixture) frame() {
	f.proxy.Execute(&frame.UpdateFrame{Commands: &frame.Commands{}})
}

func TestResolveSkipsCursor(t *testing.T) {
	f := newFixture(t)
	f.picker.at(f.layout, interact.LeftPlane, 75, 40)

	el, pt, ok := f.proxy.Resolve(f.picker.pick)
	require.True(t, ok)
	assert.Equal(t, "button", el.ID())
	assert.InDelta(t, 75, pt.X, 1e-3)
	assert.InDelta(t, 40, pt.Y, 1e-3)

	top := f.page.ElementsFromPoint(pt.X, pt.Y)
	require.NotEmpty(t, top)
	assert.Equal(t, interact.DefaultCursorID, top[0].ID(), "cursor marker moved to the point")
}

func TestResolveWithoutCursorMarker(t *testing.T) {
	f := newFixture(t, interact.WithCursorID(""))
	f.page.Detach(f.cursor)

	f.picker.at(f.layout, interact.LeftPlane, 75, 40)
	el, _, ok := f.proxy.Resolve(f.picker.pick)
	require.True(t, ok)
	assert.Equal(t, "left-panel", el.ID(), "top-most of a stack is skipped")

	f.picker.at(f.layout, interact.RightPlane, 1800, 500)
	el, _, ok = f.proxy.Resolve(f.picker.pick)
	require.True(t, ok)
	assert.Equal(t, "BODY", el.TagName(), "a lone element is the target")
}

func TestResolveNoTarget(t *testing.T) {
	f := newFixture(t)

	_, _, ok := f.proxy.Resolve(pickOn("ground", 0.5, 0.5))
	assert.False(t, ok)

	layout := interact.DefaultLayout()
	layout.VerticalOffset = 2000
	proxy := interact.New(layout, f.page, f.picker)
	_, _, ok = proxy.Resolve(pickOn(interact.LeftPlane, 0.5, 0.5))
	assert.False(t, ok, "point above the document")
}

func TestHoverTransitions(t *testing.T) {
	f := newFixture(t)
	body := f.page.Body()

	f.frame()
	assert.Equal(t, interact.Idle, f.proxy.State())
	assert.False(t, body.HasClass(interact.NoCursorClass))
	assert.Equal(t, "hidden", f.cursor.Style("visibility"))

	f.picker.at(f.layout, interact.LeftPlane, 75, 40)
	f.frame()
	assert.Equal(t, interact.Hovering, f.proxy.State())
	assert.Equal(t, interact.LeftPlane, f.proxy.Plane())
	assert.True(t, body.HasClass(interact.NoCursorClass))
	assert.Equal(t, "visible", f.cursor.Style("visibility"))

	f.picker.at(f.layout, interact.RightPlane, 1800, 500)
	f.frame()
	assert.Equal(t, interact.Hovering, f.proxy.State())
	assert.Equal(t, interact.RightPlane, f.proxy.Plane())

	f.picker.pick = pickOn("ground", 0.5, 0.5)
	f.frame()
	assert.Equal(t, interact.Idle, f.proxy.State())
	assert.Empty(t, f.proxy.Plane())
	assert.False(t, body.HasClass(interact.NoCursorClass))

	f.picker.miss()
	f.frame()
	assert.Equal(t, interact.Idle, f.proxy.State())
}

func TestHoverHighlightRestoresStyle(t *testing.T) {
	f := newFixture(t)
	f.button.SetStyle("box-shadow", "1px 1px 2px red")

	for i := 0; i < 3; i++ {
		f.picker.at(f.layout, interact.LeftPlane, 75, 40)
		f.frame()
		require.Same(t, f.button, f.proxy.Highlighted())
		assert.Equal(t, "0px 0px 10px 5px #0ff", f.button.Style("box-shadow"))
		assert.Empty(t, f.panel.Style("box-shadow"))

		f.picker.at(f.layout, interact.LeftPlane, 150, 540)
		f.frame()
		require.Same(t, f.panel, f.proxy.Highlighted())
		assert.Equal(t, "1px 1px 2px red", f.button.Style("box-shadow"))
		assert.Equal(t, "0px 0px 10px 5px #0ff", f.panel.Style("box-shadow"))
	}

	f.picker.miss()
	f.frame()
	assert.Nil(t, f.proxy.Highlighted())
	assert.Empty(t, f.panel.Style("box-shadow"))
	assert.Equal(t, "1px 1px 2px red", f.button.Style("box-shadow"))
}

func TestHighlightIgnoresCursorAndIdle(t *testing.T) {
	f := newFixture(t)

	f.proxy.UpdateHoverHighlight(f.button)
	assert.Nil(t, f.proxy.Highlighted(), "nothing is highlighted while idle")

	f.picker.at(f.layout, interact.LeftPlane, 75, 40)
	f.frame()
	f.proxy.UpdateHoverHighlight(f.cursor)
	assert.Nil(t, f.proxy.Highlighted())
	assert.Empty(t, f.cursor.Style("box-shadow"))
	assert.Empty(t, f.button.Style("box-shadow"))
}

func TestPickClicksElement(t *testing.T) {
	f := newFixture(t)

	el, ok := f.proxy.Pick(0, 0)
	assert.False(t, ok, "no plane hovered")
	assert.Nil(t, el)

	f.picker.at(f.layout, interact.LeftPlane, 75, 40)
	el, ok = f.proxy.Pick(0, 0)
	require.True(t, ok)
	assert.Same(t, f.button, el)
	assert.Equal(t, interact.Selected, f.proxy.State())
	assert.Same(t, f.button, f.proxy.Selected())

	require.Len(t, f.clicks, 1)
	assert.Equal(t, "click", f.clicks[0].Type)
	assert.True(t, f.clicks[0].Bubbles)
	assert.True(t, f.clicks[0].Cancelable)
	assert.InDelta(t, 75, f.clicks[0].X, 1e-3)

	f.console.Tick()
	lines := f.console.ConsoleLines()
	assert.Equal(t, "Simulated click on BUTTON#button.primary", lines[len(lines)-1])

	f.frame()
	assert.Equal(t, interact.Hovering, f.proxy.State())
}

func TestSimulateClickOnDetachedElement(t *testing.T) {
	f := newFixture(t)
	f.page.Detach(f.panel)

	assert.NotPanics(t, func() { f.proxy.SimulateClick(f.button, dom.Point{X: 75, Y: 40}) })
	assert.Empty(t, f.clicks)
	assert.Equal(t, 0, len(f.console.ConsoleEntries()))

	assert.NotPanics(t, func() { f.proxy.SimulateClick(nil, dom.Point{}) })
}

func TestProxyPublishesReadouts(t *testing.T) {
	f := newFixture(t)

	for _, name := range []string{"Mouse X", "Mouse Y", "Hovered 1", "Hovered 2", "HTML X", "HTML Y", "HTML Element"} {
		_, ok := f.console.Entity(name)
		assert.True(t, ok, name)
	}

	f.picker.at(f.layout, interact.LeftPlane, 75, 40)
	f.frame()
	f.console.Tick()

	text := func(name string) string {
		e, ok := f.console.Entity(name)
		require.True(t, ok, name)
		return e.Panel().Text()
	}
	assert.Equal(t, "400.0000", text("Mouse X"))
	assert.Equal(t, "300.0000", text("Mouse Y"))
	assert.Equal(t, "true", text("Hovered 1"))
	assert.Equal(t, "false", text("Hovered 2"))
	assert.Equal(t, "#button.primary", text("HTML Element"))
}

func TestProxyWithoutCollaborators(t *testing.T) {
	proxy := interact.New(interact.DefaultLayout(), nil, nil)
	assert.NotPanics(t, func() {
		proxy.Execute(&frame.UpdateFrame{})
		_, ok := proxy.Pick(10, 10)
		assert.False(t, ok)
		_, _, ok = proxy.Resolve(pickOn(interact.LeftPlane, 0.5, 0.5))
		assert.False(t, ok)
		proxy.UpdateHoverHighlight(nil)
	})
	assert.Equal(t, "idle", proxy.State().String())
}
