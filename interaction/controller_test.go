package interaction

import (
	"testing"

	"go.viam.com/test"

	"github.com/olablt/gio-geomarks/viewport"
)

func TestDragPans(t *testing.T) {
	c := NewController(viewport.New())
	var changes int
	c.SetOnChangeCallback(func() { changes++ })

	test.That(t, c.Mode(), test.ShouldEqual, Idle)
	c.PointerDown(viewport.Point{X: 100, Y: 100})
	test.That(t, c.Mode(), test.ShouldEqual, Dragging)

	c.PointerMove(viewport.Point{X: 105, Y: 100})
	c.PointerMove(viewport.Point{X: 105, Y: 105})
	c.PointerMove(viewport.Point{X: 103, Y: 108})
	c.PointerUp()

	test.That(t, c.Mode(), test.ShouldEqual, Idle)
	test.That(t, c.Viewport().Translation(), test.ShouldResemble, viewport.Point{X: 3, Y: 8})
	test.That(t, changes, test.ShouldEqual, 3)
}

func TestMoveWhileIdleDoesNothing(t *testing.T) {
	c := NewController(viewport.New())
	var changes int
	c.SetOnChangeCallback(func() { changes++ })

	c.PointerMove(viewport.Point{X: 50, Y: 50})
	c.PointerMove(viewport.Point{X: 90, Y: 10})
	test.That(t, c.Viewport().Translation(), test.ShouldResemble, viewport.Point{})

	// after a drag ends, further moves are ignored again
	c.PointerDown(viewport.Point{X: 0, Y: 0})
	c.PointerMove(viewport.Point{X: 4, Y: 0})
	c.PointerLeave()
	c.PointerMove(viewport.Point{X: 40, Y: 40})
	test.That(t, c.Viewport().Translation(), test.ShouldResemble, viewport.Point{X: 4, Y: 0})
	test.That(t, changes, test.ShouldEqual, 1)
}

func TestNewDragStartsFromPressPoint(t *testing.T) {
	c := NewController(viewport.New())
	c.PointerDown(viewport.Point{X: 10, Y: 10})
	c.PointerMove(viewport.Point{X: 20, Y: 10})
	c.PointerUp()

	// the jump between release and the next press is not a pan
	c.PointerDown(viewport.Point{X: 500, Y: 500})
	c.PointerMove(viewport.Point{X: 501, Y: 502})
	test.That(t, c.Viewport().Translation(), test.ShouldResemble, viewport.Point{X: 11, Y: 2})
}

func TestPanIgnoresZoom(t *testing.T) {
	c := NewController(viewport.New())
	for i := 0; i < 10; i++ {
		c.ZoomIn()
	}
	c.PointerDown(viewport.Point{})
	c.PointerMove(viewport.Point{X: 10, Y: 0})
	test.That(t, c.Viewport().Translation(), test.ShouldResemble, viewport.Point{X: 10, Y: 0})
}

func TestZoomButtons(t *testing.T) {
	c := NewController(viewport.New())
	var changes int
	c.SetOnChangeCallback(func() { changes++ })

	c.ZoomIn()
	test.That(t, c.Viewport().Scale(), test.ShouldAlmostEqual, 1.1)
	c.ZoomOut()
	test.That(t, c.Viewport().Scale(), test.ShouldAlmostEqual, 0.99)
	test.That(t, changes, test.ShouldEqual, 2)
	test.That(t, c.Mode(), test.ShouldEqual, Idle)
}
