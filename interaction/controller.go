package interaction

import "github.com/olablt/gio-geomarks/viewport"

const (
	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
)

type Mode int

const (
	Idle Mode = iota
	Dragging
)

func (m Mode) String() string {
	if m == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller turns pointer drags and zoom-button clicks into viewport changes.
// It is driven from the UI goroutine only.
type Controller struct {
	vp       *viewport.State
	mode     Mode
	last     viewport.Point
	onChange func()
}

func NewController(vp *viewport.State) *Controller {
	return &Controller{vp: vp}
}

// SetOnChangeCallback registers fn to run after every viewport change.
func (c *Controller) SetOnChangeCallback(fn func()) {
	c.onChange = fn
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Viewport() *viewport.State { return c.vp }

func (c *Controller) PointerDown(p viewport.Point) {
	c.mode = Dragging
	c.last = p
}

func (c *Controller) PointerMove(p viewport.Point) {
	if c.mode != Dragging {
		return
	}
	dx, dy := p.X-c.last.X, p.Y-c.last.Y
	c.last = p
	c.vp.Pan(dx, dy)
	c.changed()
}

func (c *Controller) PointerUp() {
	c.mode = Idle
}

func (c *Controller) PointerLeave() {
	c.mode = Idle
}

func (c *Controller) ZoomIn() {
	c.vp.Zoom(ZoomInFactor)
	c.changed()
}

func (c *Controller) ZoomOut() {
	c.vp.Zoom(ZoomOutFactor)
	c.changed()
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
