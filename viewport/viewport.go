package viewport

const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Point is a screen-space position or delta in canvas pixels.
type Point struct {
	X, Y float64
}

// State holds the zoom scale and pan translation of one mounted view.
type State struct {
	scale       float64
	translation Point
}

// New returns a viewport at scale 1 with no translation.
func New() *State {
	return &State{scale: 1}
}

func (s *State) Scale() float64 { return s.scale }

func (s *State) Translation() Point { return s.translation }

// Zoom multiplies the scale by factor, clamped to [MinScale, MaxScale].
// The zoom is anchored at the canvas centre, not at the pointer.
func (s *State) Zoom(factor float64) {
	s.scale = max(MinScale, min(s.scale*factor, MaxScale))
}

// Pan moves the translation by a raw screen delta. The delta is not divided by
// the current scale.
func (s *State) Pan(dx, dy float64) {
	s.translation.X += dx
	s.translation.Y += dy
}

// Transform returns the centre-anchored transform for a canvas of size w×h.
func (s *State) Transform(w, h float64) Transform {
	return Transform{
		Center:      Point{X: w / 2, Y: h / 2},
		Translation: s.translation,
		Scale:       s.scale,
	}
}

// Transform is translate(Center+Translation) · scale(Scale) · translate(-Center).
type Transform struct {
	Center      Point
	Translation Point
	Scale       float64
}

// Apply maps a pre-transform canvas coordinate to its on-screen position.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return (x-t.Center.X)*t.Scale + t.Center.X + t.Translation.X,
		(y-t.Center.Y)*t.Scale + t.Center.Y + t.Translation.Y
}
