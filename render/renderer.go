package render

import (
	"image"

	"github.com/olablt/gio-geomarks/geomarks"
	"github.com/olablt/gio-geomarks/projection"
	"github.com/olablt/gio-geomarks/viewport"
)

// DefaultIconSize is the marker edge in canvas units at every zoom level.
const DefaultIconSize = 20.0

// IconSource looks up the loaded icon of a category.
type IconSource interface {
	Get(category string) (image.Image, bool)
}

// Frame is everything one render pass reads.
type Frame struct {
	Base     image.Image
	Dataset  geomarks.Dataset // already filtered by the selection
	Icons    IconSource
	Viewport *viewport.State
}

type Renderer struct {
	Calibration projection.Calibration
	IconSize    float64
}

func New() *Renderer {
	return &Renderer{Calibration: projection.Default, IconSize: DefaultIconSize}
}

// Render repaints the whole surface. Without a base image the canvas stays blank.
func (r *Renderer) Render(s Surface, f Frame) {
	s.Clear()
	if f.Base == nil {
		return
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	vp := f.Viewport
	if vp == nil {
		vp = viewport.New()
	}
	s.Push(vp.Transform(w, h))
	defer s.Pop()

	b := f.Base.Bounds()
	s.DrawImage(f.Base, Fit(w, h, float64(b.Dx()), float64(b.Dy())))

	if f.Icons == nil {
		return
	}
	size := r.IconSize
	for _, c := range f.Dataset {
		icon, ok := f.Icons.Get(c.Name)
		if !ok {
			continue
		}
		for _, lm := range c.Landmarks {
			x, y := r.Calibration.Project(w, h, lm)
			// centred on x, bottom edge on y
			s.DrawImage(icon, Rect{X: x - size/2, Y: y - size, W: size, H: size})
		}
	}
}
