package render

import (
	"image"

	"github.com/olablt/gio-geomarks/viewport"
)

// Rect is a rectangle in canvas units.
type Rect struct {
	X, Y, W, H float64
}

// Surface is what a frame is drawn onto. Push/Pop bracket a saved graphics state
// with the transform applied; they nest.
type Surface interface {
	// Size is the canvas backing-store size.
	Size() (w, h float64)
	// Clear wipes the whole canvas, ignoring any pushed transform.
	Clear()
	Push(t viewport.Transform)
	Pop()
	// DrawImage scales img into r under the current transform.
	DrawImage(img image.Image, r Rect)
}
