package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/olablt/gio-geomarks/viewport"
)

// Raster is a software Surface backed by a gg context. It is used for headless
// snapshots and in tests.
type Raster struct {
	dc         *gg.Context
	Background color.Color
}

func NewRaster(w, h int) *Raster {
	return &Raster{dc: gg.NewContext(w, h), Background: color.Transparent}
}

// Resize replaces the backing store, dropping its contents.
func (r *Raster) Resize(w, h int) {
	if w == r.dc.Width() && h == r.dc.Height() {
		return
	}
	r.dc = gg.NewContext(w, h)
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

func (r *Raster) Clear() {
	r.dc.SetColor(r.Background)
	r.dc.Clear()
}

func (r *Raster) Push(t viewport.Transform) {
	r.dc.Push()
	r.dc.Translate(t.Center.X+t.Translation.X, t.Center.Y+t.Translation.Y)
	r.dc.Scale(t.Scale, t.Scale)
	r.dc.Translate(-t.Center.X, -t.Center.Y)
}

func (r *Raster) Pop() {
	r.dc.Pop()
}

func (r *Raster) DrawImage(img image.Image, dst Rect) {
	b := img.Bounds()
	if b.Empty() || dst.W <= 0 || dst.H <= 0 {
		return
	}
	r.dc.Push()
	r.dc.Translate(dst.X, dst.Y)
	r.dc.Scale(dst.W/float64(b.Dx()), dst.H/float64(b.Dy()))
	r.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	r.dc.Pop()
}

func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

func (r *Raster) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}
