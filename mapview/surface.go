package mapview

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/olablt/gio-geomarks/render"
	"github.com/olablt/gio-geomarks/viewport"
)

// gioSurface records render.Surface calls as Gio ops.
type gioSurface struct {
	ops        *op.Ops
	size       image.Point
	background color.NRGBA
	images     *ImageOpCache
	stack      []op.TransformStack
}

var _ render.Surface = (*gioSurface)(nil)

func newGioSurface(ops *op.Ops, size image.Point, background color.NRGBA, images *ImageOpCache) *gioSurface {
	return &gioSurface{ops: ops, size: size, background: background, images: images}
}

func (s *gioSurface) Size() (float64, float64) {
	return float64(s.size.X), float64(s.size.Y)
}

func (s *gioSurface) Clear() {
	if s.background.A == 0 {
		return
	}
	defer clip.Rect{Max: s.size}.Push(s.ops).Pop()
	paint.ColorOp{Color: s.background}.Add(s.ops)
	paint.PaintOp{}.Add(s.ops)
}

func (s *gioSurface) Push(t viewport.Transform) {
	s.stack = append(s.stack, op.Affine(affine(t)).Push(s.ops))
}

func (s *gioSurface) Pop() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	s.stack[n-1].Pop()
	s.stack = s.stack[:n-1]
}

func (s *gioSurface) DrawImage(img image.Image, dst render.Rect) {
	imgOp := s.images.Op(img)
	src := imgOp.Size()
	if src.X == 0 || src.Y == 0 || dst.W <= 0 || dst.H <= 0 {
		return
	}
	scale := f32.Pt(float32(dst.W/float64(src.X)), float32(dst.H/float64(src.Y)))
	tr := f32.Affine2D{}.Scale(f32.Point{}, scale).Offset(f32.Pt(float32(dst.X), float32(dst.Y)))
	defer op.Affine(tr).Push(s.ops).Pop()
	defer clip.Rect{Max: src}.Push(s.ops).Pop()
	imgOp.Add(s.ops)
	paint.PaintOp{}.Add(s.ops)
}

// affine is translate(c+t)·scale(s)·translate(-c).
func affine(t viewport.Transform) f32.Affine2D {
	c := f32.Pt(float32(t.Center.X), float32(t.Center.Y))
	s := float32(t.Scale)
	return f32.Affine2D{}.
		Offset(c.Mul(-1)).
		Scale(f32.Point{}, f32.Pt(s, s)).
		Offset(c.Add(f32.Pt(float32(t.Translation.X), float32(t.Translation.Y))))
}
