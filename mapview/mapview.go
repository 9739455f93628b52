// Package mapview is the Gio widget that shows a scene.Scene: it feeds pointer
// drags and the two zoom buttons to the scene's controller and paints the scene
// through Gio ops.
package mapview

import (
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/olablt/gio-geomarks/interaction"
	"github.com/olablt/gio-geomarks/scene"
	"github.com/olablt/gio-geomarks/viewport"
)

type MapView struct {
	Scene *scene.Scene
	// Background fills the canvas behind the base image.
	Background color.NRGBA

	zoomIn  widget.Clickable
	zoomOut widget.Clickable
	images  *ImageOpCache
}

func New(s *scene.Scene) *MapView {
	return &MapView{
		Scene:  s,
		images: NewImageOpCache(),
	}
}

func (mv *MapView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	ctrl := mv.Scene.Controller()
	for mv.zoomIn.Clicked(gtx) {
		ctrl.ZoomIn()
	}
	for mv.zoomOut.Clicked(gtx) {
		ctrl.ZoomOut()
	}

	return layout.Stack{Alignment: layout.SE}.Layout(gtx,
		layout.Expanded(mv.layoutCanvas),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(material.Button(th, &mv.zoomIn, "+").Layout),
					layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
					layout.Rigid(material.Button(th, &mv.zoomOut, "-").Layout),
				)
			})
		}),
	)
}

func (mv *MapView) layoutCanvas(gtx layout.Context) layout.Dimensions {
	tag := mv
	ctrl := mv.Scene.Controller()

	// process events
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: tag,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Leave,
		})
		if !ok {
			break
		}
		if x, ok := ev.(pointer.Event); ok {
			handlePointer(ctrl, x)
		}
	}

	size := gtx.Constraints.Max
	mv.Scene.Resize(size)

	// Confine the area of interest to a gtx Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, tag)
	if ctrl.Mode() == interaction.Dragging {
		pointer.CursorGrabbing.Add(gtx.Ops)
	} else {
		pointer.CursorGrab.Add(gtx.Ops)
	}

	mv.Scene.Render(newGioSurface(gtx.Ops, size, mv.Background, mv.images))
	return layout.Dimensions{Size: size}
}

// Images exposes the texture cache, mainly so hosts can Clear it after swapping
// asset roots.
func (mv *MapView) Images() *ImageOpCache { return mv.images }

func handlePointer(ctrl *interaction.Controller, ev pointer.Event) {
	p := viewport.Point{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonPrimary) || ev.Source == pointer.Touch {
			ctrl.PointerDown(p)
		}
	case pointer.Drag, pointer.Move:
		ctrl.PointerMove(p)
	case pointer.Release, pointer.Cancel:
		ctrl.PointerUp()
	case pointer.Leave:
		ctrl.PointerLeave()
	}
}
