// Package ui lays out the viewer window: a header with the translated title and
// language switch, the category legend, and the map.
package ui

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"go.uber.org/zap"

	"github.com/olablt/gio-geomarks/geomarks"
	"github.com/olablt/gio-geomarks/mapview"
	"github.com/olablt/gio-geomarks/scene"
)

const sidebarWidth = unit.Dp(240)

type Options struct {
	Theme        *material.Theme
	Scene        *scene.Scene
	View         *mapview.MapView
	Translations *geomarks.Translations
	Language     string
	Logger       *zap.SugaredLogger
	// Invalidate asks the window for a new frame; it must not block.
	Invalidate func()
}

type App struct {
	th         *material.Theme
	scene      *scene.Scene
	view       *mapview.MapView
	logger     *zap.SugaredLogger
	invalidate func()

	translations *geomarks.Translations
	tr           geomarks.Translator
	lang         widget.Enum

	list      widget.List
	checks    map[string]*widget.Bool
	thumbs    map[string]paint.ImageOp
	selection geomarks.Selection
	reload    chan geomarks.Dataset
}

// New builds the app around a scene that already holds its initial dataset.
// Every category starts selected.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	invalidate := opts.Invalidate
	if invalidate == nil {
		invalidate = func() {}
	}
	view := opts.View
	if view == nil {
		view = mapview.New(opts.Scene)
	}
	a := &App{
		th:           opts.Theme,
		scene:        opts.Scene,
		view:         view,
		logger:       logger,
		invalidate:   invalidate,
		translations: opts.Translations,
		checks:       map[string]*widget.Bool{},
		thumbs:       map[string]paint.ImageOp{},
		reload:       make(chan geomarks.Dataset, 1),
	}
	a.list.Axis = layout.Vertical
	a.SetLanguage(opts.Language)

	a.selection = geomarks.All(a.scene.Dataset())
	a.syncChecks()
	a.scene.SetSelection(a.selection)
	return a
}

// SetLanguage switches the UI strings; unknown codes fall back to English.
func (a *App) SetLanguage(code string) {
	a.lang.Value = a.translations.Resolve(code)
	a.tr = a.translations.Lookup(a.lang.Value)
}

func (a *App) Language() string { return a.lang.Value }

func (a *App) Translator() geomarks.Translator { return a.tr }

// Selection returns a copy of the checked categories.
func (a *App) Selection() geomarks.Selection {
	sel := make(geomarks.Selection, len(a.selection))
	for name := range a.selection {
		sel[name] = struct{}{}
	}
	return sel
}

// QueueDataset hands a reloaded dataset to the window goroutine. Only the newest
// pending dataset is kept. Safe to call from any goroutine.
func (a *App) QueueDataset(ds geomarks.Dataset) {
	for {
		select {
		case a.reload <- ds:
			a.invalidate()
			return
		default:
		}
		select {
		case <-a.reload:
		default:
		}
	}
}

func (a *App) applyPending() {
	select {
	case ds := <-a.reload:
		a.selection = MergeSelection(a.selection, a.scene.Dataset(), ds)
		a.syncChecks()
		// selection first so the icon refresh runs once, for the new dataset
		a.scene.SetSelection(a.selection)
		a.scene.SetDataset(ds)
		a.logger.Infow("dataset applied", "categories", len(ds))
	default:
	}
}

func (a *App) syncChecks() {
	for name, check := range a.checks {
		check.Value = a.selection.Has(name)
	}
	for _, name := range a.scene.Dataset().Names() {
		if _, ok := a.checks[name]; !ok {
			a.checks[name] = &widget.Bool{Value: a.selection.Has(name)}
		}
	}
}

func (a *App) update(gtx layout.Context) {
	a.applyPending()
	if a.lang.Update(gtx) {
		a.SetLanguage(a.lang.Value)
		a.logger.Infow("language changed", "language", a.lang.Value)
	}

	changed := false
	for _, name := range a.scene.Dataset().Names() {
		check := a.check(name)
		if !check.Update(gtx) {
			continue
		}
		if check.Value {
			a.selection[name] = struct{}{}
		} else {
			delete(a.selection, name)
		}
		changed = true
	}
	if changed {
		a.scene.SetSelection(a.selection)
	}
}

func (a *App) check(name string) *widget.Bool {
	check, ok := a.checks[name]
	if !ok {
		check = &widget.Bool{Value: a.selection.Has(name)}
		a.checks[name] = check
	}
	return check
}

func (a *App) Layout(gtx layout.Context) layout.Dimensions {
	a.update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutHeader),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{}.Layout(gtx,
				layout.Rigid(a.layoutSidebar),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return a.view.Layout(gtx, a.th)
				}),
			)
		}),
	)
}

func (a *App) layoutHeader(gtx layout.Context) layout.Dimensions {
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Flexed(1, material.H5(a.th, a.tr.T("title")).Layout),
		}
		for _, code := range a.translations.Languages() {
			name := a.translations.Lookup(code).Name()
			if name == "" {
				name = code
			}
			children = append(children, layout.Rigid(material.RadioButton(a.th, &a.lang, code, name).Layout))
		}
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

func (a *App) layoutSidebar(gtx layout.Context) layout.Dimensions {
	width := gtx.Dp(sidebarWidth)
	gtx.Constraints.Min.X = width
	gtx.Constraints.Max.X = width
	names := a.scene.Dataset().Names()

	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(material.H6(a.th, a.tr.T("geomarkList")).Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return material.List(a.th, &a.list).Layout(gtx, len(names), func(gtx layout.Context, i int) layout.Dimensions {
					return a.layoutEntry(gtx, names[i])
				})
			}),
		)
	})
}

func (a *App) layoutEntry(gtx layout.Context, name string) layout.Dimensions {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutThumbnail(gtx, name)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(material.CheckBox(a.th, a.check(name), a.tr.Geomark(name)).Layout),
	)
}

func (a *App) layoutThumbnail(gtx layout.Context, name string) layout.Dimensions {
	size := gtx.Dp(unit.Dp(ThumbnailSize))
	imgOp, ok := a.thumbnail(name)
	if !ok {
		return layout.Dimensions{Size: image.Pt(size, size)}
	}
	gtx.Constraints = layout.Exact(image.Pt(size, size))
	return widget.Image{Src: imgOp, Fit: widget.Contain}.Layout(gtx)
}

// thumbnail is built the first time the category's icon is in the cache.
func (a *App) thumbnail(name string) (paint.ImageOp, bool) {
	if imgOp, ok := a.thumbs[name]; ok {
		return imgOp, true
	}
	icon, ok := a.scene.Icons().Get(name)
	if !ok {
		return paint.ImageOp{}, false
	}
	imgOp := paint.NewImageOp(Thumbnail(icon))
	a.thumbs[name] = imgOp
	return imgOp, true
}
