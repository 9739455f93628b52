package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/widget/material"
	"go.viam.com/test"

	"github.com/olablt/gio-geomarks/assets"
	"github.com/olablt/gio-geomarks/geomarks"
	"github.com/olablt/gio-geomarks/logging"
	"github.com/olablt/gio-geomarks/scene"
)

const translations = `{
	"en": {"languageName": "English", "title": "Map", "geomarkList": "Landmarks",
		"geomarks": {"fish": "Fishing spots"}},
	"zh": {"languageName": "中文", "title": "地图", "geomarkList": "标记",
		"geomarks": {"fish": "钓鱼点"}}
}`

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	test.That(t, png.Encode(&buf, img), test.ShouldBeNil)
	return buf.Bytes()
}

func newApp(t *testing.T, ds geomarks.Dataset) (*App, *scene.Scene) {
	t.Helper()
	blue := color.NRGBA{B: 255, A: 255}
	s := scene.New(scene.Options{
		Loader: assets.NewDirLoader(fstest.MapFS{
			"markers/fish.png": {Data: encodePNG(t, 40, 20, blue)},
			"markers/herb.png": {Data: encodePNG(t, 8, 8, blue)},
			"markers/ore.png":  {Data: encodePNG(t, 8, 8, blue)},
		}),
		Logger: logging.NewTestLogger(t),
	})
	t.Cleanup(s.Close)
	s.SetDataset(ds)

	tr, err := geomarks.DecodeTranslations([]byte(translations))
	test.That(t, err, test.ShouldBeNil)

	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	a := New(Options{Theme: th, Scene: s, Translations: tr, Language: "zh", Logger: logging.NewTestLogger(t)})
	return a, s
}

func dataset(names ...string) geomarks.Dataset {
	ds := geomarks.Dataset{}
	for _, n := range names {
		ds = append(ds, geomarks.Category{Name: n, Landmarks: []geomarks.Landmark{{X: 0, Y: 0, Name: n}}})
	}
	return ds
}

func frame(a *App) layout.Dimensions {
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(1024, 600)),
	}
	return a.Layout(gtx)
}

func TestThumbnailKeepsAspect(t *testing.T) {
	icon := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			icon.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	th := Thumbnail(icon)
	test.That(t, th.Bounds().Size(), test.ShouldResemble, image.Pt(ThumbnailSize, ThumbnailSize))
	// 40×20 fits as 24×12, centred vertically
	test.That(t, th.NRGBAAt(12, 12).A, test.ShouldEqual, uint8(255))
	test.That(t, th.NRGBAAt(12, 1).A, test.ShouldEqual, uint8(0))
}

func TestMergeSelection(t *testing.T) {
	prev := dataset("fish", "herb", "ore")
	next := dataset("herb", "ore", "wood")
	sel := geomarks.Select("fish", "ore")

	merged := MergeSelection(sel, prev, next)
	test.That(t, merged, test.ShouldResemble, geomarks.Select("ore", "wood"))

	test.That(t, MergeSelection(nil, prev, next), test.ShouldResemble, geomarks.Select("herb", "ore", "wood"))
}

func TestAppStartsWithAllSelected(t *testing.T) {
	a, s := newApp(t, dataset("fish", "herb"))
	test.That(t, a.Selection(), test.ShouldResemble, geomarks.Select("fish", "herb"))
	test.That(t, s.Visible().Names(), test.ShouldResemble, []string{"fish", "herb"})

	test.That(t, a.Language(), test.ShouldEqual, "zh")
	test.That(t, a.Translator().T("title"), test.ShouldEqual, "地图")
	test.That(t, a.Translator().Geomark("fish"), test.ShouldEqual, "钓鱼点")

	s.Wait()
	dims := frame(a)
	test.That(t, dims.Size, test.ShouldResemble, image.Pt(1024, 600))
	test.That(t, len(a.thumbs), test.ShouldEqual, 2)
}

func TestAppLanguageFallback(t *testing.T) {
	a, _ := newApp(t, dataset("fish"))
	a.SetLanguage("fr")
	test.That(t, a.Language(), test.ShouldEqual, geomarks.DefaultLanguage)
	test.That(t, a.Translator().Geomark("fish"), test.ShouldEqual, "Fishing spots")
	test.That(t, a.Translator().Geomark("herb"), test.ShouldEqual, "herb")
}

func TestAppAppliesQueuedDataset(t *testing.T) {
	a, s := newApp(t, dataset("fish", "herb"))
	var invalidations int
	a.invalidate = func() { invalidations++ }

	a.QueueDataset(dataset("fish"))
	// only the newest pending dataset is applied
	a.QueueDataset(dataset("herb", "ore"))
	test.That(t, invalidations, test.ShouldEqual, 2)
	test.That(t, s.Dataset().Names(), test.ShouldResemble, []string{"fish", "herb"})

	frame(a)
	s.Wait()
	test.That(t, s.Dataset().Names(), test.ShouldResemble, []string{"herb", "ore"})
	test.That(t, a.Selection(), test.ShouldResemble, geomarks.Select("herb", "ore"))
	test.That(t, a.checks["ore"].Value, test.ShouldBeTrue)
	test.That(t, a.checks["fish"].Value, test.ShouldBeFalse)

	_, ok := s.Icons().Get("ore")
	test.That(t, ok, test.ShouldBeTrue)
}
