package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"testing/fstest"

	"go.viam.com/test"

	"github.com/olablt/gio-geomarks/assets"
	"github.com/olablt/gio-geomarks/geomarks"
	"github.com/olablt/gio-geomarks/logging"
	"github.com/olablt/gio-geomarks/scene"
)

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

func newScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.New(scene.Options{
		Loader: assets.NewDirLoader(fstest.MapFS{
			"map.png":          {Data: encodePNG(t, 10, 10, color.NRGBA{R: 255, A: 255})},
			"markers/fish.png": {Data: encodePNG(t, 8, 8, color.NRGBA{B: 255, A: 255})},
			"markers/herb.png": {Data: encodePNG(t, 8, 8, color.NRGBA{G: 255, A: 255})},
		}),
		Logger: logging.NewTestLogger(t),
	})
	t.Cleanup(s.Close)
	return s
}

var ds = geomarks.Dataset{
	{Name: "fish", Landmarks: []geomarks.Landmark{{X: -1.2, Y: 0.9, Name: "Lake"}}},
	{Name: "herb", Landmarks: []geomarks.Landmark{{X: -1.09, Y: 0.62, Name: "Ginseng"}}},
}

func TestSnapshotAppliesView(t *testing.T) {
	s := newScene(t)
	logger, logs := logging.NewObservedTestLogger(t)
	raster, err := snapshot(s, ds, options{
		width:  800,
		height: 400,
		zoomIn: 2,
		pan:    []float64{10, -4},
		only:   []string{"herb", "wood"},
	}, logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, s.Viewport().Scale(), test.ShouldAlmostEqual, 1.21)
	test.That(t, s.Viewport().Translation().X, test.ShouldEqual, 10.0)
	test.That(t, s.Viewport().Translation().Y, test.ShouldEqual, -4.0)
	test.That(t, s.Visible().Names(), test.ShouldResemble, []string{"herb"})
	test.That(t, s.Size(), test.ShouldResemble, image.Pt(800, 400))
	test.That(t, logs.FilterMessage("unknown category ignored").Len(), test.ShouldEqual, 1)

	s.Render(raster)
	out := filepath.Join(t.TempDir(), "map.png")
	test.That(t, raster.SavePNG(out), test.ShouldBeNil)
	test.That(t, raster.Image().Bounds().Size(), test.ShouldResemble, image.Pt(800, 400))
	// centre of the letterboxed base stays red under a centred zoom
	_, _, _, a := raster.Image().At(410, 196).RGBA()
	test.That(t, a, test.ShouldEqual, uint32(0xffff))
}

func TestSnapshotRejectsBadOptions(t *testing.T) {
	logger := logging.NewTestLogger(t)
	_, err := snapshot(newScene(t), ds, options{width: 0, height: 10}, logger)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = snapshot(newScene(t), ds, options{width: 10, height: 10, pan: []float64{1}}, logger)
	test.That(t, err, test.ShouldNotBeNil)
}
