package assets

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/olablt/gio-geomarks/logging"
)

type countingLoader struct {
	Loader
	calls atomic.Int32
}

func (l *countingLoader) Load(ctx context.Context, path string) (image.Image, error) {
	l.calls.Add(1)
	return l.Loader.Load(ctx, path)
}

func TestCachedLoadsOnce(t *testing.T) {
	inner := &countingLoader{Loader: NewDirLoader(fstest.MapFS{
		"markers/fish.png": {Data: encodePNG(t, 2, 2, color.Black)},
	})}
	c := NewCached(inner)
	ctx := context.Background()

	first, err := c.Load(ctx, IconPath("fish"))
	test.That(t, err, test.ShouldBeNil)
	second, err := c.Load(ctx, IconPath("fish"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, second, test.ShouldEqual, first)
	test.That(t, inner.calls.Load(), test.ShouldEqual, int32(1))

	// failures are retried
	_, err = c.Load(ctx, IconPath("herb"))
	test.That(t, err, test.ShouldNotBeNil)
	_, err = c.Load(ctx, IconPath("herb"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, inner.calls.Load(), test.ShouldEqual, int32(3))
	test.That(t, c.Len(), test.ShouldEqual, 1)

	c.Clear()
	test.That(t, c.Len(), test.ShouldEqual, 0)
}

func TestFallbackToPlaceholder(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	primary := NewDirLoader(fstest.MapFS{
		"markers/fish.png": {Data: encodePNG(t, 2, 2, color.Black)},
	})
	l := NewFallback(primary, Placeholder{}, logger)
	ctx := context.Background()

	img, err := l.Load(ctx, IconPath("fish"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 2)

	img, err = l.Load(ctx, IconPath("herb"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds().Size(), test.ShouldResemble, image.Pt(PlaceholderSize, PlaceholderSize))
	test.That(t, logs.FilterMessage("asset replaced by fallback").Len(), test.ShouldEqual, 1)

	// the base image has no placeholder; both failures are reported
	_, err = l.Load(ctx, BaseImagePath)
	test.That(t, errors.Is(err, ErrAssetLoad), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no placeholder")
}

func TestPlaceholderIcon(t *testing.T) {
	img, err := Placeholder{}.Load(context.Background(), "/markers/herb.png")
	test.That(t, err, test.ShouldBeNil)

	// centre is opaque, corners are outside the circle
	_, _, _, a := img.At(PlaceholderSize/2, 4).RGBA()
	test.That(t, a, test.ShouldEqual, uint32(0xffff))
	_, _, _, a = img.At(0, 0).RGBA()
	test.That(t, a, test.ShouldEqual, uint32(0))

	test.That(t, categoryColor("herb"), test.ShouldResemble, categoryColor("herb"))
	test.That(t, categoryColor("herb"), test.ShouldNotResemble, categoryColor("fish"))

	for _, path := range []string{"map.png", "markers/.png", "icons/herb.png"} {
		_, ok := iconCategory(path)
		test.That(t, ok, test.ShouldBeFalse)
	}
}
