package assets

import (
	"context"
	"hash/fnv"
	"image"
	"image/color"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlaceholderSize is the edge of generated marker icons.
const PlaceholderSize = 32

// Placeholder draws a round marker with the category's initial for any icon
// path. It has nothing to offer for other assets.
type Placeholder struct{}

func (Placeholder) Load(ctx context.Context, path string) (image.Image, error) {
	category, ok := iconCategory(path)
	if !ok {
		return nil, loadErr(path, errors.New("no placeholder for non-icon assets"))
	}
	return placeholderIcon(category), nil
}

func iconCategory(path string) (string, bool) {
	path = strings.TrimPrefix(path, "/")
	if !strings.HasPrefix(path, "markers/") || !strings.HasSuffix(path, ".png") {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(path, "markers/"), ".png")
	return name, name != ""
}

func placeholderIcon(category string) image.Image {
	const size = PlaceholderSize
	dc := gg.NewContext(size, size)
	dc.DrawCircle(size/2, size/2, size/2-1)
	dc.SetColor(categoryColor(category))
	dc.FillPreserve()
	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	dc.Stroke()

	img, _ := dc.Image().(*image.RGBA)
	initial, _ := utf8.DecodeRuneInString(category)
	text := string(unicode.ToUpper(initial))

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	textWidth := d.MeasureString(text).Round()
	textHeight := face.Metrics().Ascent.Round()
	d.Dot = fixed.Point26_6{
		X: fixed.I((size - textWidth) / 2),
		Y: fixed.I((size + textHeight) / 2),
	}
	d.DrawString(text)
	return img
}

// categoryColor gives every category a stable, reasonably saturated colour.
func categoryColor(category string) color.NRGBA {
	h := fnv.New32a()
	h.Write([]byte(category))
	sum := h.Sum32()
	return color.NRGBA{
		R: 64 + uint8(sum%160),
		G: 64 + uint8((sum>>8)%160),
		B: 64 + uint8((sum>>16)%160),
		A: 0xff,
	}
}
