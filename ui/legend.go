package ui

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/olablt/gio-geomarks/geomarks"
)

// ThumbnailSize is the edge of the legend icons, in pixels before dp scaling.
const ThumbnailSize = 24

// Thumbnail fits icon into a transparent ThumbnailSize square, keeping its aspect.
func Thumbnail(icon image.Image) *image.NRGBA {
	fit := imaging.Fit(icon, ThumbnailSize, ThumbnailSize, imaging.Lanczos)
	return imaging.PasteCenter(imaging.New(ThumbnailSize, ThumbnailSize, color.NRGBA{}), fit)
}

// MergeSelection carries the user's choices over a dataset reload: categories
// present before keep their state, new ones start selected.
func MergeSelection(sel geomarks.Selection, prev, next geomarks.Dataset) geomarks.Selection {
	known := make(map[string]bool, len(prev))
	for _, c := range prev {
		known[c.Name] = true
	}
	merged := geomarks.Selection{}
	for _, c := range next {
		if !known[c.Name] || sel == nil || sel.Has(c.Name) {
			merged[c.Name] = struct{}{}
		}
	}
	return merged
}
