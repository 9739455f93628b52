package render

// Fit returns the largest rectangle with the image's aspect ratio that fits the
// canvas, centred along the axis with spare room.
func Fit(canvasW, canvasH, imgW, imgH float64) Rect {
	if canvasW <= 0 || canvasH <= 0 || imgW <= 0 || imgH <= 0 {
		return Rect{}
	}
	imgAspect := imgW / imgH
	canvasAspect := canvasW / canvasH

	if canvasAspect > imgAspect {
		// canvas is wider: full height, centred horizontally
		h := canvasH
		w := h * imgAspect
		return Rect{X: (canvasW - w) / 2, Y: 0, W: w, H: h}
	}
	w := canvasW
	h := w / imgAspect
	return Rect{X: 0, Y: (canvasH - h) / 2, W: w, H: h}
}
