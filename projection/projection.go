package projection

import "github.com/olablt/gio-geomarks/geomarks"

// Calibration maps the normalized landmark frame of one specific base artwork onto
// the canvas. The values are empirical; new artwork needs new values.
type Calibration struct {
	ScaleX, ScaleY           float64
	CorrectionX, CorrectionY float64
}

// Default is the calibration of the bundled map.png.
var Default = Calibration{
	ScaleX:      1.21,
	ScaleY:      1.34,
	CorrectionX: 1.48,
	CorrectionY: 0.44,
}

// Project converts a landmark position into a pre-transform canvas coordinate
// for a canvas of size w×h.
func (c Calibration) Project(w, h float64, lm geomarks.Landmark) (x, y float64) {
	x = ((lm.X+c.CorrectionX)*w/2)*c.ScaleX + c.CorrectionX
	y = ((1-lm.Y+c.CorrectionY)*h/2)*c.ScaleY + c.CorrectionY
	return x, y
}
