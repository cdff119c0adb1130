package preprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

const (
	minPadding   = 20
	paddingRatio = 0.1
)

// ExpandCrop cuts a square window centred on the content of src, padded by
// max(20px, 10%) on every side. Parts of the window outside src stay
// Background. It returns the canvas and its side length; b must have
// content.
func ExpandCrop(src *image.NRGBA, b Bounds) (*image.NRGBA, int) {
	cropSize := max(b.Width(), b.Height())
	padding := math.Max(minPadding, float64(cropSize)*paddingRatio)
	expanded := float64(cropSize) + 2*padding
	side := int(expanded)

	centerX := float64(b.MinX+b.MaxX) / 2
	centerY := float64(b.MinY+b.MaxY) / 2
	start := image.Pt(
		roundHalfUp(centerX-expanded/2),
		roundHalfUp(centerY-expanded/2),
	)

	dst := crops.get(side)
	fill(dst)
	draw.Draw(dst, dst.Bounds(), src, start, draw.Over)

	return dst, side
}

// roundHalfUp rounds .5 towards positive infinity, which differs from
// math.Round for negative offsets.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
