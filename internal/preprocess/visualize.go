package preprocess

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

const (
	previewScale = 8
	gridEvery    = 7
)

var gridColor = color.NRGBA{R: 255, A: 0x20}

// Preview maps tensor values into [0, 1] for display.
func Preview(t Tensor) []float32 {
	out := make([]float32, len(t))
	for i, v := range t {
		out[i] = float32(math.Max(0, math.Min(1, (float64(v)+1)/2)))
	}
	return out
}

// NonZero counts preview cells with a visible value.
func NonZero(preview []float32) int {
	n := 0
	for _, v := range preview {
		if math.Abs(float64(v)) > 0.01 {
			n++
		}
	}
	return n
}

// Visualize renders t as a 224x224 greyscale image with a faint grid every
// seven cells.
func Visualize(t Tensor) *image.NRGBA {
	small := image.NewNRGBA(image.Rect(0, 0, Side, Side))
	for i, v := range Preview(t) {
		g := uint8(math.Round(float64(v) * 255))
		small.SetNRGBA(i%Side, i/Side, color.NRGBA{R: g, G: g, B: g, A: 255})
	}

	size := Side * previewScale
	big := imaging.Resize(small, size, size, imaging.NearestNeighbor)

	line := image.NewUniform(gridColor)
	for c := 0; c <= Side; c += gridEvery {
		p := min(c*previewScale, size-1)
		draw.Draw(big, image.Rect(p, 0, p+1, size), line, image.Point{}, draw.Over)
		draw.Draw(big, image.Rect(0, p, size, p+1), line, image.Point{}, draw.Over)
	}
	return big
}
