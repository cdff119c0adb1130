// Package preprocess turns a free-hand digit drawing into the 28x28 tensor
// the classifier was trained on.
package preprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

const (
	// Side is the model input resolution.
	Side = 28
	// TensorLen is the number of values the model consumes.
	TensorLen = Side * Side
)

// Background is the canvas fill colour.
var Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Tensor is a row-major (1, 28, 28) model input.
type Tensor []float32

// newCanvas returns a square image of the given side filled with Background.
func newCanvas(side int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	fill(img)
	return img
}

func fill(img *image.NRGBA) {
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
}

// luma returns the perceptual grey value of an RGB triple.
func luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
