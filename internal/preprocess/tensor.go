package preprocess

import (
	"fmt"
	"image"
	"math"
)

const (
	tanhGain  = 2
	tanhScale = 0.8
)

// Tensorize converts a 28x28 image into the model input. Each pixel's luma
// is mapped to [-1, 1], soft-clipped by tanh and negated so ink is
// positive. It panics if img is not 28x28.
func Tensorize(img *image.NRGBA) Tensor {
	r := img.Bounds()
	if r.Dx() != Side || r.Dy() != Side {
		panic(fmt.Sprintf("preprocess: tensorize needs a %dx%d image, got %dx%d", Side, Side, r.Dx(), r.Dy()))
	}

	t := make(Tensor, 0, TensorLen)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := img.PixOffset(x, y)
			t = append(t, pixelValue(luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2])))
		}
	}
	return t
}

func pixelValue(l float64) float32 {
	n := (l/255 - 0.5) / 0.5
	n = math.Tanh(n*tanhGain) * tanhScale
	return float32(-n)
}

// BlankTensor is the tensor of an empty canvas.
func BlankTensor() Tensor {
	return Tensorize(newCanvas(Side))
}
