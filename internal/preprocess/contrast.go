package preprocess

import "image"

const (
	strokeLuma   = 200
	lightLuma    = 230
	darkenAmount = 30
)

var neighbours = [4]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Enhance darkens light pixels 4-adjacent to stroke pixels, thickening thin
// strokes after downscaling. Decisions read a snapshot of img taken before
// the pass; a light pixel next to several stroke pixels is darkened once
// per stroke neighbour. The one-pixel border is never a stroke centre.
func Enhance(img *image.NRGBA) {
	r := img.Bounds()
	orig := make([]uint8, len(img.Pix))
	copy(orig, img.Pix)

	lumaAt := func(x, y int) float64 {
		i := img.PixOffset(x, y)
		return luma(orig[i], orig[i+1], orig[i+2])
	}

	for y := r.Min.Y + 1; y < r.Max.Y-1; y++ {
		for x := r.Min.X + 1; x < r.Max.X-1; x++ {
			if lumaAt(x, y) >= strokeLuma {
				continue
			}
			for _, d := range neighbours {
				nx, ny := x+d.X, y+d.Y
				if lumaAt(nx, ny) <= lightLuma {
					continue
				}
				i := img.PixOffset(nx, ny)
				for c := 0; c < 3; c++ {
					img.Pix[i+c] = darken(img.Pix[i+c])
				}
			}
		}
	}
}

func darken(v uint8) uint8 {
	if v < darkenAmount {
		return 0
	}
	return v - darkenAmount
}
