package preprocess

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// margin keeps content off the model input border.
const margin = 2

// Interpolation kernels accepted by NewResampler.
const (
	Lanczos3       = "lanczos3"
	Bilinear       = "bilinear"
	CatmullRom     = "catmullrom"
	ApproxBiLinear = "approxbilinear"
)

// Interpolations lists every supported kernel name.
var Interpolations = []string{Lanczos3, Bilinear, CatmullRom, ApproxBiLinear}

// Resampler scales a square crop down to the 28x28 model input.
type Resampler struct {
	name   string
	nfnt   resize.InterpolationFunction
	scaler draw.Scaler
}

// NewResampler returns a resampler for the named kernel. An empty name
// selects Lanczos3.
func NewResampler(name string) (*Resampler, error) {
	r := &Resampler{name: name}
	switch name {
	case "", Lanczos3:
		r.name = Lanczos3
		r.nfnt = resize.Lanczos3
	case Bilinear:
		r.nfnt = resize.Bilinear
	case CatmullRom:
		r.scaler = draw.CatmullRom
	case ApproxBiLinear:
		r.scaler = draw.ApproxBiLinear
	default:
		return nil, fmt.Errorf("unknown interpolation %q", name)
	}
	return r, nil
}

// Name of the kernel in use.
func (r *Resampler) Name() string { return r.name }

// Resample draws the side x side top-left region of src into the inner
// 24x24 square of a fresh Background-filled 28x28 image.
func (r *Resampler) Resample(src *image.NRGBA, side int) *image.NRGBA {
	dst := newCanvas(Side)
	inner := image.Rect(margin, margin, Side-margin, Side-margin)
	origin := src.Bounds().Min
	srcRect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(side, side))}

	if r.scaler != nil {
		r.scaler.Scale(dst, inner, src, srcRect, draw.Over, nil)
		return dst
	}

	scaled := resize.Resize(uint(inner.Dx()), uint(inner.Dy()), src.SubImage(srcRect), r.nfnt)
	draw.Draw(dst, inner, scaled, scaled.Bounds().Min, draw.Over)
	return dst
}
