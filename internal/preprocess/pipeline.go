package preprocess

import "image"

// Result carries the tensor and the intermediate values a caller may want
// to log or display.
type Result struct {
	Tensor   Tensor
	Bounds   Bounds
	CropSide int
	// Final is the enhanced 28x28 image, nil for an empty canvas.
	Final *image.NRGBA
}

// Empty reports whether the raster had no drawn content.
func (r Result) Empty() bool { return !r.Bounds.HasContent }

// Pipeline runs bounds, crop, resample, enhance and tensorize in order.
// It holds no per-call state and is safe for concurrent use.
type Pipeline struct {
	resampler *Resampler
}

// NewPipeline builds a pipeline that resamples with the named kernel.
func NewPipeline(interpolation string) (*Pipeline, error) {
	r, err := NewResampler(interpolation)
	if err != nil {
		return nil, err
	}
	return &Pipeline{resampler: r}, nil
}

// Process turns a canvas snapshot into a model input. An empty canvas
// yields BlankTensor. It panics on a zero-size raster.
func (p *Pipeline) Process(img *image.NRGBA) Result {
	if img.Bounds().Empty() {
		panic("preprocess: zero-size raster")
	}

	bounds := FindBounds(img)
	if !bounds.HasContent {
		return Result{Tensor: BlankTensor(), Bounds: bounds}
	}

	crop, side := ExpandCrop(img, bounds)
	final := p.resampler.Resample(crop, side)
	Release(crop)

	Enhance(final)

	return Result{
		Tensor:   Tensorize(final),
		Bounds:   bounds,
		CropSide: side,
		Final:    final,
	}
}
