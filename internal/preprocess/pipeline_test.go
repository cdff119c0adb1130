package preprocess

import "testing"

func TestNewPipelineRejectsUnknownInterpolation(t *testing.T) {
	if _, err := NewPipeline("cubic"); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestProcessSquare(t *testing.T) {
	for _, name := range Interpolations {
		t.Run(name, func(t *testing.T) {
			p, err := NewPipeline(name)
			if err != nil {
				t.Fatalf("NewPipeline failed: %v", err)
			}

			img := blankCanvas(450, 450)
			fillRect(img, 100, 100, 150, 150, ink)

			res := p.Process(img)

			if res.Empty() {
				t.Fatal("Expected content")
			}
			if res.CropSide < 90 {
				t.Errorf("CropSide = %d, want >= 90", res.CropSide)
			}
			if res.Final == nil || res.Final.Bounds().Dx() != Side || res.Final.Bounds().Dy() != Side {
				t.Fatalf("Final image is not %dx%d", Side, Side)
			}
			if len(res.Tensor) != TensorLen {
				t.Fatalf("len(Tensor) = %d, want %d", len(res.Tensor), TensorLen)
			}

			if v := res.Tensor[14*Side+14]; v < 0.5 {
				t.Errorf("centre value %v, want ink above 0.5", v)
			}
			if v := res.Tensor[0]; v > -0.5 {
				t.Errorf("corner value %v, want background below -0.5", v)
			}
		})
	}
}

func TestProcessEmptyCanvas(t *testing.T) {
	p, err := NewPipeline(Lanczos3)
	if err != nil {
		t.Fatal(err)
	}

	res := p.Process(blankCanvas(450, 450))

	if !res.Empty() {
		t.Fatal("Expected empty result")
	}
	if res.Final != nil {
		t.Error("Expected no final image for an empty canvas")
	}
	blank := BlankTensor()
	for i := range blank {
		if res.Tensor[i] != blank[i] {
			t.Fatalf("Tensor[%d] = %v, want %v", i, res.Tensor[i], blank[i])
		}
	}
}

func TestProcessZeroSizePanics(t *testing.T) {
	p, err := NewPipeline("")
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for zero-size raster")
		}
	}()
	p.Process(blankCanvas(0, 0))
}
