package preprocess

import "image"

// contentThreshold is the channel value below which a pixel is ink.
const contentThreshold = 250

// Bounds is the inclusive bounding box of drawn content. The coordinates
// are only meaningful when HasContent is true.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
	HasContent bool
}

// Width of the content box.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height of the content box.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// FindBounds scans img for pixels that are neither transparent nor near
// white and returns their tight bounding box.
func FindBounds(img *image.NRGBA) Bounds {
	r := img.Bounds()
	b := Bounds{MinX: r.Max.X, MinY: r.Max.Y, MaxX: r.Min.X, MaxY: r.Min.Y}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):]
		for x := r.Min.X; x < r.Max.X; x++ {
			i := (x - r.Min.X) * 4
			if row[i+3] == 0 {
				continue
			}
			if row[i] >= contentThreshold && row[i+1] >= contentThreshold && row[i+2] >= contentThreshold {
				continue
			}
			b.HasContent = true
			b.MinX = min(b.MinX, x)
			b.MinY = min(b.MinY, y)
			b.MaxX = max(b.MaxX, x)
			b.MaxY = max(b.MaxY, y)
		}
	}

	return b
}
