package preprocess

import (
	"image"
	"sync"
)

// maxPooledSide is the largest crop side that gets a pool. Larger crops
// are allocated directly.
const maxPooledSide = 1024

// canvasPool recycles square crop canvases keyed by side length so
// successive drawings of similar size do not reallocate.
type canvasPool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

var crops = &canvasPool{pools: make(map[int]*sync.Pool)}

// get returns a side x side canvas with unspecified contents.
func (p *canvasPool) get(side int) *image.NRGBA {
	if side > maxPooledSide {
		return image.NewNRGBA(image.Rect(0, 0, side, side))
	}

	p.mu.RLock()
	pool, ok := p.pools[side]
	p.mu.RUnlock()

	if !ok {
		p.mu.Lock()
		pool, ok = p.pools[side]
		if !ok {
			pool = &sync.Pool{
				New: func() any {
					return image.NewNRGBA(image.Rect(0, 0, side, side))
				},
			}
			p.pools[side] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.NRGBA)
}

func (p *canvasPool) put(img *image.NRGBA) {
	if img == nil || img.Rect.Min != (image.Point{}) || img.Rect.Dx() != img.Rect.Dy() || img.Rect.Dx() > maxPooledSide {
		return
	}
	p.mu.RLock()
	pool, ok := p.pools[img.Rect.Dx()]
	p.mu.RUnlock()

	if ok {
		pool.Put(img)
	}
}

func (p *canvasPool) size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.pools)
}

// Release hands a crop canvas returned by ExpandCrop back for reuse. The
// caller must not touch img afterwards.
func Release(img *image.NRGBA) {
	crops.put(img)
}
