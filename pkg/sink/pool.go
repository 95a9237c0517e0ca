package sink

import (
	"fmt"

	"github.com/user/vidsink/pkg/ports"
)

// texturePool is a fixed-capacity set of backend images used when the output
// target is a pooled-texture consumer. Images move from the free set to the
// in-use FIFO on acquire and back strictly in acquisition order, so a
// downstream consumer can never observe a recycled image it might still
// reference.
//
// Images are allocated lazily and dropped when the configured size changes;
// freeCount + inUseCount == capacity always holds, counting unallocated free
// slots as free.
type texturePool struct {
	backend  ports.RenderBackend
	capacity int

	width  int
	height int

	free  []ports.Image
	inUse []ports.Image
}

func newTexturePool(backend ports.RenderBackend, capacity int) *texturePool {
	if capacity <= 0 {
		panic(fmt.Sprintf("sink: texture pool capacity must be positive, got %d", capacity))
	}
	return &texturePool{backend: backend, capacity: capacity}
}

// configure sets the image size for subsequent acquisitions. Cached free
// images of a different size are released; in-use images keep their size
// until recycled.
func (p *texturePool) configure(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width = width
	p.height = height
	for _, img := range p.free {
		img.Release()
	}
	p.free = p.free[:0]
}

// freeCount reports how many images can still be acquired.
func (p *texturePool) freeCount() int {
	return p.capacity - len(p.inUse)
}

func (p *texturePool) inUseCount() int {
	return len(p.inUse)
}

// acquire takes a free image, allocating one if no cached image matches the
// configured size. The caller must check freeCount first; acquiring from an
// exhausted pool is a programming error.
func (p *texturePool) acquire() (ports.Image, error) {
	if p.freeCount() == 0 {
		panic("sink: texture pool exhausted")
	}
	var img ports.Image
	if n := len(p.free); n > 0 {
		img = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		created, err := p.backend.CreateImage(p.width, p.height)
		if err != nil {
			return nil, fmt.Errorf("allocate pooled image: %w", err)
		}
		img = created
	}
	p.inUse = append(p.inUse, img)
	return img, nil
}

// releaseNewest undoes the most recent acquire after a failed draw, caching
// the image for reuse.
func (p *texturePool) releaseNewest() {
	if len(p.inUse) == 0 {
		panic("sink: release on empty texture pool")
	}
	img := p.inUse[len(p.inUse)-1]
	p.inUse = p.inUse[:len(p.inUse)-1]
	p.free = append(p.free, img)
}

// recycleOldest returns the oldest in-use image to the free set. Stale-sized
// images are released instead of cached.
func (p *texturePool) recycleOldest() {
	if len(p.inUse) == 0 {
		panic("sink: recycle on empty texture pool")
	}
	img := p.inUse[0]
	p.inUse = p.inUse[1:]
	if img.Width() == p.width && img.Height() == p.height {
		p.free = append(p.free, img)
	} else {
		img.Release()
	}
}

// releaseAll frees every image, cached and in use. The pool remains usable
// and will reallocate lazily.
func (p *texturePool) releaseAll() {
	for _, img := range p.free {
		img.Release()
	}
	for _, img := range p.inUse {
		img.Release()
	}
	p.free = p.free[:0]
	p.inUse = p.inUse[:0]
}
