// Package softbackend implements ports.RenderBackend in software using the
// gg library. It stands in for a GPU backend in tests and the demo player:
// draws complete synchronously, so fences are signaled on creation.
package softbackend

import (
	"context"
	"errors"
	"fmt"
	"image"
	stddraw "image/draw"

	"github.com/user/vidsink/pkg/ports"
)

var (
	// ErrPipelineReleased is returned when drawing through a released pipeline.
	ErrPipelineReleased = errors.New("softbackend: pipeline released")
	// ErrImageReleased is returned when a draw touches a released image.
	ErrImageReleased = errors.New("softbackend: image released")
)

// Backend is a software ports.RenderBackend.
type Backend struct{}

// New creates a new software backend.
func New() *Backend {
	return &Backend{}
}

// CreatePipeline builds a software pipeline for the given spec.
func (b *Backend) CreatePipeline(spec ports.PipelineSpec) (ports.Pipeline, error) {
	for _, tr := range spec.Transforms {
		switch tr.(type) {
		case Scale, Rotate:
		default:
			return nil, fmt.Errorf("softbackend: unsupported transform type %T", tr)
		}
	}
	return &pipeline{spec: spec}, nil
}

// CreateSurfaceBinding binds the backend to a Framebuffer surface.
func (b *Backend) CreateSurfaceBinding(surface ports.Surface) (ports.SurfaceBinding, error) {
	fb, ok := surface.(*Framebuffer)
	if !ok {
		return nil, fmt.Errorf("softbackend: unsupported surface type %T", surface)
	}
	return &framebufferBinding{fb: fb}, nil
}

// CreateImage allocates a CPU-backed image.
func (b *Backend) CreateImage(width, height int) (ports.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("softbackend: invalid image size %dx%d", width, height)
	}
	return &Image{pix: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// CreateFence returns an already-signaled fence; software draws are
// synchronous.
func (b *Backend) CreateFence() (ports.Fence, error) {
	return fence{}, nil
}

var _ ports.RenderBackend = (*Backend)(nil)

// Image is a CPU-backed ports.Image. Its pixels can be read back, so it also
// satisfies ports.ImageReader.
type Image struct {
	pix      *image.RGBA
	released bool
}

// NewImage wraps a decoded picture as a backend image, copying its pixels.
func NewImage(src image.Image) *Image {
	bounds := src.Bounds()
	pix := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	stddraw.Draw(pix, pix.Bounds(), src, bounds.Min, stddraw.Src)
	return &Image{pix: pix}
}

func (m *Image) Width() int  { return m.pix.Bounds().Dx() }
func (m *Image) Height() int { return m.pix.Bounds().Dy() }

// Release frees the pixel buffer. Releasing twice is a programming error.
func (m *Image) Release() {
	if m.released {
		panic("softbackend: image released twice")
	}
	m.released = true
	m.pix = nil
}

// ReadPixels returns the image's pixels. The returned image aliases the
// backing store and stays valid until Release.
func (m *Image) ReadPixels() (image.Image, error) {
	if m.released {
		return nil, ErrImageReleased
	}
	return m.pix, nil
}

var (
	_ ports.Image       = (*Image)(nil)
	_ ports.ImageReader = (*Image)(nil)
)

type fence struct{}

func (fence) Wait(ctx context.Context) error { return ctx.Err() }
func (fence) Release()                       {}

var _ ports.Fence = fence{}
