package mocks

import (
	"context"
	"image"

	"github.com/user/vidsink/pkg/ports"
)

// Image is a mock implementation of ports.Image.
type Image struct {
	W, H     int
	Released bool
}

func (m *Image) Width() int  { return m.W }
func (m *Image) Height() int { return m.H }
func (m *Image) Release()    { m.Released = true }

var _ ports.Image = (*Image)(nil)

// Fence is a mock implementation of ports.Fence.
type Fence struct {
	WaitFunc func(ctx context.Context) error
	Waited   bool
	Released bool
}

func (m *Fence) Wait(ctx context.Context) error {
	m.Waited = true
	if m.WaitFunc != nil {
		return m.WaitFunc(ctx)
	}
	return nil
}

func (m *Fence) Release() { m.Released = true }

var _ ports.Fence = (*Fence)(nil)

// Surface is a mock implementation of ports.Surface.
type Surface struct {
	Name string
}

func (m *Surface) Label() string { return m.Name }

var _ ports.Surface = (*Surface)(nil)

// SurfaceBinding is a mock implementation of ports.SurfaceBinding.
type SurfaceBinding struct {
	Surface     ports.Surface
	DestroyFunc func() error
	Destroyed   bool
}

func (m *SurfaceBinding) Destroy() error {
	m.Destroyed = true
	if m.DestroyFunc != nil {
		return m.DestroyFunc()
	}
	return nil
}

var _ ports.SurfaceBinding = (*SurfaceBinding)(nil)

// SurfaceDraw records one DrawToSurface call.
type SurfaceDraw struct {
	Src          ports.Image
	Binding      ports.SurfaceBinding
	RenderTimeNs int64
}

// Pipeline is a mock implementation of ports.Pipeline.
type Pipeline struct {
	Spec              ports.PipelineSpec
	DrawToSurfaceFunc func(src ports.Image, binding ports.SurfaceBinding, renderTimeNs int64) error
	DrawToImageFunc   func(src, dst ports.Image) error

	// Recorded calls for verification
	SurfaceDraws []SurfaceDraw
	ImageDraws   int
	Released     bool
}

func (m *Pipeline) DrawToSurface(src ports.Image, binding ports.SurfaceBinding, renderTimeNs int64) error {
	m.SurfaceDraws = append(m.SurfaceDraws, SurfaceDraw{Src: src, Binding: binding, RenderTimeNs: renderTimeNs})
	if m.DrawToSurfaceFunc != nil {
		return m.DrawToSurfaceFunc(src, binding, renderTimeNs)
	}
	return nil
}

func (m *Pipeline) DrawToImage(src, dst ports.Image) error {
	m.ImageDraws++
	if m.DrawToImageFunc != nil {
		return m.DrawToImageFunc(src, dst)
	}
	return nil
}

func (m *Pipeline) Release() { m.Released = true }

var _ ports.Pipeline = (*Pipeline)(nil)

// RenderBackend is a mock implementation of ports.RenderBackend.
type RenderBackend struct {
	CreatePipelineFunc       func(spec ports.PipelineSpec) (ports.Pipeline, error)
	CreateSurfaceBindingFunc func(surface ports.Surface) (ports.SurfaceBinding, error)
	CreateImageFunc          func(width, height int) (ports.Image, error)
	CreateFenceFunc          func() (ports.Fence, error)

	// Recorded resources for verification
	Pipelines []*Pipeline
	Bindings  []*SurfaceBinding
	Images    []*Image
	Fences    []*Fence
}

func (m *RenderBackend) CreatePipeline(spec ports.PipelineSpec) (ports.Pipeline, error) {
	if m.CreatePipelineFunc != nil {
		return m.CreatePipelineFunc(spec)
	}
	p := &Pipeline{Spec: spec}
	m.Pipelines = append(m.Pipelines, p)
	return p, nil
}

func (m *RenderBackend) CreateSurfaceBinding(surface ports.Surface) (ports.SurfaceBinding, error) {
	if m.CreateSurfaceBindingFunc != nil {
		return m.CreateSurfaceBindingFunc(surface)
	}
	b := &SurfaceBinding{Surface: surface}
	m.Bindings = append(m.Bindings, b)
	return b, nil
}

func (m *RenderBackend) CreateImage(width, height int) (ports.Image, error) {
	if m.CreateImageFunc != nil {
		return m.CreateImageFunc(width, height)
	}
	img := &Image{W: width, H: height}
	m.Images = append(m.Images, img)
	return img, nil
}

func (m *RenderBackend) CreateFence() (ports.Fence, error) {
	if m.CreateFenceFunc != nil {
		return m.CreateFenceFunc()
	}
	f := &Fence{}
	m.Fences = append(m.Fences, f)
	return f, nil
}

var _ ports.RenderBackend = (*RenderBackend)(nil)

// ReadableImage is a mock image with CPU-accessible pixels.
type ReadableImage struct {
	Image
	Pixels image.Image
}

func (m *ReadableImage) ReadPixels() (image.Image, error) {
	if m.Pixels != nil {
		return m.Pixels, nil
	}
	return image.NewRGBA(image.Rect(0, 0, m.W, m.H)), nil
}

var _ ports.ImageReader = (*ReadableImage)(nil)

// DebugPreview is a mock implementation of ports.DebugPreviewProvider.
type DebugPreview struct {
	PreviewSurfaceFunc func(width, height int) ports.Surface
	Requests           int
}

func (m *DebugPreview) PreviewSurface(width, height int) ports.Surface {
	m.Requests++
	if m.PreviewSurfaceFunc != nil {
		return m.PreviewSurfaceFunc(width, height)
	}
	return nil
}

var _ ports.DebugPreviewProvider = (*DebugPreview)(nil)
