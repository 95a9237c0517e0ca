package ports

import (
	"context"
	"image"
)

// Size represents pixel dimensions of a frame or output target.
type Size struct {
	Width  int
	Height int
}

// Surface is a handle to a platform output destination (a window, a display
// plane, an off-screen framebuffer). Implementations must be comparable;
// the dispatcher relies on == to detect identity changes between targets.
type Surface interface {
	// Label returns a short name identifying the surface in logs.
	Label() string
}

// SurfaceBinding is a backend resource tying the render context to a Surface.
// Bindings are created lazily on first draw and destroyed when the target
// changes or the dispatcher is released.
type SurfaceBinding interface {
	Destroy() error
}

// Image is an opaque handle to a backend-owned picture. Input frames arrive
// wrapped in Images; pooled output Images are allocated through the backend
// and recycled by the dispatcher's texture pool.
type Image interface {
	Width() int
	Height() int

	// Release frees the backend resources behind the image. The owner calls
	// it exactly once; using the image afterwards is a programming error.
	Release()
}

// ImageReader is implemented by backend images whose pixels can be read back
// to the CPU. Downstream consumers that persist or inspect delivered images
// type-assert to it.
type ImageReader interface {
	ReadPixels() (image.Image, error)
}

// Fence tracks completion of backend work submitted before its creation.
// A consumer waits on the fence before reading a delivered image.
type Fence interface {
	Wait(ctx context.Context) error
	Release()
}

// Transform is a geometric operation applied to frames during a draw. The
// backend interprets the concrete type when building a pipeline; OutputSize
// lets the dispatcher compute the final frame size without backend work.
type Transform interface {
	OutputSize(width, height int) (int, int)
}

// PipelineSpec captures everything a transform pipeline is built from.
// A pipeline stays valid only while all of these are unchanged.
type PipelineSpec struct {
	InputWidth   int
	InputHeight  int
	OutputWidth  int
	OutputHeight int
	Transforms   []Transform

	// OrientationDegrees rotates the output, applied after Transforms.
	// Must be 0, 90, 180 or 270.
	OrientationDegrees int
}

// Pipeline executes draw calls configured by a PipelineSpec.
type Pipeline interface {
	// DrawToSurface renders src into the bound surface, presenting it at
	// renderTimeNs (nanoseconds on the backend presentation clock).
	DrawToSurface(src Image, binding SurfaceBinding, renderTimeNs int64) error

	// DrawToImage renders src into dst, which must have the pipeline's
	// output dimensions.
	DrawToImage(src Image, dst Image) error

	// Release frees the pipeline's backend resources.
	Release()
}

// RenderBackend abstracts the GPU-side primitives the dispatcher needs:
// pipeline construction, surface bindings, image allocation and fences.
type RenderBackend interface {
	CreatePipeline(spec PipelineSpec) (Pipeline, error)
	CreateSurfaceBinding(surface Surface) (SurfaceBinding, error)
	CreateImage(width, height int) (Image, error)
	CreateFence() (Fence, error)
}

// DebugPreviewProvider supplies an optional secondary surface that receives a
// best-effort copy of every rendered frame. PreviewSurface returns nil when
// no preview is wanted for the given output size.
type DebugPreviewProvider interface {
	PreviewSurface(width, height int) Surface
}
