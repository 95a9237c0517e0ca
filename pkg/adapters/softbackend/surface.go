package softbackend

import (
	"image"
	"sync"

	"github.com/user/vidsink/pkg/ports"
)

// Framebuffer is an off-screen ports.Surface. Each presented frame replaces
// its contents; Snapshot reads the last presented frame from any goroutine.
type Framebuffer struct {
	name string

	mu          sync.Mutex
	img         *image.RGBA
	presentedNs int64
	presents    int
}

// NewFramebuffer creates an empty framebuffer surface.
func NewFramebuffer(name string) *Framebuffer {
	return &Framebuffer{name: name}
}

// Label returns the framebuffer's name.
func (f *Framebuffer) Label() string { return f.name }

// Snapshot returns the last presented frame, or nil if nothing has been
// presented yet.
func (f *Framebuffer) Snapshot() image.Image {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img
}

// LastPresentTimeNs returns the presentation time of the last frame.
func (f *Framebuffer) LastPresentTimeNs() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presentedNs
}

// PresentCount returns how many frames have been presented.
func (f *Framebuffer) PresentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

func (f *Framebuffer) present(img *image.RGBA, renderTimeNs int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.img = img
	f.presentedNs = renderTimeNs
	f.presents++
}

var _ ports.Surface = (*Framebuffer)(nil)

type framebufferBinding struct {
	fb *Framebuffer
}

func (b *framebufferBinding) Destroy() error { return nil }

var _ ports.SurfaceBinding = (*framebufferBinding)(nil)

// Preview is a ports.DebugPreviewProvider backed by a single shared
// framebuffer. Useful for inspecting what the dispatcher rendered without
// attaching a real output.
type Preview struct {
	fb *Framebuffer
}

// NewPreview creates a preview provider.
func NewPreview() *Preview {
	return &Preview{fb: NewFramebuffer("preview")}
}

// PreviewSurface returns the shared preview framebuffer for any size.
func (p *Preview) PreviewSurface(width, height int) ports.Surface {
	return p.fb
}

// Framebuffer exposes the preview's backing surface for inspection.
func (p *Preview) Framebuffer() *Framebuffer {
	return p.fb
}

var _ ports.DebugPreviewProvider = (*Preview)(nil)
