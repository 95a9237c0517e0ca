package softbackend

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/vidsink/pkg/ports"
)

// pipeline applies the spec's transforms and orientation in software, then
// letterboxes the result into the output size.
type pipeline struct {
	spec     ports.PipelineSpec
	released bool
}

// DrawToSurface renders src into the bound framebuffer and presents it at
// renderTimeNs.
func (p *pipeline) DrawToSurface(src ports.Image, binding ports.SurfaceBinding, renderTimeNs int64) error {
	fb, ok := binding.(*framebufferBinding)
	if !ok {
		return fmt.Errorf("softbackend: unsupported binding type %T", binding)
	}
	out, err := p.render(src)
	if err != nil {
		return err
	}
	fb.fb.present(out, renderTimeNs)
	return nil
}

// DrawToImage renders src into a pooled backend image.
func (p *pipeline) DrawToImage(src ports.Image, dst ports.Image) error {
	target, ok := dst.(*Image)
	if !ok {
		return fmt.Errorf("softbackend: unsupported destination type %T", dst)
	}
	if target.released {
		return ErrImageReleased
	}
	if target.Width() != p.spec.OutputWidth || target.Height() != p.spec.OutputHeight {
		return fmt.Errorf("softbackend: destination is %dx%d, pipeline output is %dx%d",
			target.Width(), target.Height(), p.spec.OutputWidth, p.spec.OutputHeight)
	}
	out, err := p.render(src)
	if err != nil {
		return err
	}
	copy(target.pix.Pix, out.Pix)
	return nil
}

// Release marks the pipeline unusable.
func (p *pipeline) Release() {
	p.released = true
}

var _ ports.Pipeline = (*pipeline)(nil)

// render runs the full software pass: transforms, orientation, letterbox.
func (p *pipeline) render(src ports.Image) (*image.RGBA, error) {
	if p.released {
		return nil, ErrPipelineReleased
	}
	in, ok := src.(*Image)
	if !ok {
		return nil, fmt.Errorf("softbackend: unsupported source type %T", src)
	}
	if in.released {
		return nil, ErrImageReleased
	}

	var cur image.Image = in.pix
	for _, tr := range p.spec.Transforms {
		switch t := tr.(type) {
		case Scale:
			cur = scale(cur, t.Width, t.Height)
		case Rotate:
			cur = rotate(cur, t.Degrees)
		default:
			return nil, fmt.Errorf("softbackend: unsupported transform type %T", tr)
		}
	}
	cur = rotate(cur, p.spec.OrientationDegrees)
	return letterbox(cur, p.spec.OutputWidth, p.spec.OutputHeight), nil
}

func scale(src image.Image, width, height int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

func rotate(src image.Image, degrees int) image.Image {
	if degrees == 0 {
		return src
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	ow, oh := w, h
	if degrees == 90 || degrees == 270 {
		ow, oh = h, w
	}
	dc := gg.NewContext(ow, oh)
	dc.Translate(float64(ow)/2, float64(oh)/2)
	dc.Rotate(gg.Radians(float64(degrees)))
	dc.Translate(-float64(w)/2, -float64(h)/2)
	dc.DrawImage(src, 0, 0)
	return dc.Image()
}

// letterbox scales src to fit width x height preserving aspect ratio, centered
// on a black background.
func letterbox(src image.Image, width, height int) *image.RGBA {
	bounds := src.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()
	if sw == width && sh == height {
		if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
			return rgba
		}
	}

	fit := float64(width) / float64(sw)
	if other := float64(height) / float64(sh); other < fit {
		fit = other
	}
	dw := int(float64(sw) * fit)
	dh := int(float64(sh) * fit)
	fitted := scale(src, dw, dh)

	dc := gg.NewContext(width, height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.DrawImage(fitted, (width-dw)/2, (height-dh)/2)

	out, ok := dc.Image().(*image.RGBA)
	if !ok {
		out = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	}
	return out
}
