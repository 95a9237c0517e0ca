// Package framesource simulates the upstream decode/effects pipeline. It
// produces software test-pattern frames for the demo player and integration
// tests, standing in for a real decoder feeding the presentation core.
package framesource

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/user/vidsink/pkg/adapters/softbackend"
	"github.com/user/vidsink/pkg/ports"
)

// Source implements ports.FrameProcessor with synthetic frames. Processing is
// synchronous: a registered frame completes as soon as Emit is called for it.
// Pairs with the softbackend render backend, which consumes the images it
// produces.
type Source struct {
	width   int
	height  int
	deliver func(img ports.Image, bufferPresentationTimeUs int64)

	pending      int
	released     int
	readySignals int
}

// New creates a source producing width x height frames. deliver is invoked
// from Emit with each finished frame, in emission order.
func New(width, height int, deliver func(img ports.Image, bufferPresentationTimeUs int64)) *Source {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("framesource: invalid frame size %dx%d", width, height))
	}
	return &Source{width: width, height: height, deliver: deliver}
}

// PendingFrameCount reports registered frames that have not been emitted.
func (s *Source) PendingFrameCount() int { return s.pending }

// RegisterFrame reserves capacity for one frame. The simulated pipeline never
// refuses a registration.
func (s *Source) RegisterFrame() bool {
	s.pending++
	return true
}

// ReleaseFrame frees a frame image the sink is done with.
func (s *Source) ReleaseFrame(img ports.Image) {
	img.Release()
	s.released++
}

// SignalReadyForFrame records that downstream capacity was freed.
func (s *Source) SignalReadyForFrame() { s.readySignals++ }

// ReleasedFrames reports how many frame images came back from the sink.
func (s *Source) ReleasedFrames() int { return s.released }

// ReadySignals reports how many capacity signals arrived from the sink.
func (s *Source) ReadySignals() int { return s.readySignals }

// Emit completes processing of one registered frame: it renders the test
// pattern for the given timestamp and hands the image to the deliver callback.
// Calling Emit with no registered frame is a programming error.
func (s *Source) Emit(bufferPresentationTimeUs int64) {
	if s.pending == 0 {
		panic("framesource: emit without a registered frame")
	}
	s.pending--
	img := softbackend.NewImage(s.pattern(bufferPresentationTimeUs))
	s.deliver(img, bufferPresentationTimeUs)
}

// pattern draws a frame whose content depends on the timestamp: a hue-cycling
// background with a vertical bar sweeping left to right once per second.
func (s *Source) pattern(timestampUs int64) image.Image {
	dc := gg.NewContext(s.width, s.height)

	seconds := float64(timestampUs) / 1e6
	hue := math.Mod(seconds*40, 360)
	r, g, b := hsvToRGB(hue, 0.3, 0.25)
	dc.SetRGB(r, g, b)
	dc.Clear()

	barWidth := float64(s.width) / 16
	barX := math.Mod(seconds, 1) * float64(s.width)
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(barX-barWidth/2, 0, barWidth, float64(s.height))
	dc.Fill()

	// Corner marker so orientation changes are visible in output frames.
	dc.SetRGB(1, 0, 0)
	dc.DrawRectangle(0, 0, float64(s.width)/8, float64(s.height)/8)
	dc.Fill()

	return dc.Image()
}

func hsvToRGB(h, sat, v float64) (float64, float64, float64) {
	c := v * sat
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}

var _ ports.FrameProcessor = (*Source)(nil)
