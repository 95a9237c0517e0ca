// Package nullsink provides a texture consumer that discards all frames.
// Useful for pacing benchmarks and runs where only the playback statistics
// matter.
package nullsink

import (
	"github.com/user/vidsink/pkg/ports"
)

// Sink is a no-op implementation of ports.TextureConsumer.
type Sink struct {
	delivered int
}

// New creates a new null sink.
func New() *Sink {
	return &Sink{}
}

// OnImageRendered discards the frame, releasing its pool slot immediately.
// The image is never read, so the fence is not waited on.
func (s *Sink) OnImageRendered(img ports.Image, timestampUs int64, release func(timestampUs int64), fence ports.Fence) {
	s.delivered++
	release(timestampUs)
}

// DeliveredCount reports how many frames were discarded.
func (s *Sink) DeliveredCount() int {
	return s.delivered
}

// Ensure Sink implements ports.TextureConsumer
var _ ports.TextureConsumer = (*Sink)(nil)
