// Package filesink provides a texture consumer that saves delivered pooled
// frames as numbered PNG files.
package filesink

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"path/filepath"

	"github.com/user/vidsink/pkg/ports"
)

// Sink implements ports.TextureConsumer by writing every delivered frame to
// baseDir as frame-NNNNN.png. Delivered images must support pixel readback.
//
// The pooled image is released after the frame has been encoded, so the sink
// applies natural backpressure: the pool slot stays occupied for the duration
// of the write.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	log     ports.Logger

	index   int
	written int
}

// New creates a sink writing into baseDir.
func New(baseDir string, fs ports.FileSystem, log ports.Logger) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
		log:     log.WithComponent("filesink"),
	}
}

// OnImageRendered encodes the delivered image as PNG and writes it out. The
// image is released exactly once, even when the write fails.
func (s *Sink) OnImageRendered(img ports.Image, timestampUs int64, release func(timestampUs int64), fence ports.Fence) {
	defer release(timestampUs)
	index := s.index
	s.index++

	if err := fence.Wait(context.Background()); err != nil {
		s.log.Error("Failed to write frame: %s", err.Error())
		return
	}
	reader, ok := img.(ports.ImageReader)
	if !ok {
		s.log.Error("Failed to write frame: %s", fmt.Sprintf("image type %T does not support readback", img))
		return
	}
	pixels, err := reader.ReadPixels()
	if err != nil {
		s.log.Error("Failed to write frame: %s", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, pixels); err != nil {
		s.log.Error("Failed to write frame: %s", err.Error())
		return
	}
	path := filepath.Join(s.baseDir, fmt.Sprintf("frame-%05d.png", index))
	if err := s.fs.WriteFile(path, buf.Bytes()); err != nil {
		s.log.Error("Failed to write frame: %s", err.Error())
		return
	}
	s.written++
	s.log.Debug("Wrote frame %s", path)
}

// WrittenCount reports how many frames were written successfully.
func (s *Sink) WrittenCount() int {
	return s.written
}

// Ensure Sink implements ports.TextureConsumer
var _ ports.TextureConsumer = (*Sink)(nil)
