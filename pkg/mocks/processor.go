package mocks

import "github.com/user/vidsink/pkg/ports"

// FrameProcessor is a mock implementation of ports.FrameProcessor.
type FrameProcessor struct {
	PendingFrameCountFunc func() int
	RegisterFrameFunc     func() bool

	// Recorded calls for verification
	Registered     int
	ReleasedImages []ports.Image
	ReadySignals   int
}

func (m *FrameProcessor) PendingFrameCount() int {
	if m.PendingFrameCountFunc != nil {
		return m.PendingFrameCountFunc()
	}
	return 0
}

func (m *FrameProcessor) RegisterFrame() bool {
	m.Registered++
	if m.RegisterFrameFunc != nil {
		return m.RegisterFrameFunc()
	}
	return true
}

func (m *FrameProcessor) ReleaseFrame(img ports.Image) {
	m.ReleasedImages = append(m.ReleasedImages, img)
}

func (m *FrameProcessor) SignalReadyForFrame() {
	m.ReadySignals++
}

var _ ports.FrameProcessor = (*FrameProcessor)(nil)
