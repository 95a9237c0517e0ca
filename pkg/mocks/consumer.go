package mocks

import "github.com/user/vidsink/pkg/ports"

// DeliveredImage records one pooled-image delivery to the mock consumer.
type DeliveredImage struct {
	Image       ports.Image
	TimestampUs int64
	Release     func(timestampUs int64)
	Fence       ports.Fence
}

// TextureConsumer is a mock implementation of ports.TextureConsumer.
type TextureConsumer struct {
	OnImageRenderedFunc func(img ports.Image, timestampUs int64, release func(timestampUs int64), fence ports.Fence)

	// Recorded deliveries for verification
	Delivered []DeliveredImage
}

func (m *TextureConsumer) OnImageRendered(img ports.Image, timestampUs int64, release func(timestampUs int64), fence ports.Fence) {
	m.Delivered = append(m.Delivered, DeliveredImage{Image: img, TimestampUs: timestampUs, Release: release, Fence: fence})
	if m.OnImageRenderedFunc != nil {
		m.OnImageRenderedFunc(img, timestampUs, release, fence)
	}
}

var _ ports.TextureConsumer = (*TextureConsumer)(nil)
