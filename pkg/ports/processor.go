package ports

// FrameProcessor is the upstream decode/effects pipeline that produces
// GPU-processed frames. The coordinator admits frames into it and the
// dispatcher hands frame images back once they are rendered or dropped.
type FrameProcessor interface {
	// PendingFrameCount reports how many registered frames have not yet
	// completed processing. Used for admission control.
	PendingFrameCount() int

	// RegisterFrame reserves capacity for one input frame. It returns false
	// when the processor cannot accept another frame right now; the caller
	// retries later.
	RegisterFrame() bool

	// ReleaseFrame returns a processed frame's image to the processor.
	// Called exactly once per frame, whether it was rendered or dropped.
	ReleaseFrame(img Image)

	// SignalReadyForFrame tells the processor that downstream capacity has
	// been freed (a pooled output slot was recycled).
	SignalReadyForFrame()
}
