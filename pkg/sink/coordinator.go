package sink

import (
	"fmt"

	"github.com/user/vidsink/pkg/ports"
	"github.com/user/vidsink/pkg/timedqueue"
)

// Coordinator owns the queue of processed, not-yet-released frames. It
// reconciles stream-offset and video-size changes against the queue by
// timestamp, detects the last frame of a segment, and for each ready frame
// consults the release oracle and dispatches the resulting action.
//
// All methods run on the render thread, serialized; the Coordinator has no
// internal locking.
type Coordinator struct {
	log        ports.Logger
	oracle     ports.ReleaseOracle
	processor  ports.FrameProcessor
	dispatcher *Dispatcher
	listener   ports.SinkListener

	maxPendingFrames int

	frameQueue       timedqueue.Int64Queue
	streamOffsets    timedqueue.TimedValues[int64]
	videoSizeChanges timedqueue.TimedValues[ports.Size]

	inputStreamOffsetUs  int64
	pendingOffsetChange  bool
	outputStreamOffsetUs int64

	registeredLastFrame  bool
	lastFrameTimestampUs int64
	processedLastFrame   bool
	releasedLastFrame    bool

	processedFrameSize ports.Size
	pendingSizeChange  bool
	reportedVideoSize  ports.Size

	firstFrameRendered bool
}

// NewCoordinator wires a Coordinator to its collaborators. maxPendingFrames
// bounds how many registered frames may be in flight in the processor before
// RegisterFrame applies backpressure.
func NewCoordinator(oracle ports.ReleaseOracle, processor ports.FrameProcessor, dispatcher *Dispatcher, listener ports.SinkListener, log ports.Logger, maxPendingFrames int) *Coordinator {
	if maxPendingFrames <= 0 {
		panic(fmt.Sprintf("sink: max pending frames must be positive, got %d", maxPendingFrames))
	}
	c := &Coordinator{
		log:                  log.WithComponent("coordinator"),
		oracle:               oracle,
		processor:            processor,
		dispatcher:           dispatcher,
		listener:             listener,
		maxPendingFrames:     maxPendingFrames,
		lastFrameTimestampUs: TimeUnset,
	}
	dispatcher.setEvents(c)
	return c
}

// RegisterFrame admits one upstream frame with the given frame-relative
// presentation timestamp, returning its buffer timestamp. It returns TimeUnset
// when the processor already has maxPendingFrames in flight or refuses the
// frame; the caller retries later.
func (c *Coordinator) RegisterFrame(framePresentationTimeUs int64, isLastFrame bool) int64 {
	if c.processor.PendingFrameCount() >= c.maxPendingFrames {
		return TimeUnset
	}
	if !c.processor.RegisterFrame() {
		return TimeUnset
	}

	bufferPresentationTimeUs := framePresentationTimeUs + c.inputStreamOffsetUs
	if c.pendingOffsetChange {
		c.streamOffsets.Add(bufferPresentationTimeUs, c.inputStreamOffsetUs)
		c.pendingOffsetChange = false
	}
	if isLastFrame {
		c.registeredLastFrame = true
		c.lastFrameTimestampUs = bufferPresentationTimeUs
	}
	return bufferPresentationTimeUs
}

// OnFrameProcessed records that the frame at bufferPresentationTimeUs has
// completed GPU processing and is ready for a release decision. Invoked by
// the upstream processor, paired with Dispatcher.EnqueueFrame.
func (c *Coordinator) OnFrameProcessed(bufferPresentationTimeUs int64) {
	if c.pendingSizeChange {
		c.videoSizeChanges.Add(bufferPresentationTimeUs, c.processedFrameSize)
		c.pendingSizeChange = false
	}
	if c.registeredLastFrame && c.lastFrameTimestampUs == TimeUnset {
		panic("sink: last frame registered without a timestamp")
	}
	c.frameQueue.Add(bufferPresentationTimeUs)
	if c.registeredLastFrame && bufferPresentationTimeUs >= c.lastFrameTimestampUs {
		c.processedLastFrame = true
	}
}

// Tick drains the frame queue as far as the release oracle allows. positionUs
// is the current playback position and elapsedRealtimeUs the wall clock, both
// in microseconds. Frames are never released out of order: an undecided frame
// at the head of the queue stops the drain, as does a saturated texture pool
// in pooled output mode; the drain resumes on a later tick.
func (c *Coordinator) Tick(positionUs, elapsedRealtimeUs int64) {
	for c.frameQueue.Len() > 0 {
		// A saturated texture pool stalls the whole drain, drops included:
		// asking the oracle consumes pacing state, so no decision is made
		// until the dispatcher can act on it.
		if !c.dispatcher.CanRender() {
			return
		}
		bufferPresentationTimeUs := c.frameQueue.Peek()
		if c.maybeUpdateOutputStreamOffset(bufferPresentationTimeUs) {
			c.oracle.NotifyStreamDiscontinuity()
		}
		framePresentationTimeUs := bufferPresentationTimeUs - c.outputStreamOffsetUs
		isLastFrame := c.processedLastFrame && c.frameQueue.Len() == 1

		decision := c.oracle.FrameReleaseAction(
			bufferPresentationTimeUs, positionUs, elapsedRealtimeUs,
			c.outputStreamOffsetUs, isLastFrame)
		switch decision.Action {
		case ports.ActionTryAgainLater:
			return
		case ports.ActionSkip, ports.ActionSkipToKeyframe, ports.ActionDrop, ports.ActionDropToKeyframe:
			c.log.Debug("dropping frame at %dus (%s)", framePresentationTimeUs, decision.Action)
			c.dropFrame(isLastFrame)
		case ports.ActionReleaseImmediately:
			c.renderFrame(bufferPresentationTimeUs, RenderImmediately, isLastFrame)
		case ports.ActionReleaseScheduled:
			c.renderFrame(bufferPresentationTimeUs, decision.ReleaseTimeNs, isLastFrame)
		default:
			panic(fmt.Sprintf("sink: invalid release action %s", decision.Action))
		}
	}
}

// Flush discards all queued frames and stream-offset entries, resets the
// last-frame flags and instructs the oracle to reset its pacing state.
//
// A render already dispatched to the backend is not retracted: it may land on
// the output target after the flush, and callers tolerate such stray renders.
func (c *Coordinator) Flush() {
	c.dispatcher.Flush()
	c.frameQueue.Clear()
	c.streamOffsets.Clear()
	c.oracle.Reset()
	c.firstFrameRendered = false
	if c.registeredLastFrame {
		c.registeredLastFrame = false
		c.lastFrameTimestampUs = TimeUnset
		c.processedLastFrame = false
		c.releasedLastFrame = false
	}
}

// SetStreamOffset sets the offset added to frame-relative timestamps of
// subsequently registered frames. A change is recorded against the next
// registered frame's buffer timestamp.
func (c *Coordinator) SetStreamOffset(streamOffsetUs int64) {
	c.pendingOffsetChange = c.inputStreamOffsetUs != streamOffsetUs
	c.inputStreamOffsetUs = streamOffsetUs
}

// RegisterInputStream marks the start of a new input segment, clearing the
// last-frame tracking of the previous one.
func (c *Coordinator) RegisterInputStream() {
	if c.registeredLastFrame {
		c.registeredLastFrame = false
		c.lastFrameTimestampUs = TimeUnset
		c.processedLastFrame = false
		c.releasedLastFrame = false
	}
}

// IsEnded reports whether the last frame of the current segment has been
// released or dropped.
func (c *Coordinator) IsEnded() bool {
	return c.releasedLastFrame
}

// IsReady reports whether playback can be reported as ready. Oracles that
// track pacing readiness are consulted; otherwise readiness means the first
// frame has been rendered.
func (c *Coordinator) IsReady(rendererReady bool) bool {
	if r, ok := c.oracle.(ports.ReadinessReporter); ok {
		return r.IsReady(rendererReady)
	}
	return c.firstFrameRendered
}

// QueuedFrames reports the number of processed frames awaiting release.
func (c *Coordinator) QueuedFrames() int {
	return c.frameQueue.Len()
}

func (c *Coordinator) dropFrame(isLastFrame bool) {
	c.listener.OnFrameDropped()
	c.releaseProcessedFrame(DropFrame, isLastFrame)
}

func (c *Coordinator) renderFrame(bufferPresentationTimeUs, renderTimeNs int64, isLastFrame bool) {
	if !c.firstFrameRendered {
		c.firstFrameRendered = true
		c.listener.OnFirstFrameRendered()
	}
	c.releaseProcessedFrame(renderTimeNs, isLastFrame)
	c.maybeNotifyVideoSizeChanged(bufferPresentationTimeUs)
}

func (c *Coordinator) releaseProcessedFrame(renderTimeNs int64, isLastFrame bool) {
	c.dispatcher.Dispatch(renderTimeNs)
	c.frameQueue.Remove()
	if isLastFrame && !c.releasedLastFrame {
		c.releasedLastFrame = true
		c.listener.OnEndOfStream()
	}
}

func (c *Coordinator) maybeUpdateOutputStreamOffset(bufferPresentationTimeUs int64) bool {
	offsetUs, ok := c.streamOffsets.PollFloor(bufferPresentationTimeUs)
	if ok && offsetUs != c.outputStreamOffsetUs {
		c.outputStreamOffsetUs = offsetUs
		return true
	}
	return false
}

func (c *Coordinator) maybeNotifyVideoSizeChanged(bufferPresentationTimeUs int64) {
	size, ok := c.videoSizeChanges.PollFloor(bufferPresentationTimeUs)
	if !ok {
		return
	}
	if size != (ports.Size{}) && size != c.reportedVideoSize {
		c.reportedVideoSize = size
		c.listener.OnVideoSizeChanged(size)
	}
}

// onOutputSizeChanged implements dispatchEvents. The size change is deferred
// until the first frame at or after its activation timestamp is released.
func (c *Coordinator) onOutputSizeChanged(size ports.Size) {
	if size != c.processedFrameSize {
		c.processedFrameSize = size
		c.pendingSizeChange = true
	}
}

// onDispatchError implements dispatchEvents.
func (c *Coordinator) onDispatchError(err error, timestampUs int64) {
	c.log.Error("render dispatch failed at %dus: %v", timestampUs, err)
	c.listener.OnError(err, timestampUs)
}
