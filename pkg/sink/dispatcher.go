package sink

import (
	"fmt"
	"sync"
	"time"

	"github.com/user/vidsink/pkg/ports"
	"github.com/user/vidsink/pkg/timedqueue"
)

// dispatchEvents is the feedback surface through which output-side events
// flow back from the Dispatcher. The Coordinator implements it so size
// changes and failures are folded into its timestamp bookkeeping.
type dispatchEvents interface {
	onOutputSizeChanged(size ports.Size)
	onDispatchError(err error, timestampUs int64)
}

type noopEvents struct{}

func (noopEvents) onOutputSizeChanged(ports.Size) {}
func (noopEvents) onDispatchError(error, int64)   {}

// outputTarget is the destination rendered frames are committed to: a display
// surface with an explicit resolution, a pooled-texture consumer, or nothing.
type outputTarget struct {
	surface  ports.Surface
	size     ports.Size
	consumer ports.TextureConsumer
}

// Dispatcher receives render instructions from the Coordinator and commits
// frames to the active output target. GPU-side resources (transform pipeline,
// surface bindings, texture pool) are configured lazily per dispatch and
// rebuilt only when stale.
//
// All methods run on the render thread, except the output-target setters
// (SetOutputSurface, SetTextureConsumer, ClearOutputTarget), which may be
// called from a control thread; the render thread picks pending target
// changes up at the start of each dispatch.
type Dispatcher struct {
	log       ports.Logger
	backend   ports.RenderBackend
	processor ports.FrameProcessor
	preview   ports.DebugPreviewProvider // nil when no debug preview is wanted
	events    dispatchEvents

	// Processed frames awaiting a release decision, in presentation order.
	queue []Frame

	transforms         []ports.Transform
	orientationDegrees int
	pipelineStale      bool

	inputWidth   int
	inputHeight  int
	sizeComputed bool
	computedSize ports.Size // output size before target fitting
	outputSize   ports.Size // size the active pipeline renders at

	pipeline ports.Pipeline

	// Active target as latched onto the render thread.
	surface     ports.Surface
	surfaceSize ports.Size
	binding     ports.SurfaceBinding
	consumer    ports.TextureConsumer

	pool           *texturePool
	poolTimestamps timedqueue.Int64Queue
	poolFences     []ports.Fence

	previewSurface ports.Surface
	previewBinding ports.SurfaceBinding

	released bool

	// Guarded by mu; everything else is owned by the render thread.
	mu            sync.Mutex
	pendingTarget outputTarget
	targetChanged bool
}

// NewDispatcher creates a Dispatcher rendering through backend. poolCapacity
// bounds the pooled-texture output path; preview may be nil.
func NewDispatcher(backend ports.RenderBackend, processor ports.FrameProcessor, poolCapacity int, preview ports.DebugPreviewProvider, log ports.Logger) *Dispatcher {
	return &Dispatcher{
		log:       log.WithComponent("dispatcher"),
		backend:   backend,
		processor: processor,
		preview:   preview,
		events:    noopEvents{},
		pool:      newTexturePool(backend, poolCapacity),
	}
}

func (d *Dispatcher) setEvents(events dispatchEvents) {
	d.events = events
}

// EnqueueFrame adds a processed frame to the tail of the release queue.
// Invoked by the upstream processor once GPU processing of the frame
// completes, paired with Coordinator.OnFrameProcessed.
func (d *Dispatcher) EnqueueFrame(frame Frame) {
	if d.released {
		panic("sink: enqueue on released dispatcher")
	}
	d.queue = append(d.queue, frame)
}

// QueuedFrames reports how many processed frames await a release decision.
func (d *Dispatcher) QueuedFrames() int {
	return len(d.queue)
}

// FreePoolCapacity reports how many pooled output images can still be
// rendered into before the downstream consumer must recycle one.
func (d *Dispatcher) FreePoolCapacity() int {
	return d.pool.freeCount()
}

// CanRender reports whether a render dispatch can make progress right now.
// In pooled mode every render needs a free pool slot, so the drain must stall
// until the downstream consumer recycles one. Runs on the render thread and
// latches a pending target change so the answer reflects the target the next
// dispatch would render to.
func (d *Dispatcher) CanRender() bool {
	d.latchTargetChange()
	if d.consumer != nil {
		return d.pool.freeCount() > 0
	}
	return true
}

// Dispatch removes the oldest queued frame and acts on it: DropFrame releases
// it back to the processor with no GPU work, RenderImmediately presents it at
// the current wall clock, and any other value is the scheduled presentation
// time in nanoseconds.
//
// Dispatching with no frame queued is a contract violation.
func (d *Dispatcher) Dispatch(renderTimeNs int64) {
	if d.released {
		panic("sink: dispatch on released dispatcher")
	}
	if len(d.queue) == 0 {
		panic("sink: dispatch with no frame queued")
	}
	frame := d.queue[0]
	d.queue = d.queue[1:]

	if renderTimeNs == DropFrame {
		d.processor.ReleaseFrame(frame.Image)
		return
	}
	d.renderFrame(frame, renderTimeNs)
}

func (d *Dispatcher) renderFrame(frame Frame, renderTimeNs int64) {
	// The input frame goes back to the processor exactly once, whichever
	// path the render takes.
	defer d.processor.ReleaseFrame(frame.Image)

	if !d.ensureConfigured(frame.Image.Width(), frame.Image.Height()) {
		return // no output target: nowhere to put the frame
	}

	var err error
	switch {
	case d.surface != nil:
		err = d.renderToSurface(frame, renderTimeNs)
	case d.consumer != nil:
		err = d.renderToTexture(frame)
	}
	if err != nil {
		d.events.onDispatchError(err, frame.TimestampUs)
	}

	d.renderToPreview(frame)
}

// ensureConfigured latches pending target changes, recomputes the output size
// when the input size changed, and rebuilds the transform pipeline if stale.
// It returns false when there is no output target or configuration failed.
func (d *Dispatcher) ensureConfigured(inputWidth, inputHeight int) bool {
	d.latchTargetChange()

	if !d.sizeComputed || inputWidth != d.inputWidth || inputHeight != d.inputHeight {
		d.inputWidth = inputWidth
		d.inputHeight = inputHeight
		d.sizeComputed = true
		d.pipelineStale = true
	}
	size := computeOutputSize(d.inputWidth, d.inputHeight, d.transforms, d.orientationDegrees)
	if size != d.computedSize {
		d.computedSize = size
		d.events.onOutputSizeChanged(size)
	}

	if d.surface == nil && d.consumer == nil {
		// Drop the pipeline so a later target starts from a clean build.
		if d.pipeline != nil {
			d.pipeline.Release()
			d.pipeline = nil
		}
		return false
	}

	outputSize := d.computedSize
	if d.surface != nil {
		outputSize = d.surfaceSize
	}
	if d.consumer != nil {
		d.pool.configure(outputSize.Width, outputSize.Height)
	}

	if d.pipeline != nil && (d.pipelineStale || outputSize != d.outputSize) {
		d.pipeline.Release()
		d.pipeline = nil
	}
	if d.pipeline == nil {
		pipeline, err := d.backend.CreatePipeline(ports.PipelineSpec{
			InputWidth:         d.inputWidth,
			InputHeight:        d.inputHeight,
			OutputWidth:        outputSize.Width,
			OutputHeight:       outputSize.Height,
			Transforms:         d.transforms,
			OrientationDegrees: d.orientationDegrees,
		})
		if err != nil {
			d.events.onDispatchError(fmt.Errorf("configure pipeline: %w", err), TimeUnset)
			return false
		}
		d.pipeline = pipeline
		d.outputSize = outputSize
		d.pipelineStale = false
	}
	return true
}

// latchTargetChange picks up an output-target change requested from the
// control thread. The old surface binding is torn down before the new target
// takes effect; a change of dimensions or target type only marks the pipeline
// stale.
func (d *Dispatcher) latchTargetChange() {
	d.mu.Lock()
	if !d.targetChanged {
		d.mu.Unlock()
		return
	}
	target := d.pendingTarget
	d.targetChanged = false
	d.mu.Unlock()

	if d.binding != nil && target.surface != d.surface {
		if err := d.binding.Destroy(); err != nil {
			d.events.onDispatchError(fmt.Errorf("destroy surface binding: %w", err), TimeUnset)
		}
		d.binding = nil
	}
	if d.consumer != nil && target.consumer != d.consumer {
		d.releasePoolResources()
	}
	if target.surface != d.surface || target.size != d.surfaceSize || target.consumer != d.consumer {
		d.pipelineStale = true
	}

	d.surface = target.surface
	d.surfaceSize = target.size
	d.consumer = target.consumer
}

func (d *Dispatcher) renderToSurface(frame Frame, renderTimeNs int64) error {
	if d.binding == nil {
		binding, err := d.backend.CreateSurfaceBinding(d.surface)
		if err != nil {
			return fmt.Errorf("bind surface %q: %w", d.surface.Label(), err)
		}
		d.binding = binding
	}
	if renderTimeNs == RenderImmediately {
		renderTimeNs = time.Now().UnixNano()
	}
	if err := d.pipeline.DrawToSurface(frame.Image, d.binding, renderTimeNs); err != nil {
		return fmt.Errorf("draw to surface %q: %w", d.surface.Label(), err)
	}
	return nil
}

func (d *Dispatcher) renderToTexture(frame Frame) error {
	// The caller only dispatches once pool capacity is known available.
	if d.pool.freeCount() == 0 {
		panic("sink: pooled render without free pool capacity")
	}
	img, err := d.pool.acquire()
	if err != nil {
		return err
	}
	if err := d.pipeline.DrawToImage(frame.Image, img); err != nil {
		d.pool.releaseNewest()
		return fmt.Errorf("draw to pooled image: %w", err)
	}
	fence, err := d.backend.CreateFence()
	if err != nil {
		d.pool.releaseNewest()
		return fmt.Errorf("create fence: %w", err)
	}
	d.poolTimestamps.Add(frame.TimestampUs)
	d.poolFences = append(d.poolFences, fence)
	d.consumer.OnImageRendered(img, frame.TimestampUs, d.ReleasePooledImage, fence)
	return nil
}

// renderToPreview performs a best-effort render to the debug preview surface
// using the same pipeline. Failures are logged and never propagated.
func (d *Dispatcher) renderToPreview(frame Frame) {
	if d.preview == nil || d.pipeline == nil {
		return
	}
	surface := d.preview.PreviewSurface(d.outputSize.Width, d.outputSize.Height)
	if surface == nil {
		return
	}
	if surface != d.previewSurface {
		if d.previewBinding != nil {
			if err := d.previewBinding.Destroy(); err != nil {
				d.log.Debug("destroy debug preview binding: %v", err)
			}
			d.previewBinding = nil
		}
		d.previewSurface = surface
	}
	if d.previewBinding == nil {
		binding, err := d.backend.CreateSurfaceBinding(surface)
		if err != nil {
			d.log.Debug("bind debug preview surface: %v", err)
			return
		}
		d.previewBinding = binding
	}
	if err := d.pipeline.DrawToSurface(frame.Image, d.previewBinding, time.Now().UnixNano()); err != nil {
		d.log.Debug("render to debug preview: %v", err)
	}
}

// ReleasePooledImage recycles pooled output slots once the downstream
// consumer is done with the image delivered at timestampUs. Slots are freed
// strictly in timestamp order: every slot with timestamp <= timestampUs is
// recycled, oldest first, and a slot with a strictly greater timestamp is
// never touched. The upstream processor is signalled once per freed slot.
// A release arriving after the target switched away from the consumer is a
// no-op.
//
// Must run on the render thread; consumers on other threads marshal the call
// over.
func (d *Dispatcher) ReleasePooledImage(timestampUs int64) {
	if d.consumer == nil {
		// A consumer may legitimately release an image after the target
		// switched away from it; the pool was torn down with the switch, so
		// there is nothing left to free.
		if d.pool.inUseCount() == 0 {
			return
		}
		panic("sink: pooled image release without a pooled output target")
	}
	for d.pool.inUseCount() > 0 && d.poolTimestamps.Peek() <= timestampUs {
		d.pool.recycleOldest()
		d.poolTimestamps.Remove()
		fence := d.poolFences[0]
		d.poolFences = d.poolFences[1:]
		fence.Release()
		d.processor.SignalReadyForFrame()
	}
}

// SetTransforms replaces the transform chain applied to subsequent frames.
// Runs on the render thread.
func (d *Dispatcher) SetTransforms(transforms []ports.Transform) {
	d.transforms = append([]ports.Transform(nil), transforms...)
	d.pipelineStale = true
}

// SetOrientation rotates the output by degrees (0, 90, 180 or 270). A
// rotation-only change marks the pipeline stale without tearing down the
// surface binding. Runs on the render thread.
func (d *Dispatcher) SetOrientation(degrees int) {
	if degrees%90 != 0 || degrees < 0 || degrees >= 360 {
		panic(fmt.Sprintf("sink: invalid orientation %d", degrees))
	}
	if degrees == d.orientationDegrees {
		return
	}
	d.orientationDegrees = degrees
	d.pipelineStale = true
}

// SetOutputSurface directs subsequent renders at surface with the given
// output resolution. A (surface, size) pair equal to the current target is a
// no-op. Safe to call from the control thread.
func (d *Dispatcher) SetOutputSurface(surface ports.Surface, size ports.Size) {
	d.setTarget(outputTarget{surface: surface, size: size})
}

// SetTextureConsumer directs subsequent renders into pooled images delivered
// to consumer. Safe to call from the control thread.
func (d *Dispatcher) SetTextureConsumer(consumer ports.TextureConsumer) {
	d.setTarget(outputTarget{consumer: consumer})
}

// ClearOutputTarget removes the output target; subsequent frames are released
// unrendered. Safe to call from the control thread.
func (d *Dispatcher) ClearOutputTarget() {
	d.setTarget(outputTarget{})
}

func (d *Dispatcher) setTarget(target outputTarget) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.targetChanged && target == d.pendingTarget {
		return
	}
	d.pendingTarget = target
	d.targetChanged = true
}

// Flush releases every queued, undispatched frame back to the processor.
func (d *Dispatcher) Flush() {
	for _, frame := range d.queue {
		d.processor.ReleaseFrame(frame.Image)
	}
	d.queue = d.queue[:0]
}

// Release deterministically tears down all GPU resources, in order: the
// transform pipeline, the texture pool, then surface bindings. The Dispatcher
// is unusable afterwards.
func (d *Dispatcher) Release() {
	if d.released {
		return
	}
	d.released = true

	d.Flush()

	if d.pipeline != nil {
		d.pipeline.Release()
		d.pipeline = nil
	}
	d.releasePoolResources()
	if d.binding != nil {
		if err := d.binding.Destroy(); err != nil {
			d.log.Warn("destroy surface binding: %v", err)
		}
		d.binding = nil
	}
	if d.previewBinding != nil {
		if err := d.previewBinding.Destroy(); err != nil {
			d.log.Debug("destroy debug preview binding: %v", err)
		}
		d.previewBinding = nil
	}
}

func (d *Dispatcher) releasePoolResources() {
	d.pool.releaseAll()
	d.poolTimestamps.Clear()
	for _, fence := range d.poolFences {
		fence.Release()
	}
	d.poolFences = d.poolFences[:0]
}

func computeOutputSize(width, height int, transforms []ports.Transform, orientationDegrees int) ports.Size {
	for _, t := range transforms {
		width, height = t.OutputSize(width, height)
	}
	if orientationDegrees == 90 || orientationDegrees == 270 {
		width, height = height, width
	}
	return ports.Size{Width: width, Height: height}
}
