// Package player drives the presentation core end to end. It feeds simulated
// frames through the coordinator on a single render goroutine, ticks the
// release loop against a playback clock and reports what happened.
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/vidsink/pkg/adapters/framesource"
	"github.com/user/vidsink/pkg/adapters/pacer"
	"github.com/user/vidsink/pkg/ports"
	"github.com/user/vidsink/pkg/sink"
)

// Config contains all configuration for a playback run.
type Config struct {
	// Frames
	FrameWidth  int
	FrameHeight int
	FrameCount  int
	FPS         float64

	// Sink
	MaxPendingFrames    int
	TexturePoolCapacity int
	Pacing              pacer.Config

	// Realtime paces the run against the wall clock. When false, the player
	// advances a virtual clock one frame interval per tick and runs as fast
	// as the sink allows.
	Realtime bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FrameWidth:  640,
		FrameHeight: 360,
		FrameCount:  90,
		FPS:         30.0,

		MaxPendingFrames:    5,
		TexturePoolCapacity: 4,
		Pacing:              pacer.DefaultConfig(),
	}
}

// RunResult contains the results of a playback run for summary output.
type RunResult struct {
	FramesEmitted  int
	FramesRendered int
	FramesDropped  int
	SizeChanges    []ports.Size
	DurationMs     int64
}

// Player owns the render loop. Create one per run; it is not reusable.
type Player struct {
	cfg    Config
	logger ports.Logger

	source      *framesource.Source
	dispatcher  *sink.Dispatcher
	coordinator *sink.Coordinator

	listener ports.SinkListener

	dropped     int
	flushed     int
	sizeChanges []ports.Size
	runErr      error
}

// New wires a Player around the given backend. listener may be nil; events
// are then only logged and counted. Configure an output target with
// SetOutputSurface or SetTextureConsumer before Run.
func New(cfg Config, backend ports.RenderBackend, preview ports.DebugPreviewProvider, listener ports.SinkListener, log ports.Logger) *Player {
	if cfg.FrameCount <= 0 {
		panic(fmt.Sprintf("player: frame count must be positive, got %d", cfg.FrameCount))
	}
	if cfg.FPS <= 0 {
		panic(fmt.Sprintf("player: fps must be positive, got %f", cfg.FPS))
	}

	p := &Player{
		cfg:      cfg,
		logger:   log.WithComponent("player"),
		listener: listener,
	}
	p.source = framesource.New(cfg.FrameWidth, cfg.FrameHeight, func(img ports.Image, bufferPresentationTimeUs int64) {
		p.dispatcher.EnqueueFrame(sink.Frame{Image: img, TimestampUs: bufferPresentationTimeUs})
		p.coordinator.OnFrameProcessed(bufferPresentationTimeUs)
	})
	p.dispatcher = sink.NewDispatcher(backend, p.source, cfg.TexturePoolCapacity, preview, log)
	p.coordinator = sink.NewCoordinator(pacer.New(cfg.Pacing), p.source, p.dispatcher, p, log, cfg.MaxPendingFrames)
	return p
}

// SetOutputSurface directs rendered frames to the given surface.
func (p *Player) SetOutputSurface(surface ports.Surface, size ports.Size) {
	p.logger.Info(l10n.F("Output surface set: %dx%d", size.Width, size.Height))
	p.dispatcher.SetOutputSurface(surface, size)
}

// SetTextureConsumer directs rendered frames to the given consumer.
func (p *Player) SetTextureConsumer(consumer ports.TextureConsumer) {
	p.logger.Info(l10n.T("Texture consumer attached"))
	p.dispatcher.SetTextureConsumer(consumer)
}

// SetTransforms forwards per-frame transforms to the dispatcher.
func (p *Player) SetTransforms(transforms []ports.Transform) {
	p.dispatcher.SetTransforms(transforms)
}

// SetOrientation forwards the output rotation to the dispatcher.
func (p *Player) SetOrientation(degrees int) {
	p.dispatcher.SetOrientation(degrees)
}

// Run plays the configured number of frames to completion. It returns when
// the last frame has been released or dropped, or when ctx is cancelled.
func (p *Player) Run(ctx context.Context) (RunResult, error) {
	p.logger.Info(l10n.T("Starting playback"))

	frameIntervalUs := int64(1e6 / p.cfg.FPS)
	start := time.Now()
	virtualUs := int64(0)
	emitted := 0

	for !p.coordinator.IsEnded() {
		select {
		case <-ctx.Done():
			p.logger.Info(l10n.T("Interrupted, shutting down..."))
			p.release()
			return p.result(emitted, start), ctx.Err()
		default:
		}

		// Feed the sink up to its admission limit.
		for emitted < p.cfg.FrameCount && p.coordinator.QueuedFrames() < p.cfg.MaxPendingFrames {
			framePresentationTimeUs := int64(emitted) * frameIntervalUs
			isLast := emitted == p.cfg.FrameCount-1
			bufferPresentationTimeUs := p.coordinator.RegisterFrame(framePresentationTimeUs, isLast)
			if bufferPresentationTimeUs == sink.TimeUnset {
				break
			}
			p.source.Emit(bufferPresentationTimeUs)
			emitted++
		}

		positionUs := virtualUs
		elapsedUs := virtualUs
		if p.cfg.Realtime {
			positionUs = time.Since(start).Microseconds()
			elapsedUs = positionUs
		}
		p.coordinator.Tick(positionUs, elapsedUs)

		if p.cfg.Realtime {
			time.Sleep(time.Millisecond)
		} else {
			virtualUs += frameIntervalUs
		}
	}

	p.release()

	result := p.result(emitted, start)
	p.logger.Info(l10n.F("Playback completed: %d frames rendered, %d dropped", result.FramesRendered, result.FramesDropped))
	return result, p.runErr
}

func (p *Player) release() {
	p.logger.Debug(l10n.T("Flushing pending frames"))
	p.flushed = p.coordinator.QueuedFrames()
	p.coordinator.Flush()
	p.dispatcher.Release()
}

func (p *Player) result(emitted int, start time.Time) RunResult {
	return RunResult{
		FramesEmitted:  emitted,
		FramesRendered: emitted - p.dropped - p.flushed,
		FramesDropped:  p.dropped,
		SizeChanges:    p.sizeChanges,
		DurationMs:     time.Since(start).Milliseconds(),
	}
}

// OnVideoSizeChanged implements ports.SinkListener.
func (p *Player) OnVideoSizeChanged(size ports.Size) {
	p.logger.Info(l10n.F("Video size changed: %dx%d", size.Width, size.Height))
	p.sizeChanges = append(p.sizeChanges, size)
	if p.listener != nil {
		p.listener.OnVideoSizeChanged(size)
	}
}

// OnFrameDropped implements ports.SinkListener.
func (p *Player) OnFrameDropped() {
	p.dropped++
	if p.listener != nil {
		p.listener.OnFrameDropped()
	}
}

// OnFirstFrameRendered implements ports.SinkListener.
func (p *Player) OnFirstFrameRendered() {
	p.logger.Info(l10n.T("First frame rendered"))
	if p.listener != nil {
		p.listener.OnFirstFrameRendered()
	}
}

// OnError implements ports.SinkListener. The first error ends the run's
// error status; playback itself continues.
func (p *Player) OnError(err error, timestampUs int64) {
	if p.runErr == nil {
		p.runErr = err
	}
	if p.listener != nil {
		p.listener.OnError(err, timestampUs)
	}
}

// OnEndOfStream implements ports.SinkListener.
func (p *Player) OnEndOfStream() {
	p.logger.Info(l10n.T("End of stream reached"))
	if p.listener != nil {
		p.listener.OnEndOfStream()
	}
}

var _ ports.SinkListener = (*Player)(nil)
