// Package pacer provides a wall-clock release oracle. It compares each
// frame's timestamp against the playback position and decides whether the
// frame renders now, renders at a scheduled time, waits, or is dropped.
package pacer

import (
	"github.com/user/vidsink/pkg/ports"
)

// Config tunes the pacing thresholds. All values are positive microseconds.
type Config struct {
	// EarlyReleaseUs renders a frame immediately once it is due within this
	// window instead of scheduling it.
	EarlyReleaseUs int64 `yaml:"early_release_us"`

	// LateDropUs drops a frame once it is behind the position by more than
	// this.
	LateDropUs int64 `yaml:"late_drop_us"`

	// VeryLateDropUs gives up on the whole run and asks for a drop to the
	// next keyframe once a frame is behind by more than this.
	VeryLateDropUs int64 `yaml:"very_late_drop_us"`

	// MaxAheadUs defers frames that are further ahead of the position than
	// this; the coordinator retries them on a later tick.
	MaxAheadUs int64 `yaml:"max_ahead_us"`
}

// DefaultConfig returns the standard pacing thresholds.
func DefaultConfig() Config {
	return Config{
		EarlyReleaseUs: 50_000,
		LateDropUs:     30_000,
		VeryLateDropUs: 500_000,
		MaxAheadUs:     1_000_000,
	}
}

// Pacer implements ports.ReleaseOracle against the wall clock. It is not
// safe for concurrent use; the coordinator queries it from the render thread
// only.
type Pacer struct {
	cfg Config

	joining       bool
	frameReleased bool
}

// New creates a pacer. Zero thresholds in cfg fall back to the defaults.
func New(cfg Config) *Pacer {
	def := DefaultConfig()
	if cfg.EarlyReleaseUs <= 0 {
		cfg.EarlyReleaseUs = def.EarlyReleaseUs
	}
	if cfg.LateDropUs <= 0 {
		cfg.LateDropUs = def.LateDropUs
	}
	if cfg.VeryLateDropUs <= 0 {
		cfg.VeryLateDropUs = def.VeryLateDropUs
	}
	if cfg.MaxAheadUs <= 0 {
		cfg.MaxAheadUs = def.MaxAheadUs
	}
	return &Pacer{cfg: cfg, joining: true}
}

// FrameReleaseAction decides how to treat the frame at bufferTimestampUs
// given the current playback position.
func (p *Pacer) FrameReleaseAction(bufferTimestampUs, positionUs, elapsedRealtimeUs, outputStreamOffsetUs int64, isLastFrame bool) ports.Decision {
	earlyUs := bufferTimestampUs - positionUs

	// The first frame after a reset or discontinuity renders immediately so
	// playback joins without waiting out the schedule.
	if p.joining {
		p.joining = false
		p.frameReleased = true
		return ports.Decision{Action: ports.ActionReleaseImmediately}
	}

	switch {
	case !isLastFrame && earlyUs < -p.cfg.VeryLateDropUs:
		return ports.Decision{Action: ports.ActionDropToKeyframe}
	case !isLastFrame && earlyUs < -p.cfg.LateDropUs:
		return ports.Decision{Action: ports.ActionDrop}
	case earlyUs <= p.cfg.EarlyReleaseUs:
		p.frameReleased = true
		return ports.Decision{Action: ports.ActionReleaseImmediately}
	case earlyUs > p.cfg.MaxAheadUs:
		return ports.Decision{Action: ports.ActionTryAgainLater}
	default:
		p.frameReleased = true
		return ports.Decision{
			Action:        ports.ActionReleaseScheduled,
			ReleaseTimeNs: (elapsedRealtimeUs + earlyUs) * 1000,
		}
	}
}

// Reset returns the pacer to the joining state, as after a seek or flush.
func (p *Pacer) Reset() {
	p.joining = true
	p.frameReleased = false
}

// NotifyStreamDiscontinuity re-enters the joining state so the first frame
// of the new stream segment renders immediately.
func (p *Pacer) NotifyStreamDiscontinuity() {
	p.joining = true
}

// IsReady reports playback readiness: true once a frame has been released
// since the last reset, otherwise only if the renderer is ready to produce
// one.
func (p *Pacer) IsReady(rendererReady bool) bool {
	if p.frameReleased {
		return true
	}
	return rendererReady
}

var (
	_ ports.ReleaseOracle     = (*Pacer)(nil)
	_ ports.ReadinessReporter = (*Pacer)(nil)
)
