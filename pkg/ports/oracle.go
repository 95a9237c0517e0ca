package ports

import "fmt"

// ReleaseAction is the release oracle's verdict for the frame at the head of
// the presentation queue.
type ReleaseAction int

const (
	// ActionTryAgainLater means no decision can be made yet; the caller must
	// stop draining the queue and retry on a later tick.
	ActionTryAgainLater ReleaseAction = iota
	// ActionSkip discards the frame without counting it as dropped output.
	ActionSkip
	// ActionSkipToKeyframe discards the frame; the caller may additionally
	// skip forward to the next keyframe.
	ActionSkipToKeyframe
	// ActionDrop discards the frame because playback is running late.
	ActionDrop
	// ActionDropToKeyframe discards the frame; the caller may additionally
	// drop forward to the next keyframe.
	ActionDropToKeyframe
	// ActionReleaseImmediately renders the frame as soon as possible.
	ActionReleaseImmediately
	// ActionReleaseScheduled renders the frame at Decision.ReleaseTimeNs.
	ActionReleaseScheduled
)

// String returns the action name for logs and panics.
func (a ReleaseAction) String() string {
	switch a {
	case ActionTryAgainLater:
		return "try-again-later"
	case ActionSkip:
		return "skip"
	case ActionSkipToKeyframe:
		return "skip-to-keyframe"
	case ActionDrop:
		return "drop"
	case ActionDropToKeyframe:
		return "drop-to-keyframe"
	case ActionReleaseImmediately:
		return "release-immediately"
	case ActionReleaseScheduled:
		return "release-scheduled"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// Decision is the oracle's answer for a single frame. ReleaseTimeNs is only
// meaningful when Action is ActionReleaseScheduled.
type Decision struct {
	Action        ReleaseAction
	ReleaseTimeNs int64
}

// ReleaseOracle decides whether and when a processed frame is released
// relative to the playback clock. The coordinator treats it as an opaque,
// stateful policy engine; returning an action outside the enum above is a
// contract violation.
type ReleaseOracle interface {
	// FrameReleaseAction is queried once per frame per tick, in presentation
	// order, with the frame's buffer timestamp, the current playback position,
	// the wall clock, the active output stream offset, and whether the frame
	// is the last of the current segment.
	FrameReleaseAction(bufferTimestampUs, positionUs, elapsedRealtimeUs, outputStreamOffsetUs int64, isLastFrame bool) Decision

	// Reset clears internal pacing state. Called on flush.
	Reset()

	// NotifyStreamDiscontinuity signals that the next frame belongs to a new
	// input segment with a different stream offset.
	NotifyStreamDiscontinuity()
}

// ReadinessReporter is optionally implemented by oracles that track whether
// pacing has settled enough for playback to be reported as ready.
type ReadinessReporter interface {
	IsReady(rendererReady bool) bool
}
