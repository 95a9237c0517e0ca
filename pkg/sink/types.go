// Package sink implements the timing-and-rendering core of the playback
// pipeline: the Coordinator decides when (or whether) each processed frame is
// displayed, and the Dispatcher commits chosen frames to the active output
// target.
package sink

import (
	"math"

	"github.com/user/vidsink/pkg/ports"
)

// TimeUnset is the sentinel returned by RegisterFrame when the upstream
// processor cannot accept another frame. It is never a valid timestamp.
const TimeUnset int64 = math.MinInt64 + 1

// Render-time sentinels accepted by Dispatcher.Dispatch in place of a
// scheduled release time.
const (
	// RenderImmediately presents the frame at the current wall clock.
	RenderImmediately int64 = -1
	// DropFrame releases the frame back to the processor without rendering.
	DropFrame int64 = -2
)

// Frame is a GPU-processed picture awaiting release, identified by its buffer
// presentation timestamp (absolute, monotonically increasing across the
// session).
type Frame struct {
	Image       ports.Image
	TimestampUs int64
}
