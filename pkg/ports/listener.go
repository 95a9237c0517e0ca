package ports

// SinkListener receives playback-facing events from the presentation core.
// Callbacks run on the render thread and must not block.
type SinkListener interface {
	// OnVideoSizeChanged fires once per distinct computed output size, no
	// earlier than the release of the first frame at or after the size
	// change's activation timestamp.
	OnVideoSizeChanged(size Size)

	// OnFrameDropped fires for every frame discarded by a drop or skip
	// decision.
	OnFrameDropped()

	// OnFirstFrameRendered fires for the first frame rendered after creation
	// or a flush.
	OnFirstFrameRendered()

	// OnError reports a backend failure tagged with the timestamp of the
	// offending frame (TimeUnset when no frame is involved).
	OnError(err error, timestampUs int64)

	// OnEndOfStream fires exactly once when the last frame of the current
	// segment has been released or dropped.
	OnEndOfStream()
}
