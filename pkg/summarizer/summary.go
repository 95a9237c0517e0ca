// Package summarizer provides summary generation for playback results.
package summarizer

import "time"

// Summary contains all data collected during a playback session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Session information
	Session SessionInfo

	// Playback results
	Playback PlaybackInfo

	// Playback settings
	Settings Settings
}

// SessionInfo describes where the session's output went.
type SessionInfo struct {
	OutputDir string
	Target    string // "file" or "null"
}

// PlaybackInfo contains the per-run counters.
type PlaybackInfo struct {
	FramesEmitted  int
	FramesRendered int
	FramesDropped  int
	DurationMs     int64
	SizeChanges    []string // "WxH" per distinct reported size
}

// Settings contains the playback configuration.
type Settings struct {
	FrameWidth  int
	FrameHeight int
	FrameCount  int
	FPS         float64

	MaxPendingFrames    int
	TexturePoolCapacity int
	Orientation         int
	Realtime            bool
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSession sets session information.
func (b *Builder) WithSession(outputDir, target string) *Builder {
	b.summary.Session = SessionInfo{
		OutputDir: outputDir,
		Target:    target,
	}
	return b
}

// WithPlayback sets playback results.
func (b *Builder) WithPlayback(playback PlaybackInfo) *Builder {
	b.summary.Playback = playback
	return b
}

// WithSettings sets playback settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
