package summarizer

import (
	"strings"
	"testing"
	"time"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC),
		Session: SessionInfo{
			OutputDir: "./frames",
			Target:    "file",
		},
		Playback: PlaybackInfo{
			FramesEmitted:  100,
			FramesRendered: 95,
			FramesDropped:  5,
			DurationMs:     3340,
			SizeChanges:    []string{"640x360", "1280x720"},
		},
		Settings: Settings{
			FrameWidth:  640,
			FrameHeight: 360,
			FrameCount:  100,
			FPS:         30.0,

			MaxPendingFrames:    5,
			TexturePoolCapacity: 4,
			Orientation:         90,
			Realtime:            true,
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()
	result := formatter.Format(sampleSummary())

	checks := []string{
		"# Playback Summary",
		"2026-08-26 10:30:00",
		"| Frames Rendered | 95 |",
		"| Frames Dropped | 5 (5.0%) |",
		"| Playback Duration | 3340 ms |",
		"640x360, 1280x720",
		"./frames",
		"| Frame Size | 640x360 |",
		"| Frame Rate | 30.0 fps |",
		"| Orientation | 90° |",
		"| Pacing | Realtime |",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_Defaults(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := NewSummary()
	summary.Session.Target = "surface"
	result := formatter.Format(summary)

	// No size changes reported and no output directory written.
	if !strings.Contains(result, "| Video Sizes | None |") {
		t.Error("expected 'None' for missing size changes")
	}
	if strings.Contains(result, "Output Directory") {
		t.Error("expected no output directory row")
	}
	if !strings.Contains(result, "As fast as possible") {
		t.Error("expected non-realtime pacing label")
	}
	if strings.Contains(result, "Orientation") {
		t.Error("expected no orientation row for 0 degrees")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Playback Summary": "再生サマリー",
			"Frames Rendered":  "描画フレーム数",
			"Pacing":           "ペーシング",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))
	result := formatter.Format(sampleSummary())

	if !strings.Contains(result, "再生サマリー") {
		t.Error("expected translated 'Playback Summary'")
	}
	if !strings.Contains(result, "描画フレーム数") {
		t.Error("expected translated 'Frames Rendered'")
	}
	if !strings.Contains(result, "ペーシング") {
		t.Error("expected translated 'Pacing'")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	formatter := NewMarkdownFormatter(WithVersion("v1.2.0"))
	result := formatter.Format(sampleSummary())

	if !strings.Contains(result, "vidsink v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		part  int
		total int
		want  string
	}{
		{0, 0, "0.0%"},
		{0, 100, "0.0%"},
		{5, 100, "5.0%"},
		{1, 3, "33.3%"},
		{100, 100, "100.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatPercent(tt.part, tt.total)
			if got != tt.want {
				t.Errorf("formatPercent(%d, %d) = %q, want %q", tt.part, tt.total, got, tt.want)
			}
		})
	}
}
