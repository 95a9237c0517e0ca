package summarizer

import (
	"strings"
	"testing"

	"github.com/user/vidsink/pkg/mocks"
)

func TestBuilder(t *testing.T) {
	summary := NewBuilder().
		WithSession("./frames", "file").
		WithPlayback(PlaybackInfo{
			FramesEmitted:  30,
			FramesRendered: 30,
			DurationMs:     1000,
		}).
		WithSettings(Settings{
			FrameWidth:  640,
			FrameHeight: 360,
			FrameCount:  30,
			FPS:         30.0,
		}).
		Build()

	if summary.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
	if summary.Session.OutputDir != "./frames" || summary.Session.Target != "file" {
		t.Errorf("unexpected session info: %+v", summary.Session)
	}
	if summary.Playback.FramesRendered != 30 {
		t.Errorf("unexpected playback info: %+v", summary.Playback)
	}
	if summary.Settings.FPS != 30.0 {
		t.Errorf("unexpected settings: %+v", summary.Settings)
	}
}

func TestWriter(t *testing.T) {
	fs := mocks.NewFileSystem()
	writer := NewWriter(NewMarkdownFormatter(), fs)

	if err := writer.Write("out/summary.md", sampleSummary()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, ok := fs.Files["out/summary.md"]
	if !ok {
		t.Fatal("summary file not written")
	}
	if !strings.Contains(string(data), "# Playback Summary") {
		t.Error("written file does not contain the summary")
	}
}

func TestWriter_PropagatesErrors(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(string, []byte) error {
		return &writeError{}
	}
	writer := NewWriter(NewMarkdownFormatter(), fs)

	if err := writer.Write("out/summary.md", sampleSummary()); err == nil {
		t.Error("expected write error")
	}
}

type writeError struct{}

func (*writeError) Error() string { return "disk full" }
