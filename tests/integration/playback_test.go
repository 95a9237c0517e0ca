// Package integration contains end-to-end playback tests wiring the real
// adapters together: simulated frame source, software backend, wall-clock
// pacer and file sink.
package integration

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/user/vidsink/pkg/adapters/filesink"
	"github.com/user/vidsink/pkg/adapters/logger"
	"github.com/user/vidsink/pkg/adapters/osfilesystem"
	"github.com/user/vidsink/pkg/adapters/softbackend"
	"github.com/user/vidsink/pkg/config"
	"github.com/user/vidsink/pkg/mocks"
	"github.com/user/vidsink/pkg/player"
	"github.com/user/vidsink/pkg/ports"
)

func testConfig() player.Config {
	cfg := player.DefaultConfig()
	cfg.FrameWidth = 64
	cfg.FrameHeight = 36
	cfg.FrameCount = 30
	return cfg
}

// TestSurfacePlayback plays a full segment to an off-screen framebuffer and
// mirrors it to a debug preview.
func TestSurfacePlayback(t *testing.T) {
	listener := &mocks.SinkListener{}
	preview := softbackend.NewPreview()
	p := player.New(testConfig(), softbackend.New(), preview, listener, logger.NewNoop())

	fb := softbackend.NewFramebuffer("window")
	p.SetOutputSurface(fb, ports.Size{Width: 128, Height: 72})

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.FramesRendered != 30 || result.FramesDropped != 0 {
		t.Errorf("expected 30 rendered and 0 dropped, got %d/%d", result.FramesRendered, result.FramesDropped)
	}
	if fb.PresentCount() != 30 {
		t.Errorf("expected 30 presents, got %d", fb.PresentCount())
	}
	snap := fb.Snapshot()
	if snap == nil || snap.Bounds().Dx() != 128 || snap.Bounds().Dy() != 72 {
		t.Errorf("unexpected final frame: %v", snap)
	}
	if preview.Framebuffer().PresentCount() == 0 {
		t.Error("debug preview never received a frame")
	}
	if listener.FirstFrames != 1 || listener.EndOfStreams != 1 {
		t.Errorf("expected 1 first-frame and 1 end-of-stream, got %d/%d", listener.FirstFrames, listener.EndOfStreams)
	}
	if len(listener.SizeChanges) != 1 || listener.SizeChanges[0] != (ports.Size{Width: 64, Height: 36}) {
		t.Errorf("unexpected size changes: %v", listener.SizeChanges)
	}
}

// TestFileSinkPlayback plays through the pooled-texture path and writes
// frames to disk as PNG files.
func TestFileSinkPlayback(t *testing.T) {
	outDir := t.TempDir()
	fs := osfilesystem.New()
	sink := filesink.New(outDir, fs, logger.NewNoop())

	p := player.New(testConfig(), softbackend.New(), nil, nil, logger.NewNoop())
	p.SetTextureConsumer(sink)

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.FramesRendered != 30 {
		t.Fatalf("expected 30 rendered frames, got %d", result.FramesRendered)
	}
	if sink.WrittenCount() != 30 {
		t.Fatalf("expected 30 written frames, got %d", sink.WrittenCount())
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) != 30 {
		t.Fatalf("expected 30 files, got %d", len(names))
	}
	if names[0] != "frame-00000.png" || names[29] != "frame-00029.png" {
		t.Errorf("unexpected file names: %s .. %s", names[0], names[len(names)-1])
	}

	data, err := os.ReadFile(filepath.Join(outDir, names[0]))
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if decoded.Bounds().Dx() != 64 || decoded.Bounds().Dy() != 36 {
		t.Errorf("frame is %dx%d, expected 64x36", decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}

// TestOrientationSwapsOutput rotates the output by 90 degrees; the written
// frames come out with swapped dimensions.
func TestOrientationSwapsOutput(t *testing.T) {
	outDir := t.TempDir()
	sink := filesink.New(outDir, osfilesystem.New(), logger.NewNoop())

	cfg := testConfig()
	cfg.FrameCount = 3
	p := player.New(cfg, softbackend.New(), nil, nil, logger.NewNoop())
	p.SetTextureConsumer(sink)
	p.SetOrientation(90)

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "frame-00000.png"))
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if decoded.Bounds().Dx() != 36 || decoded.Bounds().Dy() != 64 {
		t.Errorf("frame is %dx%d, expected 36x64", decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}

// TestRealtimePlayback paces a short run against the wall clock.
func TestRealtimePlayback(t *testing.T) {
	cfg := testConfig()
	cfg.FrameCount = 10
	cfg.FPS = 100.0
	cfg.Realtime = true
	// Tighten the pacing windows so frames actually wait for their due time.
	cfg.Pacing.EarlyReleaseUs = 5_000
	cfg.Pacing.MaxAheadUs = 10_000

	p := player.New(cfg, softbackend.New(), nil, nil, logger.NewNoop())
	fb := softbackend.NewFramebuffer("window")
	p.SetOutputSurface(fb, ports.Size{Width: 64, Height: 36})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	result, err := p.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	elapsed := time.Since(start)

	// 10 frames at 100 fps span 90ms of media time; allow generous slack for
	// slow machines but reject an instant fall-through.
	if elapsed < 50*time.Millisecond {
		t.Errorf("realtime run finished too quickly: %v", elapsed)
	}
	if result.FramesRendered+result.FramesDropped != 10 {
		t.Errorf("expected all 10 frames accounted for, got %d rendered %d dropped",
			result.FramesRendered, result.FramesDropped)
	}
}

// TestConfiguredPlayback drives the player from a YAML configuration file the
// way the CLI does.
func TestConfiguredPlayback(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "vidsink.yaml")
	outDir := filepath.Join(dir, "frames")
	yaml := []byte("frame_width: 32\nframe_height: 32\nframe_count: 5\noutput_dir: " + outDir + "\n")
	if err := os.WriteFile(configPath, yaml, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fs := osfilesystem.New()
	cfg, err := config.LoadFromFile(configPath, fs)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	sink := filesink.New(cfg.OutputDir, fs, logger.NewNoop())
	p := player.New(cfg.ToPlayerConfig(), softbackend.New(), nil, nil, logger.NewNoop())
	p.SetTextureConsumer(sink)

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.FramesRendered != 5 {
		t.Errorf("expected 5 rendered frames, got %d", result.FramesRendered)
	}
	if sink.WrittenCount() != 5 {
		t.Errorf("expected 5 written frames, got %d", sink.WrittenCount())
	}
}

// TestScaledOutput drives the configured output size through a scale
// transform, the way the CLI wires output_width/output_height; the written
// frames come out at that size rather than the source frame size.
func TestScaledOutput(t *testing.T) {
	outDir := t.TempDir()
	sink := filesink.New(outDir, osfilesystem.New(), logger.NewNoop())

	fileCfg := config.Defaults()
	fileCfg.FrameWidth = 64
	fileCfg.FrameHeight = 36
	fileCfg.FrameCount = 3
	fileCfg.OutputWidth = 128
	fileCfg.OutputHeight = 72

	p := player.New(fileCfg.ToPlayerConfig(), softbackend.New(), nil, nil, logger.NewNoop())
	p.SetTextureConsumer(sink)
	p.SetTransforms([]ports.Transform{
		softbackend.Scale{Width: fileCfg.OutputWidth, Height: fileCfg.OutputHeight},
	})

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "frame-00000.png"))
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if decoded.Bounds().Dx() != 128 || decoded.Bounds().Dy() != 72 {
		t.Errorf("frame is %dx%d, expected 128x72", decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}
