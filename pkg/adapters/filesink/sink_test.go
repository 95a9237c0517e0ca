package filesink

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/user/vidsink/pkg/adapters/logger"
	"github.com/user/vidsink/pkg/adapters/softbackend"
	"github.com/user/vidsink/pkg/mocks"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("frames")

func deliver(t *testing.T, sink *Sink, timestampUs int64) []int64 {
	t.Helper()
	var releases []int64
	img := softbackend.NewImage(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	sink.OnImageRendered(img, timestampUs, func(ts int64) {
		releases = append(releases, ts)
	}, &mocks.Fence{})
	return releases
}

func TestSink_WritesNumberedFrames(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, logger.NewNoop())

	for _, ts := range []int64{0, 33_000, 66_000} {
		releases := deliver(t, sink, ts)
		if len(releases) != 1 || releases[0] != ts {
			t.Fatalf("expected one release at %d, got %v", ts, releases)
		}
	}

	if sink.WrittenCount() != 3 {
		t.Fatalf("expected 3 written frames, got %d", sink.WrittenCount())
	}
	for i := 0; i < 3; i++ {
		path := filepath.Join(testBaseDir, fmt.Sprintf("frame-%05d.png", i))
		data, ok := fs.Files[path]
		if !ok {
			t.Fatalf("expected file at %s", path)
		}
		decoded, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("frame %d is not a valid PNG: %v", i, err)
		}
		if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 4 {
			t.Errorf("frame %d is %dx%d, expected 4x4", i, decoded.Bounds().Dx(), decoded.Bounds().Dy())
		}
	}
}

func TestSink_ReleasesOnWriteFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}
	sink := New(testBaseDir, fs, logger.NewNoop())

	releases := deliver(t, sink, 100)
	if len(releases) != 1 || releases[0] != 100 {
		t.Errorf("expected one release at 100 despite the failure, got %v", releases)
	}
	if sink.WrittenCount() != 0 {
		t.Errorf("expected no written frames, got %d", sink.WrittenCount())
	}
}

func TestSink_ReleasesOnUnreadableImage(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, logger.NewNoop())

	var releases []int64
	img := &mocks.Image{W: 4, H: 4} // no pixel readback
	sink.OnImageRendered(img, 200, func(ts int64) {
		releases = append(releases, ts)
	}, &mocks.Fence{})

	if len(releases) != 1 || releases[0] != 200 {
		t.Errorf("expected one release at 200, got %v", releases)
	}
	if len(fs.Files) != 0 {
		t.Errorf("expected no files, got %d", len(fs.Files))
	}
}

func TestSink_WaitsOnFence(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, logger.NewNoop())

	fence := &mocks.Fence{}
	img := softbackend.NewImage(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	sink.OnImageRendered(img, 0, func(int64) {}, fence)

	if !fence.Waited {
		t.Error("sink read the image without waiting on the fence")
	}
}
