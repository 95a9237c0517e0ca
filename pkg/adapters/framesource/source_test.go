package framesource

import (
	"testing"

	"github.com/user/vidsink/pkg/ports"
)

func TestSource_EmitDeliversFrames(t *testing.T) {
	var delivered []int64
	var images []ports.Image
	src := New(64, 36, func(img ports.Image, timestampUs int64) {
		delivered = append(delivered, timestampUs)
		images = append(images, img)
	})

	if !src.RegisterFrame() {
		t.Fatal("registration refused")
	}
	if src.PendingFrameCount() != 1 {
		t.Fatalf("expected 1 pending frame, got %d", src.PendingFrameCount())
	}

	src.Emit(33_000)
	if src.PendingFrameCount() != 0 {
		t.Errorf("expected 0 pending frames after emit, got %d", src.PendingFrameCount())
	}
	if len(delivered) != 1 || delivered[0] != 33_000 {
		t.Fatalf("unexpected deliveries: %v", delivered)
	}
	if images[0].Width() != 64 || images[0].Height() != 36 {
		t.Errorf("frame is %dx%d, expected 64x36", images[0].Width(), images[0].Height())
	}
}

func TestSource_PatternVariesWithTimestamp(t *testing.T) {
	var images []ports.Image
	src := New(64, 36, func(img ports.Image, _ int64) {
		images = append(images, img)
	})
	src.RegisterFrame()
	src.Emit(0)
	src.RegisterFrame()
	src.Emit(500_000)

	a, _ := images[0].(ports.ImageReader).ReadPixels()
	b, _ := images[1].(ports.ImageReader).ReadPixels()

	// The sweeping bar sits at different positions, so some pixel differs.
	same := true
	for x := 0; x < 64 && same; x++ {
		for y := 0; y < 36 && same; y++ {
			if a.At(x, y) != b.At(x, y) {
				same = false
			}
		}
	}
	if same {
		t.Error("frames at different timestamps are identical")
	}
}

func TestSource_ReleaseAccounting(t *testing.T) {
	var images []ports.Image
	src := New(8, 8, func(img ports.Image, _ int64) {
		images = append(images, img)
	})
	src.RegisterFrame()
	src.Emit(0)

	src.ReleaseFrame(images[0])
	if src.ReleasedFrames() != 1 {
		t.Errorf("expected 1 released frame, got %d", src.ReleasedFrames())
	}
	if _, err := images[0].(ports.ImageReader).ReadPixels(); err == nil {
		t.Error("released image still readable")
	}

	src.SignalReadyForFrame()
	if src.ReadySignals() != 1 {
		t.Errorf("expected 1 ready signal, got %d", src.ReadySignals())
	}
}

func TestSource_EmitWithoutRegisterPanics(t *testing.T) {
	src := New(8, 8, func(ports.Image, int64) {})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for emit without register")
		}
	}()
	src.Emit(0)
}
