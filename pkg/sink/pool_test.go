package sink

import (
	"testing"

	"github.com/user/vidsink/pkg/mocks"
)

func TestTexturePool_CapacityInvariant(t *testing.T) {
	backend := &mocks.RenderBackend{}
	pool := newTexturePool(backend, 3)
	pool.configure(320, 240)

	check := func(step string) {
		t.Helper()
		if pool.freeCount()+pool.inUseCount() != 3 {
			t.Fatalf("%s: free %d + inUse %d != capacity 3", step, pool.freeCount(), pool.inUseCount())
		}
	}

	check("initial")
	for i := 0; i < 3; i++ {
		if _, err := pool.acquire(); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
		check("acquire")
	}
	if pool.freeCount() != 0 {
		t.Fatalf("expected exhausted pool, %d free", pool.freeCount())
	}
	pool.recycleOldest()
	check("recycle")
	pool.releaseAll()
	check("releaseAll")
}

func TestTexturePool_RecyclesInAcquisitionOrder(t *testing.T) {
	backend := &mocks.RenderBackend{}
	pool := newTexturePool(backend, 2)
	pool.configure(320, 240)

	first, _ := pool.acquire()
	second, _ := pool.acquire()

	pool.recycleOldest()
	reused, _ := pool.acquire()
	if reused != first {
		t.Error("recycle did not return the oldest acquisition")
	}
	if second.(*mocks.Image).Released {
		t.Error("in-use image released by recycle")
	}
	if len(backend.Images) != 2 {
		t.Errorf("expected 2 allocations, got %d", len(backend.Images))
	}
}

func TestTexturePool_ReconfigureDropsStaleImages(t *testing.T) {
	backend := &mocks.RenderBackend{}
	pool := newTexturePool(backend, 2)
	pool.configure(320, 240)

	small, _ := pool.acquire()
	held, _ := pool.acquire()
	pool.recycleOldest() // small is now cached

	pool.configure(640, 480)
	if !small.(*mocks.Image).Released {
		t.Error("cached stale-size image not released on reconfigure")
	}
	if held.(*mocks.Image).Released {
		t.Error("in-use image released on reconfigure")
	}

	// The held image is stale when recycled and must not be cached.
	pool.recycleOldest()
	if !held.(*mocks.Image).Released {
		t.Error("stale in-use image cached instead of released")
	}
	img, _ := pool.acquire()
	if img.Width() != 640 || img.Height() != 480 {
		t.Errorf("new image is %dx%d, expected 640x480", img.Width(), img.Height())
	}
}

func TestTexturePool_ExhaustedAcquirePanics(t *testing.T) {
	pool := newTexturePool(&mocks.RenderBackend{}, 1)
	pool.configure(320, 240)
	if _, err := pool.acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic acquiring from an exhausted pool")
		}
	}()
	pool.acquire()
}

func TestTexturePool_ZeroCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive capacity")
		}
	}()
	newTexturePool(&mocks.RenderBackend{}, 0)
}
