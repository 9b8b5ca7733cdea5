package decay

import (
	"testing"

	"voxelcore/internal/core/block"
)

// fakeWorld is a tiny in-memory block store satisfying Accessor.
type fakeWorld struct {
	blocks map[[3]int]block.Type
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{blocks: make(map[[3]int]block.Type)}
}

func (w *fakeWorld) GetBlock(x, y, z int) block.Type {
	if t, ok := w.blocks[[3]int{x, y, z}]; ok {
		return t
	}
	return block.Air
}

func (w *fakeWorld) SetBlock(x, y, z int, t block.Type) bool {
	w.blocks[[3]int{x, y, z}] = t
	return true
}

func TestLeafWithNearbyWoodSurvives(t *testing.T) {
	w := newFakeWorld()
	w.SetBlock(0, 0, 0, block.WoodOak)
	w.SetBlock(1, 0, 0, block.LeavesOak)

	s := New(1)
	s.OnWoodRemoved(w, 0, 0, 0)
	if s.Len() == 0 {
		t.Fatalf("expected leaf to be enqueued")
	}

	// Advance well past any possible timer.
	s.Update(w, 3.0)

	if w.GetBlock(1, 0, 0) != block.LeavesOak {
		t.Fatalf("leaf adjacent to surviving wood should not decay")
	}
}

func TestIsolatedLeafDecaysToAir(t *testing.T) {
	w := newFakeWorld()
	w.SetBlock(5, 5, 5, block.LeavesOak)

	s := New(2)
	s.OnWoodRemoved(w, 5, 5, 5) // no wood present; treat this leaf as the trigger point too
	s.enqueue(5, 5, 5, 0.1)

	s.Update(w, 3.0)

	if w.GetBlock(5, 5, 5) != block.Air {
		t.Fatalf("isolated leaf should decay to air, got %v", w.GetBlock(5, 5, 5))
	}
}

func TestQueueCapIsRespected(t *testing.T) {
	w := newFakeWorld()
	s := New(3)
	for i := 0; i < QueueCap+50; i++ {
		s.enqueue(i, 0, 0, 1.0)
	}
	if s.Len() > QueueCap {
		t.Fatalf("queue exceeded cap: %d", s.Len())
	}
	_ = w
}

func TestDoubleEnqueueIsIgnored(t *testing.T) {
	s := New(4)
	s.enqueue(1, 1, 1, 1.0)
	s.enqueue(1, 1, 1, 1.0)
	if s.Len() != 1 {
		t.Fatalf("expected single pending entry, got %d", s.Len())
	}
}
