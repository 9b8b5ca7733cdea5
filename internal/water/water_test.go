package water

import (
	"testing"

	"voxelcore/internal/core/block"
)

type fakeWorld struct {
	blocks map[[3]int]block.Type
	meta   map[[3]int]block.Metadata
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{blocks: make(map[[3]int]block.Type), meta: make(map[[3]int]block.Metadata)}
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
func (w *fakeWorld) GetMetadata(x, y, z int) block.Metadata {
	return w.meta[[3]int{x, y, z}]
}
func (w *fakeWorld) SetMetadata(x, y, z int, m block.Metadata) {
	w.meta[[3]int{x, y, z}] = m
}

func TestScheduleDedupesKeepingEarlierTick(t *testing.T) {
	s := New()
	s.Schedule(1, 1, 1, 10)
	s.Schedule(1, 1, 1, 2)
	if s.Len() != 1 {
		t.Fatalf("expected one deduped entry, got %d", s.Len())
	}
	idx := s.index[pos{1, 1, 1}]
	if s.nodes[idx].tick != s.current+2 {
		t.Fatalf("expected the earlier tick to win")
	}
}

func TestSourceWaterFlowsDownIntoAir(t *testing.T) {
	w := newFakeWorld()
	w.SetBlock(0, 5, 0, block.Water)
	w.SetMetadata(0, 5, 0, block.NewWaterMetadata(0, false))

	s := New()
	s.Schedule(0, 5, 0, 0)
	s.ProcessTick(w)

	if w.GetBlock(0, 4, 0) != block.Water {
		t.Fatalf("expected water to flow down")
	}
	if !w.GetMetadata(0, 4, 0).WaterFalling() {
		t.Fatalf("expected falling flag set on the new cell below")
	}
}

func TestWaterWithoutSourceTurnsToAir(t *testing.T) {
	w := newFakeWorld()
	// Isolated flowing water cell with no source above or adjacent.
	w.SetBlock(2, 2, 2, block.Water)
	w.SetMetadata(2, 2, 2, block.NewWaterMetadata(3, false))
	w.SetBlock(2, 1, 2, block.Stone) // solid floor, not air, not water

	s := New()
	s.Schedule(2, 2, 2, 0)
	s.ProcessTick(w)

	if w.GetBlock(2, 2, 2) != block.Air {
		t.Fatalf("expected sourceless water to revert to air, got %v", w.GetBlock(2, 2, 2))
	}
}

func TestHorizontalSpreadIncrementsLevel(t *testing.T) {
	w := newFakeWorld()
	w.SetBlock(0, 5, 0, block.Water)
	w.SetMetadata(0, 5, 0, block.NewWaterMetadata(0, false))
	w.SetBlock(0, 4, 0, block.Stone) // floor beneath the source

	s := New()
	s.Schedule(0, 5, 0, 0)
	s.ProcessTick(w)

	if w.GetBlock(1, 5, 0) != block.Water {
		t.Fatalf("expected water to spread horizontally")
	}
	if w.GetMetadata(1, 5, 0).WaterLevel() != 1 {
		t.Fatalf("expected spread level 1, got %d", w.GetMetadata(1, 5, 0).WaterLevel())
	}
}

func TestMaxPerTickBound(t *testing.T) {
	w := newFakeWorld()
	s := New()
	for i := 0; i < MaxPerTick+20; i++ {
		w.SetBlock(i, 5, 0, block.Water)
		w.SetMetadata(i, 5, 0, block.NewWaterMetadata(0, false))
		w.SetBlock(i, 4, 0, block.Stone)
		s.Schedule(i, 5, 0, 0)
	}
	s.ProcessTick(w)
	// 20 entries are deferred. The 100 processed sources each spread into
	// their two air neighbors along Z, and source 0 also into (-1,5,0):
	// 201 newly scheduled cells.
	if s.Len() != 20+201 {
		t.Fatalf("expected 20 deferred entries plus 201 newly scheduled spreads, got %d", s.Len())
	}
}
