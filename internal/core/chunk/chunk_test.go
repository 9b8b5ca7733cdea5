package chunk

import (
	"testing"

	"voxelcore/internal/core/block"
)

func TestSolidBlockCountInvariant(t *testing.T) {
	c := New(0, 0)
	if !c.IsEmpty() {
		t.Fatal("new chunk should be empty")
	}
	c.SetBlock(1, 1, 1, block.Stone)
	if c.SolidBlockCount() != 1 || c.IsEmpty() {
		t.Fatal("invariant broke after placing one block")
	}
	c.SetBlock(1, 1, 1, block.Air)
	if c.SolidBlockCount() != 0 || !c.IsEmpty() {
		t.Fatal("invariant broke after removing the block")
	}
}

func TestSolidBlockCountRandomSequence(t *testing.T) {
	c := New(2, -3)
	want := 0
	present := map[[3]int]bool{}
	ops := [][4]int{
		{0, 0, 0, int(block.Stone)}, {0, 0, 0, int(block.Dirt)},
		{1, 5, 1, int(block.Stone)}, {2, 5, 1, int(block.Air)},
		{1, 5, 1, int(block.Air)}, {3, 3, 3, int(block.Stone)},
	}
	for _, op := range ops {
		x, y, z, bt := op[0], op[1], op[2], block.Type(op[3])
		key := [3]int{x, y, z}
		wasSolid := present[key]
		isSolid := bt != block.Air
		if wasSolid && !isSolid {
			want--
		} else if !wasSolid && isSolid {
			want++
		}
		present[key] = isSolid
		c.SetBlock(x, y, z, bt)
	}
	if c.SolidBlockCount() != want {
		t.Fatalf("solid count = %d, want %d", c.SolidBlockCount(), want)
	}
}

func TestHeightMapTracksTopBlock(t *testing.T) {
	c := New(0, 0)
	c.SetBlock(4, 10, 4, block.Stone)
	if c.GetHeight(4, 4) != 10 {
		t.Fatalf("GetHeight = %d, want 10", c.GetHeight(4, 4))
	}
	c.SetBlock(4, 20, 4, block.Stone)
	if c.GetHeight(4, 4) != 20 {
		t.Fatalf("GetHeight after higher block = %d, want 20", c.GetHeight(4, 4))
	}
	c.SetBlock(4, 20, 4, block.Air)
	if c.GetHeight(4, 4) != 10 {
		t.Fatalf("GetHeight after removing top = %d, want 10", c.GetHeight(4, 4))
	}
}

func TestOutOfBoundsReadsAreAir(t *testing.T) {
	c := New(0, 0)
	if c.GetBlock(-1, 0, 0) != block.Air {
		t.Fatal("out of bounds read should be Air")
	}
	if c.SetBlock(100, 0, 0, block.Stone) {
		t.Fatal("out of bounds write should fail")
	}
}

func TestCoordRoundTripIncludingNegatives(t *testing.T) {
	for wx := -40; wx <= 40; wx++ {
		cx, lx, _, _ := worldToLocalX(wx)
		if cx*Size+lx != wx {
			t.Fatalf("round-trip failed for wx=%d: cx=%d lx=%d", wx, cx, lx)
		}
		if lx < 0 || lx >= Size {
			t.Fatalf("local coordinate out of range for wx=%d: lx=%d", wx, lx)
		}
	}
}

func worldToLocalX(wx int) (cx, lx, cz, lz int) {
	cx, cz, lx, lz = WorldToLocal(wx, 0)
	return
}

func TestDirtyListNoDoubleInsert(t *testing.T) {
	var dl DirtyList
	c := New(0, 0)
	if !dl.Push(c) {
		t.Fatal("first push should succeed")
	}
	if dl.Push(c) {
		t.Fatal("second push of same chunk should be a no-op")
	}
	if dl.Len() != 1 {
		t.Fatalf("len = %d, want 1", dl.Len())
	}
}

func TestDirtyListDrainRequeuesIncomplete(t *testing.T) {
	var dl DirtyList
	a := New(0, 0)
	b := New(1, 0)
	dl.Push(a)
	dl.Push(b)

	var seen []*Chunk
	dl.Drain(func(c *Chunk) bool {
		seen = append(seen, c)
		return c == a // only "complete" a
	})

	if len(seen) != 2 {
		t.Fatalf("expected both chunks visited, got %d", len(seen))
	}
	if dl.Len() != 1 {
		t.Fatalf("expected b to remain queued, len = %d", dl.Len())
	}
	if !b.InDirtyList {
		t.Fatal("b should still be marked in-list")
	}
	if a.InDirtyList {
		t.Fatal("a should have been cleared from the list")
	}
}
