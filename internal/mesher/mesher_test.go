package mesher

import (
	"testing"

	"voxelcore/internal/core/block"
	"voxelcore/internal/core/chunk"
)

type flatAtlas struct{}

func (flatAtlas) UV(t block.Type, f Face) (float32, float32, float32, float32) {
	return 0, 0, 1, 1
}

func solidSlabChunk() *chunk.Chunk {
	c := chunk.New(0, 0)
	for lx := 0; lx < chunk.Size; lx++ {
		for lz := 0; lz < chunk.Size; lz++ {
			c.SetBlock(lx, 10, lz, block.Stone)
		}
	}
	return c
}

func getterFor(c *chunk.Chunk) BlockGetter {
	return func(wx, wy, wz int) block.Type {
		if wy < 0 || wy >= chunk.Height {
			return block.Air
		}
		if wx < 0 || wx >= chunk.Size || wz < 0 || wz >= chunk.Size {
			return block.Air
		}
		return c.GetBlock(wx, wy, wz)
	}
}

func TestSolidSlabEmitsOnlyOpaqueGeometry(t *testing.T) {
	c := solidSlabChunk()
	m := New()
	data := m.GenerateStaged(c, getterFor(c), flatAtlas{})

	// A full XZ slab surrounded by air above and below has no side
	// neighbors exposed at the interior, only top/bottom faces there, plus
	// perimeter side faces. Just assert we got a non-trivial opaque mesh
	// and nothing in the transparent stream.
	if len(data.Opaque.Vertices) == 0 {
		t.Fatalf("expected opaque geometry for solid slab")
	}
	if len(data.Transparent.Vertices) != 0 {
		t.Fatalf("stone should never produce transparent geometry")
	}
}

func TestBuriedFacesAreCulled(t *testing.T) {
	c := chunk.New(0, 0)
	for lx := 0; lx < chunk.Size; lx++ {
		for lz := 0; lz < chunk.Size; lz++ {
			for ly := 0; ly < 12; ly++ {
				c.SetBlock(lx, ly, lz, block.Stone)
			}
		}
	}
	m := New()
	data := m.GenerateStaged(c, getterFor(c), flatAtlas{})

	// Only the top layer (y=11) and the chunk perimeter walls should
	// contribute faces; an interior block like (8,5,8) should not.
	// We can't isolate per-block easily here, but we can check the mesh
	// is far smaller than "every block emits 6 faces" would produce.
	maxVerts := chunk.Size * chunk.Size * 12 * 6 * 4
	if len(data.Opaque.Vertices) >= maxVerts {
		t.Fatalf("expected face culling to suppress buried faces, got %d verts", len(data.Opaque.Vertices))
	}
}

func TestLeavesProduceTransparentStream(t *testing.T) {
	c := chunk.New(0, 0)
	c.SetBlock(8, 20, 8, block.LeavesOak)
	m := New()
	data := m.GenerateStaged(c, getterFor(c), flatAtlas{})

	if len(data.Transparent.Vertices) == 0 {
		t.Fatalf("expected leaves to emit transparent geometry")
	}
}

func TestVertexAOIsWithinTable(t *testing.T) {
	c := solidSlabChunk()
	get := getterFor(c)
	ao := vertexAO(get, Top, 8, 10, 8, [3]float32{0, 1, 0})
	found := false
	for _, v := range aoTable {
		if v == ao {
			found = true
		}
	}
	if !found {
		t.Fatalf("AO factor %v not in table", ao)
	}
}

func TestBakedLightAboveChunkTopIsLightMax(t *testing.T) {
	c := chunk.New(0, 0)
	light := bakedLight(c, 8, chunk.Height-1, 8)
	if light != chunk.LightMax {
		t.Fatalf("expected top-of-chunk neighbor to contribute LightMax, got %d", light)
	}
}
