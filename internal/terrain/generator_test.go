package terrain

import (
	"testing"

	"voxelcore/internal/core/block"
	"voxelcore/internal/core/chunk"
)

func TestGenerateChunkIsDeterministic(t *testing.T) {
	p := DefaultParams()
	g1 := New(42)
	g2 := New(42)

	c1 := chunk.New(0, 0)
	c2 := chunk.New(0, 0)
	g1.GenerateChunk(c1, p)
	g2.GenerateChunk(c2, p)

	for i := range c1.Blocks {
		if c1.Blocks[i] != c2.Blocks[i] {
			t.Fatalf("block grids diverged at index %d", i)
			break
		}
	}
}

func TestBedrockAtBottom(t *testing.T) {
	g := New(42)
	p := DefaultParams()
	c := chunk.New(0, 0)
	g.GenerateChunk(c, p)

	if c.GetBlock(8, 1, 8) != block.Bedrock {
		t.Fatalf("expected bedrock near y=1, got %v", c.GetBlock(8, 1, 8))
	}
}

func TestAirAboveTerrain(t *testing.T) {
	g := New(42)
	p := DefaultParams()
	c := chunk.New(0, 0)
	g.GenerateChunk(c, p)

	if c.GetBlock(8, 250, 8) != block.Air {
		t.Fatalf("expected air high above terrain, got %v", c.GetBlock(8, 250, 8))
	}
}

func TestDifferentChunksAreIndependentlyDeterministic(t *testing.T) {
	g := New(7)
	p := DefaultParams()
	a1 := chunk.New(3, -2)
	a2 := chunk.New(3, -2)
	g.GenerateChunk(a1, p)
	g.GenerateChunk(a2, p)
	for i := range a1.Blocks {
		if a1.Blocks[i] != a2.Blocks[i] {
			t.Fatalf("negative-coordinate chunk diverged at %d", i)
		}
	}
}
