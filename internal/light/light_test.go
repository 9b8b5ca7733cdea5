package light

import (
	"testing"

	"voxelcore/internal/core/block"
	"voxelcore/internal/core/chunk"
)

func TestOpenSkyColumnIsFullyLit(t *testing.T) {
	c := chunk.New(0, 0)
	Propagate(c)
	for y := 0; y < chunk.Height; y++ {
		if c.GetLight(5, y, 5) != chunk.LightMax {
			t.Fatalf("empty chunk column should be fully lit at y=%d, got %d", y, c.GetLight(5, y, 5))
		}
	}
}

func TestSolidRoofDarkensBelow(t *testing.T) {
	c := chunk.New(0, 0)
	c.SetBlock(5, 100, 5, block.Stone)
	Propagate(c)
	if c.GetLight(5, 101, 5) != chunk.LightMax {
		t.Fatalf("above roof should be lit, got %d", c.GetLight(5, 101, 5))
	}
	if c.GetLight(5, 100, 5) != 0 {
		t.Fatalf("roof cell itself should be dark, got %d", c.GetLight(5, 100, 5))
	}
	if c.GetLight(5, 99, 5) == chunk.LightMax {
		t.Fatal("directly under a solid roof should not read full brightness")
	}
}

func TestLateralDiffusionAttenuates(t *testing.T) {
	c := chunk.New(0, 0)
	// Roof the z=0 row at y=50 for x>=1; column x=0 stays open to the sky.
	for x := 1; x < chunk.Size; x++ {
		c.SetBlock(x, 50, 0, block.Stone) // roof over the row except the open column
	}
	Propagate(c)
	lit := c.GetLight(0, 49, 0)
	deeper := c.GetLight(5, 49, 0)
	if deeper > lit {
		t.Fatalf("light should not increase with distance from the opening: lit=%d deeper=%d", lit, deeper)
	}
}
