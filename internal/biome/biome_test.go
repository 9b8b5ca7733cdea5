package biome

import (
	"testing"

	"voxelcore/internal/core/noise"
)

func TestAtIsDeterministic(t *testing.T) {
	n := New(t)
	a := At(n, 123, -456)
	b := At(n, 123, -456)
	if a != b {
		t.Fatal("biome classification must be stable for the same coordinates")
	}
}

func TestAtIndependentOfIterationOrder(t *testing.T) {
	n := New(t)
	forward := make([]Type, 0, 20)
	for x := 0; x < 20; x++ {
		forward = append(forward, At(n, x, 0))
	}
	backward := make([]Type, 20)
	for x := 19; x >= 0; x-- {
		backward[x] = At(n, x, 0)
	}
	for i := range forward {
		if forward[i] != backward[i] {
			t.Fatalf("iteration order changed classification at x=%d", i)
		}
	}
}

func New(t *testing.T) *noise.Noise {
	t.Helper()
	return noise.New(42)
}
