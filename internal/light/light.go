// Package light computes per-chunk sky lighting: a top-down column fill
// followed by lateral BFS diffusion, entirely chunk-local (no cross-chunk
// light bleed).
package light

import (
	"voxelcore/internal/core/chunk"
)

const minAmbient = 0

// Propagate recomputes skylight for every cell of c.
func Propagate(c *chunk.Chunk) {
	fillColumns(c)
	diffuseLaterally(c)
}

func fillColumns(c *chunk.Chunk) {
	for x := 0; x < chunk.Size; x++ {
		for z := 0; z < chunk.Size; z++ {
			level := uint8(chunk.LightMax)
			blocked := false
			for y := chunk.Height - 1; y >= 0; y-- {
				if blocked {
					c.SetLight(x, y, z, minAmbient)
					continue
				}
				t := c.GetBlock(x, y, z)
				if t.IsAir() || t.IsTransparent() {
					c.SetLight(x, y, z, level)
					continue
				}
				// Solid opaque cell: it and everything below starts dark.
				c.SetLight(x, y, z, minAmbient)
				blocked = true
			}
		}
	}
}

type cell struct{ x, y, z int }

// diffuseLaterally runs a bucketed BFS from every lit air/transparent cell,
// attenuating by one unit per step and never overwriting a neighbor with a
// lower-or-equal value than it already holds. This realizes the contract
// "final light = max over paths of 15 - path_length".
func diffuseLaterally(c *chunk.Chunk) {
	queue := make([]cell, 0, chunk.Size*chunk.Height*chunk.Size/4)
	for x := 0; x < chunk.Size; x++ {
		for y := 0; y < chunk.Height; y++ {
			for z := 0; z < chunk.Size; z++ {
				if c.GetLight(x, y, z) > 0 {
					queue = append(queue, cell{x, y, z})
				}
			}
		}
	}

	offsets := [6][3]int{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curLight := c.GetLight(cur.x, cur.y, cur.z)
		if curLight <= 1 {
			continue
		}
		for _, o := range offsets {
			nx, ny, nz := cur.x+o[0], cur.y+o[1], cur.z+o[2]
			if nx < 0 || nx >= chunk.Size || ny < 0 || ny >= chunk.Height || nz < 0 || nz >= chunk.Size {
				continue
			}
			nt := c.GetBlock(nx, ny, nz)
			if nt.IsSolid() && !nt.IsTransparent() {
				continue
			}
			next := curLight - 1
			if c.GetLight(nx, ny, nz) < next {
				c.SetLight(nx, ny, nz, next)
				queue = append(queue, cell{nx, ny, nz})
			}
		}
	}
}

// EdgeAssumedLight is the minimum light assumed for cells whose lateral
// neighbor lies in an unloaded chunk, so edges do not read as fully dark
// before neighbor chunks exist. The mesher's bakedLight applies the same
// value as a literal 8 rather than referencing this constant.
const EdgeAssumedLight uint8 = 8
