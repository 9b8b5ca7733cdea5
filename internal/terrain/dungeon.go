package terrain

import (
	"voxelcore/internal/core/block"
	"voxelcore/internal/core/chunk"
)

// carveDungeon implements §4.3.4: a deterministic per-chunk roll derives a
// stone-brick room with a single corridor cut through one side.
func (g *Generator) carveDungeon(c *chunk.Chunk, p Params) {
	h := chunk.Hash(c.CX, c.CZ)
	if float64(h%1000)/1000.0 >= p.DungeonFrequency {
		return
	}

	sx := p.DungeonSizeMin + int(h>>8)%(p.DungeonSizeMax-p.DungeonSizeMin+1)
	sy := p.DungeonSizeMin + int(h>>16)%(p.DungeonSizeMax-p.DungeonSizeMin+1)
	sz := p.DungeonSizeMin + int(h>>24)%(p.DungeonSizeMax-p.DungeonSizeMin+1)

	x0 := int(h>>32) % (chunk.Size - sx)
	if x0 < 0 {
		x0 = -x0
	}
	z0 := int(h>>40) % (chunk.Size - sz)
	if z0 < 0 {
		z0 = -z0
	}
	y0 := p.DungeonMinY + int(h>>48)%(p.DungeonMaxY-p.DungeonMinY+1)

	// Clamp the room down if it would surface within 5 blocks of the terrain.
	surfaceY := c.GetHeight(x0+sx/2, z0+sz/2)
	if surfaceY >= 0 && y0+sy > surfaceY-5 {
		y0 = surfaceY - 5 - sy
		if y0 < p.BedrockStart+1 {
			y0 = p.BedrockStart + 1
		}
	}

	for x := x0; x < x0+sx; x++ {
		for y := y0; y < y0+sy; y++ {
			for z := z0; z < z0+sz; z++ {
				isWall := x == x0 || x == x0+sx-1 || y == y0 || y == y0+sy-1 || z == z0 || z == z0+sz-1
				if isWall {
					c.SetBlock(x, y, z, wallMaterial(g.detailNoise.Noise3(float64(x)*0.1, float64(y)*0.1, float64(z)*0.1)))
				} else {
					c.SetBlock(x, y, z, block.Air)
				}
			}
		}
	}

	carveCorridor(c, x0, y0, z0, sx, sy, sz, h)
}

func wallMaterial(damage float64) block.Type {
	switch {
	case damage > 0.4:
		return block.MossyStoneBrick
	case damage < -0.3:
		return block.CrackedStoneBrick
	default:
		return block.StoneBrick
	}
}

// carveCorridor cuts a width-2 height-3 opening through one of the four
// walls, selected by hash bits, per §4.3.4.
func carveCorridor(c *chunk.Chunk, x0, y0, z0, sx, sy, sz int, h uint64) {
	side := int(h>>56) % 4
	midY := y0 + 1
	if midY+2 >= y0+sy {
		midY = y0
	}

	switch side {
	case 0: // -X wall
		midZ := z0 + sz/2
		for dz := 0; dz < 2; dz++ {
			for dy := 0; dy < 3; dy++ {
				c.SetBlock(x0, midY+dy, midZ+dz, block.Air)
			}
		}
	case 1: // +X wall
		midZ := z0 + sz/2
		for dz := 0; dz < 2; dz++ {
			for dy := 0; dy < 3; dy++ {
				c.SetBlock(x0+sx-1, midY+dy, midZ+dz, block.Air)
			}
		}
	case 2: // -Z wall
		midX := x0 + sx/2
		for dx := 0; dx < 2; dx++ {
			for dy := 0; dy < 3; dy++ {
				c.SetBlock(midX+dx, midY+dy, z0, block.Air)
			}
		}
	default: // +Z wall
		midX := x0 + sx/2
		for dx := 0; dx < 2; dx++ {
			for dy := 0; dy < 3; dy++ {
				c.SetBlock(midX+dx, midY+dy, z0+sz-1, block.Air)
			}
		}
	}
}
