package terrain

import (
	"voxelcore/internal/biome"
	"voxelcore/internal/core/block"
	"voxelcore/internal/core/chunk"
)

// stamp is one relative offset + block type in a tree template.
type stamp struct {
	dx, dy, dz int
	t          block.Type
}

// woodFor/leavesFor map a tree kind to its wood/leaves block pair.
func woodFor(k biome.TreeKind) block.Type {
	switch k {
	case biome.TreeBirch:
		return block.WoodBirch
	case biome.TreeSpruce:
		return block.WoodSpruce
	case biome.TreeAcacia:
		return block.WoodAcacia
	default:
		return block.WoodOak
	}
}

func leavesFor(k biome.TreeKind) block.Type {
	switch k {
	case biome.TreeBirch:
		return block.LeavesBirch
	case biome.TreeSpruce:
		return block.LeavesSpruce
	case biome.TreeAcacia:
		return block.LeavesAcacia
	default:
		return block.LeavesOak
	}
}

// treeTemplate builds the static stamp list for (kind, sizeTier) where
// sizeTier is 0 (small), 1 (medium), 2 (large).
func treeTemplate(kind biome.TreeKind, sizeTier int) []stamp {
	trunkHeight := 3 + sizeTier*2
	crownRadius := 1 + sizeTier
	wood := woodFor(kind)
	leaves := leavesFor(kind)

	var stamps []stamp
	for dy := 0; dy < trunkHeight; dy++ {
		stamps = append(stamps, stamp{0, dy, 0, wood})
	}

	crownBase := trunkHeight - 2
	for dy := crownBase; dy <= trunkHeight+1; dy++ {
		layerRadius := crownRadius
		if dy == trunkHeight+1 {
			layerRadius = crownRadius - 1
		}
		if layerRadius < 0 {
			continue
		}
		for dx := -layerRadius; dx <= layerRadius; dx++ {
			for dz := -layerRadius; dz <= layerRadius; dz++ {
				if dx == 0 && dz == 0 && dy < trunkHeight {
					continue // trunk occupies this cell already
				}
				if dx*dx+dz*dz > layerRadius*layerRadius+1 {
					continue
				}
				stamps = append(stamps, stamp{dx, dy, dz, leaves})
			}
		}
	}
	return stamps
}

func cactusStamp(height int) []stamp {
	stamps := make([]stamp, 0, height)
	for dy := 0; dy < height; dy++ {
		stamps = append(stamps, stamp{0, dy, 0, block.Cactus})
	}
	return stamps
}

// stampTreesAndCacti implements §4.5's placement rule.
func (g *Generator) stampTreesAndCacti(c *chunk.Chunk, p Params, biomes [][chunk.Size]biome.Type, terrainHeight [][chunk.Size]float64) {
	for lx := 0; lx < chunk.Size; lx++ {
		for lz := 0; lz < chunk.Size; lz++ {
			wx := int(c.CX)*chunk.Size + lx
			wz := int(c.CZ)*chunk.Size + lz
			bt := biomes[lx][lz]
			props := biome.Get(bt)

			surfaceY := c.GetHeight(lx, lz)
			if surfaceY < 0 || surfaceY >= chunk.Height-16 {
				continue
			}

			vnoise := g.detailNoise.Noise2(float64(wx)*0.08+5000, float64(wz)*0.08+5000)
			h := chunk.Hash(int32(wx), int32(wz))

			if props.HasCacti && vnoise > 0.75 {
				height := 1 + int(h%3)
				g.placeStamps(c, lx, surfaceY+1, lz, cactusStamp(height))
				continue
			}

			if !props.HasTrees || vnoise <= 1-props.TreeDensity {
				continue
			}
			if !g.isSpacingClear(c, lx, lz, surfaceY) {
				continue
			}

			sizeBits := h % 3
			typeBits := (h >> 8) % 1000
			kind := props.PrimaryTree
			if float64(typeBits)/1000.0 < props.SecondaryChance {
				kind = props.SecondaryTree
			}

			g.placeStamps(c, lx, surfaceY+1, lz, treeTemplate(kind, int(sizeBits)))
		}
	}
}

// isSpacingClear checks a 7x7 local neighborhood for existing wood/cactus
// within the first 4 vertical cells above the surface, as required by §4.5.
func (g *Generator) isSpacingClear(c *chunk.Chunk, lx, lz, surfaceY int) bool {
	for dx := -3; dx <= 3; dx++ {
		for dz := -3; dz <= 3; dz++ {
			x, z := lx+dx, lz+dz
			if x < 0 || x >= chunk.Size || z < 0 || z >= chunk.Size {
				continue
			}
			for dy := 1; dy <= 4; dy++ {
				t := c.GetBlock(x, surfaceY+dy, z)
				if t.IsWood() || t == block.Cactus {
					return false
				}
			}
		}
	}
	return true
}

func (g *Generator) placeStamps(c *chunk.Chunk, baseX, baseY, baseZ int, stamps []stamp) {
	for _, s := range stamps {
		x, y, z := baseX+s.dx, baseY+s.dy, baseZ+s.dz
		if x < 0 || x >= chunk.Size || z < 0 || z >= chunk.Size || y < 0 || y >= chunk.Height {
			continue // clipped silently: no cross-chunk stitching
		}
		existing := c.GetBlock(x, y, z)
		if !existing.IsAir() && !existing.IsLeaves() {
			continue // must not overwrite solid non-leaf blocks
		}
		meta := block.Metadata(0)
		if s.t.IsWood() || s.t.IsLeaves() {
			meta = block.NaturalFlag
		}
		c.SetBlockWithMetadata(x, y, z, s.t, meta)
	}
}
