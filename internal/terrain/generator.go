// Package terrain generates chunk contents deterministically from world
// seed, Params, and chunk coordinates: heightmap terrain, ore/clay/gravel
// pockets, noise caves, worm tunnels, ellipsoidal rooms, and dungeon rooms.
package terrain

import (
	"math"

	"voxelcore/internal/biome"
	"voxelcore/internal/core/block"
	"voxelcore/internal/core/chunk"
	"voxelcore/internal/core/noise"
	"voxelcore/internal/light"
)

// Generator produces chunk contents for one world seed. It holds only
// read-only-after-init noise tables, so it is safe to share across worker
// goroutines.
type Generator struct {
	seed       int64
	heightNoise *noise.Noise
	caveNoise   *noise.Noise
	oreNoise    *noise.Noise
	detailNoise *noise.Noise
	biomeNoise  *noise.Noise
}

// New creates a Generator seeded once for the whole world.
func New(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		heightNoise: noise.New(uint32(seed)),
		caveNoise:   noise.New(uint32(seed + 1000)),
		oreNoise:    noise.New(uint32(seed + 2000)),
		detailNoise: noise.New(uint32(seed + 3000)),
		biomeNoise:  noise.New(uint32(seed)),
	}
}

// GenerateChunk fills c with terrain, caves, dungeons, and trees, then
// computes skylight. Two calls with the same seed, Params, and chunk
// coordinates produce byte-identical block grids (the fingerprinting
// property in the data model).
func (g *Generator) GenerateChunk(c *chunk.Chunk, p Params) {
	terrainHeight := make([][chunk.Size]float64, chunk.Size)
	biomes := make([][chunk.Size]biome.Type, chunk.Size)

	for lx := 0; lx < chunk.Size; lx++ {
		for lz := 0; lz < chunk.Size; lz++ {
			wx := int(c.CX)*chunk.Size + lx
			wz := int(c.CZ)*chunk.Size + lz

			bt := biome.At(g.biomeNoise, wx, wz)
			biomes[lx][lz] = bt
			props := biome.Get(bt)

			h := p.HeightOffset + g.heightNoise.FBM2(float64(wx), float64(wz), p.Octaves, p.Frequency, 1, p.Lacunarity, p.Persistence)*p.HeightScale*props.HeightScale
			terrainHeight[lx][lz] = h

			g.generateColumn(c, lx, lz, wx, wz, h, props, p)
		}
	}

	g.carveWormTunnels(c, p, terrainHeight)
	g.carveEllipsoidalRooms(c, p, terrainHeight)
	if p.DungeonEnabled {
		g.carveDungeon(c, p)
	}
	g.stampTreesAndCacti(c, p, biomes, terrainHeight)

	light.Propagate(c)

	c.NeedsRemesh = true
}

func (g *Generator) generateColumn(c *chunk.Chunk, lx, lz, wx, wz int, terrainHeight float64, props biome.Properties, p Params) {
	for y := 0; y < chunk.Height; y++ {
		fy := float64(y)
		var t block.Type

		switch {
		case fy > terrainHeight:
			t = block.Air
		case fy > terrainHeight-1:
			t = props.Surface
		case fy > terrainHeight-float64(p.DirtDepth):
			t = props.Subsurface
		case fy > terrainHeight-float64(p.DirtDepth)-float64(p.SubsoilDepth):
			t = g.classifySubsoil(wx, y, wz, p)
		case y <= p.BedrockSolid:
			t = block.Bedrock
		case y <= p.BedrockStart:
			prob := (float64(p.BedrockStart-y)) / 4.0
			if stochastic(g.oreNoise, wx, y, wz, 0.1) < prob {
				t = block.Bedrock
			} else {
				t = g.classifyDeepStone(wx, y, wz, terrainHeight, p)
			}
		case y <= p.DeepStoneY:
			t = g.classifyDeepStone(wx, y, wz, terrainHeight, p)
		default:
			t = g.classifyUpperStone(wx, y, wz, terrainHeight, p)
		}

		c.SetBlock(lx, y, lz, t)
	}
}

// stochastic turns a noise3 sample into a pseudo-uniform [0,1] oracle.
func stochastic(n *noise.Noise, x, y, z int, scale float64) float64 {
	v := n.Noise3(float64(x)*scale, float64(y)*scale, float64(z)*scale)
	return (v + 1) / 2
}

func (g *Generator) classifySubsoil(wx, y, wz int, p Params) block.Type {
	v := stochastic(g.oreNoise, wx, y, wz, 0.1)
	switch {
	case v > 0.8:
		return block.Clay
	case v > 0.6:
		return block.Gravel
	default:
		return block.Dirt
	}
}

func (g *Generator) classifyDeepStone(wx, y, wz int, terrainHeight float64, p Params) block.Type {
	if t, ok := g.checkOre(wx, y, wz, p.Diamond, 4000); ok {
		return t
	}
	if t, ok := g.checkOre(wx, y, wz, p.Gold, 3500); ok {
		return t
	}
	return g.classifyUpperStone(wx, y, wz, terrainHeight, p)
}

func (g *Generator) classifyUpperStone(wx, y, wz int, terrainHeight float64, p Params) block.Type {
	if y >= p.GravelMinY && y <= p.GravelMaxY {
		v := stochastic(g.oreNoise, wx, y, wz, 0.15)
		if v > 1-p.GravelFrequency {
			return block.Gravel
		}
	}
	if y >= p.ClayMinY && y <= p.ClayMaxY {
		v := stochastic(g.oreNoise, wx+500, y, wz, 0.12)
		if v > 1-p.ClayFrequency {
			return block.Clay
		}
	}
	if t, ok := g.checkOre(wx, y, wz, p.Iron, 1000); ok {
		return t
	}
	if t, ok := g.checkOre(wx, y, wz, p.Coal, 1500); ok {
		return t
	}

	if g.isCave(wx, y, wz, terrainHeight, p) {
		return block.Air
	}
	return block.Stone
}

func (g *Generator) checkOre(wx, y, wz int, table OreTable, offset int) (block.Type, bool) {
	if y < table.MinY || y > table.MaxY {
		return block.Air, false
	}
	v := stochastic(g.oreNoise, wx+offset, y, wz+offset, 0.2)
	if v > 1-table.Frequency*0.08 {
		return oreBlockFor(offset), true
	}
	return block.Air, false
}

func oreBlockFor(offset int) block.Type {
	switch offset {
	case 4000:
		return block.DiamondOre
	case 3500:
		return block.GoldOre
	case 1000:
		return block.IronOre
	default:
		return block.CoalOre
	}
}

// isCave implements §4.3.1: deeper cells are more likely to be cave air.
func (g *Generator) isCave(wx, y, wz int, terrainHeight float64, p Params) bool {
	depth := terrainHeight - float64(y)
	if depth < p.CaveMinDepth || depth > 150 {
		return false
	}
	if y < p.BedrockStart {
		return false
	}
	v := g.caveNoise.FBM3(float64(wx), float64(y), float64(wz), p.CaveOctaves, p.CaveFrequency, 1, 2, 0.5)
	threshold := p.CaveThreshold + (1-math.Min(depth/100, 1))*0.15
	return v > threshold
}
