package terrain

import (
	"math"

	"voxelcore/internal/core/block"
	"voxelcore/internal/core/chunk"
	"voxelcore/pkg/mathutil"
)

// carveWormTunnels implements §4.3.2: a small integer count of wandering
// spherical tunnels, seeded deterministically from the chunk's own
// coordinates so regeneration is byte-identical.
func (g *Generator) carveWormTunnels(c *chunk.Chunk, p Params, terrainHeight [][chunk.Size]float64) {
	seed := chunk.Hash(c.CX*7, c.CZ*13)
	rng := mathutil.NewSeededRNG(int64(seed))

	for i := 0; i < p.TunnelsPerChunk; i++ {
		startX := rng.NextFloat(0, chunk.Size)
		startZ := rng.NextFloat(0, chunk.Size)
		lx, lz := int(startX), int(startZ)
		if lx >= chunk.Size {
			lx = chunk.Size - 1
		}
		if lz >= chunk.Size {
			lz = chunk.Size - 1
		}
		th := terrainHeight[lx][lz]

		yLo := th - 150
		yHi := th - p.CaveMinDepth - 10
		if yHi < yLo {
			yHi = yLo + 1
		}
		y := rng.NextFloat(yLo, yHi)

		dir := [3]float64{
			rng.NextFloat(-1, 1),
			rng.NextFloat(-0.3, 0.3),
			rng.NextFloat(-1, 1),
		}
		dir = normalize(dir)

		radius := rng.NextFloat(p.TunnelRadiusMin, p.TunnelRadiusMax)
		pos := [3]float64{startX, y, startZ}

		forbiddenTop := th - p.CaveMinDepth
		forbiddenBottom := float64(p.BedrockStart)

		for seg := 0; seg < p.TunnelSegments; seg++ {
			carveSphere(c, pos, radius, forbiddenTop, forbiddenBottom)

			wobble := [3]float64{
				g.detailNoise.Noise3(pos[0]*0.1, float64(seg)*0.3, pos[2]*0.1),
				g.detailNoise.Noise3(pos[0]*0.1+50, float64(seg)*0.3, pos[2]*0.1+50),
				g.detailNoise.Noise3(pos[0]*0.1+100, float64(seg)*0.3, pos[2]*0.1+100),
			}
			dir[0] += wobble[0] * 0.15
			dir[1] += wobble[1] * 0.1
			dir[2] += wobble[2] * 0.15

			if pos[1] > forbiddenTop-5 {
				dir[1] -= 0.3
			}
			if pos[1] < forbiddenBottom+5 {
				dir[1] += 0.3
			}

			if seg%12 == 0 {
				dir = normalize(dir)
			}

			pos[0] += dir[0]
			pos[1] += dir[1]
			pos[2] += dir[2]
		}
	}
}

// carveEllipsoidalRooms implements §4.3.3.
func (g *Generator) carveEllipsoidalRooms(c *chunk.Chunk, p Params, terrainHeight [][chunk.Size]float64) {
	seed := chunk.Hash(c.CX*17, c.CZ*23)
	rng := mathutil.NewSeededRNG(int64(seed))

	for i := 0; i < p.RoomsPerChunk; i++ {
		lx := rng.NextInt(0, chunk.Size-1)
		lz := rng.NextInt(0, chunk.Size-1)
		th := terrainHeight[lx][lz]

		yLo := th - 150
		yHi := th - p.CaveMinDepth - 10
		if yHi < yLo {
			yHi = yLo + 1
		}
		y := rng.NextFloat(yLo, yHi)

		rx := rng.NextFloat(p.RoomRadiusMin, p.RoomRadiusMax)
		ry := rx * 0.6
		rz := rng.NextFloat(p.RoomRadiusMin, p.RoomRadiusMax)

		forbiddenTop := th - p.CaveMinDepth
		forbiddenBottom := float64(p.BedrockStart)

		carveEllipsoid(c, [3]float64{float64(lx), y, float64(lz)}, [3]float64{rx, ry, rz}, forbiddenTop, forbiddenBottom)
	}
}

func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l < 1e-9 {
		return [3]float64{1, 0, 0}
	}
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}

func carveSphere(c *chunk.Chunk, center [3]float64, radius, forbiddenTop, forbiddenBottom float64) {
	r := int(math.Ceil(radius))
	cx, cy, cz := int(center[0]), int(center[1]), int(center[2])
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				x, y, z := cx+dx, cy+dy, cz+dz
				if x < 0 || x >= chunk.Size || z < 0 || z >= chunk.Size || y < 0 || y >= chunk.Height {
					continue
				}
				if float64(y) > forbiddenTop || float64(y) < forbiddenBottom {
					continue
				}
				dist := math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
				if dist <= radius {
					c.SetBlock(x, y, z, block.Air)
				}
			}
		}
	}
}

func carveEllipsoid(c *chunk.Chunk, center, radii [3]float64, forbiddenTop, forbiddenBottom float64) {
	rx, ry, rz := int(math.Ceil(radii[0])), int(math.Ceil(radii[1])), int(math.Ceil(radii[2]))
	cx, cy, cz := int(center[0]), int(center[1]), int(center[2])
	for dx := -rx; dx <= rx; dx++ {
		for dy := -ry; dy <= ry; dy++ {
			for dz := -rz; dz <= rz; dz++ {
				x, y, z := cx+dx, cy+dy, cz+dz
				if x < 0 || x >= chunk.Size || z < 0 || z >= chunk.Size || y < 0 || y >= chunk.Height {
					continue
				}
				if float64(y) > forbiddenTop || float64(y) < forbiddenBottom {
					continue
				}
				v := (float64(dx)/radii[0])*(float64(dx)/radii[0]) +
					(float64(dy)/radii[1])*(float64(dy)/radii[1]) +
					(float64(dz)/radii[2])*(float64(dz)/radii[2])
				if v <= 1 {
					c.SetBlock(x, y, z, block.Air)
				}
			}
		}
	}
}
