package batch

import (
	"sort"

	"voxelcore/internal/core/chunk"
)

// WorldView is the lookup surface the batcher needs to fall back to an
// ad hoc chunk render when no batch is registered for a cell.
type WorldView interface {
	GetChunk(cx, cz int32) (*chunk.Chunk, bool)
}

// Drawn is one resolved draw command: either a batch's combined mesh or a
// single chunk's mesh, positioned in world space.
type Drawn struct {
	Mesh           Drawable
	WorldX, WorldZ float32
	distSq         float64
}

// batchViewDist converts a chunk view distance into the batch-unit radius
// used to decide which batches are in range, per §4.8.
func batchViewDist(viewDist int) int {
	return viewDist/2 + 1
}

// CollectOpaque gathers the opaque draw list for every batch within the
// expanded view-distance box around (centerCX, centerCZ).
func (bt *Batcher) CollectOpaque(world WorldView, centerCX, centerCZ int32, viewDist int) []Drawn {
	var out []Drawn
	bt.walkVisible(world, centerCX, centerCZ, viewDist, func(b *Batch, bx, bz int32) {
		if b != nil && b.CombinedOpaque != nil {
			ox, oz := b.Origin()
			out = append(out, Drawn{Mesh: b.CombinedOpaque, WorldX: float32(ox * chunk.Size), WorldZ: float32(oz * chunk.Size)})
			return
		}
		out = append(out, bt.fallbackOpaque(world, b, bx, bz)...)
	})
	return out
}

// CollectTransparent gathers the transparent draw list, sorted back-to-front
// by squared XZ distance from (camX, camZ).
func (bt *Batcher) CollectTransparent(world WorldView, centerCX, centerCZ int32, viewDist int, camX, camZ float64) []Drawn {
	var out []Drawn
	bt.walkVisible(world, centerCX, centerCZ, viewDist, func(b *Batch, bx, bz int32) {
		if b != nil && b.CombinedTransparent != nil {
			ox, oz := b.Origin()
			wx, wz := float32(ox*chunk.Size), float32(oz*chunk.Size)
			out = append(out, Drawn{Mesh: b.CombinedTransparent, WorldX: wx, WorldZ: wz, distSq: distSq(float64(wx), float64(wz), camX, camZ)})
			return
		}
		for _, d := range bt.fallbackTransparent(world, b, bx, bz) {
			d.distSq = distSq(float64(d.WorldX), float64(d.WorldZ), camX, camZ)
			out = append(out, d)
		}
	})

	sort.Slice(out, func(i, j int) bool { return out[i].distSq > out[j].distSq })
	return out
}

func distSq(x, z, camX, camZ float64) float64 {
	dx, dz := x-camX, z-camZ
	return dx*dx + dz*dz
}

// walkVisible calls fn once per batch cell within the expanded view box,
// resolving the registered batch (nil if none exists for that cell).
func (bt *Batcher) walkVisible(world WorldView, centerCX, centerCZ int32, viewDist int, fn func(b *Batch, bx, bz int32)) {
	centerBX := int32(floorDiv2(centerCX))
	centerBZ := int32(floorDiv2(centerCZ))
	radius := int32(batchViewDist(viewDist))

	for bx := centerBX - radius; bx <= centerBX+radius; bx++ {
		for bz := centerBZ - radius; bz <= centerBZ+radius; bz++ {
			b := bt.batches[[2]int32{bx, bz}]
			fn(b, bx, bz)
		}
	}
}

func floorDiv2(v int32) int32 {
	if v >= 0 {
		return v / 2
	}
	return -((-v + 1) / 2)
}

// fallbackOpaque draws individual chunk meshes for a registered-but-not-yet-
// combined batch, or looks chunks up directly in the world if no batch is
// registered for this cell at all.
func (bt *Batcher) fallbackOpaque(world WorldView, b *Batch, bx, bz int32) []Drawn {
	var out []Drawn
	for sx := 0; sx < 2; sx++ {
		for sz := 0; sz < 2; sz++ {
			cx, cz := bx*2+int32(sx), bz*2+int32(sz)
			var c *chunk.Chunk
			if b != nil {
				c = b.Slots[sx][sz]
			}
			if c == nil {
				if found, ok := world.GetChunk(cx, cz); ok {
					c = found
				}
			}
			if c == nil {
				continue
			}
			if mesh, ok := c.OpaqueMesh.(Drawable); ok && mesh != nil {
				out = append(out, Drawn{Mesh: mesh, WorldX: float32(cx * chunk.Size), WorldZ: float32(cz * chunk.Size)})
			}
		}
	}
	return out
}

func (bt *Batcher) fallbackTransparent(world WorldView, b *Batch, bx, bz int32) []Drawn {
	var out []Drawn
	for sx := 0; sx < 2; sx++ {
		for sz := 0; sz < 2; sz++ {
			cx, cz := bx*2+int32(sx), bz*2+int32(sz)
			var c *chunk.Chunk
			if b != nil {
				c = b.Slots[sx][sz]
			}
			if c == nil {
				if found, ok := world.GetChunk(cx, cz); ok {
					c = found
				}
			}
			if c == nil {
				continue
			}
			if mesh, ok := c.TransparentMesh.(Drawable); ok && mesh != nil {
				out = append(out, Drawn{Mesh: mesh, WorldX: float32(cx * chunk.Size), WorldZ: float32(cz * chunk.Size)})
			}
		}
	}
	return out
}
