// Package batch aggregates chunks into 2x2 super-meshes so the renderer
// issues one draw call per four chunks instead of one each.
package batch

import (
	"voxelcore/internal/core/chunk"
	"voxelcore/internal/mesher"
	"voxelcore/pkg/mathutil"
)

// MaxCount bounds how many batches the chained table will hold.
const MaxCount = 512

// Drawable is the GPU mesh surface the batcher needs: chunk.GpuMesh's
// teardown plus the ability to actually render.
type Drawable interface {
	chunk.GpuMesh
	Draw()
}

// Uploader builds a Drawable GPU mesh from raw vertex/index buffers.
type Uploader interface {
	Upload(vertices []mesher.Vertex, indices []uint32) Drawable
}

// MeshSource supplies the last staged (pre-upload) vertex buffers for a
// chunk, which the batcher needs to combine four chunks into one mesh.
// The world package implements this by retaining what the worker pool
// staged for each chunk.
type MeshSource interface {
	StagedBuffers(c *chunk.Chunk) (opaque, transparent mesher.Buffers, ok bool)
}

// Batch is one 2x2 group of chunks and its combined GPU meshes.
type Batch struct {
	BX, BZ int32
	Slots  [2][2]*chunk.Chunk

	Dirty bool

	CombinedOpaque      Drawable
	CombinedTransparent Drawable

	inDirtyQueue bool
	dirtyNext    *Batch
}

// Origin returns the batch's world-space chunk-grid origin (its (0,0) slot
// coordinate, in chunk units).
func (b *Batch) Origin() (cx, cz int32) {
	return b.BX * 2, b.BZ * 2
}

// Batcher owns the chained hash table of batches and the rebuild queue.
type Batcher struct {
	batches map[[2]int32]*Batch

	dirtyHead, dirtyTail *Batch

	uploader Uploader
	source   MeshSource
}

// New creates an empty batcher.
func New(uploader Uploader, source MeshSource) *Batcher {
	return &Batcher{
		batches:  make(map[[2]int32]*Batch),
		uploader: uploader,
		source:   source,
	}
}

func batchCoord(cx, cz int32) [2]int32 {
	return [2]int32{
		int32(mathutil.FloorDiv(int(cx), 2)),
		int32(mathutil.FloorDiv(int(cz), 2)),
	}
}

func slotIndex(cx, cz int32) (int, int) {
	return mathutil.FloorMod(int(cx), 2), mathutil.FloorMod(int(cz), 2)
}

func (bt *Batcher) findOrCreate(cx, cz int32) *Batch {
	key := batchCoord(cx, cz)
	if b, ok := bt.batches[key]; ok {
		return b
	}
	if len(bt.batches) >= MaxCount {
		return nil // table full: chunk renders unbatched via the world-direct fallback
	}
	b := &Batch{BX: key[0], BZ: key[1]}
	bt.batches[key] = b
	return b
}

// RegisterChunk places c into its batch's 2x2 slot and marks the batch dirty.
func (bt *Batcher) RegisterChunk(c *chunk.Chunk) {
	b := bt.findOrCreate(c.CX, c.CZ)
	if b == nil {
		return
	}
	sx, sz := slotIndex(c.CX, c.CZ)
	b.Slots[sx][sz] = c
	bt.markDirty(b)
}

// UnregisterChunk clears c's slot in its batch and marks the batch dirty.
func (bt *Batcher) UnregisterChunk(c *chunk.Chunk) {
	key := batchCoord(c.CX, c.CZ)
	b, ok := bt.batches[key]
	if !ok {
		return
	}
	sx, sz := slotIndex(c.CX, c.CZ)
	b.Slots[sx][sz] = nil
	bt.markDirty(b)
}

// Invalidate marks the batch containing (cx, cz) dirty, if it exists.
func (bt *Batcher) Invalidate(cx, cz int32) {
	if b, ok := bt.batches[batchCoord(cx, cz)]; ok {
		bt.markDirty(b)
	}
}

func (bt *Batcher) markDirty(b *Batch) {
	b.Dirty = true
	if b.inDirtyQueue {
		return
	}
	b.inDirtyQueue = true
	if bt.dirtyTail == nil {
		bt.dirtyHead, bt.dirtyTail = b, b
		return
	}
	bt.dirtyTail.dirtyNext = b
	bt.dirtyTail = b
}

// Update rebuilds up to maxRebuilds dirty batches.
func (bt *Batcher) Update(maxRebuilds int) {
	for i := 0; i < maxRebuilds && bt.dirtyHead != nil; i++ {
		b := bt.dirtyHead
		bt.dirtyHead = b.dirtyNext
		if bt.dirtyHead == nil {
			bt.dirtyTail = nil
		}
		b.dirtyNext = nil
		b.inDirtyQueue = false

		if b.Dirty {
			bt.rebuild(b)
			b.Dirty = false
		}
	}
}

// rebuild combines the batch's 4 chunk meshes into one opaque and one
// transparent GPU mesh, offsetting each chunk's vertices by its position
// relative to the batch origin.
func (bt *Batcher) rebuild(b *Batch) {
	originCX, originCZ := b.Origin()

	var opaqueVerts []mesher.Vertex
	var opaqueIdx []uint32
	var transVerts []mesher.Vertex
	var transIdx []uint32

	for sx := 0; sx < 2; sx++ {
		for sz := 0; sz < 2; sz++ {
			c := b.Slots[sx][sz]
			if c == nil {
				continue
			}
			opaque, transparent, ok := bt.source.StagedBuffers(c)
			if !ok {
				continue
			}

			offX := float32((c.CX - originCX) * chunk.Size)
			offZ := float32((c.CZ - originCZ) * chunk.Size)

			base := uint32(len(opaqueVerts))
			for _, v := range opaque.Vertices {
				v.X += offX
				v.Z += offZ
				opaqueVerts = append(opaqueVerts, v)
			}
			for _, idx := range opaque.Indices {
				opaqueIdx = append(opaqueIdx, idx+base)
			}

			tbase := uint32(len(transVerts))
			for _, v := range transparent.Vertices {
				v.X += offX
				v.Z += offZ
				transVerts = append(transVerts, v)
			}
			for _, idx := range transparent.Indices {
				transIdx = append(transIdx, idx+tbase)
			}
		}
	}

	if b.CombinedOpaque != nil {
		b.CombinedOpaque.Delete()
		b.CombinedOpaque = nil
	}
	if b.CombinedTransparent != nil {
		b.CombinedTransparent.Delete()
		b.CombinedTransparent = nil
	}
	if len(opaqueVerts) > 0 {
		b.CombinedOpaque = bt.uploader.Upload(opaqueVerts, opaqueIdx)
	}
	if len(transVerts) > 0 {
		b.CombinedTransparent = bt.uploader.Upload(transVerts, transIdx)
	}
}

// Count returns the number of registered batches.
func (bt *Batcher) Count() int { return len(bt.batches) }

// BatchAt returns the batch registered for the chunk at (cx, cz), if any.
func (bt *Batcher) BatchAt(cx, cz int32) (*Batch, bool) {
	b, ok := bt.batches[batchCoord(cx, cz)]
	return b, ok
}
