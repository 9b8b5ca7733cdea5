package batch

import (
	"testing"

	"voxelcore/internal/core/chunk"
	"voxelcore/internal/mesher"
)

type fakeMesh struct {
	deleted bool
}

func (m *fakeMesh) Delete() { m.deleted = true }
func (m *fakeMesh) Draw()   {}

type fakeUploader struct{ uploads int }

func (u *fakeUploader) Upload(vertices []mesher.Vertex, indices []uint32) Drawable {
	u.uploads++
	return &fakeMesh{}
}

type fakeSource struct {
	buffers map[*chunk.Chunk][2]mesher.Buffers
}

func (s *fakeSource) StagedBuffers(c *chunk.Chunk) (mesher.Buffers, mesher.Buffers, bool) {
	b, ok := s.buffers[c]
	if !ok {
		return mesher.Buffers{}, mesher.Buffers{}, false
	}
	return b[0], b[1], true
}

func TestRegisterChunkGroupsInto2x2(t *testing.T) {
	bt := New(&fakeUploader{}, &fakeSource{buffers: map[*chunk.Chunk][2]mesher.Buffers{}})
	c00 := chunk.New(0, 0)
	c10 := chunk.New(1, 0)
	c01 := chunk.New(0, 1)
	c11 := chunk.New(1, 1)

	bt.RegisterChunk(c00)
	bt.RegisterChunk(c10)
	bt.RegisterChunk(c01)
	bt.RegisterChunk(c11)

	if bt.Count() != 1 {
		t.Fatalf("expected all 4 chunks in one batch, got %d batches", bt.Count())
	}
}

func TestNegativeCoordinatesUseFlooredDivision(t *testing.T) {
	bt := New(&fakeUploader{}, &fakeSource{buffers: map[*chunk.Chunk][2]mesher.Buffers{}})
	c := chunk.New(-1, -1)
	bt.RegisterChunk(c)

	b, ok := bt.BatchAt(-1, -1)
	if !ok {
		t.Fatalf("expected a batch to be registered")
	}
	if b.BX != -1 || b.BZ != -1 {
		t.Fatalf("expected floored batch coords (-1,-1), got (%d,%d)", b.BX, b.BZ)
	}
}

func TestUpdateRebuildsDirtyBatchAndClearsFlag(t *testing.T) {
	uploader := &fakeUploader{}
	src := &fakeSource{buffers: map[*chunk.Chunk][2]mesher.Buffers{}}
	bt := New(uploader, src)

	c := chunk.New(0, 0)
	src.buffers[c] = [2]mesher.Buffers{
		{Vertices: []mesher.Vertex{{}, {}, {}, {}}, Indices: []uint32{0, 1, 2, 0, 2, 3}},
		{},
	}
	bt.RegisterChunk(c)
	bt.Update(10)

	b, _ := bt.BatchAt(0, 0)
	if b.Dirty {
		t.Fatalf("expected batch to be clean after rebuild")
	}
	if uploader.uploads != 1 {
		t.Fatalf("expected exactly one upload (opaque only), got %d", uploader.uploads)
	}
	if b.CombinedOpaque == nil {
		t.Fatalf("expected a combined opaque mesh")
	}
}

func TestUnregisterMarksDirtyAndClearsSlot(t *testing.T) {
	bt := New(&fakeUploader{}, &fakeSource{buffers: map[*chunk.Chunk][2]mesher.Buffers{}})
	c := chunk.New(4, 4)
	bt.RegisterChunk(c)
	bt.Update(10)

	bt.UnregisterChunk(c)
	b, _ := bt.BatchAt(4, 4)
	if !b.Dirty {
		t.Fatalf("expected unregister to mark batch dirty")
	}
	sx, sz := slotIndex(c.CX, c.CZ)
	if b.Slots[sx][sz] != nil {
		t.Fatalf("expected slot to be cleared")
	}
}

func TestMaxRebuildsIsRespected(t *testing.T) {
	uploader := &fakeUploader{}
	src := &fakeSource{buffers: map[*chunk.Chunk][2]mesher.Buffers{}}
	bt := New(uploader, src)

	for i := int32(0); i < 6; i++ {
		c := chunk.New(i*2, 0)
		src.buffers[c] = [2]mesher.Buffers{
			{Vertices: []mesher.Vertex{{}, {}, {}}, Indices: []uint32{0, 1, 2}},
			{},
		}
		bt.RegisterChunk(c)
	}

	bt.Update(2)
	if uploader.uploads != 2 {
		t.Fatalf("expected exactly 2 rebuilds, got %d", uploader.uploads)
	}
}
