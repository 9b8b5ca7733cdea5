// Package chunk defines the chunk data model: the dense block grid, its
// generation state machine, and the intrusive dirty-list link used for
// bounded main-thread remeshing.
package chunk

import (
	"fmt"
	"sync/atomic"

	"voxelcore/internal/core/block"
)

const (
	// Size is the chunk's X and Z extent in blocks.
	Size = 16
	// Height is the chunk's Y extent in blocks (world height is fixed).
	Height = 256
	// LightMax is the brightest skylight value.
	LightMax = 15

	blocksPerChunk = Size * Height * Size
)

// State is a chunk's position in the Empty -> Generating -> Ready ->
// Complete lifecycle. It only ever advances monotonically within one
// generation cycle; a later edit does not regress it, it only sets
// NeedsRemesh.
type State int32

const (
	Empty State = iota
	Generating
	Ready
	Complete
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Generating:
		return "Generating"
	case Ready:
		return "Ready"
	case Complete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// GpuMesh is the minimal handle surface a Chunk needs from its GPU mesh
// collaborator: enough to release resources on teardown without the core
// chunk package depending on any rendering backend.
type GpuMesh interface {
	Delete()
}

// Chunk owns one 16x256x16 block volume and its generation/render state.
// While State == Generating, only the owning worker goroutine may touch
// Blocks/Metadata/Light; once State reaches Ready, only the main goroutine
// may mutate mesh handles, matching the hand-off discipline in the
// concurrency model (no per-chunk lock is used -- the state field and
// queue ordering are the synchronization).
type Chunk struct {
	CX, CZ int32

	Blocks   []block.Type
	Metadata []block.Metadata
	Light    []uint8

	// heightMap[x*Size+z] is the Y of the highest non-air block in that
	// column, or -1 if the column is entirely air. Maintained incrementally.
	heightMap []int32

	solidBlockCount int

	state State

	NeedsRemesh              bool
	MeshGenerated            bool
	TransparentMeshGenerated bool
	HasSpawned               bool
	InDirtyList              bool

	// Queued guards against pushing the same Empty chunk onto the worker
	// pool twice while it is still sitting in the queue.
	Queued bool

	// DirtyNext is the intrusive singly-linked dirty-list pointer.
	DirtyNext *Chunk

	OpaqueMesh      GpuMesh
	TransparentMesh GpuMesh
}

// New allocates an Empty chunk at the given chunk coordinates.
func New(cx, cz int32) *Chunk {
	c := &Chunk{
		CX:        cx,
		CZ:        cz,
		Blocks:    make([]block.Type, blocksPerChunk),
		Metadata:  make([]block.Metadata, blocksPerChunk),
		Light:     make([]uint8, blocksPerChunk),
		heightMap: make([]int32, Size*Size),
		state:     Empty,
	}
	for i := range c.heightMap {
		c.heightMap[i] = -1
	}
	return c
}

// ID returns a stable string key for this chunk, suitable for map/registry
// use by the batcher and renderer.
func (c *Chunk) ID() string {
	return fmt.Sprintf("%d,%d", c.CX, c.CZ)
}

// State returns the chunk's current lifecycle state.
func (c *Chunk) State() State {
	return State(atomic.LoadInt32((*int32)(&c.state)))
}

// SetState sets the chunk's lifecycle state.
func (c *Chunk) SetState(s State) {
	atomic.StoreInt32((*int32)(&c.state), int32(s))
}

func index(x, y, z int) int {
	return (x*Height+y)*Size + z
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Height && z >= 0 && z < Size
}

// GetBlock returns the block at local coordinates, or Air if out of bounds.
func (c *Chunk) GetBlock(x, y, z int) block.Type {
	if !inBounds(x, y, z) {
		return block.Air
	}
	return c.Blocks[index(x, y, z)]
}

// GetMetadata returns the metadata at local coordinates.
func (c *Chunk) GetMetadata(x, y, z int) block.Metadata {
	if !inBounds(x, y, z) {
		return 0
	}
	return c.Metadata[index(x, y, z)]
}

// SetMetadata sets the metadata at local coordinates without touching the
// block type or solid-block accounting.
func (c *Chunk) SetMetadata(x, y, z int, m block.Metadata) {
	if !inBounds(x, y, z) {
		return
	}
	c.Metadata[index(x, y, z)] = m
}

// SetBlock writes a block at local coordinates, incrementally maintaining
// SolidBlockCount and the height map so both stay O(1) to query. Returns
// false if the coordinates are out of bounds.
func (c *Chunk) SetBlock(x, y, z int, t block.Type) bool {
	return c.SetBlockWithMetadata(x, y, z, t, 0)
}

// SetBlockWithMetadata is SetBlock plus an explicit metadata payload (used
// by terrain generation and the water scheduler, which must set both
// atomically).
func (c *Chunk) SetBlockWithMetadata(x, y, z int, t block.Type, m block.Metadata) bool {
	if !inBounds(x, y, z) {
		return false
	}
	idx := index(x, y, z)
	old := c.Blocks[idx]
	wasSolid := !old.IsAir()
	isSolid := !t.IsAir()

	if wasSolid && !isSolid {
		c.solidBlockCount--
	} else if !wasSolid && isSolid {
		c.solidBlockCount++
	}

	c.Blocks[idx] = t
	c.Metadata[idx] = m

	c.updateHeightMap(x, y, z, isSolid)
	return true
}

func (c *Chunk) updateHeightMap(x, y, z int, isSolid bool) {
	hi := x*Size + z
	cur := c.heightMap[hi]
	if isSolid {
		if int32(y) > cur {
			c.heightMap[hi] = int32(y)
		}
		return
	}
	if int32(y) == cur {
		// Highest block removed: rescan downward for the new top. Rare
		// relative to edits (only triggered when the column's top changes).
		newTop := int32(-1)
		for yy := y - 1; yy >= 0; yy-- {
			if !c.Blocks[index(x, yy, z)].IsAir() {
				newTop = int32(yy)
				break
			}
		}
		c.heightMap[hi] = newTop
	}
}

// GetHeight returns the Y of the highest non-air block in column (x,z), or -1
// if the column is empty.
func (c *Chunk) GetHeight(x, z int) int {
	if x < 0 || x >= Size || z < 0 || z >= Size {
		return -1
	}
	return int(c.heightMap[x*Size+z])
}

// SolidBlockCount returns the number of non-air blocks in the chunk in O(1).
func (c *Chunk) SolidBlockCount() int { return c.solidBlockCount }

// IsEmpty reports whether the chunk currently contains no solid blocks.
// Maintained as an invariant of SetBlock/SetBlockWithMetadata: never
// recomputed by scanning.
func (c *Chunk) IsEmpty() bool { return c.solidBlockCount == 0 }

// GetLight returns the skylight value at local coordinates.
func (c *Chunk) GetLight(x, y, z int) uint8 {
	if !inBounds(x, y, z) {
		return LightMax
	}
	return c.Light[index(x, y, z)]
}

// SetLight sets the skylight value at local coordinates.
func (c *Chunk) SetLight(x, y, z int, v uint8) {
	if !inBounds(x, y, z) {
		return
	}
	c.Light[index(x, y, z)] = v
}

// ForEachSolidBlock visits every non-air block in the chunk.
func (c *Chunk) ForEachSolidBlock(fn func(x, y, z int, t block.Type)) {
	for x := 0; x < Size; x++ {
		for z := 0; z < Size; z++ {
			top := int(c.heightMap[x*Size+z])
			for y := 0; y <= top; y++ {
				if t := c.Blocks[index(x, y, z)]; !t.IsAir() {
					fn(x, y, z, t)
				}
			}
		}
	}
}

// Dispose releases GPU resources. Safe to call multiple times.
func (c *Chunk) Dispose() {
	if c.OpaqueMesh != nil {
		c.OpaqueMesh.Delete()
		c.OpaqueMesh = nil
	}
	if c.TransparentMesh != nil {
		c.TransparentMesh.Delete()
		c.TransparentMesh = nil
	}
}
