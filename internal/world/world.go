// Package world orchestrates everything else: the chunk hash map, the
// worker pool, the batcher, and the water/decay schedulers, wired together
// by World.Update per frame.
package world

import (
	"runtime"
	"sync"

	"voxelcore/internal/batch"
	"voxelcore/internal/core/block"
	"voxelcore/internal/core/chunk"
	"voxelcore/internal/decay"
	"voxelcore/internal/light"
	"voxelcore/internal/logging"
	"voxelcore/internal/mesher"
	"voxelcore/internal/terrain"
	"voxelcore/internal/water"
	"voxelcore/internal/worker"
)

// MeshUploader builds a GPU-resident mesh from raw vertex/index buffers.
// The render package supplies the concrete implementation.
type MeshUploader interface {
	Upload(vertices []mesher.Vertex, indices []uint32) GpuDrawable
}

// GpuDrawable is a GPU mesh that can both render and release itself.
type GpuDrawable interface {
	chunk.GpuMesh
	Draw()
}

// ChunkReadyHandler is notified exactly once per chunk, right after its
// first GPU upload (spawning, etc.).
type ChunkReadyHandler interface {
	OnChunkReady(c *chunk.Chunk)
}

type mesherUploaderAdapter struct{ u MeshUploader }

func (a mesherUploaderAdapter) Upload(v []mesher.Vertex, idx []uint32) chunk.GpuMesh {
	if a.u == nil {
		return nil
	}
	return a.u.Upload(v, idx)
}

type batchUploaderAdapter struct{ u MeshUploader }

func (a batchUploaderAdapter) Upload(v []mesher.Vertex, idx []uint32) batch.Drawable {
	if a.u == nil {
		return nil
	}
	return a.u.Upload(v, idx)
}

// identityAtlas is substituted when no real texture atlas has been wired in
// yet (tests, headless tools); every face maps to the full [0,1] UV square.
type identityAtlas struct{}

func (identityAtlas) UV(t block.Type, f mesher.Face) (float32, float32, float32, float32) {
	return 0, 0, 1, 1
}

// World owns the chunk hash map and every subsystem that operates on it.
type World struct {
	cfg    Config
	log    *logging.Logger
	params terrain.Params

	mu     sync.RWMutex
	chunks map[[2]int32]*chunk.Chunk

	dirty chunk.DirtyList

	gen      *terrain.Generator
	meshPool sync.Pool
	atlas    mesher.Atlas
	uploader mesherUploaderAdapter

	pool       *worker.Pool
	batcher    *batch.Batcher
	waterSched *water.Scheduler
	decaySched *decay.Scheduler

	stagedMu sync.Mutex
	staged   map[string]*mesher.Data

	onChunkReady ChunkReadyHandler

	gameTick           uint64
	centerCX, centerCZ int32
}

// New creates a World ready to have Update called on it. atlas and uploader
// may be nil for headless/test use; an identity atlas and a no-op uploader
// are substituted.
func New(cfg Config, atlas mesher.Atlas, uploader MeshUploader, ready ChunkReadyHandler) *World {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = worker.ClampWorkerCount(runtime.NumCPU())
	}
	if atlas == nil {
		atlas = identityAtlas{}
	}

	w := &World{
		cfg:          cfg,
		log:          logging.New("world"),
		params:       terrain.DefaultParams(),
		chunks:       make(map[[2]int32]*chunk.Chunk),
		gen:          terrain.New(cfg.Seed),
		atlas:        atlas,
		uploader:     mesherUploaderAdapter{u: uploader},
		waterSched:   water.New(),
		decaySched:   decay.New(cfg.Seed),
		staged:       make(map[string]*mesher.Data),
		onChunkReady: ready,
	}
	w.meshPool.New = func() interface{} { return mesher.New() }
	w.batcher = batch.New(batchUploaderAdapter{u: uploader}, w)
	w.pool = worker.New(cfg.WorkerCount, cfg.WorkerQueueCapacity, w)
	w.pool.Start()

	return w
}

// Close stops the worker pool and releases every chunk's GPU resources.
func (w *World) Close() {
	w.pool.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.chunks {
		c.Dispose()
	}
	w.chunks = make(map[[2]int32]*chunk.Chunk)
}

// SetViewDistance updates the streaming radius.
func (w *World) SetViewDistance(d int) { w.cfg.ViewDistance = d }

// SetBatchRebuilds updates the per-frame batch-rebuild budget.
func (w *World) SetBatchRebuilds(n int) { w.cfg.BatchRebuildsPerFrame = n }

// SetMaxUploads updates the per-frame GPU-upload budget.
func (w *World) SetMaxUploads(n int) { w.cfg.MaxUploadsPerFrame = n }

// GetChunk returns the chunk at (cx, cz), if loaded. Implements
// batch.WorldView.
func (w *World) GetChunk(cx, cz int32) (*chunk.Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[[2]int32{cx, cz}]
	return c, ok
}

func (w *World) getOrCreateChunk(cx, cz int32) (*chunk.Chunk, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := [2]int32{cx, cz}
	if c, ok := w.chunks[key]; ok {
		return c, false
	}
	c := chunk.New(cx, cz)
	w.chunks[key] = c
	return c, true
}

// GetBlock returns the block at world coordinates, or Air for any cell
// outside a loaded chunk.
func (w *World) GetBlock(wx, wy, wz int) block.Type {
	cx, cz, lx, lz := chunk.WorldToLocal(wx, wz)
	c, ok := w.GetChunk(int32(cx), int32(cz))
	if !ok {
		return block.Air
	}
	return c.GetBlock(lx, wy, lz)
}

// GetMetadata returns the metadata at world coordinates, or zero for any
// cell outside a loaded chunk.
func (w *World) GetMetadata(wx, wy, wz int) block.Metadata {
	cx, cz, lx, lz := chunk.WorldToLocal(wx, wz)
	c, ok := w.GetChunk(int32(cx), int32(cz))
	if !ok {
		return 0
	}
	return c.GetMetadata(lx, wy, lz)
}

// SetMetadata writes metadata at world coordinates if the owning chunk is
// loaded.
func (w *World) SetMetadata(wx, wy, wz int, m block.Metadata) {
	cx, cz, lx, lz := chunk.WorldToLocal(wx, wz)
	c, ok := w.GetChunk(int32(cx), int32(cz))
	if !ok {
		return
	}
	c.SetMetadata(lx, wy, lz, m)
}

// SetBlock writes a block at world coordinates, relights and remeshes its
// chunk, and notifies the water scheduler and batcher. Implements
// decay.Accessor and water.Accessor.
func (w *World) SetBlock(wx, wy, wz int, t block.Type) bool {
	cx, cz, lx, lz := chunk.WorldToLocal(wx, wz)
	c, ok := w.GetChunk(int32(cx), int32(cz))
	if !ok {
		return false
	}

	before := c.GetBlock(lx, wy, lz)
	c.SetBlock(lx, wy, lz, t)

	light.Propagate(c)
	c.NeedsRemesh = true
	w.dirty.Push(c)

	w.waterSched.OnBlockChange(w, wx, wy, wz)
	if t == block.Water {
		w.waterSched.Schedule(wx, wy, wz, 1)
	}
	if t == block.Air && before.IsWood() {
		w.decaySched.OnWoodRemoved(w, wx, wy, wz)
	}

	w.batcher.Invalidate(int32(cx), int32(cz))
	return true
}

// Update runs one frame's worth of world maintenance: tick the water and
// leaf-decay schedulers, drain finished worker builds, stream chunks into
// view, remesh dirty chunks, and let the batcher rebuild. dt is the frame
// time in seconds, driving the decay scheduler's clock.
func (w *World) Update(centerCX, centerCZ int32, dt float32) {
	w.centerCX, w.centerCZ = centerCX, centerCZ
	w.gameTick++

	if w.gameTick%2 == 0 {
		w.waterSched.ProcessTick(w)
	}
	w.decaySched.Update(w, dt)

	w.drainCompleted()
	w.streamChunks(centerCX, centerCZ)
	w.remeshDirty()
	w.batcher.Update(w.cfg.BatchRebuildsPerFrame)
}

func (w *World) drainCompleted() {
	completed := w.pool.DrainCompleted(w.cfg.MaxUploadsPerFrame)
	for _, cc := range completed {
		c := cc.Chunk

		w.stagedMu.Lock()
		w.staged[c.ID()] = cc.Staged
		w.stagedMu.Unlock()

		if w.uploader.u != nil {
			if len(cc.Staged.Opaque.Vertices) > 0 {
				c.OpaqueMesh = w.uploader.Upload(cc.Staged.Opaque.Vertices, cc.Staged.Opaque.Indices)
			}
			if len(cc.Staged.Transparent.Vertices) > 0 {
				c.TransparentMesh = w.uploader.Upload(cc.Staged.Transparent.Vertices, cc.Staged.Transparent.Indices)
			}
		}

		c.SetState(chunk.Complete)
		w.batcher.RegisterChunk(c)

		if !c.HasSpawned {
			c.HasSpawned = true
			if w.onChunkReady != nil {
				w.onChunkReady.OnChunkReady(c)
			}
		}
	}
}

func (w *World) streamChunks(centerCX, centerCZ int32) {
	vd := int32(w.cfg.ViewDistance)
	for dx := -vd; dx <= vd; dx++ {
		for dz := -vd; dz <= vd; dz++ {
			cx, cz := centerCX+dx, centerCZ+dz
			c, _ := w.getOrCreateChunk(cx, cz)
			if c.State() != chunk.Empty || c.Queued {
				continue
			}
			priority := int(dx*dx + dz*dz)
			if w.pool.Push(c, priority) {
				c.Queued = true
			}
		}
	}
}

func (w *World) remeshDirty() {
	w.dirty.Drain(func(c *chunk.Chunk) bool {
		if c.State() != chunk.Complete {
			return false
		}
		if !c.NeedsRemesh {
			return true
		}

		m := w.meshPool.Get().(*mesher.Mesher)
		data := m.GenerateStaged(c, w.GetBlock, w.atlas)
		w.meshPool.Put(m)

		w.stagedMu.Lock()
		w.staged[c.ID()] = data
		w.stagedMu.Unlock()

		if w.uploader.u != nil {
			if c.OpaqueMesh != nil {
				c.OpaqueMesh.Delete()
				c.OpaqueMesh = nil
			}
			if c.TransparentMesh != nil {
				c.TransparentMesh.Delete()
				c.TransparentMesh = nil
			}
			if len(data.Opaque.Vertices) > 0 {
				c.OpaqueMesh = w.uploader.Upload(data.Opaque.Vertices, data.Opaque.Indices)
			}
			if len(data.Transparent.Vertices) > 0 {
				c.TransparentMesh = w.uploader.Upload(data.Transparent.Vertices, data.Transparent.Indices)
			}
		}

		w.batcher.Invalidate(c.CX, c.CZ)
		c.NeedsRemesh = false
		return true
	})
}

// Process implements worker.Processor: terrain, lighting, then a staged
// mesh build, run entirely off the main thread.
func (w *World) Process(c *chunk.Chunk) *mesher.Data {
	w.gen.GenerateChunk(c, w.params)

	m := w.meshPool.Get().(*mesher.Mesher)
	data := m.GenerateStaged(c, w.GetBlock, w.atlas)
	w.meshPool.Put(m)
	return data
}

// StagedBuffers implements batch.MeshSource by returning the last staged
// raw buffers recorded for c.
func (w *World) StagedBuffers(c *chunk.Chunk) (opaque, transparent mesher.Buffers, ok bool) {
	w.stagedMu.Lock()
	defer w.stagedMu.Unlock()
	data, found := w.staged[c.ID()]
	if !found {
		return mesher.Buffers{}, mesher.Buffers{}, false
	}
	return data.Opaque, data.Transparent, true
}

// UnloadFarChunks removes chunks outside radius of (centerCX, centerCZ),
// releasing their GPU resources and unregistering them from the batcher.
// The original engine never evicted chunks during play; see the design
// notes for why this world keeps the hook available but unused by default.
func (w *World) UnloadFarChunks(centerCX, centerCZ int32, radius int) int {
	w.mu.Lock()
	var toRemove []*chunk.Chunk
	for key, c := range w.chunks {
		dx := int(key[0] - centerCX)
		dz := int(key[1] - centerCZ)
		if dx*dx+dz*dz > radius*radius {
			toRemove = append(toRemove, c)
			delete(w.chunks, key)
		}
	}
	w.mu.Unlock()

	for _, c := range toRemove {
		w.batcher.UnregisterChunk(c)
		c.Dispose()
		w.stagedMu.Lock()
		delete(w.staged, c.ID())
		w.stagedMu.Unlock()
	}
	return len(toRemove)
}

// Stats is a lightweight snapshot of world-level counters, useful for a
// debug overlay or log line.
type Stats struct {
	LoadedChunks int
	DirtyChunks  int
	BatchCount   int
	WaterPending int
	DecayPending int
}

// GetStats returns a point-in-time snapshot of world-level counters.
func (w *World) GetStats() Stats {
	w.mu.RLock()
	loaded := len(w.chunks)
	w.mu.RUnlock()

	return Stats{
		LoadedChunks: loaded,
		DirtyChunks:  w.dirty.Len(),
		BatchCount:   w.batcher.Count(),
		WaterPending: w.waterSched.Len(),
		DecayPending: w.decaySched.Len(),
	}
}
