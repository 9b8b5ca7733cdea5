// Package water implements the flow scheduler: a deduplicated, freelist
// backed tick queue that advances water cells toward their source-derived
// steady state (§4.10).
package water

import (
	"voxelcore/internal/core/block"
)

// MaxPerTick bounds how many eligible entries process_tick drains in one
// call, so a large flood never stalls a frame.
const MaxPerTick = 100

// Accessor is the minimal world surface the scheduler needs.
type Accessor interface {
	GetBlock(x, y, z int) block.Type
	SetBlock(x, y, z int, t block.Type) bool
	GetMetadata(x, y, z int) block.Metadata
	SetMetadata(x, y, z int, m block.Metadata)
}

type pos struct{ x, y, z int }

type node struct {
	p      pos
	tick   uint64
	inUse  bool
	qIndex int
}

// Scheduler tracks pending water-flow updates.
type Scheduler struct {
	nodes   []node
	free    []int
	index   map[pos]int
	order   []int // indices into nodes, in schedule order
	current uint64
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{index: make(map[pos]int)}
}

// Schedule queues (x,y,z) for processing delay ticks from now, keeping the
// earlier of the two ticks if an entry already exists for that cell.
func (s *Scheduler) Schedule(x, y, z int, delay uint64) {
	p := pos{x, y, z}
	tick := s.current + delay

	if idx, ok := s.index[p]; ok {
		if tick < s.nodes[idx].tick {
			s.nodes[idx].tick = tick
		}
		return
	}

	var idx int
	if len(s.free) > 0 {
		idx = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		s.nodes[idx] = node{p: p, tick: tick, inUse: true}
	} else {
		idx = len(s.nodes)
		s.nodes = append(s.nodes, node{p: p, tick: tick, inUse: true})
	}
	s.index[p] = idx
	s.order = append(s.order, idx)
}

func (s *Scheduler) release(idx int) {
	p := s.nodes[idx].p
	s.nodes[idx].inUse = false
	delete(s.index, p)
	s.free = append(s.free, idx)
}

var neighborOffsets6 = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

var horizontalOffsets = [4][3]int{
	{1, 0, 0}, {-1, 0, 0}, {0, 0, 1}, {0, 0, -1},
}

// OnBlockChange schedules an update for each of the 6 neighbors that are
// currently water.
func (s *Scheduler) OnBlockChange(acc Accessor, x, y, z int) {
	for _, off := range neighborOffsets6 {
		nx, ny, nz := x+off[0], y+off[1], z+off[2]
		if acc.GetBlock(nx, ny, nz) == block.Water {
			s.Schedule(nx, ny, nz, 1)
		}
	}
}

// ProcessTick advances the scheduler's tick counter and processes up to
// MaxPerTick eligible entries in queue order.
func (s *Scheduler) ProcessTick(acc Accessor) {
	s.current++

	processed := 0
	var due []pos
	remaining := s.order[:0]
	for _, idx := range s.order {
		if processed >= MaxPerTick {
			remaining = append(remaining, idx)
			continue
		}
		n := &s.nodes[idx]
		if !n.inUse {
			continue
		}
		if n.tick > s.current {
			remaining = append(remaining, idx)
			continue
		}

		due = append(due, n.p)
		s.release(idx)
		processed++
	}
	// Cells run only after the queue is rebuilt, so entries scheduled while
	// processing them are appended to it instead of being overwritten.
	s.order = remaining
	for _, p := range due {
		s.processCell(acc, p.x, p.y, p.z)
	}
}

func (s *Scheduler) processCell(acc Accessor, x, y, z int) {
	if acc.GetBlock(x, y, z) != block.Water {
		return
	}
	meta := acc.GetMetadata(x, y, z)
	level := meta.WaterLevel()

	if !s.hasSource(acc, x, y, z, level) {
		acc.SetBlock(x, y, z, block.Air)
		s.OnBlockChange(acc, x, y, z)
		return
	}

	below := acc.GetBlock(x, y-1, z)
	if below == block.Air {
		acc.SetBlock(x, y-1, z, block.Water)
		acc.SetMetadata(x, y-1, z, block.NewWaterMetadata(1, true))
		s.Schedule(x, y-1, z, 1)
		return // flowing down suppresses horizontal spread this tick
	}
	if below == block.Water {
		acc.SetMetadata(x, y, z, block.NewWaterMetadata(level, true))
	}

	if level >= block.WaterMinLevel || below == block.Air {
		return
	}

	for _, off := range horizontalOffsets {
		nx, nz := x+off[0], z+off[2]
		neighbor := acc.GetBlock(nx, y, nz)
		newLevel := level + 1

		switch neighbor {
		case block.Air:
			acc.SetBlock(nx, y, nz, block.Water)
			acc.SetMetadata(nx, y, nz, block.NewWaterMetadata(newLevel, false))
			s.Schedule(nx, y, nz, 1)
		case block.Water:
			existing := acc.GetMetadata(nx, y, nz).WaterLevel()
			if newLevel < existing {
				acc.SetMetadata(nx, y, nz, block.NewWaterMetadata(newLevel, false))
				s.Schedule(nx, y, nz, 1)
			}
		}
	}
}

// hasSource reports whether (x,y,z) still has a valid upstream supply: a
// true source level is always its own support, otherwise water directly
// above, or a horizontally adjacent cell with a strictly lower level (by
// more than 1).
func (s *Scheduler) hasSource(acc Accessor, x, y, z, level int) bool {
	if level == block.WaterSourceLevel {
		return true
	}
	if acc.GetBlock(x, y+1, z) == block.Water {
		return true
	}
	for _, off := range horizontalOffsets {
		nx, nz := x+off[0], z+off[2]
		if acc.GetBlock(nx, y, nz) != block.Water {
			continue
		}
		if acc.GetMetadata(nx, y, nz).WaterLevel() < level-1 {
			return true
		}
	}
	return false
}

// Len returns the number of pending entries.
func (s *Scheduler) Len() int { return len(s.order) }
