// Package decay implements the leaf-decay scheduler: when a wood block is
// removed, nearby leaves are enqueued with a randomized timer and, on
// firing, turn to air unless a bounded search still finds supporting wood.
package decay

import (
	"voxelcore/internal/core/block"
	"voxelcore/pkg/mathutil"
)

// Range is the Chebyshev distance around a removed wood block within which
// leaves are enqueued for decay.
const Range = 4

// QueueCap bounds the scheduler: over-cap enqueues are dropped since decay
// is a visual cleanup, not correctness-critical.
const QueueCap = 256

// MaxBFSSteps bounds the wood-proximity search run when an entry fires.
const MaxBFSSteps = 4

// Accessor is the minimal world surface the scheduler needs.
type Accessor interface {
	GetBlock(wx, wy, wz int) block.Type
	SetBlock(wx, wy, wz int, t block.Type) bool
}

type entry struct {
	x, y, z int
	fireAt  float64
}

// Scheduler tracks pending leaf-decay timers.
type Scheduler struct {
	queue   []entry
	pending map[[3]int]bool
	elapsed float64
	rng     *mathutil.SeededRNG
}

// New creates an empty scheduler. seed only affects the randomized decay
// timers, not correctness.
func New(seed int64) *Scheduler {
	return &Scheduler{
		pending: make(map[[3]int]bool),
		rng:     mathutil.NewSeededRNG(seed),
	}
}

// OnWoodRemoved enqueues every leaf cell within Chebyshev distance Range of
// (wx,wy,wz) with a randomized timer in [0.5, 2.0] seconds.
func (s *Scheduler) OnWoodRemoved(acc Accessor, wx, wy, wz int) {
	for dx := -Range; dx <= Range; dx++ {
		for dy := -Range; dy <= Range; dy++ {
			for dz := -Range; dz <= Range; dz++ {
				x, y, z := wx+dx, wy+dy, wz+dz
				if !acc.GetBlock(x, y, z).IsLeaves() {
					continue
				}
				s.enqueue(x, y, z, s.rng.NextFloat(0.5, 2.0))
			}
		}
	}
}

func (s *Scheduler) enqueue(x, y, z int, delay float64) {
	key := [3]int{x, y, z}
	if s.pending[key] {
		return
	}
	if len(s.queue) >= QueueCap {
		return // cap reached: drop silently, not correctness-critical
	}
	s.pending[key] = true
	s.queue = append(s.queue, entry{x, y, z, s.elapsed + delay})
}

// Update advances the scheduler clock by dt seconds and fires any entries
// whose timer has elapsed.
func (s *Scheduler) Update(acc Accessor, dt float32) {
	s.elapsed += float64(dt)

	var due []entry
	remaining := s.queue[:0]
	for _, e := range s.queue {
		if s.elapsed < e.fireAt {
			remaining = append(remaining, e)
			continue
		}
		due = append(due, e)
	}
	// Entries fire only after the queue is rebuilt, so neighbors that fire
	// enqueues are appended to it instead of being overwritten.
	s.queue = remaining
	for _, e := range due {
		delete(s.pending, [3]int{e.x, e.y, e.z})
		s.fire(acc, e.x, e.y, e.z)
	}
}

// fire runs the bounded wood-proximity BFS; if no wood is found within
// MaxBFSSteps, the leaf turns to air and its 26 leaf neighbors chain-react.
func (s *Scheduler) fire(acc Accessor, x, y, z int) {
	if !acc.GetBlock(x, y, z).IsLeaves() {
		return
	}
	if s.hasNearbyWood(acc, x, y, z) {
		return
	}

	acc.SetBlock(x, y, z, block.Air)

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				nx, ny, nz := x+dx, y+dy, z+dz
				if acc.GetBlock(nx, ny, nz).IsLeaves() {
					s.enqueue(nx, ny, nz, s.rng.NextFloat(0.5, 2.0))
				}
			}
		}
	}
}

func (s *Scheduler) hasNearbyWood(acc Accessor, x, y, z int) bool {
	type cell struct{ x, y, z, depth int }
	visited := map[[3]int]bool{{x, y, z}: true}
	queue := []cell{{x, y, z, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if acc.GetBlock(cur.x, cur.y, cur.z).IsWood() {
			return true
		}
		if cur.depth >= MaxBFSSteps {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					if dx == 0 && dy == 0 && dz == 0 {
						continue
					}
					nx, ny, nz := cur.x+dx, cur.y+dy, cur.z+dz
					key := [3]int{nx, ny, nz}
					if visited[key] {
						continue
					}
					t := acc.GetBlock(nx, ny, nz)
					if !t.IsLeaves() && !t.IsWood() {
						continue
					}
					visited[key] = true
					queue = append(queue, cell{nx, ny, nz, cur.depth + 1})
				}
			}
		}
	}
	return false
}

// Len returns the number of pending decay entries.
func (s *Scheduler) Len() int { return len(s.queue) }
