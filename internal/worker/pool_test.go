package worker

import (
	"sync"
	"testing"
	"time"

	"voxelcore/internal/core/chunk"
	"voxelcore/internal/mesher"
)

type recordingProcessor struct {
	mu        sync.Mutex
	processed []*chunk.Chunk
}

func (r *recordingProcessor) Process(c *chunk.Chunk) *mesher.Data {
	r.mu.Lock()
	r.processed = append(r.processed, c)
	r.mu.Unlock()
	return &mesher.Data{}
}

func TestClampWorkerCount(t *testing.T) {
	cases := map[int]int{0: 2, 1: 2, 4: 2, 8: 6, 32: 16, 1000: 16}
	for cores, want := range cases {
		if got := ClampWorkerCount(cores); got != want {
			t.Errorf("ClampWorkerCount(%d) = %d, want %d", cores, got, want)
		}
	}
}

func TestPushOrdersByAscendingPriority(t *testing.T) {
	p := New(0, 8, &recordingProcessor{})
	p.Push(chunk.New(5, 5), 50)
	p.Push(chunk.New(1, 1), 10)
	p.Push(chunk.New(3, 3), 30)

	if p.queue[0].Priority != 10 || p.queue[1].Priority != 30 || p.queue[2].Priority != 50 {
		t.Fatalf("queue not ordered: %+v", p.queue)
	}
}

func TestPushFailsWhenFull(t *testing.T) {
	p := New(0, 2, &recordingProcessor{})
	if !p.Push(chunk.New(0, 0), 1) {
		t.Fatalf("expected first push to succeed")
	}
	if !p.Push(chunk.New(1, 0), 2) {
		t.Fatalf("expected second push to succeed")
	}
	if p.Push(chunk.New(2, 0), 3) {
		t.Fatalf("expected push to fail once at capacity")
	}
}

func TestWorkerProcessesQueuedTasks(t *testing.T) {
	proc := &recordingProcessor{}
	p := New(2, 16, proc)
	p.Start()
	defer p.Stop()

	for i := 0; i < 5; i++ {
		p.Push(chunk.New(int32(i), 0), i)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		completed := p.DrainCompleted(100)
		if len(completed) >= 5 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for tasks to complete, got %d", len(completed))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStopUnblocksWorkers(t *testing.T) {
	p := New(3, 16, &recordingProcessor{})
	p.Start()

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Stop did not return promptly")
	}
}
