package world

// Config holds the tunables that govern one World's per-frame work budget
// and streaming radius.
type Config struct {
	ViewDistance        int
	MaxUploadsPerFrame  int
	BatchRebuildsPerFrame int
	WorkerCount         int
	WorkerQueueCapacity int
	Seed                int64
}

// DefaultConfig returns the tunables a freshly started game uses.
func DefaultConfig(seed int64) Config {
	return Config{
		ViewDistance:          8,
		MaxUploadsPerFrame:    4,
		BatchRebuildsPerFrame: 2,
		WorkerCount:           0, // 0 means "derive from runtime.NumCPU()"
		WorkerQueueCapacity:   512,
		Seed:                  seed,
	}
}
