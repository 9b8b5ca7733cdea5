package terrain

// OreTable describes one ore's generation band.
type OreTable struct {
	Frequency  float64
	MinY, MaxY int
}

// Params is the plain configuration a Generator fills a chunk with, passed
// to GenerateChunk by value. Worker tasks carry only the chunk and its
// priority, not a copy of Params: the world's Process method, which workers
// call, passes the world's own Params to the generator.
type Params struct {
	HeightOffset float64
	HeightScale  float64
	Octaves      int
	Frequency    float64
	Lacunarity   float64
	Persistence  float64

	CaveThreshold float64
	CaveFrequency float64
	CaveOctaves   int
	CaveMinDepth  float64

	DirtDepth    int
	SubsoilDepth int

	BedrockSolid int
	BedrockStart int
	DeepStoneY   int

	Coal    OreTable
	Iron    OreTable
	Gold    OreTable
	Diamond OreTable

	ClayFrequency   float64
	ClayMinY        int
	ClayMaxY        int
	GravelFrequency float64
	GravelMinY      int
	GravelMaxY      int

	DungeonEnabled   bool
	DungeonFrequency float64
	DungeonMinY      int
	DungeonMaxY      int
	DungeonSizeMin   int
	DungeonSizeMax   int

	TunnelRadiusMin   float64
	TunnelRadiusMax   float64
	TunnelSegments    int
	TunnelsPerChunk   int
	RoomRadiusMin     float64
	RoomRadiusMax     float64
	RoomsPerChunk     int

	TreeDecorations bool
}

// DefaultParams returns the tunables used by a freshly created world unless
// overridden.
func DefaultParams() Params {
	return Params{
		HeightOffset: 160,
		HeightScale:  24,
		Octaves:      4,
		Frequency:    0.01,
		Lacunarity:   2.0,
		Persistence:  0.5,

		CaveThreshold: 0.55,
		CaveFrequency: 0.04,
		CaveOctaves:   3,
		CaveMinDepth:  4,

		DirtDepth:    4,
		SubsoilDepth: 6,

		BedrockSolid: 1,
		BedrockStart: 5,
		DeepStoneY:   40,

		Coal:    OreTable{Frequency: 0.35, MinY: 5, MaxY: 128},
		Iron:    OreTable{Frequency: 0.25, MinY: 5, MaxY: 80},
		Gold:    OreTable{Frequency: 0.12, MinY: 5, MaxY: 40},
		Diamond: OreTable{Frequency: 0.05, MinY: 5, MaxY: 20},

		ClayFrequency:   0.3,
		ClayMinY:        60,
		ClayMaxY:        90,
		GravelFrequency: 0.3,
		GravelMinY:      5,
		GravelMaxY:      90,

		DungeonEnabled:   true,
		DungeonFrequency: 0.08,
		DungeonMinY:      10,
		DungeonMaxY:      70,
		DungeonSizeMin:   5,
		DungeonSizeMax:   9,

		TunnelRadiusMin: 2,
		TunnelRadiusMax: 4,
		TunnelSegments:  60,
		TunnelsPerChunk: 2,
		RoomRadiusMin:   4,
		RoomRadiusMax:   8,
		RoomsPerChunk:   1,

		TreeDecorations: false,
	}
}
