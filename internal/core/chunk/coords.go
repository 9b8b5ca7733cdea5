package chunk

import "voxelcore/pkg/mathutil"

// WorldToChunk converts a world block coordinate to its owning chunk
// coordinate using floored division, so negative coordinates do not
// collapse toward zero.
func WorldToChunk(wx, wz int) (cx, cz int) {
	return mathutil.FloorDiv(wx, Size), mathutil.FloorDiv(wz, Size)
}

// WorldToLocal converts a world block coordinate into (chunk coordinate,
// local coordinate in [0,15]).
func WorldToLocal(wx, wz int) (cx, cz, lx, lz int) {
	cx, cz = WorldToChunk(wx, wz)
	lx = mathutil.FloorMod(wx, Size)
	lz = mathutil.FloorMod(wz, Size)
	return
}

// Hash produces a deterministic per-chunk seed from its coordinates,
// used to seed worm tunnel placement, dungeon rolls, and other
// per-chunk-seeded features without needing the world seed threaded
// through every call site.
func Hash(cx, cz int32) uint64 {
	return mathutil.HashCoords(int(cx), 0, int(cz))
}
