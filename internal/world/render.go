package world

import (
	"voxelcore/internal/batch"
	"voxelcore/internal/core/chunk"
)

// RenderOpaque collects the opaque drawables visible from camera, per §6's
// render_opaque contract: batches first, chunks as a fallback. timeOfDay
// and underwater are accepted for signature parity with the material
// uniforms a caller will bind (u_ambient_light, u_fog_*, u_underwater) --
// this package only supplies the geometry, not the uniform values.
func (w *World) RenderOpaque(timeOfDay float32, cameraPos [3]float32, underwater bool) []batch.Drawn {
	return w.batcher.CollectOpaque(w, w.centerCX, w.centerCZ, w.cfg.ViewDistance)
}

// RenderTransparent collects the transparent drawables visible from camera,
// sorted back-to-front by squared XZ distance to cameraPos.
func (w *World) RenderTransparent(timeOfDay float32, cameraPos [3]float32, underwater bool) []batch.Drawn {
	return w.batcher.CollectTransparent(w, w.centerCX, w.centerCZ, w.cfg.ViewDistance, float64(cameraPos[0]), float64(cameraPos[2]))
}

// WorldToChunk converts a world block coordinate to its owning chunk
// coordinate.
func WorldToChunk(wx, wz int) (cx, cz int) {
	return chunk.WorldToChunk(wx, wz)
}

// WorldToLocal converts a world block coordinate into its chunk coordinate
// plus the local coordinate within that chunk.
func WorldToLocal(wx, wz int) (cx, cz, lx, lz int) {
	return chunk.WorldToLocal(wx, wz)
}
