package render

import (
	"voxelcore/internal/core/block"
	"voxelcore/internal/mesher"
)

// gridSize is the atlas texture's side length in cells; each cell holds one
// 16x16 block texture.
const gridSize = 8

// cellOf maps a block type and face to a (col, row) cell in the atlas grid.
// Most blocks use one texture for every face; grass distinguishes
// top/side/bottom, and snow uses a separate bottom texture only.
func cellOf(t block.Type, f mesher.Face) (col, row int) {
	switch t {
	case block.Grass:
		switch f {
		case mesher.Top:
			return 1, 0
		case mesher.Bottom:
			return 2, 0
		default:
			return 3, 0
		}
	case block.Snow:
		switch f {
		case mesher.Bottom:
			return 2, 0
		default:
			return 4, 0
		}
	}

	idx := int(t)
	return idx % gridSize, idx / gridSize
}

// GridAtlas is a texture atlas where every block texture occupies a fixed
// cell in a gridSize x gridSize grid (§6's TextureAtlas contract). It
// requires no decoded image data: UV just addresses a cell, leaving actual
// pixel content to whatever texture the renderer binds alongside it.
type GridAtlas struct{}

// UV implements mesher.Atlas.
func (GridAtlas) UV(t block.Type, f mesher.Face) (u0, v0, u1, v1 float32) {
	col, row := cellOf(t, f)
	cell := float32(1) / float32(gridSize)
	u0 = float32(col) * cell
	v0 = float32(row) * cell
	return u0, v0, u0 + cell, v0 + cell
}
