package world

import (
	"math"

	"voxelcore/internal/core/block"

	"github.com/go-gl/mathgl/mgl32"
)

// RaycastHit describes the first solid cell a ray crosses.
type RaycastHit struct {
	Hit       bool
	Position  mgl32.Vec3
	BlockPos  [3]int
	Normal    mgl32.Vec3
	BlockType block.Type
	Distance  float32
}

// Raycast walks a 3D-DDA grid from origin along direction, up to maxDistance
// blocks, purely on top of World.GetBlock (§4.11).
func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32) RaycastHit {
	var result RaycastHit

	dir := direction.Normalize()

	x := int(math.Floor(float64(origin.X())))
	y := int(math.Floor(float64(origin.Y())))
	z := int(math.Floor(float64(origin.Z())))

	stepX, stepY, stepZ := 1, 1, 1
	if dir.X() < 0 {
		stepX = -1
	}
	if dir.Y() < 0 {
		stepY = -1
	}
	if dir.Z() < 0 {
		stepZ = -1
	}

	tMaxX, tDeltaX := axisStep(dir.X(), origin.X(), x, stepX)
	tMaxY, tDeltaY := axisStep(dir.Y(), origin.Y(), y, stepY)
	tMaxZ, tDeltaZ := axisStep(dir.Z(), origin.Z(), z, stepZ)

	var normal mgl32.Vec3
	distance := float32(0)

	for distance < maxDistance {
		bt := w.GetBlock(x, y, z)
		if bt.IsSolid() {
			result.Hit = true
			result.BlockPos = [3]int{x, y, z}
			result.Position = origin.Add(dir.Mul(distance))
			result.Normal = normal
			result.BlockType = bt
			result.Distance = distance
			return result
		}

		switch {
		case tMaxX < tMaxY && tMaxX < tMaxZ:
			x += stepX
			distance = tMaxX
			tMaxX += tDeltaX
			normal = mgl32.Vec3{float32(-stepX), 0, 0}
		case tMaxY < tMaxZ:
			y += stepY
			distance = tMaxY
			tMaxY += tDeltaY
			normal = mgl32.Vec3{0, float32(-stepY), 0}
		default:
			z += stepZ
			distance = tMaxZ
			tMaxZ += tDeltaZ
			normal = mgl32.Vec3{0, 0, float32(-stepZ)}
		}
	}

	return result
}

// axisStep computes the DDA t_max/t_delta pair for one axis.
func axisStep(dir, origin float32, cell, step int) (tMax, tDelta float32) {
	if dir == 0 {
		return 1e30, 1e30
	}
	if step > 0 {
		tMax = (float32(cell+1) - origin) / dir
	} else {
		tMax = (float32(cell) - origin) / dir
	}
	tDelta = float32(math.Abs(1.0 / float64(dir)))
	return tMax, tDelta
}

// PlacementPosition returns the cell adjacent to hit on the side the ray
// entered from -- where a newly placed block would go.
func PlacementPosition(hit RaycastHit) [3]int {
	pos := hit.BlockPos
	switch {
	case hit.Normal == mgl32.Vec3{0, 1, 0}:
		pos[1]++
	case hit.Normal == mgl32.Vec3{0, -1, 0}:
		pos[1]--
	case hit.Normal == mgl32.Vec3{1, 0, 0}:
		pos[0]++
	case hit.Normal == mgl32.Vec3{-1, 0, 0}:
		pos[0]--
	case hit.Normal == mgl32.Vec3{0, 0, 1}:
		pos[2]++
	case hit.Normal == mgl32.Vec3{0, 0, -1}:
		pos[2]--
	}
	return pos
}
