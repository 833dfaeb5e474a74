package field

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkPosition identifies a chunk in chunk-grid space (not world units).
// It is a value type and is used directly as the ChunkMap key.
type ChunkPosition struct {
	X, Y, Z int32
}

func (p ChunkPosition) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Add returns the position offset by (dx, dy, dz) chunks.
func (p ChunkPosition) Add(dx, dy, dz int32) ChunkPosition {
	return ChunkPosition{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Origin returns the world-space position of the chunk's minimum corner.
func (p ChunkPosition) Origin() mgl32.Vec3 {
	const span = ChunkSide * VoxelSize
	return mgl32.Vec3{
		float32(p.X) * span,
		float32(p.Y) * span,
		float32(p.Z) * span,
	}
}

// PositionAt returns the chunk containing the given world-space point.
func PositionAt(world mgl32.Vec3) ChunkPosition {
	return ChunkPosition{
		X: int32(floorDiv(floorf(world.X()/VoxelSize), ChunkSide)),
		Y: int32(floorDiv(floorf(world.Y()/VoxelSize), ChunkSide)),
		Z: int32(floorDiv(floorf(world.Z()/VoxelSize), ChunkSide)),
	}
}

// ChunkSpan returns the inclusive chunk-grid range covered by a world-space
// AABB. A box whose face lies exactly on a chunk boundary spans both chunks.
func ChunkSpan(min, max mgl32.Vec3) (lo, hi ChunkPosition) {
	lo = PositionAt(min)
	hi = PositionAt(max)
	return
}

// floorDiv divides rounding toward negative infinity, so chunk coordinates
// stay correct for negative world positions.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorf(v float32) int {
	return int(math.Floor(float64(v)))
}
