package field

import "math"

const (
	// ChunkSide is the number of voxels per chunk edge. Chunks are cubes,
	// so a chunk holds ChunkSide^3 voxels.
	ChunkSide = 32

	// ChunkVolume is the total voxel count of one chunk (32768).
	ChunkVolume = ChunkSide * ChunkSide * ChunkSide

	// 32 = 2^5, so local coordinates pack into branchless shifts:
	//   idx = x | (z<<5) | (y<<10)
	shiftZ = 5
	shiftY = 10
	mask5  = 31
)

// VoxelSize is the edge length of one voxel in world units.
const VoxelSize float32 = 1.0

// FarOutside is the distance value a lazily created chunk is seeded with:
// every sample starts far outside any surface.
const FarOutside float32 = 10

// Material tags a voxel for the renderer. The field core carries it through
// untouched.
type Material uint8

// Voxel is a single field sample: a signed distance to the nearest surface
// (negative inside, positive outside, zero on the surface) plus a material.
type Voxel struct {
	Value    float32
	Material Material
}

// Equal reports bit-for-bit equality. Run-length runs split on this, not on
// float comparison, so +0/-0 and NaN payloads never collapse into one run
// and round trips stay exact.
func (v Voxel) Equal(o Voxel) bool {
	return math.Float32bits(v.Value) == math.Float32bits(o.Value) && v.Material == o.Material
}

// Index converts local coordinates (0..31 each) to the linear block index.
func Index(x, y, z int) int {
	return x | z<<shiftZ | y<<shiftY
}

// Coords is the inverse of Index.
func Coords(i int) (x, y, z int) {
	x = i & mask5
	z = (i >> shiftZ) & mask5
	y = (i >> shiftY) & mask5
	return
}
