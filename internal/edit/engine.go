// Package edit applies batched sculpting edits to the voxel field. Each edit
// blends a signed-distance primitive into the existing field with a smooth
// union or subtraction; the engine works out which chunks an edit overlaps
// and rewrites every touched chunk in a single decode/modify/encode cycle.
package edit

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl32"

	"voxelfield/internal/field"
	"voxelfield/internal/profiling"
	"voxelfield/internal/sdf"
)

// ErrInvalidSmoothingFactor rejects smoothing factors outside (0, 1].
var ErrInvalidSmoothingFactor = errors.New("smoothing factor outside (0, 1]")

// Mode selects how an edit combines with the existing field.
type Mode uint8

const (
	// ModeUnion sculpts material in: result = SmoothMin(existing, d, k).
	ModeUnion Mode = iota
	// ModeSubtract carves material out: result = SmoothMax(existing, -d, k).
	ModeSubtract
)

func (m Mode) String() string {
	switch m {
	case ModeUnion:
		return "union"
	case ModeSubtract:
		return "subtract"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Edit is one pending modification: a shape, a blend mode and the smoothing
// factor controlling the fillet width. Edits are transient; they are
// submitted, applied and discarded.
type Edit struct {
	Shape     sdf.Primitive
	Mode      Mode
	Smoothing float32
}

// Engine accumulates edits per batch and applies them chunk by chunk.
// Distinct chunks are rewritten in parallel; work on one chunk is serialized
// by the chunk's own lock, and each chunk is decoded and re-encoded exactly
// once per batch no matter how many edits touch it.
type Engine struct {
	chunks *field.ChunkMap
	pool   pond.Pool
}

// NewEngine creates an engine over the given chunk map.
func NewEngine(chunks *field.ChunkMap) *Engine {
	return &Engine{
		chunks: chunks,
		pool:   pond.NewPool(runtime.NumCPU()),
	}
}

// Close releases the engine's worker pool after draining in-flight work.
func (e *Engine) Close() {
	e.pool.StopAndWait()
}

// Apply validates and applies a batch of edits. Validation is atomic: if any
// edit carries a smoothing factor outside (0, 1] the whole batch is rejected
// before any chunk is touched. Within the batch, edits touching the same
// chunk apply in submission order; sequential blending is order-sensitive,
// so that order is part of the contract.
func (e *Engine) Apply(edits ...Edit) error {
	defer profiling.Track("edit.Apply")()

	for i, ed := range edits {
		if !(ed.Smoothing > 0 && ed.Smoothing <= 1) {
			return fmt.Errorf("edit %d: %w (k=%v)", i, ErrInvalidSmoothingFactor, ed.Smoothing)
		}
	}

	// Group edits by overlapped chunk, preserving submission order per
	// chunk. An edit overlapping no creatable chunk is a no-op.
	groups := make(map[field.ChunkPosition][]Edit)
	var order []field.ChunkPosition
	for _, ed := range edits {
		lo, hi := paddedBounds(ed.Shape)
		clo, chi := field.ChunkSpan(lo, hi)
		for cy := clo.Y; cy <= chi.Y; cy++ {
			for cz := clo.Z; cz <= chi.Z; cz++ {
				for cx := clo.X; cx <= chi.X; cx++ {
					pos := field.ChunkPosition{X: cx, Y: cy, Z: cz}
					if !e.chunks.InBounds(pos) {
						continue
					}
					if _, seen := groups[pos]; !seen {
						order = append(order, pos)
					}
					groups[pos] = append(groups[pos], ed)
				}
			}
		}
	}

	group := e.pool.NewGroup()
	for _, pos := range order {
		pos := pos
		group.Submit(func() {
			e.applyToChunk(pos, groups[pos])
		})
	}
	return group.Wait()
}

// applyToChunk rewrites one chunk under its lock: a single decode, every edit
// blended in order at voxel centers, a single re-encode.
func (e *Engine) applyToChunk(pos field.ChunkPosition, edits []Edit) {
	c := e.chunks.GetOrCreate(pos)
	if c == nil {
		return
	}
	origin := pos.Origin()

	touched := [3][2]int{{field.ChunkSide, -1}, {field.ChunkSide, -1}, {field.ChunkSide, -1}}
	changed := c.Update(func(b *field.Block) bool {
		any := false
		for _, ed := range edits {
			wlo, whi := paddedBounds(ed.Shape)
			lo, hi, ok := localBounds(origin, wlo, whi)
			if !ok {
				continue
			}
			for a := 0; a < 3; a++ {
				touched[a][0] = min(touched[a][0], lo[a])
				touched[a][1] = max(touched[a][1], hi[a])
			}
			k := ed.Smoothing
			for y := lo[1]; y <= hi[1]; y++ {
				for z := lo[2]; z <= hi[2]; z++ {
					for x := lo[0]; x <= hi[0]; x++ {
						cur := b.At(x, y, z)
						d := ed.Shape.Distance(voxelCenter(origin, x, y, z))
						var value float32
						switch ed.Mode {
						case ModeSubtract:
							value = sdf.SmoothMax(cur.Value, -d, k)
						default:
							value = sdf.SmoothMin(cur.Value, d, k)
						}
						next := field.Voxel{Value: value, Material: cur.Material}
						if !next.Equal(cur) {
							b.Set(x, y, z, next)
							any = true
						}
					}
				}
			}
		}
		return any
	})

	if changed {
		e.invalidateNeighbors(pos, touched)
	}
}

// invalidateNeighbors marks resident face neighbors dirty when border voxels
// changed, since their apron samples went stale.
func (e *Engine) invalidateNeighbors(pos field.ChunkPosition, touched [3][2]int) {
	mark := func(dx, dy, dz int32) {
		if n, ok := e.chunks.Get(pos.Add(dx, dy, dz)); ok {
			n.MarkDirty()
		}
	}
	if touched[0][0] == 0 {
		mark(-1, 0, 0)
	}
	if touched[0][1] == field.ChunkSide-1 {
		mark(1, 0, 0)
	}
	if touched[1][0] == 0 {
		mark(0, -1, 0)
	}
	if touched[1][1] == field.ChunkSide-1 {
		mark(0, 1, 0)
	}
	if touched[2][0] == 0 {
		mark(0, 0, -1)
	}
	if touched[2][1] == field.ChunkSide-1 {
		mark(0, 0, 1)
	}
}

// paddedBounds widens the primitive's AABB by one voxel per side so the
// blend fillet reaches the cells the surface crosses at the box edge.
func paddedBounds(p sdf.Primitive) (mgl32.Vec3, mgl32.Vec3) {
	lo, hi := p.Bounds()
	pad := mgl32.Vec3{field.VoxelSize, field.VoxelSize, field.VoxelSize}
	return lo.Sub(pad), hi.Add(pad)
}

// localBounds converts a world-space AABB into the inclusive local voxel
// range it overlaps inside the chunk at origin, clipped to the chunk extent.
func localBounds(origin, wlo, whi mgl32.Vec3) (lo, hi [3]int, ok bool) {
	for a := 0; a < 3; a++ {
		l := int(math.Floor(float64((wlo[a] - origin[a]) / field.VoxelSize)))
		h := int(math.Ceil(float64((whi[a]-origin[a])/field.VoxelSize))) - 1
		if l < 0 {
			l = 0
		}
		if h > field.ChunkSide-1 {
			h = field.ChunkSide - 1
		}
		if l > h {
			return lo, hi, false
		}
		lo[a], hi[a] = l, h
	}
	return lo, hi, true
}

// voxelCenter returns the world-space sample point of a local voxel:
// distances are evaluated at cell centers.
func voxelCenter(origin mgl32.Vec3, x, y, z int) mgl32.Vec3 {
	return mgl32.Vec3{
		origin.X() + (float32(x)+0.5)*field.VoxelSize,
		origin.Y() + (float32(y)+0.5)*field.VoxelSize,
		origin.Z() + (float32(z)+0.5)*field.VoxelSize,
	}
}
