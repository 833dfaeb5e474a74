package field

import "sync"

// Chunk owns one fixed-size cubic block of voxels. At rest the block is held
// run-length encoded; editing decodes it, mutates the dense form and encodes
// it back in a single cycle.
//
// The per-chunk mutex serializes all access to one chunk's storage. Distinct
// chunks never share state, so work on different chunks runs in parallel
// freely.
type Chunk struct {
	pos ChunkPosition

	mu    sync.Mutex
	runs  []Run
	dirty bool
}

func newChunk(pos ChunkPosition) *Chunk {
	return &Chunk{
		pos: pos,
		runs: []Run{
			{Voxel: Voxel{Value: FarOutside}, Count: ChunkVolume},
		},
		// A fresh chunk has no extractable surface yet; it becomes
		// interesting to the mesher once an edit lands.
	}
}

// Position returns the chunk's location in chunk-grid space.
func (c *Chunk) Position() ChunkPosition {
	return c.pos
}

// Dense decodes the current compressed state into a fresh block. Nothing is
// memoized; the result always reflects the chunk as of the call.
func (c *Chunk) Dense() *Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Decode(c.runs)
}

// Runs returns a copy of the current run list.
func (c *Chunk) Runs() []Run {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Run, len(c.runs))
	copy(out, c.runs)
	return out
}

// RunCount returns the number of runs in the resting representation.
func (c *Chunk) RunCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.runs)
}

// Update runs fn against the chunk's dense form under the chunk lock. If fn
// reports a change the block is re-encoded and the chunk marked dirty. This
// is the one decode/modify/encode cycle; batching callers apply any number
// of modifications inside a single fn.
func (c *Chunk) Update(fn func(b *Block) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := Decode(c.runs)
	if !fn(b) {
		return false
	}
	c.runs = Encode(b)
	c.dirty = true
	return true
}

// Apply blends fn over every voxel whose local coordinates fall inside
// [lo, hi] (inclusive), clipped to the chunk's own extent. Out-of-range
// bounds are clipped silently; edits straddling chunk borders are normal.
// The chunk is re-encoded and marked dirty only if some voxel changed.
func (c *Chunk) Apply(lo, hi [3]int, fn func(x, y, z int, cur Voxel) Voxel) bool {
	for a := 0; a < 3; a++ {
		if lo[a] < 0 {
			lo[a] = 0
		}
		if hi[a] > ChunkSide-1 {
			hi[a] = ChunkSide - 1
		}
		if lo[a] > hi[a] {
			return false
		}
	}
	return c.Update(func(b *Block) bool {
		changed := false
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				for x := lo[0]; x <= hi[0]; x++ {
					cur := b.At(x, y, z)
					next := fn(x, y, z, cur)
					if !next.Equal(cur) {
						b.Set(x, y, z, next)
						changed = true
					}
				}
			}
		}
		return changed
	})
}

// Dirty reports whether the chunk changed since the meshing consumer last
// took the flag.
func (c *Chunk) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// TakeDirty returns the dirty flag and clears it. The external meshing
// consumer polls this as its "needs remesh" signal.
func (c *Chunk) TakeDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.dirty
	c.dirty = false
	return d
}

// MarkDirty forces the dirty flag, used when a neighboring chunk's border
// voxels changed and this chunk's apron samples went stale.
func (c *Chunk) MarkDirty() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

func (c *Chunk) replaceRuns(runs []Run) {
	c.mu.Lock()
	c.runs = runs
	c.dirty = true
	c.mu.Unlock()
}
