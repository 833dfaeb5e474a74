package field

import "sync"

// DefaultBound is the per-axis chunk coordinate limit of an unbounded-for-
// practical-purposes world.
const DefaultBound = 1 << 30

// ChunkMap owns every resident chunk, keyed by position. It is the only way
// to reach chunk storage: callers borrow a *Chunk for the duration of one
// edit or read and must re-look it up afterwards, because chunks can be
// removed concurrently with being referenced.
type ChunkMap struct {
	mu       sync.RWMutex
	chunks   map[ChunkPosition]*Chunk
	modCount uint64

	// Inclusive coordinate bounds. Positions outside are never
	// materialized; edits there are silently skipped.
	min, max ChunkPosition
}

// NewChunkMap creates a chunk map with effectively unbounded coordinates.
func NewChunkMap() *ChunkMap {
	return NewBoundedChunkMap(
		ChunkPosition{X: -DefaultBound, Y: -DefaultBound, Z: -DefaultBound},
		ChunkPosition{X: DefaultBound, Y: DefaultBound, Z: DefaultBound},
	)
}

// NewBoundedChunkMap creates a chunk map that only materializes chunks with
// coordinates inside [min, max] per axis.
func NewBoundedChunkMap(min, max ChunkPosition) *ChunkMap {
	return &ChunkMap{
		chunks: make(map[ChunkPosition]*Chunk, 512),
		min:    min,
		max:    max,
	}
}

// InBounds reports whether pos is a creatable chunk coordinate.
func (m *ChunkMap) InBounds(pos ChunkPosition) bool {
	return pos.X >= m.min.X && pos.X <= m.max.X &&
		pos.Y >= m.min.Y && pos.Y <= m.max.Y &&
		pos.Z >= m.min.Z && pos.Z <= m.max.Z
}

// GetOrCreate returns the chunk at pos, creating an empty far-outside chunk
// if absent. It returns nil only for out-of-bounds positions.
func (m *ChunkMap) GetOrCreate(pos ChunkPosition) *Chunk {
	if !m.InBounds(pos) {
		return nil
	}
	m.mu.RLock()
	c, ok := m.chunks[pos]
	m.mu.RUnlock()
	if ok {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Double-check: another goroutine may have created it while we were
	// waiting for the write lock.
	if existing, ok := m.chunks[pos]; ok {
		return existing
	}
	c = newChunk(pos)
	m.chunks[pos] = c
	m.modCount++
	return c
}

// Get is the non-creating lookup for read-only consumers. Absence is a
// normal outcome, not an error.
func (m *ChunkMap) Get(pos ChunkPosition) (*Chunk, bool) {
	m.mu.RLock()
	c, ok := m.chunks[pos]
	m.mu.RUnlock()
	return c, ok
}

// DenseAt decodes the chunk at pos for a read-only consumer. It does not
// materialize absent chunks.
func (m *ChunkMap) DenseAt(pos ChunkPosition) (*Block, bool) {
	c, ok := m.Get(pos)
	if !ok {
		return nil, false
	}
	return c.Dense(), true
}

// Remove drops the chunk at pos entirely. Outstanding borrowed handles must
// not be dereferenced afterwards. Returns whether a chunk was resident.
func (m *ChunkMap) Remove(pos ChunkPosition) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chunks[pos]; !ok {
		return false
	}
	delete(m.chunks, pos)
	m.modCount++
	return true
}

// Restore installs a chunk with the given resting run list, replacing any
// resident chunk at pos. The restored chunk starts dirty so the meshing
// consumer re-extracts it. Used by snapshot import.
func (m *ChunkMap) Restore(pos ChunkPosition, runs []Run) *Chunk {
	if !m.InBounds(pos) {
		return nil
	}
	c := m.GetOrCreate(pos)
	c.replaceRuns(runs)
	return c
}

// Count returns the number of resident chunks.
func (m *ChunkMap) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

// ModCount increases on every chunk add or remove; consumers use it to
// detect residency churn cheaply.
func (m *ChunkMap) ModCount() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modCount
}

// Positions returns a snapshot of all resident chunk positions.
func (m *ChunkMap) Positions() []ChunkPosition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ChunkPosition, 0, len(m.chunks))
	for pos := range m.chunks {
		out = append(out, pos)
	}
	return out
}

// EvictOutside removes every chunk farther than radius chunks (Chebyshev
// distance) from center and returns how many were removed. Policy of when to
// call this belongs to the host; the map only exposes the mechanism.
func (m *ChunkMap) EvictOutside(center ChunkPosition, radius int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for pos := range m.chunks {
		if chebyshev(pos, center) > radius {
			delete(m.chunks, pos)
			m.modCount++
			removed++
		}
	}
	return removed
}

func chebyshev(a, b ChunkPosition) int {
	d := absInt(int(a.X - b.X))
	if dy := absInt(int(a.Y - b.Y)); dy > d {
		d = dy
	}
	if dz := absInt(int(a.Z - b.Z)); dz > d {
		d = dz
	}
	return d
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
