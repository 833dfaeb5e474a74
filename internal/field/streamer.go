package field

import (
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"voxelfield/internal/profiling"
)

// Streamer keeps a region of the field resident around a focus point. It
// implements the mechanism half of chunk streaming: "ensure resident" and
// "may be unloaded" are driven by the host, which owns the policy.
type Streamer struct {
	jobs       chan ChunkPosition
	pending    map[ChunkPosition]struct{}
	pendingMu  sync.Mutex
	maxPending int

	maxJobsPerCall int

	chunks *ChunkMap
}

// NewStreamer starts background residency workers over the given map.
func NewStreamer(chunks *ChunkMap) *Streamer {
	s := &Streamer{
		jobs:           make(chan ChunkPosition, 4096),
		pending:        make(map[ChunkPosition]struct{}),
		maxJobsPerCall: 2048,
		maxPending:     16384,
		chunks:         chunks,
	}

	workers := max(runtime.NumCPU(), 1)
	for i := 0; i < workers; i++ {
		go s.worker()
	}

	return s
}

// Close stops the background workers.
func (s *Streamer) Close() {
	close(s.jobs)
}

func (s *Streamer) worker() {
	for pos := range s.jobs {
		s.chunks.GetOrCreate(pos)
		s.pendingMu.Lock()
		delete(s.pending, pos)
		s.pendingMu.Unlock()
	}
}

// EnsureAroundSync materializes every chunk within radius chunks of the
// focus point before returning.
func (s *Streamer) EnsureAroundSync(focus mgl32.Vec3, radius int) {
	defer profiling.Track("field.EnsureAroundSync")()
	center := PositionAt(focus)
	for dy := -radius; dy <= radius; dy++ {
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				s.chunks.GetOrCreate(center.Add(int32(dx), int32(dy), int32(dz)))
			}
		}
	}
}

// EnsureAround queues residency work for chunks around the focus point,
// nearest shells first, and returns without waiting. Repeated calls while
// the focus moves converge on full coverage.
func (s *Streamer) EnsureAround(focus mgl32.Vec3, radius int) {
	defer profiling.Track("field.EnsureAround")()
	center := PositionAt(focus)

	jobsPushed := 0
	for r := 0; r <= radius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				for dx := -r; dx <= r; dx++ {
					// shell only: skip the interior handled by smaller r
					if absInt(dx) != r && absInt(dy) != r && absInt(dz) != r {
						continue
					}
					if s.request(center.Add(int32(dx), int32(dy), int32(dz))) {
						jobsPushed++
						if jobsPushed >= s.maxJobsPerCall {
							return
						}
					}
				}
			}
		}
	}
}

// request respects the pending cap and reports whether the position was
// enqueued.
func (s *Streamer) request(pos ChunkPosition) bool {
	if !s.chunks.InBounds(pos) {
		return false
	}
	if _, ok := s.chunks.Get(pos); ok {
		return false
	}

	s.pendingMu.Lock()
	if _, ok := s.pending[pos]; ok {
		s.pendingMu.Unlock()
		return false
	}
	if s.maxPending > 0 && len(s.pending) >= s.maxPending {
		s.pendingMu.Unlock()
		return false
	}
	s.pending[pos] = struct{}{}
	s.pendingMu.Unlock()

	select {
	case s.jobs <- pos:
		return true
	default:
		// queue full: rollback
		s.pendingMu.Lock()
		delete(s.pending, pos)
		s.pendingMu.Unlock()
		return false
	}
}

// Pending returns the number of queued-but-unfinished residency jobs.
func (s *Streamer) Pending() int {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return len(s.pending)
}

// EvictOutside unloads chunks farther than radius chunks from the focus
// point and returns how many were removed.
func (s *Streamer) EvictOutside(focus mgl32.Vec3, radius int) int {
	defer profiling.Track("field.EvictOutside")()
	return s.chunks.EvictOutside(PositionAt(focus), radius)
}
