package field

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEnsureAroundSync(t *testing.T) {
	m := NewChunkMap()
	s := NewStreamer(m)
	defer s.Close()

	s.EnsureAroundSync(mgl32.Vec3{0, 0, 0}, 1)
	if m.Count() != 27 {
		t.Errorf("resident %d chunks, want 27", m.Count())
	}
	if _, ok := m.Get(ChunkPosition{X: -1, Y: -1, Z: -1}); !ok {
		t.Error("corner chunk missing")
	}
}

func TestEnsureAroundAsyncConverges(t *testing.T) {
	m := NewChunkMap()
	s := NewStreamer(m)
	defer s.Close()

	s.EnsureAround(mgl32.Vec3{100, 100, 100}, 1)

	deadline := time.Now().Add(5 * time.Second)
	for m.Count() < 27 || s.Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("async streaming stalled: %d resident, %d pending", m.Count(), s.Pending())
		}
		time.Sleep(time.Millisecond)
	}
	if m.Count() != 27 {
		t.Errorf("resident %d chunks, want 27", m.Count())
	}
}

func TestEnsureAroundRespectsBounds(t *testing.T) {
	m := NewBoundedChunkMap(ChunkPosition{}, ChunkPosition{})
	s := NewStreamer(m)
	defer s.Close()

	s.EnsureAroundSync(mgl32.Vec3{0, 0, 0}, 2)
	if m.Count() != 1 {
		t.Errorf("resident %d chunks, want 1 (bounds allow only the origin)", m.Count())
	}
}

func TestStreamerEvictOutside(t *testing.T) {
	m := NewChunkMap()
	s := NewStreamer(m)
	defer s.Close()

	s.EnsureAroundSync(mgl32.Vec3{0, 0, 0}, 2)
	before := m.Count()
	removed := s.EvictOutside(mgl32.Vec3{0, 0, 0}, 1)
	if removed != before-27 {
		t.Errorf("evicted %d, want %d", removed, before-27)
	}
	if m.Count() != 27 {
		t.Errorf("resident %d after evict, want 27", m.Count())
	}
}
