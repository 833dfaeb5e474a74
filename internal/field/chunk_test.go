package field

import "testing"

func TestNewChunkStartsFarOutside(t *testing.T) {
	c := newChunk(ChunkPosition{X: 1, Y: 2, Z: 3})
	if c.Dirty() {
		t.Error("fresh chunk should not be dirty")
	}
	b := c.Dense()
	for i := 0; i < ChunkVolume; i++ {
		if b[i].Value != FarOutside {
			t.Fatalf("voxel %d seeded with %v, want %v", i, b[i].Value, FarOutside)
		}
	}
}

func TestApplyClipsOutOfRangeBounds(t *testing.T) {
	c := newChunk(ChunkPosition{})
	changed := c.Apply([3]int{-5, -5, -5}, [3]int{100, 100, 100}, func(x, y, z int, cur Voxel) Voxel {
		return Voxel{Value: -1}
	})
	if !changed {
		t.Fatal("clipped apply over the full extent reported no change")
	}
	b := c.Dense()
	for i := 0; i < ChunkVolume; i++ {
		if b[i].Value != -1 {
			t.Fatalf("voxel %d not written: %v", i, b[i].Value)
		}
	}
	if total := RunTotal(c.Runs()); total != ChunkVolume {
		t.Errorf("run total %d after apply, want %d", total, ChunkVolume)
	}
}

func TestApplyEmptyIntersection(t *testing.T) {
	c := newChunk(ChunkPosition{})
	changed := c.Apply([3]int{40, 40, 40}, [3]int{50, 50, 50}, func(x, y, z int, cur Voxel) Voxel {
		return Voxel{Value: -1}
	})
	if changed {
		t.Error("bounds fully outside the chunk must be a no-op")
	}
	if c.Dirty() {
		t.Error("no-op apply must not mark the chunk dirty")
	}
}

func TestApplyPartialRegion(t *testing.T) {
	c := newChunk(ChunkPosition{})
	c.Apply([3]int{4, 4, 4}, [3]int{7, 7, 7}, func(x, y, z int, cur Voxel) Voxel {
		return Voxel{Value: -2}
	})
	b := c.Dense()
	if got := b.At(5, 5, 5).Value; got != -2 {
		t.Errorf("inside region: got %v, want -2", got)
	}
	if got := b.At(8, 8, 8).Value; got != FarOutside {
		t.Errorf("outside region: got %v, want %v", got, FarOutside)
	}
}

func TestTakeDirtyReturnsAndClears(t *testing.T) {
	c := newChunk(ChunkPosition{})
	if c.TakeDirty() {
		t.Error("fresh chunk reported dirty")
	}
	c.Apply([3]int{0, 0, 0}, [3]int{0, 0, 0}, func(x, y, z int, cur Voxel) Voxel {
		return Voxel{Value: -1}
	})
	if !c.TakeDirty() {
		t.Error("modified chunk should be dirty")
	}
	if c.TakeDirty() {
		t.Error("TakeDirty must clear the flag")
	}
}

func TestApplyIdentityStaysClean(t *testing.T) {
	c := newChunk(ChunkPosition{})
	before := c.Runs()
	changed := c.Apply([3]int{0, 0, 0}, [3]int{31, 31, 31}, func(x, y, z int, cur Voxel) Voxel {
		return cur
	})
	if changed || c.Dirty() {
		t.Error("identity apply must not dirty the chunk")
	}
	after := c.Runs()
	if len(before) != len(after) {
		t.Fatalf("run list changed: %d -> %d runs", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("run %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestDenseReflectsCurrentState(t *testing.T) {
	c := newChunk(ChunkPosition{})
	first := c.Dense()
	c.Apply([3]int{0, 0, 0}, [3]int{0, 0, 0}, func(x, y, z int, cur Voxel) Voxel {
		return Voxel{Value: -7}
	})
	second := c.Dense()
	if first.At(0, 0, 0).Value != FarOutside {
		t.Error("earlier decode must be an independent copy")
	}
	if second.At(0, 0, 0).Value != -7 {
		t.Errorf("fresh decode missed the edit: got %v", second.At(0, 0, 0).Value)
	}
}
