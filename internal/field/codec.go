package field

// Run is one run-length record: Count consecutive voxels that compare
// bit-for-bit equal in the block's linear order.
type Run struct {
	Voxel Voxel
	Count uint16
}

// Encode compresses a dense block into a run list. It walks the block in
// linear index order and starts a new run on any bit-level difference in
// value or material. The sum of run counts always equals ChunkVolume.
func Encode(b *Block) []Run {
	runs := make([]Run, 0, 16)
	cur := Run{Voxel: b[0], Count: 1}
	for i := 1; i < ChunkVolume; i++ {
		if b[i].Equal(cur.Voxel) {
			cur.Count++
			continue
		}
		runs = append(runs, cur)
		cur = Run{Voxel: b[i], Count: 1}
	}
	return append(runs, cur)
}

// Decode expands a run list back into dense form. The caller guarantees the
// run counts sum to ChunkVolume; every run list produced by Encode does.
// Encode followed by Decode reproduces the input block bit-exactly.
func Decode(runs []Run) *Block {
	b := &Block{}
	i := 0
	for _, r := range runs {
		for n := uint16(0); n < r.Count && i < ChunkVolume; n++ {
			b[i] = r.Voxel
			i++
		}
	}
	return b
}

// RunTotal returns the sum of run counts, which must equal ChunkVolume for a
// well-formed chunk.
func RunTotal(runs []Run) int {
	total := 0
	for _, r := range runs {
		total += int(r.Count)
	}
	return total
}
