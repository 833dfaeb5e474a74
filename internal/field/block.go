package field

// Block is the dense form of one chunk's voxels. It only exists transiently,
// while a chunk is being edited or sampled; the resting form is the run list.
type Block [ChunkVolume]Voxel

// NewBlock returns a block with every voxel set to fill.
func NewBlock(fill Voxel) *Block {
	b := &Block{}
	for i := range b {
		b[i] = fill
	}
	return b
}

// At returns the voxel at local coordinates (0..31 each).
func (b *Block) At(x, y, z int) Voxel {
	return b[Index(x, y, z)]
}

// Set stores the voxel at local coordinates (0..31 each).
func (b *Block) Set(x, y, z int, v Voxel) {
	b[Index(x, y, z)] = v
}
