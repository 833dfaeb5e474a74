package field

// PaddedSide is the edge length of a padded sample grid: the chunk itself
// plus a one-voxel apron on every face, taken from neighboring chunks.
const PaddedSide = ChunkSide + 2

// PaddedBlock is the sample grid handed to the external surface-extraction
// algorithm. Meshing a smooth field needs the voxels just across each chunk
// face, otherwise seams open up between adjacent meshes.
type PaddedBlock struct {
	samples [PaddedSide * PaddedSide * PaddedSide]Voxel
}

// At reads a sample at apron coordinates: each of x, y, z ranges over
// [-1, ChunkSide].
func (p *PaddedBlock) At(x, y, z int) Voxel {
	return p.samples[paddedIndex(x, y, z)]
}

func paddedIndex(x, y, z int) int {
	return (x + 1) + (z+1)*PaddedSide + (y+1)*PaddedSide*PaddedSide
}

// SampleRegion assembles the padded grid for the chunk at pos. Apron samples
// come from whichever of the 26 neighbors are resident; voxels of absent
// chunks read as far outside, matching a freshly created chunk.
func SampleRegion(m *ChunkMap, pos ChunkPosition) *PaddedBlock {
	var neighbors [27]*Block
	for dy := int32(-1); dy <= 1; dy++ {
		for dz := int32(-1); dz <= 1; dz++ {
			for dx := int32(-1); dx <= 1; dx++ {
				if c, ok := m.Get(pos.Add(dx, dy, dz)); ok {
					neighbors[neighborIndex(dx, dy, dz)] = c.Dense()
				}
			}
		}
	}

	out := &PaddedBlock{}
	far := Voxel{Value: FarOutside}
	for y := -1; y <= ChunkSide; y++ {
		for z := -1; z <= ChunkSide; z++ {
			for x := -1; x <= ChunkSide; x++ {
				dx, lx := splitApron(x)
				dy, ly := splitApron(y)
				dz, lz := splitApron(z)
				b := neighbors[neighborIndex(dx, dy, dz)]
				v := far
				if b != nil {
					v = b.At(lx, ly, lz)
				}
				out.samples[paddedIndex(x, y, z)] = v
			}
		}
	}
	return out
}

func neighborIndex(dx, dy, dz int32) int {
	return int((dx + 1) + (dz+1)*3 + (dy+1)*9)
}

// splitApron maps an apron coordinate to the owning neighbor offset and the
// local coordinate inside it.
func splitApron(v int) (d int32, local int) {
	switch {
	case v < 0:
		return -1, v + ChunkSide
	case v >= ChunkSide:
		return 1, v - ChunkSide
	default:
		return 0, v
	}
}
