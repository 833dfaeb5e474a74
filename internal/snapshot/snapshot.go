// Package snapshot converts resting chunk data to and from compact
// zstd-compressed blobs. Persistence and transport of those blobs belong to
// external collaborators; this package only owns the byte layout.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"

	"voxelfield/internal/field"
	"voxelfield/internal/profiling"
)

// ErrCorrupt reports a blob that does not parse back into a well-formed
// chunk (truncated record or run counts not summing to the chunk volume).
var ErrCorrupt = errors.New("snapshot: corrupt chunk record")

const (
	posLen    = 12 // three big-endian int32
	headerLen = posLen + 4
	runLen    = 4 + 1 + 2 // value bits, material, count
)

// Codec compresses and decompresses chunk snapshots. It is safe for
// concurrent use; EncodeAll/DecodeAll on the underlying zstd pair are
// stateless per call.
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewCodec builds a codec tuned for small, highly redundant run lists.
func NewCodec() (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Close releases the compressor state.
func (c *Codec) Close() {
	c.enc.Close()
	c.dec.Close()
}

// EncodeChunk serializes one chunk's position and resting run list.
func (c *Codec) EncodeChunk(pos field.ChunkPosition, runs []field.Run) []byte {
	raw := make([]byte, 0, headerLen+len(runs)*runLen)
	raw = binary.BigEndian.AppendUint32(raw, uint32(pos.X))
	raw = binary.BigEndian.AppendUint32(raw, uint32(pos.Y))
	raw = binary.BigEndian.AppendUint32(raw, uint32(pos.Z))
	raw = binary.BigEndian.AppendUint32(raw, uint32(len(runs)))
	for _, r := range runs {
		raw = binary.BigEndian.AppendUint32(raw, math.Float32bits(r.Voxel.Value))
		raw = append(raw, byte(r.Voxel.Material))
		raw = binary.BigEndian.AppendUint16(raw, r.Count)
	}
	return c.enc.EncodeAll(raw, nil)
}

// DecodeChunk parses a blob produced by EncodeChunk. The run list is
// validated: counts must sum to exactly one chunk volume.
func (c *Codec) DecodeChunk(blob []byte) (field.ChunkPosition, []field.Run, error) {
	var pos field.ChunkPosition
	raw, err := c.dec.DecodeAll(blob, nil)
	if err != nil {
		return pos, nil, fmt.Errorf("decompress chunk record: %w", err)
	}
	if len(raw) < headerLen {
		return pos, nil, ErrCorrupt
	}
	pos.X = int32(binary.BigEndian.Uint32(raw[0:4]))
	pos.Y = int32(binary.BigEndian.Uint32(raw[4:8]))
	pos.Z = int32(binary.BigEndian.Uint32(raw[8:12]))
	n := int(binary.BigEndian.Uint32(raw[12:16]))
	if len(raw) != headerLen+n*runLen {
		return pos, nil, ErrCorrupt
	}

	runs := make([]field.Run, n)
	off := headerLen
	for i := range runs {
		runs[i] = field.Run{
			Voxel: field.Voxel{
				Value:    math.Float32frombits(binary.BigEndian.Uint32(raw[off : off+4])),
				Material: field.Material(raw[off+4]),
			},
			Count: binary.BigEndian.Uint16(raw[off+5 : off+7]),
		}
		off += runLen
	}
	if field.RunTotal(runs) != field.ChunkVolume {
		return pos, nil, ErrCorrupt
	}
	return pos, runs, nil
}

// ExportAll snapshots every resident chunk, encoding concurrently. Chunks
// touched mid-export land in either the old or new state; callers wanting a
// frozen view must quiesce edits first.
func (c *Codec) ExportAll(m *field.ChunkMap) ([][]byte, error) {
	defer profiling.Track("snapshot.ExportAll")()
	positions := m.Positions()
	blobs := make([][]byte, len(positions))

	var g errgroup.Group
	for i, pos := range positions {
		i, pos := i, pos
		g.Go(func() error {
			ch, ok := m.Get(pos)
			if !ok {
				// unloaded between Positions and now: skip
				return nil
			}
			blobs[i] = c.EncodeChunk(pos, ch.Runs())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := blobs[:0]
	for _, b := range blobs {
		if b != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

// ImportAll restores chunks from blobs into the map. Restored chunks are
// dirty so the meshing consumer re-extracts them.
func (c *Codec) ImportAll(m *field.ChunkMap, blobs [][]byte) error {
	for i, blob := range blobs {
		pos, runs, err := c.DecodeChunk(blob)
		if err != nil {
			return fmt.Errorf("blob %d: %w", i, err)
		}
		m.Restore(pos, runs)
	}
	return nil
}
