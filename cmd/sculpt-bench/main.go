// sculpt-bench streams a region of the field, applies randomized sculpting
// batches and reports compression, dirty-chunk and timing stats. It doubles
// as a smoke test for the editing pipeline without any renderer attached.
package main

import (
	"flag"
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"voxelfield/internal/config"
	"voxelfield/internal/edit"
	"voxelfield/internal/field"
	"voxelfield/internal/profiling"
	"voxelfield/internal/sdf"
	"voxelfield/internal/snapshot"
)

func main() {
	var (
		radius  = flag.Int("radius", config.GetLoadRadius(), "residency radius in chunks")
		batches = flag.Int("batches", 16, "number of edit batches")
		edits   = flag.Int("edits", 8, "edits per batch")
		seed    = flag.Int64("seed", 1, "rng seed")
	)
	flag.Parse()
	config.SetLoadRadius(*radius)

	chunks := field.NewChunkMap()
	streamer := field.NewStreamer(chunks)
	defer streamer.Close()
	engine := edit.NewEngine(chunks)
	defer engine.Close()

	focus := mgl32.Vec3{0, 0, 0}
	streamer.EnsureAroundSync(focus, config.GetLoadRadius())
	log.Printf("resident: %d chunks", chunks.Count())

	rng := rand.New(rand.NewSource(*seed))
	span := float32(config.GetLoadRadius()) * field.ChunkSide * field.VoxelSize
	for b := 0; b < *batches; b++ {
		batch := make([]edit.Edit, 0, *edits)
		for i := 0; i < *edits; i++ {
			center := mgl32.Vec3{
				(rng.Float32()*2 - 1) * span,
				(rng.Float32()*2 - 1) * span,
				(rng.Float32()*2 - 1) * span,
			}
			mode := edit.ModeUnion
			if rng.Intn(3) == 0 {
				mode = edit.ModeSubtract
			}
			batch = append(batch, edit.Edit{
				Shape:     sdf.Sphere{Center: center, Radius: 2 + rng.Float32()*6},
				Mode:      mode,
				Smoothing: 0.1 + rng.Float32()*0.9,
			})
		}
		if err := engine.Apply(batch...); err != nil {
			log.Fatalf("apply batch %d: %v", b, err)
		}
	}

	dirty, runs := 0, 0
	for _, pos := range chunks.Positions() {
		ch, ok := chunks.Get(pos)
		if !ok {
			continue
		}
		if ch.Dirty() {
			dirty++
		}
		runs += ch.RunCount()
	}
	count := chunks.Count()
	denseVoxels := count * field.ChunkVolume
	log.Printf("chunks: %d, dirty: %d, runs: %d (%.2f%% of dense)",
		count, dirty, runs, 100*float64(runs)/float64(denseVoxels))

	codec, err := snapshot.NewCodec()
	if err != nil {
		log.Fatalf("snapshot codec: %v", err)
	}
	defer codec.Close()
	blobs, err := codec.ExportAll(chunks)
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	bytes := 0
	for _, blob := range blobs {
		bytes += len(blob)
	}
	log.Printf("snapshot: %d blobs, %d bytes compressed", len(blobs), bytes)

	evicted := streamer.EvictOutside(focus, config.GetEvictRadius())
	log.Printf("evicted: %d, remaining: %d", evicted, chunks.Count())
	log.Printf("timings: %s", profiling.Summary(8))
}
