package config

import "sync"

// StreamSettings holds chunk streaming configuration
type StreamSettings struct {
	mu         sync.RWMutex
	loadRadius int // in chunks
}

var globalStreamSettings = &StreamSettings{
	loadRadius: 4, // default value
}

// GetLoadRadius returns the current chunk residency radius in chunks
func GetLoadRadius() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.loadRadius
}

// SetLoadRadius sets the chunk residency radius in chunks
func SetLoadRadius(radius int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()

	// Clamp to reasonable values
	if radius < 1 {
		radius = 1
	}
	if radius > 16 {
		radius = 16
	}

	globalStreamSettings.loadRadius = radius
}

// GetEvictRadius returns the radius beyond which chunks may be unloaded
// (larger than the load radius so residency doesn't thrash at the edge)
func GetEvictRadius() int {
	return GetLoadRadius() * 2
}
