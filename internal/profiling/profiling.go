package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight per-operation timing for hot paths in the field core.

// Stat accumulates the cost of one named operation.
type Stat struct {
	Total time.Duration
	Calls uint64
}

var (
	mu     sync.Mutex
	totals = make(map[string]Stat)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("pkg.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := totals[name]
		s.Total += d
		s.Calls++
		totals[name] = s
		mu.Unlock()
	}
}

// Reset clears all accumulated stats.
func Reset() {
	mu.Lock()
	totals = make(map[string]Stat)
	mu.Unlock()
}

// Snapshot returns a copy of the accumulated stats.
func Snapshot() map[string]Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Stat, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// Summary formats the top n operations by total time, e.g.
// "edit.Apply: 4.2ms/17 calls, field.EnsureAroundSync: 2.1ms/3 calls".
func Summary(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		stat Stat
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, stat: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].stat.Total > list[j].stat.Total })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].stat.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s: %.1fms/%d calls", list[i].name, ms, list[i].stat.Calls))
	}
	return strings.Join(parts, ", ")
}
