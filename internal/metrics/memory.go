package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
)

// MemorySnapshot is the runtime heap state at one instant.
type MemorySnapshot struct {
	HeapAlloc    uint64
	HeapSys      uint64
	Sys          uint64
	HeapObjects  uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// String renders the snapshot with human-readable sizes.
func (s MemorySnapshot) String() string {
	return fmt.Sprintf("heap %s of %s, %s objects, %d GC",
		humanize.IBytes(s.HeapAlloc), humanize.IBytes(s.HeapSys), humanize.Comma(int64(s.HeapObjects)), s.NumGC)
}

// MemoryDelta is what a run cost between two snapshots.
type MemoryDelta struct {
	// HeapGrowth is zero when the heap shrank.
	HeapGrowth uint64
	GCCycles   uint32
	GCPause    time.Duration
}

// Since returns the change from before to s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	var d MemoryDelta
	if s.HeapAlloc > before.HeapAlloc {
		d.HeapGrowth = s.HeapAlloc - before.HeapAlloc
	}
	if s.NumGC > before.NumGC {
		d.GCCycles = s.NumGC - before.NumGC
	}
	if s.PauseTotalNs > before.PauseTotalNs {
		d.GCPause = time.Duration(s.PauseTotalNs - before.PauseTotalNs)
	}
	return d
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot stops the world briefly to read the heap statistics.
func (*MemoryCollector) Snapshot() MemorySnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return MemorySnapshot{
		HeapAlloc:    ms.HeapAlloc,
		HeapSys:      ms.HeapSys,
		Sys:          ms.Sys,
		HeapObjects:  ms.HeapObjects,
		NumGC:        ms.NumGC,
		PauseTotalNs: ms.PauseTotalNs,
	}
}
