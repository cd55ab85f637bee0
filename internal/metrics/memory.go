// Package metrics reads Go runtime statistics for the verbose benchmark
// report. Snapshots are taken before and after a run so the report can show
// what the strategies allocated, not what the process happened to hold.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Delta returns the growth between an earlier snapshot and this one.
// Cumulative counters subtract; HeapAlloc and Sys report the later value
// since they can shrink under GC.
func (s MemorySnapshot) Delta(earlier MemorySnapshot) MemorySnapshot {
	return MemorySnapshot{
		HeapAlloc:    s.HeapAlloc,
		TotalAlloc:   s.TotalAlloc - earlier.TotalAlloc,
		Sys:          s.Sys,
		NumGC:        s.NumGC - earlier.NumGC,
		PauseTotalNs: s.PauseTotalNs - earlier.PauseTotalNs,
	}
}
