package tui

import (
	"time"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

// TickMsg drives periodic refresh of the elapsed timer and sampled metrics.
type TickMsg time.Time

// TermMsg reports a streamed Fibonacci term. Terms are sampled, so
// consecutive messages need not carry consecutive indices.
type TermMsg struct {
	Generation uint64
	Index      uint64
	Count      uint64
	Groups     int
	Digits     int
	// Preview is the term rendered for the log, truncated at both ends.
	Preview string
}

// StreamDoneMsg is sent once the term stream stops, with Err set when it
// stopped early.
type StreamDoneMsg struct {
	Generation uint64
	Index      uint64
	Last       *wholenumber.WholeNumber
	Duration   time.Duration
	Err        error
}

// MemStatsMsg carries a runtime memory reading.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory reading.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg is sent when the parent context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
