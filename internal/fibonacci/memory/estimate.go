// Package memory estimates and controls the memory used by Fibonacci
// calculations on linked-list WholeNumbers.
package memory

import (
	"fmt"
	"unsafe"

	"github.com/dustin/go-humanize"
)

// decimalGrowthFactor is log10(phi). Local copy to avoid importing the
// parent fibonacci package.
const decimalGrowthFactor = 0.20898764

// nodeBytes is the arena footprint of one digit group: the int value, two
// int links, a generation counter and a liveness flag.
const nodeBytes = int(unsafe.Sizeof(struct {
	value, prev, next int
	gen               uint32
	live              bool
}{}))

const (
	// accumulators is the number of live WholeNumbers in a sequence.
	accumulators = 3
	// arenaSlack accounts for append doubling of the node arenas.
	arenaSlack = 2
)

// MemoryEstimate is the predicted peak memory of computing F(n).
type MemoryEstimate struct {
	Groups       uint64
	ListBytes    uint64
	DisplayBytes uint64
	TotalBytes   uint64
}

// EstimateMemoryUsage predicts the memory needed to compute and display F(n)
// with the linked-list accumulators.
func EstimateMemoryUsage(n uint64) MemoryEstimate {
	digits := uint64(float64(n)*decimalGrowthFactor) + 1
	groups := digits/3 + 1
	list := groups * uint64(nodeBytes) * accumulators * arenaSlack
	// The formatted value holds a separator after every group.
	display := digits + groups
	return MemoryEstimate{
		Groups:       groups,
		ListBytes:    list,
		DisplayBytes: display,
		TotalBytes:   list + display,
	}
}

// ParseMemoryLimit parses a human-readable size such as "512MB" or "8 GiB".
// An empty string means no limit and returns 0.
func ParseMemoryLimit(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid memory limit %q: %w", s, err)
	}
	return v, nil
}

// FormatMemoryEstimate renders the total of est in human-readable units.
func FormatMemoryEstimate(est MemoryEstimate) string {
	return fmt.Sprintf("%s (%s groups)", humanize.Bytes(est.TotalBytes), humanize.Comma(int64(est.Groups)))
}

// MaxGroupsForLimit returns the digit-group cap that keeps the three
// accumulators of a sequence within limit bytes. A zero limit yields 0,
// meaning unbounded.
func MaxGroupsForLimit(limit uint64) int {
	if limit == 0 {
		return 0
	}
	groups := limit / (uint64(nodeBytes) * accumulators * arenaSlack)
	return int(max(groups, 1))
}
