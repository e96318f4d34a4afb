// Package sysmon samples system-wide CPU and memory usage for the dashboard.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	MemUsed    uint64
	MemTotal   uint64
}

// Sample collects a snapshot without a deadline.
func Sample() Stats {
	return SampleContext(context.Background())
}

// SampleContext collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0, the delta since the previous call. Fields whose
// reading fails are left zero.
func SampleContext(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = clampPercent(vm.UsedPercent)
		s.MemUsed = vm.Used
		s.MemTotal = vm.Total
	}
	return s
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}
