// Package agent samples host cpu/memory/disk utilisation and appends the
// readings to the system log table. It is the producer side of the
// pipeline; the dashboard itself never writes.
package agent

import (
	"context"
	"fmt"
	"time"

	gocpu "github.com/shirou/gopsutil/v4/cpu"
	godisk "github.com/shirou/gopsutil/v4/disk"
	gomem "github.com/shirou/gopsutil/v4/mem"
)

// System call wrappers for testing
var (
	cpuPercent    = gocpu.PercentWithContext
	virtualMemory = gomem.VirtualMemoryWithContext
	diskUsage     = godisk.UsageWithContext
)

// Sample is one point-in-time utilisation reading, percentages 0-100.
type Sample struct {
	Timestamp time.Time
	CPU       float64
	Memory    float64
	Disk      float64
}

// Collect gathers a utilisation sample. The CPU reading blocks for one
// second to measure a delta rather than an instantaneous guess.
func Collect(ctx context.Context, diskPath string) (Sample, error) {
	collectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sample := Sample{Timestamp: time.Now()}

	percentages, err := cpuPercent(collectCtx, time.Second, false)
	if err != nil {
		return Sample{}, fmt.Errorf("cpu stats: %w", err)
	}
	if len(percentages) > 0 {
		sample.CPU = percentages[0]
	}

	memStats, err := virtualMemory(collectCtx)
	if err != nil {
		return Sample{}, fmt.Errorf("memory stats: %w", err)
	}
	sample.Memory = memStats.UsedPercent

	usage, err := diskUsage(collectCtx, diskPath)
	if err != nil {
		return Sample{}, fmt.Errorf("disk stats for %s: %w", diskPath, err)
	}
	sample.Disk = usage.UsedPercent

	return sample, nil
}
