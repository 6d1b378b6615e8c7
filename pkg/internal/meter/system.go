package meter

import (
	"context"
	"fmt"
	"time"

	"github.com/joeydtaylor/respira/pkg/internal/types"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// SampleSystem measures CPU usage over the configured window and reads virtual memory usage.
func (m *Meter) SampleSystem() (types.SystemSample, error) {
	sample := types.SystemSample{SampledAt: time.Now()}

	cpuPercentages, err := cpu.Percent(m.cpuWindow, false)
	if err != nil {
		return sample, fmt.Errorf("meter: cpu sample: %w", err)
	}
	if len(cpuPercentages) > 0 {
		sample.CPUPercent = cpuPercentages[0]
	}

	memStats, err := mem.VirtualMemory()
	if err != nil {
		return sample, fmt.Errorf("meter: memory sample: %w", err)
	}
	sample.MemoryPercent = memStats.UsedPercent
	sample.MemoryUsed = memStats.Used
	return sample, nil
}

// ReportStatus logs every counter plus a system sample at info level.
func (m *Meter) ReportStatus() {
	kv := []interface{}{
		"component", m.GetComponentMetadata(),
		"event", "ReportStatus",
		"uptime", time.Since(m.startTime).Round(time.Second).String(),
	}
	counts := m.Snapshot()
	for _, name := range m.metricNames() {
		kv = append(kv, name, counts[name])
	}

	sample, err := m.SampleSystem()
	if err != nil {
		kv = append(kv, "result", "PARTIAL", "error", err)
	} else {
		kv = append(kv, "result", "SUCCESS",
			"cpu_percent", sample.CPUPercent,
			"memory_percent", sample.MemoryPercent,
			"memory_used", sample.MemoryUsed,
		)
	}
	m.NotifyLoggers(types.InfoLevel, "meter status", kv...)
}

// Monitor calls ReportStatus every interval until ctx is done.
func Monitor(ctx context.Context, m types.Meter, interval time.Duration) {
	if m == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.ReportStatus()
			return
		case <-ticker.C:
			m.ReportStatus()
		}
	}
}
