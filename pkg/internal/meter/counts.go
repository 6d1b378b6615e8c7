package meter

import "sync/atomic"

func (m *Meter) counter(metric string) *uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.counts[metric]
	if !ok {
		c = new(uint64)
		m.counts[metric] = c
	}
	return c
}

// IncrementCount adds one to metric.
func (m *Meter) IncrementCount(metric string) {
	atomic.AddUint64(m.counter(metric), 1)
}

// AddCount adds n to metric.
func (m *Meter) AddCount(metric string, n uint64) {
	if n == 0 {
		return
	}
	atomic.AddUint64(m.counter(metric), n)
}

// GetCount returns the current value of metric, zero if it was never touched.
func (m *Meter) GetCount(metric string) uint64 {
	m.mu.Lock()
	c, ok := m.counts[metric]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return atomic.LoadUint64(c)
}

// Snapshot copies every counter.
func (m *Meter) Snapshot() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]uint64, len(m.counts))
	for name, c := range m.counts {
		out[name] = atomic.LoadUint64(c)
	}
	return out
}

// ResetCounts zeroes every counter.
func (m *Meter) ResetCounts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.counts {
		atomic.StoreUint64(c, 0)
	}
}
