package resultsync

import (
	"sync"
	"time"
)

// Trigger names what started a sync cycle
type Trigger string

const (
	TriggerStartup Trigger = "startup"
	TriggerTimer   Trigger = "timer"
	TriggerManual  Trigger = "manual"
)

// MetricsCollector defines the interface for collecting sync metrics
type MetricsCollector interface {
	RecordSync(trigger Trigger, success bool, duration time.Duration)
	RecordSkipped(trigger Trigger)
}

// NoOpMetricsCollector is a no-op implementation for when metrics aren't needed
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordSync(trigger Trigger, success bool, duration time.Duration) {}
func (n *NoOpMetricsCollector) RecordSkipped(trigger Trigger)                                    {}

// CounterMetrics keeps in-process counters for the metrics endpoint
type CounterMetrics struct {
	mu           sync.Mutex
	succeeded    map[Trigger]uint64
	failed       map[Trigger]uint64
	skipped      map[Trigger]uint64
	lastDuration time.Duration
}

// MetricsSnapshot is a point-in-time copy of CounterMetrics
type MetricsSnapshot struct {
	Succeeded    map[Trigger]uint64
	Failed       map[Trigger]uint64
	Skipped      map[Trigger]uint64
	LastDuration time.Duration
}

func NewCounterMetrics() *CounterMetrics {
	return &CounterMetrics{
		succeeded: make(map[Trigger]uint64),
		failed:    make(map[Trigger]uint64),
		skipped:   make(map[Trigger]uint64),
	}
}

func (m *CounterMetrics) RecordSync(trigger Trigger, success bool, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.succeeded[trigger]++
	} else {
		m.failed[trigger]++
	}
	m.lastDuration = duration
}

func (m *CounterMetrics) RecordSkipped(trigger Trigger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped[trigger]++
}

func (m *CounterMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Succeeded:    copyCounts(m.succeeded),
		Failed:       copyCounts(m.failed),
		Skipped:      copyCounts(m.skipped),
		LastDuration: m.lastDuration,
	}
}

func copyCounts(in map[Trigger]uint64) map[Trigger]uint64 {
	out := make(map[Trigger]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
