package observability

import (
	"sort"
	"strings"
	"sync"
)

// Metrics records application counters and gauges.
type Metrics interface {
	Counter(name string, value int64, tags ...Tag)
	Gauge(name string, value float64, tags ...Tag)
}

// Tag is a key-value pair for metric labeling.
type Tag struct {
	Key   string
	Value string
}

// T creates a new Tag.
func T(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) Counter(name string, value int64, tags ...Tag) {}
func (NoopMetrics) Gauge(name string, value float64, tags ...Tag) {}

// InMemoryMetrics keeps metrics in process memory. It backs the /metrics
// endpoint in single-instance deployments and is used in tests.
type InMemoryMetrics struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]float64
}

// NewInMemoryMetrics creates a new in-memory metrics collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
	}
}

func (m *InMemoryMetrics) Counter(name string, value int64, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[formatKey(name, tags)] += value
}

func (m *InMemoryMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[formatKey(name, tags)] = value
}

// GetCounter returns the current value of a counter.
func (m *InMemoryMetrics) GetCounter(name string, tags ...Tag) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[formatKey(name, tags)]
}

// GetGauge returns the current value of a gauge.
func (m *InMemoryMetrics) GetGauge(name string, tags ...Tag) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gauges[formatKey(name, tags)]
}

// Snapshot returns a copy of all counters and gauges keyed by formatted name.
func (m *InMemoryMetrics) Snapshot() map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]float64, len(m.counters)+len(m.gauges))
	for k, v := range m.counters {
		out[k] = float64(v)
	}
	for k, v := range m.gauges {
		out[k] = v
	}
	return out
}

// formatKey renders name{k=v,...} with tags sorted by key.
func formatKey(name string, tags []Tag) string {
	if len(tags) == 0 {
		return name
	}
	sorted := make([]Tag, len(tags))
	copy(sorted, tags)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	parts := make([]string, 0, len(sorted))
	for _, t := range sorted {
		parts = append(parts, t.Key+"="+t.Value)
	}
	return name + "{" + strings.Join(parts, ",") + "}"
}

// Metric names.
const (
	MetricAppointmentTransitions = "appointments_transitions_total"
	MetricDispatchEmpty          = "queue_dispatch_empty_total"
	MetricDispatchConflicts      = "queue_dispatch_conflicts_total"
	MetricOutboxPublished        = "outbox_published_total"
	MetricOutboxFailed           = "outbox_failed_total"
	MetricOutboxDead             = "outbox_dead_total"
	MetricUserCacheHits          = "identity_user_cache_hits_total"
	MetricUserCacheMisses        = "identity_user_cache_misses_total"
)
