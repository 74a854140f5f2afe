package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	durationMs   map[string]int64
	errorCount   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		durationMs:   make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments the request counter and accumulates handling
// time for the path/method/status key.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.durationMs[key] += duration.Milliseconds()
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot returns copies of the counters for read-only exposure.
func (m *Metrics) Snapshot() (requests, durationMs, errors map[string]int64) {
	requests = make(map[string]int64)
	durationMs = make(map[string]int64)
	errors = make(map[string]int64)
	if m == nil {
		return requests, durationMs, errors
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.requestCount {
		requests[k] = v
	}
	for k, v := range m.durationMs {
		durationMs[k] = v
	}
	for k, v := range m.errorCount {
		errors[k] = v
	}
	return requests, durationMs, errors
}
