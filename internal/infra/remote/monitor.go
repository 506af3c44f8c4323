package remote

import (
	"sync"
	"time"
)

// Status represents the observed health of the remote service.
type Status int

const (
	StatusHealthy   Status = iota // Remote is answering normally
	StatusDegraded                // Remote is slow or failing often
	StatusThrottled               // Remote is rate limiting us
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusThrottled:
		return "throttled"
	default:
		return "unknown"
	}
}

// MonitorStats holds monitoring statistics for the remote service.
type MonitorStats struct {
	Status           string        `json:"status"`
	AverageLatency   time.Duration `json:"average_latency"`
	Requests         int           `json:"requests"`
	Failures         int           `json:"failures"`
	ThrottleCount429 int           `json:"throttle_count_429"`
	LastThrottleAt   time.Time     `json:"last_throttle_at,omitzero"`
	LastRetryAfter   time.Duration `json:"last_retry_after"`
	ErrorRate        float64       `json:"error_rate"`
}

// Monitor tracks remote latency and rate limiting. It only observes;
// nothing in the request path consults it before calling out.
type Monitor struct {
	mu sync.RWMutex

	recentLatencies  []time.Duration
	maxLatencyWindow int

	requestCount   int
	failureCount   int
	status429Count int
	lastThrottle   time.Time
	lastRetryAfter time.Duration

	throttleWindow        time.Duration
	slowResponseThreshold time.Duration
	degradedThreshold     float64
}

// NewMonitor creates a new monitor with default settings.
func NewMonitor() *Monitor {
	return &Monitor{
		recentLatencies:       make([]time.Duration, 0, 100),
		maxLatencyWindow:      100,
		throttleWindow:        time.Minute,
		slowResponseThreshold: 3 * time.Second,
		degradedThreshold:     0.3, // 30% error rate
	}
}

// RecordRequest records a completed request with its latency.
func (m *Monitor) RecordRequest(latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requestCount++
	m.recentLatencies = append(m.recentLatencies, latency)
	if len(m.recentLatencies) > m.maxLatencyWindow {
		m.recentLatencies = m.recentLatencies[1:]
	}
}

// RecordFailure records a request that ended in a non-throttle failure.
func (m *Monitor) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requestCount++
	m.failureCount++
}

// RecordThrottle records a rate limiting response.
func (m *Monitor) RecordThrottle(retryAfter time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requestCount++
	m.status429Count++
	m.lastThrottle = time.Now()
	m.lastRetryAfter = retryAfter
}

// CheckStatus returns the current status of the remote service.
func (m *Monitor) CheckStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statusLocked()
}

func (m *Monitor) statusLocked() Status {
	if !m.lastThrottle.IsZero() && time.Since(m.lastThrottle) < m.throttleWindow {
		return StatusThrottled
	}

	if m.requestCount > 10 && float64(m.failureCount)/float64(m.requestCount) > m.degradedThreshold {
		return StatusDegraded
	}

	if len(m.recentLatencies) > 10 && m.averageLatencyLocked() > m.slowResponseThreshold {
		return StatusDegraded
	}

	return StatusHealthy
}

func (m *Monitor) averageLatencyLocked() time.Duration {
	if len(m.recentLatencies) == 0 {
		return 0
	}
	var total time.Duration
	for _, lat := range m.recentLatencies {
		total += lat
	}
	return total / time.Duration(len(m.recentLatencies))
}

// GetStats returns current monitoring statistics.
func (m *Monitor) GetStats() MonitorStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := MonitorStats{
		Status:           m.statusLocked().String(),
		AverageLatency:   m.averageLatencyLocked(),
		Requests:         m.requestCount,
		Failures:         m.failureCount,
		ThrottleCount429: m.status429Count,
		LastThrottleAt:   m.lastThrottle,
		LastRetryAfter:   m.lastRetryAfter,
	}
	if m.requestCount > 0 {
		stats.ErrorRate = float64(m.failureCount+m.status429Count) / float64(m.requestCount)
	}
	return stats
}
