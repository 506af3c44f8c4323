package remote

import (
	"testing"
	"time"
)

func TestMonitorAccumulation(t *testing.T) {
	m := NewMonitor()

	m.RecordRequest(100 * time.Millisecond)

	stats := m.GetStats()
	if stats.Requests != 1 {
		t.Errorf("Expected 1 request, got %d", stats.Requests)
	}

	for i := 0; i < 100; i++ {
		m.RecordRequest(50 * time.Millisecond)
	}

	stats = m.GetStats()
	if stats.Requests != 101 {
		t.Errorf("Expected 101 requests, got %d", stats.Requests)
	}
	// Window keeps the last 100 latencies, all 50ms
	if stats.AverageLatency != 50*time.Millisecond {
		t.Errorf("Expected 50ms average latency, got %v", stats.AverageLatency)
	}
	if stats.Status != "healthy" {
		t.Errorf("Expected healthy, got %s", stats.Status)
	}
}

func TestMonitorThrottle(t *testing.T) {
	m := NewMonitor()
	m.RecordThrottle(5 * time.Second)

	if got := m.CheckStatus(); got != StatusThrottled {
		t.Errorf("Expected throttled, got %v", got)
	}
	stats := m.GetStats()
	if stats.ThrottleCount429 != 1 || stats.LastRetryAfter != 5*time.Second {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestMonitorDegradedOnErrorRate(t *testing.T) {
	m := NewMonitor()
	for i := 0; i < 8; i++ {
		m.RecordRequest(10 * time.Millisecond)
	}
	for i := 0; i < 5; i++ {
		m.RecordFailure()
	}

	if got := m.CheckStatus(); got != StatusDegraded {
		t.Errorf("Expected degraded, got %v", got)
	}
}
