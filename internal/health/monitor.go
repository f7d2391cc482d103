package health

import (
	"context"
	"sync"
	"time"

	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

const DefaultInterval = 30 * time.Second

// Checker reports whether the analytics backend is reachable.
type Checker interface {
	Health(ctx context.Context) bool
}

// Status is the last known reachability of the backend. Online is nil until
// the first check completes.
type Status struct {
	Online      *bool     `json:"online"`
	LastChecked time.Time `json:"lastChecked"`
}

// Label is what the status badge reads.
func (s Status) Label() string {
	switch {
	case s.Online == nil:
		return "Checking..."
	case *s.Online:
		return "API Online"
	default:
		return "API Offline"
	}
}

// Monitor polls a Checker on a fixed interval.
type Monitor struct {
	check    Checker
	interval time.Duration
	rec      telemetry.Recorder
	now      func() time.Time

	mu     sync.RWMutex
	status Status
}

func NewMonitor(check Checker, interval time.Duration, rec telemetry.Recorder) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{check: check, interval: interval, rec: telemetry.OrNop(rec), now: time.Now}
}

// Run checks once immediately and then on every tick until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.CheckNow(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CheckNow(ctx)
		}
	}
}

// CheckNow runs one check and records its outcome.
func (m *Monitor) CheckNow(ctx context.Context) Status {
	online := m.check.Health(ctx)
	if ctx.Err() != nil {
		return m.Status()
	}

	m.mu.Lock()
	prev := m.status.Online
	m.status = Status{Online: &online, LastChecked: m.now()}
	st := m.status
	m.mu.Unlock()

	if prev == nil || *prev != online {
		m.rec.Warn("backend status changed", map[string]any{"online": online})
	}
	return st
}

func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}
