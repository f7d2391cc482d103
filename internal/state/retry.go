package state

import "sync"

const (
	DefaultMaxRetries = 3
	SupportMessage    = "If the problem persists, please contact our support team."
)

// RetryGate caps manual retries of a failed load.
type RetryGate struct {
	mu       sync.Mutex
	max      int
	attempts int
}

func NewRetryGate(max int) *RetryGate {
	if max <= 0 {
		max = DefaultMaxRetries
	}
	return &RetryGate{max: max}
}

// Allow consumes one retry. It returns false once the cap is reached.
func (g *RetryGate) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.attempts >= g.max {
		return false
	}
	g.attempts++
	return true
}

func (g *RetryGate) Attempts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attempts
}

func (g *RetryGate) Max() int { return g.max }

// Restore sets the retries already made, e.g. the count a client echoes back
// with its next request.
func (g *RetryGate) Restore(attempts int) {
	g.mu.Lock()
	g.attempts = max(attempts, 0)
	g.mu.Unlock()
}
