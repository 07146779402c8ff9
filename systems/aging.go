package systems

import "time"

// AgingTimer fires at a fixed real-time interval independent of the step
// rate. Vital ticks are driven from it, not from the controller delta.
type AgingTimer struct {
	Interval time.Duration
	acc      time.Duration
}

// NewAgingTimer creates a timer firing every interval.
func NewAgingTimer(interval time.Duration) *AgingTimer {
	if interval <= 0 {
		interval = time.Second
	}
	return &AgingTimer{Interval: interval}
}

// Advance adds elapsed time and returns how many whole intervals completed.
func (t *AgingTimer) Advance(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	t.acc += elapsed
	n := int(t.acc / t.Interval)
	t.acc -= time.Duration(n) * t.Interval
	return n
}

// Pending returns the time accumulated toward the next interval.
func (t *AgingTimer) Pending() time.Duration {
	return t.acc
}

// Reset discards accumulated time.
func (t *AgingTimer) Reset() {
	t.acc = 0
}
