package workset

import "time"

// Clock provides the creation timestamps for fragments. It
// allows injecting a custom time source so compaction ordering
// is reproducible in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is the standard Clock using the system time.
type SystemClock struct{}

// NewSystemClock creates a new SystemClock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a Clock that returns a controllable time.
// Useful for testing time-dependent ordering.
type MockClock struct {
	current time.Time
}

// NewMockClock creates a MockClock starting at the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// SetTime updates the time returned by Now().
func (m *MockClock) SetTime(t time.Time) {
	m.current = t
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

// Now returns the mock's current time.
func (m *MockClock) Now() time.Time {
	return m.current
}

// Compile-time checks.
var (
	_ Clock = (*SystemClock)(nil)
	_ Clock = (*MockClock)(nil)
)
