// Package budget tracks cumulative estimated spend against a
// capacity and reports threshold crossings. It is a sibling
// tool to the workset engine and consumes no engine state.
//
// Alerts are explicit result values: every charge returns the
// thresholds it newly crossed, so ordering and error
// propagation stay in the caller's hands — there is no
// registered-callback list.
//
//	tracker := budget.NewTracker(100000, nil)
//	alerts := tracker.ChargeText(prompt)
//	for _, a := range alerts {
//	    log.Printf("budget at %.0f%%", a.Utilization*100)
//	}
package budget

import (
	"sync"

	"github.com/calebrin/workset"
)

// Level is an alert threshold as a fraction of capacity.
type Level float64

// The three alert levels. Each fires at most once between
// resets.
const (
	LevelWarning  Level = 0.70
	LevelCritical Level = 0.90
	LevelExceeded Level = 1.00
)

// levels in ascending order, so one large charge reports every
// threshold it crossed, in order.
var levels = []Level{LevelWarning, LevelCritical, LevelExceeded}

// Alert reports a threshold crossing.
type Alert struct {
	// Level is the threshold that was crossed.
	Level Level

	// Used is the cumulative spend when the threshold was
	// crossed.
	Used int64

	// Capacity is the configured budget.
	Capacity int64

	// Utilization is Used / Capacity.
	Utilization float64
}

// Tracker accumulates spend against a capacity. Safe for
// concurrent use: unlike the workset engine, a budget is
// typically shared by several agents in one run.
type Tracker struct {
	mu        sync.Mutex
	capacity  int64
	used      int64
	estimator workset.SizeEstimator
	fired     map[Level]bool
}

// NewTracker creates a Tracker with the given capacity in
// estimator units. A nil estimator means
// [workset.CharEstimator]. Panics if capacity is not positive.
func NewTracker(
	capacity int64,
	estimator workset.SizeEstimator,
) *Tracker {
	if capacity <= 0 {
		panic("budget: capacity must be > 0")
	}
	if estimator == nil {
		estimator = workset.NewCharEstimator()
	}
	return &Tracker{
		capacity:  capacity,
		estimator: estimator,
		fired:     make(map[Level]bool),
	}
}

// Charge adds units to the cumulative spend and returns the
// alert levels newly crossed by this charge, lowest first.
// Negative units are ignored (spend only goes up).
func (t *Tracker) Charge(units int64) []Alert {
	if units <= 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.used += units

	var alerts []Alert
	utilization := float64(t.used) / float64(t.capacity)
	for _, level := range levels {
		if t.fired[level] || utilization < float64(level) {
			continue
		}
		t.fired[level] = true
		alerts = append(alerts, Alert{
			Level:       level,
			Used:        t.used,
			Capacity:    t.capacity,
			Utilization: utilization,
		})
	}
	return alerts
}

// ChargeText estimates text with the configured estimator and
// charges the result.
func (t *Tracker) ChargeText(text string) []Alert {
	return t.Charge(int64(t.estimator.Estimate(text)))
}

// Used returns the cumulative spend.
func (t *Tracker) Used() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.used
}

// Remaining returns capacity minus spend; negative once the
// budget is exceeded.
func (t *Tracker) Remaining() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.capacity - t.used
}

// Utilization returns spend as a fraction of capacity.
func (t *Tracker) Utilization() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return float64(t.used) / float64(t.capacity)
}

// Reset zeroes the spend and re-arms every alert level.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.used = 0
	t.fired = make(map[Level]bool)
}
