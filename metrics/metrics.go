// Package metrics aggregates per-agent execution metrics:
// invocation counts, token usage, wall time, and errors. It is
// a sibling tool to the workset engine and consumes no engine
// state.
package metrics

import (
	"sort"
	"sync"
	"time"
)

// bottleneckFactor flags an agent whose cumulative execution
// time exceeds this multiple of the running average across all
// tracked agents.
const bottleneckFactor = 2.0

// AgentStats is a snapshot of one agent's aggregates.
type AgentStats struct {
	// Invocations is the number of recorded executions.
	Invocations int64

	// Tokens is the cumulative token usage.
	Tokens int64

	// TotalTime is the cumulative execution time.
	TotalTime time.Duration

	// Errors is the number of executions that returned an
	// error.
	Errors int64
}

type agentStats struct {
	invocations int64
	tokens      int64
	totalTime   time.Duration
	errors      int64
}

// Recorder aggregates execution metrics keyed by agent name.
// Safe for concurrent use: agents typically record from their
// own goroutines.
type Recorder struct {
	mu     sync.RWMutex
	agents map[string]*agentStats
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{agents: make(map[string]*agentStats)}
}

// Record adds one execution to the agent's aggregates. A
// non-nil err counts toward the agent's error total.
func (r *Recorder) Record(
	agent string,
	tokens int64,
	duration time.Duration,
	err error,
) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.agents[agent]
	if !ok {
		stats = &agentStats{}
		r.agents[agent] = stats
	}
	stats.invocations++
	stats.tokens += tokens
	stats.totalTime += duration
	if err != nil {
		stats.errors++
	}
}

// Agent returns a snapshot of one agent's aggregates.
func (r *Recorder) Agent(agent string) (AgentStats, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.agents[agent]
	if !ok {
		return AgentStats{}, false
	}
	return snapshot(stats), true
}

// Snapshot returns a copy of every agent's aggregates.
func (r *Recorder) Snapshot() map[string]AgentStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]AgentStats, len(r.agents))
	for name, stats := range r.agents {
		out[name] = snapshot(stats)
	}
	return out
}

// Bottlenecks returns the agents whose cumulative execution
// time exceeds twice the average cumulative time across all
// tracked agents, sorted by name for determinism. Fewer than
// two tracked agents can never produce a bottleneck — an
// average of one sample is the sample.
func (r *Recorder) Bottlenecks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.agents) < 2 {
		return nil
	}

	var total time.Duration
	for _, stats := range r.agents {
		total += stats.totalTime
	}
	average := total / time.Duration(len(r.agents))

	var flagged []string
	for name, stats := range r.agents {
		if float64(stats.totalTime) >
			bottleneckFactor*float64(average) {
			flagged = append(flagged, name)
		}
	}
	sort.Strings(flagged)
	return flagged
}

// Reset drops every tracked agent.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents = make(map[string]*agentStats)
}

func snapshot(stats *agentStats) AgentStats {
	return AgentStats{
		Invocations: stats.invocations,
		Tokens:      stats.tokens,
		TotalTime:   stats.totalTime,
		Errors:      stats.errors,
	}
}
