package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RecordAggregates(t *testing.T) {
	r := NewRecorder()

	r.Record("planner", 100, 2*time.Second, nil)
	r.Record("planner", 50, time.Second, errors.New("boom"))

	stats, ok := r.Agent("planner")
	require.True(t, ok)
	assert.Equal(t, int64(2), stats.Invocations)
	assert.Equal(t, int64(150), stats.Tokens)
	assert.Equal(t, 3*time.Second, stats.TotalTime)
	assert.Equal(t, int64(1), stats.Errors)
}

func TestRecorder_UnknownAgent(t *testing.T) {
	r := NewRecorder()

	_, ok := r.Agent("ghost")

	assert.False(t, ok)
}

func TestRecorder_SnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.Record("a", 10, time.Second, nil)

	snap := r.Snapshot()
	snap["a"] = AgentStats{Tokens: 999}
	r.Record("a", 10, time.Second, nil)

	stats, _ := r.Agent("a")
	assert.Equal(t, int64(20), stats.Tokens,
		"mutating a snapshot must not affect the recorder",
	)
}

func TestRecorder_Bottlenecks(t *testing.T) {
	tests := []struct {
		name     string
		record   map[string]time.Duration
		expected []string
	}{
		{
			name:     "empty recorder",
			record:   map[string]time.Duration{},
			expected: nil,
		},
		{
			name: "single agent never flagged",
			record: map[string]time.Duration{
				"solo": 100 * time.Second,
			},
			expected: nil,
		},
		{
			// avg = 35s; threshold 70s; slow (100s) flagged.
			name: "slow agent flagged",
			record: map[string]time.Duration{
				"slow": 100 * time.Second,
				"a":    2 * time.Second,
				"b":    2 * time.Second,
				"c":    36 * time.Second,
			},
			expected: []string{"slow"},
		},
		{
			// avg = 10s; exactly 2x is NOT a bottleneck
			// (strictly greater).
			name: "exactly twice average not flagged",
			record: map[string]time.Duration{
				"a": 20 * time.Second,
				"b": 0,
			},
			expected: nil,
		},
		{
			name: "balanced agents",
			record: map[string]time.Duration{
				"a": 10 * time.Second,
				"b": 12 * time.Second,
				"c": 11 * time.Second,
			},
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRecorder()
			for agent, d := range tc.record {
				r.Record(agent, 0, d, nil)
			}
			assert.Equal(t, tc.expected, r.Bottlenecks())
		})
	}
}

func TestRecorder_Reset(t *testing.T) {
	r := NewRecorder()
	r.Record("a", 10, time.Second, nil)

	r.Reset()

	assert.Empty(t, r.Snapshot())
}

func TestRecorder_ConcurrentRecording(t *testing.T) {
	r := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Record("shared", 1, time.Millisecond, nil)
			}
		}()
	}
	wg.Wait()

	stats, ok := r.Agent("shared")
	require.True(t, ok)
	assert.Equal(t, int64(2000), stats.Invocations)
	assert.Equal(t, int64(2000), stats.Tokens)
}
