// Package integrationtest exercises the engine end to end:
// pinned instructions, overflow, archival, restore, and
// rendered output across full mutation sequences.
package integrationtest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebrin/workset"
	"github.com/calebrin/workset/integrationtest/testutil"
)

// units returns content whose default-estimator size is
// exactly n units.
func units(n int) string {
	return strings.Repeat("i", n*4)
}

// sizedContent returns content with a readable label, padded
// to exactly n units.
func sizedContent(label string, n int) string {
	pad := n*4 - len(label) - 1
	return label + ":" + strings.Repeat(".", pad)
}

func newScenarioEngine() (*workset.Engine, *workset.MockClock) {
	clock := workset.NewMockClock(
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	)
	engine := workset.New(workset.Config{
		MaxSize:              500,
		PreserveInstructions: true,
		Instructions:         units(100),
		Clock:                clock,
	})
	return engine, clock
}

// insertSix inserts the baseline fragments: sizes
// [20, 5, 40, 15, 10, 30], priorities
// [0.3, 0.8, 0.4, 0.7, 0.2, 0.6].
func insertSix(
	engine *workset.Engine,
	clock *workset.MockClock,
) map[string]*workset.Fragment {
	inputs := []struct {
		label    string
		size     int
		priority float64
	}{
		{"a", 20, 0.3},
		{"b", 5, 0.8},
		{"c", 40, 0.4},
		{"d", 15, 0.7},
		{"e", 10, 0.2},
		{"f", 30, 0.6},
	}
	frags := make(map[string]*workset.Fragment, len(inputs))
	for _, s := range inputs {
		frag, _ := engine.Insert(
			sizedContent(s.label, s.size), s.priority,
		)
		frags[s.label] = frag
		clock.Advance(time.Minute)
	}
	return frags
}

func TestScenario_EverythingFitsUnderCapacity(t *testing.T) {
	engine, clock := newScenarioEngine()
	frags := insertSix(engine, clock)

	// Fragments total 120 units; with the 100-unit pinned
	// block that is 220 against a 500 capacity.
	report := engine.Compact()
	assert.Equal(t, 1.0, report.Ratio)

	stats := engine.Stats()
	assert.Equal(t, 6, stats.ResidentCount)
	assert.Equal(t, 0, stats.ArchivedCount)
	assert.Equal(t, 220, stats.TotalSize)

	// Rendered view: pinned block first, then fragments most
	// recent first (no criticals in this set), tier markers
	// from priority.
	expected := "## Pinned Instructions\n" + units(100) + "\n\n" +
		fmt.Sprintf("[normal] %s\n", frags["f"].Content) +
		fmt.Sprintf("[normal] %s\n", frags["e"].Content) +
		fmt.Sprintf("[high] %s\n", frags["d"].Content) +
		fmt.Sprintf("[normal] %s\n", frags["c"].Content) +
		fmt.Sprintf("[high] %s\n", frags["b"].Content) +
		fmt.Sprintf("[normal] %s\n", frags["a"].Content)
	testutil.RequireTextEqual(t, expected, engine.Render())
}

func TestScenario_PriorityLadderOverflow(t *testing.T) {
	engine, clock := newScenarioEngine()
	frags := insertSix(engine, clock)

	// Ten more 50-unit fragments with priorities stepping
	// 0.30..0.75, pushing the resident total past the
	// capacity mid-sequence.
	ladder := make([]*workset.Fragment, 0, 10)
	for i := 0; i < 10; i++ {
		frag, _ := engine.Insert(
			sizedContent(fmt.Sprintf("ladder-%02d", i), 50),
			0.30+0.05*float64(i),
		)
		ladder = append(ladder, frag)
		clock.Advance(time.Minute)
	}

	stats := engine.Stats()
	assert.Positive(t, stats.ArchivedCount)
	assert.Equal(t, 12, stats.ResidentCount)
	assert.Equal(t, 4, stats.ArchivedCount)

	// The overflow pass ran when the eighth ladder fragment
	// tipped the total to 520: with available = 500 - 100
	// pinned, the greedy kept descending priorities down to
	// ladder-02 (0.40) and archived the tail.
	for _, frag := range []*workset.Fragment{
		frags["a"], frags["e"], ladder[0], ladder[1],
	} {
		assert.False(t, frag.Resident, frag.Content)
	}
	for _, frag := range []*workset.Fragment{
		frags["b"], frags["c"], frags["d"], frags["f"],
	} {
		assert.True(t, frag.Resident, frag.Content)
	}
	for _, frag := range ladder[2:] {
		assert.True(t, frag.Resident, frag.Content)
	}

	// Disjointness across the whole run.
	seen := make(map[string]bool)
	for _, frag := range engine.Resident() {
		seen[frag.ID] = true
	}
	for _, frag := range engine.Archived() {
		assert.False(t, seen[frag.ID])
	}

	// The archive summary shows the most recent evictions
	// first.
	summary := engine.SummarizeArchive(2)
	assert.Contains(t, summary, "(2 of 4)")
	assert.Contains(t, summary, "ladder-01")
}

func TestScenario_RestoreResidentIsRejected(t *testing.T) {
	engine, clock := newScenarioEngine()
	frags := insertSix(engine, clock)

	residentBefore := engine.Resident()
	archivedBefore := engine.Archived()

	report, ok := engine.Restore(frags["a"].ID)

	assert.False(t, ok)
	assert.Nil(t, report)
	assert.Equal(t, residentBefore, engine.Resident())
	assert.Equal(t, archivedBefore, engine.Archived())
}

func TestScenario_PriorityClamping(t *testing.T) {
	engine, _ := newScenarioEngine()

	high, _ := engine.Insert("too high", 1.5)
	low, _ := engine.Insert("too low", -0.5)
	assert.Equal(t, 1.0, high.Priority)
	assert.Equal(t, 0.0, low.Priority)

	require.True(t, engine.UpdatePriority(high.ID, 1.5))
	assert.Equal(t, 1.0, high.Priority)
	require.True(t, engine.UpdatePriority(high.ID, -0.5))
	assert.Equal(t, 0.0, high.Priority)
}

func TestScenario_ArchiveRestoreLifecycle(t *testing.T) {
	engine, clock := newScenarioEngine()
	frags := insertSix(engine, clock)

	moved := engine.ArchiveBelowDefault()

	// Default threshold is 0.3: only e (0.2) falls below.
	assert.Equal(t, 1, moved)
	assert.False(t, frags["e"].Resident)

	report, ok := engine.Restore(frags["e"].ID)
	require.True(t, ok)
	assert.Equal(t, 1.0, report.Ratio)
	assert.True(t, frags["e"].Resident)
	assert.Equal(t, 0, engine.Stats().ArchivedCount)
}
