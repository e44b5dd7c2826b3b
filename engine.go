package workset

// DefaultArchiveThreshold is the priority cutoff used by
// [Engine.ArchiveBelowDefault] when the Config does not supply
// one.
const DefaultArchiveThreshold = 0.3

// Config configures an [Engine].
type Config struct {
	// MaxSize is the capacity budget in estimator units.
	// Must be positive; [New] panics otherwise. Mutable at
	// runtime via [Engine.SetCapacity].
	MaxSize int

	// PreserveInstructions enables the pinned instruction
	// block: when true and Instructions is non-empty, the
	// block is always rendered first and is exempt from
	// packing order, though its size still counts against
	// capacity.
	PreserveInstructions bool

	// Instructions is the pinned instruction text.
	Instructions string

	// ArchiveThreshold is the default priority cutoff used by
	// [Engine.ArchiveBelowDefault]. Zero means
	// [DefaultArchiveThreshold]. Clamped into [0, 1].
	ArchiveThreshold float64

	// CriticalCutoff is the priority above which (strictly) a
	// fragment is treated as critical and never archived by
	// compaction. Zero means [DefaultCriticalCutoff].
	CriticalCutoff float64

	// Estimator maps text to estimator units. Nil means
	// [CharEstimator].
	Estimator SizeEstimator

	// Clock provides fragment creation timestamps. Nil means
	// [SystemClock].
	Clock Clock
}

// Stats is a point-in-time snapshot of an engine's working
// set.
type Stats struct {
	// TotalSize is the estimated size of the resident set,
	// including the pinned instruction block when pinning is
	// enabled.
	TotalSize int

	// Capacity is the current size budget.
	Capacity int

	// ResidentCount is the number of resident fragments.
	ResidentCount int

	// ArchivedCount is the number of archived fragments.
	ArchivedCount int

	// Utilization is TotalSize / Capacity.
	Utilization float64
}

// Engine maintains the bounded working set: an ordered
// resident collection and a separate archive. Every mutation
// that can change total size or capacity (insert, restore,
// capacity change) re-runs compaction over the whole resident
// set and returns a [CompactionReport].
//
// # Ownership and Concurrency
//
// An Engine exclusively owns its working set and performs no
// locking: it is designed to be driven by one logical thread
// of control. Embed one Engine per conversation or session; a
// concurrent host must serialize access externally (e.g. a
// mutex around the instance). Every operation is synchronous
// and non-blocking — nothing here performs I/O or suspends.
type Engine struct {
	capacity         int
	pinEnabled       bool
	instructions     string
	archiveThreshold float64
	criticalCutoff   float64
	estimator        SizeEstimator
	clock            Clock

	resident []*Fragment
	archive  []*Fragment
	index    map[string]*Fragment

	nextSeq int
}

// New creates an Engine from cfg. Panics if cfg.MaxSize is not
// positive — a zero or negative budget is a programmer error,
// not a runtime condition. All other degenerate configurations
// (e.g. a pinned block alone exceeding capacity) are absorbed
// by the packing algorithm.
func New(cfg Config) *Engine {
	if cfg.MaxSize <= 0 {
		panic("workset: Config.MaxSize must be > 0")
	}
	threshold := cfg.ArchiveThreshold
	if threshold == 0 {
		threshold = DefaultArchiveThreshold
	}
	cutoff := cfg.CriticalCutoff
	if cutoff == 0 {
		cutoff = DefaultCriticalCutoff
	}
	est := cfg.Estimator
	if est == nil {
		est = NewCharEstimator()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Engine{
		capacity:         cfg.MaxSize,
		pinEnabled:       cfg.PreserveInstructions,
		instructions:     cfg.Instructions,
		archiveThreshold: clampPriority(threshold),
		criticalCutoff:   cutoff,
		estimator:        est,
		clock:            clock,
		index:            make(map[string]*Fragment),
	}
}

// Insert creates a resident fragment from content and priority
// (clamped into [0, 1]), appends it to the resident set, runs
// compaction, and returns the fragment alongside the
// compaction report.
//
// The returned fragment may already be archived if it did not
// fit — check Resident or the report.
func (e *Engine) Insert(
	content string,
	priority float64,
) (*Fragment, *CompactionReport) {
	now := e.clock.Now()
	frag := &Fragment{
		ID:        newFragmentID(now),
		Content:   content,
		Priority:  clampPriority(priority),
		CreatedAt: now,
		Resident:  true,
		seq:       e.nextSeq,
	}
	e.nextSeq++
	e.resident = append(e.resident, frag)
	e.index[frag.ID] = frag
	return frag, e.compact()
}

// UpdatePriority sets the priority of a resident fragment,
// clamping into [0, 1]. Returns false when id is archived or
// unknown. Does not run compaction — callers that lowered a
// priority and want the set repacked call [Engine.Compact].
func (e *Engine) UpdatePriority(id string, priority float64) bool {
	frag, ok := e.index[id]
	if !ok || !frag.Resident {
		return false
	}
	frag.Priority = clampPriority(priority)
	return true
}

// Remove deletes a resident fragment outright. Returns false
// when id is not resident — archived fragments cannot be
// removed through this call (use [Engine.ClearArchived] to
// drop the archive).
func (e *Engine) Remove(id string) bool {
	frag, ok := e.index[id]
	if !ok || !frag.Resident {
		return false
	}
	e.resident = removeFragment(e.resident, frag)
	delete(e.index, id)
	return true
}

// Restore moves a fragment from the archive back into the
// resident set and runs compaction. Returns (nil, false) when
// id is not archived — including when it is currently
// resident — leaving both collections unchanged.
//
// A restored fragment competes in the packing pass like any
// other; it may be archived again immediately if it still does
// not fit.
func (e *Engine) Restore(id string) (*CompactionReport, bool) {
	frag, ok := e.index[id]
	if !ok || frag.Resident {
		return nil, false
	}
	e.archive = removeFragment(e.archive, frag)
	frag.Resident = true
	e.resident = append(e.resident, frag)
	return e.compact(), true
}

// ArchiveBelow moves every resident fragment with priority
// strictly below threshold into the archive and returns the
// number moved. Fragments at or above the threshold and the
// archive's existing members are untouched.
func (e *Engine) ArchiveBelow(threshold float64) int {
	var kept []*Fragment
	moved := 0
	for _, frag := range e.resident {
		if frag.Priority < threshold {
			frag.Resident = false
			e.archive = append(e.archive, frag)
			moved++
			continue
		}
		kept = append(kept, frag)
	}
	e.resident = kept
	return moved
}

// ArchiveBelowDefault is [Engine.ArchiveBelow] with the
// configured default threshold.
func (e *Engine) ArchiveBelowDefault() int {
	return e.ArchiveBelow(e.archiveThreshold)
}

// Clear resets the whole working set: resident fragments,
// archive, and the id index.
func (e *Engine) Clear() {
	e.resident = nil
	e.archive = nil
	e.index = make(map[string]*Fragment)
}

// ClearArchived drops the archive. Resident fragments are
// untouched.
func (e *Engine) ClearArchived() {
	for _, frag := range e.archive {
		delete(e.index, frag.ID)
	}
	e.archive = nil
}

// SetCapacity changes the size budget and runs compaction.
// Panics if capacity is not positive, consistent with [New].
func (e *Engine) SetCapacity(capacity int) *CompactionReport {
	if capacity <= 0 {
		panic("workset: capacity must be > 0")
	}
	e.capacity = capacity
	return e.compact()
}

// Compact re-runs the packing pass over the current resident
// set. Useful after a batch of [Engine.UpdatePriority] calls,
// which do not compact on their own.
func (e *Engine) Compact() *CompactionReport {
	return e.compact()
}

// Lookup returns the fragment with the given id, resident or
// archived.
func (e *Engine) Lookup(id string) (*Fragment, bool) {
	frag, ok := e.index[id]
	return frag, ok
}

// Resident returns a copy of the resident collection in its
// current order.
func (e *Engine) Resident() []*Fragment {
	out := make([]*Fragment, len(e.resident))
	copy(out, e.resident)
	return out
}

// Archived returns a copy of the archive in its current order.
func (e *Engine) Archived() []*Fragment {
	out := make([]*Fragment, len(e.archive))
	copy(out, e.archive)
	return out
}

// Capacity returns the current size budget.
func (e *Engine) Capacity() int {
	return e.capacity
}

// Stats returns a snapshot of the working set. TotalSize
// includes the pinned instruction block when pinning is
// enabled, since the block occupies capacity.
func (e *Engine) Stats() Stats {
	total := e.residentSize() + e.pinnedSize()
	return Stats{
		TotalSize:     total,
		Capacity:      e.capacity,
		ResidentCount: len(e.resident),
		ArchivedCount: len(e.archive),
		Utilization:   float64(total) / float64(e.capacity),
	}
}

// residentSize sums the estimated sizes of the resident
// fragments. The pinned block is not a fragment and is not
// included here.
func (e *Engine) residentSize() int {
	total := 0
	for _, frag := range e.resident {
		total += e.estimator.Estimate(frag.Content)
	}
	return total
}

// pinnedSize returns the estimated size of the pinned
// instruction block, or 0 when pinning is disabled or the
// block is empty.
func (e *Engine) pinnedSize() int {
	if !e.pinEnabled || e.instructions == "" {
		return 0
	}
	return e.estimator.Estimate(e.instructions)
}

// removeFragment returns s without frag, preserving order.
func removeFragment(s []*Fragment, frag *Fragment) []*Fragment {
	for i, f := range s {
		if f == frag {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
