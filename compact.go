package workset

import "sort"

// CompactionReport describes the outcome of one compaction
// pass. Every mutating engine call that can change total size
// or capacity returns one, so callers observe evictions as
// explicit result values rather than registered callbacks.
type CompactionReport struct {
	// OriginalSize is the estimated size of the resident
	// fragments before the pass (pinned block excluded).
	OriginalSize int

	// CompactedSize is the estimated size of the resident
	// fragments after the pass.
	CompactedSize int

	// Ratio is CompactedSize / OriginalSize. Defined as 1.0
	// when OriginalSize is zero, and 1.0 on the no-op fast
	// path.
	Ratio float64

	// Resident is the resident set after the pass, in
	// presentation order.
	Resident []*Fragment

	// Archived is the full archive after the pass.
	Archived []*Fragment
}

// compact re-evaluates the whole resident set against
// capacity.
//
// Fast path: when the summed fragment sizes already fit the
// capacity, the resident set is left untouched — order
// included — and the report carries a 1.0 ratio. This holds
// even when the pinned block is active.
//
// Slow path: the pinned block's size is subtracted from the
// capacity up front (the remainder may go negative), critical
// fragments (priority strictly above the cutoff) join the
// always-kept set, and the remaining fragments are packed
// greedily in descending priority order, ties broken by
// insertion order. The first fragment that would overflow is
// rejected along with every fragment sorted after it; there is
// no backfill re-pass. Rejected fragments move to the archive.
//
// The pass is total: it cannot fail, and a negative remainder
// simply archives every non-critical fragment.
func (e *Engine) compact() *CompactionReport {
	originalSize := e.residentSize()
	if originalSize <= e.capacity {
		return &CompactionReport{
			OriginalSize:  originalSize,
			CompactedSize: originalSize,
			Ratio:         1.0,
			Resident:      e.Resident(),
			Archived:      e.Archived(),
		}
	}

	available := e.capacity - e.pinnedSize()

	var critical, regular []*Fragment
	for _, frag := range e.resident {
		if frag.Priority > e.criticalCutoff {
			critical = append(critical, frag)
		} else {
			regular = append(regular, frag)
		}
	}

	// Resident order is insertion order outside of
	// compaction, so a stable sort gives equal-priority
	// fragments their original relative order.
	sort.SliceStable(regular, func(i, j int) bool {
		return regular[i].Priority > regular[j].Priority
	})

	kept := critical
	keptSize := 0
	overflowed := false
	for _, frag := range regular {
		size := e.estimator.Estimate(frag.Content)
		if overflowed || keptSize+size > available {
			overflowed = true
			frag.Resident = false
			e.archive = append(e.archive, frag)
			continue
		}
		keptSize += size
		kept = append(kept, frag)
	}

	e.resident = presentationOrder(kept, e.criticalCutoff)

	compactedSize := e.residentSize()
	ratio := 1.0
	if originalSize > 0 {
		ratio = float64(compactedSize) / float64(originalSize)
	}
	return &CompactionReport{
		OriginalSize:  originalSize,
		CompactedSize: compactedSize,
		Ratio:         ratio,
		Resident:      e.Resident(),
		Archived:      e.Archived(),
	}
}

// presentationOrder sorts fragments for presentation: every
// fragment above the critical cutoff before all others, and
// within each of the two groups most recent first. Equal
// timestamps order by insertion sequence, newest insertion
// first, so the ordering is deterministic under coarse clocks.
func presentationOrder(
	frags []*Fragment,
	criticalCutoff float64,
) []*Fragment {
	sorted := make([]*Fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		aCrit := a.Priority > criticalCutoff
		bCrit := b.Priority > criticalCutoff
		if aCrit != bCrit {
			return aCrit
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.seq > b.seq
	})
	return sorted
}
