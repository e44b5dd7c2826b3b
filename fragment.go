package workset

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Priority cutoffs for the three rendering tiers. A fragment
// with priority strictly above DefaultCriticalCutoff is
// critical: compaction treats it as part of the always-kept
// set, alongside the pinned instruction block. The boundary is
// exclusive — a fragment at exactly 0.9 is NOT critical.
const (
	DefaultCriticalCutoff = 0.9
	HighPriorityCutoff    = 0.6
)

// Fragment is the unit of context held by an [Engine].
//
// Content is immutable: to change what a fragment says, remove
// it and insert a replacement. Priority is mutable only through
// [Engine.UpdatePriority]. Resident reflects which collection
// currently holds the fragment; the engine flips it when a
// fragment moves between the resident set and the archive.
//
// Callers receive pointers into the engine's working set and
// must treat the fields as read-only.
type Fragment struct {
	// ID is an opaque unique identifier assigned at creation.
	ID string

	// Content is the immutable text payload.
	Content string

	// Priority is the importance of the fragment in [0, 1].
	// Higher is more important.
	Priority float64

	// CreatedAt is the creation timestamp, used as the recency
	// tie-break when ordering the resident set.
	CreatedAt time.Time

	// Resident is true while the fragment is held in the
	// resident set, false once it has moved to the archive.
	// A fragment is never both resident and archived.
	Resident bool

	// seq is the insertion sequence number. Equal-priority
	// fragments are packed in insertion order, and equal
	// timestamps order by seq, so compaction is deterministic.
	seq int
}

// Tier is the rendering tier derived from a fragment's
// priority.
type Tier string

const (
	TierCritical Tier = "critical"
	TierHigh     Tier = "high"
	TierNormal   Tier = "normal"
)

// tierOf maps a priority to its rendering tier given the
// engine's critical cutoff.
func tierOf(priority, criticalCutoff float64) Tier {
	switch {
	case priority > criticalCutoff:
		return TierCritical
	case priority > HighPriorityCutoff:
		return TierHigh
	default:
		return TierNormal
	}
}

// clampPriority clamps p into [0, 1].
func clampPriority(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// newFragmentID returns a fresh ULID string. ULIDs are
// lexicographically sortable by creation time, which keeps
// identifiers stable and debuggable without a counter.
func newFragmentID(now time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
